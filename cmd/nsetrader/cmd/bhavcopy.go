package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nsetrader/bhavcopy"
)

var bhavcopyCmd = &cobra.Command{
	Use:   "bhavcopy",
	Short: "Fetch the NSE daily settlement file",
	Long: `Download and unpack the bhavcopy settlement file for a trading day.
The file is published after 18:00 IST; a file already on disk is reused.

Examples:
  nsetrader bhavcopy
  nsetrader bhavcopy --delta 1`,
	RunE: runBhavcopy,
}

var bhavcopyDelta int

func init() {
	rootCmd.AddCommand(bhavcopyCmd)

	bhavcopyCmd.Flags().IntVarP(&bhavcopyDelta, "delta", "d", 0, "days back from today")
}

func runBhavcopy(cmd *cobra.Command, args []string) error {
	now := today()
	day := now.AddDate(0, 0, -bhavcopyDelta)

	if bhavcopy.IsTradingHoliday(day, cfg.Scanner.Holidays) {
		fmt.Printf("%s is a trading holiday/weekend, no bhavcopy is published\n", day.Format("02-Jan-2006"))
		return nil
	}
	if !bhavcopy.Available(now, day) {
		fmt.Printf("Bhavcopy for %s is not published yet (available after 18:00 IST)\n", bhavcopy.DayString(day))
		return nil
	}

	fetcher := bhavcopy.NewFetcher(cfg.Bhavcopy.BaseURL, cfg.Bhavcopy.Dir,
		time.Duration(cfg.Bhavcopy.TimeoutSeconds)*time.Second)

	path, err := fetcher.Fetch(day)
	if err != nil {
		return fmt.Errorf("fetch bhavcopy for %s: %w", bhavcopy.DayString(day), err)
	}
	fmt.Printf("Bhavcopy for %s: %s\n", bhavcopy.DayString(day), path)
	return nil
}
