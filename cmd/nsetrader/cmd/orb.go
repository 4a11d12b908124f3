package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"nsetrader/bhavcopy"
	"nsetrader/scanner"
)

var orbCmd = &cobra.Command{
	Use:   "orb",
	Short: "Scan for opening-range-breakout candidates",
	Long: `Scan a live market-watch CSV export for gap-up and gap-down stocks and
size positions so a stop at the far side of the opening range risks at most
the configured amount.

Examples:
  nsetrader orb
  nsetrader orb --file "data/MW-SECURITIES-IN-F&O-28-Aug-2026.csv" --risk 200`,
	RunE: runORB,
}

var (
	orbFile  string
	orbRisk  int
	orbLong  int
	orbShort int
)

func init() {
	rootCmd.AddCommand(orbCmd)

	orbCmd.Flags().StringVarP(&orbFile, "file", "f", "", "market-watch CSV file (default: today's under data_dir)")
	orbCmd.Flags().IntVar(&orbRisk, "risk", 0, "max risk per trade (default from config)")
	orbCmd.Flags().IntVar(&orbLong, "long", 0, "max long candidates (default from config)")
	orbCmd.Flags().IntVar(&orbShort, "short", 0, "max short candidates (default from config)")
}

func runORB(cmd *cobra.Command, args []string) error {
	params := scanner.ORBParams{
		Risk:        cfg.ORB.Risk,
		LongStocks:  cfg.ORB.LongStocks,
		ShortStocks: cfg.ORB.ShortStocks,
		LowerPrice:  cfg.ORB.LowerPrice,
		UpperPrice:  cfg.ORB.UpperPrice,
	}
	if orbRisk > 0 {
		params.Risk = orbRisk
	}
	if orbLong > 0 {
		params.LongStocks = orbLong
	}
	if orbShort > 0 {
		params.ShortStocks = orbShort
	}

	file := orbFile
	if file == "" {
		name := cfg.ORB.CSVPrefix + today().Format("02-Jan-2006") + ".csv"
		file = filepath.Join(cfg.DataDir, name)
	}

	quotes, err := bhavcopy.ReadMarketWatch(file)
	if err != nil {
		return err
	}
	log.Debugf("read %d quotes from %s", len(quotes), file)

	long, short := scanner.ORB(quotes, params)

	if len(long) == 0 {
		fmt.Println("No stocks for ORB long")
	} else {
		fmt.Println("------BUY------")
		printCandidates(long)
	}
	if len(short) == 0 {
		fmt.Println("No stocks for ORB short sell")
	} else {
		fmt.Println("-----SELL------")
		printCandidates(short)
	}
	return nil
}

func printCandidates(cands []scanner.Candidate) {
	fmt.Printf("%-10s %5s\n", "STOCKS", "QTY")
	fmt.Println("---------------")
	for _, c := range cands {
		fmt.Printf("%-10s %5d\n", c.Symbol, c.Qty)
	}
}
