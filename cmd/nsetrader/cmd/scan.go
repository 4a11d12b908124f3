package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"nsetrader/bhavcopy"
	"nsetrader/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for bullish candlestick patterns",
	Long: `Scan the day's price data for bullish candlestick patterns. Uses the
bhavcopy settlement file when it is already published, otherwise the live
market-watch CSV export.

With no pattern flags every pattern is scanned.

Examples:
  nsetrader scan
  nsetrader scan -H -M
  nsetrader scan --delta 1`,
	RunE: runScan,
}

var (
	scanDelta     int
	scanFile      string
	scanHammer    bool
	scanMarubozu  bool
	scanEngulfing bool
	scanHarami    bool
	scanOutside   bool
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVarP(&scanDelta, "delta", "d", 0, "days back from today to scan")
	scanCmd.Flags().StringVarP(&scanFile, "file", "f", "", "market-watch CSV file (default: the day's under data_dir)")
	scanCmd.Flags().BoolVarP(&scanHammer, "hammer", "H", false, "hammer pattern scan")
	scanCmd.Flags().BoolVarP(&scanMarubozu, "marubozu", "M", false, "marubozu pattern scan")
	scanCmd.Flags().BoolVarP(&scanEngulfing, "engulfing", "E", false, "engulfing pattern scan")
	scanCmd.Flags().BoolVarP(&scanHarami, "harami", "A", false, "harami pattern scan")
	scanCmd.Flags().BoolVarP(&scanOutside, "outside", "O", false, "outside bar pattern scan")
}

func selectedPatterns() []scanner.Pattern {
	var sel []scanner.Pattern
	if scanHammer {
		sel = append(sel, scanner.Hammer)
	}
	if scanMarubozu {
		sel = append(sel, scanner.Marubozu)
	}
	if scanEngulfing {
		sel = append(sel, scanner.Engulfing)
	}
	if scanHarami {
		sel = append(sel, scanner.Harami)
	}
	if scanOutside {
		sel = append(sel, scanner.OutsideBar)
	}
	if len(sel) == 0 {
		sel = []scanner.Pattern{scanner.Hammer, scanner.Marubozu, scanner.Engulfing,
			scanner.OutsideBar, scanner.Harami}
	}
	return sel
}

func runScan(cmd *cobra.Command, args []string) error {
	now := today()
	day := now.AddDate(0, 0, -scanDelta)

	if bhavcopy.IsTradingHoliday(day, cfg.Scanner.Holidays) {
		fmt.Printf("%s is a trading holiday/weekend. Select another date\n", day.Format("02-Jan-2006"))
		return nil
	}

	file := scanFile
	if file == "" {
		name := cfg.Scanner.CSVPrefix + day.Format("02-Jan-2006") + ".csv"
		file = filepath.Join(cfg.Bhavcopy.Dir, name)
	}
	quotes, err := bhavcopy.ReadMarketWatch(file)
	if err != nil {
		return err
	}

	fetcher := bhavcopy.NewFetcher(cfg.Bhavcopy.BaseURL, cfg.Bhavcopy.Dir,
		time.Duration(cfg.Bhavcopy.TimeoutSeconds)*time.Second)

	// Prefer settlement prices over the live snapshot once published.
	if bhavcopy.Available(now, day) {
		symbols := make(map[string]bool, len(quotes))
		for _, q := range quotes {
			symbols[q.Symbol] = true
		}
		if path, err := fetcher.Fetch(day); err != nil {
			log.Warnf("bhavcopy unavailable for %s, using live market data: %v", bhavcopy.DayString(day), err)
		} else if bq, err := bhavcopy.ReadBhavcopy(path, symbols); err != nil {
			log.Warnf("bhavcopy unreadable, using live market data: %v", err)
		} else {
			quotes = bq
		}
	}

	params := scanner.PatternParams{
		TailBodyRatio:  cfg.Scanner.TailBodyRatio,
		MarubozuShadow: cfg.Scanner.MarubozuShadow,
		LowerPrice:     cfg.Scanner.LowerPrice,
		UpperPrice:     cfg.Scanner.UpperPrice,
	}
	quotes, dropped := scanner.Filter(quotes, params)
	log.Debugf("dropped %d quotes outside the price band or with high == low", dropped)

	// Previous session quotes for the two-candle patterns.
	var prev map[string]bhavcopy.Quote
	prevDay := bhavcopy.PrevTradingDay(day, cfg.Scanner.Holidays)
	if path, err := fetcher.Fetch(prevDay); err != nil {
		log.Warnf("previous session bhavcopy unavailable: %v", err)
	} else {
		symbols := make(map[string]bool, len(quotes))
		for _, q := range quotes {
			symbols[q.Symbol] = true
		}
		pq, err := bhavcopy.ReadBhavcopy(path, symbols)
		if err != nil {
			log.Warnf("previous session bhavcopy unreadable: %v", err)
		} else {
			prev = bhavcopy.BySymbol(pq)
		}
	}

	fmt.Printf("Date: %s\n", day.Format("02-Jan-2006"))
	for _, pattern := range selectedPatterns() {
		title := strings.ToUpper(string(pattern))
		fmt.Printf("\nBULLISH %s CANDLESTICK SCAN\n", title)
		fmt.Println(strings.Repeat("-", len(title)+25))

		if pattern.NeedsPrev() && prev == nil {
			fmt.Println("Previous session data not found. Cannot scan this pattern")
			continue
		}
		hits := scanner.Scan(pattern, quotes, prev, params)
		if len(hits) == 0 {
			fmt.Printf("No stocks with %s pattern\n", pattern)
			continue
		}
		for _, sym := range hits {
			fmt.Println(sym)
		}
	}
	return nil
}
