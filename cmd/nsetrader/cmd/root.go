package cmd

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nsetrader/bhavcopy"
	"nsetrader/config"
	"nsetrader/logger"
)

var rootCmd = &cobra.Command{
	Use:   "nsetrader",
	Short: "Personal trading utilities for the Indian equity market",
	Long: `nsetrader is a set of end-of-day tools for NSE equity trading.

It provides commands for:
  - Reconciling a broker order export into a trade journal
  - Scanning for opening-range-breakout candidates
  - Scanning for bullish candlestick patterns
  - Computing brokerage, taxes and net P&L for a trade
  - Fetching the daily bhavcopy settlement file
  - Maintaining the tradable-symbol lookup table

Each command is a short-lived batch run over that day's data files.`,
	SilenceUsage: true,
}

var (
	cfgPath string
	verbose bool

	cfg *config.Config
	log *zap.SugaredLogger
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		log = logger.New(verbose)
		return loadConfig()
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "nsetrader.yaml", "config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics")
}

// loadConfig reads the config file, falling back to defaults when the
// default path does not exist. An explicit --config that cannot be read is
// an error.
func loadConfig() error {
	c, err := config.LoadFromFile(cfgPath)
	if err == nil {
		cfg = c
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) && !rootCmd.PersistentFlags().Changed("config") {
		cfg = config.Default()
		return nil
	}
	return err
}

// today returns the current date in exchange time.
func today() time.Time {
	return time.Now().In(bhavcopy.IST)
}

// interactive reports whether prompts can reach a terminal.
func interactive() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
