package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"nsetrader/journal"
	"nsetrader/prompt"
	"nsetrader/universe"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Reconcile the day's order export into the trade journal",
	Long: `Reconcile a broker order export (orders.csv from the dashboard) into
paired round-trip trades, tag them with strategies, and report realized P&L.

The day's pairing state is persisted per date, so the command can be re-run
safely: identical input produces identical state. The final CSV export is
only written once every position is squared off.

Subcommands:
  today  - List archived trades for today
  day    - List archived trades for a specific day

Examples:
  nsetrader journal
  nsetrader journal --orders data/orders.csv
  nsetrader journal day 2026-08-28`,
	RunE: runJournal,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List archived trades for today",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runJournalDay(cmd, []string{today().Format("2006-01-02")})
	},
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List archived trades for a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var (
	journalOrdersFile string
	journalDate       string
	journalBatch      bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)

	journalCmd.Flags().StringVar(&journalOrdersFile, "orders", "", "orders export file (default from config)")
	journalCmd.Flags().StringVar(&journalDate, "date", "", "processing date YYYY-MM-DD (default today, IST)")
	journalCmd.Flags().BoolVar(&journalBatch, "batch", false, "no prompts: reject unknown symbols, default strategies, always export")
}

func runJournal(cmd *cobra.Command, args []string) error {
	ordersFile := cfg.Journal.OrdersFile
	if journalOrdersFile != "" {
		ordersFile = journalOrdersFile
	}
	date := journalDate
	if date == "" {
		date = today().Format("2006-01-02")
	}

	var p prompt.Prompter = prompt.Headless{}
	if !journalBatch && interactive() {
		p = prompt.NewTerminal(os.Stdin, os.Stdout)
	}

	symbols, err := loadUniverse()
	if err != nil {
		return err
	}

	store, err := journal.NewStore(cfg.Journal.StateDir, date)
	if err != nil {
		return err
	}
	defer store.Close()

	prior, err := store.Load()
	if err != nil {
		return err
	}

	rows, err := journal.ReadOrdersCSV(ordersFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if len(prior.Positions) > 0 {
				// no fresh export, work from persisted state alone
				log.Infof("no orders file at %s, using saved state for %s", ordersFile, date)
				return finishJournal(p, store, prior)
			}
			// nothing to reconcile is a normal completion, not a failure
			log.Infof("no orders file found at %s", ordersFile)
			return nil
		}
		return err
	}

	// Re-derive the day from the complete export; determinism of the engine
	// makes repeated runs converge, and tags carry over from the prior run.
	engine := journal.NewEngine(date, journal.NewDayState(date), log)
	filter := &journal.Filter{Symbols: symbols, Prompt: p, Log: log}
	engine.Reconcile(rows, filter)

	if filter.UniverseChanged {
		if err := symbols.Save(cfg.Universe.JSONFile); err != nil {
			return err
		}
		log.Infof("symbol table updated: %s", cfg.Universe.JSONFile)
	}

	state := engine.State
	if len(state.Positions) == 0 {
		log.Infof("no tradable-segment orders found in %s", ordersFile)
		return nil
	}
	if merged := journal.MergeStrategies(state, prior); merged > 0 {
		log.Debugf("carried %d strategy tag(s) from the previous run", merged)
	}

	return finishJournal(p, store, state)
}

// finishJournal runs the tagging, report, persist and export steps shared
// by the fresh-export and resume paths.
func finishJournal(p prompt.Prompter, store *journal.Store, state *journal.DayState) error {
	strategies := journal.Strategies{
		Names:   cfg.Journal.Strategies,
		Codes:   cfg.Journal.StrategyCodes,
		Default: cfg.Journal.DefaultStrategy,
	}
	journal.Tag(state, strategies, p, os.Stdout)

	journal.WriteReport(os.Stdout, state)

	if err := store.Save(state); err != nil {
		return err
	}

	ans := strings.TrimSpace(p.Ask("Generate consolidated CSV file for the day (Y/N): "))
	if ans != "" && !strings.EqualFold(ans[:1], "y") {
		log.Infof("journal export declined")
		return nil
	}

	exportPath := filepath.Join(cfg.Journal.StateDir, state.Date+".csv")
	if err := journal.ExportCSV(state, exportPath); err != nil {
		var open *journal.OpenPositionsError
		if errors.As(err, &open) {
			log.Warnf("%v", open)
			return nil
		}
		return err
	}
	fmt.Printf("Trade details written to CSV file: %s\n", exportPath)

	return archiveDay(state)
}

// archiveDay appends the day's closed trades to the master SQLite journal.
func archiveDay(state *journal.DayState) error {
	if cfg.Journal.ArchiveDB == "" {
		return nil
	}
	arch, err := journal.OpenArchive(cfg.Journal.ArchiveDB)
	if err != nil {
		return err
	}
	defer arch.Close()

	n, err := arch.Append(state)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Infof("archived %d trade(s) to %s", n, cfg.Journal.ArchiveDB)
	}
	return nil
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	arch, err := journal.OpenArchive(cfg.Journal.ArchiveDB)
	if err != nil {
		return err
	}
	defer arch.Close()

	trades, err := arch.ListByDay(args[0])
	if err != nil {
		return fmt.Errorf("query archive: %w", err)
	}
	if len(trades) == 0 {
		fmt.Printf("No archived trades for %s\n", args[0])
		return nil
	}

	var total float64
	fmt.Printf("%4s %-12s %-10s %-6s %-9s %-9s %5s %9s %9s %10s\n",
		"ID", "STOCK", "ALGO", "TRADE", "ENTRY", "EXIT", "QTY", "BUY", "SELL", "P/L")
	for _, t := range trades {
		total += t.RealizedPL
		fmt.Printf("%4s %-12s %-10s %-6s %-9s %-9s %5d %9.2f %9.2f %10.2f\n",
			t.PositionID, t.Symbol, t.Strategy, t.Direction, t.EntryTime, t.ExitTime,
			t.Quantity, t.Buy, t.Sell, t.RealizedPL)
	}
	fmt.Printf("Total realized P&L: %.2f\n", total)
	return nil
}

// loadUniverse loads the symbol lookup table, building it from the segment
// CSV on first use.
func loadUniverse() (universe.Table, error) {
	table, err := universe.Load(cfg.Universe.JSONFile)
	if err == nil {
		return table, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if cfg.Universe.CSVFile == "" {
		return nil, fmt.Errorf("no symbol table at %s and no universe.csv_file configured", cfg.Universe.JSONFile)
	}
	log.Infof("building symbol table from %s", cfg.Universe.CSVFile)
	table, err = universe.FromCSV(cfg.Universe.CSVFile)
	if err != nil {
		return nil, err
	}
	if err := table.Save(cfg.Universe.JSONFile); err != nil {
		return nil, err
	}
	return table, nil
}
