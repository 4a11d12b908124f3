package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nsetrader/prompt"
	"nsetrader/universe"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "Maintain the tradable-symbol lookup table",
	Long: `Maintain the lookup table of symbols in the traded segment.

Subcommands:
  init  - Build the lookup table from a segment CSV
  find  - Search the table for a symbol by pattern
  add   - Add a symbol to the table

Examples:
  nsetrader symbols init --csv data/FO.csv
  nsetrader symbols find RELI
  nsetrader symbols add IGL`,
}

var symbolsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Build the lookup table from a segment CSV",
	Args:  cobra.NoArgs,
	RunE:  runSymbolsInit,
}

var symbolsFindCmd = &cobra.Command{
	Use:   "find <pattern>",
	Short: "Search the table for a symbol by pattern",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbolsFind,
}

var symbolsAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Add a symbol to the table",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbolsAdd,
}

var symbolsCSV string

func init() {
	rootCmd.AddCommand(symbolsCmd)
	symbolsCmd.AddCommand(symbolsInitCmd)
	symbolsCmd.AddCommand(symbolsFindCmd)
	symbolsCmd.AddCommand(symbolsAddCmd)

	symbolsInitCmd.Flags().StringVar(&symbolsCSV, "csv", "", "segment CSV file (default from config)")
}

func runSymbolsInit(cmd *cobra.Command, args []string) error {
	csvFile := cfg.Universe.CSVFile
	if symbolsCSV != "" {
		csvFile = symbolsCSV
	}

	table, err := universe.FromCSV(csvFile)
	if err != nil {
		return err
	}
	if err := table.Save(cfg.Universe.JSONFile); err != nil {
		return err
	}
	fmt.Printf("Symbol table with %d symbols written to %s\n", len(table), cfg.Universe.JSONFile)
	return nil
}

func runSymbolsFind(cmd *cobra.Command, args []string) error {
	table, err := universe.Load(cfg.Universe.JSONFile)
	if err != nil {
		return err
	}

	p := prompt.NewTerminal(os.Stdin, os.Stdout)
	match, err := table.Search(args[0], func(sym string) bool {
		return p.Confirm("Did you mean " + sym + "?")
	})
	if err != nil {
		return err
	}
	if match == "" {
		fmt.Printf("Pattern not found: %s\n", args[0])
		return nil
	}
	fmt.Printf("Pattern matched with symbol: %s\n", match)
	return nil
}

func runSymbolsAdd(cmd *cobra.Command, args []string) error {
	table, err := universe.Load(cfg.Universe.JSONFile)
	if err != nil {
		return err
	}
	table.Add(args[0])
	if err := table.Save(cfg.Universe.JSONFile); err != nil {
		return err
	}
	fmt.Printf("%s added to the symbol table\n", args[0])
	return nil
}
