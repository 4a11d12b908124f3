package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// OpenPositionsError refuses a journal export while round trips remain
// incomplete: a partial day's journal would misstate realized P&L.
type OpenPositionsError struct {
	Symbols []string
}

func (e *OpenPositionsError) Error() string {
	return fmt.Sprintf("cannot export journal, %d position(s) still open: %s",
		len(e.Symbols), strings.Join(e.Symbols, ", "))
}

// exportHeader is the durable journal layout, one row per closed position.
var exportHeader = []string{"date", "entry", "name", "trade", "exit", "strategy", "quantity", "buy", "sell"}

// WriteReport prints the day's closed trades as a table with per-trade and
// total realized P&L. Positions that fail P&L arithmetic are reported and
// skipped.
func WriteReport(w io.Writer, state *DayState) {
	closed := state.ClosedPositions()
	if len(closed) == 0 {
		fmt.Fprintln(w, "No closed trades")
		return
	}

	fmt.Fprintln(w, "CLOSED TRADES FOR THE DAY")
	fmt.Fprintln(w, "-------------------------")
	fmt.Fprintf(w, "%4s %-12s %-10s %-6s %-9s %-9s %5s %9s %9s %10s\n",
		"ID", "STOCK", "ALGO", "TRADE", "ENTRY", "EXIT", "QTY", "BUY", "SELL", "P/L")

	var total float64
	for _, p := range closed {
		pl, err := p.RealizedPL()
		if err != nil {
			fmt.Fprintf(w, "%4s %-12s  (unreadable: %v)\n", p.ID, p.Symbol, err)
			continue
		}
		total += pl
		fmt.Fprintf(w, "%4s %-12s %-10s %-6s %-9s %-9s %5s %9s %9s %10.2f\n",
			p.ID, p.Symbol, p.Strategy, p.Trade, p.Entry, p.Exit, p.Quantity, p.Buy, p.Sell, pl)
	}
	fmt.Fprintf(w, "Squared-off PnL: %.2f\n", round2(total))
}

// ExportCSV writes the final journal for the day. It refuses with an
// *OpenPositionsError while any position remains open.
func ExportCSV(state *DayState, path string) error {
	if open := state.OpenPositions(); len(open) > 0 {
		err := &OpenPositionsError{}
		for _, p := range open {
			err.Symbols = append(err.Symbols, p.Symbol)
		}
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create journal export: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("write journal export: %w", err)
	}
	for _, p := range state.Positions {
		row := []string{p.Date, p.Entry, p.Symbol, p.Trade, p.Exit, p.Strategy, p.Quantity, p.Buy, p.Sell}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write journal export: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write journal export: %w", err)
	}
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
