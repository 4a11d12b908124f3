package journal

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nsetrader/prompt"
)

// Intraday-margin product designator. Only MIS legs belong in the journal;
// everything else is delivery or derivative flow.
const productMIS = "MIS"

// SymbolSet is the read side of the tradable-symbol universe, plus the
// append-on-confirmation path for symbols seen for the first time.
type SymbolSet interface {
	Contains(symbol string) bool
	Add(symbol string)
}

// Filter decides whether a normalized execution belongs to the tradable
// universe. Rejections are logged, never fatal.
type Filter struct {
	Symbols SymbolSet
	Prompt  prompt.Prompter
	Log     *zap.SugaredLogger

	// set when a confirmed unknown symbol was added to the universe;
	// the caller persists the updated table at end of run
	UniverseChanged bool
}

// Accept applies the segment rules: intraday-margin product type and
// membership in the symbol universe. An unseen symbol goes through the
// confirmation prompt; the headless prompter declines, so unattended runs
// reject-and-log.
func (f *Filter) Accept(ex Execution) bool {
	if !strings.EqualFold(ex.Product, productMIS) {
		f.Log.Infof("%s is not intraday MIS (product %s), skipping", ex.Symbol, ex.Product)
		return false
	}

	sym := strings.ToUpper(strings.TrimSpace(ex.Symbol))
	if f.Symbols.Contains(sym) {
		return true
	}

	f.Log.Infof("%s not found in the traded segment", sym)
	if !f.Prompt.Confirm("Update the segment list with " + sym + "?") {
		f.Log.Infof("%s rejected, not part of traded segment", sym)
		return false
	}
	f.Symbols.Add(sym)
	f.UniverseChanged = true
	return true
}

// Engine pairs opening and closing executions into round-trip positions.
// Records must arrive in ascending time order; the engine assumes the export
// is sorted and treats a record from another date as the start of stale data.
type Engine struct {
	Date  string // processing date, "2006-01-02"
	State *DayState
	Log   *zap.SugaredLogger
}

// NewEngine builds an engine over existing state. With an empty date the
// engine adopts the date of the first record it processes.
func NewEngine(date string, state *DayState, log *zap.SugaredLogger) *Engine {
	if state == nil {
		state = NewDayState(date)
	}
	return &Engine{Date: date, State: state, Log: log}
}

// Process runs the pairing state machine over accepted executions. It
// returns the number of records consumed; intake stops (not skips) at the
// first record from a different date, since the source is sorted ascending
// and a past-date record signals a stale export.
func (e *Engine) Process(execs []Execution) int {
	consumed := 0
	for _, ex := range execs {
		if !e.apply(ex) {
			break
		}
		consumed++
	}
	return consumed
}

// apply advances the state machine by one record. Returns false when intake
// must halt.
func (e *Engine) apply(ex Execution) bool {
	if e.Date == "" {
		e.Date = ex.Date
		e.State.Date = ex.Date
	}
	if ex.Date != e.Date {
		e.Log.Warnf("order dated %s in an export for %s; possible stale orders file, stopping intake",
			ex.Date, e.Date)
		return false
	}
	if ex.Quantity <= 0 || ex.AvgPrice <= 0 {
		e.Log.Warnf("dropping %s %s: invalid quantity %d or price %v",
			ex.Side, ex.Symbol, ex.Quantity, ex.AvgPrice)
		return true
	}

	qty := strconv.Itoa(ex.Quantity)
	price := strconv.FormatFloat(ex.AvgPrice, 'f', -1, 64)

	if open := e.State.FirstOpenMatch(ex.Symbol, qty, ex.Side); open != nil {
		// Square-off. A closed position is never reused: a later identical
		// pair starts a fresh position.
		open.Exit = ex.Time
		if ex.Side == Sell {
			open.Sell = price
		} else {
			open.Buy = price
		}
		e.Log.Debugf("squared off position %s: %s %s x%s", open.ID, open.Trade, open.Symbol, qty)
		return true
	}

	p := &Position{
		Date:     ex.Date,
		Entry:    ex.Time,
		Symbol:   ex.Symbol,
		Quantity: qty,
	}
	if ex.Side == Sell {
		p.Trade = string(Short)
		p.Sell = price
	} else {
		p.Trade = string(Long)
		p.Buy = price
	}
	e.State.Append(p)
	e.Log.Debugf("new %s position %s: %s x%s", p.Trade, p.ID, p.Symbol, qty)
	return true
}

// Reconcile is the full intake pass: normalize each raw row, run it through
// the segment filter and feed survivors to the pairing engine. Malformed
// rows are dropped with a diagnostic and the scan continues; a stale-date
// record halts the remaining intake.
func (e *Engine) Reconcile(rows []map[string]string, filter *Filter) {
	for i, row := range rows {
		ex, err := ParseExecution(row)
		if err != nil {
			e.Log.Warnf("dropping row %d: %v", i+1, err)
			continue
		}
		if !filter.Accept(ex) {
			continue
		}
		if !e.apply(ex) {
			return
		}
	}
}
