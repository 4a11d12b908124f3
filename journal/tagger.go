package journal

import (
	"fmt"
	"io"
	"strings"

	"nsetrader/prompt"
)

// Strategies is the externally configured classification list: display
// names, matching single-character selection codes and the fallback name
// for blank or unrecognized input.
type Strategies struct {
	Names   []string
	Codes   []string
	Default string
}

// byCode resolves a selection code to its strategy name.
func (s Strategies) byCode(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i, c := range s.Codes {
		if strings.ToUpper(c) == code {
			return s.Names[i], true
		}
	}
	return "", false
}

// MergeStrategies carries strategy tags from a prior run's state onto a
// freshly re-derived one. Positions match by id plus the entry facts the
// engine assigns deterministically, so a stale state file for a different
// export contributes nothing. Returns the number of tags carried over.
func MergeStrategies(fresh, prior *DayState) int {
	if prior == nil {
		return 0
	}
	byID := make(map[string]*Position, len(prior.Positions))
	for _, p := range prior.Positions {
		byID[p.ID] = p
	}

	merged := 0
	for _, p := range fresh.Positions {
		old, ok := byID[p.ID]
		if !ok || old.Strategy == "" || p.Strategy != "" {
			continue
		}
		if old.Symbol != p.Symbol || old.Quantity != p.Quantity ||
			old.Entry != p.Entry || old.Trade != p.Trade {
			continue
		}
		p.Strategy = old.Strategy
		merged++
	}
	return merged
}

// Tag presents every closed, untagged position for classification and
// assigns the chosen (or default) strategy. Pure annotation: pairing state
// is never touched. Returns the number of positions tagged.
func Tag(state *DayState, strategies Strategies, p prompt.Prompter, out io.Writer) int {
	tagged := 0
	menu := strings.Join(strategies.Codes, "/")

	for _, pos := range state.Positions {
		if pos.Open() || pos.Strategy != "" {
			continue
		}

		fmt.Fprintf(out, "%s. %s %s x%s entry %s exit %s buy %s sell %s\n",
			pos.ID, pos.Trade, pos.Symbol, pos.Quantity, pos.Entry, pos.Exit, pos.Buy, pos.Sell)

		choice := p.Ask("Assign Strategy (" + menu + "): ")
		if name, ok := strategies.byCode(choice); ok {
			pos.Strategy = name
			fmt.Fprintf(out, "Assigned strategy: %s\n", name)
		} else {
			pos.Strategy = strategies.Default
			fmt.Fprintf(out, "Assigning default strategy: %s\n", strategies.Default)
		}
		tagged++
	}
	return tagged
}
