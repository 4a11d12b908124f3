package scanner

import "nsetrader/bhavcopy"

// Pattern identifies one of the candlestick scans.
type Pattern string

const (
	Hammer     Pattern = "hammer"
	Marubozu   Pattern = "marubozu"
	Engulfing  Pattern = "engulfing"
	Harami     Pattern = "harami"
	OutsideBar Pattern = "outside"
)

// NeedsPrev reports whether the pattern compares against the previous
// session's candle.
func (p Pattern) NeedsPrev() bool {
	switch p {
	case Engulfing, Harami, OutsideBar:
		return true
	}
	return false
}

// PatternParams configures the candlestick scans.
type PatternParams struct {
	TailBodyRatio  float64 // hammer: minimum tail length as a multiple of the body
	MarubozuShadow float64 // marubozu: maximum shadow/body ratio
	LowerPrice     float64 // close-price band
	UpperPrice     float64
}

// Filter applies the shared pre-filters: close price inside the band and a
// non-degenerate range (High == Low gives division by zero downstream).
// Returns the survivors and the number dropped.
func Filter(quotes []bhavcopy.Quote, p PatternParams) (kept []bhavcopy.Quote, dropped int) {
	for _, q := range quotes {
		if q.Close < p.LowerPrice || q.Close > p.UpperPrice || q.High == q.Low {
			dropped++
			continue
		}
		kept = append(kept, q)
	}
	return kept, dropped
}

// Scan returns the symbols forming the given pattern. Patterns that compare
// against the prior session take prev, a map of symbol to quote for the previous
// trading day's bhavcopy; symbols without a previous quote are skipped.
func Scan(pattern Pattern, quotes []bhavcopy.Quote, prev map[string]bhavcopy.Quote, p PatternParams) []string {
	var hits []string
	for _, q := range quotes {
		var match bool
		switch pattern {
		case Hammer:
			match = isHammer(q, p.TailBodyRatio)
		case Marubozu:
			match = isMarubozu(q, p.MarubozuShadow)
		case Engulfing, Harami, OutsideBar:
			pq, ok := prev[q.Symbol]
			if !ok {
				continue
			}
			switch pattern {
			case Engulfing:
				match = isEngulfing(q, pq)
			case Harami:
				match = isHarami(q, pq)
			case OutsideBar:
				match = isOutsideBar(q, pq)
			}
		}
		if match {
			hits = append(hits, q.Symbol)
		}
	}
	return hits
}

// isHammer covers both green and red dragonfly bodies: a lower tail at
// least ratio times the body, and an upper shadow shorter than the body.
func isHammer(q bhavcopy.Quote, ratio float64) bool {
	if q.Green() {
		return (q.Open-q.Low) > (q.Close-q.Open)*ratio &&
			(q.High-q.Close) < (q.Close-q.Open)
	}
	return (q.Close-q.Low) > (q.Open-q.Close)*ratio &&
		(q.High-q.Open) < (q.Open-q.Close)
}

// isMarubozu wants a green candle that is nearly all body: both shadows
// under the configured fraction of the body.
func isMarubozu(q bhavcopy.Quote, shadow float64) bool {
	body := q.Close - q.Open
	if body <= 0 {
		return false
	}
	return (q.High-q.Close)/body < shadow && (q.Open-q.Low)/body < shadow
}

// isEngulfing: red previous candle, green candle opening below the previous
// close and closing above the previous open.
func isEngulfing(q, prev bhavcopy.Quote) bool {
	return prev.Open > prev.Close && q.Close > q.Open &&
		q.Open < prev.Close && q.Close > prev.Open
}

// isHarami: red previous candle, green candle contained inside the previous
// body.
func isHarami(q, prev bhavcopy.Quote) bool {
	return prev.Open > prev.Close && q.Close > q.Open &&
		q.Open > prev.Close && q.Close < prev.Open
}

// isOutsideBar: red previous candle, green candle whose low undercuts the
// previous low and whose close clears the previous high.
func isOutsideBar(q, prev bhavcopy.Quote) bool {
	return prev.Open > prev.Close && q.Close > q.Open &&
		q.Low < prev.Low && q.Close > prev.High
}
