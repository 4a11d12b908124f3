// Package scanner screens daily price snapshots for opening-range-breakout
// candidates and bullish candlestick patterns.
package scanner

import (
	"math"
	"sort"

	"nsetrader/bhavcopy"
)

// ORBParams configures the opening-range-breakout scan.
type ORBParams struct {
	Risk        int // max loss per trade in account currency
	LongStocks  int // candidates per side
	ShortStocks int
	LowerPrice  float64 // open-price band; outside it liquidity and slippage bite
	UpperPrice  float64
}

// Candidate is one stock selected for the day with its position size:
// Qty = risk / (high - low), so a stop at the far side of the range loses at
// most the configured risk.
type Candidate struct {
	Symbol   string
	Qty      int
	GapPct   float64 // open vs previous close, absolute value
	RangePct float64 // breakout edge vs previous close
}

// ORB scans quotes for gap-up (long) and gap-down (short) breakout
// candidates. Each side ranks by the breakout-edge move off the previous
// close, tie-broken by gap size, and keeps the top N.
func ORB(quotes []bhavcopy.Quote, p ORBParams) (long, short []Candidate) {
	for _, q := range quotes {
		if q.Open < p.LowerPrice || q.Open > p.UpperPrice {
			continue
		}
		if q.High == q.Low {
			// zero range means infinite position size
			continue
		}

		gap := round2((q.Open - q.PrevClose) / q.PrevClose * 100)
		qty := int(math.Round(float64(p.Risk) / (q.High - q.Low)))
		if qty <= 0 {
			continue
		}

		switch {
		case gap > 0:
			long = append(long, Candidate{
				Symbol:   q.Symbol,
				Qty:      qty,
				GapPct:   gap,
				RangePct: round2((q.High - q.PrevClose) / q.PrevClose * 100),
			})
		case gap < 0:
			short = append(short, Candidate{
				Symbol:   q.Symbol,
				Qty:      qty,
				GapPct:   -gap,
				RangePct: round2((q.PrevClose - q.Low) / q.PrevClose * 100),
			})
		}
	}

	rank(long)
	rank(short)
	long = top(long, p.LongStocks)
	short = top(short, p.ShortStocks)
	return long, short
}

func rank(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].RangePct != c[j].RangePct {
			return c[i].RangePct > c[j].RangePct
		}
		return c[i].GapPct > c[j].GapPct
	})
}

func top(c []Candidate, n int) []Candidate {
	if len(c) > n {
		return c[:n]
	}
	return c
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
