// Package charges computes brokerage, taxes and statutory charges for an
// Indian equity trade (Zerodha-style discount broker rates).
package charges

import "math"

// Rates is the immutable fee schedule a computation runs against. Pass it
// in explicitly; there is no package-level mutable configuration.
type Rates struct {
	BrokeragePct     float64 // intraday, per executed leg
	BrokerageCap     float64 // per-leg rupee cap
	STTIntradayPct   float64 // sell side
	STTDeliveryPct   float64 // on turnover
	STTETFPct        float64 // sell side, equity ETFs
	ExchangeTxnPct   float64 // on turnover
	GSTPct           float64 // on brokerage + exchange txn charges
	SEBIPerCrore     float64 // flat per crore of turnover
	StampIntradayPct float64 // buy side
	StampDeliveryPct float64 // buy side
	DPCharge         float64 // per scrip on delivery sell, before GST
}

// DefaultRates is the published Zerodha equity schedule.
func DefaultRates() Rates {
	return Rates{
		BrokeragePct:     0.03,
		BrokerageCap:     20,
		STTIntradayPct:   0.025,
		STTDeliveryPct:   0.1,
		STTETFPct:        0.001,
		ExchangeTxnPct:   0.00345,
		GSTPct:           18,
		SEBIPerCrore:     10,
		StampIntradayPct: 0.003,
		StampDeliveryPct: 0.015,
		DPCharge:         13.5,
	}
}

// Trade describes one completed buy/sell round trip to be costed.
type Trade struct {
	Buy         float64
	Sell        float64
	Qty         int
	HoldingDays int  // 0 = intraday, 1 = BTST, >1 = delivery
	ETF         bool // equity ETFs get the reduced delivery STT
	NoSTT       bool // instruments where STT does not apply
}

func (t Trade) intraday() bool { return t.HoldingDays == 0 }

// Breakdown itemizes every charge on a trade.
type Breakdown struct {
	Turnover    float64
	Brokerage   float64
	STT         float64
	ExchangeTxn float64
	GST         float64
	SEBI        float64
	StampDuty   float64
	DPCharges   float64
	Total       float64 // all charges including DP
	GrossPL     float64
	NetPL       float64
}

// Compute itemizes the charges for a trade under the given rate schedule.
func Compute(r Rates, t Trade) Breakdown {
	qty := float64(t.Qty)
	b := Breakdown{
		Turnover: (t.Buy + t.Sell) * qty,
		GrossPL:  round2((t.Sell - t.Buy) * qty),
	}

	b.Brokerage = round2(brokerage(r, t))
	if !t.NoSTT {
		b.STT = stt(r, t)
	}
	b.ExchangeTxn = round2(r.ExchangeTxnPct / 100 * b.Turnover)
	b.GST = round2(r.GSTPct / 100 * (b.Brokerage + b.ExchangeTxn))
	b.SEBI = round2(r.SEBIPerCrore / 1e7 * b.Turnover)
	b.StampDuty = round2(stampDuty(r, t))
	b.DPCharges = dpCharges(r, t)

	b.Total = round2(b.Brokerage + b.STT + b.ExchangeTxn + b.GST + b.SEBI + b.StampDuty + b.DPCharges)
	b.NetPL = round2(b.GrossPL - b.Total)
	return b
}

// brokerage: free on delivery and BTST; intraday pays per executed leg,
// capped per leg.
func brokerage(r Rates, t Trade) float64 {
	if !t.intraday() {
		return 0
	}
	qty := float64(t.Qty)
	legs := 0.0
	for _, px := range []float64{t.Buy, t.Sell} {
		leg := r.BrokeragePct / 100 * px * qty
		if leg > r.BrokerageCap {
			leg = r.BrokerageCap
		}
		legs += leg
	}
	return legs
}

// stt: intraday charges the sell side rounded to the rupee; delivery
// charges the full turnover rounded to the rupee; equity ETFs pay the
// reduced sell-side rate. Whole-rupee rounding is half to even, so an
// exact half rupee does not always round up.
func stt(r Rates, t Trade) float64 {
	qty := float64(t.Qty)
	if t.intraday() {
		return math.RoundToEven(r.STTIntradayPct / 100 * t.Sell * qty)
	}
	if t.ETF {
		return round2(r.STTETFPct / 100 * t.Sell * qty)
	}
	return math.RoundToEven(r.STTDeliveryPct / 100 * (t.Buy + t.Sell) * qty)
}

// stampDuty is buy-side only, at the intraday or delivery rate.
func stampDuty(r Rates, t Trade) float64 {
	qty := float64(t.Qty)
	if t.intraday() {
		return r.StampIntradayPct / 100 * t.Buy * qty
	}
	return r.StampDeliveryPct / 100 * t.Buy * qty
}

// dpCharges apply per scrip when sold out of the demat account, i.e. held
// beyond BTST. GST applies on top.
func dpCharges(r Rates, t Trade) float64 {
	if t.HoldingDays <= 1 {
		return 0
	}
	return round2(r.DPCharge * (1 + r.GSTPct/100))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
