package swing

import "btc-strategy-lab/internal/model"

// Thresholds are the tunable entry-condition parameters. The parameter
// sweep varies these; the engine itself never mutates them.
type Thresholds struct {
	EntryRSI    float64 // RSI_14 must exceed this
	EntryADX    float64 // ADX must exceed this (when the column is present)
	EMADistMin  float64 // min percent distance above EMA_20
	EMADistMax  float64 // max percent distance above EMA_20 (the sweet spot)
}

// DefaultThresholds returns the stock entry rule:
// close > SMA_200, RSI_14 > 50, 0% <= dist(EMA_20) <= 1.5%,
// MACD > signal, ADX > 20.
func DefaultThresholds() Thresholds {
	return Thresholds{
		EntryRSI:   50,
		EntryADX:   20,
		EMADistMin: 0,
		EMADistMax: 1.5,
	}
}

// signals holds the precomputed per-row entry/exit decisions. Computing
// them over the whole series first keeps the simulation loop branch-free:
// each step is an O(1) mask lookup, never an indicator re-evaluation.
type signals struct {
	entry []bool
	exit  []bool
}

// computeSignals evaluates the boolean condition vectors for every row.
//
// An undefined required field makes that row's condition false. The MACD
// and ADX sub-conditions are special-cased: when the column is absent from
// the dataset entirely (no row has a defined value) the sub-condition
// degrades to always-true instead of suppressing every entry.
func computeSignals(bars []model.PriceBar, th Thresholds) signals {
	n := len(bars)
	s := signals{
		entry: make([]bool, n),
		exit:  make([]bool, n),
	}

	hasMACD := false
	hasADX := false
	for i := range bars {
		if model.Defined(bars[i].MACD) && model.Defined(bars[i].MACDSignal) {
			hasMACD = true
		}
		if model.Defined(bars[i].ADX) {
			hasADX = true
		}
		if hasMACD && hasADX {
			break
		}
	}

	for i := range bars {
		b := &bars[i]

		// Zero EMA would blow up the distance ratio; substitute the close
		// itself, which reads as "exactly at the mean".
		ema := b.EMA20
		if !model.Defined(ema) || ema == 0 {
			ema = b.Close
		}
		distPct := (b.Close/ema - 1) * 100

		bullTrend := model.Defined(b.SMA200) && b.Close > b.SMA200 &&
			model.Defined(b.RSI14) && b.RSI14 > th.EntryRSI
		sweetSpot := distPct >= th.EMADistMin && distPct <= th.EMADistMax

		macdOK := !hasMACD ||
			(model.Defined(b.MACD) && model.Defined(b.MACDSignal) && b.MACD > b.MACDSignal)
		adxOK := !hasADX || (model.Defined(b.ADX) && b.ADX > th.EntryADX)

		s.entry[i] = bullTrend && sweetSpot && macdOK && adxOK
		s.exit[i] = b.Close < ema
	}
	return s
}
