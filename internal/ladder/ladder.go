package ladder

import (
	"math"

	"btc-strategy-lab/internal/model"
	"btc-strategy-lab/internal/pricing"
)

// Tier is one rung of a three-step strike ladder.
type Tier struct {
	Name        string  `json:"name"` // aggressive | moderate | conservative
	Strike      float64 `json:"strike"`
	WeightPct   float64 `json:"weight_pct"`
	DistancePct float64 `json:"distance_pct"`
	APYPct      float64 `json:"apy_pct"`
}

var (
	tierNames   = [3]string{"aggressive", "moderate", "conservative"}
	tierWeights = [3]float64{30, 30, 40}
	tierOffsets = [3]float64{1.0, 2.0, 3.5}
)

// Build produces three staggered strikes for the given product direction.
//
// The anchor is the Bollinger band pushed out to the pivot level when the
// pivot is further from price; strikes step away from the anchor in ATR
// multiples, widened by 1.2x in a high-volatility regime (ATR/close > 2%).
// Floors keep the ladder strictly monotonic away from price with a minimum
// 1% spacing, and the first tier at least 1.5% away from the close.
//
// Returns nil when the row's required fields (close, ATR) are undefined.
func Build(row model.PriceBar, kind model.ProductKind, termDays int, riskFree float64) []Tier {
	closePx := row.Close
	atr := row.ATR
	if !model.Defined(closePx) || closePx <= 0 || !model.Defined(atr) || atr <= 0 {
		return nil
	}

	volFactor := 1.0
	if atr/closePx > 0.02 {
		volFactor = 1.2
	}

	// Implied-volatility proxy from ATR, annualized, floored at 30%.
	sigma := math.Max((atr/closePx)*math.Sqrt(365), 0.3)

	var strikes [3]float64
	var optKind pricing.OptionKind

	switch kind {
	case model.SellHigh:
		optKind = pricing.Call
		base := math.Max(orDefault(row.BBUpper, closePx), orDefault(row.R1, orDefault(row.BBUpper, closePx)))
		strikes[0] = math.Max(base+atr*tierOffsets[0]*volFactor, closePx*1.015)
		strikes[1] = math.Max(math.Max(base+atr*tierOffsets[1]*volFactor, orDefault(row.R2, 0)), strikes[0]*1.01)
		strikes[2] = math.Max(base+atr*tierOffsets[2]*volFactor, strikes[1]*1.01)
	case model.BuyLow:
		optKind = pricing.Put
		base := math.Min(orDefault(row.BBLower, closePx), orDefault(row.S1, orDefault(row.BBLower, closePx)))
		strikes[0] = math.Min(base-atr*tierOffsets[0]*volFactor, closePx*0.985)
		strikes[1] = math.Min(math.Min(base-atr*tierOffsets[1]*volFactor, orDefault(row.S2, math.MaxFloat64)), strikes[0]*0.99)
		strikes[2] = math.Min(base-atr*tierOffsets[2]*volFactor, strikes[1]*0.99)
	default:
		return nil
	}

	tiers := make([]Tier, 0, 3)
	for i, strike := range strikes {
		dist := (strike/closePx - 1) * 100
		if kind == model.BuyLow {
			dist = (closePx/strike - 1) * 100
		}
		apy := pricing.PriceToAPY(closePx, strike, float64(termDays), sigma, riskFree, optKind)
		tiers = append(tiers, Tier{
			Name:        tierNames[i],
			Strike:      strike,
			WeightPct:   tierWeights[i],
			DistancePct: dist,
			APYPct:      apy * 100,
		})
	}
	return tiers
}

// orDefault substitutes fallback for an undefined field, preserving the
// "missing column falls back to the band" behavior.
func orDefault(v, fallback float64) float64 {
	if model.Defined(v) {
		return v
	}
	return fallback
}
