package data

import (
	"math"
	"math/rand"
	"time"
)

// SyntheticParams shapes a generated daily series.
type SyntheticParams struct {
	Start     time.Time
	Days      int
	StartPx   float64
	DriftPct  float64 // mean daily return, percent
	VolPct    float64 // daily volatility, percent
	Seed      int64
}

// GenerateCandles produces a deterministic random-walk daily series for
// demos and tests. Same seed, same series.
func GenerateCandles(p SyntheticParams) []Candle {
	rng := rand.New(rand.NewSource(p.Seed))
	if p.StartPx <= 0 {
		p.StartPx = 50_000
	}
	if p.Start.IsZero() {
		p.Start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	candles := make([]Candle, 0, p.Days)
	px := p.StartPx
	for i := 0; i < p.Days; i++ {
		ret := (p.DriftPct + rng.NormFloat64()*p.VolPct) / 100
		open := px
		closePx := px * (1 + ret)
		hi := math.Max(open, closePx) * (1 + math.Abs(rng.NormFloat64())*0.002)
		lo := math.Min(open, closePx) * (1 - math.Abs(rng.NormFloat64())*0.002)
		candles = append(candles, Candle{
			Time:   p.Start.AddDate(0, 0, i),
			Open:   open,
			High:   hi,
			Low:    lo,
			Close:  closePx,
			Volume: 1000 + rng.Float64()*9000,
		})
		px = closePx
	}
	return candles
}
