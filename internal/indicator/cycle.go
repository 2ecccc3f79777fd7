package indicator

import (
	"math"
	"time"

	"btc-strategy-lab/internal/model"
)

// genesis is the Bitcoin genesis block date, the zero point of the
// power-law and AHR999 valuation curves.
var genesis = time.Date(2009, 1, 3, 0, 0, 0, 0, time.UTC)

// ComputeCycle fills the cycle/valuation indicator fields consumed by the
// bottom scorer, in place. Bars must be sorted ascending.
func ComputeCycle(bars []model.PriceBar) {
	if len(bars) == 0 {
		return
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	sma111 := SMA(closes, 111)
	sma350 := SMA(closes, 350)
	sma200 := SMA(closes, 200)
	sma365 := SMA(closes, 365)
	sma730 := SMA(closes, 730)
	sma1400 := SMA(closes, 1400)
	std200 := rollingStd(closes, 200)
	rsiMonthly := resampledRSI(bars, closes, 14, monthlyBucket)

	for i := range bars {
		c := closes[i]
		days := bars[i].Time.Sub(genesis).Hours() / 24
		if days < 1 {
			days = 1
		}

		// Pi Cycle Bottom: SMA_111 vs doubled SMA_350, as a percent gap.
		if model.Defined(sma111[i]) && model.Defined(sma350[i]) && sma350[i] > 0 {
			bars[i].PiCycleGap = (sma111[i]/(2*sma350[i]) - 1) * 100
		}

		// 200-week SMA ratio (1400 daily bars).
		if model.Defined(sma1400[i]) && sma1400[i] > 0 {
			bars[i].SMA200WRatio = c / sma1400[i]
		}

		// Puell multiple proxy: price over its one-year mean.
		if model.Defined(sma365[i]) && sma365[i] > 0 {
			bars[i].PuellProxy = c / sma365[i]
		}

		// Mayer multiple against the two-year mean.
		if model.Defined(sma730[i]) && sma730[i] > 0 {
			bars[i].MayerMultiple = c / sma730[i]
		}

		// Power-law support (Santostasi fit) and the price ratio to it.
		support := math.Pow(10, -17.01467+5.84*math.Log10(days))
		if support > 0 {
			bars[i].PowerLawRatio = c / support
		}

		// AHR999: (price/SMA200) x (price/exponential-growth valuation).
		if model.Defined(sma200[i]) && sma200[i] > 0 {
			valuation := math.Pow(10, 2.68+0.00057*days)
			bars[i].AHR999 = (c / sma200[i]) * (c / valuation)
		}

		// MVRV Z-score proxy: deviation from SMA200 in rolling stdev units.
		if model.Defined(sma200[i]) && model.Defined(std200[i]) && std200[i] > 0 {
			bars[i].MVRVZProxy = (c - sma200[i]) / std200[i]
		}

		bars[i].RSIMonthly = rsiMonthly[i]
	}
}

// rollingStd is the rolling sample standard deviation over length values.
func rollingStd(vals []float64, length int) []float64 {
	out := nanSlice(len(vals))
	if length <= 1 || len(vals) < length {
		return out
	}
	for i := length - 1; i < len(vals); i++ {
		var sum float64
		for j := i - length + 1; j <= i; j++ {
			sum += vals[j]
		}
		mean := sum / float64(length)
		var ss float64
		for j := i - length + 1; j <= i; j++ {
			d := vals[j] - mean
			ss += d * d
		}
		out[i] = math.Sqrt(ss / float64(length-1))
	}
	return out
}

// resampledRSI computes RSI over per-bucket closing values (last close in
// each calendar bucket) and assigns each bar its bucket's value. This
// mirrors a resample-then-reindex-ffill on the daily index.
func resampledRSI(bars []model.PriceBar, closes []float64, length int, bucket func(time.Time) int64) []float64 {
	out := nanSlice(len(bars))
	if len(bars) == 0 {
		return out
	}
	var keys []int64
	var lasts []float64
	for i := range bars {
		k := bucket(bars[i].Time)
		if len(keys) > 0 && keys[len(keys)-1] == k {
			lasts[len(lasts)-1] = closes[i]
		} else {
			keys = append(keys, k)
			lasts = append(lasts, closes[i])
		}
	}
	rsi := RSI(lasts, length)
	byKey := make(map[int64]float64, len(keys))
	for i, k := range keys {
		byKey[k] = rsi[i]
	}
	for i := range bars {
		out[i] = byKey[bucket(bars[i].Time)]
	}
	return out
}

func monthlyBucket(t time.Time) int64 {
	return int64(t.Year())*100 + int64(t.Month())
}

// weeklyBucket keys a bar by the Monday on or after it, matching a
// week-ending-Monday resample.
func weeklyBucket(t time.Time) int64 {
	daysToMonday := (8 - int(t.Weekday())) % 7
	monday := t.AddDate(0, 0, daysToMonday)
	return int64(monday.Year())*10000 + int64(monday.Month())*100 + int64(monday.Day())
}
