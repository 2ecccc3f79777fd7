package model

import (
	"math"
	"time"
)

// PriceBar represents one day of a time-indexed OHLCV series plus the
// indicator columns the engines consume.
//
// Indicator fields use NaN for "undefined" (warm-up rows, missing source
// columns). Engines treat an undefined required field as "condition not
// satisfied" rather than erroring, so a partially warmed-up series is a
// normal input.
type PriceBar struct {
	Time time.Time

	Open  float64
	High  float64
	Low   float64
	Close float64
	Volume float64

	// Trend / momentum indicators.
	SMA200     float64
	SMA50      float64
	EMA20      float64
	SMA200Slope float64
	RSI14      float64
	RSIWeekly  float64
	ATR        float64
	BBUpper    float64
	BBLower    float64
	ADX        float64
	MACD       float64
	MACDSignal float64
	MACDHist   float64

	// Classic pivot levels derived from the prior bar.
	P  float64
	R1 float64
	R2 float64
	S1 float64
	S2 float64

	// KDJ stochastic.
	K float64
	J float64

	// Cycle / valuation indicators consumed by the bottom scorer.
	AHR999        float64
	MVRVZProxy    float64
	PiCycleGap    float64
	SMA200WRatio  float64
	PuellProxy    float64
	RSIMonthly    float64
	PowerLawRatio float64
	MayerMultiple float64
}

// NewPriceBar returns a bar with OHLCV set and every indicator field
// undefined (NaN).
func NewPriceBar(t time.Time, open, high, low, closePx, volume float64) PriceBar {
	b := PriceBar{
		Time:   t,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePx,
		Volume: volume,
	}
	nan := math.NaN()
	b.SMA200, b.SMA50, b.EMA20, b.SMA200Slope = nan, nan, nan, nan
	b.RSI14, b.RSIWeekly, b.ATR = nan, nan, nan
	b.BBUpper, b.BBLower = nan, nan
	b.ADX, b.MACD, b.MACDSignal, b.MACDHist = nan, nan, nan, nan
	b.P, b.R1, b.R2, b.S1, b.S2 = nan, nan, nan, nan, nan
	b.K, b.J = nan, nan
	b.AHR999, b.MVRVZProxy, b.PiCycleGap, b.SMA200WRatio = nan, nan, nan, nan
	b.PuellProxy, b.RSIMonthly, b.PowerLawRatio, b.MayerMultiple = nan, nan, nan, nan
	return b
}

// Defined reports whether v carries a usable value.
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SliceByTime returns the bars with Time in [start, end], inclusive.
// Bars must already be sorted ascending; the engines never sort.
func SliceByTime(bars []PriceBar, start, end time.Time) []PriceBar {
	lo := 0
	for lo < len(bars) && bars[lo].Time.Before(start) {
		lo++
	}
	hi := len(bars)
	for hi > lo && bars[hi-1].Time.After(end) {
		hi--
	}
	return bars[lo:hi]
}
