package indicator

import (
	"math"

	"btc-strategy-lab/internal/model"
)

// Compute fills every technical indicator field on the given bars, in place.
// Bars must be sorted ascending by time. Rows inside an indicator's warm-up
// window keep NaN for that field.
func Compute(bars []model.PriceBar) {
	if len(bars) == 0 {
		return
	}
	closes := make([]float64, len(bars))
	highs := make([]float64, len(bars))
	lows := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	sma200 := SMA(closes, 200)
	sma50 := SMA(closes, 50)
	ema20 := EMA(closes, 20)
	rsi14 := RSI(closes, 14)
	atr := ATR(highs, lows, closes, 14)
	bbUpper, bbLower := Bollinger(closes, 20, 2.0)
	adx := ADX(highs, lows, closes, 14)
	macd, macdSignal, macdHist := MACD(closes, 12, 26, 9)
	k, j := KDJ(highs, lows, closes, 9, 3)
	rsiWeekly := resampledRSI(bars, closes, 14, weeklyBucket)

	for i := range bars {
		bars[i].SMA200 = sma200[i]
		bars[i].SMA50 = sma50[i]
		bars[i].EMA20 = ema20[i]
		bars[i].RSI14 = rsi14[i]
		bars[i].RSIWeekly = rsiWeekly[i]
		bars[i].ATR = atr[i]
		bars[i].BBUpper = bbUpper[i]
		bars[i].BBLower = bbLower[i]
		bars[i].ADX = adx[i]
		bars[i].MACD = macd[i]
		bars[i].MACDSignal = macdSignal[i]
		bars[i].MACDHist = macdHist[i]
		bars[i].K = k[i]
		bars[i].J = j[i]

		// SMA-200 slope, 20-day lookback.
		if i >= 20 && model.Defined(sma200[i]) && model.Defined(sma200[i-20]) {
			bars[i].SMA200Slope = sma200[i] - sma200[i-20]
		}

		// Classic pivots from the prior bar.
		if i > 0 {
			ph, pl, pc := highs[i-1], lows[i-1], closes[i-1]
			p := (ph + pl + pc) / 3
			bars[i].P = p
			bars[i].R1 = 2*p - pl
			bars[i].S1 = 2*p - ph
			bars[i].R2 = p + (ph - pl)
			bars[i].S2 = p - (ph - pl)
		}
	}
}

// SMA returns the simple moving average; NaN for the first length-1 rows.
func SMA(vals []float64, length int) []float64 {
	out := nanSlice(len(vals))
	if length <= 0 || len(vals) < length {
		return out
	}
	sum := 0.0
	for i, v := range vals {
		sum += v
		if i >= length {
			sum -= vals[i-length]
		}
		if i >= length-1 {
			out[i] = sum / float64(length)
		}
	}
	return out
}

// EMA returns the exponential moving average seeded with the SMA of the
// first length values.
func EMA(vals []float64, length int) []float64 {
	out := nanSlice(len(vals))
	if length <= 0 || len(vals) < length {
		return out
	}
	sum := 0.0
	for i := 0; i < length; i++ {
		sum += vals[i]
	}
	prev := sum / float64(length)
	out[length-1] = prev
	alpha := 2.0 / float64(length+1)
	for i := length; i < len(vals); i++ {
		prev = alpha*vals[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// RSI returns Wilder's relative strength index.
func RSI(vals []float64, length int) []float64 {
	out := nanSlice(len(vals))
	if length <= 0 || len(vals) <= length {
		return out
	}
	var avgGain, avgLoss float64
	for i := 1; i <= length; i++ {
		d := vals[i] - vals[i-1]
		if d > 0 {
			avgGain += d
		} else {
			avgLoss -= d
		}
	}
	avgGain /= float64(length)
	avgLoss /= float64(length)
	out[length] = rsiFrom(avgGain, avgLoss)
	for i := length + 1; i < len(vals); i++ {
		d := vals[i] - vals[i-1]
		gain, loss := 0.0, 0.0
		if d > 0 {
			gain = d
		} else {
			loss = -d
		}
		avgGain = (avgGain*float64(length-1) + gain) / float64(length)
		avgLoss = (avgLoss*float64(length-1) + loss) / float64(length)
		out[i] = rsiFrom(avgGain, avgLoss)
	}
	return out
}

func rsiFrom(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ATR returns Wilder's average true range.
func ATR(highs, lows, closes []float64, length int) []float64 {
	out := nanSlice(len(closes))
	if length <= 0 || len(closes) <= length {
		return out
	}
	tr := make([]float64, len(closes))
	tr[0] = highs[0] - lows[0]
	for i := 1; i < len(closes); i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	sum := 0.0
	for i := 1; i <= length; i++ {
		sum += tr[i]
	}
	prev := sum / float64(length)
	out[length] = prev
	for i := length + 1; i < len(closes); i++ {
		prev = (prev*float64(length-1) + tr[i]) / float64(length)
		out[i] = prev
	}
	return out
}

// Bollinger returns the upper and lower bands: SMA(length) ± mult stddev.
func Bollinger(vals []float64, length int, mult float64) (upper, lower []float64) {
	upper = nanSlice(len(vals))
	lower = nanSlice(len(vals))
	mid := SMA(vals, length)
	for i := length - 1; i < len(vals); i++ {
		m := mid[i]
		if !model.Defined(m) {
			continue
		}
		var ss float64
		for j := i - length + 1; j <= i; j++ {
			d := vals[j] - m
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(length-1))
		upper[i] = m + mult*sd
		lower[i] = m - mult*sd
	}
	return upper, lower
}

// MACD returns the MACD line, signal line, and histogram.
func MACD(vals []float64, fast, slow, signal int) (line, sig, hist []float64) {
	emaFast := EMA(vals, fast)
	emaSlow := EMA(vals, slow)
	line = nanSlice(len(vals))
	for i := range vals {
		if model.Defined(emaFast[i]) && model.Defined(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}
	// Signal is an EMA over the defined portion of the MACD line.
	sig = nanSlice(len(vals))
	hist = nanSlice(len(vals))
	start := slow - 1
	if start >= len(vals) {
		return line, sig, hist
	}
	sub := EMA(line[start:], signal)
	for i := range sub {
		sig[start+i] = sub[i]
		if model.Defined(line[start+i]) && model.Defined(sub[i]) {
			hist[start+i] = line[start+i] - sub[i]
		}
	}
	return line, sig, hist
}

// ADX returns Wilder's average directional index.
func ADX(highs, lows, closes []float64, length int) []float64 {
	out := nanSlice(len(closes))
	if length <= 0 || len(closes) <= 2*length {
		return out
	}
	n := len(closes)
	tr := make([]float64, n)
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	for i := 1; i < n; i++ {
		up := highs[i] - highs[i-1]
		down := lows[i-1] - lows[i]
		if up > down && up > 0 {
			plusDM[i] = up
		}
		if down > up && down > 0 {
			minusDM[i] = down
		}
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}

	var smTR, smPlus, smMinus float64
	for i := 1; i <= length; i++ {
		smTR += tr[i]
		smPlus += plusDM[i]
		smMinus += minusDM[i]
	}
	dx := nanSlice(n)
	dx[length] = dxFrom(smPlus, smMinus, smTR)
	for i := length + 1; i < n; i++ {
		smTR = smTR - smTR/float64(length) + tr[i]
		smPlus = smPlus - smPlus/float64(length) + plusDM[i]
		smMinus = smMinus - smMinus/float64(length) + minusDM[i]
		dx[i] = dxFrom(smPlus, smMinus, smTR)
	}

	var sum float64
	for i := length; i < 2*length; i++ {
		sum += dx[i]
	}
	prev := sum / float64(length)
	out[2*length-1] = prev
	for i := 2 * length; i < n; i++ {
		prev = (prev*float64(length-1) + dx[i]) / float64(length)
		out[i] = prev
	}
	return out
}

func dxFrom(smPlus, smMinus, smTR float64) float64 {
	if smTR == 0 {
		return 0
	}
	pdi := 100 * smPlus / smTR
	mdi := 100 * smMinus / smTR
	if pdi+mdi == 0 {
		return 0
	}
	return 100 * math.Abs(pdi-mdi) / (pdi + mdi)
}

// KDJ returns the K and J lines of the KDJ stochastic (RMA smoothing).
func KDJ(highs, lows, closes []float64, length, smooth int) (kOut, jOut []float64) {
	kOut = nanSlice(len(closes))
	jOut = nanSlice(len(closes))
	if length <= 0 || len(closes) < length {
		return kOut, jOut
	}
	alpha := 1.0 / float64(smooth)
	var k, d float64
	started := false
	for i := length - 1; i < len(closes); i++ {
		hh := highs[i]
		ll := lows[i]
		for j := i - length + 1; j <= i; j++ {
			hh = math.Max(hh, highs[j])
			ll = math.Min(ll, lows[j])
		}
		rsv := 50.0
		if hh > ll {
			rsv = (closes[i] - ll) / (hh - ll) * 100
		}
		if !started {
			k, d = rsv, rsv
			started = true
		} else {
			k = alpha*rsv + (1-alpha)*k
			d = alpha*k + (1-alpha)*d
		}
		kOut[i] = k
		jOut[i] = 3*k - 2*d
	}
	return kOut, jOut
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	nan := math.NaN()
	for i := range out {
		out[i] = nan
	}
	return out
}
