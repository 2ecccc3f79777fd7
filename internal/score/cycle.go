package score

import "btc-strategy-lab/internal/model"

// Cycle maps a bar to a -100..+100 market position score: the bull
// (overheat) composite minus the bear (bottom) composite.
//
//	-100 = deep bear / historic bottom (all bottom indicators firing)
//	   0 = neutral transition zone
//	+100 = euphoric top (all overheat indicators firing)
//
// The bear half reuses the bottom-score table; the bull half mirrors it
// with overheat thresholds. Ratio-style indicators ignore non-positive
// values (a warm-up zero must not read as "below every breakpoint").
func Cycle(bar model.PriceBar) int {
	ahr := safe(bar.AHR999)
	mvrv := safe(bar.MVRVZProxy)
	piGap := safe(bar.PiCycleGap)
	sma200w := safe(bar.SMA200WRatio)
	puell := safe(bar.PuellProxy)
	rsiM := safe(bar.RSIMonthly)
	plRatio := safe(bar.PowerLawRatio)
	mayer := safe(bar.MayerMultiple)

	bear := 0
	if ahr > 0 {
		bear += bucket(ahr, []float64{0.45, 0.8, 1.2}, []int{20, 13, 5})
	}
	bear += bucket(mvrv, []float64{-1.0, 0, 2.0}, []int{18, 12, 4})
	bear += bucket(piGap, []float64{-10, -3, 5}, []int{15, 10, 4})
	if sma200w > 0 {
		bear += bucket(sma200w, []float64{1.0, 1.3, 2.0}, []int{15, 11, 5})
	}
	if puell > 0 {
		bear += bucket(puell, []float64{0.5, 0.8, 1.5}, []int{12, 8, 3})
	}
	if rsiM > 0 {
		bear += bucket(rsiM, []float64{30, 40, 55}, []int{10, 7, 2})
	}
	if plRatio > 0 {
		bear += bucket(plRatio, []float64{2.0, 5.0}, []int{5, 3})
	}
	if mayer > 0 {
		bear += bucket(mayer, []float64{0.8, 1.0}, []int{5, 3})
	}

	bull := 0
	if ahr > 0 {
		bull += bucketGE(ahr, []float64{2.0, 1.5, 1.2}, []int{20, 13, 5})
	}
	bull += bucketGE(mvrv, []float64{5.0, 3.5, 2.0}, []int{18, 12, 4})
	bull += bucketGE(piGap, []float64{15, 10, 5}, []int{15, 10, 4})
	if sma200w > 0 {
		bull += bucketGE(sma200w, []float64{5.0, 4.0, 3.0, 2.0}, []int{15, 11, 5, 1})
	}
	if puell > 0 {
		bull += bucketGE(puell, []float64{4.0, 2.0, 1.5}, []int{12, 8, 3})
	}
	if rsiM > 0 {
		bull += bucketGE(rsiM, []float64{75, 65, 55}, []int{10, 7, 2})
	}
	if plRatio > 0 {
		bull += bucketGE(plRatio, []float64{15, 10, 7}, []int{5, 3, 1})
	}
	if mayer > 0 {
		bull += bucketGE(mayer, []float64{2.4, 2.0, 1.5}, []int{5, 3, 1})
	}

	raw := bull - bear
	if raw < -100 {
		return -100
	}
	if raw > 100 {
		return 100
	}
	return raw
}

func safe(v float64) float64 {
	if !model.Defined(v) {
		return 0
	}
	return v
}

// bucket awards points[i] for the first ascending breakpoint v is below.
func bucket(v float64, breakpoints []float64, points []int) int {
	for i, bp := range breakpoints {
		if v < bp {
			return points[i]
		}
	}
	return 0
}

// bucketGE awards points[i] for the first descending breakpoint v reaches.
func bucketGE(v float64, breakpoints []float64, points []int) int {
	for i, bp := range breakpoints {
		if v >= bp {
			return points[i]
		}
	}
	return 0
}
