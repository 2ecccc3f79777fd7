package swing

import "math"

// MaxDrawdown returns the maximum drawdown of an equity curve as a percent,
// always <= 0. A monotonically non-decreasing curve yields exactly 0.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) < 1 {
		return 0.0
	}
	peak := equity[0]
	worst := 0.0
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if peak > 0 {
			dd := (e - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst * 100
}

// computeStats derives win rate, mean win/loss and a per-trade Sharpe-like
// ratio from the closed trades. Fewer than two closed trades, or zero
// dispersion, yields a Sharpe of 0.
func computeStats(trades []Trade) Stats {
	var returns []float64 // per-trade returns as fractions
	for _, t := range trades {
		if t.Type == Sell {
			returns = append(returns, t.PnLPct/100)
		}
	}
	var s Stats
	if len(returns) == 0 {
		return s
	}

	var winSum, lossSum float64
	var wins, losses int
	for _, r := range returns {
		if r > 0 {
			winSum += r * 100
			wins++
		} else {
			lossSum += r * 100
			losses++
		}
	}
	s.WinRatePct = float64(wins) / float64(len(returns)) * 100
	if wins > 0 {
		s.AvgWinPct = winSum / float64(wins)
	}
	if losses > 0 {
		s.AvgLossPct = lossSum / float64(losses)
	}

	if len(returns) > 1 {
		mean := 0.0
		for _, r := range returns {
			mean += r
		}
		mean /= float64(len(returns))
		var ss float64
		for _, r := range returns {
			d := r - mean
			ss += d * d
		}
		std := math.Sqrt(ss / float64(len(returns))) // population stdev
		if std > 0 {
			s.Sharpe = mean / std * math.Sqrt(252)
		}
	}
	return s
}
