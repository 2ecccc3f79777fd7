package swing

import (
	"btc-strategy-lab/internal/model"
)

// Params configures a swing backtest run.
type Params struct {
	InitialCapital float64
	FeeRate        float64 // per-side, as a fraction (0.001 = 0.1%)
	SlippageRate   float64 // per-side, as a fraction
	Thresholds     Thresholds
}

// DefaultParams returns the documented defaults: 10k starting capital,
// no friction, stock thresholds.
func DefaultParams() Params {
	return Params{
		InitialCapital: 10_000,
		Thresholds:     DefaultThresholds(),
	}
}

// position is the engine's finite-state value: flat, or invested with the
// entry recorded. Threading it explicitly keeps every transition visible.
type position struct {
	invested   bool
	entryPrice float64 // effective (friction-adjusted) entry price
	size       float64 // crypto units held
}

// Run executes the swing backtest over bars, which must be sorted ascending.
//
// Stage one computes the entry/exit boolean vectors for the whole series;
// stage two is a single sequential pass of the CASH/INVESTED state machine.
// At most one position is open at a time: entry signals are ignored while
// invested and exit signals are ignored while in cash.
//
// An empty input returns a zeroed Result, not an error.
func Run(bars []model.PriceBar, p Params) Result {
	if len(bars) == 0 {
		return Result{}
	}

	sig := computeSignals(bars, p.Thresholds)

	balance := p.InitialCapital
	var pos position
	trades := make([]Trade, 0, 16)

	for i := range bars {
		price := bars[i].Close

		switch {
		case !pos.invested && sig.entry[i]:
			// Friction works against the buyer: entry fills above the close.
			effective := price * (1 + p.FeeRate + p.SlippageRate)
			size := balance / effective
			trades = append(trades, Trade{
				Type:           Buy,
				Time:           bars[i].Time,
				Price:          price,
				EffectivePrice: effective,
				Balance:        balance,
				Position:       size,
				Reason:         "Sweet Spot",
			})
			pos = position{invested: true, entryPrice: effective, size: size}
			balance = 0

		case pos.invested && sig.exit[i]:
			effective := price * (1 - p.FeeRate - p.SlippageRate)
			proceeds := pos.size * effective
			cost := pos.size * pos.entryPrice
			trades = append(trades, Trade{
				Type:           Sell,
				Time:           bars[i].Time,
				Price:          price,
				EffectivePrice: effective,
				Balance:        proceeds,
				Position:       0,
				Reason:         "Trend Break (<EMA20)",
				PnL:            proceeds - cost,
				PnLPct:         (effective/pos.entryPrice - 1) * 100,
			})
			balance = proceeds
			pos = position{}
		}
	}

	// Terminal mark: a still-open position is valued at the last close
	// without friction, since it is unrealized.
	finalEquity := balance
	if pos.invested {
		finalEquity = pos.size * bars[len(bars)-1].Close
	}

	roi := 0.0
	if p.InitialCapital != 0 {
		roi = (finalEquity - p.InitialCapital) / p.InitialCapital * 100
	}

	// The equity curve is built strictly from settlement events plus the
	// terminal mark; open-position marks never enter the drawdown.
	equity := make([]float64, 0, len(trades)+2)
	equity = append(equity, p.InitialCapital)
	tradeCount := 0
	for _, t := range trades {
		if t.Type == Sell {
			equity = append(equity, t.Balance)
			tradeCount++
		}
	}
	equity = append(equity, finalEquity)

	return Result{
		Trades:         trades,
		FinalEquity:    finalEquity,
		ROIPct:         roi,
		TradeCount:     tradeCount,
		MaxDrawdownPct: MaxDrawdown(equity),
		Stats:          computeStats(trades),
	}
}
