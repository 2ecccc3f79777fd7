package swing

import "time"

// TradeType distinguishes entries from exits in the trade log.
type TradeType string

const (
	Buy  TradeType = "Buy"
	Sell TradeType = "Sell"
)

// Trade is one row of the backtest trade log.
// This is the primary artifact for "what happened" in a backtest.
//
// Price is the raw close at the signal; EffectivePrice includes friction
// (fee + slippage) and is what PnL is computed from.
type Trade struct {
	Type           TradeType `json:"type"`
	Time           time.Time `json:"time"`
	Price          float64   `json:"price"`
	EffectivePrice float64   `json:"effective_price"`
	Balance        float64   `json:"balance"`
	Position       float64   `json:"position"` // crypto units held after the trade
	Reason         string    `json:"reason"`

	// Set on Sell rows only.
	PnL    float64 `json:"pnl,omitempty"`
	PnLPct float64 `json:"pnl_pct,omitempty"`
}

// Stats bundles per-trade statistics over the closed (round-trip) trades.
// Percentages are reported as percents, not fractions.
type Stats struct {
	WinRatePct float64 `json:"win_rate_pct"`
	Sharpe     float64 `json:"sharpe"`
	AvgWinPct  float64 `json:"avg_win_pct"`
	AvgLossPct float64 `json:"avg_loss_pct"`
}

// Result is the full output of a swing backtest run.
type Result struct {
	Trades         []Trade `json:"trades"`
	FinalEquity    float64 `json:"final_equity"`
	ROIPct         float64 `json:"roi_pct"`
	TradeCount     int     `json:"trade_count"` // completed round trips
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
	Stats          Stats   `json:"stats"`
}
