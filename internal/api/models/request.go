package models

// DataSourceConfig defines where the OHLCV series comes from. Either an
// inline candle array or a Binance symbol + date range.
type DataSourceConfig struct {
	Type      string       `json:"type" binding:"required"` // "inline" | "binance"
	Symbol    string       `json:"symbol,omitempty"`
	StartDate string       `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string       `json:"end_date,omitempty"`   // YYYY-MM-DD
	Candles   []CandleJSON `json:"candles,omitempty"`
}

// CandleJSON is one inline OHLCV row.
type CandleJSON struct {
	Time   string  `json:"time" binding:"required"` // RFC3339 or YYYY-MM-DD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close" binding:"required"`
	Volume float64 `json:"volume"`
}

// StrategyOverrides carries per-request parameter overrides; zero fields
// keep the server defaults.
type StrategyOverrides struct {
	InitialCapital float64 `json:"initial_capital,omitempty"`
	FeeRate        float64 `json:"fee_rate,omitempty"`
	SlippageRate   float64 `json:"slippage_rate,omitempty"`
	RiskFreeRate   float64 `json:"risk_free_rate,omitempty"`

	EntryRSI   float64 `json:"entry_rsi,omitempty"`
	EntryADX   float64 `json:"entry_adx,omitempty"`
	EMADistMax float64 `json:"ema_dist_max,omitempty"`

	CallRisk     float64 `json:"call_risk,omitempty"`
	PutRisk      float64 `json:"put_risk,omitempty"`
	CooldownDays int     `json:"cooldown_days,omitempty"`
	TermDays     int     `json:"term_days,omitempty"`
}

// SwingBacktestRequest is the body of POST /api/v1/backtest/swing.
type SwingBacktestRequest struct {
	DataSource DataSourceConfig  `json:"data_source" binding:"required"`
	Overrides  StrategyOverrides `json:"overrides,omitempty"`
	// IncludeTrades controls whether the full trade log is returned.
	IncludeTrades bool `json:"include_trades,omitempty"`
}

// DualBacktestRequest is the body of POST /api/v1/backtest/dual.
type DualBacktestRequest struct {
	DataSource    DataSourceConfig  `json:"data_source" binding:"required"`
	Overrides     StrategyOverrides `json:"overrides,omitempty"`
	IncludeEvents bool              `json:"include_events,omitempty"`
}

// ScoreRequest is the body of POST /api/v1/score.
type ScoreRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	// History returns the full score series instead of just the latest row.
	History bool `json:"history,omitempty"`
}

// LadderRequest is the body of POST /api/v1/ladder.
type LadderRequest struct {
	DataSource DataSourceConfig  `json:"data_source" binding:"required"`
	Overrides  StrategyOverrides `json:"overrides,omitempty"`
}

// OptimizeRequest is the body of POST /api/v1/optimize.
type OptimizeRequest struct {
	DataSource DataSourceConfig  `json:"data_source" binding:"required"`
	Overrides  StrategyOverrides `json:"overrides,omitempty"`
	EntryRSI   []float64         `json:"entry_rsi,omitempty"`
	EntryADX   []float64         `json:"entry_adx,omitempty"`
	EMADistMax []float64         `json:"ema_dist_max,omitempty"`
	Top        int               `json:"top,omitempty"` // 0 = all
}
