package models

import (
	"time"

	"btc-strategy-lab/internal/dualinvest"
	"btc-strategy-lab/internal/optimize"
	"btc-strategy-lab/internal/score"
	"btc-strategy-lab/internal/swing"
)

// SwingBacktestResponse is the result of a swing backtest run.
type SwingBacktestResponse struct {
	Symbol  string        `json:"symbol,omitempty"`
	Bars    int           `json:"bars"`
	Window  TimeWindow    `json:"window"`
	Summary swing.Result  `json:"summary"`
	Trades  []swing.Trade `json:"trades,omitempty"`
}

// TimeWindow represents a time range.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DualBacktestResponse is the result of a dual-investment backtest run.
type DualBacktestResponse struct {
	Symbol         string             `json:"symbol,omitempty"`
	Bars           int                `json:"bars"`
	Window         TimeWindow         `json:"window"`
	FinalEquityBTC float64            `json:"final_equity_btc"`
	Opens          int                `json:"opens"`
	Settlements    int                `json:"settlements"`
	Events         []dualinvest.Event `json:"events,omitempty"`
}

// ScoreResponse carries either the latest-row breakdown or the full
// historical series.
type ScoreResponse struct {
	Symbol     string                  `json:"symbol,omitempty"`
	Time       time.Time               `json:"time"`
	TotalScore int                     `json:"total_score"`
	CycleScore int                     `json:"cycle_score"`
	Breakdown  map[string]score.Detail `json:"breakdown,omitempty"`
	History    []ScorePoint            `json:"history,omitempty"`
}

// ScorePoint is one row of the historical score series.
type ScorePoint struct {
	Time  time.Time `json:"time"`
	Score int       `json:"score"`
}

// LadderResponse is the current dual-investment suggestion.
type LadderResponse struct {
	Symbol     string                 `json:"symbol,omitempty"`
	Suggestion *dualinvest.Suggestion `json:"suggestion"`
}

// OptimizeResponse ranks swept threshold combinations by ROI.
type OptimizeResponse struct {
	Symbol     string               `json:"symbol,omitempty"`
	Bars       int                  `json:"bars"`
	Candidates []optimize.Candidate `json:"candidates"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
