package dualinvest

import (
	"fmt"
	"time"

	"btc-strategy-lab/internal/ladder"
	"btc-strategy-lab/internal/model"
)

// Suggestion is the "what would I open right now" view built from the most
// recent bar: a ladder per direction (empty when filtered out) plus the
// reasons a human needs to sanity-check the call.
type Suggestion struct {
	Time       time.Time     `json:"time"`
	Close      float64       `json:"close"`
	SellLadder []ladder.Tier `json:"sell_ladder,omitempty"`
	BuyLadder  []ladder.Tier `json:"buy_ladder,omitempty"`
	Reasons    []string      `json:"reasons"`
}

// Suggest builds the current dual-investment suggestion from the last bar
// of the series. Returns nil for an empty series.
//
// Weekends suppress both ladders; a bearish trend (EMA20 < SMA50)
// additionally suppresses the buy-low ladder.
func Suggest(bars []model.PriceBar, termDays int, riskFree float64) *Suggestion {
	if len(bars) == 0 {
		return nil
	}
	row := bars[len(bars)-1]

	wd := row.Time.Weekday()
	isWeekend := wd == time.Saturday || wd == time.Sunday
	isBearish := model.Defined(row.EMA20) && model.Defined(row.SMA50) && row.EMA20 < row.SMA50

	s := &Suggestion{Time: row.Time, Close: row.Close}

	if !isWeekend {
		s.SellLadder = ladder.Build(row, model.SellHigh, termDays, riskFree)
		if !isBearish {
			s.BuyLadder = ladder.Build(row, model.BuyLow, termDays, riskFree)
		}
	}

	if isWeekend {
		s.Reasons = append(s.Reasons, "weekend filter: thin liquidity, stand aside")
	}
	if isBearish {
		s.Reasons = append(s.Reasons, "trend filter: EMA20 < SMA50 (bearish), buy-low disabled")
	}
	if model.Defined(row.EMA20) && model.Defined(row.SMA50) {
		cmp := ">"
		if isBearish {
			cmp = "<"
		}
		s.Reasons = append(s.Reasons,
			fmt.Sprintf("MA: EMA20 (%.0f) %s SMA50 (%.0f)", row.EMA20, cmp, row.SMA50))
	}
	if model.Defined(row.RSI14) {
		s.Reasons = append(s.Reasons, fmt.Sprintf("RSI: %.1f", row.RSI14))
	}
	if model.Defined(row.J) {
		s.Reasons = append(s.Reasons, fmt.Sprintf("KDJ(J): %.1f", row.J))
	}
	if model.Defined(row.ADX) {
		trend := "ranging"
		if row.ADX > 25 {
			trend = "strong trend"
		}
		s.Reasons = append(s.Reasons, fmt.Sprintf("ADX: %.1f (%s)", row.ADX, trend))
	}
	return s
}
