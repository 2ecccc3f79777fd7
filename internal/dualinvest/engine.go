package dualinvest

import (
	"math"
	"time"

	"btc-strategy-lab/internal/model"
	"btc-strategy-lab/internal/pricing"
)

// Params configures the rolling dual-investment backtest.
type Params struct {
	CallRisk     float64 // widens SELL_HIGH strikes; buffer = ATR x (1+risk)
	PutRisk      float64 // widens BUY_LOW strikes
	CooldownDays int     // settle-to-reopen wait; 0 = reopen same day
	RiskFreeRate float64
}

// DefaultParams mirrors the documented defaults.
func DefaultParams() Params {
	return Params{
		CallRisk:     0.5,
		PutRisk:      0.5,
		CooldownDays: 0,
		RiskFreeRate: pricing.DefaultRiskFreeRate,
	}
}

// Event is one row of the open/settlement log. EquityBTC is the balance
// expressed in the risk asset at that instant; accumulating BTC, not
// nominal balance, is the product's objective.
type Event struct {
	Action    string            `json:"action"` // Open | Settlement
	Time      time.Time         `json:"time"`
	Fixing    float64           `json:"fixing"`
	Strike    float64           `json:"strike"`
	Asset     model.Asset       `json:"asset"`
	Balance   float64           `json:"balance"`
	Product   model.ProductKind `json:"product,omitempty"`
	Note      string            `json:"note"`
	EquityBTC float64           `json:"equity_btc"`
}

// lockState is the LOCKED half of the IDLE/LOCKED state machine. The zero
// value means IDLE.
type lockState struct {
	locked   bool
	product  model.ProductKind
	strike   float64
	openedAt time.Time
	settleAt time.Time
}

// Run simulates the daily rolling strategy over bars (sorted ascending,
// daily cadence), starting from 1.0 BTC.
//
// Direction follows the held asset: holding BTC opens SELL_HIGH; holding
// USDT opens BUY_LOW unless the trend filter (EMA20 < SMA50) forbids
// catching a falling knife. No positions open on weekends; a Friday open
// runs a 3-day term to span the weekend, any other weekday 1 day. While
// LOCKED the position accrues silently until the settlement date.
//
// An empty input returns an empty log.
func Run(bars []model.PriceBar, p Params) []Event {
	if len(bars) == 0 {
		return nil
	}

	log := make([]Event, 0, 64)
	asset := model.AssetBTC
	balance := 1.0
	var lock lockState
	var cooldownEnd time.Time
	lastTime := bars[len(bars)-1].Time

	for i := 0; i < len(bars)-1; i++ {
		row := &bars[i]
		now := row.Time

		// ── settlement ───────────────────────────────────────────────
		if lock.locked {
			if now.Before(lock.settleAt) {
				continue
			}

			fixing := row.Close
			// Volatility proxy from ATR; fall back to the 30% floor when the
			// settlement row's ATR is undefined.
			vol := 0.3
			if model.Defined(row.ATR) && row.Close > 0 {
				vol = (row.ATR / row.Close) * math.Sqrt(365*24) * 0.5
			}
			elapsed := daysBetween(lock.openedAt, lock.settleAt)

			optKind := pricing.Call
			if lock.product == model.BuyLow {
				optKind = pricing.Put
			}
			periodYield := pricing.PriceToAPY(row.Close, lock.strike, float64(elapsed), vol, p.RiskFreeRate, optKind) *
				(float64(elapsed) / 365.0)

			var note string
			if lock.product == model.SellHigh {
				totalBTC := balance * (1 + periodYield)
				if fixing >= lock.strike {
					// Called away: yield-inflated BTC converts at the strike.
					balance = totalBTC * lock.strike
					asset = model.AssetUSDT
					note = "called away (to USDT)"
				} else {
					balance = totalBTC
					asset = model.AssetBTC
					note = "kept BTC + yield"
				}
			} else {
				totalUSDT := balance * (1 + periodYield)
				if fixing <= lock.strike {
					// Assigned: buy the dip at the strike.
					balance = totalUSDT / lock.strike
					asset = model.AssetBTC
					note = "bought the dip (to BTC)"
				} else {
					balance = totalUSDT
					asset = model.AssetUSDT
					note = "kept USDT + yield"
				}
			}

			log = append(log, Event{
				Action:    "Settlement",
				Time:      now,
				Fixing:    fixing,
				Strike:    lock.strike,
				Asset:     asset,
				Balance:   balance,
				Product:   lock.product,
				Note:      note,
				EquityBTC: equityBTC(asset, balance, fixing),
			})

			cooldownEnd = now.AddDate(0, 0, p.CooldownDays)
			lock = lockState{}
		}

		// ── open ─────────────────────────────────────────────────────
		if !lock.locked {
			if p.CooldownDays > 0 && now.Before(cooldownEnd) {
				continue
			}

			wd := now.Weekday()
			if wd == time.Saturday || wd == time.Sunday {
				// Weekend liquidity is poor; stay flat.
				continue
			}

			term := 1
			if wd == time.Friday {
				term = 3 // span the weekend
			}
			settleAt := now.AddDate(0, 0, term)
			if settleAt.After(lastTime) {
				continue
			}

			if !model.Defined(row.ATR) || !model.Defined(row.Close) || row.Close <= 0 {
				continue
			}
			atrPct := row.ATR / row.Close

			// Volatility-regime multiplier: tighten strikes in high vol,
			// widen in low vol. Hand-tuned; keep the literal thresholds.
			dyn := 1.0
			if atrPct > 0.015 {
				dyn = 0.8
			} else if atrPct < 0.005 {
				dyn = 1.2
			}

			var strike float64
			var product model.ProductKind
			if asset == model.AssetBTC {
				if !model.Defined(row.BBUpper) {
					continue
				}
				buf := row.ATR * (1 + p.CallRisk) * dyn
				if model.Defined(row.ADX) && row.ADX > 25 {
					buf *= 1.5
				}
				if model.Defined(row.J) && row.J < 20 {
					// Oversold bounce risk: widen the call strike.
					buf *= 1.2
				}
				base := math.Max(row.BBUpper, orDefault(row.R1, row.BBUpper))
				strike = math.Max(base+buf, row.Close*1.01)
				product = model.SellHigh
			} else {
				bearish := model.Defined(row.EMA20) && model.Defined(row.SMA50) &&
					row.EMA20 < row.SMA50
				if bearish {
					// Don't catch a falling knife.
					continue
				}
				if !model.Defined(row.BBLower) {
					continue
				}
				buf := row.ATR * (1 + p.PutRisk) * dyn
				if model.Defined(row.ADX) && row.ADX > 25 {
					buf *= 1.5
				}
				base := math.Min(row.BBLower, orDefault(row.S1, row.BBLower))
				strike = math.Min(base-buf, row.Close*0.99)
				product = model.BuyLow
			}

			lock = lockState{
				locked:   true,
				product:  product,
				strike:   strike,
				openedAt: now,
				settleAt: settleAt,
			}
			log = append(log, Event{
				Action:    "Open",
				Time:      now,
				Fixing:    row.Close,
				Strike:    strike,
				Asset:     asset,
				Balance:   balance,
				Product:   product,
				Note:      "open " + string(product),
				EquityBTC: equityBTC(asset, balance, row.Close),
			})
		}
	}

	return log
}

func equityBTC(asset model.Asset, balance, price float64) float64 {
	if asset == model.AssetBTC {
		return balance
	}
	if price <= 0 {
		return 0
	}
	return balance / price
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func orDefault(v, fallback float64) float64 {
	if model.Defined(v) {
		return v
	}
	return fallback
}
