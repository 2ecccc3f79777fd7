package dualinvest

import (
	"math"
	"testing"
	"time"

	"btc-strategy-lab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatBar builds a bar with everything the open logic needs: defined ATR,
// Bollinger bands, and a healthy (EMA20 >= SMA50) trend.
func flatBar(t time.Time, closePx float64) model.PriceBar {
	b := model.NewPriceBar(t, closePx, closePx*1.01, closePx*0.99, closePx, 1000)
	b.ATR = closePx * 0.01
	b.BBUpper = closePx * 1.02
	b.BBLower = closePx * 0.98
	b.EMA20 = closePx
	b.SMA50 = closePx * 0.98
	return b
}

// monday2024 is a convenient Monday anchor.
var monday2024 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func series(days int, closePx float64) []model.PriceBar {
	bars := make([]model.PriceBar, days)
	for i := range bars {
		bars[i] = flatBar(monday2024.AddDate(0, 0, i), closePx)
	}
	return bars
}

func TestRunEmptyInput(t *testing.T) {
	assert.Nil(t, Run(nil, DefaultParams()))
}

func TestRunNeverOpensOnWeekends(t *testing.T) {
	events := Run(series(60, 50000), DefaultParams())
	require.NotEmpty(t, events)
	for _, ev := range events {
		if ev.Action == "Open" {
			wd := ev.Time.Weekday()
			assert.NotEqual(t, time.Saturday, wd)
			assert.NotEqual(t, time.Sunday, wd)
		}
	}
}

func TestRunFridayTermSpansWeekend(t *testing.T) {
	// Thursday through Tuesday. The Thursday open settles Friday; the
	// Friday open runs a 3-day term and settles Monday.
	start := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC) // Thursday
	bars := make([]model.PriceBar, 6)
	for i := range bars {
		bars[i] = flatBar(start.AddDate(0, 0, i), 50000)
	}
	events := Run(bars, DefaultParams())

	var fridayOpen *Event
	for i := range events {
		if events[i].Action == "Open" && events[i].Time.Weekday() == time.Friday {
			fridayOpen = &events[i]
		}
	}
	require.NotNil(t, fridayOpen)

	// Its settlement lands on the Monday, 3 days later.
	var settled *Event
	for i := range events {
		if events[i].Action == "Settlement" && events[i].Time.After(fridayOpen.Time) {
			settled = &events[i]
			break
		}
	}
	require.NotNil(t, settled)
	assert.Equal(t, time.Monday, settled.Time.Weekday())
	assert.Equal(t, 3, daysBetween(fridayOpen.Time, settled.Time))
}

func TestRunSellHighCalledAway(t *testing.T) {
	// Monday open at 50k, Tuesday gaps far above any strike: the BTC is
	// called away at the strike and the balance lands in USDT.
	bars := []model.PriceBar{
		flatBar(monday2024, 50000),
		flatBar(monday2024.AddDate(0, 0, 1), 70000),
		flatBar(monday2024.AddDate(0, 0, 2), 70000),
	}
	events := Run(bars, DefaultParams())
	require.NotEmpty(t, events)

	open := events[0]
	require.Equal(t, "Open", open.Action)
	assert.Equal(t, model.SellHigh, open.Product)
	assert.Equal(t, model.AssetBTC, open.Asset)
	assert.GreaterOrEqual(t, open.Strike, 50000*1.01)

	settle := events[1]
	require.Equal(t, "Settlement", settle.Action)
	assert.Equal(t, "called away (to USDT)", settle.Note)
	assert.Equal(t, model.AssetUSDT, settle.Asset)
	// 1 BTC plus yield, converted at the strike.
	assert.Greater(t, settle.Balance, open.Strike)
	assert.InDelta(t, settle.Balance/70000, settle.EquityBTC, 1e-12)
	// Selling below the fixing costs BTC-denominated equity.
	assert.Less(t, settle.EquityBTC, 1.0)
}

func TestRunSellHighKeptBTC(t *testing.T) {
	// Price stays put, the strike is never touched: keep the BTC plus the
	// period yield.
	bars := series(3, 50000)
	events := Run(bars, DefaultParams())
	require.GreaterOrEqual(t, len(events), 2)

	settle := events[1]
	require.Equal(t, "Settlement", settle.Action)
	assert.Equal(t, "kept BTC + yield", settle.Note)
	assert.Equal(t, model.AssetBTC, settle.Asset)
	assert.Greater(t, settle.Balance, 1.0)
	assert.Equal(t, settle.Balance, settle.EquityBTC)
}

func TestRunBuyLowBlockedWhileBearish(t *testing.T) {
	// Force a called-away conversion to USDT, then turn the trend bearish:
	// no BUY_LOW may open while EMA20 < SMA50.
	bars := []model.PriceBar{
		flatBar(monday2024, 50000),
	}
	for i := 1; i < 12; i++ {
		b := flatBar(monday2024.AddDate(0, 0, i), 70000)
		b.EMA20 = 68000
		b.SMA50 = 69000
		bars = append(bars, b)
	}
	events := Run(bars, DefaultParams())

	sawSettlement := false
	for _, ev := range events {
		if ev.Action == "Settlement" {
			sawSettlement = true
			continue
		}
		if sawSettlement {
			assert.NotEqual(t, model.BuyLow, ev.Product,
				"opened BUY_LOW into a bearish trend at %s", ev.Time)
		}
	}
	require.True(t, sawSettlement)
}

func TestRunBuyLowRoundTrip(t *testing.T) {
	// Called away to USDT, then a crash through the put strike buys the
	// dip back into BTC.
	bars := []model.PriceBar{
		flatBar(monday2024, 50000),
		flatBar(monday2024.AddDate(0, 0, 1), 70000), // called away
		flatBar(monday2024.AddDate(0, 0, 2), 70000), // BUY_LOW opens
		flatBar(monday2024.AddDate(0, 0, 3), 40000), // assigned
		flatBar(monday2024.AddDate(0, 0, 4), 40000),
	}
	events := Run(bars, DefaultParams())

	var assigned *Event
	for i := range events {
		if events[i].Note == "bought the dip (to BTC)" {
			assigned = &events[i]
		}
	}
	require.NotNil(t, assigned)
	assert.Equal(t, model.AssetBTC, assigned.Asset)
	// USDT balance divided by the put strike, and the strike sat below
	// the open's close.
	assert.Less(t, assigned.Strike, 70000*0.99+1)
	assert.Equal(t, assigned.Balance, assigned.EquityBTC)
}

func TestRunSkipsUndefinedATR(t *testing.T) {
	bars := series(5, 50000)
	for i := range bars {
		bars[i].ATR = math.NaN()
	}
	events := Run(bars, DefaultParams())
	assert.Empty(t, events)
}

func TestRunCooldownDelaysReopen(t *testing.T) {
	noWait := Run(series(30, 50000), DefaultParams())

	p := DefaultParams()
	p.CooldownDays = 3
	withWait := Run(series(30, 50000), p)

	opens := func(evs []Event) int {
		n := 0
		for _, ev := range evs {
			if ev.Action == "Open" {
				n++
			}
		}
		return n
	}
	assert.Less(t, opens(withWait), opens(noWait))
}

func TestEquityBTC(t *testing.T) {
	assert.Equal(t, 1.5, equityBTC(model.AssetBTC, 1.5, 50000))
	assert.InDelta(t, 1.0, equityBTC(model.AssetUSDT, 50000, 50000), 1e-12)
	assert.Equal(t, 0.0, equityBTC(model.AssetUSDT, 50000, 0))
}
