package ladder

import (
	"math"
	"testing"
	"time"

	"btc-strategy-lab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBar() model.PriceBar {
	b := model.NewPriceBar(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		50000, 50500, 49500, 50000, 1000)
	b.ATR = 800
	b.BBUpper = 51200
	b.BBLower = 48800
	b.R1 = 51500
	b.R2 = 52200
	b.S1 = 48500
	b.S2 = 47800
	return b
}

func TestBuildSellHigh(t *testing.T) {
	tiers := Build(testBar(), model.SellHigh, 3, 0.04)
	require.Len(t, tiers, 3)

	assert.Equal(t, "aggressive", tiers[0].Name)
	assert.Equal(t, "moderate", tiers[1].Name)
	assert.Equal(t, "conservative", tiers[2].Name)

	assert.Equal(t, 30.0, tiers[0].WeightPct)
	assert.Equal(t, 30.0, tiers[1].WeightPct)
	assert.Equal(t, 40.0, tiers[2].WeightPct)

	// Strikes climb strictly away from price, never closer than 1.5%.
	assert.GreaterOrEqual(t, tiers[0].Strike, 50000*1.015)
	assert.Greater(t, tiers[1].Strike, tiers[0].Strike)
	assert.Greater(t, tiers[2].Strike, tiers[1].Strike)

	for _, tier := range tiers {
		assert.Greater(t, tier.DistancePct, 0.0)
		assert.GreaterOrEqual(t, tier.APYPct, 5.0)
	}
	// Deeper strike, cheaper option, lower yield.
	assert.GreaterOrEqual(t, tiers[0].APYPct, tiers[2].APYPct)
}

func TestBuildBuyLow(t *testing.T) {
	tiers := Build(testBar(), model.BuyLow, 3, 0.04)
	require.Len(t, tiers, 3)

	assert.LessOrEqual(t, tiers[0].Strike, 50000*0.985)
	assert.Less(t, tiers[1].Strike, tiers[0].Strike)
	assert.Less(t, tiers[2].Strike, tiers[1].Strike)

	for _, tier := range tiers {
		assert.Greater(t, tier.Strike, 0.0)
		assert.Greater(t, tier.DistancePct, 0.0)
		assert.GreaterOrEqual(t, tier.APYPct, 5.0)
	}
}

func TestBuildSecondTierAbsorbsPivot(t *testing.T) {
	b := testBar()
	b.R2 = 60000 // far pivot pulls the moderate strike out
	tiers := Build(b, model.SellHigh, 3, 0.04)
	require.Len(t, tiers, 3)
	assert.GreaterOrEqual(t, tiers[1].Strike, 60000.0)
	assert.Greater(t, tiers[2].Strike, tiers[1].Strike)
}

func TestBuildMissingPivotsFallsBackToBands(t *testing.T) {
	b := testBar()
	nan := math.NaN()
	b.R1, b.R2, b.S1, b.S2 = nan, nan, nan, nan

	sell := Build(b, model.SellHigh, 3, 0.04)
	require.Len(t, sell, 3)
	assert.GreaterOrEqual(t, sell[0].Strike, 50000*1.015)

	buy := Build(b, model.BuyLow, 3, 0.04)
	require.Len(t, buy, 3)
	assert.LessOrEqual(t, buy[0].Strike, 50000*0.985)
}

func TestBuildUndefinedATR(t *testing.T) {
	b := testBar()
	b.ATR = math.NaN()
	assert.Nil(t, Build(b, model.SellHigh, 3, 0.04))
	assert.Nil(t, Build(b, model.BuyLow, 3, 0.04))
}

func TestBuildHighVolWidensStrikes(t *testing.T) {
	calm := testBar()
	wild := testBar()
	wild.ATR = 1500 // ATR/close = 3% > the 2% regime threshold

	calmTiers := Build(calm, model.SellHigh, 3, 0.04)
	wildTiers := Build(wild, model.SellHigh, 3, 0.04)
	require.Len(t, calmTiers, 3)
	require.Len(t, wildTiers, 3)
	assert.Greater(t, wildTiers[2].Strike, calmTiers[2].Strike)
}
