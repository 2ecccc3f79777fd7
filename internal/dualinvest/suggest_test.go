package dualinvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-strategy-lab/internal/model"
)

func TestSuggestEmptySeries(t *testing.T) {
	assert.Nil(t, Suggest(nil, 1, 0.04))
}

func TestSuggestWeekday(t *testing.T) {
	bars := []model.PriceBar{flatBar(monday2024, 50000)}
	s := Suggest(bars, 1, 0.04)
	require.NotNil(t, s)
	assert.Len(t, s.SellLadder, 3)
	assert.Len(t, s.BuyLadder, 3)
	assert.NotEmpty(t, s.Reasons)
}

func TestSuggestWeekendStandsAside(t *testing.T) {
	saturday := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	bars := []model.PriceBar{flatBar(saturday, 50000)}
	s := Suggest(bars, 1, 0.04)
	require.NotNil(t, s)
	assert.Empty(t, s.SellLadder)
	assert.Empty(t, s.BuyLadder)
	assert.Contains(t, s.Reasons[0], "weekend")
}

func TestSuggestBearishDisablesBuyLow(t *testing.T) {
	b := flatBar(monday2024, 50000)
	b.EMA20 = 48000
	b.SMA50 = 49000
	s := Suggest([]model.PriceBar{b}, 1, 0.04)
	require.NotNil(t, s)
	assert.Len(t, s.SellLadder, 3)
	assert.Empty(t, s.BuyLadder)
}
