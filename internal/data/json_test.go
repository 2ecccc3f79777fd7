package data

import (
	"path/filepath"
	"testing"
	"time"

	"btc-strategy-lab/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBarsEnforcesOrdering(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []Candle{
		{Time: base, Close: 100},
		{Time: base.AddDate(0, 0, 2), Close: 101},
		{Time: base.AddDate(0, 0, 1), Close: 102}, // out of order
	}
	_, err := ToBars(candles)
	assert.Error(t, err)

	_, err = ToBars([]Candle{{Time: base, Close: 100}, {Time: base, Close: 100}})
	assert.Error(t, err, "duplicate timestamps must be rejected")
}

func TestToBarsLeavesIndicatorsUndefined(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars, err := ToBars([]Candle{{Time: base, Open: 99, High: 101, Low: 98, Close: 100, Volume: 5}})
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 100.0, bars[0].Close)
	assert.False(t, model.Defined(bars[0].SMA200))
	assert.False(t, model.Defined(bars[0].ATR))
}

func TestCandleJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candles.json")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []Candle{
		{Time: base, Open: 100, High: 105, Low: 99, Close: 104, Volume: 10},
		{Time: base.AddDate(0, 0, 1), Open: 104, High: 106, Low: 103, Close: 105, Volume: 12},
	}
	require.NoError(t, SaveCandleJSON(path, "BTCUSDT", candles))

	symbol, bars, err := LoadCandleJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", symbol)
	require.Len(t, bars, 2)
	assert.Equal(t, 104.0, bars[0].Close)
	assert.True(t, bars[1].Time.After(bars[0].Time))
}

func TestGenerateCandlesDeterministic(t *testing.T) {
	p := SyntheticParams{Days: 50, StartPx: 40000, DriftPct: 0.1, VolPct: 2, Seed: 9}
	a := GenerateCandles(p)
	b := GenerateCandles(p)
	require.Len(t, a, 50)
	assert.Equal(t, a, b)

	c := GenerateCandles(SyntheticParams{Days: 50, StartPx: 40000, DriftPct: 0.1, VolPct: 2, Seed: 10})
	assert.NotEqual(t, a, c)
}

func TestGenerateCandlesShape(t *testing.T) {
	candles := GenerateCandles(SyntheticParams{Days: 100, StartPx: 40000, VolPct: 2, Seed: 1})
	for i, c := range candles {
		assert.GreaterOrEqual(t, c.High, c.Open, "candle %d", i)
		assert.GreaterOrEqual(t, c.High, c.Close, "candle %d", i)
		assert.LessOrEqual(t, c.Low, c.Open, "candle %d", i)
		assert.LessOrEqual(t, c.Low, c.Close, "candle %d", i)
		if i > 0 {
			assert.True(t, c.Time.After(candles[i-1].Time))
		}
	}
}

func TestCandleCacheTTL(t *testing.T) {
	cache := newCandleCache(50 * time.Millisecond)
	cache.set("k", []Candle{{Close: 1}})

	got, ok := cache.get("k")
	require.True(t, ok)
	assert.Len(t, got, 1)

	time.Sleep(60 * time.Millisecond)
	_, ok = cache.get("k")
	assert.False(t, ok)
}

func TestCandleCacheNilSafe(t *testing.T) {
	var cache *candleCache
	assert.NotPanics(t, func() {
		cache.set("k", nil)
		_, ok := cache.get("k")
		assert.False(t, ok)
	})
}
