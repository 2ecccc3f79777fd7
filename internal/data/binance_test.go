package data

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func klineRow(t time.Time, px float64) string {
	return fmt.Sprintf(`[%d,"%.2f","%.2f","%.2f","%.2f","%.2f",0]`,
		t.UnixMilli(), px, px*1.01, px*0.99, px, 1000.0)
}

func TestDailyKlines(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))

		rows := []string{
			klineRow(base, 42000),
			klineRow(base.AddDate(0, 0, 1), 42500),
			klineRow(base.AddDate(0, 0, 2), 43000),
		}
		fmt.Fprintf(w, "[%s]", strings.Join(rows, ","))
	}))
	defer srv.Close()

	c := NewBinanceClient(srv.URL, time.Minute, nil)
	candles, err := c.DailyKlines("BTCUSDT", base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, candles, 3)
	assert.Equal(t, 42000.0, candles[0].Close)
	assert.Equal(t, base, candles[0].Time)
	assert.Equal(t, 43000.0, candles[2].Close)

	// Second identical call is served from the cache.
	_, err = c.DailyKlines("BTCUSDT", base, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestDailyKlinesPaging(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	total := binanceMaxLimit + 5

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startMs, err := strconv.ParseInt(r.URL.Query().Get("startTime"), 10, 64)
		require.NoError(t, err)
		start := time.UnixMilli(startMs).UTC()

		var rows []string
		for d := 0; d < binanceMaxLimit; d++ {
			day := start.AddDate(0, 0, d)
			if day.After(base.AddDate(0, 0, total-1)) {
				break
			}
			rows = append(rows, klineRow(day, 40000))
		}
		fmt.Fprintf(w, "[%s]", strings.Join(rows, ","))
	}))
	defer srv.Close()

	c := NewBinanceClient(srv.URL, 0, nil)
	candles, err := c.DailyKlines("BTCUSDT", base, base.AddDate(0, 0, total-1))
	require.NoError(t, err)
	assert.Len(t, candles, total)
}

func TestDailyKlinesValidation(t *testing.T) {
	c := NewBinanceClient("http://127.0.0.1:0", 0, nil)
	now := time.Now()

	_, err := c.DailyKlines("", now.AddDate(0, 0, -1), now)
	assert.Error(t, err)

	_, err = c.DailyKlines("BTCUSDT", now, now.AddDate(0, 0, -1))
	assert.Error(t, err)

	_, err = c.DailyKlines("BTCUSDT", time.Time{}, now)
	assert.Error(t, err)
}

func TestDailyKlinesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	c := NewBinanceClient(srv.URL, 0, nil)
	_, err := c.DailyKlines("BTCUSDT", time.Now().AddDate(0, 0, -3), time.Now())
	assert.Error(t, err)
}
