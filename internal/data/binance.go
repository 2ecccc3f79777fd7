package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const binanceMaxLimit = 1000

// BinanceClient fetches daily klines from the Binance public market-data
// API. No API key is required for klines.
type BinanceClient struct {
	BaseURL string
	Client  *http.Client

	log   *zap.Logger
	cache *candleCache
}

// NewBinanceClient creates a client. If baseURL is empty, defaults to
// "https://api.binance.com". cacheTTL <= 0 disables response caching.
func NewBinanceClient(baseURL string, cacheTTL time.Duration, logger *zap.Logger) *BinanceClient {
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &BinanceClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
	if cacheTTL > 0 {
		c.cache = newCandleCache(cacheTTL)
	}
	return c
}

// DailyKlines fetches 1d candles for symbol in [start, end], paging through
// the API's 1000-row limit.
func (c *BinanceClient) DailyKlines(symbol string, start, end time.Time) ([]Candle, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("start and end are required")
	}
	if start.After(end) {
		return nil, fmt.Errorf("start must be before end")
	}

	cacheKey := fmt.Sprintf("%s:%s:%s", symbol,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if cached, ok := c.cache.get(cacheKey); ok {
		c.log.Debug("kline cache hit",
			zap.String("symbol", symbol), zap.Int("candles", len(cached)))
		return cached, nil
	}

	var out []Candle
	cursor := start
	for !cursor.After(end) {
		batch, err := c.fetchPage(symbol, cursor, end)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}
		out = append(out, batch...)
		cursor = batch[len(batch)-1].Time.AddDate(0, 0, 1)
		if len(batch) < binanceMaxLimit {
			break
		}
	}

	c.cache.set(cacheKey, out)
	c.log.Info("klines fetched",
		zap.String("symbol", symbol), zap.Int("candles", len(out)))
	return out, nil
}

func (c *BinanceClient) fetchPage(symbol string, start, end time.Time) ([]Candle, error) {
	u, err := url.Parse(c.BaseURL + "/api/v3/klines")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("symbol", symbol)
	q.Set("interval", "1d")
	q.Set("startTime", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("endTime", strconv.FormatInt(end.UnixMilli(), 10))
	q.Set("limit", strconv.Itoa(binanceMaxLimit))
	u.RawQuery = q.Encode()

	resp, err := c.Client.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("klines request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("klines request: status %d", resp.StatusCode)
	}

	// Each kline is a mixed-type array:
	// [openTime, open, high, low, close, volume, closeTime, ...]
	var rows [][]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	candles := make([]Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) < 6 {
			return nil, fmt.Errorf("kline %d: short row", i)
		}
		var openMs int64
		if err := json.Unmarshal(row[0], &openMs); err != nil {
			return nil, fmt.Errorf("kline %d: open time: %w", i, err)
		}
		vals := make([]float64, 5)
		for j := 1; j <= 5; j++ {
			var s string
			if err := json.Unmarshal(row[j], &s); err != nil {
				return nil, fmt.Errorf("kline %d: field %d: %w", i, j, err)
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("kline %d: field %d: %w", i, j, err)
			}
			vals[j-1] = v
		}
		candles = append(candles, Candle{
			Time:   time.UnixMilli(openMs).UTC(),
			Open:   vals[0],
			High:   vals[1],
			Low:    vals[2],
			Close:  vals[3],
			Volume: vals[4],
		})
	}
	return candles, nil
}
