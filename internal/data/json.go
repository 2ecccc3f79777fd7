package data

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"btc-strategy-lab/internal/model"
)

// Candle is the on-disk JSON shape of one raw OHLCV row. Indicators are
// never persisted; they are recomputed from the raw series on load.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// CandleFile is the top-level JSON document.
type CandleFile struct {
	Symbol  string   `json:"symbol"`
	Candles []Candle `json:"candles"`
}

// LoadCandleJSON reads a candle file and returns bars sorted ascending with
// all indicator fields undefined. Callers run the indicator pass themselves.
func LoadCandleJSON(path string) (string, []model.PriceBar, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	var file CandleFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return "", nil, err
	}
	bars, err := ToBars(file.Candles)
	if err != nil {
		return "", nil, err
	}
	return file.Symbol, bars, nil
}

// SaveCandleJSON writes a candle file.
func SaveCandleJSON(path, symbol string, candles []Candle) error {
	raw, err := json.MarshalIndent(CandleFile{Symbol: symbol, Candles: candles}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// ToBars converts raw candles into price bars, enforcing the engines'
// input contract: ascending, duplicate-free timestamps.
func ToBars(candles []Candle) ([]model.PriceBar, error) {
	bars := make([]model.PriceBar, 0, len(candles))
	for i, c := range candles {
		if i > 0 && !c.Time.After(candles[i-1].Time) {
			return nil, fmt.Errorf("candle %d: timestamps must be strictly ascending", i)
		}
		bars = append(bars, model.NewPriceBar(c.Time, c.Open, c.High, c.Low, c.Close, c.Volume))
	}
	return bars, nil
}
