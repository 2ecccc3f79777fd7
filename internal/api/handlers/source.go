package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"btc-strategy-lab/internal/api/models"
	"btc-strategy-lab/internal/config"
	"btc-strategy-lab/internal/data"
	"btc-strategy-lab/internal/indicator"
	"btc-strategy-lab/internal/model"
	"btc-strategy-lab/internal/pricing"

	"github.com/gin-gonic/gin"
)

var errEmptySeries = errors.New("no bars in the requested window")

// Deps is the shared wiring every handler needs: defaults, the market-data
// client and the risk-free rate source.
type Deps struct {
	Config  *config.Config
	Binance *data.BinanceClient
	Rate    pricing.RateSource
}

// resolveBars turns a request data source into an indicator-annotated,
// ascending bar series.
func (d *Deps) resolveBars(src models.DataSourceConfig) (string, []model.PriceBar, error) {
	var candles []data.Candle
	symbol := src.Symbol

	switch src.Type {
	case "inline":
		for i, c := range src.Candles {
			t, err := parseTime(c.Time)
			if err != nil {
				return "", nil, fmt.Errorf("candle %d: %w", i, err)
			}
			candles = append(candles, data.Candle{
				Time: t, Open: c.Open, High: c.High, Low: c.Low,
				Close: c.Close, Volume: c.Volume,
			})
		}
	case "binance":
		start, err := parseTime(src.StartDate)
		if err != nil {
			return "", nil, fmt.Errorf("start_date: %w", err)
		}
		end, err := parseTime(src.EndDate)
		if err != nil {
			return "", nil, fmt.Errorf("end_date: %w", err)
		}
		candles, err = d.Binance.DailyKlines(src.Symbol, start, end)
		if err != nil {
			return "", nil, err
		}
	default:
		return "", nil, fmt.Errorf("unknown data_source.type %q", src.Type)
	}

	bars, err := data.ToBars(candles)
	if err != nil {
		return "", nil, err
	}
	indicator.Compute(bars)
	indicator.ComputeCycle(bars)
	return symbol, bars, nil
}

// effectiveConfig overlays request overrides on the server defaults.
func (d *Deps) effectiveConfig(o models.StrategyOverrides) *config.Config {
	override := &config.Config{
		InitialCapital: o.InitialCapital,
		FeeRate:        o.FeeRate,
		SlippageRate:   o.SlippageRate,
		RiskFreeRate:   o.RiskFreeRate,
		Swing: config.SwingConfig{
			EntryRSI:   o.EntryRSI,
			EntryADX:   o.EntryADX,
			EMADistMax: o.EMADistMax,
		},
		Dual: config.DualConfig{
			CallRisk:     o.CallRisk,
			PutRisk:      o.PutRisk,
			CooldownDays: o.CooldownDays,
			TermDays:     o.TermDays,
		},
	}
	return config.Merge(d.Config, override)
}

// riskFree resolves the rate: explicit override first, then the source.
func (d *Deps) riskFree(o models.StrategyOverrides) float64 {
	if o.RiskFreeRate != 0 {
		return o.RiskFreeRate
	}
	if d.Rate != nil {
		return d.Rate.RiskFreeRate()
	}
	return d.Config.RiskFreeRate
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}

func window(bars []model.PriceBar) models.TimeWindow {
	if len(bars) == 0 {
		return models.TimeWindow{}
	}
	return models.TimeWindow{Start: bars[0].Time, End: bars[len(bars)-1].Time}
}
