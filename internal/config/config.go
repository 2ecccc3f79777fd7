package config

import (
	"errors"
	"fmt"
	"os"

	"btc-strategy-lab/internal/dualinvest"
	"btc-strategy-lab/internal/pricing"
	"btc-strategy-lab/internal/swing"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field has a
// documented default; a missing file section keeps the default.
type Config struct {
	InitialCapital float64 `yaml:"initial_capital"`
	FeeRate        float64 `yaml:"fee_rate"`
	SlippageRate   float64 `yaml:"slippage_rate"`
	RiskFreeRate   float64 `yaml:"risk_free_rate"`
	// DynamicRate switches the risk-free rate to the DeFi benchmark
	// source; RiskFreeRate then only serves as the fallback.
	DynamicRate bool `yaml:"dynamic_rate"`

	Swing SwingConfig `yaml:"swing"`
	Dual  DualConfig  `yaml:"dual"`
}

type SwingConfig struct {
	EntryRSI   float64 `yaml:"entry_rsi"`
	EntryADX   float64 `yaml:"entry_adx"`
	EMADistMin float64 `yaml:"ema_dist_min"`
	EMADistMax float64 `yaml:"ema_dist_max"`
}

type DualConfig struct {
	CallRisk     float64 `yaml:"call_risk"`
	PutRisk      float64 `yaml:"put_risk"`
	CooldownDays int     `yaml:"cooldown_days"`
	TermDays     int     `yaml:"term_days"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		InitialCapital: 10_000,
		FeeRate:        0.001,
		SlippageRate:   0.0005,
		RiskFreeRate:   pricing.DefaultRiskFreeRate,
		Swing: SwingConfig{
			EntryRSI:   50,
			EntryADX:   20,
			EMADistMin: 0,
			EMADistMax: 1.5,
		},
		Dual: DualConfig{
			CallRisk:     0.5,
			PutRisk:      0.5,
			CooldownDays: 0,
			TermDays:     3,
		},
	}
}

// Load reads path, overlays it on the defaults, and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var loaded Config
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return nil, err
	}
	c := Merge(Default(), &loaded)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s invalid: %w", path, err)
	}
	return c, nil
}

// Merge overlays non-zero fields from override onto base.
func Merge(base, override *Config) *Config {
	out := *base
	if override.InitialCapital != 0 {
		out.InitialCapital = override.InitialCapital
	}
	if override.FeeRate != 0 {
		out.FeeRate = override.FeeRate
	}
	if override.SlippageRate != 0 {
		out.SlippageRate = override.SlippageRate
	}
	if override.RiskFreeRate != 0 {
		out.RiskFreeRate = override.RiskFreeRate
	}
	if override.DynamicRate {
		out.DynamicRate = true
	}
	if override.Swing.EntryRSI != 0 {
		out.Swing.EntryRSI = override.Swing.EntryRSI
	}
	if override.Swing.EntryADX != 0 {
		out.Swing.EntryADX = override.Swing.EntryADX
	}
	if override.Swing.EMADistMin != 0 {
		out.Swing.EMADistMin = override.Swing.EMADistMin
	}
	if override.Swing.EMADistMax != 0 {
		out.Swing.EMADistMax = override.Swing.EMADistMax
	}
	if override.Dual.CallRisk != 0 {
		out.Dual.CallRisk = override.Dual.CallRisk
	}
	if override.Dual.PutRisk != 0 {
		out.Dual.PutRisk = override.Dual.PutRisk
	}
	if override.Dual.CooldownDays != 0 {
		out.Dual.CooldownDays = override.Dual.CooldownDays
	}
	if override.Dual.TermDays != 0 {
		out.Dual.TermDays = override.Dual.TermDays
	}
	return &out
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.InitialCapital <= 0 {
		return errors.New("initial_capital must be > 0")
	}
	if c.FeeRate < 0 || c.FeeRate > 0.1 {
		return errors.New("fee_rate must be in [0, 0.1]")
	}
	if c.SlippageRate < 0 || c.SlippageRate > 0.1 {
		return errors.New("slippage_rate must be in [0, 0.1]")
	}
	if c.RiskFreeRate < 0 || c.RiskFreeRate > 1 {
		return errors.New("risk_free_rate must be in [0, 1]")
	}
	if c.Swing.EMADistMin > c.Swing.EMADistMax {
		return errors.New("swing.ema_dist_min must be <= swing.ema_dist_max")
	}
	if c.Dual.CooldownDays < 0 {
		return errors.New("dual.cooldown_days must be >= 0")
	}
	if c.Dual.TermDays <= 0 {
		return errors.New("dual.term_days must be > 0")
	}
	return nil
}

// SwingParams maps the config onto swing engine parameters.
func (c *Config) SwingParams() swing.Params {
	return swing.Params{
		InitialCapital: c.InitialCapital,
		FeeRate:        c.FeeRate,
		SlippageRate:   c.SlippageRate,
		Thresholds: swing.Thresholds{
			EntryRSI:   c.Swing.EntryRSI,
			EntryADX:   c.Swing.EntryADX,
			EMADistMin: c.Swing.EMADistMin,
			EMADistMax: c.Swing.EMADistMax,
		},
	}
}

// DualParams maps the config onto dual-investment engine parameters.
// riskFree overrides the static rate when a dynamic source resolved one.
func (c *Config) DualParams(riskFree float64) dualinvest.Params {
	return dualinvest.Params{
		CallRisk:     c.Dual.CallRisk,
		PutRisk:      c.Dual.PutRisk,
		CooldownDays: c.Dual.CooldownDays,
		RiskFreeRate: riskFree,
	}
}
