package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10_000.0, cfg.InitialCapital)
	assert.Equal(t, 0.04, cfg.RiskFreeRate)
	assert.Equal(t, 50.0, cfg.Swing.EntryRSI)
	assert.Equal(t, 3, cfg.Dual.TermDays)
}

func TestMergeOverlaysNonZero(t *testing.T) {
	base := Default()
	out := Merge(base, &Config{
		FeeRate: 0.002,
		Swing:   SwingConfig{EntryRSI: 55},
		Dual:    DualConfig{CooldownDays: 2},
	})

	assert.Equal(t, 0.002, out.FeeRate)
	assert.Equal(t, 55.0, out.Swing.EntryRSI)
	assert.Equal(t, 2, out.Dual.CooldownDays)

	// Untouched fields keep the defaults; base itself is not mutated.
	assert.Equal(t, base.InitialCapital, out.InitialCapital)
	assert.Equal(t, 0.001, base.FeeRate)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
initial_capital: 25000
fee_rate: 0.0015
swing:
  entry_rsi: 55
  ema_dist_max: 2.0
dual:
  call_risk: 0.8
`)
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25_000.0, cfg.InitialCapital)
	assert.Equal(t, 0.0015, cfg.FeeRate)
	assert.Equal(t, 55.0, cfg.Swing.EntryRSI)
	assert.Equal(t, 2.0, cfg.Swing.EMADistMax)
	assert.Equal(t, 0.8, cfg.Dual.CallRisk)
	// Unmentioned sections keep defaults.
	assert.Equal(t, 0.0005, cfg.SlippageRate)
	assert.Equal(t, 3, cfg.Dual.TermDays)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fee_rate: 0.5\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadRanges(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative capital", func(c *Config) { c.InitialCapital = -1 }},
		{"fee too high", func(c *Config) { c.FeeRate = 0.2 }},
		{"rate above one", func(c *Config) { c.RiskFreeRate = 1.5 }},
		{"inverted dist band", func(c *Config) { c.Swing.EMADistMin = 3; c.Swing.EMADistMax = 1 }},
		{"negative cooldown", func(c *Config) { c.Dual.CooldownDays = -1 }},
		{"zero term", func(c *Config) { c.Dual.TermDays = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParamMapping(t *testing.T) {
	cfg := Default()
	sp := cfg.SwingParams()
	assert.Equal(t, cfg.InitialCapital, sp.InitialCapital)
	assert.Equal(t, cfg.Swing.EntryRSI, sp.Thresholds.EntryRSI)

	dp := cfg.DualParams(0.05)
	assert.Equal(t, cfg.Dual.CallRisk, dp.CallRisk)
	assert.Equal(t, 0.05, dp.RiskFreeRate)
}
