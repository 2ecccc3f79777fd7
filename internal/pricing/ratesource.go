package pricing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RateSource supplies the annualized risk-free rate used by the pricer.
// The pricer itself takes a plain float; callers own caching and fallback.
type RateSource interface {
	RiskFreeRate() float64
}

// FixedRate is a constant risk-free rate.
type FixedRate float64

func (r FixedRate) RiskFreeRate() float64 { return float64(r) }

// Rates outside this band are treated as bad data and ignored.
const (
	minSaneRate = 0.005
	maxSaneRate = 0.20
)

// LlamaRateSource derives a risk-free rate from DeFi lending markets via the
// DeFiLlama pools endpoint: Aave v3 USDT supply APY first, MakerDAO DSR as
// backup, the fixed fallback last. Responses are cached for TTL so repeated
// pricing calls do not hit the network.
type LlamaRateSource struct {
	BaseURL  string
	Fallback float64
	TTL      time.Duration

	client *http.Client
	log    *zap.Logger

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

// NewLlamaRateSource builds a rate source with a 1 hour cache and the 4%
// fixed fallback. logger may be nil.
func NewLlamaRateSource(logger *zap.Logger) *LlamaRateSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LlamaRateSource{
		BaseURL:  "https://yields.llama.fi",
		Fallback: DefaultRiskFreeRate,
		TTL:      time.Hour,
		client:   &http.Client{Timeout: 8 * time.Second},
		log:      logger,
	}
}

type llamaPool struct {
	Project string   `json:"project"`
	Chain   string   `json:"chain"`
	Symbol  string   `json:"symbol"`
	APYBase *float64 `json:"apyBase"`
}

type llamaPoolsResponse struct {
	Data []llamaPool `json:"data"`
}

// RiskFreeRate returns the cached rate when fresh, otherwise refetches.
// It always returns a usable value; network failure degrades to Fallback.
func (s *LlamaRateSource) RiskFreeRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.TTL {
		return s.rate
	}

	rate, err := s.fetch()
	if err != nil || rate < minSaneRate || rate > maxSaneRate {
		if err != nil {
			s.log.Warn("risk-free rate fetch failed, using fallback",
				zap.Error(err), zap.Float64("fallback", s.Fallback))
		} else {
			s.log.Warn("risk-free rate outside sane band, using fallback",
				zap.Float64("rate", rate), zap.Float64("fallback", s.Fallback))
		}
		rate = s.Fallback
	} else {
		s.log.Info("risk-free rate refreshed", zap.Float64("rate", rate))
	}

	s.rate = rate
	s.fetchedAt = time.Now()
	return s.rate
}

func (s *LlamaRateSource) fetch() (float64, error) {
	resp, err := s.client.Get(s.BaseURL + "/pools")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("pools endpoint returned %d", resp.StatusCode)
	}

	var body llamaPoolsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	// Aave v3 USDT supply rate on Ethereum is the primary benchmark.
	if r, ok := findPoolRate(body.Data, func(p llamaPool) bool {
		return p.Project == "aave-v3" && p.Chain == "Ethereum" && p.Symbol == "USDT"
	}); ok {
		return r, nil
	}
	// MakerDAO DSR as backup.
	if r, ok := findPoolRate(body.Data, func(p llamaPool) bool {
		return p.Project == "makerdao" && p.Chain == "Ethereum" &&
			(p.Symbol == "DAI" || p.Symbol == "sDAI")
	}); ok {
		return r, nil
	}
	return 0, fmt.Errorf("no benchmark pool in response")
}

func findPoolRate(pools []llamaPool, match func(llamaPool) bool) (float64, bool) {
	for _, p := range pools {
		if match(p) && p.APYBase != nil && *p.APYBase > 0 {
			// apyBase is a percentage; the pricer wants a fraction.
			return *p.APYBase / 100.0, true
		}
	}
	return 0, false
}
