package handlers

import (
	"net/http"

	"btc-strategy-lab/internal/api/models"
	"btc-strategy-lab/internal/optimize"

	"github.com/gin-gonic/gin"
)

// OptimizeHandler serves the swing-threshold grid sweep.
type OptimizeHandler struct {
	deps *Deps
}

func NewOptimizeHandler(deps *Deps) *OptimizeHandler {
	return &OptimizeHandler{deps: deps}
}

// Optimize handles POST /api/v1/optimize. Empty grid axes keep the
// configured base value, so a request with no axes runs one backtest.
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	var req models.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	symbol, bars, err := h.deps.resolveBars(req.DataSource)
	if err != nil {
		badRequest(c, "INVALID_DATA_SOURCE", err)
		return
	}

	cfg := h.deps.effectiveConfig(req.Overrides)
	grid := optimize.Grid{
		EntryRSI:   req.EntryRSI,
		EntryADX:   req.EntryADX,
		EMADistMax: req.EMADistMax,
	}
	candidates := optimize.Sweep(bars, cfg.SwingParams(), grid, 0)
	for i := range candidates {
		candidates[i].Result.Trades = nil
	}
	if req.Top > 0 && req.Top < len(candidates) {
		candidates = candidates[:req.Top]
	}

	c.JSON(http.StatusOK, models.OptimizeResponse{
		Symbol:     symbol,
		Bars:       len(bars),
		Candidates: candidates,
	})
}
