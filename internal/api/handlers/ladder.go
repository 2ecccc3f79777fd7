package handlers

import (
	"net/http"

	"btc-strategy-lab/internal/api/models"
	"btc-strategy-lab/internal/dualinvest"

	"github.com/gin-gonic/gin"
)

// LadderHandler serves the current dual-investment suggestion.
type LadderHandler struct {
	deps *Deps
}

func NewLadderHandler(deps *Deps) *LadderHandler {
	return &LadderHandler{deps: deps}
}

// Ladder handles POST /api/v1/ladder. It builds sell-high and buy-low tier
// ladders from the most recent bar.
func (h *LadderHandler) Ladder(c *gin.Context) {
	var req models.LadderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	symbol, bars, err := h.deps.resolveBars(req.DataSource)
	if err != nil {
		badRequest(c, "INVALID_DATA_SOURCE", err)
		return
	}
	if len(bars) == 0 {
		badRequest(c, "EMPTY_SERIES", errEmptySeries)
		return
	}

	cfg := h.deps.effectiveConfig(req.Overrides)
	sug := dualinvest.Suggest(bars, cfg.Dual.TermDays, h.deps.riskFree(req.Overrides))

	c.JSON(http.StatusOK, models.LadderResponse{
		Symbol:     symbol,
		Suggestion: sug,
	})
}
