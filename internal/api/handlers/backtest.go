package handlers

import (
	"net/http"

	"btc-strategy-lab/internal/api/models"
	"btc-strategy-lab/internal/dualinvest"
	"btc-strategy-lab/internal/swing"

	"github.com/gin-gonic/gin"
)

// BacktestHandler serves the swing and dual-investment backtest endpoints.
type BacktestHandler struct {
	deps *Deps
}

func NewBacktestHandler(deps *Deps) *BacktestHandler {
	return &BacktestHandler{deps: deps}
}

// Swing handles POST /api/v1/backtest/swing.
func (h *BacktestHandler) Swing(c *gin.Context) {
	var req models.SwingBacktestRequest
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
	result := swing.Run(bars, cfg.SwingParams())

	resp := models.SwingBacktestResponse{
		Symbol:  symbol,
		Bars:    len(bars),
		Window:  window(bars),
		Summary: result,
	}
	resp.Summary.Trades = nil
	if req.IncludeTrades {
		resp.Trades = result.Trades
	}
	c.JSON(http.StatusOK, resp)
}

// Dual handles POST /api/v1/backtest/dual.
func (h *BacktestHandler) Dual(c *gin.Context) {
	var req models.DualBacktestRequest
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
	events := dualinvest.Run(bars, cfg.DualParams(h.deps.riskFree(req.Overrides)))

	resp := models.DualBacktestResponse{
		Symbol: symbol,
		Bars:   len(bars),
		Window: window(bars),
	}
	for _, ev := range events {
		switch ev.Action {
		case "Open":
			resp.Opens++
		case "Settlement":
			resp.Settlements++
		}
		resp.FinalEquityBTC = ev.EquityBTC
	}
	if len(events) == 0 {
		resp.FinalEquityBTC = 1.0
	}
	if req.IncludeEvents {
		resp.Events = events
	}
	c.JSON(http.StatusOK, resp)
}
