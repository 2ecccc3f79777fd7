package handlers

import (
	"net/http"

	"btc-strategy-lab/internal/api/models"
	"btc-strategy-lab/internal/score"

	"github.com/gin-gonic/gin"
)

// ScoreHandler serves the composite bottom-score endpoint.
type ScoreHandler struct {
	deps *Deps
}

func NewScoreHandler(deps *Deps) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// Score handles POST /api/v1/score. The latest bar gets the full indicator
// breakdown; History additionally returns the score series over the whole
// window.
func (h *ScoreHandler) Score(c *gin.Context) {
	var req models.ScoreRequest
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

	last := bars[len(bars)-1]
	total, breakdown := score.Row(last)

	resp := models.ScoreResponse{
		Symbol:     symbol,
		Time:       last.Time,
		TotalScore: total,
		CycleScore: score.Cycle(last),
		Breakdown:  breakdown,
	}
	if req.History {
		series := score.Series(bars)
		resp.History = make([]models.ScorePoint, len(bars))
		for i := range bars {
			resp.History[i] = models.ScorePoint{Time: bars[i].Time, Score: series[i]}
		}
	}
	c.JSON(http.StatusOK, resp)
}
