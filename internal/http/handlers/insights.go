package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportwise/insights/internal/models"
	"github.com/supportwise/insights/internal/service"
)

type SearchInsightsRequest struct {
	Query string `json:"query" validate:"required"`
	K     *int   `json:"k"`
}

// @Summary Summarize tickets similar to a query
// @Tags search
// @Accept json
// @Produce json
// @Param request body SearchInsightsRequest true "query and optional match count"
// @Success 200 {object} models.InsightsResult
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/search/insights [post]
func (h *Handler) SearchInsights(c *gin.Context) {
	var req SearchInsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Missing or invalid 'query'")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "Missing or invalid 'query'")
		return
	}

	// 0 lets the service apply its configured default.
	k := 0
	if req.K != nil {
		k = *req.K
		if k < 1 || (h.MaxMatchCount > 0 && k > h.MaxMatchCount) {
			writeError(c, http.StatusBadRequest, "Missing or invalid 'query'")
			return
		}
	}

	res, err := h.Insights.SearchInsights(c.Request.Context(), req.Query, k)
	if err != nil {
		h.log(c).Error().Err(err).Str("stage", service.Stage(err)).Msg("search insights failed")
		writeError(c, http.StatusInternalServerError, "Unexpected server error")
		return
	}
	if res.Matches == nil {
		res.Matches = []models.RetrievedMatch{}
	}
	c.JSON(http.StatusOK, res)
}
