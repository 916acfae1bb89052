package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportwise/insights/internal/models"
	"github.com/supportwise/insights/internal/service"
)

type ChatAskRequest struct {
	Message string `json:"message" validate:"required"`
}

type metricsAnswer struct {
	Route   models.Route            `json:"route"`
	Answer  string                  `json:"answer"`
	Metrics *models.MetricsSnapshot `json:"metrics"`
}

type semanticAnswer struct {
	Route   models.Route            `json:"route"`
	Answer  string                  `json:"answer"`
	Matches []models.RetrievedMatch `json:"matches"`
}

// @Summary Ask a question about support tickets
// @Description Routes the question to aggregated metrics or similar tickets and summarizes the result.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body ChatAskRequest true "question"
// @Success 200 {object} models.AnswerResult
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/chat/ask [post]
func (h *Handler) ChatAsk(c *gin.Context) {
	var req ChatAskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Missing or invalid 'message'")
		return
	}
	if err := h.Validator.Struct(req); err != nil {
		writeError(c, http.StatusBadRequest, "Missing or invalid 'message'")
		return
	}

	res, err := h.Insights.Ask(c.Request.Context(), req.Message)
	if err != nil {
		h.log(c).Error().Err(err).Str("stage", service.Stage(err)).Msg("chat ask failed")
		writeError(c, http.StatusInternalServerError, "Internal server error in chat API")
		return
	}

	if res.Route == models.RouteMetrics {
		c.JSON(http.StatusOK, metricsAnswer{Route: res.Route, Answer: res.Answer, Metrics: res.Metrics})
		return
	}
	matches := res.Matches
	if matches == nil {
		matches = []models.RetrievedMatch{}
	}
	c.JSON(http.StatusOK, semanticAnswer{Route: res.Route, Answer: res.Answer, Matches: matches})
}
