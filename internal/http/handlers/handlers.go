package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/supportwise/insights/internal/models"
)

type Insights interface {
	Ask(ctx context.Context, message string) (models.AnswerResult, error)
	SearchInsights(ctx context.Context, query string, k int) (models.InsightsResult, error)
}

type Metrics interface {
	Snapshot(ctx context.Context) (models.MetricsSnapshot, error)
	VolumeDaily(ctx context.Context) ([]models.DailyCount, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Store         Pinger
	Insights      Insights
	Metrics       Metrics
	Validator     *validator.Validate
	Logger        zerolog.Logger
	MaxMatchCount int
}

type errorResponse struct {
	Error string `json:"error"`
}

// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorResponse
// @Router /healthz [get]
func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		h.log(c).Warn().Err(err).Msg("store ping failed")
		writeError(c, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

func (h *Handler) log(c *gin.Context) *zerolog.Logger {
	if l := zerolog.Ctx(c.Request.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.Logger
}
