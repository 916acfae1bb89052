package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportwise/insights/internal/chart"
)

// @Summary Dashboard metrics
// @Tags dashboard
// @Produce json
// @Success 200 {object} models.MetricsSnapshot
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/metrics [get]
func (h *Handler) DashboardMetrics(c *gin.Context) {
	snap, err := h.Metrics.Snapshot(c.Request.Context())
	if err != nil {
		h.log(c).Error().Err(err).Msg("dashboard metrics failed")
		writeError(c, http.StatusInternalServerError, "failed to load metrics")
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Daily ticket volume chart
// @Tags dashboard
// @Produce image/svg+xml
// @Success 200 {string} string "SVG document"
// @Failure 500 {object} errorResponse
// @Router /api/dashboard/charts/daily [get]
func (h *Handler) DailyChart(c *gin.Context) {
	daily, err := h.Metrics.VolumeDaily(c.Request.Context())
	if err != nil {
		h.log(c).Error().Err(err).Msg("ticket_volume_daily failed")
		writeError(c, http.StatusInternalServerError, "Failed to load daily volume")
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderDailySVG(&buf, daily); err != nil {
		h.log(c).Error().Err(err).Msg("render daily chart failed")
		writeError(c, http.StatusInternalServerError, "Failed to generate SVG chart")
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", "inline; filename="+chart.DailyFilename)
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}
