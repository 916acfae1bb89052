package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/supportwise/insights/internal/config"
	"github.com/supportwise/insights/internal/http/handlers"
	"github.com/supportwise/insights/internal/http/middleware"

	_ "github.com/supportwise/insights/docs"
)

func Router(cfg config.Config, store handlers.Pinger, insights handlers.Insights, metrics handlers.Metrics, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-Id"},
		MaxAge:       12 * time.Hour,
	}
	if cfg.CORSAllowed == "" || cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:         store,
		Insights:      insights,
		Metrics:       metrics,
		Validator:     validator.New(),
		Logger:        logger,
		MaxMatchCount: cfg.MaxMatchCount,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.POST("/chat/ask", h.ChatAsk)
		api.POST("/search/insights", h.SearchInsights)
		api.GET("/dashboard/metrics", h.DashboardMetrics)
		api.GET("/dashboard/charts/daily", h.DailyChart)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
