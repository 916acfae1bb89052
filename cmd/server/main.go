package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supportwise/insights/internal/ai"
	"github.com/supportwise/insights/internal/app"
	"github.com/supportwise/insights/internal/config"
	httpapi "github.com/supportwise/insights/internal/http"
	"github.com/supportwise/insights/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := app.NewLogger(cfg)
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	store, err := app.NewStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	embedder := app.NewEmbedder(cfg, logger)
	if c, ok := embedder.(interface{ Close() error }); ok {
		defer func() { _ = c.Close() }()
	}
	generator, err := app.NewGenerator(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create generator")
	}
	cache, closeCache := app.NewAnswerCache(ctx, cfg, logger)
	defer closeCache()

	metrics := app.NewMetricsClient(cfg, store)
	insights := &service.InsightsService{
		Classifier: service.DefaultIntentClassifier(),
		Metrics:    metrics,
		Retrieval:  app.NewRetrievalClient(cfg, store, embedder),
		Summarizer: ai.SummaryClient{
			Generator: generator,
			Cache:     cache,
			Timeout:   cfg.LLMTimeout,
			Logger:    logger,
		},
		DefaultK: cfg.DefaultMatchCount,
		Logger:   logger,
	}

	router := httpapi.Router(cfg, store, insights, metrics, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
