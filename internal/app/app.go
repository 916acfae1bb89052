// Package app builds the shared runtime pieces used by the server and the CLI.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/supportwise/insights/internal/ai"
	"github.com/supportwise/insights/internal/config"
	"github.com/supportwise/insights/internal/db"
	"github.com/supportwise/insights/internal/service"
)

const ServiceName = "supportwise-insights"

func NewLogger(cfg config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	base := log.Logger
	if strings.EqualFold(cfg.LogFormat, "console") {
		base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	}
	return base.Level(level).With().Str("service", ServiceName).Logger()
}

func NewEmbedder(cfg config.Config, logger zerolog.Logger) ai.Embedder {
	switch strings.ToLower(cfg.EmbeddingProvider) {
	case config.EmbeddingProviderMock:
		logger.Info().Msg("using mock embedder")
		return ai.MockEmbedder{Dim: cfg.EmbeddingDim}
	case config.EmbeddingProviderHTTP:
		logger.Info().Str("url", cfg.EmbeddingURL).Msg("using http embedder")
		return ai.HTTPEmbedder{
			BaseURL: cfg.EmbeddingURL,
			Model:   cfg.EmbeddingModel,
			APIKey:  cfg.EmbeddingAPIKey,
			Dim:     cfg.EmbeddingDim,
		}
	default:
		logger.Info().Str("model", cfg.EmbeddingModel).Msg("using local embedder")
		return ai.NewLocalEmbedder(cfg.EmbeddingModel, cfg.EmbeddingModelDir, cfg.EmbeddingDim)
	}
}

func NewGenerator(ctx context.Context, cfg config.Config, logger zerolog.Logger) (ai.Generator, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case config.LLMProviderMock:
		logger.Info().Msg("using mock generator")
		return ai.MockGenerator{ModelVersion: "mock-v1"}, nil
	case config.LLMProviderOpenAI:
		logger.Info().Str("model", cfg.AssistantModel).Msg("using openai-compatible generator")
		return ai.OpenAICompatGenerator{
			BaseURL:   cfg.AssistantBaseURL,
			Model:     cfg.AssistantModel,
			APIKey:    cfg.AssistantAPIKey,
			MaxTokens: cfg.AssistantMaxTokens,
		}, nil
	default:
		logger.Info().Str("model", cfg.GeminiModel).Msg("using gemini generator")
		return ai.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	}
}

// NewAnswerCache returns a Redis cache when REDIS_ADDR is set and reachable,
// otherwise an in-process one. The returned func releases the Redis client.
func NewAnswerCache(ctx context.Context, cfg config.Config, logger zerolog.Logger) (ai.Cache, func()) {
	if cfg.RedisAddr == "" {
		return ai.NewMemoryCache(cfg.AnswerCacheTTL), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory answer cache")
		_ = client.Close()
		return ai.NewMemoryCache(cfg.AnswerCacheTTL), func() {}
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis answer cache")
	return ai.NewRedisCache(client, "insights:answer:", cfg.AnswerCacheTTL), func() { _ = client.Close() }
}

func NewStore(ctx context.Context, cfg config.Config) (*db.Store, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	return db.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
}

func NewRetrievalClient(cfg config.Config, store *db.Store, embedder ai.Embedder) service.RetrievalClient {
	return service.RetrievalClient{
		Store:        store,
		Embedder:     embedder,
		StoreTimeout: cfg.StoreTimeout,
		EmbedTimeout: cfg.EmbedTimeout,
	}
}

func NewMetricsClient(cfg config.Config, store *db.Store) service.MetricsClient {
	return service.MetricsClient{Store: store, Timeout: cfg.StoreTimeout}
}
