package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	StoreTimeout   time.Duration `mapstructure:"STORE_TIMEOUT"`
	EmbedTimeout   time.Duration `mapstructure:"EMBED_TIMEOUT"`
	LLMTimeout     time.Duration `mapstructure:"LLM_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT"`

	EmbeddingProvider string `mapstructure:"EMBEDDING_PROVIDER"`
	EmbeddingModel    string `mapstructure:"EMBEDDING_MODEL"`
	EmbeddingModelDir string `mapstructure:"EMBEDDING_MODEL_DIR"`
	EmbeddingURL      string `mapstructure:"EMBEDDING_URL"`
	EmbeddingAPIKey   string `mapstructure:"EMBEDDING_API_KEY"`
	EmbeddingDim      int    `mapstructure:"EMBEDDING_DIM"`

	LLMProvider        string `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey       string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel        string `mapstructure:"GEMINI_MODEL"`
	AssistantBaseURL   string `mapstructure:"ASSISTANT_BASE_URL"`
	AssistantModel     string `mapstructure:"ASSISTANT_MODEL"`
	AssistantAPIKey    string `mapstructure:"ASSISTANT_API_KEY"`
	AssistantMaxTokens int    `mapstructure:"ASSISTANT_MAX_TOKENS"`

	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	RedisPassword  string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB        int           `mapstructure:"REDIS_DB"`
	AnswerCacheTTL time.Duration `mapstructure:"ANSWER_CACHE_TTL"`

	DefaultMatchCount int `mapstructure:"DEFAULT_MATCH_COUNT"`
	MaxMatchCount     int `mapstructure:"MAX_MATCH_COUNT"`

	BackfillBatchSize  int           `mapstructure:"BACKFILL_BATCH_SIZE"`
	BackfillBatchDelay time.Duration `mapstructure:"BACKFILL_BATCH_DELAY"`
	BackfillRetryDelay time.Duration `mapstructure:"BACKFILL_RETRY_DELAY"`
}

const (
	EmbeddingProviderLocal = "local"
	EmbeddingProviderHTTP  = "http"
	EmbeddingProviderMock  = "mock"

	LLMProviderGemini = "gemini"
	LLMProviderOpenAI = "openai"
	LLMProviderMock   = "mock"
)

var keys = []string{
	"ENV", "PORT", "DATABASE_URL", "DB_MAX_CONNS", "CORS_ALLOWED_ORIGINS",
	"REQUEST_TIMEOUT", "STORE_TIMEOUT", "EMBED_TIMEOUT", "LLM_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"EMBEDDING_PROVIDER", "EMBEDDING_MODEL", "EMBEDDING_MODEL_DIR", "EMBEDDING_URL", "EMBEDDING_API_KEY", "EMBEDDING_DIM",
	"LLM_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL",
	"ASSISTANT_BASE_URL", "ASSISTANT_MODEL", "ASSISTANT_API_KEY", "ASSISTANT_MAX_TOKENS",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "ANSWER_CACHE_TTL",
	"DEFAULT_MATCH_COUNT", "MAX_MATCH_COUNT",
	"BACKFILL_BATCH_SIZE", "BACKFILL_BATCH_DELAY", "BACKFILL_RETRY_DELAY",
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	// Unmarshal only sees env vars for keys viper already knows about.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REQUEST_TIMEOUT", "60s")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("EMBED_TIMEOUT", "20s")
	v.SetDefault("LLM_TIMEOUT", "45s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("EMBEDDING_PROVIDER", EmbeddingProviderLocal)
	v.SetDefault("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2")
	v.SetDefault("EMBEDDING_MODEL_DIR", "./models")
	v.SetDefault("EMBEDDING_DIM", 384)
	v.SetDefault("LLM_PROVIDER", LLMProviderGemini)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("ASSISTANT_MAX_TOKENS", 1024)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ANSWER_CACHE_TTL", "60s")
	v.SetDefault("DEFAULT_MATCH_COUNT", 5)
	v.SetDefault("MAX_MATCH_COUNT", 50)
	v.SetDefault("BACKFILL_BATCH_SIZE", 10)
	v.SetDefault("BACKFILL_BATCH_DELAY", "1500ms")
	v.SetDefault("BACKFILL_RETRY_DELAY", "5s")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(c.EmbeddingProvider) {
	case EmbeddingProviderLocal, EmbeddingProviderMock:
	case EmbeddingProviderHTTP:
		if strings.TrimSpace(c.EmbeddingURL) == "" {
			return fmt.Errorf("EMBEDDING_URL is required for provider %q", c.EmbeddingProvider)
		}
	default:
		return fmt.Errorf("unknown EMBEDDING_PROVIDER %q", c.EmbeddingProvider)
	}

	switch strings.ToLower(c.LLMProvider) {
	case LLMProviderGemini, LLMProviderOpenAI, LLMProviderMock:
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.DefaultMatchCount <= 0 {
		return fmt.Errorf("DEFAULT_MATCH_COUNT must be positive")
	}
	if c.MaxMatchCount < c.DefaultMatchCount {
		return fmt.Errorf("MAX_MATCH_COUNT must be >= DEFAULT_MATCH_COUNT")
	}
	if c.BackfillBatchSize <= 0 {
		return fmt.Errorf("BACKFILL_BATCH_SIZE must be positive")
	}
	return nil
}
