package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/supportwise/insights/internal/utils"
)

const (
	PlaceholderAnswer  = "No answer generated."
	PlaceholderSummary = "No summary generated."
)

// SummaryClient wraps a Generator with a per-call timeout, an optional answer
// cache and the blank-text fallback.
type SummaryClient struct {
	Generator Generator
	Cache     Cache
	Timeout   time.Duration
	Logger    zerolog.Logger
}

func (s SummaryClient) Summarize(ctx context.Context, prompt, fallback string) (string, error) {
	key := cacheKey(prompt)
	if s.Cache != nil {
		v, ok, err := s.Cache.Get(ctx, key)
		if err != nil {
			s.Logger.Warn().Err(err).Msg("answer cache read failed")
		} else if ok {
			return v, nil
		}
	}

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	text, err := s.Generator.Generate(callCtx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSummarization, err)
	}
	if strings.TrimSpace(text) == "" {
		return fallback, nil
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, text); err != nil {
			s.Logger.Warn().Err(err).Msg("answer cache write failed")
		}
	}
	return text, nil
}

func cacheKey(prompt string) string {
	return fmt.Sprintf("%016x:%d", utils.HashStringToUint64(prompt), len(prompt))
}
