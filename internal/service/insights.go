package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/supportwise/insights/internal/ai"
	"github.com/supportwise/insights/internal/models"
)

type Summarizer interface {
	Summarize(ctx context.Context, prompt, fallback string) (string, error)
}

// InsightsService answers chat questions and insight searches.
//
// A request moves through received, classified, data gathered, prompt built
// and summarized before it is returned; every transition is logged at debug
// level and the first failing step aborts the request.
type InsightsService struct {
	Classifier IntentClassifier
	Metrics    MetricsClient
	Retrieval  RetrievalClient
	Summarizer Summarizer
	DefaultK   int
	Logger     zerolog.Logger
}

func (s *InsightsService) Ask(ctx context.Context, message string) (models.AnswerResult, error) {
	l := s.logger(ctx)
	l.Debug().Str("state", "received").Msg("chat question")

	route := s.Classifier.Classify(message)
	l.Debug().Str("state", "classified").Str("route", string(route)).Msg("chat question")

	if route == models.RouteMetrics {
		snap, err := s.Metrics.Snapshot(ctx)
		if err != nil {
			l.Debug().Str("state", "failed").Err(err).Msg("chat question")
			return models.AnswerResult{}, err
		}
		l.Debug().Str("state", "data_gathered").Int("daily_rows", len(snap.Daily)).Msg("chat question")

		prompt := BuildMetricsPrompt(message, snap)
		l.Debug().Str("state", "prompt_built").Int("prompt_len", len(prompt)).Msg("chat question")

		answer, err := s.Summarizer.Summarize(ctx, prompt, ai.PlaceholderAnswer)
		if err != nil {
			l.Debug().Str("state", "failed").Err(err).Msg("chat question")
			return models.AnswerResult{}, err
		}
		l.Debug().Str("state", "summarized").Msg("chat question")
		return models.AnswerResult{Route: route, Answer: answer, Metrics: &snap}, nil
	}

	matches, err := s.Retrieval.Search(ctx, message, s.defaultK())
	if err != nil {
		l.Debug().Str("state", "failed").Err(err).Msg("chat question")
		return models.AnswerResult{}, err
	}
	l.Debug().Str("state", "data_gathered").Int("matches", len(matches)).Msg("chat question")

	prompt := BuildSemanticPrompt(message, matches)
	l.Debug().Str("state", "prompt_built").Int("prompt_len", len(prompt)).Msg("chat question")

	answer, err := s.Summarizer.Summarize(ctx, prompt, ai.PlaceholderAnswer)
	if err != nil {
		l.Debug().Str("state", "failed").Err(err).Msg("chat question")
		return models.AnswerResult{}, err
	}
	l.Debug().Str("state", "summarized").Msg("chat question")
	return models.AnswerResult{Route: route, Answer: answer, Matches: matches}, nil
}

func (s *InsightsService) SearchInsights(ctx context.Context, query string, k int) (models.InsightsResult, error) {
	l := s.logger(ctx)
	l.Debug().Str("state", "received").Int("k", k).Msg("insights search")

	if k <= 0 {
		k = s.defaultK()
	}
	matches, err := s.Retrieval.Search(ctx, query, k)
	if err != nil {
		l.Debug().Str("state", "failed").Err(err).Msg("insights search")
		return models.InsightsResult{}, err
	}
	l.Debug().Str("state", "data_gathered").Int("matches", len(matches)).Msg("insights search")

	prompt := BuildInsightsPrompt(query, matches)
	l.Debug().Str("state", "prompt_built").Int("prompt_len", len(prompt)).Msg("insights search")

	summary, err := s.Summarizer.Summarize(ctx, prompt, ai.PlaceholderSummary)
	if err != nil {
		l.Debug().Str("state", "failed").Err(err).Msg("insights search")
		return models.InsightsResult{}, err
	}
	l.Debug().Str("state", "summarized").Msg("insights search")
	return models.InsightsResult{Query: query, Matches: matches, Summary: summary}, nil
}

func (s *InsightsService) defaultK() int {
	if s.DefaultK > 0 {
		return s.DefaultK
	}
	return models.DefaultMatchCount
}

// logger prefers the request-scoped logger carried by ctx.
func (s *InsightsService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.Logger
}
