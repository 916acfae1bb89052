package service

import (
	"errors"

	"github.com/supportwise/insights/internal/ai"
)

var (
	ErrAggregation   = errors.New("metrics aggregation failed")
	ErrRetrieval     = errors.New("similarity retrieval failed")
	ErrEmbedding     = errors.New("query embedding failed")
	ErrSummarization = ai.ErrSummarization
)

// Stage names the orchestration step that failed, for logging.
func Stage(err error) string {
	switch {
	case errors.Is(err, ErrAggregation):
		return "aggregation"
	case errors.Is(err, ErrEmbedding):
		return "embedding"
	case errors.Is(err, ErrRetrieval):
		return "retrieval"
	case errors.Is(err, ErrSummarization):
		return "summarization"
	default:
		return "unknown"
	}
}
