package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/supportwise/insights/internal/ai"
	"github.com/supportwise/insights/internal/models"
)

type MatchStore interface {
	MatchTickets(ctx context.Context, embedding []float32, count int) ([]models.RetrievedMatch, error)
}

type RetrievalClient struct {
	Store        MatchStore
	Embedder     ai.Embedder
	StoreTimeout time.Duration
	EmbedTimeout time.Duration
}

// Match returns at most k tickets ordered by descending similarity.
func (r RetrievalClient) Match(ctx context.Context, vector []float32, k int) ([]models.RetrievedMatch, error) {
	if k <= 0 {
		k = models.DefaultMatchCount
	}
	if r.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.StoreTimeout)
		defer cancel()
	}

	matches, err := r.Store.MatchTickets(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > k {
		matches = matches[:k]
	}
	if matches == nil {
		matches = []models.RetrievedMatch{}
	}
	return matches, nil
}

// Search embeds text and matches it.
func (r RetrievalClient) Search(ctx context.Context, text string, k int) ([]models.RetrievedMatch, error) {
	embedCtx := ctx
	if r.EmbedTimeout > 0 {
		var cancel context.CancelFunc
		embedCtx, cancel = context.WithTimeout(ctx, r.EmbedTimeout)
		defer cancel()
	}
	vec, err := r.Embedder.Embed(embedCtx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	return r.Match(ctx, vec, k)
}
