package ai

import (
	"context"
	"errors"
)

// Embedder turns text into fixed-length vectors. Implementations must be safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator returns the first text part of the first candidate, or "" when the model produced none.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	ErrEmptyEmbedding    = errors.New("no embedding generated")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrSummarization     = errors.New("summarization failed")
)
