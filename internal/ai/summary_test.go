package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text  string
	err   error
	calls int
	block bool
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

func TestSummarizeReturnsText(t *testing.T) {
	gen := &stubGenerator{text: "- everything is fine"}
	got, err := SummaryClient{Generator: gen, Logger: zerolog.Nop()}.Summarize(context.Background(), "p", PlaceholderAnswer)
	require.NoError(t, err)
	assert.Equal(t, "- everything is fine", got)
}

func TestSummarizeBlankFallsBack(t *testing.T) {
	for _, text := range []string{"", "   \n\t"} {
		got, err := SummaryClient{Generator: &stubGenerator{text: text}}.Summarize(context.Background(), "p", PlaceholderSummary)
		require.NoError(t, err)
		assert.Equal(t, PlaceholderSummary, got)
	}
}

func TestSummarizeWrapsGeneratorError(t *testing.T) {
	boom := errors.New("quota exceeded")
	_, err := SummaryClient{Generator: &stubGenerator{err: boom}}.Summarize(context.Background(), "p", PlaceholderAnswer)
	assert.ErrorIs(t, err, ErrSummarization)
	assert.ErrorIs(t, err, boom)
}

func TestSummarizeTimeout(t *testing.T) {
	s := SummaryClient{Generator: &stubGenerator{block: true}, Timeout: 10 * time.Millisecond}
	_, err := s.Summarize(context.Background(), "p", PlaceholderAnswer)
	assert.ErrorIs(t, err, ErrSummarization)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSummarizeUsesCache(t *testing.T) {
	gen := &stubGenerator{text: "cached answer"}
	s := SummaryClient{Generator: gen, Cache: NewMemoryCache(time.Minute), Logger: zerolog.Nop()}

	for i := 0; i < 3; i++ {
		got, err := s.Summarize(context.Background(), "same prompt", PlaceholderAnswer)
		require.NoError(t, err)
		assert.Equal(t, "cached answer", got)
	}
	assert.Equal(t, 1, gen.calls)
}

func TestSummarizeDoesNotCacheFallback(t *testing.T) {
	gen := &stubGenerator{}
	s := SummaryClient{Generator: gen, Cache: NewMemoryCache(time.Minute)}

	_, _ = s.Summarize(context.Background(), "p", PlaceholderAnswer)
	_, _ = s.Summarize(context.Background(), "p", PlaceholderAnswer)
	assert.Equal(t, 2, gen.calls)
}
