package service

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/supportwise/insights/internal/models"
)

type fakeAggregates struct {
	daily    []models.DailyCount
	status   []models.StatusCount
	priority []models.PriorityCount
	tags     []models.TagCount

	dailyErr, statusErr, priorityErr, tagErr error
	calls                                    atomic.Int32
}

func (f *fakeAggregates) VolumeDaily(ctx context.Context) ([]models.DailyCount, error) {
	f.calls.Add(1)
	return f.daily, f.dailyErr
}

func (f *fakeAggregates) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	f.calls.Add(1)
	return f.status, f.statusErr
}

func (f *fakeAggregates) CountByPriority(ctx context.Context) ([]models.PriorityCount, error) {
	f.calls.Add(1)
	return f.priority, f.priorityErr
}

func (f *fakeAggregates) CountByTag(ctx context.Context) ([]models.TagCount, error) {
	f.calls.Add(1)
	return f.tags, f.tagErr
}

type fakeMatcher struct {
	matches []models.RetrievedMatch
	err     error
	gotK    int
	gotVec  []float32
	calls   int
}

func (f *fakeMatcher) MatchTickets(ctx context.Context, embedding []float32, count int) ([]models.RetrievedMatch, error) {
	f.calls++
	f.gotK = count
	f.gotVec = embedding
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.RetrievedMatch, len(f.matches))
	copy(out, f.matches)
	return out, nil
}

type fakeEmbedder struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		v, err := f.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeSummarizer struct {
	text      string
	err       error
	prompts   []string
	fallbacks []string
}

func (f *fakeSummarizer) Summarize(ctx context.Context, prompt, fallback string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.fallbacks = append(f.fallbacks, fallback)
	if f.err != nil {
		return "", f.err
	}
	if f.text == "" {
		return fallback, nil
	}
	return f.text, nil
}
