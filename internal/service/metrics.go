package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/supportwise/insights/internal/models"
)

type AggregateStore interface {
	VolumeDaily(ctx context.Context) ([]models.DailyCount, error)
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
	CountByPriority(ctx context.Context) ([]models.PriorityCount, error)
	CountByTag(ctx context.Context) ([]models.TagCount, error)
}

type MetricsClient struct {
	Store   AggregateStore
	Timeout time.Duration
}

// Snapshot issues the four aggregate queries concurrently. Any failure
// discards the others and returns ErrAggregation.
func (m MetricsClient) Snapshot(ctx context.Context) (models.MetricsSnapshot, error) {
	var snap models.MetricsSnapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.call(gctx, func(ctx context.Context) (err error) {
			snap.Daily, err = m.Store.VolumeDaily(ctx)
			return err
		})
	})
	g.Go(func() error {
		return m.call(gctx, func(ctx context.Context) (err error) {
			snap.Status, err = m.Store.CountByStatus(ctx)
			return err
		})
	})
	g.Go(func() error {
		return m.call(gctx, func(ctx context.Context) (err error) {
			snap.Priority, err = m.Store.CountByPriority(ctx)
			return err
		})
	})
	g.Go(func() error {
		return m.call(gctx, func(ctx context.Context) (err error) {
			snap.Tags, err = m.Store.CountByTag(ctx)
			return err
		})
	})

	if err := g.Wait(); err != nil {
		return models.MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrAggregation, err)
	}

	if snap.Daily == nil {
		snap.Daily = []models.DailyCount{}
	}
	if snap.Status == nil {
		snap.Status = []models.StatusCount{}
	}
	if snap.Priority == nil {
		snap.Priority = []models.PriorityCount{}
	}
	if snap.Tags == nil {
		snap.Tags = []models.TagCount{}
	}
	return snap, nil
}

// VolumeDaily loads only the daily series, for the chart endpoint.
func (m MetricsClient) VolumeDaily(ctx context.Context) ([]models.DailyCount, error) {
	var out []models.DailyCount
	err := m.call(ctx, func(ctx context.Context) (err error) {
		out, err = m.Store.VolumeDaily(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregation, err)
	}
	if out == nil {
		out = []models.DailyCount{}
	}
	return out, nil
}

func (m MetricsClient) call(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}
	return fn(ctx)
}
