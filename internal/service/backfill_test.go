package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportwise/insights/internal/models"
)

type fakeBackfillStore struct {
	mu        sync.Mutex
	tickets   []models.Ticket
	failFirst int
	inserts   [][]models.TicketEmbedding
	attempts  int
}

func (f *fakeBackfillStore) TicketsWithoutEmbeddings(ctx context.Context, limit int) ([]models.Ticket, error) {
	if limit < len(f.tickets) {
		return f.tickets[:limit], nil
	}
	return f.tickets, nil
}

func (f *fakeBackfillStore) InsertEmbeddings(ctx context.Context, rows []models.TicketEmbedding) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.attempts <= f.failFirst {
		return errors.New("insert failed")
	}
	f.inserts = append(f.inserts, rows)
	return nil
}

func tickets(n int) []models.Ticket {
	out := make([]models.Ticket, n)
	for i := range out {
		out[i] = models.Ticket{ID: string(rune('a' + i)), Subject: "subject", Description: "description"}
	}
	return out
}

func TestBackfillBatches(t *testing.T) {
	store := &fakeBackfillStore{tickets: tickets(5)}
	job := &EmbeddingBackfill{Store: store, Embedder: &fakeEmbedder{}, BatchSize: 2, Logger: zerolog.Nop()}

	report, err := job.Run(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, BackfillReport{Found: 5, Embedded: 5}, report)
	require.Len(t, store.inserts, 3)
	assert.Len(t, store.inserts[0], 2)
	assert.Len(t, store.inserts[2], 1)
	assert.Equal(t, models.EmbeddingSourceSubjectDescription, store.inserts[0][0].Source)
	assert.Equal(t, "a", store.inserts[0][0].TicketID)
}

func TestBackfillRetriesSameBatch(t *testing.T) {
	store := &fakeBackfillStore{tickets: tickets(3), failFirst: 2}
	job := &EmbeddingBackfill{
		Store:      store,
		Embedder:   &fakeEmbedder{},
		BatchSize:  3,
		RetryDelay: time.Millisecond,
		Logger:     zerolog.Nop(),
	}

	report, err := job.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Retries)
	assert.Equal(t, 3, report.Embedded)
	require.Len(t, store.inserts, 1)
	assert.Len(t, store.inserts[0], 3)
}

func TestBackfillStopsOnCancel(t *testing.T) {
	store := &fakeBackfillStore{tickets: tickets(2), failFirst: 1 << 30}
	job := &EmbeddingBackfill{
		Store:      store,
		Embedder:   &fakeEmbedder{},
		BatchSize:  2,
		RetryDelay: 5 * time.Millisecond,
		Logger:     zerolog.Nop(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	report, err := job.Run(ctx, 10)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, report.Embedded)
	assert.Positive(t, report.Retries)
}

func TestBackfillNothingToDo(t *testing.T) {
	report, err := (&EmbeddingBackfill{Store: &fakeBackfillStore{}, Embedder: &fakeEmbedder{}, Logger: zerolog.Nop()}).Run(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, BackfillReport{}, report)
}
