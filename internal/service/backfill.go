package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/supportwise/insights/internal/ai"
	"github.com/supportwise/insights/internal/models"
)

type BackfillStore interface {
	TicketsWithoutEmbeddings(ctx context.Context, limit int) ([]models.Ticket, error)
	InsertEmbeddings(ctx context.Context, embeddings []models.TicketEmbedding) error
}

// EmbeddingBackfill embeds tickets that have no stored vector yet. A failed
// batch is retried after RetryDelay until it succeeds or ctx is done.
type EmbeddingBackfill struct {
	Store      BackfillStore
	Embedder   ai.Embedder
	BatchSize  int
	BatchDelay time.Duration
	RetryDelay time.Duration
	Logger     zerolog.Logger
}

type BackfillReport struct {
	Found    int `json:"found"`
	Embedded int `json:"embedded"`
	Retries  int `json:"retries"`
}

func (b *EmbeddingBackfill) Run(ctx context.Context, limit int) (BackfillReport, error) {
	var report BackfillReport

	tickets, err := b.Store.TicketsWithoutEmbeddings(ctx, limit)
	if err != nil {
		return report, err
	}
	report.Found = len(tickets)
	if len(tickets) == 0 {
		b.Logger.Info().Msg("no tickets without embeddings")
		return report, nil
	}
	b.Logger.Info().Int("tickets", len(tickets)).Msg("embedding backfill started")

	size := b.BatchSize
	if size <= 0 {
		size = 10
	}

	for start := 0; start < len(tickets); start += size {
		end := min(start+size, len(tickets))
		batch := tickets[start:end]

		for {
			err := b.embedBatch(ctx, batch)
			if err == nil {
				break
			}
			report.Retries++
			b.Logger.Warn().Err(err).Int("from", start+1).Int("to", end).Dur("retry_in", b.RetryDelay).Msg("batch failed")
			if err := sleep(ctx, b.RetryDelay); err != nil {
				return report, err
			}
		}
		report.Embedded += len(batch)
		b.Logger.Info().Int("from", start+1).Int("to", end).Int("embedded", report.Embedded).Msg("batch stored")

		if end < len(tickets) {
			if err := sleep(ctx, b.BatchDelay); err != nil {
				return report, err
			}
		}
	}
	return report, nil
}

func (b *EmbeddingBackfill) embedBatch(ctx context.Context, batch []models.Ticket) error {
	texts := make([]string, len(batch))
	for i, t := range batch {
		texts[i] = t.EmbeddingText()
	}
	vectors, err := b.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return ai.ErrEmptyEmbedding
	}
	rows := make([]models.TicketEmbedding, len(batch))
	for i, t := range batch {
		rows[i] = models.TicketEmbedding{
			TicketID:  t.ID,
			Source:    models.EmbeddingSourceSubjectDescription,
			Embedding: vectors[i],
		}
	}
	return b.Store.InsertEmbeddings(ctx, rows)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
