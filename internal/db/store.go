package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/supportwise/insights/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// MatchTickets calls match_tickets and returns rows in the order the store produced them.
func (s *Store) MatchTickets(ctx context.Context, embedding []float32, count int) ([]models.RetrievedMatch, error) {
	rows, err := s.Pool.Query(ctx,
		`SELECT ticket_id::text, subject, description, similarity::float8 FROM match_tickets($1, $2)`,
		pgvector.NewVector(embedding), count)
	if err != nil {
		return nil, fmt.Errorf("match_tickets: %w", err)
	}
	defer rows.Close()

	out := []models.RetrievedMatch{}
	for rows.Next() {
		var (
			m           models.RetrievedMatch
			subject     *string
			description *string
		)
		if err := rows.Scan(&m.TicketID, &subject, &description, &m.Similarity); err != nil {
			return nil, err
		}
		m.Subject = derefString(subject)
		m.Description = derefString(description)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) VolumeDaily(ctx context.Context) ([]models.DailyCount, error) {
	rows, err := s.Pool.Query(ctx, `SELECT day::text, count::bigint FROM ticket_volume_daily()`)
	if err != nil {
		return nil, fmt.Errorf("ticket_volume_daily: %w", err)
	}
	defer rows.Close()

	out := []models.DailyCount{}
	for rows.Next() {
		var d models.DailyCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	rows, err := s.Pool.Query(ctx, `SELECT status::text, count::bigint FROM ticket_by_status()`)
	if err != nil {
		return nil, fmt.Errorf("ticket_by_status: %w", err)
	}
	defer rows.Close()

	out := []models.StatusCount{}
	for rows.Next() {
		var (
			c      models.StatusCount
			status *string
		)
		if err := rows.Scan(&status, &c.Count); err != nil {
			return nil, err
		}
		c.Status = derefString(status)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CountByPriority(ctx context.Context) ([]models.PriorityCount, error) {
	rows, err := s.Pool.Query(ctx, `SELECT priority::text, count::bigint FROM ticket_by_priority()`)
	if err != nil {
		return nil, fmt.Errorf("ticket_by_priority: %w", err)
	}
	defer rows.Close()

	out := []models.PriorityCount{}
	for rows.Next() {
		var (
			c        models.PriorityCount
			priority *string
		)
		if err := rows.Scan(&priority, &c.Count); err != nil {
			return nil, err
		}
		c.Priority = derefString(priority)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) CountByTag(ctx context.Context) ([]models.TagCount, error) {
	rows, err := s.Pool.Query(ctx, `SELECT tag::text, count::bigint FROM ticket_by_tag()`)
	if err != nil {
		return nil, fmt.Errorf("ticket_by_tag: %w", err)
	}
	defer rows.Close()

	out := []models.TagCount{}
	for rows.Next() {
		var (
			c   models.TagCount
			tag *string
		)
		if err := rows.Scan(&tag, &c.Count); err != nil {
			return nil, err
		}
		c.Tag = derefString(tag)
		out = append(out, c)
	}
	return out, rows.Err()
}

// TicketsWithoutEmbeddings returns the oldest tickets that have no row in ticket_embeddings.
func (s *Store) TicketsWithoutEmbeddings(ctx context.Context, limit int) ([]models.Ticket, error) {
	if limit <= 0 {
		limit = 200
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT t.id::text, COALESCE(t.subject, ''), COALESCE(t.description, '')
		FROM tickets t
		LEFT JOIN ticket_embeddings e ON e.ticket_id = t.id
		WHERE e.ticket_id IS NULL
		ORDER BY t.created_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.Subject, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// InsertEmbeddings writes one batch atomically.
func (s *Store) InsertEmbeddings(ctx context.Context, embeddings []models.TicketEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	return s.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, e := range embeddings {
			batch.Queue(
				`INSERT INTO ticket_embeddings (ticket_id, source, embedding) VALUES ($1, $2, $3)`,
				e.TicketID, e.Source, pgvector.NewVector(e.Embedding),
			)
		}
		br := tx.SendBatch(ctx, batch)
		for range embeddings {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("insert ticket_embeddings: %w", err)
			}
		}
		return br.Close()
	})
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
