package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/supportwise/insights/internal/app"
	"github.com/supportwise/insights/internal/service"
)

var (
	embedLimit int
	embedBatch int
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Backfill embeddings for tickets that have none",
	Long: `Embed subject and description of tickets missing from ticket_embeddings
and store the vectors in batches. A failed batch is retried until it succeeds
or the command is interrupted.`,
	Args: cobra.NoArgs,
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().IntVar(&embedLimit, "limit", 200, "Maximum number of tickets to embed")
	embedCmd.Flags().IntVar(&embedBatch, "batch", 0, "Batch size (default BACKFILL_BATCH_SIZE)")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg)
	ctx, cancel := newContext()
	defer cancel()

	store, err := app.NewStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer store.Close()

	batch := cfg.BackfillBatchSize
	if embedBatch > 0 {
		batch = embedBatch
	}
	job := &service.EmbeddingBackfill{
		Store:      store,
		Embedder:   app.NewEmbedder(cfg, logger),
		BatchSize:  batch,
		BatchDelay: cfg.BackfillBatchDelay,
		RetryDelay: cfg.BackfillRetryDelay,
		Logger:     logger,
	}
	report, err := job.Run(ctx, embedLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Embedded %d of %d tickets (%d retries)\n", report.Embedded, report.Found, report.Retries)
	return nil
}
