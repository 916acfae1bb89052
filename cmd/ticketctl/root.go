package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/supportwise/insights/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "ticketctl",
	Short: "Operate the SupportWise insights ticket store",
	Long: `ticketctl runs offline jobs against the ticket store:
semantic search from the terminal and embedding backfill for new tickets.

Configuration is read from .env and the environment, the same way the server does.`,
	SilenceUsage: true,
}

// newContext is cancelled on SIGINT or SIGTERM.
func newContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func loadConfig() (config.Config, error) {
	return config.Load()
}
