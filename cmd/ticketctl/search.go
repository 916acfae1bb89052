package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/supportwise/insights/internal/app"
	"github.com/supportwise/insights/internal/models"
)

var searchK int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find tickets similar to a query",
	Long: `Embed the query and print the most similar tickets.

Examples:
  ticketctl search "login issues"
  ticketctl search "refund not received" --k 10`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchK, "k", models.DefaultMatchCount, "Number of matches to return")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	embedder := app.NewEmbedder(cfg, logger)
	retrieval := app.NewRetrievalClient(cfg, store, embedder)

	matches, err := retrieval.Search(ctx, args[0], searchK)
	if err != nil {
		return err
	}
	printMatches(args[0], matches)
	return nil
}

func printMatches(query string, matches []models.RetrievedMatch) {
	bold := color.New(color.Bold)
	bold.Fprintf(os.Stdout, "Top %d matches for %q\n\n", len(matches), query)
	if len(matches) == 0 {
		fmt.Println("No similar tickets found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSIMILARITY\tTICKET\tSUBJECT")
	for i, m := range matches {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, similarityColor(m.Similarity).Sprintf("%.3f", m.Similarity), m.TicketID, truncate(m.Subject, 60))
	}
	_ = w.Flush()
}

func similarityColor(s float64) *color.Color {
	switch {
	case s >= 0.75:
		return color.New(color.FgGreen)
	case s >= 0.5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
