package service

import (
	"fmt"
	"strings"

	"github.com/supportwise/insights/internal/models"
)

// MaxDailyRows caps the daily volume sample included in a metrics prompt.
const MaxDailyRows = 10

func BuildMetricsPrompt(question string, snap models.MetricsSnapshot) string {
	var b strings.Builder
	b.WriteString("You are an analytics co-pilot for a customer support team.\n\n")
	fmt.Fprintf(&b, "User question:\n%q\n\n", question)
	b.WriteString("Here are some aggregated metrics from the ticket system:\n\n")

	b.WriteString("Daily ticket volume (sample):\n")
	daily := snap.Daily
	if len(daily) > MaxDailyRows {
		daily = daily[:MaxDailyRows]
	}
	for _, d := range daily {
		fmt.Fprintf(&b, "- %s: %d tickets\n", d.Day, d.Count)
	}

	b.WriteString("\nBy status:\n")
	for _, s := range snap.Status {
		fmt.Fprintf(&b, "- %s: %d\n", s.Status, s.Count)
	}
	b.WriteString("\nBy priority:\n")
	for _, p := range snap.Priority {
		fmt.Fprintf(&b, "- %s: %d\n", p.Priority, p.Count)
	}
	b.WriteString("\nTop tags:\n")
	for _, t := range snap.Tags {
		fmt.Fprintf(&b, "- %s: %d\n", t.Tag, t.Count)
	}

	b.WriteString("\nTasks:\n")
	b.WriteString("1. Answer the user's question as precisely as possible using the metrics above.\n")
	b.WriteString("2. Highlight any interesting trends or anomalies (if any).\n")
	b.WriteString("3. Suggest 1-2 follow-up questions or next analyses the manager could run.\n\n")
	b.WriteString("Be concise, use bullet points, and avoid repeating raw numbers unnecessarily.\n")
	return b.String()
}

func BuildSemanticPrompt(question string, matches []models.RetrievedMatch) string {
	var b strings.Builder
	b.WriteString("You are an AI assistant helping a support manager understand patterns in support tickets.\n\n")
	fmt.Fprintf(&b, "User question:\n%q\n\n", question)
	b.WriteString("Here are the top related tickets:\n")
	writeTickets(&b, matches)
	b.WriteString("\nTasks:\n")
	b.WriteString("1. Summarize what is going on in these tickets in relation to the user's question.\n")
	b.WriteString("2. Suggest likely root causes or underlying issues.\n")
	b.WriteString("3. Propose 2-3 concrete actions the support team should take.\n\n")
	b.WriteString("Use concise bullet points, do not repeat the full ticket texts.\n")
	return b.String()
}

func BuildInsightsPrompt(query string, matches []models.RetrievedMatch) string {
	var b strings.Builder
	b.WriteString("You are an AI assistant helping a customer support manager understand patterns in support tickets.\n\n")
	fmt.Fprintf(&b, "User question:\n%q\n\n", query)
	b.WriteString("Here are the top related tickets from the last period (with similarity scores):\n\n")
	writeTickets(&b, matches)
	b.WriteString("\nTasks:\n")
	b.WriteString("1. Summarize what customers are mainly complaining about.\n")
	b.WriteString("2. Identify likely root causes or patterns.\n")
	b.WriteString("3. Suggest 2-3 concrete actions the support team could take.\n\n")
	b.WriteString("Answer in concise bullet points. Do not repeat the full ticket texts.\n")
	return b.String()
}

func writeTickets(b *strings.Builder, matches []models.RetrievedMatch) {
	for i, m := range matches {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "Ticket #%d [%s]\nSubject: %s\nDescription: %s\nSimilarity: %.4f\n",
			i+1, m.TicketID, m.Subject, m.Description, m.Similarity)
	}
}
