package models

import "time"

type Ticket struct {
	ID                       string    `json:"id"`
	Subject                  string    `json:"subject"`
	Description              string    `json:"description"`
	Status                   string    `json:"status"`
	Priority                 string    `json:"priority"`
	Channel                  string    `json:"channel"`
	Tags                     []string  `json:"tags"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
	FirstResponseTimeMinutes *int      `json:"first_response_time_minutes"`
	ResolutionTimeMinutes    *int      `json:"resolution_time_minutes"`
	SLAMet                   *bool     `json:"sla_met"`
	Sentiment                string    `json:"sentiment"`
}

// EmbeddingSourceSubjectDescription tags embeddings built from subject + description.
const EmbeddingSourceSubjectDescription = "subject+description"

type TicketEmbedding struct {
	TicketID  string    `json:"ticket_id"`
	Source    string    `json:"source"`
	Embedding []float32 `json:"embedding"`
}

// EmbeddingText is the text embedded for a ticket.
func (t Ticket) EmbeddingText() string {
	return t.Subject + "\n\n" + t.Description
}

type Route string

const (
	RouteMetrics  Route = "metrics"
	RouteSemantic Route = "semantic"
)

const DefaultMatchCount = 5

type Query struct {
	Text string
	K    int
}

type RetrievedMatch struct {
	TicketID    string  `json:"ticket_id"`
	Subject     string  `json:"subject"`
	Description string  `json:"description"`
	Similarity  float64 `json:"similarity"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Count    int64  `json:"count"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// MetricsSnapshot holds four independent aggregates; they are not taken atomically.
type MetricsSnapshot struct {
	Daily    []DailyCount    `json:"daily"`
	Status   []StatusCount   `json:"status"`
	Priority []PriorityCount `json:"priority"`
	Tags     []TagCount      `json:"tags"`
}

type AnswerResult struct {
	Route   Route            `json:"route"`
	Answer  string           `json:"answer"`
	Metrics *MetricsSnapshot `json:"metrics,omitempty"`
	Matches []RetrievedMatch `json:"matches,omitempty"`
}

type InsightsResult struct {
	Query   string           `json:"query"`
	Matches []RetrievedMatch `json:"matches"`
	Summary string           `json:"summary"`
}
