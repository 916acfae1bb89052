package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supportwise/insights/internal/models"
)

func TestClassify(t *testing.T) {
	c := DefaultIntentClassifier()
	cases := []struct {
		question string
		want     models.Route
	}{
		{"How many tickets were opened last week?", models.RouteMetrics},
		{"count tickets by status", models.RouteMetrics},
		{"Show the ticket VOLUME trend", models.RouteMetrics},
		{"what is our SLA compliance", models.RouteMetrics},
		{"tickets this month by priority", models.RouteMetrics},
		{"customers can't log in after password reset", models.RouteSemantic},
		{"refund not received", models.RouteSemantic},
		{"", models.RouteSemantic},
	}
	for _, tc := range cases {
		t.Run(tc.question, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.question))
		})
	}
}

func TestClassifyFirstRuleWins(t *testing.T) {
	c := IntentClassifier{Rules: []IntentRule{
		{Pattern: "login", Route: models.RouteSemantic},
		{Pattern: "count", Route: models.RouteMetrics},
	}}
	assert.Equal(t, models.RouteSemantic, c.Classify("count login failures"))
}

func TestClassifyNoRules(t *testing.T) {
	assert.Equal(t, models.RouteSemantic, IntentClassifier{}.Classify("how many tickets"))
}
