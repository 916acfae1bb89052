package service

import (
	"strings"

	"github.com/supportwise/insights/internal/models"
)

type IntentRule struct {
	Pattern string
	Route   models.Route
}

// IntentClassifier routes a question by the first rule whose pattern occurs
// in the lower-cased text. Questions matching no rule are semantic.
type IntentClassifier struct {
	Rules []IntentRule
}

var metricsKeywords = []string{
	"how many",
	"number of",
	"count",
	"volume",
	"trend",
	"per day",
	"per week",
	"per month",
	"distribution",
	"by status",
	"by priority",
	"by tag",
	"sla",
	"average response time",
	"tickets last",
	"tickets this month",
}

func DefaultIntentClassifier() IntentClassifier {
	rules := make([]IntentRule, 0, len(metricsKeywords))
	for _, kw := range metricsKeywords {
		rules = append(rules, IntentRule{Pattern: kw, Route: models.RouteMetrics})
	}
	return IntentClassifier{Rules: rules}
}

func (c IntentClassifier) Classify(question string) models.Route {
	q := strings.ToLower(question)
	for _, r := range c.Rules {
		if strings.Contains(q, r.Pattern) {
			return r.Route
		}
	}
	return models.RouteSemantic
}
