// Package query classifies free-text documentation questions: it infers the
// intent, extracts referenced component names and domain keywords, suggests
// vector-store filters and builds an enriched search string.
package query

import (
	"strings"

	"github.com/Sorenv6543/vuetify-rag-api/internal/naming"
)

// Intent is the coarse classification of what a query asks for.
type Intent string

const (
	IntentAPIReference    Intent = "api_reference"
	IntentCodeExample     Intent = "code_example"
	IntentStyling         Intent = "styling"
	IntentComponentUsage  Intent = "component_usage"
	IntentComparison      Intent = "comparison"
	IntentTroubleshooting Intent = "troubleshooting"
	IntentBestPractices   Intent = "best_practices"
	IntentIntegration     Intent = "integration"
)

// defaultConfidence is reported when no intent clears the score threshold.
const (
	scoreThreshold    = 0.1
	defaultConfidence = 0.5
)

// Filters are suggested metadata equality filters for the vector store.
type Filters struct {
	Component   string `json:"component,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Analysis is the result of analyzing one user query.
type Analysis struct {
	Query         string   `json:"query"`
	Intent        Intent   `json:"query_type"`
	Components    []string `json:"components"`
	Keywords      []string `json:"keywords"`
	Confidence    float64  `json:"confidence"`
	Filters       Filters  `json:"filters"`
	EnhancedQuery string   `json:"enhanced_query,omitempty"`
}

// Analyze inspects a free-text query. It is pure and deterministic: intent
// ties resolve to the intent listed first in the fixed ordering, and detected
// components keep first-seen order.
func Analyze(q string) Analysis {
	components := extractComponents(q)
	intent, confidence := classifyIntent(q)
	keywords := extractKeywords(q)

	filters := Filters{ContentType: contentTypeByIntent[intent]}
	if len(components) > 0 {
		filters.Component = components[0]
	}

	return Analysis{
		Query:         q,
		Intent:        intent,
		Components:    components,
		Keywords:      keywords,
		Confidence:    confidence,
		Filters:       filters,
		EnhancedQuery: enhanceQuery(q, components, keywords, intent),
	}
}

// extractComponents finds component references via the explicit v-xxx token
// pattern and the CamelCase pattern, normalized and deduplicated.
func extractComponents(q string) []string {
	var components []string
	seen := make(map[string]bool)
	add := func(raw string) {
		c := naming.Component(raw)
		if c != "" && !seen[c] {
			seen[c] = true
			components = append(components, c)
		}
	}

	for _, m := range naming.TagPattern.FindAllString(q, -1) {
		add(m)
	}
	for _, m := range naming.CamelPattern.FindAllString(q, -1) {
		add(m)
	}
	return components
}

// classifyIntent scores every intent by the fraction of its keyword list
// found in the lowercased query and picks the best one, falling back to
// component_usage below the threshold.
func classifyIntent(q string) (Intent, float64) {
	ql := strings.ToLower(q)

	best := IntentComponentUsage
	bestScore := 0.0
	for _, intent := range intentOrder {
		keywords := intentKeywords[intent]
		matched := 0
		for _, kw := range keywords {
			if strings.Contains(ql, kw) {
				matched++
			}
		}
		score := float64(matched) / float64(len(keywords))
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}

	if bestScore > scoreThreshold {
		return best, bestScore
	}
	return IntentComponentUsage, defaultConfidence
}

// extractKeywords scans the fixed domain vocabulary for substring matches.
func extractKeywords(q string) []string {
	ql := strings.ToLower(q)
	var found []string
	for _, cat := range vocabulary {
		for _, kw := range cat.words {
			if strings.Contains(ql, kw) {
				found = append(found, kw)
			}
		}
	}
	return found
}

// enhanceQuery concatenates, in fixed order: the original query, the domain
// context phrase, detected components, detected keywords and the
// intent-specific keyword phrase.
func enhanceQuery(q string, components, keywords []string, intent Intent) string {
	parts := []string{q, domainContext}
	if len(components) > 0 {
		parts = append(parts, "components: "+strings.Join(components, " "))
	}
	if len(keywords) > 0 {
		parts = append(parts, "related: "+strings.Join(keywords, " "))
	}
	if ctx := intentContext[intent]; ctx != "" {
		parts = append(parts, ctx)
	}
	return strings.Join(parts, " ")
}
