package rag

import (
	"fmt"
	"strings"

	"github.com/Sorenv6543/vuetify-rag-api/internal/query"
	"github.com/Sorenv6543/vuetify-rag-api/internal/vecstore"
)

const (
	noResultsResponse = "No relevant documentation found for your query."

	defaultSystemPrompt = "You are a helpful Vuetify expert assistant."

	// fallbackSummaryChars bounds each excerpt in the deterministic answer.
	fallbackSummaryChars = 300
)

// systemPrompts selects the assistant persona per detected intent. Intents
// without an entry use the default prompt.
var systemPrompts = map[query.Intent]string{
	query.IntentAPIReference: "You are a Vuetify API expert. Provide precise technical information " +
		"about component props, events, and slots. Include types and default values when available.",
	query.IntentCodeExample: "You are a Vuetify code expert. Provide working code examples with " +
		"clear explanations. Format code blocks properly and explain key implementation details.",
	query.IntentStyling: "You are a Vuetify theming expert. Explain styling options, theme " +
		"configuration, and visual customization with concrete examples.",
	query.IntentTroubleshooting: "You are a Vuetify debugging expert. Diagnose the described problem " +
		"and suggest concrete fixes, common pitfalls, and workarounds.",
}

// buildPrompts assembles the system and user prompts for AI composition.
// With analysis, the user prompt carries the detected intent, components and
// keywords ahead of the retrieved context.
func buildPrompts(userQuery string, results []vecstore.Result, analysis *query.Analysis) (system, user string) {
	system = defaultSystemPrompt
	if analysis != nil {
		if p, ok := systemPrompts[analysis.Intent]; ok {
			system = p
		}
	}

	var b strings.Builder
	if analysis != nil {
		fmt.Fprintf(&b, "Query Type: %s\n", analysis.Intent)
		if len(analysis.Components) > 0 {
			fmt.Fprintf(&b, "Components: %s\n", strings.Join(analysis.Components, ", "))
		}
		if len(analysis.Keywords) > 0 {
			fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(analysis.Keywords, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("Context from Vuetify Documentation:\n")
	for i, res := range results {
		component := metaOr(res.Metadata, "component", "Unknown")
		section := metaOr(res.Metadata, "subsection", "General")
		fmt.Fprintf(&b, "[Source %d: %s - %s]\n%s\n\n", i+1, component, section, res.Content)
	}

	fmt.Fprintf(&b, "User Question: %s\n", userQuery)
	b.WriteString("Please provide a comprehensive answer based on the documentation context above. " +
		"Cite which sources you used when relevant.")
	return system, b.String()
}

// FormatFallback renders retrieved chunks as a numbered plain-text answer.
// It is the response path when no completion backend is configured or the
// completion call fails.
func FormatFallback(results []vecstore.Result) string {
	if len(results) == 0 {
		return noResultsResponse
	}

	var b strings.Builder
	b.WriteString("Based on the Vuetify documentation:\n")
	for i, res := range results {
		component := metaOr(res.Metadata, "component", "Unknown")
		section := metaOr(res.Metadata, "subsection", "General")
		contentType := metaOr(res.Metadata, "content_type", "documentation")

		fmt.Fprintf(&b, "\n%d. %s - %s (%s) [relevance: %.2f]:\n%s\n",
			i+1, component, section, contentType, res.Similarity, summarize(res.Content))
	}
	return b.String()
}

// summarize truncates content on a rune boundary with an ellipsis marker.
func summarize(content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) <= fallbackSummaryChars {
		return trimmed
	}
	return string(runes[:fallbackSummaryChars]) + "..."
}
