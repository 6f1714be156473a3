package chunk

import (
	"regexp"
	"strings"
)

// codeFenceOpenPattern detects an opening fence: three backticks, an optional
// language tag, then a newline.
var codeFenceOpenPattern = regexp.MustCompile("```\\w*\n")

// classifyRule maps a predicate over (lowercased title, content) to a content
// type. Rules are evaluated in order; the first match wins, so a "Usage
// Example" subsection with code is usage_guide, not code_example.
type classifyRule struct {
	contentType string
	match       func(title, content string) bool
}

var classifyRules = []classifyRule{
	{TypeAPIReference, func(t, _ string) bool {
		return strings.Contains(t, "api") || strings.Contains(t, "prop")
	}},
	{TypeUsageGuide, func(t, _ string) bool {
		return strings.Contains(t, "usage")
	}},
	{TypeCodeExample, func(t, c string) bool {
		return strings.Contains(t, "example") || hasCodeBlock(c)
	}},
	{TypeSlotsReference, func(t, _ string) bool {
		return strings.Contains(t, "slot")
	}},
	{TypeEventsReference, func(t, _ string) bool {
		return strings.Contains(t, "event")
	}},
}

// ClassifyContent labels a subsection by its title and content.
func ClassifyContent(title, content string) string {
	t := strings.ToLower(title)
	for _, r := range classifyRules {
		if r.match(t, content) {
			return r.contentType
		}
	}
	return TypeDocumentation
}

func hasCodeBlock(content string) bool {
	return codeFenceOpenPattern.MatchString(content)
}
