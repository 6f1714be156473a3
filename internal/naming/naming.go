// Package naming holds the single component-name normalization shared by the
// chunker and the query analyzer.
package naming

import (
	"regexp"
	"strings"
)

var (
	// TagPattern matches explicit component tags like v-btn or v-data-table.
	TagPattern = regexp.MustCompile(`(?i)\bv-[a-z][a-z-]*\b`)

	// CamelPattern matches CamelCase component references like DataTable or
	// AppBar. At least two humps are required so ordinary capitalized words
	// at the start of a sentence are not mistaken for components.
	CamelPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:[A-Z][a-z]+)+\b`)

	upperRune  = regexp.MustCompile(`[A-Z]`)
	dashRun    = regexp.MustCompile(`-{2,}`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Component normalizes a heading title or a raw token to the canonical
// v-prefixed kebab-case identifier: "Button" -> "v-button",
// "Data Table" -> "v-data-table", "DataTable" -> "v-data-table",
// "V-Btn" -> "v-btn". Returns "" for blank input.
func Component(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(name), "v-") {
		return strings.ToLower(name)
	}

	kebab := upperRune.ReplaceAllString(name, "-$0")
	kebab = whitespace.ReplaceAllString(kebab, "-")
	kebab = dashRun.ReplaceAllString(strings.ToLower(kebab), "-")
	kebab = strings.Trim(kebab, "-")
	if kebab == "" {
		return ""
	}
	return "v-" + kebab
}
