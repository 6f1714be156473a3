package query

import (
	"strings"
	"testing"
)

func TestAnalyzeAPIQuery(t *testing.T) {
	a := Analyze("v-btn color props")

	if a.Intent != IntentAPIReference {
		t.Errorf("intent = %q, want %q", a.Intent, IntentAPIReference)
	}
	if len(a.Components) != 1 || a.Components[0] != "v-btn" {
		t.Errorf("components = %q, want [v-btn]", a.Components)
	}
	if a.Filters.Component != "v-btn" {
		t.Errorf("component filter = %q, want v-btn", a.Filters.Component)
	}
	if a.Filters.ContentType != "api_reference" {
		t.Errorf("content type filter = %q, want api_reference", a.Filters.ContentType)
	}
	if a.Confidence <= scoreThreshold {
		t.Errorf("confidence = %v, want above threshold", a.Confidence)
	}
}

func TestAnalyzeCamelCaseComponent(t *testing.T) {
	a := Analyze("How do I use DataTable sorting")

	if len(a.Components) != 1 || a.Components[0] != "v-data-table" {
		t.Errorf("components = %q, want [v-data-table]", a.Components)
	}
	if a.Intent != IntentComponentUsage {
		t.Errorf("intent = %q, want %q", a.Intent, IntentComponentUsage)
	}
	// "table" and "sorting" appear in the vocabulary's data category.
	joined := strings.Join(a.Keywords, " ")
	for _, kw := range []string{"table", "sorting"} {
		if !strings.Contains(joined, kw) {
			t.Errorf("keywords %q missing %q", a.Keywords, kw)
		}
	}
}

func TestAnalyzeFallbackIntent(t *testing.T) {
	a := Analyze("zzz qqq")

	if a.Intent != IntentComponentUsage {
		t.Errorf("intent = %q, want the component_usage fallback", a.Intent)
	}
	if a.Confidence != defaultConfidence {
		t.Errorf("confidence = %v, want %v", a.Confidence, defaultConfidence)
	}
	if len(a.Components) != 0 {
		t.Errorf("components = %q, want none", a.Components)
	}
}

func TestAnalyzeIntentTieBreak(t *testing.T) {
	// "demo" scores 1/8 for code_example, "vs" scores 1/8 for comparison;
	// the earlier intent in the fixed ordering wins the tie.
	a := Analyze("demo vs")
	if a.Intent != IntentCodeExample {
		t.Errorf("intent = %q, want %q", a.Intent, IntentCodeExample)
	}
}

func TestAnalyzeDeduplicatesComponents(t *testing.T) {
	a := Analyze("v-data-table or DataTable")
	if len(a.Components) != 1 || a.Components[0] != "v-data-table" {
		t.Errorf("components = %q, want [v-data-table] once", a.Components)
	}
}

func TestEnhancedQueryShape(t *testing.T) {
	a := Analyze("v-btn color props")

	if !strings.HasPrefix(a.EnhancedQuery, "v-btn color props "+domainContext) {
		t.Errorf("enhanced query = %q, want original query then domain context", a.EnhancedQuery)
	}
	if !strings.Contains(a.EnhancedQuery, "components: v-btn") {
		t.Errorf("enhanced query missing components: %q", a.EnhancedQuery)
	}
	if !strings.Contains(a.EnhancedQuery, intentContext[IntentAPIReference]) {
		t.Errorf("enhanced query missing intent phrase: %q", a.EnhancedQuery)
	}
}

func TestAnalyzeNoContentTypeFilterForComparison(t *testing.T) {
	a := Analyze("v-btn versus v-chip difference comparison")
	if a.Intent != IntentComparison {
		t.Fatalf("intent = %q, want %q", a.Intent, IntentComparison)
	}
	if a.Filters.ContentType != "" {
		t.Errorf("content type filter = %q, want none for comparison", a.Filters.ContentType)
	}
	if len(a.Components) != 2 {
		t.Errorf("components = %q, want both v-btn and v-chip", a.Components)
	}
}
