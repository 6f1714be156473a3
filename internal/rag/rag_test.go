package rag

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Sorenv6543/vuetify-rag-api/internal/query"
	"github.com/Sorenv6543/vuetify-rag-api/internal/vecstore"
)

type searchCall struct {
	query string
	n     int
	where map[string]string
}

// stubStore returns the same fixed results for every search and records the
// calls it receives.
type stubStore struct {
	calls   []searchCall
	results []vecstore.Result
	err     error
}

func (s *stubStore) Search(ctx context.Context, q string, n int, where map[string]string) ([]vecstore.Result, error) {
	s.calls = append(s.calls, searchCall{query: q, n: n, where: where})
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (c *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	c.calls++
	return c.response, c.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func result(id, component string, similarity float32) vecstore.Result {
	return vecstore.Result{
		ID:      id,
		Content: "content of " + id,
		Metadata: map[string]string{
			"component":    component,
			"subsection":   "Usage",
			"content_type": "usage_guide",
		},
		Similarity: similarity,
	}
}

func TestSmartQueryPrimaryOnly(t *testing.T) {
	store := &stubStore{results: []vecstore.Result{
		result("c1", "v-btn", 0.9),
		result("c2", "v-btn", 0.8),
	}}
	r := New(store, nil, testLogger())

	answer, err := r.SmartQuery(context.Background(), "v-btn usage", 2)
	if err != nil {
		t.Fatalf("SmartQuery: %v", err)
	}
	if len(store.calls) != 1 {
		t.Fatalf("got %d searches, want 1 (primary found enough)", len(store.calls))
	}
	if len(answer.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(answer.Sources))
	}
	if answer.Strategy != "multi_stage_intelligent" {
		t.Errorf("strategy = %q", answer.Strategy)
	}
	if answer.Analysis == nil || len(answer.Analysis.Components) == 0 || answer.Analysis.Components[0] != "v-btn" {
		t.Errorf("analysis missing component: %+v", answer.Analysis)
	}
	if answer.Sources[0].Similarity != "0.900" {
		t.Errorf("source similarity = %q, want 0.900", answer.Sources[0].Similarity)
	}
}

func TestSmartQueryComponentFallback(t *testing.T) {
	store := &stubStore{} // every search finds nothing
	r := New(store, nil, testLogger())

	answer, err := r.SmartQuery(context.Background(), "v-btn usage", 5)
	if err != nil {
		t.Fatalf("SmartQuery: %v", err)
	}
	if len(store.calls) != 2 {
		t.Fatalf("got %d searches, want primary plus one per component", len(store.calls))
	}

	primary := store.calls[0]
	if primary.query == "v-btn usage" {
		t.Error("primary search should use the enriched query, not the original")
	}
	if primary.where["component"] != "v-btn" {
		t.Errorf("primary filter = %v, want component=v-btn", primary.where)
	}

	fallback := store.calls[1]
	if fallback.query != "v-btn usage" {
		t.Errorf("fallback used query %q, want the original query", fallback.query)
	}
	if fallback.n != componentSearchLimit {
		t.Errorf("fallback n = %d, want %d", fallback.n, componentSearchLimit)
	}
	if fallback.where["component"] != "v-btn" {
		t.Errorf("fallback filter = %v, want component=v-btn", fallback.where)
	}
	if answer.Response != noResultsResponse {
		t.Errorf("response = %q, want the no-results message", answer.Response)
	}
}

func TestSmartQueryNoFallbackWithoutComponents(t *testing.T) {
	store := &stubStore{}
	r := New(store, nil, testLogger())

	if _, err := r.SmartQuery(context.Background(), "how does theming work", 5); err != nil {
		t.Fatalf("SmartQuery: %v", err)
	}
	if len(store.calls) != 1 {
		t.Errorf("got %d searches, want 1 (no components detected)", len(store.calls))
	}
}

func TestSmartQueryTruncatesAndDedupes(t *testing.T) {
	// Both stages return the same two results; after deduplication and
	// truncation only the best one remains.
	store := &stubStore{results: []vecstore.Result{
		result("c1", "v-btn", 0.7),
		result("c2", "v-btn", 0.9),
	}}
	r := New(store, nil, testLogger())

	answer, err := r.SmartQuery(context.Background(), "v-btn usage", 1)
	if err != nil {
		t.Fatalf("SmartQuery: %v", err)
	}
	if len(answer.Sources) != 1 {
		t.Fatalf("sources = %d, want 1 after truncation", len(answer.Sources))
	}
	if answer.Sources[0].Similarity != "0.900" {
		t.Errorf("kept source similarity = %q, want the best hit", answer.Sources[0].Similarity)
	}
}

func TestSmartQueryPropagatesStoreError(t *testing.T) {
	store := &stubStore{err: errors.New("store down")}
	r := New(store, nil, testLogger())

	if _, err := r.SmartQuery(context.Background(), "v-btn usage", 5); err == nil {
		t.Error("expected the store error to propagate")
	}
}

func TestQueryPlain(t *testing.T) {
	store := &stubStore{results: []vecstore.Result{result("c1", "v-btn", 0.9)}}
	r := New(store, nil, testLogger())

	answer, err := r.Query(context.Background(), "button styling", 3, "v-btn")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(store.calls) != 1 {
		t.Fatalf("got %d searches, want 1", len(store.calls))
	}
	if store.calls[0].query != "button styling" {
		t.Errorf("query = %q, want the original text unmodified", store.calls[0].query)
	}
	if store.calls[0].where["component"] != "v-btn" {
		t.Errorf("filter = %v, want component=v-btn", store.calls[0].where)
	}
	if answer.Analysis != nil {
		t.Error("plain query should not carry analysis")
	}
}

func TestDedupe(t *testing.T) {
	in := []vecstore.Result{
		result("a", "v-btn", 0.5),
		result("b", "v-btn", 0.9),
		result("a", "v-btn", 0.7),
		result("c", "v-card", 0.6),
	}
	out := dedupe(in)
	if len(out) != 3 {
		t.Fatalf("got %d results, want 3 unique", len(out))
	}
	wantOrder := []string{"b", "a", "c"}
	for i, id := range wantOrder {
		if out[i].ID != id {
			t.Errorf("result %d = %q, want %q", i, out[i].ID, id)
		}
	}
	// The duplicate keeps its highest-similarity occurrence.
	if out[1].Similarity != 0.7 {
		t.Errorf("deduped similarity = %v, want 0.7", out[1].Similarity)
	}
}

func TestRespondUsesCompleter(t *testing.T) {
	store := &stubStore{results: []vecstore.Result{result("c1", "v-btn", 0.9)}}
	llm := &stubCompleter{response: "composed answer"}
	r := New(store, llm, testLogger())

	answer, err := r.SmartQuery(context.Background(), "v-btn usage", 1)
	if err != nil {
		t.Fatalf("SmartQuery: %v", err)
	}
	if answer.Response != "composed answer" {
		t.Errorf("response = %q, want the completion", answer.Response)
	}
	if llm.calls != 1 {
		t.Errorf("completer called %d times, want 1", llm.calls)
	}
}

func TestRespondFallsBackOnCompleterError(t *testing.T) {
	store := &stubStore{results: []vecstore.Result{result("c1", "v-btn", 0.9)}}
	llm := &stubCompleter{err: errors.New("api down")}
	r := New(store, llm, testLogger())

	answer, err := r.SmartQuery(context.Background(), "v-btn usage", 1)
	if err != nil {
		t.Fatalf("SmartQuery: %v", err)
	}
	if !strings.HasPrefix(answer.Response, "Based on the Vuetify documentation:") {
		t.Errorf("response = %q, want the fallback format", answer.Response)
	}
}

func TestFormatFallback(t *testing.T) {
	out := FormatFallback([]vecstore.Result{result("c1", "v-btn", 0.876)})
	for _, want := range []string{
		"Based on the Vuetify documentation:",
		"1. v-btn - Usage (usage_guide) [relevance: 0.88]:",
		"content of c1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fallback output %q missing %q", out, want)
		}
	}

	if FormatFallback(nil) != noResultsResponse {
		t.Error("empty results should yield the no-results message")
	}
}

func TestFormatFallbackTruncatesLongContent(t *testing.T) {
	res := result("c1", "v-btn", 0.9)
	res.Content = strings.Repeat("x", fallbackSummaryChars+50)
	out := FormatFallback([]vecstore.Result{res})
	if !strings.Contains(out, strings.Repeat("x", fallbackSummaryChars)+"...") {
		t.Error("long content not truncated with ellipsis")
	}
	if strings.Contains(out, strings.Repeat("x", fallbackSummaryChars+1)) {
		t.Error("content exceeds the summary budget")
	}
}

func TestFormatFallbackDefaultsMissingMetadata(t *testing.T) {
	out := FormatFallback([]vecstore.Result{{ID: "c1", Content: "text", Similarity: 0.5}})
	if !strings.Contains(out, "Unknown - General (documentation)") {
		t.Errorf("fallback output %q missing metadata defaults", out)
	}
}

func TestBuildPrompts(t *testing.T) {
	results := []vecstore.Result{result("c1", "v-btn", 0.9)}
	a := query.Analyze("v-btn props")

	system, user := buildPrompts("v-btn props", results, &a)
	if !strings.Contains(system, "API expert") {
		t.Errorf("system prompt = %q, want the api_reference persona", system)
	}
	for _, want := range []string{
		"Query Type: api_reference",
		"Components: v-btn",
		"[Source 1: v-btn - Usage]",
		"content of c1",
		"User Question: v-btn props",
	} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}

	system, _ = buildPrompts("anything", results, nil)
	if system != defaultSystemPrompt {
		t.Errorf("system prompt = %q, want the default without analysis", system)
	}
}
