// Package rag orchestrates retrieval and response composition: query
// analysis, staged vector-store searches, deduplication and either an
// AI-composed or a deterministic fallback answer.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Sorenv6543/vuetify-rag-api/internal/query"
	"github.com/Sorenv6543/vuetify-rag-api/internal/vecstore"
)

// componentSearchLimit bounds each per-component fallback search.
const componentSearchLimit = 3

// Searcher is the vector-store boundary the orchestrator depends on.
type Searcher interface {
	Search(ctx context.Context, q string, n int, where map[string]string) ([]vecstore.Result, error)
}

// Completer composes a natural-language answer from prompts. A nil Completer
// means no completion backend is configured, which is a normal condition: the
// deterministic fallback formatter answers instead.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// RAG owns the store and completion handles for the process lifetime.
type RAG struct {
	store Searcher
	llm   Completer
	log   *slog.Logger
}

func New(store Searcher, llm Completer, log *slog.Logger) *RAG {
	return &RAG{store: store, llm: llm, log: log}
}

// Source describes one retrieved chunk in an answer.
type Source struct {
	Component  string `json:"component"`
	Section    string `json:"section"`
	Type       string `json:"type"`
	Similarity string `json:"similarity"`
}

// Answer is the result of one query.
type Answer struct {
	Query    string          `json:"query"`
	Response string          `json:"response"`
	Sources  []Source        `json:"sources"`
	Analysis *query.Analysis `json:"analysis,omitempty"`
	Strategy string          `json:"search_strategy,omitempty"`

	// Scores carries the raw similarity scores for analytics.
	Scores []float64 `json:"-"`
}

// SmartQuery answers a question using multi-stage retrieval: a primary search
// with the analyzer's enriched query and suggested component filter, then one
// additional search per detected component with the original query when the
// primary stage returned fewer results than requested. Results are
// deduplicated by chunk ID and truncated to n.
func (r *RAG) SmartQuery(ctx context.Context, userQuery string, n int) (*Answer, error) {
	analysis := query.Analyze(userQuery)
	r.log.Info("query analyzed",
		"intent", analysis.Intent,
		"components", analysis.Components,
		"confidence", analysis.Confidence,
	)

	all, err := r.store.Search(ctx, analysis.EnhancedQuery, n, componentFilter(analysis.Filters.Component))
	if err != nil {
		return nil, fmt.Errorf("primary search: %w", err)
	}

	if len(all) < n && len(analysis.Components) > 0 {
		for _, component := range analysis.Components {
			extra, err := r.store.Search(ctx, userQuery, componentSearchLimit,
				map[string]string{"component": component})
			if err != nil {
				return nil, fmt.Errorf("component search %s: %w", component, err)
			}
			all = append(all, extra...)
		}
	}

	final := dedupe(all)
	if len(final) > n {
		final = final[:n]
	}

	answer := &Answer{
		Query:    userQuery,
		Analysis: &analysis,
		Strategy: "multi_stage_intelligent",
		Sources:  sources(final),
		Scores:   scores(final),
	}
	answer.Response = r.respond(ctx, userQuery, final, &analysis)
	return answer, nil
}

// Query answers a question with a single search and a generic prompt, for
// callers that bypass query analysis.
func (r *RAG) Query(ctx context.Context, userQuery string, n int, component string) (*Answer, error) {
	results, err := r.store.Search(ctx, userQuery, n, componentFilter(component))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	answer := &Answer{
		Query:   userQuery,
		Sources: sources(results),
		Scores:  scores(results),
	}
	answer.Response = r.respond(ctx, userQuery, results, nil)
	return answer, nil
}

// Search exposes the raw store search for search-only callers.
func (r *RAG) Search(ctx context.Context, userQuery string, n int, component string) ([]vecstore.Result, error) {
	return r.store.Search(ctx, userQuery, n, componentFilter(component))
}

// respond picks the response path: no hits, AI composition, or the
// deterministic fallback. A completion failure falls back rather than
// surfacing an error; the fallback must stay reproducible offline.
func (r *RAG) respond(ctx context.Context, userQuery string, results []vecstore.Result, analysis *query.Analysis) string {
	if len(results) == 0 {
		return noResultsResponse
	}
	if r.llm == nil {
		return FormatFallback(results)
	}

	system, user := buildPrompts(userQuery, results, analysis)
	text, err := r.llm.Complete(ctx, system, user)
	if err != nil {
		r.log.Warn("completion failed, using fallback", "error", err)
		return FormatFallback(results)
	}
	return text
}

// dedupe removes duplicate hits by chunk ID: stable sort by descending
// similarity first, then first-seen wins.
func dedupe(results []vecstore.Result) []vecstore.Result {
	sorted := make([]vecstore.Result, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Similarity > sorted[j].Similarity
	})

	seen := make(map[string]bool, len(sorted))
	unique := sorted[:0]
	for _, res := range sorted {
		if seen[res.ID] {
			continue
		}
		seen[res.ID] = true
		unique = append(unique, res)
	}
	return unique
}

func componentFilter(component string) map[string]string {
	if component == "" {
		return nil
	}
	return map[string]string{"component": component}
}

func sources(results []vecstore.Result) []Source {
	out := make([]Source, len(results))
	for i, res := range results {
		out[i] = Source{
			Component:  metaOr(res.Metadata, "component", "Unknown"),
			Section:    metaOr(res.Metadata, "subsection", "General"),
			Type:       metaOr(res.Metadata, "content_type", "documentation"),
			Similarity: fmt.Sprintf("%.3f", res.Similarity),
		}
	}
	return out
}

func metaOr(meta map[string]string, key, fallback string) string {
	if v := meta[key]; v != "" {
		return v
	}
	return fallback
}

func scores(results []vecstore.Result) []float64 {
	out := make([]float64, len(results))
	for i, res := range results {
		out[i] = float64(res.Similarity)
	}
	return out
}
