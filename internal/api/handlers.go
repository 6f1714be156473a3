package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Sorenv6543/vuetify-rag-api/internal/analytics"
	"github.com/google/uuid"
)

// contextPrefixChars bounds how much caller-supplied context is prepended to
// the question.
const contextPrefixChars = 200

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Vuetify Documentation RAG API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"POST /ask":               "ask a question about Vuetify",
			"POST /search":            "raw similarity search",
			"GET /components":         "list indexed components",
			"GET /stats":              "collection statistics",
			"GET /health":             "health check",
			"GET /analytics/summary":  "usage summary",
			"GET /analytics/trending": "popular queries",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	total := s.store.Count()
	status := "healthy"
	dbStatus := "connected"
	if total == 0 {
		dbStatus = "empty"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          status,
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
		"database_status": dbStatus,
		"total_documents": total,
		"server_uptime":   time.Since(s.started).Round(time.Second).String(),
	})
}

type askRequest struct {
	Query           string `json:"query"`
	Context         string `json:"context,omitempty"`
	ComponentFilter string `json:"component_filter,omitempty"`
	NResults        int    `json:"n_results,omitempty"`
	UseEnhanced     *bool  `json:"use_enhanced,omitempty"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}

	n := req.NResults
	if n <= 0 {
		n = s.cfg.DefaultResults
	}

	question := req.Query
	contextUsed := false
	if req.Context != "" {
		prefix := req.Context
		if len([]rune(prefix)) > contextPrefixChars {
			prefix = truncateRunes(prefix, contextPrefixChars) + "..."
		}
		question = fmt.Sprintf("Given this context: %s\n\nQuestion: %s", prefix, req.Query)
		contextUsed = true
	}

	enhanced := req.UseEnhanced == nil || *req.UseEnhanced

	start := time.Now()
	var (
		answer any
		err    error
	)
	if enhanced && req.ComponentFilter == "" {
		answer, err = s.askEnhanced(r, question, n, req.Query, start, contextUsed)
	} else {
		answer, err = s.askPlain(r, question, n, req.ComponentFilter, req.Query, start, contextUsed)
	}
	if err != nil {
		s.log.Error("ask failed", "error", err)
		jsonError(w, "query failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (s *Server) askEnhanced(r *http.Request, question string, n int, original string, start time.Time, contextUsed bool) (any, error) {
	answer, err := s.rag.SmartQuery(r.Context(), question, n)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	s.logQuery(r, analytics.QueryLog{
		Query:         original,
		QueryType:     string(answer.Analysis.Intent),
		Components:    answer.Analysis.Components,
		ResponseTime:  elapsed,
		NumResults:    len(answer.Sources),
		AvgSimilarity: meanScore(answer.Scores),
	})

	return map[string]any{
		"query":         original,
		"response":      answer.Response,
		"sources":       answer.Sources,
		"analysis":      answer.Analysis,
		"strategy":      answer.Strategy,
		"response_time": elapsed,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"context_used":  contextUsed,
	}, nil
}

func (s *Server) askPlain(r *http.Request, question string, n int, component, original string, start time.Time, contextUsed bool) (any, error) {
	answer, err := s.rag.Query(r.Context(), question, n, component)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start).Seconds()

	s.logQuery(r, analytics.QueryLog{
		Query:         original,
		ResponseTime:  elapsed,
		NumResults:    len(answer.Sources),
		AvgSimilarity: meanScore(answer.Scores),
	})

	return map[string]any{
		"query":         original,
		"response":      answer.Response,
		"sources":       answer.Sources,
		"response_time": elapsed,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"context_used":  contextUsed,
	}, nil
}

type searchRequest struct {
	Query           string `json:"query"`
	ComponentFilter string `json:"component_filter,omitempty"`
	NResults        int    `json:"n_results,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Query == "" {
		jsonError(w, "query is required", http.StatusBadRequest)
		return
	}
	n := req.NResults
	if n <= 0 {
		n = s.cfg.DefaultResults
	}

	results, err := s.rag.Search(r.Context(), req.Query, n, req.ComponentFilter)
	if err != nil {
		s.log.Error("search failed", "error", err)
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]map[string]any, len(results))
	for i, res := range results {
		out[i] = map[string]any{
			"content":          res.Content,
			"metadata":         res.Metadata,
			"similarity_score": res.Similarity,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   req.Query,
		"results": out,
		"total":   len(out),
	})
}

func (s *Server) handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	if s.analytics == nil {
		jsonError(w, "analytics unavailable", http.StatusServiceUnavailable)
		return
	}
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	summary, err := s.analytics.Summary(r.Context(), days)
	if err != nil {
		s.log.Error("analytics summary failed", "error", err)
		jsonError(w, "analytics summary failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAnalyticsTrending(w http.ResponseWriter, r *http.Request) {
	if s.analytics == nil {
		jsonError(w, "analytics unavailable", http.StatusServiceUnavailable)
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	trending, err := s.analytics.Trending(r.Context(), limit)
	if err != nil {
		s.log.Error("analytics trending failed", "error", err)
		jsonError(w, "analytics trending failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"trending_queries": trending,
		"period":           "7 days",
	})
}

// logQuery records a query event, tagging it with a fresh session ID. A
// logging failure must never fail the request.
func (s *Server) logQuery(r *http.Request, entry analytics.QueryLog) {
	if s.analytics == nil {
		return
	}
	entry.SessionID = uuid.NewString()
	if err := s.analytics.LogQuery(r.Context(), entry); err != nil {
		s.log.Warn("analytics logging failed", "error", err)
	}
}

func meanScore(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores))
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
