package api

import (
	"net/http"
	"sort"
)

// statsTopComponents bounds the component distribution in /stats.
const statsTopComponents = 20

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	components := s.store.Components()
	writeJSON(w, http.StatusOK, map[string]any{
		"components": components,
		"total":      len(components),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	componentCounts := s.store.ComponentCounts()

	type componentCount struct {
		Component string `json:"component"`
		Chunks    int    `json:"chunks"`
	}
	ranked := make([]componentCount, 0, len(componentCounts))
	for component, n := range componentCounts {
		ranked = append(ranked, componentCount{Component: component, Chunks: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Chunks != ranked[j].Chunks {
			return ranked[i].Chunks > ranked[j].Chunks
		}
		return ranked[i].Component < ranked[j].Component
	})
	if len(ranked) > statsTopComponents {
		ranked = ranked[:statsTopComponents]
	}

	out := map[string]any{
		"total_documents":        s.store.Count(),
		"total_components":       len(componentCounts),
		"component_distribution": ranked,
		"content_types":          s.store.ContentTypeCounts(),
		"collection":             s.cfg.Collection,
	}
	if s.llmStats != nil {
		out["llm"] = s.llmStats.Snapshot()
	}
	writeJSON(w, http.StatusOK, out)
}
