package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sorenv6543/vuetify-rag-api/internal/analytics"
	"github.com/Sorenv6543/vuetify-rag-api/internal/config"
	"github.com/Sorenv6543/vuetify-rag-api/internal/llm"
	"github.com/Sorenv6543/vuetify-rag-api/internal/rag"
	"github.com/Sorenv6543/vuetify-rag-api/internal/vecstore"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Orchestrator answers questions against the documentation store.
type Orchestrator interface {
	SmartQuery(ctx context.Context, q string, n int) (*rag.Answer, error)
	Query(ctx context.Context, q string, n int, component string) (*rag.Answer, error)
	Search(ctx context.Context, q string, n int, component string) ([]vecstore.Result, error)
}

// StoreInfo exposes collection statistics for the info endpoints.
type StoreInfo interface {
	Count() int
	Components() []string
	ComponentCounts() map[string]int
	ContentTypeCounts() map[string]int
}

// LLMStats exposes rolling completion-call statistics.
type LLMStats interface {
	Snapshot() llm.Snapshot
}

// Server is the HTTP API server for the documentation assistant.
type Server struct {
	router    chi.Router
	rag       Orchestrator
	store     StoreInfo
	analytics *analytics.Store
	llmStats  LLMStats
	log       *slog.Logger
	cfg       config.Config
	started   time.Time
}

// NewServer creates and configures the HTTP server. analyticsStore and
// llmStats may be nil: a nil analyticsStore disables query logging and the
// analytics endpoints, a nil llmStats omits the LLM section of /stats.
func NewServer(orch Orchestrator, store StoreInfo, analyticsStore *analytics.Store, llmStats LLMStats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		rag:       orch,
		store:     store,
		analytics: analyticsStore,
		llmStats:  llmStats,
		log:       log,
		cfg:       cfg,
		started:   time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)

	// Query endpoints, authenticated when an API key is configured.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/ask", s.handleAsk)
		r.Post("/search", s.handleSearch)
		r.Get("/components", s.handleComponents)
		r.Get("/stats", s.handleStats)
		r.Get("/analytics/summary", s.handleAnalyticsSummary)
		r.Get("/analytics/trending", s.handleAnalyticsTrending)
	})

	s.router = r
}
