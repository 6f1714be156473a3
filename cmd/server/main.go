package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Sorenv6543/vuetify-rag-api/internal/analytics"
	"github.com/Sorenv6543/vuetify-rag-api/internal/api"
	"github.com/Sorenv6543/vuetify-rag-api/internal/config"
	"github.com/Sorenv6543/vuetify-rag-api/internal/llm"
	"github.com/Sorenv6543/vuetify-rag-api/internal/rag"
	"github.com/Sorenv6543/vuetify-rag-api/internal/vecstore"
	"github.com/joho/godotenv"
	"github.com/philippgille/chromem-go"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	embed := chromem.NewEmbeddingFuncOllama(cfg.OllamaEmbedModel,
		strings.TrimSuffix(cfg.OllamaURL, "/")+"/api")

	store, err := vecstore.Open(cfg.DataDir, cfg.Collection, embed)
	if err != nil {
		log.Error("failed to open vector store", "error", err, "dir", cfg.DataDir)
		os.Exit(1)
	}
	log.Info("vector store ready",
		"collection", cfg.Collection,
		"documents", store.Count(),
	)

	analyticsStore, err := analytics.Open(cfg.AnalyticsDB)
	if err != nil {
		log.Error("failed to open analytics store", "error", err, "path", cfg.AnalyticsDB)
		os.Exit(1)
	}
	defer analyticsStore.Close()

	// A nil interface (not a typed-nil *llm.Client) selects the
	// deterministic fallback path.
	var completer rag.Completer
	var llmStats api.LLMStats
	if cfg.LLMAPIKey != "" {
		client := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
		defer client.Close()
		completer = client
		llmStats = client.Stats()
		log.Info("ai responses enabled", "model", client.Model())
	} else {
		log.Info("no LLM API key configured, using fallback responses")
	}

	orch := rag.New(store, completer, log)
	srv := api.NewServer(orch, store, analyticsStore, llmStats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting vuetify-rag-api", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
