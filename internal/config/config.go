package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port string

	// Auth (optional; empty disables the auth middleware)
	APIKey string

	// Vector store
	DataDir    string
	Collection string

	// Embeddings (Ollama)
	OllamaURL        string
	OllamaEmbedModel string

	// Response composition (OpenAI-compatible; key optional, empty means
	// deterministic fallback responses)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Analytics
	AnalyticsDB string

	// Chunking defaults
	MaxChunkSize int
	ChunkOverlap int

	// Retrieval
	DefaultResults int
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8080"),

		APIKey: os.Getenv("RAG_API_KEY"),

		DataDir:    envOr("DATA_DIR", "./data"),
		Collection: envOr("COLLECTION_NAME", "vuetify_docs"),

		OllamaURL:        envOr("OLLAMA_URL", "http://localhost:11434"),
		OllamaEmbedModel: envOr("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		LLMBaseURL: envOr("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   envOr("LLM_MODEL", "gpt-3.5-turbo"),

		AnalyticsDB: envOr("ANALYTICS_DB", "rag_analytics.db"),

		MaxChunkSize: envInt("MAX_CHUNK_SIZE", 1200),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 150),

		DefaultResults: envInt("DEFAULT_RESULTS", 5),
	}

	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = 1200
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 150
	}
	if cfg.DefaultResults <= 0 {
		cfg.DefaultResults = 5
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if c.Collection == "" {
		return fmt.Errorf("COLLECTION_NAME is required")
	}
	if !strings.HasPrefix(c.OllamaURL, "http://") && !strings.HasPrefix(c.OllamaURL, "https://") {
		return fmt.Errorf("OLLAMA_URL must be an http(s) URL, got %q", c.OllamaURL)
	}
	if c.ChunkOverlap >= c.MaxChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP (%d) must be smaller than MAX_CHUNK_SIZE (%d)",
			c.ChunkOverlap, c.MaxChunkSize)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
