// Command load reads an embedding-ready chunk file, embeds the chunks via
// Ollama and stores them in the persistent vector database, then verifies the
// collection with a few sample searches.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Sorenv6543/vuetify-rag-api/internal/chunk"
	"github.com/Sorenv6543/vuetify-rag-api/internal/config"
	"github.com/Sorenv6543/vuetify-rag-api/internal/vecstore"
	"github.com/joho/godotenv"
	"github.com/philippgille/chromem-go"
)

var verificationQueries = []string{
	"v-btn component usage",
	"color props",
	"API documentation",
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	_ = godotenv.Load()
	cfg := config.Load()

	chunksPath := flag.String("chunks", "vuetify_chunks_embedding_ready.json", "embedding-ready chunk file")
	dataDir := flag.String("data", cfg.DataDir, "vector store directory")
	collection := flag.String("collection", cfg.Collection, "collection name")
	batchSize := flag.Int("batch", 100, "documents per batch")
	maxChunks := flag.Int("max", 0, "limit loaded chunks (0 = all)")
	reset := flag.Bool("reset", false, "drop the collection before loading")
	flag.Parse()

	chunks, err := chunk.LoadChunkFile(*chunksPath)
	if err != nil {
		log.Error("failed to load chunk file", "path", *chunksPath, "error", err)
		os.Exit(1)
	}
	if *maxChunks > 0 && len(chunks) > *maxChunks {
		chunks = chunks[:*maxChunks]
	}
	log.Info("chunks loaded", "path", *chunksPath, "count", len(chunks))

	embed := chromem.NewEmbeddingFuncOllama(cfg.OllamaEmbedModel,
		strings.TrimSuffix(cfg.OllamaURL, "/")+"/api")

	store, err := vecstore.Open(*dataDir, *collection, embed)
	if err != nil {
		log.Error("failed to open vector store", "dir", *dataDir, "error", err)
		os.Exit(1)
	}
	if *reset {
		if err := store.Reset(); err != nil {
			log.Error("failed to reset collection", "error", err)
			os.Exit(1)
		}
		log.Info("collection reset", "collection", *collection)
	}

	ctx := context.Background()
	for offset := 0; offset < len(chunks); offset += *batchSize {
		end := offset + *batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[offset:end]

		ids := make([]string, len(batch))
		documents := make([]string, len(batch))
		metadatas := make([]map[string]string, len(batch))
		for i, ch := range batch {
			ids[i] = ch.DocID()
			documents[i] = ch.DocText()
			metadatas[i] = chunk.StringMetadata(ch.Metadata)
		}

		if err := store.Add(ctx, ids, documents, metadatas); err != nil {
			log.Error("failed to add batch", "offset", offset, "error", err)
			os.Exit(1)
		}
		log.Info("batch stored", "loaded", end, "total", len(chunks))
	}

	fmt.Printf("Loaded %d chunks into %s (%d documents total)\n",
		len(chunks), *collection, store.Count())

	verify(ctx, store, log)
}

// verify runs sample searches so a bad embedding setup surfaces at load time
// rather than on the first API query.
func verify(ctx context.Context, store *vecstore.Store, log *slog.Logger) {
	fmt.Println("\nVerification searches:")
	for _, q := range verificationQueries {
		results, err := store.Search(ctx, q, 2, nil)
		if err != nil {
			log.Error("verification search failed", "query", q, "error", err)
			continue
		}
		fmt.Printf("  %q -> %d results", q, len(results))
		if len(results) > 0 {
			fmt.Printf(" (top: %s, %.3f)",
				results[0].Metadata["component"], results[0].Similarity)
		}
		fmt.Println()
	}
}
