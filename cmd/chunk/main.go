// Command chunk splits a Vuetify documentation markdown file into chunks and
// writes two JSON files: the full chunk dump and the embedding-ready form
// consumed by the load command.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/Sorenv6543/vuetify-rag-api/internal/chunk"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	output := flag.String("output", "vuetify_chunks", "output file prefix")
	chunkSize := flag.Int("chunk-size", 1200, "maximum chunk size in characters")
	overlap := flag.Int("overlap", 150, "chunk overlap in characters")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <documentation.md>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	doc, err := os.ReadFile(input)
	if err != nil {
		log.Error("failed to read input", "path", input, "error", err)
		os.Exit(1)
	}

	chunker := chunk.New(chunk.Config{MaxChunkSize: *chunkSize, Overlap: *overlap})
	chunks := chunker.ChunkDocument(string(doc))
	if len(chunks) == 0 {
		log.Error("no chunks produced, check the input format", "path", input)
		os.Exit(1)
	}

	chunkPath := *output + ".json"
	embeddingPath := *output + "_embedding_ready.json"
	if err := chunk.SaveJSON(chunks, chunkPath); err != nil {
		log.Error("failed to write chunks", "path", chunkPath, "error", err)
		os.Exit(1)
	}
	if err := chunk.SaveEmbeddingReady(chunks, embeddingPath); err != nil {
		log.Error("failed to write embedding-ready chunks", "path", embeddingPath, "error", err)
		os.Exit(1)
	}

	printAnalysis(chunks, chunker.Stats())
	fmt.Printf("\nWrote %s and %s\n", chunkPath, embeddingPath)
}

func printAnalysis(chunks []chunk.Chunk, stats chunk.Stats) {
	var totalChars int
	components := map[string]int{}
	contentTypes := map[string]int{}
	languages := map[string]int{}
	for _, ch := range chunks {
		totalChars += ch.ContentLength
		components[ch.Meta.Component]++
		contentTypes[ch.Meta.ContentType]++
		if ch.Meta.Language != "" {
			languages[ch.Meta.Language]++
		}
	}

	fmt.Printf("Chunking complete in %s\n", stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("Total chunks: %d\n", len(chunks))
	fmt.Printf("Average chunk size: %d chars\n", totalChars/len(chunks))
	fmt.Printf("Components found: %d\n", stats.ComponentsFound)
	fmt.Printf("Code examples: %d\n", stats.CodeExamples)
	fmt.Printf("API sections: %d\n", stats.APISections)

	fmt.Println("\nTop components:")
	for _, entry := range topCounts(components, 10) {
		fmt.Printf("  %-24s %d\n", entry.key, entry.count)
	}
	fmt.Println("\nContent types:")
	for _, entry := range topCounts(contentTypes, 0) {
		fmt.Printf("  %-24s %d\n", entry.key, entry.count)
	}
	if len(languages) > 0 {
		fmt.Println("\nCode languages:")
		for _, entry := range topCounts(languages, 0) {
			fmt.Printf("  %-24s %d\n", entry.key, entry.count)
		}
	}
}

type keyCount struct {
	key   string
	count int
}

// topCounts ranks a counter map by descending count, key as tiebreak. A
// limit of 0 keeps everything.
func topCounts(m map[string]int, limit int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, n := range m {
		out = append(out, keyCount{key: k, count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
