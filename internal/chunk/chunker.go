// Package chunk splits Vuetify markdown documentation into retrieval-ready
// chunks: one overview chunk per component, one chunk per fenced code block
// with its preceding explanation, and sentence-packed text chunks for prose
// subsections.
package chunk

import (
	"fmt"
	"strings"
	"time"
)

const (
	chunkIDPrefix = "vuetify_chunk"
	chunkSource   = "vuetify_documentation"
)

// Config controls chunking behavior.
type Config struct {
	MaxChunkSize int // chunk budget in characters
	Overlap      int // accepted for compatibility; the sentence packer does not apply it
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxChunkSize: 1200,
		Overlap:      150,
	}
}

// Stats aggregates counters for one chunking run.
type Stats struct {
	TotalChunks     int
	ComponentsFound int
	CodeExamples    int
	APISections     int
	Elapsed         time.Duration
}

// Chunker splits one markdown document into chunks. Each instance owns its ID
// counter; IDs start at 1 and increase by exactly one per chunk in emission
// order. Construct a new Chunker per run.
type Chunker struct {
	cfg     Config
	counter int
	stats   Stats
}

// New creates a Chunker, applying defaults for zero config fields.
func New(cfg Config) *Chunker {
	if cfg.MaxChunkSize <= 0 {
		cfg.MaxChunkSize = 1200
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	return &Chunker{cfg: cfg}
}

// ChunkDocument splits an entire documentation file into chunks, sections in
// document order, each component's overview chunk before its subsection and
// code chunks.
func (c *Chunker) ChunkDocument(doc string) []Chunk {
	start := time.Now()

	sections := SplitSections(doc)
	var chunks []Chunk
	for _, sec := range sections {
		chunks = append(chunks, c.chunkSection(sec)...)
	}

	c.stats.TotalChunks = len(chunks)
	c.stats.ComponentsFound = len(sections)
	c.stats.Elapsed = time.Since(start)
	return chunks
}

// Stats returns the counters accumulated by this chunker's runs.
func (c *Chunker) Stats() Stats {
	return c.stats
}

func (c *Chunker) chunkSection(sec Section) []Chunk {
	if sec.Component == "" {
		// Structural anomaly: skip the section rather than emit chunks
		// with an empty component.
		return nil
	}

	subs := SplitSubsections(sec.Content)

	var chunks []Chunk
	if overview, ok := buildOverview(sec, subs); ok {
		chunks = append(chunks, c.assemble(overview, Metadata{
			Component:   sec.Component,
			SectionType: SectionOverview,
			ContentType: TypeComponentOverview,
		}))
	}
	for _, sub := range subs {
		chunks = append(chunks, c.chunkSubsection(sub, sec.Component)...)
	}
	return chunks
}

func (c *Chunker) chunkSubsection(sub Subsection, component string) []Chunk {
	contentType := ClassifyContent(sub.Title, sub.Content)

	if hasCodeBlock(sub.Content) {
		chunks := c.splitCodeContent(sub.Content, component, sub.Title)
		if contentType == TypeCodeExample {
			c.stats.CodeExamples += len(chunks)
		}
		return chunks
	}

	var chunks []Chunk
	for i, part := range c.splitLargeContent(sub.Content) {
		content := fmt.Sprintf("## %s - %s\n\n%s", component, sub.Title, part)
		chunks = append(chunks, c.assemble(content, Metadata{
			Component:   component,
			SectionType: SectionSubsection,
			Subsection:  sub.Title,
			ContentType: contentType,
			ChunkIndex:  i,
		}))
		if contentType == TypeAPIReference {
			c.stats.APISections++
		}
	}
	return chunks
}

// assemble stamps a chunk with the next ID, the constant source tag and the
// derived length/word counters.
func (c *Chunker) assemble(content string, meta Metadata) Chunk {
	c.counter++
	id := fmt.Sprintf("%s_%06d", chunkIDPrefix, c.counter)
	meta.ChunkID = id
	meta.Source = chunkSource
	return Chunk{
		ID:            id,
		Content:       content,
		ContentLength: len(content),
		WordCount:     len(strings.Fields(content)),
		Meta:          meta,
	}
}
