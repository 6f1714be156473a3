package chunk

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// rawChunk is the on-disk raw chunk form.
type rawChunk struct {
	ChunkID       string         `json:"chunk_id"`
	Content       string         `json:"content"`
	Metadata      map[string]any `json:"metadata"`
	ContentLength int            `json:"content_length"`
	WordCount     int            `json:"word_count"`
}

// embeddingChunk is the embedding-ready form: a context preamble is prepended
// to the text sent to the embedder while display_content keeps the original.
type embeddingChunk struct {
	ID             string         `json:"id"`
	Text           string         `json:"text"`
	DisplayContent string         `json:"display_content"`
	Metadata       map[string]any `json:"metadata"`
}

// SaveJSON writes chunks in the raw chunk file format.
func SaveJSON(chunks []Chunk, path string) error {
	out := make([]rawChunk, len(chunks))
	for i, ch := range chunks {
		out[i] = rawChunk{
			ChunkID:       ch.ID,
			Content:       ch.Content,
			Metadata:      metaMap(ch.Meta),
			ContentLength: ch.ContentLength,
			WordCount:     ch.WordCount,
		}
	}
	return writeJSON(path, out)
}

// SaveEmbeddingReady writes chunks in the embedding-ready format, prefixing
// each text with a natural-language context preamble.
func SaveEmbeddingReady(chunks []Chunk, path string) error {
	out := make([]embeddingChunk, len(chunks))
	for i, ch := range chunks {
		out[i] = embeddingChunk{
			ID:             ch.ID,
			Text:           EmbeddingText(ch),
			DisplayContent: ch.Content,
			Metadata:       metaMap(ch.Meta),
		}
	}
	return writeJSON(path, out)
}

// EmbeddingText builds the context-rich text used for embedding a chunk.
func EmbeddingText(ch Chunk) string {
	var parts []string
	if ch.Meta.Component != "" {
		parts = append(parts, "Component: "+ch.Meta.Component)
	}
	if ch.Meta.Subsection != "" {
		parts = append(parts, "Section: "+ch.Meta.Subsection)
	}
	contentType := ch.Meta.ContentType
	if contentType == "" {
		contentType = TypeDocumentation
	}
	parts = append(parts, "Type: "+contentType)
	return strings.Join(parts, "\n") + "\n\n" + ch.Content
}

// metaMap flattens Metadata for persistence. Subsection is null for overview
// chunks; chunk_index appears only on split subsection chunks; language and
// has_explanation only on code chunks.
func metaMap(m Metadata) map[string]any {
	out := map[string]any{
		"component":    m.Component,
		"section_type": m.SectionType,
		"content_type": m.ContentType,
		"chunk_id":     m.ChunkID,
		"source":       m.Source,
	}
	if m.Subsection != "" {
		out["subsection"] = m.Subsection
	} else {
		out["subsection"] = nil
	}
	if m.SectionType == SectionSubsection {
		out["chunk_index"] = m.ChunkIndex
	}
	if m.SectionType == SectionCodeExample {
		out["language"] = m.Language
		out["has_explanation"] = m.HasExplanation
	}
	return out
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// StoredChunk is the union of the two persisted chunk forms, as read back
// from disk for loading into the vector store.
type StoredChunk struct {
	ID             string         `json:"id"`
	ChunkID        string         `json:"chunk_id"`
	Text           string         `json:"text"`
	Content        string         `json:"content"`
	DisplayContent string         `json:"display_content"`
	Metadata       map[string]any `json:"metadata"`
}

// DocID returns the chunk identifier regardless of which file form was read.
func (s StoredChunk) DocID() string {
	if s.ID != "" {
		return s.ID
	}
	return s.ChunkID
}

// DocText returns the text to embed: the embedding-ready text when present,
// otherwise the raw content.
func (s StoredChunk) DocText() string {
	if s.Text != "" {
		return s.Text
	}
	return s.Content
}

// DocDisplay returns the human-readable chunk text: display_content in the
// embedding-ready form, content in the raw form.
func (s StoredChunk) DocDisplay() string {
	if s.DisplayContent != "" {
		return s.DisplayContent
	}
	return s.Content
}

// LoadChunkFile reads a persisted chunk file (raw or embedding-ready form).
func LoadChunkFile(path string) ([]StoredChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var chunks []StoredChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i, ch := range chunks {
		if ch.DocID() == "" {
			return nil, fmt.Errorf("%s: chunk %d has no id", path, i)
		}
		if ch.DocText() == "" {
			return nil, fmt.Errorf("%s: chunk %s has no content", path, ch.DocID())
		}
	}
	return chunks, nil
}

// StringMetadata flattens loosely-typed metadata to the string-valued map the
// vector store requires. Nulls become empty strings.
func StringMetadata(meta map[string]any) map[string]string {
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case bool:
			out[k] = strconv.FormatBool(val)
		case float64:
			// encoding/json decodes all numbers as float64.
			if val == float64(int64(val)) {
				out[k] = strconv.FormatInt(int64(val), 10)
			} else {
				out[k] = strconv.FormatFloat(val, 'f', -1, 64)
			}
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}
