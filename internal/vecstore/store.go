// Package vecstore wraps the embedded chromem vector database behind the
// narrow search/add contract the rest of the system depends on. Alongside the
// collection it maintains a small JSON manifest of per-component and
// per-content-type document counts, since the collection itself only answers
// similarity queries.
package vecstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/philippgille/chromem-go"
)

// Result is one similarity-search hit.
type Result struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// Store is a persistent vector collection.
type Store struct {
	db           *chromem.DB
	coll         *chromem.Collection
	name         string
	embed        chromem.EmbeddingFunc
	manifestPath string
	manifest     manifest
}

type manifest struct {
	TotalDocuments int            `json:"total_documents"`
	Components     map[string]int `json:"components"`
	ContentTypes   map[string]int `json:"content_types"`
}

// Open opens (or creates) a persistent store under dir with the given
// collection name. The embedding function is invoked for every added document
// and every query.
func Open(dir, collection string, embed chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(dir, true)
	if err != nil {
		return nil, fmt.Errorf("open vector db: %w", err)
	}
	coll, err := db.GetOrCreateCollection(collection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("open collection %s: %w", collection, err)
	}

	s := &Store{
		db:           db,
		coll:         coll,
		name:         collection,
		embed:        embed,
		manifestPath: filepath.Join(dir, collection+"_manifest.json"),
		manifest:     newManifest(),
	}
	if err := s.loadManifest(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset drops the collection and the manifest, leaving an empty store.
func (s *Store) Reset() error {
	if err := s.db.DeleteCollection(s.name); err != nil {
		return fmt.Errorf("delete collection %s: %w", s.name, err)
	}
	coll, err := s.db.GetOrCreateCollection(s.name, nil, s.embed)
	if err != nil {
		return fmt.Errorf("recreate collection %s: %w", s.name, err)
	}
	s.coll = coll
	s.manifest = newManifest()
	return s.saveManifest()
}

// Add embeds and stores a batch of documents. Metadata values must already be
// flat strings; the ids, documents and metadatas slices must align.
func (s *Store) Add(ctx context.Context, ids, documents []string, metadatas []map[string]string) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return fmt.Errorf("mismatched batch: %d ids, %d documents, %d metadatas",
			len(ids), len(documents), len(metadatas))
	}

	docs := make([]chromem.Document, len(ids))
	for i := range ids {
		docs[i] = chromem.Document{
			ID:       ids[i],
			Content:  documents[i],
			Metadata: metadatas[i],
		}
	}
	if err := s.coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("add documents: %w", err)
	}

	for _, md := range metadatas {
		s.manifest.TotalDocuments++
		if c := md["component"]; c != "" {
			s.manifest.Components[c]++
		}
		if ct := md["content_type"]; ct != "" {
			s.manifest.ContentTypes[ct]++
		}
	}
	return s.saveManifest()
}

// Search runs a similarity query, optionally restricted by metadata equality
// filters, and returns up to n results ordered by descending similarity. n is
// clamped to the collection size; an empty collection yields no results.
func (s *Store) Search(ctx context.Context, query string, n int, where map[string]string) ([]Result, error) {
	count := s.coll.Count()
	if count == 0 {
		return nil, nil
	}
	if n > count {
		n = count
	}
	if n <= 0 {
		return nil, nil
	}

	hits, err := s.coll.Query(ctx, query, n, where, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = Result{
			ID:         h.ID,
			Content:    h.Content,
			Metadata:   h.Metadata,
			Similarity: h.Similarity,
		}
	}
	return results, nil
}

// Count reports the number of stored documents.
func (s *Store) Count() int {
	return s.coll.Count()
}

// Components lists known component names, sorted.
func (s *Store) Components() []string {
	names := make([]string, 0, len(s.manifest.Components))
	for c := range s.manifest.Components {
		names = append(names, c)
	}
	sort.Strings(names)
	return names
}

// ComponentCounts returns the per-component document counts.
func (s *Store) ComponentCounts() map[string]int {
	return copyCounts(s.manifest.Components)
}

// ContentTypeCounts returns the per-content-type document counts.
func (s *Store) ContentTypeCounts() map[string]int {
	return copyCounts(s.manifest.ContentTypes)
}

func newManifest() manifest {
	return manifest{
		Components:   make(map[string]int),
		ContentTypes: make(map[string]int),
	}
}

func (s *Store) loadManifest() error {
	data, err := os.ReadFile(s.manifestPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	if m.Components == nil {
		m.Components = make(map[string]int)
	}
	if m.ContentTypes == nil {
		m.ContentTypes = make(map[string]int)
	}
	s.manifest = m
	return nil
}

func (s *Store) saveManifest() error {
	data, err := json.MarshalIndent(s.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(s.manifestPath, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
