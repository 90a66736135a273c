// Package chromemdb wraps the chromem-go vector database behind the handful
// of operations the rest of the app needs: named collections of chunk +
// embedding + source metadata, persisted on disk across runs.
package chromemdb

import (
	"context"
	"fmt"
	"runtime"

	"github.com/philippgille/chromem-go"
)

const compress = false

// Store encapsulates the chromem-go database. Collections are created lazily
// on first ingestion and persist until deleted as a whole; there is no
// row-level deletion.
type Store struct {
	db      *chromem.DB
	embedFn chromem.EmbeddingFunc
}

// NewStore opens (or creates) the persistent database at dbPath.
func NewStore(dbPath string, embedFn chromem.EmbeddingFunc) (*Store, error) {
	db, err := chromem.NewPersistentDB(dbPath, compress)
	if err != nil {
		return nil, fmt.Errorf("opening vector database at %s: %w", dbPath, err)
	}
	return &Store{db: db, embedFn: embedFn}, nil
}

// NewMemoryStore creates a throwaway in-memory store, used in tests.
func NewMemoryStore(embedFn chromem.EmbeddingFunc) *Store {
	return &Store{db: chromem.NewDB(), embedFn: embedFn}
}

// AddDocuments upserts docs into the named collection, creating it if absent.
func (s *Store) AddDocuments(ctx context.Context, collection string, docs []chromem.Document) error {
	c, err := s.db.GetOrCreateCollection(collection, nil, s.embedFn)
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if err := c.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("adding documents to %s: %w", collection, err)
	}
	return nil
}

// Search returns the k nearest chunks to queryEmbedding in the named
// collection, most similar first. k is clamped to the collection size.
func (s *Store) Search(ctx context.Context, collection string, queryEmbedding []float32, k int) ([]chromem.Result, error) {
	c := s.db.GetCollection(collection, s.embedFn)
	if c == nil {
		return nil, fmt.Errorf("collection %s does not exist", collection)
	}
	if n := c.Count(); k > n {
		k = n
	}
	if k == 0 {
		return nil, nil
	}
	results, err := c.QueryEmbedding(ctx, queryEmbedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}
	return results, nil
}

// Count returns the number of documents in the named collection, or zero if
// the collection does not exist.
func (s *Store) Count(collection string) int {
	c := s.db.GetCollection(collection, s.embedFn)
	if c == nil {
		return 0
	}
	return c.Count()
}

// ListCollections returns the names of all collections.
func (s *Store) ListCollections() []string {
	collections := s.db.ListCollections()
	names := make([]string, 0, len(collections))
	for name := range collections {
		names = append(names, name)
	}
	return names
}

// DeleteCollection removes a collection and everything in it.
func (s *Store) DeleteCollection(name string) error {
	if err := s.db.DeleteCollection(name); err != nil {
		return fmt.Errorf("deleting collection %s: %w", name, err)
	}
	return nil
}
