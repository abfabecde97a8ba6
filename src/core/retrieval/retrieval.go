// Package retrieval maps free-text queries to ranked passages from the
// chunk store by searching the vector index.
package retrieval

import (
	"context"
	"errors"
	"fmt"

	"ragbot/src/core/corpus"
	"ragbot/src/core/vectorindex"
	"ragbot/src/infrastructure/log"
)

// Embedder turns texts into fixed-dimension vectors, one per input, in
// input order. The same embedder (model and preprocessing) must be used
// at index-build time and at query time, or retrieval quality silently
// degrades.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Passage is one retrieved chunk with its provenance and the squared
// Euclidean distance to the query. Lower distance means more relevant.
type Passage struct {
	DocID    string
	PageNum  int
	Text     string
	Distance float32
}

// Service answers retrieval queries. It holds the read-only index and
// store loaded at startup; concurrent use is safe.
type Service struct {
	embedder Embedder
	index    *vectorindex.Index
	store    *corpus.Store
}

// NewService wires a retriever. The index and store must have been
// built together: a length mismatch is a corrupt deployment, not a
// recoverable condition.
func NewService(embedder Embedder, index *vectorindex.Index, store *corpus.Store) (*Service, error) {
	if index.Len() != store.Len() {
		return nil, fmt.Errorf("index has %d vectors but corpus has %d chunks: stores were not built together", index.Len(), store.Len())
	}
	return &Service{
		embedder: embedder,
		index:    index,
		store:    store,
	}, nil
}

// Retrieve embeds the query, searches the index, and joins the results
// back to their chunks. Results come back best-first, at most
// min(k, corpus size) of them. Positions the chunk store cannot resolve
// are skipped rather than failing the query.
func (s *Service) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}

	results, err := s.index.Search(vectors[0], k)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	passages := make([]Passage, 0, len(results))
	for _, r := range results {
		chunk, err := s.store.Get(r.Position)
		if err != nil {
			if errors.Is(err, corpus.ErrOutOfRange) {
				log.Error(err, "search result outside chunk store, skipping", "position", r.Position)
				continue
			}
			return nil, err
		}
		passages = append(passages, Passage{
			DocID:    chunk.DocID,
			PageNum:  chunk.PageNum,
			Text:     chunk.Text,
			Distance: r.Distance,
		})
	}
	return passages, nil
}
