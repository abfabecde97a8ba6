// Package corpus holds the read-only chunk store: the ordered sequence
// of text passages the retriever joins vector search results against.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrOutOfRange is returned by Get for positions past the end of the store.
var ErrOutOfRange = errors.New("chunk position out of range")

// Chunk is one retrieval unit produced by the offline ingestion step.
// ChunkID equals the chunk's position in the store; the vector index's
// i-th vector belongs to the i-th chunk, and the retriever relies on
// that alignment.
type Chunk struct {
	DocID   string `json:"doc_id"`
	PageNum int    `json:"page_num"`
	ChunkID int    `json:"chunk_id"`
	Text    string `json:"text"`
}

// Store is an ordered, immutable collection of chunks.
type Store struct {
	chunks []Chunk
}

// NewStore builds a store from an in-memory chunk sequence, enforcing
// the positional-id invariant. Used by ingestion and tests; Load is the
// serving path.
func NewStore(chunks []Chunk) (*Store, error) {
	for i, c := range chunks {
		if c.ChunkID != i {
			return nil, fmt.Errorf("chunk at position %d has id %d: corpus is misaligned", i, c.ChunkID)
		}
	}
	return &Store{chunks: chunks}, nil
}

// Load reads a chunk file written by the ingest step. The file is a
// JSON array of chunk records ordered by chunk id.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunk file: %w", err)
	}

	var chunks []Chunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse chunk file %s: %w", path, err)
	}

	store, err := NewStore(chunks)
	if err != nil {
		return nil, fmt.Errorf("chunk file %s: %w", path, err)
	}
	return store, nil
}

// Save writes the store to a chunk file in the format Load expects.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s.chunks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode chunks: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write chunk file: %w", err)
	}
	return nil
}

// Get returns the chunk at the given position.
func (s *Store) Get(position int) (Chunk, error) {
	if position < 0 || position >= len(s.chunks) {
		return Chunk{}, fmt.Errorf("position %d of %d: %w", position, len(s.chunks), ErrOutOfRange)
	}
	return s.chunks[position], nil
}

// Len returns the number of chunks in the store.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Texts returns the chunk texts in store order, for bulk embedding.
func (s *Store) Texts() []string {
	texts := make([]string, len(s.chunks))
	for i, c := range s.chunks {
		texts[i] = c.Text
	}
	return texts
}
