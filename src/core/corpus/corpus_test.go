package corpus_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ragbot/src/core/corpus"
)

func writeChunkFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chunks.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadAndGet(t *testing.T) {
	path := writeChunkFile(t, `[
		{"doc_id": "manual.pdf", "page_num": 1, "chunk_id": 0, "text": "first passage"},
		{"doc_id": "manual.pdf", "page_num": 2, "chunk_id": 1, "text": "second passage"},
		{"doc_id": "faq.pdf", "page_num": 1, "chunk_id": 2, "text": "third passage"}
	]`)

	store, err := corpus.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", store.Len())
	}

	chunk, err := store.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if chunk.DocID != "manual.pdf" || chunk.PageNum != 2 || chunk.Text != "second passage" {
		t.Errorf("Get(1) = %+v, want manual.pdf page 2", chunk)
	}

	for _, position := range []int{-1, 3, 100} {
		if _, err := store.Get(position); !errors.Is(err, corpus.ErrOutOfRange) {
			t.Errorf("Get(%d) error = %v, want ErrOutOfRange", position, err)
		}
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not json",
			content: "this is not a chunk file",
		},
		{
			name: "misaligned chunk ids",
			content: `[
				{"doc_id": "a.pdf", "page_num": 1, "chunk_id": 0, "text": "ok"},
				{"doc_id": "a.pdf", "page_num": 1, "chunk_id": 7, "text": "wrong id"}
			]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := corpus.Load(writeChunkFile(t, tt.content)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		if _, err := corpus.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("Load() succeeded, want error")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	store, err := corpus.NewStore([]corpus.Chunk{
		{DocID: "a.pdf", PageNum: 1, ChunkID: 0, Text: "alpha"},
		{DocID: "b.pdf", PageNum: 4, ChunkID: 1, Text: "beta"},
	})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "chunks.json")
	if err := store.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := corpus.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Len() != store.Len() {
		t.Fatalf("Len() = %d after round trip, want %d", loaded.Len(), store.Len())
	}
	chunk, err := loaded.Get(1)
	if err != nil {
		t.Fatalf("Get(1) error = %v", err)
	}
	if chunk.DocID != "b.pdf" || chunk.Text != "beta" {
		t.Errorf("Get(1) = %+v after round trip", chunk)
	}
}
