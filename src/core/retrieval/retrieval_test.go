package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ragbot/src/core/corpus"
	"ragbot/src/core/vectorindex"
)

// keywordEmbedder maps texts onto keyword-count vectors. Deterministic
// and applied identically to corpus and queries, like a real embedding
// model must be.
type keywordEmbedder struct {
	keywords []string
}

func (e *keywordEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v := make([]float32, len(e.keywords))
		for j, kw := range e.keywords {
			v[j] = float32(strings.Count(strings.ToLower(text), kw))
		}
		vectors[i] = v
	}
	return vectors, nil
}

type failingEmbedder struct{}

func (e *failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("embedding model unreachable")
}

func testCorpus(t *testing.T) (*corpus.Store, *keywordEmbedder, *vectorindex.Index) {
	t.Helper()
	store, err := corpus.NewStore([]corpus.Chunk{
		{DocID: "printer.pdf", PageNum: 2, ChunkID: 0, Text: "Error E02 means the scanner unit is locked. Unlock it and restart the printer."},
		{DocID: "printer.pdf", PageNum: 3, ChunkID: 1, Text: "Error E05 means the cartridge is not recognized. Reseat the cartridge."},
		{DocID: "printer.pdf", PageNum: 5, ChunkID: 2, Text: "To clear a paper jam, open the rear tray and pull the sheet out gently."},
	})
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	embedder := &keywordEmbedder{keywords: []string{"e02", "e05", "paper jam"}}
	vectors, err := embedder.Embed(context.Background(), store.Texts())
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	index, err := vectorindex.Build(vectors)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return store, embedder, index
}

func TestRetrieveRanksRelevantChunkFirst(t *testing.T) {
	store, embedder, index := testCorpus(t)
	svc, err := NewService(embedder, index, store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	passages, err := svc.Retrieve(context.Background(), "printer shows E02, what do I do", 3)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(passages) != 3 {
		t.Fatalf("Retrieve() returned %d passages, want 3", len(passages))
	}
	if !strings.Contains(passages[0].Text, "E02") {
		t.Errorf("best passage does not mention E02: %q", passages[0].Text)
	}
	for i := 1; i < len(passages); i++ {
		if passages[i-1].Distance > passages[i].Distance {
			t.Errorf("passages not sorted by distance at %d", i)
		}
	}
	if passages[0].DocID != "printer.pdf" || passages[0].PageNum != 2 {
		t.Errorf("best passage provenance = %s page %d, want printer.pdf page 2", passages[0].DocID, passages[0].PageNum)
	}
}

func TestRetrieveCapsAtCorpusSize(t *testing.T) {
	store, embedder, index := testCorpus(t)
	svc, err := NewService(embedder, index, store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	passages, err := svc.Retrieve(context.Background(), "anything", 50)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(passages) != store.Len() {
		t.Errorf("Retrieve() returned %d passages, want %d", len(passages), store.Len())
	}
}

func TestRetrieveSkipsPositionsOutsideStore(t *testing.T) {
	store, embedder, _ := testCorpus(t)

	// An index with more vectors than the store has chunks simulates
	// independently rebuilt stores. The join must skip the orphans, not
	// fail the query or return invalid passages.
	vectors, err := embedder.Embed(context.Background(), append(store.Texts(), "orphan one", "orphan two"))
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	bigIndex, err := vectorindex.Build(vectors)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	svc := &Service{embedder: embedder, index: bigIndex, store: store}
	passages, err := svc.Retrieve(context.Background(), "paper jam", 5)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(passages) != store.Len() {
		t.Fatalf("Retrieve() returned %d passages, want %d valid ones", len(passages), store.Len())
	}
	for _, p := range passages {
		if p.Text == "" {
			t.Error("retrieved passage with empty text")
		}
	}
}

func TestNewServiceRejectsMismatchedStores(t *testing.T) {
	store, embedder, _ := testCorpus(t)
	smallIndex, err := vectorindex.Build([][]float32{{1, 0, 0}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := NewService(embedder, smallIndex, store); err == nil {
		t.Error("NewService() accepted index/store length mismatch")
	}
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	store, _, index := testCorpus(t)
	svc, err := NewService(&failingEmbedder{}, index, store)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	if _, err := svc.Retrieve(context.Background(), "anything", 3); err == nil {
		t.Error("Retrieve() succeeded with a failing embedder")
	}
}
