package ingest_test

import (
	"strings"
	"testing"

	"ragbot/src/core/ingest"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "collapses whitespace",
			in:   "spread   over\n\n lines\tand tabs",
			want: "spread over lines and tabs",
		},
		{
			name: "strips stray symbols",
			in:   "price: 100% §guaranteed* (really)",
			want: "price 100 guaranteed really",
		},
		{
			name: "collapses dot runs",
			in:   "chapter one.......... page 4",
			want: "chapter one. page 4",
		},
		{
			name: "keeps unicode letters",
			in:   "Ошибка E02 на принтере",
			want: "Ошибка E02 на принтере",
		},
		{
			name: "empty",
			in:   "   \n\t ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ingest.CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestChunkPages(t *testing.T) {
	sentence := "The quick brown fox jumps over the lazy dog near the riverbank. "
	long := strings.TrimSpace(strings.Repeat(sentence, 20))

	pages := []ingest.Page{
		{Num: 1, Text: long},
		{Num: 2, Text: "Too short to keep."},
		{Num: 3, Text: long},
	}

	chunks, err := ingest.ChunkPages("manual.pdf", pages, 5, ingest.Options{})
	if err != nil {
		t.Fatalf("ChunkPages() error = %v", err)
	}
	if len(chunks) < 4 {
		t.Fatalf("ChunkPages() produced %d chunks, want several per long page", len(chunks))
	}

	for i, c := range chunks {
		if c.ChunkID != 5+i {
			t.Errorf("chunk %d has id %d, want sequential from 5", i, c.ChunkID)
		}
		if c.DocID != "manual.pdf" {
			t.Errorf("chunk %d has doc id %q", i, c.DocID)
		}
		if c.PageNum != 1 && c.PageNum != 3 {
			t.Errorf("chunk %d attributed to page %d, short page 2 should yield nothing", i, c.PageNum)
		}
		n := len([]rune(c.Text))
		if n < ingest.DefaultMinChunkSize {
			t.Errorf("chunk %d is %d runes, below the minimum", i, n)
		}
		if n > ingest.DefaultChunkSize {
			t.Errorf("chunk %d is %d runes, above the target size", i, n)
		}
	}
}

func TestChunkPagesEmpty(t *testing.T) {
	chunks, err := ingest.ChunkPages("manual.pdf", nil, 0, ingest.Options{})
	if err != nil {
		t.Fatalf("ChunkPages() error = %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("ChunkPages() produced %d chunks from no pages", len(chunks))
	}
}
