// Package ingest converts source PDF documents into the chunk records
// the retrieval core is built from. It runs offline, before the serving
// process ever starts.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/tmc/langchaingo/textsplitter"

	"ragbot/src/core/corpus"
	"ragbot/src/infrastructure/log"
)

const (
	// DefaultChunkSize is the target chunk length in characters; the
	// splitter keeps sentence boundaries where it can.
	DefaultChunkSize = 400
	// DefaultMinChunkSize drops trailing fragments too short to be a
	// useful retrieval unit.
	DefaultMinChunkSize = 100
)

var (
	strayChars = regexp.MustCompile(`[^\p{L}\p{N}\s,\.\-]`)
	dotRuns    = regexp.MustCompile(`\.{2,}`)
)

// Page is the extracted text of one PDF page, 1-based.
type Page struct {
	Num  int
	Text string
}

// Options tunes chunking. Zero values mean the defaults.
type Options struct {
	ChunkSize    int
	MinChunkSize int
}

func (o Options) withDefaults() Options {
	if o.ChunkSize <= 0 {
		o.ChunkSize = DefaultChunkSize
	}
	if o.MinChunkSize <= 0 {
		o.MinChunkSize = DefaultMinChunkSize
	}
	return o
}

// ExtractPages pulls plain text out of a PDF, one entry per non-empty
// page.
func ExtractPages(path string) ([]Page, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	var pages []Page
	for num := 1; num <= reader.NumPage(); num++ {
		p := reader.Page(num)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			log.Error(err, "failed to extract page text, skipping page", "file", path, "page", num)
			continue
		}
		text = CleanText(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Num: num, Text: text})
	}
	return pages, nil
}

// CleanText normalizes extracted page text: strips stray symbols,
// collapses dot runs and whitespace.
func CleanText(text string) string {
	text = strayChars.ReplaceAllString(text, "")
	text = dotRuns.ReplaceAllString(text, ".")
	return strings.Join(strings.Fields(text), " ")
}

// ChunkPages splits each page's text into chunk records. Ids are
// assigned from nextID onward, so callers processing several documents
// keep one global sequence.
func ChunkPages(docID string, pages []Page, nextID int, opts Options) ([]corpus.Chunk, error) {
	opts = opts.withDefaults()
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(opts.ChunkSize),
		textsplitter.WithChunkOverlap(0),
		textsplitter.WithSeparators([]string{"\n", ". ", "! ", "? ", ", ", " ", ""}),
	)

	var chunks []corpus.Chunk
	for _, page := range pages {
		parts, err := splitter.SplitText(page.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to split %s page %d: %w", docID, page.Num, err)
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if len([]rune(part)) < opts.MinChunkSize {
				continue
			}
			chunks = append(chunks, corpus.Chunk{
				DocID:   docID,
				PageNum: page.Num,
				ChunkID: nextID,
				Text:    part,
			})
			nextID++
		}
	}
	return chunks, nil
}

// Directory ingests every PDF in dir (sorted by name, for stable chunk
// ids) into one chunk sequence.
func Directory(dir string, opts Options) ([]corpus.Chunk, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read document directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no pdf files in %s", dir)
	}

	var all []corpus.Chunk
	for _, name := range names {
		pages, err := ExtractPages(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		chunks, err := ChunkPages(name, pages, len(all), opts)
		if err != nil {
			return nil, err
		}
		log.Info("ingested document", "file", name, "pages", len(pages), "chunks", len(chunks))
		all = append(all, chunks...)
	}
	return all, nil
}
