// Package vectorindex implements an exact nearest-neighbor index over
// fixed-dimension embedding vectors. Search is a brute-force scan by
// squared Euclidean distance, which is the right trade-off for corpora
// in the low thousands of vectors; positions in the index are the
// vectors' insertion order and double as chunk ids.
package vectorindex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// File format: magic, version, dimension, count, then count*dimension
// float32 values in little-endian order.
const (
	fileMagic   = "RBIDX"
	fileVersion = uint8(1)
)

var (
	// ErrDimensionMismatch is returned when a vector's length does not
	// match the index dimension.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrBadIndexFile is returned by Load for files not written by Save.
	ErrBadIndexFile = errors.New("not a valid index file")
)

// Result is a single search hit. Position identifies the vector by its
// insertion order; Distance is the squared Euclidean distance to the
// query (lower is closer).
type Result struct {
	Position int
	Distance float32
}

// Index is a flat, read-only vector index.
type Index struct {
	dim  int
	data []float32 // len(data) == count*dim, vector i at data[i*dim:(i+1)*dim]
}

// Build constructs an index from vectors, preserving input order as
// positional identity. All vectors must share the same dimension.
func Build(vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, errors.New("cannot build index from zero vectors")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("cannot build index from zero-dimension vectors")
	}

	data := make([]float32, 0, len(vectors)*dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, index has %d: %w", i, len(v), dim, ErrDimensionMismatch)
		}
		data = append(data, v...)
	}

	return &Index{dim: dim, data: data}, nil
}

// Len returns the number of vectors in the index.
func (idx *Index) Len() int {
	return len(idx.data) / idx.dim
}

// Dimension returns the vector dimension the index was built with.
func (idx *Index) Dimension() int {
	return idx.dim
}

// Reconstruct returns a copy of the vector stored at the given position.
func (idx *Index) Reconstruct(position int) ([]float32, error) {
	if position < 0 || position >= idx.Len() {
		return nil, fmt.Errorf("position %d of %d vectors", position, idx.Len())
	}
	v := make([]float32, idx.dim)
	copy(v, idx.data[position*idx.dim:])
	return v, nil
}

// Search returns the k nearest vectors to query, sorted ascending by
// squared Euclidean distance with ties broken by position. Fewer than k
// results are returned if the index holds fewer than k vectors.
func (idx *Index) Search(query []float32, k int) ([]Result, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query has dimension %d, index has %d: %w", len(query), idx.dim, ErrDimensionMismatch)
	}
	if k <= 0 {
		return nil, nil
	}

	n := idx.Len()
	results := make([]Result, n)
	for i := 0; i < n; i++ {
		var d float32
		row := idx.data[i*idx.dim : (i+1)*idx.dim]
		for j, q := range query {
			diff := row[j] - q
			d += diff * diff
		}
		results[i] = Result{Position: i, Distance: d}
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].Distance != results[b].Distance {
			return results[a].Distance < results[b].Distance
		}
		return results[a].Position < results[b].Position
	})

	if k > n {
		k = n
	}
	return results[:k], nil
}

// Save writes the index to path in the binary format Load expects.
func (idx *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte(fileMagic)); err != nil {
		return fmt.Errorf("failed to write index header: %w", err)
	}
	header := []interface{}{
		fileVersion,
		uint32(idx.dim),
		uint32(idx.Len()),
	}
	for _, field := range header {
		if err := binary.Write(f, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("failed to write index header: %w", err)
		}
	}
	if err := binary.Write(f, binary.LittleEndian, idx.data); err != nil {
		return fmt.Errorf("failed to write index vectors: %w", err)
	}
	return nil
}

// Load reads an index written by Save. Files written by any other
// producer or format version are rejected, never silently accepted.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	magic := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrBadIndexFile)
	}
	if string(magic) != fileMagic {
		return nil, fmt.Errorf("%s has wrong magic: %w", path, ErrBadIndexFile)
	}

	var version uint8
	if err := binary.Read(f, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrBadIndexFile)
	}
	if version != fileVersion {
		return nil, fmt.Errorf("%s has version %d, want %d: %w", path, version, fileVersion, ErrBadIndexFile)
	}

	var dim, count uint32
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrBadIndexFile)
	}
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrBadIndexFile)
	}
	if dim == 0 || count == 0 || uint64(dim)*uint64(count) > uint64(math.MaxInt32) {
		return nil, fmt.Errorf("%s has implausible shape %dx%d: %w", path, count, dim, ErrBadIndexFile)
	}

	data := make([]float32, int(dim)*int(count))
	if err := binary.Read(f, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("%s is truncated: %w", path, ErrBadIndexFile)
	}
	// Anything after the vector block means the file was not written by Save.
	var trailing [1]byte
	if _, err := f.Read(trailing[:]); err != io.EOF {
		return nil, fmt.Errorf("%s has trailing data: %w", path, ErrBadIndexFile)
	}

	return &Index{dim: int(dim), data: data}, nil
}
