// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/pdiddy/dgidb-annotations/internal/remap"
	"github.com/pdiddy/dgidb-annotations/internal/table"
	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

// File names expected in the data directory.
const (
	InteractionsFile = "interactions.tsv"
	RemapFile        = "predicate-remap.yaml"
)

// Source is an opened data directory: the remap table and a reader
// positioned after the interactions header.
type Source struct {
	Remap  *remap.Table
	Reader *table.Reader
}

// Open loads the remap table from dataDir and opens the interactions table,
// preferring interactions.tsv and falling back to interactions.tsv.gz.
func Open(dataDir string) (*Source, error) {
	rt, err := remap.Load(filepath.Join(dataDir, RemapFile))
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dataDir, InteractionsFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, gzErr := os.Stat(path + ".gz"); gzErr == nil {
			path += ".gz"
		}
	}
	r, err := table.Open(path)
	if err != nil {
		return nil, err
	}
	return &Source{Remap: rt, Reader: r}, nil
}

// Close closes the interactions table.
func (s *Source) Close() error { return s.Reader.Close() }

// LoadAnnotations opens dataDir and yields its documents. Files are opened
// when iteration starts and closed when it ends; each iteration re-reads
// the directory from the first row.
func LoadAnnotations(ctx context.Context, dataDir string, genes GeneResolver, drugs DrugResolver, cfg types.NormalizerConfig, opts ...Option) iter.Seq2[types.Document, error] {
	return func(yield func(types.Document, error) bool) {
		src, err := Open(dataDir)
		if err != nil {
			yield(types.Document{}, fmt.Errorf("opening data directory: %w", err))
			return
		}
		defer src.Close()

		n := New(src.Remap, genes, drugs, cfg, opts...)
		for doc, err := range n.Documents(ctx, src.Reader) {
			if !yield(doc, err) {
				return
			}
		}
	}
}
