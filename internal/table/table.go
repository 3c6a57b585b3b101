// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table reads tab-separated files with a header row. Files ending in
// .gz are decompressed transparently.
package table

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// maxLineSize bounds a single row. DGIdb rows with long PMID lists exceed
// bufio's 64 KiB default.
const maxLineSize = 4 * 1024 * 1024

// Reader yields the rows of a tab-separated file one at a time.
type Reader struct {
	closers []io.Closer
	scanner *bufio.Scanner
	header  []string
	line    int
}

// Open opens path and reads its header row. An empty file is an error.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}

	var src io.Reader = f
	closers := []io.Closer{f}
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream %s: %w", path, err)
		}
		src = gz
		closers = append([]io.Closer{gz}, closers...)
	}

	r, err := NewReader(src)
	if err != nil {
		for _, c := range closers {
			c.Close()
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r.closers = closers
	return r, nil
}

// NewReader reads the header row from src. The caller owns src.
func NewReader(src io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	r := &Reader{scanner: sc}
	header, err := r.Next()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, err
	}
	r.header = header
	return r, nil
}

// Header returns the column names.
func (r *Reader) Header() []string { return r.header }

// Line returns the 1-based line number of the last row returned by Next.
func (r *Reader) Line() int { return r.line }

// Index returns the position of the named column.
func (r *Reader) Index(name string) (int, error) {
	for i, h := range r.header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in header", name)
}

// Next returns the fields of the next non-blank row, or io.EOF when the
// file is exhausted. Fields are split on tabs with no quote handling.
func (r *Reader) Next() ([]string, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimRight(r.scanner.Text(), "\r\n")
		if text == "" {
			continue
		}
		return strings.Split(text, "\t"), nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return nil, io.EOF
}

// Close releases the underlying file, if Open created one.
func (r *Reader) Close() error {
	var first error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.closers = nil
	return first
}
