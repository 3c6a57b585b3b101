// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package remap loads the predicate remapping table that translates DGIdb
// interaction types into knowledge-graph edge labels.
package remap

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// KeyPrefix namespaces relation names in the remap table.
const KeyPrefix = "DGIdb"

// Entry is one row of predicate-remap.yaml. Only the rename list is used.
type Entry struct {
	Rename []string `yaml:"rename"`
}

// Table maps "DGIdb:<relation>" keys to their remap entries. It is read-only
// after loading.
type Table struct {
	entries map[string]Entry
}

// MissingKeyError reports a relation with no usable rename in the table.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("predicate remap: no rename for key %q", e.Key)
}

// Load reads and parses a remap YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading remap table: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes remap YAML. Unknown per-entry fields are ignored.
func Parse(data []byte) (*Table, error) {
	entries := map[string]Entry{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Table{entries: entries}, nil
}

// New builds a table from entries, mainly for tests.
func New(entries map[string]Entry) *Table {
	return &Table{entries: entries}
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// Key returns the table key for a relation name.
func Key(relation string) string { return KeyPrefix + ":" + relation }

// Predicate returns the first rename value for relation. An empty relation
// yields "". A relation absent from the table, or present without rename
// values, yields a *MissingKeyError.
func (t *Table) Predicate(relation string) (string, error) {
	if relation == "" {
		return "", nil
	}
	key := Key(relation)
	e, ok := t.entries[key]
	if !ok || len(e.Rename) == 0 {
		return "", &MissingKeyError{Key: key}
	}
	return e.Rename[0], nil
}
