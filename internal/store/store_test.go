// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "annotations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleDoc(edge string) types.Document {
	return types.Document{
		ID:      "5ef7be4aa5db51ee",
		Subject: types.Subject{NCBIGene: "1017", Symbol: "CDK2", ID: "NCBIGene:1017"},
		Object:  types.Object{Name: "IMATINIB", ChemblCompound: "CHEMBL941", ID: "CHEMBL.COMPOUND:CHEMBL941"},
		Association: types.Association{
			EdgeLabel:    []string{edge},
			RelationName: []string{"inhibitor"},
			ProvidedBy:   "DTC",
		},
	}
}

func TestUpsertAndGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, sampleDoc("decreases_activity_of")))

	rec, err := s.Get(ctx, "5ef7be4aa5db51ee")
	require.NoError(t, err)
	assert.Equal(t, "5ef7be4aa5db51ee", rec["_id"])
	assoc := rec["association"].(map[string]any)
	assert.Equal(t, "decreases_activity_of", assoc["edge_label"])
}

func TestUpsert_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, sampleDoc("decreases_activity_of")))
	require.NoError(t, s.Upsert(ctx, sampleDoc("decreases_activity_of")))
	require.NoError(t, s.Upsert(ctx, sampleDoc("inhibits")))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := s.Get(ctx, "5ef7be4aa5db51ee")
	require.NoError(t, err)
	assert.Equal(t, "inhibits", rec["association"].(map[string]any)["edge_label"])
}

func TestGet_NotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "0000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Upsert(context.Background(), sampleDoc("x")))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
