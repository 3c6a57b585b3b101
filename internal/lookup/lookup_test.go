// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dgidb-annotations/internal/httputil"
	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

// serve starts an httptest server and points base at it for the test.
func serve(t *testing.T, base *string, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	old := *base
	*base = ts.URL
	t.Cleanup(func() {
		*base = old
		ts.Close()
	})
	return ts
}

func TestMyGene_EntrezID(t *testing.T) {
	var gotQuery, gotFields, gotSpecies, gotPath string
	ts := serve(t, &myGeneBase, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotFields = r.URL.Query().Get("fields")
		gotSpecies = r.URL.Query().Get("species")
		w.Write([]byte(`{"total":1,"hits":[{"_id":"1017","_score":88.1,"entrezgene":1017}]}`))
	})

	g := NewMyGene(ts.Client(), types.HTTPConfig{UserAgent: "test"})
	id, err := g.EntrezID(context.Background(), "CDK2")
	require.NoError(t, err)

	assert.Equal(t, "1017", id)
	assert.Equal(t, "/v3/query", gotPath)
	assert.Equal(t, "symbol:CDK2", gotQuery)
	assert.Equal(t, "entrezgene", gotFields)
	assert.Equal(t, "human", gotSpecies)
}

func TestMyGene_StringID(t *testing.T) {
	ts := serve(t, &myGeneBase, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"hits":[{"entrezgene":"5243"}]}`))
	})
	id, err := (&MyGene{Client: ts.Client()}).EntrezID(context.Background(), "ABCB1")
	require.NoError(t, err)
	assert.Equal(t, "5243", id)
}

func TestMyGene_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{"404", http.StatusNotFound, ``, func(t *testing.T, err error) {
			var se *httputil.StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, http.StatusNotFound, se.StatusCode)
		}},
		{"no hits", http.StatusOK, `{"total":0,"hits":[]}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
		}},
		{"hit without entrezgene", http.StatusOK, `{"hits":[{"_id":"ENSG1"}]}`, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, ErrNotFound)
		}},
		{"invalid json", http.StatusOK, `<html>`, func(t *testing.T, err error) {
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrNotFound)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := serve(t, &myGeneBase, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := (&MyGene{Client: ts.Client()}).EntrezID(context.Background(), "NOPE")
			tt.checkFn(t, err)
		})
	}
}

func TestMyChem_ChemblID(t *testing.T) {
	var gotQuery, gotFields, gotPath string
	ts := serve(t, &myChemBase, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotFields = r.URL.Query().Get("fields")
		w.Write([]byte(`{"hits":[{"_id":"x","chembl":{"molecule_chembl_id":"CHEMBL941"}}]}`))
	})

	c := NewMyChem(ts.Client(), types.HTTPConfig{})
	id, err := c.ChemblID(context.Background(), "IMATINIB")
	require.NoError(t, err)

	assert.Equal(t, "CHEMBL941", id)
	assert.Equal(t, "/v1/query", gotPath)
	assert.Equal(t, "chembl.pref_name:IMATINIB", gotQuery)
	assert.Equal(t, "chembl.molecule_chembl_id", gotFields)
}

func TestMyChem_ListValuedChembl(t *testing.T) {
	ts := serve(t, &myChemBase, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"hits":[{"chembl":[{"molecule_chembl_id":"CHEMBL25"},{"molecule_chembl_id":"CHEMBL2"}]}]}`))
	})
	id, err := (&MyChem{Client: ts.Client()}).ChemblID(context.Background(), "ASPIRIN")
	require.NoError(t, err)
	assert.Equal(t, "CHEMBL25", id)
}

func TestMyChem_NotFound(t *testing.T) {
	ts := serve(t, &myChemBase, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"hits":[{"_id":"x"}]}`))
	})
	_, err := (&MyChem{Client: ts.Client()}).ChemblID(context.Background(), "UNOBTAINIUM")
	assert.ErrorIs(t, err, ErrNotFound)
}
