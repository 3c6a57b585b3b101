// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	doc := types.Document{
		ID:      "f5ed887dc9861856",
		Subject: types.Subject{Symbol: "CDK2", ID: "name:CDK2"},
		Object:  types.Object{Name: "IMATINIB", ID: "name:IMATINIB"},
	}
	require.NoError(t, writeDocument(&buf, doc))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "{\n  \"_id\": \"f5ed887dc9861856\""), out)
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.NotContains(t, out, "association")
}

func TestRunNormalize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "predicate-remap.yaml"),
		[]byte("\"DGIdb:inhibitor\":\n  rename: [decreases_activity_of]\n"), 0o644))
	table := strings.Join([]string{
		"gene_name\tgene_claim_name\tentrez_id\tinteraction_claim_source\tinteraction_types\tdrug_claim_name\tdrug_claim_primary_name\tdrug_name\tdrug_concept_id\tinteraction_group_score\tPMIDs",
		"CDK2\tCDK2\t1017\tDTC\tinhibitor\tx\tx\tIMATINIB\tchembl:CHEMBL941\t0.5\t111,222",
		"\t\t\tDTC\tinhibitor\tx\tx\t\t\t0.5\t",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interactions.tsv"), []byte(table), 0o644))

	dbPath := filepath.Join(dir, "out", "annotations.db")
	metricsPath := filepath.Join(dir, "run.prom")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"normalize",
		"--data-dir", dir,
		"--sqlite", dbPath,
		"--metrics-file", metricsPath,
		"--log-level", "error",
	})
	require.NoError(t, rootCmd.Execute())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "NCBIGene:1017", doc["subject"].(map[string]any)["id"])
	assert.Equal(t, []any{"111", "222"}, doc["association"].(map[string]any)["pubmed"])

	assert.FileExists(t, dbPath)
	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "dgidb_documents_total 1")
	assert.Contains(t, string(prom), "dgidb_rows_skipped_total 1")
}
