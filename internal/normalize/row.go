// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"

	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

// Column names of the interactions table.
const (
	colGeneName               = "gene_name"
	colEntrezID               = "entrez_id"
	colInteractionClaimSource = "interaction_claim_source"
	colInteractionTypes       = "interaction_types"
	colDrugName               = "drug_name"
	colPMIDs                  = "PMIDs"
	colInteractionGroupScore  = "interaction_group_score"
)

// Row is one interactions table row with the fields the normalizer reads.
// Fields keeps the raw values in file order for ID hashing.
type Row struct {
	Fields []string

	GeneName               string
	EntrezID               string
	InteractionClaimSource string
	InteractionTypes       string
	DrugName               string
	DrugID                 string
	PMIDs                  string
	InteractionGroupScore  string
}

// Columns holds the header positions of the columns a schema needs.
type Columns struct {
	geneName, entrezID, claimSource, interactionTypes int
	drugName, drugID, pmids, groupScore               int
}

type columnRef struct {
	name string
	dst  *int
}

// NewColumns locates the required columns in header. gene_claim_name,
// drug_claim_name and drug_claim_primary_name are not read and may be
// absent.
func NewColumns(header []string, schema types.Schema) (Columns, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	find := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return -1, fmt.Errorf("column %q not found in header", name)
		}
		return i, nil
	}

	c := Columns{groupScore: -1}
	required := []columnRef{
		{colGeneName, &c.geneName},
		{colEntrezID, &c.entrezID},
		{colInteractionClaimSource, &c.claimSource},
		{colInteractionTypes, &c.interactionTypes},
		{colDrugName, &c.drugName},
		{schema.DrugIDColumn(), &c.drugID},
		{colPMIDs, &c.pmids},
	}
	if schema == types.SchemaV2 {
		required = append(required, columnRef{colInteractionGroupScore, &c.groupScore})
	}

	for _, r := range required {
		i, err := find(r.name)
		if err != nil {
			return Columns{}, err
		}
		*r.dst = i
	}
	return c, nil
}

// Row maps raw fields onto a Row. Fields missing from a short row read as
// empty strings.
func (c Columns) Row(fields []string) Row {
	get := func(i int) string {
		if i < 0 || i >= len(fields) {
			return ""
		}
		return fields[i]
	}
	return Row{
		Fields:                 fields,
		GeneName:               get(c.geneName),
		EntrezID:               get(c.entrezID),
		InteractionClaimSource: get(c.claimSource),
		InteractionTypes:       get(c.interactionTypes),
		DrugName:               get(c.drugName),
		DrugID:                 get(c.drugID),
		PMIDs:                  get(c.pmids),
		InteractionGroupScore:  get(c.groupScore),
	}
}
