// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// DefaultEdgeLabel is used by SchemaV2 when no interaction type resolves
// to a predicate.
const DefaultEdgeLabel = "physically_interacts_with"

// Document is one normalized gene-drug annotation. Empty fields are dropped
// and single-element lists collapse to scalars when the document is
// serialized (see Cleanup).
type Document struct {
	// ID is the 16-character hex BLAKE2b digest of the source row.
	ID string

	Subject     Subject
	Object      Object
	Association Association
}

// Subject identifies the gene.
type Subject struct {
	NCBIGene string
	Symbol   string
	ID       string
}

// Object identifies the drug.
type Object struct {
	Name           string
	ChemblCompound string
	ID             string
}

// Association describes the gene-drug interaction and its provenance.
type Association struct {
	EdgeLabel    []string
	RelationName []string
	Pubmed       []string
	ProvidedBy   string

	// InteractionGroupScore is only populated under SchemaV2.
	InteractionGroupScore string
}

// Fields returns the document as a nested map keyed by the output field
// names, before cleanup.
func (d Document) Fields() map[string]any {
	assoc := map[string]any{
		"edge_label":    stringsToAny(d.Association.EdgeLabel),
		"relation_name": stringsToAny(d.Association.RelationName),
		"pubmed":        stringsToAny(d.Association.Pubmed),
		"provided_by":   d.Association.ProvidedBy,
	}
	if d.Association.InteractionGroupScore != "" {
		assoc["interaction_group_score"] = d.Association.InteractionGroupScore
	}
	return map[string]any{
		"_id": d.ID,
		"subject": map[string]any{
			"NCBIGene": d.Subject.NCBIGene,
			"SYMBOL":   d.Subject.Symbol,
			"id":       d.Subject.ID,
		},
		"object": map[string]any{
			"name":            d.Object.Name,
			"CHEMBL_COMPOUND": d.Object.ChemblCompound,
			"id":              d.Object.ID,
		},
		"association": assoc,
	}
}

// Record returns the cleaned output form of the document.
func (d Document) Record() map[string]any {
	return Cleanup(d.Fields())
}

// MarshalJSON encodes the cleaned output form.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Record())
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
