// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// HTTPConfig holds shared HTTP settings used by the lookup clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with lookup requests
	// (e.g. "dgidb-annotations/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Schema selects the output document layout. The two layouts differ in
// identifier prefixing, the drug identifier column, the default edge label
// and the interaction_group_score field.
type Schema string

const (
	// SchemaV1 emits raw identifiers and reads the drug_chembl_id column.
	SchemaV1 Schema = "v1"

	// SchemaV2 emits prefixed CURIE identifiers (NCBIGene:, CHEMBL.COMPOUND:,
	// name:), reads the drug_concept_id column, rewrites chembl: ids, falls
	// back to a default edge label and passes interaction_group_score through.
	SchemaV2 Schema = "v2"
)

// DefaultSchema is used when no schema is configured.
const DefaultSchema = SchemaV2

// ParseSchema validates a schema name. An empty name yields DefaultSchema.
func ParseSchema(name string) (Schema, error) {
	switch Schema(name) {
	case "":
		return DefaultSchema, nil
	case SchemaV1, SchemaV2:
		return Schema(name), nil
	default:
		return "", fmt.Errorf("unknown schema %q (want %s or %s)", name, SchemaV1, SchemaV2)
	}
}

// DrugIDColumn returns the name of the drug identifier column for the schema.
func (s Schema) DrugIDColumn() string {
	if s == SchemaV1 {
		return "drug_chembl_id"
	}
	return "drug_concept_id"
}

// Prefixed reports whether identifiers carry CURIE prefixes.
func (s Schema) Prefixed() bool { return s != SchemaV1 }

// NormalizerConfig holds settings for the record normalizer.
type NormalizerConfig struct {
	HTTPConfig `yaml:",inline"`

	// Schema selects the output layout (default v2).
	Schema Schema `json:"schema" yaml:"schema"`

	// DataDir contains interactions.tsv and predicate-remap.yaml (default "data/").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
