// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns rows of the DGIdb interactions table into
// subject/object/association annotation documents.
package normalize

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"

	"github.com/pdiddy/dgidb-annotations/internal/metrics"
	"github.com/pdiddy/dgidb-annotations/internal/remap"
	"github.com/pdiddy/dgidb-annotations/internal/table"
	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

// Identifier prefixes used by SchemaV2.
const (
	prefixGene   = "NCBIGene:"
	prefixChembl = "CHEMBL.COMPOUND:"
	prefixName   = "name:"
	rawChembl    = "chembl:"
)

// idDigestSize is the BLAKE2b digest length in bytes; hex encoding doubles it.
const idDigestSize = 8

// GeneResolver looks up the Entrez ID for a gene symbol.
type GeneResolver interface {
	EntrezID(ctx context.Context, symbol string) (string, error)
}

// DrugResolver looks up the ChEMBL ID for a drug preferred name.
type DrugResolver interface {
	ChemblID(ctx context.Context, name string) (string, error)
}

// Stats counts the outcome of a run.
type Stats struct {
	Rows          int
	Emitted       int
	Skipped       int
	GeneFallbacks int
	DrugFallbacks int
}

// Normalizer maps interaction rows to documents. It is not safe for
// concurrent use; rows are processed one at a time.
type Normalizer struct {
	remap   *remap.Table
	genes   GeneResolver
	drugs   DrugResolver
	schema  types.Schema
	log     logrus.FieldLogger
	metrics *metrics.Metrics
	stats   Stats
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithLogger sets the logger. The default discards output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(n *Normalizer) { n.log = l }
}

// WithMetrics records run counters in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(n *Normalizer) { n.metrics = m }
}

// New returns a Normalizer using rt for predicate remapping and the given
// resolvers for identifiers missing from the input.
func New(rt *remap.Table, genes GeneResolver, drugs DrugResolver, cfg types.NormalizerConfig, opts ...Option) *Normalizer {
	schema := cfg.Schema
	if schema == "" {
		schema = types.DefaultSchema
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	n := &Normalizer{
		remap:   rt,
		genes:   genes,
		drugs:   drugs,
		schema:  schema,
		log:     discard,
		metrics: metrics.New(nil),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Stats returns the counters accumulated so far.
func (n *Normalizer) Stats() Stats { return n.stats }

// ResolvePredicate maps an interaction type to its edge label.
func (n *Normalizer) ResolvePredicate(relation string) (string, error) {
	return n.remap.Predicate(relation)
}

// ResolveGene returns the Entrez ID and subject identifier for a row. When
// entrezID is empty the gene symbol is looked up; a failed lookup falls back
// to the symbol itself. ok is false when both inputs are empty.
func (n *Normalizer) ResolveGene(ctx context.Context, entrezID, geneName string) (string, string, bool) {
	if entrezID != "" {
		return entrezID, n.prefix(prefixGene, entrezID), true
	}
	if geneName == "" {
		return "", "", false
	}

	id, err := n.genes.EntrezID(ctx, geneName)
	if err != nil {
		n.stats.GeneFallbacks++
		n.metrics.Lookups.WithLabelValues(metrics.ServiceGene, metrics.OutcomeFallback).Inc()
		n.log.WithError(err).WithField("gene_name", geneName).Debug("gene lookup failed, using name")
		return "", n.prefix(prefixName, geneName), true
	}
	n.metrics.Lookups.WithLabelValues(metrics.ServiceGene, metrics.OutcomeHit).Inc()
	return id, n.prefix(prefixGene, id), true
}

// ResolveDrug returns the drug identifier and object identifier for a row,
// mirroring ResolveGene. Under SchemaV2 an id of the form "chembl:X" is
// rewritten to "CHEMBL.COMPOUND:X" without a lookup.
func (n *Normalizer) ResolveDrug(ctx context.Context, drugID, drugName string) (string, string, bool) {
	if drugID != "" {
		if n.schema.Prefixed() && strings.HasPrefix(drugID, rawChembl) {
			parts := strings.Split(drugID, ":")
			curie := prefixChembl + parts[len(parts)-1]
			return curie, curie, true
		}
		return drugID, drugID, true
	}
	if drugName == "" {
		return "", "", false
	}

	id, err := n.drugs.ChemblID(ctx, drugName)
	if err != nil {
		n.stats.DrugFallbacks++
		n.metrics.Lookups.WithLabelValues(metrics.ServiceDrug, metrics.OutcomeFallback).Inc()
		n.log.WithError(err).WithField("drug_name", drugName).Debug("drug lookup failed, using name")
		return "", n.prefix(prefixName, drugName), true
	}
	n.metrics.Lookups.WithLabelValues(metrics.ServiceDrug, metrics.OutcomeHit).Inc()
	return id, n.prefix(prefixChembl, id), true
}

func (n *Normalizer) prefix(p, id string) string {
	if n.schema.Prefixed() {
		return p + id
	}
	return id
}

// BuildAssociation derives the association block of a row.
func (n *Normalizer) BuildAssociation(row Row) (types.Association, error) {
	relations := strings.Split(strings.ReplaceAll(row.InteractionTypes, " ", "_"), ",")

	labels := make([]string, 0, len(relations))
	allEmpty := true
	for _, rel := range relations {
		label, err := n.ResolvePredicate(rel)
		if err != nil {
			return types.Association{}, err
		}
		if label != "" {
			allEmpty = false
		}
		labels = append(labels, label)
	}
	if allEmpty && n.schema == types.SchemaV2 {
		labels = []string{types.DefaultEdgeLabel}
	}

	assoc := types.Association{
		EdgeLabel:    labels,
		RelationName: relations,
		Pubmed:       strings.Split(row.PMIDs, ","),
		ProvidedBy:   row.InteractionClaimSource,
	}
	if n.schema == types.SchemaV2 {
		assoc.InteractionGroupScore = row.InteractionGroupScore
	}
	return assoc, nil
}

// ComputeID returns the hex BLAKE2b-64 digest of fields joined by "-".
func ComputeID(fields []string) string {
	h, _ := blake2b.New(idDigestSize, nil)
	h.Write([]byte(strings.Join(fields, "-")))
	return hex.EncodeToString(h.Sum(nil))
}

// Normalize builds the document for one row. ok is false when the row has
// no usable subject or object identity; such rows are skipped, not errors.
// The only error is an interaction type missing from the remap table.
func (n *Normalizer) Normalize(ctx context.Context, row Row) (types.Document, bool, error) {
	entrezID, subjectID, ok := n.ResolveGene(ctx, row.EntrezID, row.GeneName)
	if !ok {
		return types.Document{}, false, nil
	}
	drugID, objectID, ok := n.ResolveDrug(ctx, row.DrugID, row.DrugName)
	if !ok {
		return types.Document{}, false, nil
	}

	assoc, err := n.BuildAssociation(row)
	if err != nil {
		return types.Document{}, false, err
	}

	return types.Document{
		ID: ComputeID(row.Fields),
		Subject: types.Subject{
			NCBIGene: entrezID,
			Symbol:   row.GeneName,
			ID:       subjectID,
		},
		Object: types.Object{
			Name:           row.DrugName,
			ChemblCompound: drugID,
			ID:             objectID,
		},
		Association: assoc,
	}, true, nil
}

// Documents returns a single-pass sequence of documents read from r. The
// sequence stops after yielding the first error, which is either a read
// failure, a cancelled context or a missing remap key.
func (n *Normalizer) Documents(ctx context.Context, r *table.Reader) iter.Seq2[types.Document, error] {
	return func(yield func(types.Document, error) bool) {
		cols, err := NewColumns(r.Header(), n.schema)
		if err != nil {
			yield(types.Document{}, err)
			return
		}

		for {
			if err := ctx.Err(); err != nil {
				yield(types.Document{}, err)
				return
			}

			fields, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(types.Document{}, fmt.Errorf("reading row: %w", err))
				return
			}

			n.stats.Rows++
			n.metrics.Rows.Inc()

			doc, ok, err := n.Normalize(ctx, cols.Row(fields))
			if err != nil {
				yield(types.Document{}, fmt.Errorf("line %d: %w", r.Line(), err))
				return
			}
			if !ok {
				n.stats.Skipped++
				n.metrics.Skipped.Inc()
				continue
			}

			n.stats.Emitted++
			n.metrics.Documents.Inc()
			if !yield(doc, nil) {
				return
			}
		}
	}
}
