// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics counts rows, documents and lookups for a normalization run
// and writes them in the Prometheus text format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup services and outcomes used as label values.
const (
	ServiceGene = "mygene"
	ServiceDrug = "mychem"

	OutcomeHit      = "hit"
	OutcomeFallback = "fallback"
)

// Metrics holds the counters for one run.
type Metrics struct {
	Rows      prometheus.Counter
	Documents prometheus.Counter
	Skipped   prometheus.Counter
	Lookups   *prometheus.CounterVec
}

// New creates the counters and registers them with reg. A nil reg leaves
// them unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Rows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dgidb_rows_total",
			Help: "Data rows read from the interactions table",
		}),
		Documents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dgidb_documents_total",
			Help: "Annotation documents emitted",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dgidb_rows_skipped_total",
			Help: "Rows dropped for lacking a subject or object identity",
		}),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dgidb_lookups_total",
				Help: "External identifier lookups by service and outcome",
			},
			[]string{"service", "outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Rows, m.Documents, m.Skipped, m.Lookups)
	}
	return m
}

// WriteFile writes everything gathered by g to path in the text exposition
// format, replacing the file atomically.
func WriteFile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
