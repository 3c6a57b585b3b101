// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/dgidb-annotations/internal/lookup"
	"github.com/pdiddy/dgidb-annotations/internal/metrics"
	"github.com/pdiddy/dgidb-annotations/internal/normalize"
	"github.com/pdiddy/dgidb-annotations/internal/store"
	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

const (
	defaultDataDir   = "data/"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "dgidb-annotations/0.1"
)

// normalizeFlags maps config keys to flag names.
var normalizeFlags = map[string]string{
	"data_dir":     "data-dir",
	"schema":       "schema",
	"timeout":      "timeout",
	"user_agent":   "user-agent",
	"output":       "output",
	"sqlite":       "sqlite",
	"metrics_file": "metrics-file",
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Convert interactions.tsv into annotation documents",
	Long: `Normalize reads interactions.tsv (or interactions.tsv.gz) and
predicate-remap.yaml from the data directory and prints each annotation
document as indented JSON. Rows without a usable gene or drug identity are
skipped. An interaction type missing from the remap table aborts the run.

Documents can additionally be upserted into a SQLite database keyed by
document ID, and run counters written as a Prometheus text file.`,
	RunE: runNormalize,
}

func init() {
	addNormalizeFlags(normalizeCmd)
	rootCmd.AddCommand(normalizeCmd)
}

func addNormalizeFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", defaultDataDir, "directory containing interactions.tsv and predicate-remap.yaml")
	cmd.Flags().String("schema", string(types.DefaultSchema), "output schema: v1 (raw identifiers) or v2 (prefixed identifiers)")
	cmd.Flags().Duration("timeout", defaultTimeout, "HTTP timeout for identifier lookups")
	cmd.Flags().String("user-agent", defaultUserAgent, "User-Agent header for identifier lookups")
	cmd.Flags().StringP("output", "o", "-", "output file for JSON documents (- for stdout)")
	cmd.Flags().String("sqlite", "", "also upsert documents into this SQLite database")
	cmd.Flags().String("metrics-file", "", "write run counters to this file in Prometheus text format")
}

// normalizeConfig resolves settings from flags, config file and environment.
func normalizeConfig(cmd *cobra.Command) (types.NormalizerConfig, error) {
	for key, flag := range normalizeFlags {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return types.NormalizerConfig{}, err
		}
	}

	schema, err := types.ParseSchema(viper.GetString("schema"))
	if err != nil {
		return types.NormalizerConfig{}, err
	}
	return types.NormalizerConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		Schema:  schema,
		DataDir: viper.GetString("data_dir"),
	}, nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := normalizeConfig(cmd)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(viper.GetString("output"), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()

	var db *store.Store
	if path := viper.GetString("sqlite"); path != "" {
		db, err = store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	src, err := normalize.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer src.Close()

	client := &http.Client{Timeout: cfg.Timeout}
	n := normalize.New(src.Remap,
		lookup.NewMyGene(client, cfg.HTTPConfig),
		lookup.NewMyChem(client, cfg.HTTPConfig),
		cfg,
		normalize.WithLogger(log),
		normalize.WithMetrics(m),
	)

	log.WithField("data_dir", cfg.DataDir).
		WithField("schema", cfg.Schema).
		WithField("predicates", src.Remap.Len()).
		Info("normalizing interactions")

	ctx := context.Background()
	for doc, err := range n.Documents(ctx, src.Reader) {
		if err != nil {
			return err
		}
		if err := writeDocument(out, doc); err != nil {
			return err
		}
		if db != nil {
			if err := db.Upsert(ctx, doc); err != nil {
				return err
			}
		}
	}

	stats := n.Stats()
	log.WithField("rows", stats.Rows).
		WithField("emitted", stats.Emitted).
		WithField("skipped", stats.Skipped).
		WithField("gene_fallbacks", stats.GeneFallbacks).
		WithField("drug_fallbacks", stats.DrugFallbacks).
		Info("normalization complete")

	if path := viper.GetString("metrics_file"); path != "" {
		if err := metrics.WriteFile(path, reg); err != nil {
			return err
		}
	}
	return nil
}

// writeDocument prints doc as two-space indented JSON followed by a newline.
func writeDocument(w io.Writer, doc types.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", doc.ID, err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing document %s: %w", doc.ID, err)
	}
	return nil
}

// openOutput returns stdout for "" or "-", otherwise a created file.
func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
