// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/dgidb-annotations/internal/lookup"
	"github.com/pdiddy/dgidb-annotations/pkg/types"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Query the identifier lookup services directly",
	Long: `Lookup resolves a single gene symbol or drug name the same way
normalize does for rows missing an identifier. Useful for checking why a row
fell back to a name-based identifier.`,
}

var lookupGeneCmd = &cobra.Command{
	Use:   "gene [symbol]",
	Short: "Resolve a gene symbol to an Entrez ID via MyGene.info",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := lookup.NewMyGene(lookupClient(cmd), lookupHTTPConfig(cmd))
		id, err := g.EntrezID(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var lookupDrugCmd = &cobra.Command{
	Use:   "drug [name]",
	Short: "Resolve a drug preferred name to a ChEMBL ID via MyChem.info",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := lookup.NewMyChem(lookupClient(cmd), lookupHTTPConfig(cmd))
		id, err := c.ChemblID(context.Background(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

func init() {
	lookupCmd.PersistentFlags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	lookupCmd.PersistentFlags().String("user-agent", defaultUserAgent, "User-Agent header")

	lookupCmd.AddCommand(lookupGeneCmd, lookupDrugCmd)
	rootCmd.AddCommand(lookupCmd)
}

func lookupHTTPConfig(cmd *cobra.Command) types.HTTPConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	ua, _ := cmd.Flags().GetString("user-agent")
	return types.HTTPConfig{Timeout: timeout, UserAgent: ua}
}

func lookupClient(cmd *cobra.Command) *http.Client {
	return &http.Client{Timeout: lookupHTTPConfig(cmd).Timeout}
}
