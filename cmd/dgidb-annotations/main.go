// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the dgidb-annotations CLI.
package main

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// log is configured from --log-level before any command runs.
var log = logrus.New()

// rootCmd is the base command. Run without a subcommand it behaves like
// "normalize" with its defaults.
var rootCmd = &cobra.Command{
	Use:   "dgidb-annotations",
	Short: "Normalize DGIdb gene-drug interactions into knowledge-graph annotations",
	Long: `dgidb-annotations reads a DGIdb interactions.tsv table and a
predicate-remap.yaml table from a data directory and emits one
subject/object/association document per interaction.

Gene symbols without an Entrez ID and drug names without a ChEMBL ID are
resolved through MyGene.info and MyChem.info; unresolved names fall back to
name-based identifiers.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlag("log_level", cmd.Root().PersistentFlags().Lookup("log-level")); err != nil {
			return err
		}
		level, err := logrus.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
	RunE: runNormalize,
}

func init() {
	cobra.OnInitialize(initConfig)

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./dgidb-annotations.yaml or ~/.config/dgidb-annotations/dgidb-annotations.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	addNormalizeFlags(rootCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("dgidb-annotations")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "dgidb-annotations"))
		}
	}

	viper.SetEnvPrefix("DGIDB_ANNOTATIONS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
