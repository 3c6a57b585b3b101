package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of dgidb-annotations",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dgidb-annotations %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
