package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/folio/persist"
)

const version = "0.3.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the folio CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "folio version %s (ledger format v%d)\n", version, persist.CurrentVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
