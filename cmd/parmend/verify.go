package main

import (
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <recovery-file>",
	Short: "Verify data files against a recovery set",
	Long: `Verify checks the data files referenced by a recovery file without
modifying anything on disk. Sibling files in the same directory are offered
to the engine so misnamed or moved files can be matched by content.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	initLogging()
	return runSet(cmd.Context(), args[0], false, false)
}
