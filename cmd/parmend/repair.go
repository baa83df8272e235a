package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var repairCmd = &cobra.Command{
	Use:   "repair <recovery-file>",
	Short: "Repair damaged or missing data files",
	Long: `Repair verifies the data files referenced by a recovery file and, when
enough recovery blocks are available, reconstructs damaged or missing files
in place. With --purge, backup and damaged remnants left behind by the
engine are removed after a successful repair.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func init() {
	repairCmd.Flags().Bool("purge", false, "remove backup and damaged files after repair")
	_ = viper.BindPFlag("purge", repairCmd.Flags().Lookup("purge"))

	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) error {
	initLogging()
	return runSet(cmd.Context(), args[0], true, viper.GetBool("purge"))
}
