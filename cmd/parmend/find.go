package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"parmend/pkg/parmend/scanner"
)

var findCmd = &cobra.Command{
	Use:   "find [directory]",
	Short: "List PAR2 recovery sets under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	initLogging()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	sets, err := scanner.FindSets(root)
	if err != nil {
		return fmt.Errorf("scan %s: %w", root, err)
	}
	if len(sets) == 0 {
		printInfo("no recovery sets found under %s", root)
		return nil
	}

	for _, set := range sets {
		var total int64
		for _, f := range set.Files {
			if info, err := os.Stat(f); err == nil {
				total += info.Size()
			}
		}
		fmt.Printf("%s %s\n", phaseStyle.Render(set.Index()),
			mutedStyle.Render(fmt.Sprintf("(%d recovery files, %s)", len(set.Files), humanize.IBytes(uint64(total)))))
	}
	return nil
}
