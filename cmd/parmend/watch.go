package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"parmend/pkg/parmend/repair"
	"parmend/pkg/parmend/scanner"
	"parmend/pkg/parmend/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and repair recovery sets as they arrive",
	Long: `Watch monitors a directory tree for PAR2 recovery files. When a set has
been quiet for the debounce interval it is verified, and repaired when
configured to do so. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int("debounce", 0, "seconds a set must be quiet before it is processed")
	watchCmd.Flags().Bool("verify-only", false, "verify sets without repairing them")
	_ = viper.BindPFlag("watch.debounce_seconds", watchCmd.Flags().Lookup("debounce"))

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	initLogging()

	debounce := viper.GetInt("watch.debounce_seconds")
	if debounce <= 0 {
		debounce = 1
	}
	doRepair := viper.GetBool("watch.repair")
	if v, _ := cmd.Flags().GetBool("verify-only"); v {
		doRepair = false
	}

	// The signal context governs both the event loop and any engine run
	// in flight: an interrupt must also cancel the running repair.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(time.Duration(debounce)*time.Second, watchHandler(ctx, newInvoker(), doRepair))
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Watch(args[0]); err != nil {
		return fmt.Errorf("watch %s: %w", args[0], err)
	}

	printInfo("watching %s (debounce %ds)", args[0], debounce)
	return w.Run(ctx)
}

// watchHandler builds the callback invoked for each quiesced recovery set.
func watchHandler(ctx context.Context, inv *repair.Invoker, doRepair bool) watch.Handler {
	return func(jobID string, set scanner.Set) {
		printInfo("[%s] processing %s", jobID, set.Index())
		sum := inv.InvokeDetailed(ctx, repair.Request{
			RecoveryFile: set.Index(),
			Repair:       doRepair,
			Purge:        viper.GetBool("purge") && doRepair,
		}, nil)
		printInfo("[%s] %s", jobID, formatSummary(sum, doRepair))
	}
}
