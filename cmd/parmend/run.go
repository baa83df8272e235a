package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"parmend/pkg/parmend/engine/par2cmd"
	"parmend/pkg/parmend/progress"
	"parmend/pkg/parmend/repair"
)

// newInvoker builds an invoker backed by the configured external engine.
func newInvoker() *repair.Invoker {
	binary := viper.GetString("engine.binary")
	if binary == "" {
		binary = par2cmd.DefaultBinary
	}
	return repair.NewInvoker(par2cmd.New(binary))
}

// runSet verifies or repairs a single recovery set and renders the result.
func runSet(ctx context.Context, recoveryFile string, doRepair, purge bool) error {
	inv := newInvoker()

	var fn progress.Func
	var r *renderer
	if !getQuiet() {
		r = newRenderer(os.Stdout)
		fn = r.handle
	}

	sum := inv.InvokeDetailed(ctx, repair.Request{
		RecoveryFile: recoveryFile,
		Repair:       doRepair,
		Purge:        purge,
	}, fn)

	if r != nil {
		r.done()
	}

	if !getQuiet() {
		fmt.Println(formatSummary(sum, doRepair))
		if getVerbose() {
			fmt.Println(formatBudget(sum))
		}
	}

	if !sum.Outcome.Ok(doRepair) {
		return fmt.Errorf("%s: %s", recoveryFile, sum.Outcome)
	}
	return nil
}
