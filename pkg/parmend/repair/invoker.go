// Package repair orchestrates single-shot invocations of an opaque
// erasure-coding repair engine: it calibrates a resource budget, gathers
// candidate files, runs the engine once, and translates its native outcome
// code into a closed taxonomy. Each invocation is stateless; nothing is
// carried across calls.
package repair

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"parmend/pkg/parmend/logging"
	"parmend/pkg/parmend/progress"
	"parmend/pkg/parmend/scanner"
	"parmend/pkg/parmend/tuner"
)

// fileThreads bounds the engine's file-level parallelism. It is chosen
// independently of the worker-thread budget: file parallelism is kept low
// to avoid filesystem contention regardless of the CPU-bound thread count.
const fileThreads = 2

// Request describes one repair invocation. Immutable once constructed.
type Request struct {
	// RecoveryFile is the path of the recovery file to load.
	RecoveryFile string

	// Repair performs a repair; false verifies only.
	Repair bool

	// Purge deletes the recovery-file family after a successful repair.
	// Ignored unless Repair is set.
	Purge bool
}

// Invoker runs repair requests against an engine.
type Invoker struct {
	engine Engine
	log    *logging.Logger
}

// NewInvoker returns an invoker backed by the given engine.
func NewInvoker(engine Engine) *Invoker {
	return &Invoker{
		engine: engine,
		log:    logging.Get("repair"),
	}
}

// Invoke runs the engine exactly once for req and returns the budget it
// ran under and its outcome. The call blocks until the engine completes.
//
// When fn is non-nil, the engine's textual output is routed through a
// progress extractor and fn receives normalized events from whatever
// thread the engine writes on, strictly before Invoke returns. When fn is
// nil the output is discarded and the engine runs at minimal verbosity.
// Engine error output is always discarded.
func (inv *Invoker) Invoke(ctx context.Context, req Request, fn progress.Func) (tuner.Budget, Outcome) {
	return inv.invoke(ctx, req, fn, nil)
}

// Verify is the simplified surface: verification only, no progress sink,
// no purging.
func (inv *Invoker) Verify(ctx context.Context, recoveryFile string) Outcome {
	_, outcome := inv.Invoke(ctx, Request{RecoveryFile: recoveryFile}, nil)
	return outcome
}

func (inv *Invoker) invoke(ctx context.Context, req Request, fn progress.Func, tally *progress.Tally) (tuner.Budget, Outcome) {
	if req.RecoveryFile == "" {
		return tuner.Budget{}, OutcomeInvalidArguments
	}

	// The containing directory, or the current directory when the path
	// has no separator.
	basePath := filepath.Dir(req.RecoveryFile)

	resources, err := tuner.Detect()
	if err != nil {
		// Calibrate falls back to its baseline for zero readings.
		inv.log.Warn("resource detection failed", "error", err)
	}
	budget := tuner.Calibrate(resources)

	extraFiles := scanner.Candidates(basePath)

	job := &Job{
		RecoveryFile: req.RecoveryFile,
		BasePath:     basePath,
		ExtraFiles:   extraFiles,
		MemoryLimit:  budget.MemoryLimit,
		Threads:      budget.Threads,
		FileThreads:  fileThreads,
		Repair:       req.Repair,
		Purge:        req.Purge && req.Repair,
		Quiet:        true,
		Stdout:       io.Discard,
		Stderr:       io.Discard,
	}

	if fn != nil {
		extractor := progress.NewExtractor(fn)
		if tally != nil {
			extractor.Observe(tally)
		}
		job.Stdout = extractor
		// Progress lines only appear at normal verbosity.
		job.Quiet = false
	}

	inv.log.Debug("invoking engine",
		"recovery", req.RecoveryFile,
		"repair", req.Repair,
		"purge", job.Purge,
		"candidates", len(extraFiles),
		"memory_limit", budget.MemoryLimit,
		"threads", budget.Threads)

	code := inv.engine.Repair(ctx, job)
	outcome := OutcomeFromCode(code)

	inv.log.Info("engine finished",
		"recovery", req.RecoveryFile,
		"code", int(code),
		"outcome", outcome.String())

	return budget, outcome
}

// Summary is the detailed result of an invocation, including diagnostic
// counts scraped from the engine's output.
type Summary struct {
	Budget  tuner.Budget
	Outcome Outcome

	// Damaged, Missing and Matched are counts of verification
	// diagnostics; Matched counts misnamed files identified by content.
	Damaged int64
	Missing int64
	Matched int64

	// Renamed is the number of files whose on-disk name changed during a
	// repairing run.
	Renamed int
}

// InvokeDetailed is Invoke plus diagnostics: it tallies the engine's
// verification messages and, for repairing runs, snapshots the directory
// before and after to count renamed files.
func (inv *Invoker) InvokeDetailed(ctx context.Context, req Request, fn progress.Func) Summary {
	if fn == nil {
		fn = func(progress.Event) {}
	}

	var before map[string]bool
	if req.Repair && req.RecoveryFile != "" {
		before = snapshotNames(filepath.Dir(req.RecoveryFile))
	}

	var tally progress.Tally
	budget, outcome := inv.invoke(ctx, req, fn, &tally)

	summary := Summary{
		Budget:  budget,
		Outcome: outcome,
		Damaged: tally.Damaged.Load(),
		Missing: tally.Missing.Load(),
		Matched: tally.Matched.Load(),
	}

	if before != nil {
		after := snapshotNames(filepath.Dir(req.RecoveryFile))
		summary.Renamed = symmetricDiff(before, after) / 2
	}

	return summary
}

// snapshotNames lists the entry names in dir; nil when unreadable.
func snapshotNames(dir string) map[string]bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		names[e.Name()] = true
	}
	return names
}

// symmetricDiff counts names present in exactly one of the two sets.
func symmetricDiff(a, b map[string]bool) int {
	n := 0
	for name := range a {
		if !b[name] {
			n++
		}
	}
	for name := range b {
		if !a[name] {
			n++
		}
	}
	return n
}
