// Package par2cmd adapts a par2cmdline-compatible binary to the repair
// engine contract. The process's exit codes are the engine-native outcome
// codes, and its stdout carries the progress announcements the extractor
// scrapes. parmend owns none of the redundancy math; the binary is the
// opaque engine.
package par2cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"parmend/pkg/parmend/logging"
	"parmend/pkg/parmend/repair"
)

// DefaultBinary is the engine binary looked up on PATH when none is
// configured.
const DefaultBinary = "par2"

// Engine runs a par2cmdline-compatible binary as the repair engine.
type Engine struct {
	binary string
	log    *logging.Logger
}

// New returns an engine using the given binary; empty uses DefaultBinary.
func New(binary string) *Engine {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Engine{
		binary: binary,
		log:    logging.Get("engine"),
	}
}

// Repair runs the binary once, synchronously. Cancelling ctx kills the
// process, which surfaces as a logic-error code.
func (e *Engine) Repair(ctx context.Context, job *repair.Job) repair.Code {
	cmd := exec.CommandContext(ctx, e.binary, e.args(job)...)
	cmd.Stdout = job.Stdout
	cmd.Stderr = job.Stderr

	err := cmd.Run()
	code := codeFromRunError(err)
	if err != nil && code == repair.CodeLogicError {
		e.log.Error("engine process failed", "binary", e.binary, "error", err)
	}
	return code
}

// args builds the command line for one job.
func (e *Engine) args(job *repair.Job) []string {
	op := "verify"
	if job.Repair {
		op = "repair"
	}

	args := []string{op}

	if job.Quiet {
		// Two -q flags suppress all output, one only trims it.
		args = append(args, "-q", "-q")
	}
	args = append(args,
		fmt.Sprintf("-m%d", job.MemoryLimit/(1024*1024)),
		fmt.Sprintf("-t%d", job.Threads),
		fmt.Sprintf("-T%d", job.FileThreads),
	)
	if job.Purge {
		args = append(args, "-p")
	}
	if job.SkipData {
		args = append(args, "-N")
		if job.SkipLeeway > 0 {
			args = append(args, fmt.Sprintf("-S%d", job.SkipLeeway))
		}
	}
	if job.BasePath != "" {
		args = append(args, "-B"+job.BasePath)
	}

	args = append(args, "--", job.RecoveryFile)
	args = append(args, job.ExtraFiles...)

	return args
}

// codeFromRunError translates a process result into an engine code. Exit
// statuses are passed through verbatim; launch failures and kills have no
// engine code and report as a logic error.
func codeFromRunError(err error) repair.Code {
	if err == nil {
		return repair.CodeSuccess
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return repair.Code(exitErr.ExitCode())
	}

	return repair.CodeLogicError
}
