package repair

import (
	"context"
	"io"
)

// Job carries everything the engine needs for one synchronous run. The
// invoker fills it from the request, the calibrated budget, and the
// candidate scan; engines treat it as read-only.
type Job struct {
	// RecoveryFile is the absolute or relative path of the recovery file
	// to load.
	RecoveryFile string

	// BasePath is the directory containing the recovery set.
	BasePath string

	// ExtraFiles are absolute paths of every non-recovery file in the
	// set's directory, offered for content-addressed identity matching.
	ExtraFiles []string

	// MemoryLimit is the engine memory ceiling in bytes.
	MemoryLimit int64

	// Threads is the engine worker-thread count.
	Threads int

	// FileThreads bounds file-level parallelism, independently of
	// Threads, to avoid filesystem contention.
	FileThreads int

	// Repair performs a repair; false verifies only.
	Repair bool

	// Purge deletes the recovery-file family after a successful repair.
	// The deletion is the engine's, not this layer's.
	Purge bool

	// SkipData enables partial-block data skipping. Always false here.
	SkipData bool

	// SkipLeeway is the data-skipping tolerance in bytes. Always zero.
	SkipLeeway int64

	// Quiet runs the engine at minimal verbosity. Must be false when
	// Stdout feeds a progress extractor: at minimal verbosity the engine
	// does not emit the progress lines the extractor depends on.
	Quiet bool

	// Stdout receives the engine's textual output.
	Stdout io.Writer

	// Stderr receives the engine's error output.
	Stderr io.Writer
}

// Engine is the opaque repair capability: one synchronous call per job,
// returning the engine-native outcome code. Implementations stream their
// textual output to job.Stdout as the run progresses. Cancelling ctx
// aborts the run; the engine then reports a failure code.
type Engine interface {
	Repair(ctx context.Context, job *Job) Code
}
