// Package tuner provides host resource detection and repair budget
// calibration for parmend. It detects CPU concurrency and physical RAM,
// then derives the memory ceiling and worker-thread count handed to the
// repair engine for each invocation.
package tuner

// SystemResources contains detected system resources.
type SystemResources struct {
	// CPUCores is the number of logical CPU cores available.
	// Zero means detection failed.
	CPUCores int

	// TotalRAM is the total physical RAM in bytes.
	// Zero means detection failed.
	TotalRAM int64
}

// Budget is the per-invocation resource budget supplied to the repair
// engine. It is computed fresh for every repair call from live host state
// and never cached.
type Budget struct {
	// MemoryLimit is the engine memory ceiling in bytes.
	MemoryLimit int64

	// Threads is the engine worker-thread count.
	Threads int
}
