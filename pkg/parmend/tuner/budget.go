package tuner

// Memory budget limits. The 2 GiB ceiling keeps internal size computations
// representable in 32-bit-safe arithmetic for the engine.
const (
	// baselineRAM is assumed when total RAM cannot be detected.
	baselineRAM = 256 * 1024 * 1024

	// minMemoryLimit is the floor of the engine memory ceiling.
	minMemoryLimit = 16 * 1024 * 1024

	// maxMemoryLimit is the cap of the engine memory ceiling.
	maxMemoryLimit = 2048 * 1024 * 1024

	// fallbackThreads is used when hardware concurrency is unknown.
	fallbackThreads = 2
)

// Calibrate derives a usable repair budget from detected resources.
// It never fails: unreadable or zero readings fall back to conservative
// defaults (256 MiB baseline RAM, 2 threads).
//
// The memory ceiling is half the total physical RAM, clamped to
// [16 MiB, 2 GiB]. Half leaves headroom for the rest of the pipeline while
// bounding worst-case use on very large or very small hosts. The thread
// count is the detected hardware concurrency with no upper clamp; the
// engine handles arbitrarily wide concurrency gracefully.
func Calibrate(resources SystemResources) Budget {
	totalRAM := resources.TotalRAM
	if totalRAM <= 0 {
		totalRAM = baselineRAM
	}

	limit := totalRAM / 2
	limit = max(limit, minMemoryLimit)
	limit = min(limit, maxMemoryLimit)

	threads := resources.CPUCores
	if threads <= 0 {
		threads = fallbackThreads
	}

	return Budget{
		MemoryLimit: limit,
		Threads:     threads,
	}
}
