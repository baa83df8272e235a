//go:build !darwin && !linux

package tuner

import (
	"runtime"
)

// Detect detects available system resources (CPU and RAM).
// On platforms without a memory query implementation, TotalRAM is left at
// zero and Calibrate applies its 256 MiB baseline.
func Detect() (SystemResources, error) {
	return SystemResources{
		CPUCores: runtime.NumCPU(),
	}, nil
}
