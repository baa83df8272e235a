// Package config provides configuration management for parmend.
package config

// Default configuration values for parmend.
const (
	// DefaultEngineBinary is the repair engine binary looked up on PATH.
	DefaultEngineBinary = "par2"

	// DefaultPurge controls whether recovery files are deleted after a
	// successful repair.
	DefaultPurge = false

	// DefaultWatchDebounce is how long a recovery set must stay quiet
	// before a watched directory triggers a repair, in seconds.
	DefaultWatchDebounce = 5

	// DefaultWatchRepair controls whether watch mode repairs damaged
	// sets or only verifies them.
	DefaultWatchRepair = true
)
