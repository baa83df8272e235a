package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// recoveryExt is the lowercase recovery-file extension used for family
// matching.
const recoveryExt = ".par2"

// IsRecoveryFile reports whether path has the recovery-file extension
// (case-insensitive).
func IsRecoveryFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), recoveryExt)
}

// IsIndexFile reports whether path is the main recovery index file: a
// recovery file without a ".volNN+NN" volume segment. The index file
// carries the full file list and is the preferred entry point for the
// engine.
func IsIndexFile(path string) bool {
	if !IsRecoveryFile(path) {
		return false
	}
	return !strings.Contains(strings.ToLower(filepath.Base(path)), ".vol")
}

// SelectIndex picks the recovery file to hand to the engine from a set of
// paths belonging to one recovery set. It prefers the index file; when
// every file is a volume file it falls back to the smallest one, which is
// the cheapest to load. Returns "" for an empty set.
func SelectIndex(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	for _, p := range paths {
		if IsIndexFile(p) {
			return p
		}
	}

	smallest := paths[0]
	smallestSize := int64(-1)
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		if smallestSize < 0 || info.Size() < smallestSize {
			smallest = p
			smallestSize = info.Size()
		}
	}

	return smallest
}
