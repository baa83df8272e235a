// Package scanner locates the files that may belong to a recovery set.
// The repair engine identifies files by content hash, not name, so every
// non-recovery file in the set's directory is offered as a candidate. This
// lets the engine restore files under their original names even when the
// local names are obfuscated or meaningless.
package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

// metadataArtifacts are transient OS files that are never part of a
// recovery set.
var metadataArtifacts = map[string]bool{
	".DS_Store":   true,
	"Thumbs.db":   true,
	"desktop.ini": true,
}

// Candidates lists the files in dir that the repair engine should consider
// for content-addressed identity matching. It excludes the recovery-file
// family, OS metadata artifacts, and subdirectories, and returns absolute
// paths so the engine can run from any working directory.
//
// Candidates never fails: an unreadable directory yields an empty set and
// the repair proceeds using only the originally named files.
func Candidates(dir string) []string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil
	}

	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isExcluded(entry.Name()) {
			continue
		}
		candidates = append(candidates, filepath.Join(absDir, entry.Name()))
	}

	return candidates
}

// isExcluded reports whether a directory entry name must be kept out of
// the candidate pool.
func isExcluded(name string) bool {
	if metadataArtifacts[name] {
		return true
	}
	// AppleDouble resource forks.
	if strings.HasPrefix(name, "._") {
		return true
	}
	// The recovery-file family is matched by substring, not extension:
	// obfuscated sets carry names like "abc.par2.bak" or "ABC.PAR2".
	return strings.Contains(strings.ToLower(name), recoveryExt)
}
