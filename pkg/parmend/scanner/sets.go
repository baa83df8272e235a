package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"
)

// Set is a recovery set discovered on disk: all recovery files sharing one
// directory.
type Set struct {
	// Dir is the absolute directory containing the set.
	Dir string

	// Files are the absolute paths of the set's recovery files.
	Files []string
}

// Index returns the recovery file to hand to the engine for this set.
func (s *Set) Index() string {
	return SelectIndex(s.Files)
}

// FindSets walks root recursively and groups every recovery file by its
// containing directory. Walk errors on individual entries are skipped; the
// discovery is best-effort. Sets are returned in directory order.
func FindSets(root string) ([]Set, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	conf := fastwalk.Config{
		Follow: false, // Don't follow symlinks.
	}

	var mu sync.Mutex
	byDir := make(map[string][]string)

	err = fastwalk.Walk(&conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries.
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !IsRecoveryFile(path) {
			return nil
		}

		dir := filepath.Dir(path)
		mu.Lock()
		byDir[dir] = append(byDir[dir], path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	sets := make([]Set, 0, len(dirs))
	for _, dir := range dirs {
		files := byDir[dir]
		sort.Strings(files)
		sets = append(sets, Set{Dir: dir, Files: files})
	}

	return sets, nil
}
