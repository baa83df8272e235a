// Package watch monitors a drop directory for arriving recovery sets and
// hands each completed set to a repair handler. It exists for the
// downloader handoff: a pipeline writes files into a directory, and once
// the recovery files stop changing the set is ready to verify or repair.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"parmend/pkg/parmend/logging"
	"parmend/pkg/parmend/scanner"
)

// Handler receives a completed recovery set. It runs on the watcher's
// event loop, so sets from one watcher are handled one at a time; repair
// side effects on a directory are never concurrent.
type Handler func(jobID string, set scanner.Set)

// Watcher debounces filesystem activity per directory and fires the
// handler when a directory's recovery files have been quiet long enough.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	handler  Handler
	log      *logging.Logger

	// due carries directories whose debounce expired into the event loop.
	due chan string

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// New creates a watcher. The handler fires after a directory's recovery
// files have been quiet for the debounce interval.
func New(debounce time.Duration, handler Handler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:      fsw,
		debounce: debounce,
		handler:  handler,
		log:      logging.Get("watcher"),
		due:      make(chan string, 16),
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Watch starts watching root and all its subdirectories.
// Symlinks are not followed to avoid loops.
func (w *Watcher) Watch(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	info, err := os.Lstat(absRoot)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil // Only watch directories.
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // Skip entries with errors
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			return w.addWatch(path)
		}
		return nil
	})
}

// addWatch adds a single directory to the watch list.
func (w *Watcher) addWatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	return w.fsw.Add(path)
}

// Run processes filesystem events until ctx is cancelled or the watcher
// is closed. Handlers run on this goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case dir := <-w.due:
			w.fire(dir)
		}
	}
}

// handleEvent reacts to one filesystem event.
func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		// New subdirectories need their own watch; a download can land
		// as a directory tree.
		if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
			if err := w.Watch(ev.Name); err != nil {
				w.log.Warn("failed to watch new directory", "path", ev.Name, "error", err)
			}
			return
		}
	}

	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Rename) {
		return
	}
	if !scanner.IsRecoveryFile(ev.Name) {
		return
	}

	w.schedule(filepath.Dir(ev.Name))
}

// schedule starts or resets the debounce timer for a directory.
func (w *Watcher) schedule(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if timer, ok := w.timers[dir]; ok {
		timer.Reset(w.debounce)
		return
	}

	w.timers[dir] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, dir)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}

		select {
		case w.due <- dir:
		default:
			w.log.Warn("dropping quiesced set, queue full", "dir", dir)
		}
	})
}

// fire collects the directory's recovery files and invokes the handler.
func (w *Watcher) fire(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.log.Warn("cannot read quiesced directory", "dir", dir, "error", err)
		return
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !scanner.IsRecoveryFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return
	}

	jobID := uuid.NewString()
	w.log.Info("recovery set quiesced", "job", jobID, "dir", dir, "files", len(files))

	w.handler(jobID, scanner.Set{Dir: dir, Files: files})
}

// Close stops watching. Pending debounce timers are discarded.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	for dir, timer := range w.timers {
		timer.Stop()
		delete(w.timers, dir)
	}
	w.mu.Unlock()

	return w.fsw.Close()
}
