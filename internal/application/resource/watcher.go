package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/younwookim/harness/internal/infrastructure/logging"
)

// Watcher records files created or written under the search directories.
// Its goroutine only collects paths; Drain hands them to the loop thread.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	logger   *log.Logger
	done     chan struct{}
	stopped  chan struct{}

	mu      sync.Mutex
	pending map[string]struct{}
	closed  bool
}

// NewWatcher watches every directory in dirs. Missing directories are skipped.
func NewWatcher(dirs []string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsnotify: fsWatch,
		logger:   logger,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		pending:  make(map[string]struct{}),
	}

	watched := 0
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			logger.Debug("watch skipped", "dir", dir)
			continue
		}
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
		watched++
	}
	if watched == 0 {
		fsWatch.Close()
		return nil, errors.New("no directory to watch")
	}

	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.stopped)
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				w.mu.Lock()
				w.pending[filepath.Clean(e.Name)] = struct{}{}
				w.mu.Unlock()
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "err", err)
		case <-w.done:
			return
		}
	}
}

// Drain returns the changed paths since the last call, sorted.
func (w *Watcher) Drain() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	clear(w.pending)
	sort.Strings(paths)
	return paths
}

// Close stops the watcher. Calling it again is a no-op.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	<-w.stopped
	return w.fsnotify.Close()
}
