// ABOUTME: Polling file watcher for settings hot-reload, driven by the console loop
// ABOUTME: Check compares mtimes on demand; no goroutines, so callbacks run on the caller's thread

package config

import (
	"os"
	"time"
)

// Watcher detects changes to a set of files by comparing modification times.
type Watcher struct {
	paths    []string
	onChange func()
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher and records the current state of paths.
func NewWatcher(paths []string, onChange func()) *Watcher {
	w := &Watcher{
		paths:    paths,
		onChange: onChange,
		mtimes:   make(map[string]time.Time),
	}
	w.snapshot()
	return w
}

// Check calls onChange once if any watched file was created, modified or
// removed since the last check. It reports whether a change was seen.
func (w *Watcher) Check() bool {
	if !w.changed() {
		return false
	}
	w.snapshot()
	if w.onChange != nil {
		w.onChange()
	}
	return true
}

func (w *Watcher) changed() bool {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			if _, existed := w.mtimes[path]; existed {
				return true
			}
			continue
		}
		prev, ok := w.mtimes[path]
		if !ok || !info.ModTime().Equal(prev) {
			return true
		}
	}
	return false
}

func (w *Watcher) snapshot() {
	for _, path := range w.paths {
		info, err := os.Stat(path)
		if err != nil {
			delete(w.mtimes, path)
			continue
		}
		w.mtimes[path] = info.ModTime()
	}
}
