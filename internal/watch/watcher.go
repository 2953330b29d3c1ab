// Package watch nudges the dashboard to refresh when session files change,
// so updates land between timer ticks instead of waiting for the next one.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 250 * time.Millisecond

// Watcher observes the Claude projects tree and signals changes on Hints.
// The hint channel has capacity 1 and sends are non-blocking: consumers that
// poll late see at most one pending hint, never a backlog.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}

	// Hints receives one signal per debounced burst of file events.
	Hints chan struct{}

	mu      sync.Mutex
	pending *time.Timer
	closed  bool
}

// New starts watching <claudeDir>/projects and its project subdirectories.
// A missing projects directory is not an error; the watcher just stays idle.
func New(claudeDir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:   fsw,
		done:  make(chan struct{}),
		Hints: make(chan struct{}, 1),
	}

	projectsDir := filepath.Join(claudeDir, "projects")
	if _, err := os.Stat(projectsDir); err == nil {
		_ = fsw.Add(projectsDir)
		// Session files live one level down; watch existing project dirs.
		entries, _ := os.ReadDir(projectsDir)
		for _, e := range entries {
			if e.IsDir() {
				_ = fsw.Add(filepath.Join(projectsDir, e.Name()))
			}
		}
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// New project directories need their own watch.
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.fsw.Add(ev.Name)
					continue
				}
			}
			if filepath.Ext(ev.Name) == ".jsonl" {
				w.scheduleHint()
			}
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the timer-driven refresh
			// still covers us.
		}
	}
}

// scheduleHint coalesces event bursts into a single hint per debounce window.
func (w *Watcher) scheduleHint() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(debounceInterval, func() {
		select {
		case w.Hints <- struct{}{}:
		default:
		}
	})
}

// Close stops the watcher and releases its resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.fsw.Close()
}
