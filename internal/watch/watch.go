package watch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is a wrapper around fsnotify.Event
type Event struct {
	Name string
	Op   fsnotify.Op
}

// Watcher watches directory trees and reports coalesced change events.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dirs     []string
	debounce time.Duration
	onEvent  func(Event)
}

// New creates a watcher over the given directories. onEvent fires once
// events have settled for the debounce duration.
func New(dirs []string, debounce time.Duration, onEvent func(Event)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &Watcher{
		watcher:  w,
		dirs:     dirs,
		debounce: debounce,
		onEvent:  onEvent,
	}, nil
}

// Start begins watching for events. It blocks until Stop is called,
// so it usually runs on its own goroutine.
func (w *Watcher) Start() {
	for _, dir := range w.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				// Skip hidden directories like .git
				if path != dir && strings.HasPrefix(filepath.Base(path), ".") {
					return filepath.SkipDir
				}
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			slog.Warn("Failed to watch directory", "dir", dir, "error", err)
		}
	}

	var timer *time.Timer
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Ignore chmod and other meta events
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			// New directories need their own watch
			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			if timer != nil {
				timer.Stop()
			}
			ev := Event{Name: event.Name, Op: event.Op}
			timer = time.AfterFunc(w.debounce, func() {
				w.onEvent(ev)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watcher error", "error", err)
		}
	}
}

// Stop closes the underlying watcher, unblocking Start.
func (w *Watcher) Stop() {
	if err := w.watcher.Close(); err != nil {
		slog.Warn("Failed to close file watcher", "error", err)
	}
}
