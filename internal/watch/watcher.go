// Package watch provides a debounced filesystem watcher used by the serve
// daemon to re-resolve the navigation tree when the book or its include
// fragments change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher coalesces filesystem events on a set of paths into reload signals.
type Watcher struct {
	dirs     map[string]struct{}
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	stopChan chan struct{}
	debounce time.Duration
}

// New creates a watcher over the given files or directories. For files, the
// containing directory is watched, which survives editor rename-and-replace
// writes.
func New(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve watch path %s: %w", p, err)
		}
		dirs[watchDir(abs)] = struct{}{}
	}

	return &Watcher{
		dirs:     dirs,
		watcher:  fsw,
		changes:  make(chan struct{}, 1),
		stopChan: make(chan struct{}),
		debounce: 500 * time.Millisecond,
	}, nil
}

func watchDir(abs string) string {
	if ext := filepath.Ext(abs); ext != "" {
		return filepath.Dir(abs)
	}
	return abs
}

// Start begins monitoring. Change signals are delivered on C.
func (w *Watcher) Start(ctx context.Context) error {
	for dir := range w.dirs {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		slog.Debug("Watching directory", "dir", dir)
	}
	go w.loop(ctx)
	return nil
}

// C returns the coalesced change channel.
func (w *Watcher) C() <-chan struct{} {
	return w.changes
}

// Stop stops the watcher and releases the underlying fsnotify resources.
func (w *Watcher) Stop() {
	close(w.stopChan)
	if err := w.watcher.Close(); err != nil {
		slog.Error("Error closing file watcher", "error", err)
	}
}

func (w *Watcher) loop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			slog.Debug("Filesystem event", "event", event.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("File watcher error", "error", err)
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.changes <- struct{}{}:
			default:
				// A reload is already pending; the next load picks the
				// change up anyway.
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	return event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Rename) ||
		event.Op.Has(fsnotify.Remove)
}
