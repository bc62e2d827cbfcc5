// Package fswatch reports changes to a single file made outside the editor.
package fswatch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/chatter/hotbar/internal/logger"
)

// ChangedMsg is sent when the watched file changes on disk.
type ChangedMsg struct {
	Path string
}

// Watcher watches one file. The parent directory is watched so that files
// replaced by rename are still seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	filtered chan fsnotify.Event
	done     chan struct{}
	log      *logger.Logger
}

// NewWatcher starts watching path. The file itself need not exist yet, but
// its directory must.
func NewWatcher(path string, log *logger.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	log.Debug("creating file watcher", "path", abs)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("failed to create fsnotify watcher", "err", err)

		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		log.Error("failed to watch directory", "path", dir, "err", err)
		watcher.Close()

		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	log.Info("watcher started", "path", abs)

	self := &Watcher{
		path:     abs,
		watcher:  watcher,
		filtered: make(chan fsnotify.Event, 1),
		done:     make(chan struct{}),
		log:      log,
	}

	go self.filterEvents()

	return self, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel of events for the watched file.
func (w *Watcher) Events() <-chan fsnotify.Event {
	return w.filtered
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("closing fsnotify watcher: %w", err)
	}

	return nil
}

func (w *Watcher) filterEvents() {
	defer close(w.filtered)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.shouldForward(event) {
				continue
			}

			w.log.Debug("file change detected", "path", event.Name, "op", event.Op.String())

			// Drop the event when one is already pending; consumers re-read
			// the whole file anyway.
			select {
			case w.filtered <- event:
			default:
				w.log.Debug("watcher event dropped (pending)", "path", event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.log.Warn("watcher error", "err", err)
			}
		}
	}
}

// shouldForward reports whether event concerns the watched file.
func (w *Watcher) shouldForward(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}
