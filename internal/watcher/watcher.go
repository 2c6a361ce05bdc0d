// Package watcher notifies the picker when the tasks file is changed by an
// external writer, so the session can reload and re-rank the collection.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"cmdpal/internal/logging"
)

const debounce = 250 * time.Millisecond

// Watcher monitors a single file for writes. Events are delivered on
// Events, debounced so a burst of writes collapses into one notification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string

	Events chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher for the given file. The containing directory is
// watched so the file is still tracked across replace-on-save writes.
func New(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		Events:    make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.Events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logging.Warn("file watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
	})
	return nil
}
