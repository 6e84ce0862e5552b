// Package watcher implements file system watching for manifest changes.
package watcher

import (
	"context"
	"fmt"
	"iter"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

const eventChannelBuffer = 100

// Watcher implements single-directory file system watching using fsnotify.
// The bundler watches its own inputs, this watcher only covers the resource
// root where the manifest lives.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching dir. Entries of the directory itself are reported,
// nested directories are not.
func (w *Watcher) Start(ctx context.Context, dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		startErr := zerr.Wrap(err, domain.ErrWatchStartFailed.Error())
		return zerr.With(startErr, "dir", dir)
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events. The iterator ends when
// the watcher is stopped or its context is canceled.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// processEvents converts raw fsnotify events into ports.WatchEvent values.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

// convertEvent maps an fsnotify event to a ports.WatchEvent. Chmod-only
// events carry no content change and are dropped.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	path := event.Name

	if event.Op&fsnotify.Write == fsnotify.Write {
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite}
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		return &ports.WatchEvent{Path: path, Operation: ports.OpCreate}
	}

	if event.Op&fsnotify.Remove == fsnotify.Remove {
		return &ports.WatchEvent{Path: path, Operation: ports.OpRemove}
	}

	if event.Op&fsnotify.Rename == fsnotify.Rename {
		return &ports.WatchEvent{Path: path, Operation: ports.OpRename}
	}

	return nil
}
