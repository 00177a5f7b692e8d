package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a catalog file whenever it changes on disk
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Catalog)
	onError  func(error)
}

// NewWatcher watches the directory holding path. Editors tend to replace
// files rather than write in place, so the directory is watched and events
// are filtered by name.
func NewWatcher(path string, onReload func(*Catalog), onError func(error)) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("no catalog file to watch")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	if onError == nil {
		onError = func(error) {}
	}

	return &Watcher{
		path:     abs,
		watcher:  fw,
		onReload: onReload,
		onError:  onError,
	}, nil
}

// Run blocks until ctx is cancelled, reloading on every write or create of the file
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			c, err := Load(w.path)
			if err != nil {
				w.onError(err)
				continue
			}
			if w.onReload != nil {
				w.onReload(c)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}
