package source

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/theirongolddev/salestable/internal/model"
)

// settleDelay collapses the burst of events an editor produces for one save.
const settleDelay = 100 * time.Millisecond

// Event is a reload of the watched data file.
type Event struct {
	Tree model.Tree
	Err  error
}

// Watch reloads path whenever it is written or recreated and sends the result
// on the returned channel. The channel is closed once ctx is done.
func Watch(ctx context.Context, path string) (<-chan Event, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving data file: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory so atomic renames over the file are still seen.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer func() { _ = w.Close() }()

		timer := time.NewTimer(settleDelay)
		timer.Stop()
		defer timer.Stop()

		send := func(ev Event) bool {
			select {
			case out <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					timer.Reset(settleDelay)
				}

			case <-timer.C:
				tree, err := Load(abs)
				if !send(Event{Tree: tree, Err: err}) {
					return
				}

			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				if !send(Event{Err: fmt.Errorf("watching data file: %w", err)}) {
					return
				}
			}
		}
	}()

	return out, nil
}
