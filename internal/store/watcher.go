package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lyra-player/lyra/internal/logger"
)

const watcherDebounceInterval = 500 * time.Millisecond

// Watcher reports changes to the track records directory so observers can
// rescan the library. Bursts of filesystem events (a download committing a
// record, an external sync tool rewriting several) collapse into one
// notification per debounce interval.
type Watcher struct {
	inner    *fsnotify.Watcher
	onChange func(ctx context.Context)
}

// NewWatcher starts watching the track records directory.
// The callback runs on the watcher's goroutine after Run is called.
func (s *Store) NewWatcher(onChange func(ctx context.Context)) (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create filesystem watcher: %w", err)
	}

	if err = inner.Add(s.tracksDir()); err != nil {
		inner.Close()
		return nil, fmt.Errorf("watch tracks directory: %w", err)
	}

	return &Watcher{
		inner:    inner,
		onChange: onChange,
	}, nil
}

// Run dispatches debounced change notifications until the context is canceled.
func (w *Watcher) Run(ctx context.Context) {
	var debounce *time.Timer

	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}

			return
		case event, ok := <-w.inner.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
				continue
			}

			if debounce == nil {
				debounce = time.AfterFunc(watcherDebounceInterval, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			} else {
				debounce.Reset(watcherDebounceInterval)
			}
		case err, ok := <-w.inner.Errors:
			if !ok {
				return
			}

			logger.Warnf(ctx, "Filesystem watcher error: %v", err)
		case <-pending:
			debounce = nil

			w.onChange(ctx)
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.inner.Close()
}
