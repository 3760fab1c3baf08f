package app

import (
	"context"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
)

// ExecuteWatchCommand follows the library until interrupted: filesystem
// changes to track records trigger a rescan, and every download state
// transition is logged as it happens.
func ExecuteWatchCommand(ctx context.Context, cfg *config.Config) {
	env := newEnvironment(ctx, cfg)

	changes, unsubscribe := env.tracker.Subscribe()
	defer unsubscribe()

	watcher, err := env.store.NewWatcher(func(ctx context.Context) {
		if rescanErr := env.tracker.InitFromStore(ctx, env.store); rescanErr != nil {
			logger.Errorf(ctx, "Failed to rescan library: %v", rescanErr)
			return
		}

		logger.Infof(ctx, "Library rescanned, %d tracks known", len(env.tracker.Snapshot()))
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to watch library: %v", err)
	}

	defer watcher.Close() //nolint:errcheck // Error on close is not critical here.

	go watcher.Run(ctx)

	logger.Infof(ctx, "Watching library at '%s', press Ctrl+C to stop", cfg.LibraryRoot)

	for {
		select {
		case <-ctx.Done():
			return
		case change := <-changes:
			logger.Infof(ctx, "Track '%s' is now %s", change.TrackID, change.State)
		}
	}
}
