package app

import (
	"context"

	"github.com/lyra-player/lyra/internal/client/fetch"
	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/service/library"
	"github.com/lyra-player/lyra/internal/store"
)

// environment bundles the wired components every command works with.
type environment struct {
	cfg         *config.Config
	store       *store.Store
	tracker     *library.StateTracker
	service     library.Service
	fetchClient fetch.Client
}

// newEnvironment builds the library stack: logging sinks, the on-disk store,
// the download state tracker seeded from it, and the library service.
func newEnvironment(ctx context.Context, cfg *config.Config) *environment {
	if cfg.LogFile != "" {
		logger.SetLogger(logger.NewWithRotatingFile(cfg.ParsedLogLevel, cfg.LogFile))
	}

	s, err := store.New(cfg)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize library store: %v", err)
	}

	tracker := library.NewStateTracker()
	if err = tracker.InitFromStore(ctx, s); err != nil {
		logger.Fatalf(ctx, "Failed to scan library: %v", err)
	}

	fetchClient := fetch.NewClient(cfg)
	tagProcessor := library.NewTagProcessor()

	return &environment{
		cfg:         cfg,
		store:       s,
		tracker:     tracker,
		service:     library.NewService(cfg, s, fetchClient, tagProcessor, tracker),
		fetchClient: fetchClient,
	}
}
