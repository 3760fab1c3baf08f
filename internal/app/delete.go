package app

import (
	"context"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
)

// ExecuteDeleteCommand removes the given tracks from the library together
// with their audio, lyrics, cached artwork and playlist memberships.
func ExecuteDeleteCommand(ctx context.Context, cfg *config.Config, trackIDs []string) {
	env := newEnvironment(ctx, cfg)

	var failed int

	for _, trackID := range trackIDs {
		if err := env.service.Delete(ctx, trackID); err != nil {
			logger.Errorf(ctx, "Failed to delete track '%s': %v", trackID, err)

			failed++
		}
	}

	logger.Infof(ctx, "Deleted %d of %d tracks", len(trackIDs)-failed, len(trackIDs))
}
