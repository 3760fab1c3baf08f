package app

import (
	"context"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
)

// ExecutePlaylistCreateCommand creates a playlist with optional initial members.
func ExecutePlaylistCreateCommand(ctx context.Context, cfg *config.Config, name string, trackIDs []string) {
	env := newEnvironment(ctx, cfg)

	playlist, err := env.store.CreatePlaylist(ctx, name, trackIDs)
	if err != nil {
		logger.Fatalf(ctx, "Failed to create playlist: %v", err)
	}

	logger.Infof(ctx, "Created playlist '%s' (%s) with %d tracks",
		playlist.Name, playlist.ID, len(playlist.TrackIDs))
}

// ExecutePlaylistRenameCommand changes a playlist's display name.
func ExecutePlaylistRenameCommand(ctx context.Context, cfg *config.Config, playlistID, name string) {
	env := newEnvironment(ctx, cfg)

	playlist, err := env.store.RenamePlaylist(ctx, playlistID, name)
	if err != nil {
		logger.Fatalf(ctx, "Failed to rename playlist '%s': %v", playlistID, err)
	}

	logger.Infof(ctx, "Renamed playlist '%s' to '%s'", playlist.ID, playlist.Name)
}

// ExecutePlaylistDeleteCommand removes a playlist, leaving its tracks alone.
func ExecutePlaylistDeleteCommand(ctx context.Context, cfg *config.Config, playlistID string) {
	env := newEnvironment(ctx, cfg)

	if err := env.store.DeletePlaylist(ctx, playlistID); err != nil {
		logger.Fatalf(ctx, "Failed to delete playlist '%s': %v", playlistID, err)
	}

	logger.Infof(ctx, "Deleted playlist '%s'", playlistID)
}

// ExecutePlaylistAddCommand appends tracks to a playlist.
func ExecutePlaylistAddCommand(ctx context.Context, cfg *config.Config, playlistID string, trackIDs []string) {
	env := newEnvironment(ctx, cfg)

	playlist, err := env.store.AddTracks(ctx, playlistID, trackIDs)
	if err != nil {
		logger.Fatalf(ctx, "Failed to add tracks to playlist '%s': %v", playlistID, err)
	}

	logger.Infof(ctx, "Playlist '%s' now has %d tracks", playlist.Name, len(playlist.TrackIDs))
}

// ExecutePlaylistRemoveCommand removes one track from a playlist.
func ExecutePlaylistRemoveCommand(ctx context.Context, cfg *config.Config, playlistID, trackID string) {
	env := newEnvironment(ctx, cfg)

	playlist, err := env.store.RemoveTrack(ctx, playlistID, trackID)
	if err != nil {
		logger.Fatalf(ctx, "Failed to remove track from playlist '%s': %v", playlistID, err)
	}

	logger.Infof(ctx, "Playlist '%s' now has %d tracks", playlist.Name, len(playlist.TrackIDs))
}

// ExecutePlaylistReorderCommand replaces the display order of all playlists.
func ExecutePlaylistReorderCommand(ctx context.Context, cfg *config.Config, playlistIDs []string) {
	env := newEnvironment(ctx, cfg)

	if err := env.store.ReorderPlaylists(ctx, playlistIDs); err != nil {
		logger.Fatalf(ctx, "Failed to reorder playlists: %v", err)
	}

	logger.Infof(ctx, "Reordered %d playlists", len(playlistIDs))
}
