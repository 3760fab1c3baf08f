package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lyra-player/lyra/internal/app"
)

//nolint:gochecknoglobals // Cobra commands require global definitions for proper command-line parsing and execution.
var (
	playlistCmd = &cobra.Command{
		Use:   "playlist",
		Short: "Manage playlists.",
	}

	playlistCreateCmd = &cobra.Command{
		Use:   "create {name} [track IDs]",
		Short: "Create a playlist, optionally with initial tracks.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecutePlaylistCreateCommand(cmd.Context(), appConfig, args[0], args[1:])
		},
	}

	playlistRenameCmd = &cobra.Command{
		Use:   "rename {playlist ID} {new name}",
		Short: "Rename a playlist.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // Playlist ID and new name.
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecutePlaylistRenameCommand(cmd.Context(), appConfig, args[0], args[1])
		},
	}

	playlistDeleteCmd = &cobra.Command{
		Use:   "delete {playlist ID}",
		Short: "Delete a playlist. Its tracks stay in the library.",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecutePlaylistDeleteCommand(cmd.Context(), appConfig, args[0])
		},
	}

	playlistAddCmd = &cobra.Command{
		Use:   "add {playlist ID} {track IDs}",
		Short: "Add tracks to a playlist. Tracks already in it are skipped.",
		Args:  cobra.MinimumNArgs(2), //nolint:mnd // Playlist ID plus at least one track.
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecutePlaylistAddCommand(cmd.Context(), appConfig, args[0], args[1:])
		},
	}

	playlistRemoveCmd = &cobra.Command{
		Use:   "remove {playlist ID} {track ID}",
		Short: "Remove one track from a playlist.",
		Args:  cobra.ExactArgs(2), //nolint:mnd // Playlist ID and track ID.
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecutePlaylistRemoveCommand(cmd.Context(), appConfig, args[0], args[1])
		},
	}

	playlistReorderCmd = &cobra.Command{
		Use:   "reorder {playlist IDs}",
		Short: "Set the display order of playlists.",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			app.ExecutePlaylistReorderCommand(cmd.Context(), appConfig, args)
		},
	}
)

//nolint:gochecknoinits // Cobra requires the init function to register commands before execution.
func init() {
	playlistCmd.AddCommand(
		playlistCreateCmd,
		playlistRenameCmd,
		playlistDeleteCmd,
		playlistAddCmd,
		playlistRemoveCmd,
		playlistReorderCmd,
	)

	rootCmd.AddCommand(playlistCmd)
}
