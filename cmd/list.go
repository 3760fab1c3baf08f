package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lyra-player/lyra/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the library's tracks with their download states.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		showPlaylists, _ := cmd.Flags().GetBool("playlists")

		app.ExecuteListCommand(cmd.Context(), appConfig, showPlaylists)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register commands before execution.
func init() {
	listCmd.Flags().BoolP("playlists", "p", false, "list playlists instead of tracks.")

	rootCmd.AddCommand(listCmd)
}
