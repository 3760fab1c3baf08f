package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lyra-player/lyra/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var lyricsCmd = &cobra.Command{
	Use:   "lyrics {track ID}",
	Short: "Print a track's timed lyrics, optionally following them in real time.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		follow, _ := cmd.Flags().GetBool("follow")

		app.ExecuteLyricsCommand(cmd.Context(), appConfig, args[0], follow)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register commands before execution.
func init() {
	lyricsCmd.Flags().BoolP("follow", "f", false, "print each line when its timestamp is reached.")

	rootCmd.AddCommand(lyricsCmd)
}
