package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lyra-player/lyra/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var deleteCmd = &cobra.Command{
	Use:   "delete {track IDs}",
	Short: "Delete tracks together with their audio, lyrics and artwork.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		app.ExecuteDeleteCommand(cmd.Context(), appConfig, args)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register commands before execution.
func init() {
	rootCmd.AddCommand(deleteCmd)
}
