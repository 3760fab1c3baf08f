package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lyra-player/lyra/internal/app"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the library: log record changes and download state transitions.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		app.ExecuteWatchCommand(cmd.Context(), appConfig)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register commands before execution.
func init() {
	rootCmd.AddCommand(watchCmd)
}
