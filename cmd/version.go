package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyra-player/lyra/internal/version"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information.",
	Args:  cobra.NoArgs,
	// Version output must not depend on a loadable configuration.
	PersistentPreRun: func(_ *cobra.Command, _ []string) {},
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.Full())
	},
}

//nolint:gochecknoinits // Cobra requires the init function to register commands before execution.
func init() {
	rootCmd.AddCommand(versionCmd)
}
