package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lyra-player/lyra/internal/app"
	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "lyra [flags] {descriptor files, audio files or track IDs}",
		Short: "Manage a local music library: download, import and organize tracks.",
		Long: `Lyra is a CLI music library manager.
It accepts three kinds of arguments:
- Track descriptor files (JSON with title, artist and remote locators)
- Local audio files to import into the library
- Catalog track identifiers, resolved through the configured catalog service

Downloaded tracks get their metadata, cover art and timed lyrics embedded.`,
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: initConfig,
		Run: func(cmd *cobra.Command, args []string) {
			if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
				logger.Fatalf(cmd.Context(), "Failed to parse flags: %v", err)
			}

			app.ExecuteRootCommand(cmd.Context(), appConfig, args)
		},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	rootCmd.PersistentFlags().StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	rootCmdFlags := rootCmd.Flags()

	rootCmdFlags.StringP(
		"library",
		"o",
		"",
		"library root directory (the path will be created if it doesn't exist).")

	rootCmdFlags.StringP(
		"speed-limit",
		"s",
		"",
		"set download speed limit, for example: 500KB, 1MB, 1.5MB.")

	rootCmdFlags.Int64P(
		"concurrency",
		"n",
		0,
		"maximum number of tracks to download simultaneously.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if err = config.ValidateConfig(appConfig); err != nil {
		logger.Fatalf(cmd.Context(), "Invalid configuration: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)
}

func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("library"); flag != nil && flag.Changed {
		cfg.LibraryRoot, _ = flags.GetString("library")
	}

	if flag := flags.Lookup("speed-limit"); flag != nil && flag.Changed {
		cfg.DownloadSpeedLimit, _ = flags.GetString("speed-limit")
	}

	if flag := flags.Lookup("concurrency"); flag != nil && flag.Changed {
		cfg.MaxConcurrentDownloads, _ = flags.GetInt64("concurrency")
	}

	return config.ValidateConfig(cfg)
}
