package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/constants"
)

const testBaseConfigContent = `
library_root: "/config/library"
cache_path: "/config/cache"
catalog_url: ""
log_level: "info"
http_timeout: "60s"
download_speed_limit: "500KB"
max_concurrent_downloads: 1
sync_interval: "50ms"
`

// TestFlagOverrides tests that command-line flags correctly override configuration file values.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides(t *testing.T) {
	tests := []struct {
		name           string
		flags          map[string]string
		expectedConfig func(*testing.T, *config.Config)
	}{
		{
			name:  "no flags - use config values",
			flags: map[string]string{},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/library", cfg.LibraryRoot)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(1), cfg.MaxConcurrentDownloads)
			},
		},
		{
			name: "library flag only - override library root",
			flags: map[string]string{
				"library": "/flag/library",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/flag/library", cfg.LibraryRoot)
				assert.Equal(t, "500KB", cfg.DownloadSpeedLimit)
			},
		},
		{
			name: "speed-limit flag only - override speed limit",
			flags: map[string]string{
				"speed-limit": "1MB",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/config/library", cfg.LibraryRoot)
				assert.Equal(t, "1MB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(1_000_000), cfg.ParsedDownloadSpeedLimit)
			},
		},
		{
			name: "concurrency flag only - override concurrency",
			flags: map[string]string{
				"concurrency": "4",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, int64(4), cfg.MaxConcurrentDownloads)
			},
		},
		{
			name: "all flags - override everything",
			flags: map[string]string{
				"library":     "/all/library",
				"speed-limit": "2MB",
				"concurrency": "2",
			},
			expectedConfig: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "/all/library", cfg.LibraryRoot)
				assert.Equal(t, "2MB", cfg.DownloadSpeedLimit)
				assert.Equal(t, int64(2), cfg.MaxConcurrentDownloads)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "test-config.yaml")

			err := os.WriteFile(
				configPath,
				[]byte(testBaseConfigContent),
				constants.DefaultFilePermissions,
			) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			cfg, err := config.LoadConfig(configPath)
			require.NoError(t, err)

			// Create a test command with the same flags as the root command.
			testCmd := &cobra.Command{Use: "test"}
			testCmd.Flags().StringP("library", "o", "", "library root directory")
			testCmd.Flags().StringP("speed-limit", "s", "", "download speed limit")
			testCmd.Flags().Int64P("concurrency", "n", 0, "concurrent downloads")

			for flagName, flagValue := range tt.flags {
				require.NoError(t, testCmd.Flags().Set(flagName, flagValue),
					"failed to set flag %s", flagName)
			}

			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			require.NoError(t, err)

			tt.expectedConfig(t, cfg)
		})
	}
}

// TestFlagOverrides_InvalidValues tests that invalid flag values are caught during validation.
//
//nolint:nolintlint,tparallel // Cannot run in parallel due to Viper global state.
func TestFlagOverrides_InvalidValues(t *testing.T) {
	invalidTests := []struct {
		name          string
		flagName      string
		flagValue     string
		expectedError string
	}{
		{
			name:          "invalid speed limit",
			flagName:      "speed-limit",
			flagValue:     "invalid-speed",
			expectedError: "failed to parse download speed limit",
		},
		{
			name:          "invalid concurrency",
			flagName:      "concurrency",
			flagValue:     "-1",
			expectedError: "max_concurrent_downloads must be positive",
		},
	}

	for _, tt := range invalidTests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "test-config.yaml")

			err := os.WriteFile(
				configPath,
				[]byte(testBaseConfigContent),
				constants.DefaultFilePermissions,
			) //nolint:gosec // It's a test file.
			require.NoError(t, err)

			cfg, err := config.LoadConfig(configPath)
			require.NoError(t, err)

			testCmd := &cobra.Command{Use: "test"}
			testCmd.Flags().StringP("speed-limit", "s", "", "download speed limit")
			testCmd.Flags().Int64P("concurrency", "n", 0, "concurrent downloads")

			require.NoError(t, testCmd.Flags().Set(tt.flagName, tt.flagValue))

			err = bindFlagsToConfig(testCmd.Flags(), cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

// TestBindFlagsToConfig_EmptyFlagSet tests handling of empty flag set.
func TestBindFlagsToConfig_EmptyFlagSet(t *testing.T) {
	t.Parallel()

	//nolint:exhaustruct // Parsed fields are derived by ValidateConfig.
	cfg := &config.Config{
		LibraryRoot:            "/test/library",
		CachePath:              "/test/cache",
		LogLevel:               "info",
		HTTPTimeout:            "60s",
		SyncInterval:           "50ms",
		MaxConcurrentDownloads: 1,
	}

	emptyFlags := pflag.NewFlagSet("test", pflag.ContinueOnError)

	// Calling with an empty flag set should just validate the config.
	err := bindFlagsToConfig(emptyFlags, cfg)
	require.NoError(t, err)
}
