package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
)

// Config holds all configuration settings.
type Config struct {
	// LibraryRoot is the directory holding track records, playlists, music and covers.
	LibraryRoot string `mapstructure:"library_root"`
	// CachePath is the transient cache area for fetched and extracted artwork.
	CachePath string `mapstructure:"cache_path"`
	// CatalogURL is the optional GraphQL endpoint of the remote catalog service.
	// When set, bare track IDs passed on the command line are resolved through it.
	CatalogURL string `mapstructure:"catalog_url"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// LogFile is an optional path for a size-rotated log file.
	LogFile string `mapstructure:"log_file"`
	// HTTPTimeout bounds every outbound HTTP request (e.g., "60s").
	HTTPTimeout string `mapstructure:"http_timeout"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// MaxConcurrentDownloads is the maximum number of tracks to download simultaneously.
	MaxConcurrentDownloads int64 `mapstructure:"max_concurrent_downloads"`
	// SyncInterval is the sampling period of the playback synchronization loop.
	SyncInterval string `mapstructure:"sync_interval"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedHTTPTimeout is the parsed HTTP timeout.
	ParsedHTTPTimeout time.Duration
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes per second.
	ParsedDownloadSpeedLimit int64
	// ParsedSyncInterval is the parsed playback sync interval.
	ParsedSyncInterval time.Duration
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".lyra.yaml"

	// DefaultHTTPTimeout bounds outbound requests when http_timeout is not set.
	// The source behavior had no timeout at all; a bound avoids indefinite hangs.
	DefaultHTTPTimeout = "60s"

	// DefaultSyncInterval is the default lyric synchronization sampling period.
	DefaultSyncInterval = "50ms"

	// DefaultMaxLogLength is the default maximum size (in bytes) for dumped HTTP payloads in logs.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB
)

// Static error definitions for better error handling.
var (
	// ErrEmptyLibraryRoot indicates that the library root directory is missing.
	ErrEmptyLibraryRoot = errors.New("library_root cannot be empty")
	// ErrEmptyCachePath indicates that the cache directory is missing.
	ErrEmptyCachePath = errors.New("cache_path cannot be empty")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidHTTPTimeout indicates an invalid HTTP timeout value.
	ErrInvalidHTTPTimeout = errors.New("http_timeout must be positive")
	// ErrInvalidSyncInterval indicates an invalid sync interval value.
	ErrInvalidSyncInterval = errors.New("sync_interval must be positive")
	// ErrInvalidConcurrentDownloads indicates an invalid concurrent downloads count.
	ErrInvalidConcurrentDownloads = errors.New("max_concurrent_downloads must be positive")
)

// defaultConfig returns configuration defaults rooted at the given base directory.
func defaultConfig(baseDir string) *Config {
	//nolint:exhaustruct // Parsed fields are derived by ValidateConfig.
	return &Config{
		LibraryRoot:            baseDir + string(os.PathSeparator) + "lyra",
		CachePath:              baseDir + string(os.PathSeparator) + "lyra-cache",
		LogLevel:               "info",
		HTTPTimeout:            DefaultHTTPTimeout,
		SyncInterval:           DefaultSyncInterval,
		MaxConcurrentDownloads: 1,
	}
}

// LoadConfig reads the configuration file, creating it with defaults when absent.
// An empty filename falls back to DefaultConfigFilename in the user's home directory.
func LoadConfig(configFilename string) (*Config, error) {
	if configFilename == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}

		configFilename = home + string(os.PathSeparator) + DefaultConfigFilename
	}

	if exists, err := fileExists(configFilename); err != nil {
		return nil, err
	} else if !exists {
		if err = writeDefaultConfig(configFilename); err != nil {
			return nil, err
		}
	}

	viper.SetConfigFile(configFilename)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.LibraryRoot) == "" {
		return ErrEmptyLibraryRoot
	}

	if strings.TrimSpace(cfg.CachePath) == "" {
		return ErrEmptyCachePath
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	var err error

	cfg.ParsedHTTPTimeout, err = time.ParseDuration(cfg.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse http timeout: %w", err)
	}

	if cfg.ParsedHTTPTimeout <= 0 {
		return ErrInvalidHTTPTimeout
	}

	cfg.ParsedSyncInterval, err = time.ParseDuration(cfg.SyncInterval)
	if err != nil {
		return fmt.Errorf("failed to parse sync interval: %w", err)
	}

	if cfg.ParsedSyncInterval <= 0 {
		return ErrInvalidSyncInterval
	}

	downloadSpeedLimit := strings.TrimSpace(cfg.DownloadSpeedLimit)
	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, parseErr := humanize.ParseBytes(downloadSpeedLimit)
		if parseErr != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", parseErr)
		}

		// io.CopyN accepts only int64 so we clamp it safely in order to use it later.
		if parsedDownloadSpeedLimit > math.MaxInt64 {
			parsedDownloadSpeedLimit = math.MaxInt64
		}

		cfg.ParsedDownloadSpeedLimit = int64(parsedDownloadSpeedLimit)
	}

	if cfg.MaxConcurrentDownloads <= 0 {
		return ErrInvalidConcurrentDownloads
	}

	return nil
}

// writeDefaultConfig materializes a fresh config file with default values.
func writeDefaultConfig(configFilename string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}

	defaults := defaultConfig(home)

	content, err := yaml.Marshal(map[string]any{
		"library_root":             defaults.LibraryRoot,
		"cache_path":               defaults.CachePath,
		"catalog_url":              "",
		"log_level":                defaults.LogLevel,
		"log_file":                 "",
		"http_timeout":             defaults.HTTPTimeout,
		"download_speed_limit":     "",
		"max_concurrent_downloads": defaults.MaxConcurrentDownloads,
		"sync_interval":            defaults.SyncInterval,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err = os.WriteFile(configFilename, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, fmt.Errorf("failed to stat config file: %w", err)
}
