package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/lyra-player/lyra/internal/client/catalog"
	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/service/library"
	"github.com/lyra-player/lyra/internal/store"
	"github.com/lyra-player/lyra/internal/utils"
)

const progressBarSteps = 100

// trackDescriptor is the JSON shape of a track descriptor file:
// enough metadata to register a remote track for downloading.
type trackDescriptor struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Album     string `json:"album"`
	Platform  string `json:"platform"`
	AudioURL  string `json:"audioUrl"`
	CoverURL  string `json:"coverUrl"`
	LyricsURL string `json:"lyricsUrl"`
}

// downloadSummary counts command outcomes for the final report.
type downloadSummary struct {
	mu         sync.Mutex
	downloaded int
	imported   int
	failed     int
}

// ExecuteRootCommand registers each argument as a library track and downloads
// the remote ones. An argument may be a track descriptor file, a local audio
// file to import, or a catalog track identifier.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config, args []string) {
	env := newEnvironment(ctx, cfg)

	var catalogClient catalog.Client
	if cfg.CatalogURL != "" {
		catalogClient = catalog.NewClient(cfg)
	}

	summary := new(downloadSummary)
	pending := make([]string, 0, len(args))

	for _, arg := range args {
		trackID, download := resolveArgument(ctx, env, catalogClient, summary, arg)
		if download {
			pending = append(pending, trackID)
		}
	}

	downloadTracks(ctx, env, summary, pending)

	logger.InfoKV(ctx, "Done",
		zap.Int("downloaded", summary.downloaded),
		zap.Int("imported", summary.imported),
		zap.Int("failed", summary.failed))
}

// resolveArgument turns one command-line argument into a stored track record.
// The second return value reports whether the track still needs downloading.
func resolveArgument(
	ctx context.Context,
	env *environment,
	catalogClient catalog.Client,
	summary *downloadSummary,
	arg string,
) (string, bool) {
	isFile, _ := utils.IsFileExist(arg)

	switch {
	case isFile && strings.EqualFold(filepath.Ext(arg), constants.ExtensionJSON):
		trackID, err := registerDescriptor(ctx, env, arg)
		if err != nil {
			logger.Errorf(ctx, "Failed to register descriptor '%s': %v", arg, err)
			summary.add(library.FailedState(err.Error()))

			return "", false
		}

		return trackID, true
	case isFile:
		if _, err := env.service.ImportLocal(ctx, arg); err != nil {
			logger.Errorf(ctx, "Failed to import '%s': %v", arg, err)
			summary.add(library.FailedState(err.Error()))

			return "", false
		}

		summary.mu.Lock()
		summary.imported++
		summary.mu.Unlock()

		return "", false
	case catalogClient != nil:
		trackID, err := registerCatalogTrack(ctx, env, catalogClient, arg)
		if err != nil {
			logger.Errorf(ctx, "Failed to resolve catalog track '%s': %v", arg, err)
			summary.add(library.FailedState(err.Error()))

			return "", false
		}

		return trackID, true
	default:
		logger.Errorf(ctx,
			"'%s' is neither an existing file nor resolvable: no catalog_url is configured", arg)
		summary.add(library.FailedState("unresolvable argument"))

		return "", false
	}
}

func registerDescriptor(ctx context.Context, env *environment, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var descriptor trackDescriptor
	if err = json.Unmarshal(data, &descriptor); err != nil {
		return "", err
	}

	track := &store.TrackRecord{
		ID:           uuid.NewString(),
		Title:        descriptor.Title,
		Artist:       descriptor.Artist,
		Album:        descriptor.Album,
		Platform:     descriptor.Platform,
		AudioLocator: descriptor.AudioURL,
		CoverLocator: descriptor.CoverURL,
		LyricLocator: descriptor.LyricsURL,
	}

	if track.Title == "" {
		track.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	if track.Artist == "" {
		track.Artist = "Unknown Artist"
	}

	if err = env.store.PutTrack(ctx, track); err != nil {
		return "", err
	}

	return track.ID, nil
}

func registerCatalogTrack(
	ctx context.Context,
	env *environment,
	catalogClient catalog.Client,
	trackID string,
) (string, error) {
	catalogTrack, err := catalogClient.GetTrack(ctx, trackID)
	if err != nil {
		return "", err
	}

	track := &store.TrackRecord{
		ID:           catalogTrack.ID,
		Title:        catalogTrack.Title,
		Artist:       catalogTrack.Artist,
		Album:        catalogTrack.Album,
		Platform:     catalogTrack.Platform,
		AudioLocator: catalogTrack.AudioURL,
		CoverLocator: catalogTrack.CoverURL,
		LyricLocator: catalogTrack.LyricsURL,
	}

	if err = env.store.PutTrack(ctx, track); err != nil {
		return "", err
	}

	return track.ID, nil
}

func downloadTracks(ctx context.Context, env *environment, summary *downloadSummary, trackIDs []string) {
	if len(trackIDs) == 0 {
		return
	}

	// Progress bars are disabled when downloading concurrently to avoid terminal output conflicts.
	showProgress := logger.Level() <= zap.InfoLevel && env.cfg.MaxConcurrentDownloads == 1

	var wg sync.WaitGroup

	semaphore := make(chan struct{}, env.cfg.MaxConcurrentDownloads)

	for _, trackID := range trackIDs {
		wg.Add(1)

		semaphore <- struct{}{}

		go func() {
			defer wg.Done()
			defer func() { <-semaphore }()

			final := consumeDownload(ctx, env, trackID, showProgress)
			summary.add(final)
		}()
	}

	wg.Wait()
}

// consumeDownload drains one download's state channel and returns the
// terminal state.
func consumeDownload(ctx context.Context, env *environment, trackID string, showProgress bool) library.DownloadState {
	track, err := env.store.GetTrack(ctx, trackID)
	if err != nil {
		return library.FailedState(err.Error())
	}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(progressBarSteps, track.Artist+" - "+track.Title)
	}

	var final library.DownloadState

	for state := range env.service.Download(ctx, trackID) {
		final = state

		if bar != nil && state.Kind == library.DownloadStateDownloading {
			_ = bar.Set(int(state.Progress * progressBarSteps))
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	return final
}

func (s *downloadSummary) add(state library.DownloadState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch state.Kind {
	case library.DownloadStateDownloaded:
		s.downloaded++
	case library.DownloadStateFailed:
		s.failed++
	case library.DownloadStateNone, library.DownloadStateDownloading:
	}
}
