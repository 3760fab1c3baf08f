package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/store"
	"github.com/lyra-player/lyra/internal/utils"
)

const (
	// downloadChunkSize is how many bytes are copied between progress updates.
	downloadChunkSize = 32 * 1024

	// stateBufferSize keeps slow consumers from stalling progress reporting.
	stateBufferSize = 16

	// partFileSuffix marks files whose download has not finished yet.
	partFileSuffix = ".part"

	overwriteFileOptions = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
)

// Download transfers the track's remote audio into the library.
// Validation happens before the method returns: an unknown track or a
// non-remote audio locator yields a channel that reports failure immediately.
// On success the channel carries progress updates and ends with a terminal
// state. Progress updates may be dropped for slow consumers, terminal states
// never are.
func (s *ServiceImpl) Download(ctx context.Context, trackID string) <-chan DownloadState {
	states := make(chan DownloadState, stateBufferSize)

	track, err := s.store.GetTrack(ctx, trackID)
	if err != nil {
		s.failImmediately(states, trackID, err.Error())
		return states
	}

	if !utils.IsRemoteURL(track.AudioLocator) {
		s.failImmediately(states, trackID, ErrAudioNotRemote.Error())
		return states
	}

	if !s.markActive(trackID) {
		// Leave the tracker alone: the running download owns the state.
		states <- FailedState(ErrDownloadInProgress.Error())
		close(states)

		return states
	}

	s.emitProgress(states, trackID, 0)

	go s.runDownload(ctx, track, states)

	return states
}

func (s *ServiceImpl) runDownload(ctx context.Context, track *store.TrackRecord, states chan<- DownloadState) {
	defer s.markIdle(track.ID)
	defer close(states)

	trackPath, err := s.transferAudio(ctx, track, states)
	if err != nil {
		s.emitFailure(ctx, states, track, err)
		return
	}

	// Artwork and lyrics are best-effort: the track is playable without them.
	coverPath := s.fetchCover(ctx, track)
	lyricPath, lyricsContent := s.fetchLyrics(ctx, track, trackPath)

	s.writeTags(ctx, track, trackPath, coverPath, lyricsContent)

	updated := &store.TrackRecord{
		ID:           track.ID,
		Title:        track.Title,
		Artist:       track.Artist,
		Album:        track.Album,
		Platform:     store.PlatformLocal,
		AudioLocator: trackPath,
		LyricLocator: lyricPath,
		// Cover art now lives in the audio file and the art cache.
		CoverLocator: "",
	}

	if err = s.store.PutTrack(ctx, updated); err != nil {
		s.emitFailure(ctx, states, track, fmt.Errorf("commit track record: %w", err))
		return
	}

	s.tracker.Set(track.ID, DownloadedState())
	states <- DownloadedState()

	logger.Infof(ctx, "Downloaded track '%s - %s' to '%s'", track.Artist, track.Title, trackPath)
}

// transferAudio streams the remote audio to a temporary file and renames it
// into place, reporting per-chunk progress along the way.
func (s *ServiceImpl) transferAudio(
	ctx context.Context,
	track *store.TrackRecord,
	states chan<- DownloadState,
) (string, error) {
	fetchResult, err := s.fetchClient.FetchAudio(ctx, track.AudioLocator)
	if err != nil {
		return "", fmt.Errorf("fetch audio: %w", err)
	}

	defer fetchResult.Body.Close() //nolint:errcheck // Error on close is not critical here.

	trackPath := filepath.Join(
		s.store.MusicDir(),
		utils.SanitizeFilename(track.Artist+" - "+track.Title)+audioExtension(fetchResult.FinalURL),
	)
	tempPath := trackPath + partFileSuffix

	// Always overwrite .part files (they indicate incomplete downloads).
	f, err := os.OpenFile(filepath.Clean(tempPath), overwriteFileOptions, constants.DefaultFilePermissions)
	if err != nil {
		return "", fmt.Errorf("create temporary file: %w", err)
	}

	written, err := s.copyChunks(ctx, f, fetchResult.Body, fetchResult.TotalBytes, track.ID, states)

	closeErr := f.Close()

	if err == nil && closeErr != nil {
		err = fmt.Errorf("close temporary file: %w", closeErr)
	}

	if err == nil && written == 0 {
		err = ErrEmptyDownload
	}

	if err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warnf(ctx, "Failed to clean up partial file '%s': %v", tempPath, removeErr)
		}

		return "", err
	}

	if err = os.Rename(tempPath, trackPath); err != nil {
		_ = os.Remove(tempPath)

		return "", fmt.Errorf("finalize audio file: %w", err)
	}

	return trackPath, nil
}

func (s *ServiceImpl) copyChunks(
	ctx context.Context,
	dst io.Writer,
	src io.Reader,
	totalBytes int64,
	trackID string,
	states chan<- DownloadState,
) (int64, error) {
	var (
		chunkSize  int64 = downloadChunkSize
		speedLimit       = s.cfg.ParsedDownloadSpeedLimit
		written    int64
	)

	// Coarse pacing: one limit-sized chunk per second.
	if speedLimit > 0 {
		chunkSize = speedLimit
	}

	for {
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		default:
		}

		chunkStart := time.Now()

		n, err := io.CopyN(dst, src, chunkSize)
		written += n

		if totalBytes > 0 && n > 0 {
			s.emitProgress(states, trackID, float64(written)/float64(totalBytes))
		}

		if errors.Is(err, io.EOF) {
			return written, nil
		}

		if err != nil {
			return written, fmt.Errorf("stream audio: %w", err)
		}

		if speedLimit > 0 {
			if elapsed := time.Since(chunkStart); elapsed < time.Second {
				select {
				case <-ctx.Done():
					return written, ctx.Err()
				case <-time.After(time.Second - elapsed):
				}
			}
		}
	}
}

// fetchCover caches remote cover art for later embedding and for composite
// playlist covers. Returns the local path of the usable cover image, or empty.
func (s *ServiceImpl) fetchCover(ctx context.Context, track *store.TrackRecord) string {
	switch {
	case track.CoverLocator == "":
		return ""
	case !utils.IsRemoteURL(track.CoverLocator):
		if exists, err := utils.IsFileExist(track.CoverLocator); err == nil && exists {
			return track.CoverLocator
		}

		return ""
	}

	imageResult, err := s.fetchClient.FetchImage(ctx, track.CoverLocator)
	if err != nil {
		logger.Warnf(ctx, "Failed to fetch cover for track '%s': %v", track.ID, err)
		return ""
	}

	ext := constants.ExtensionJPG
	if strings.Contains(imageResult.MIMEType, "png") {
		ext = constants.ExtensionPNG
	}

	coverPath := filepath.Join(s.store.ArtCacheDir(), track.ID+ext)
	if err = os.WriteFile(coverPath, imageResult.Data, constants.DefaultFilePermissions); err != nil {
		logger.Warnf(ctx, "Failed to cache cover for track '%s': %v", track.ID, err)
		return ""
	}

	return coverPath
}

// fetchLyrics materializes the track's timed lyric document next to the audio
// file. Returns the lyric file path and the raw document for tag embedding.
func (s *ServiceImpl) fetchLyrics(ctx context.Context, track *store.TrackRecord, trackPath string) (string, string) {
	switch {
	case track.LyricLocator == "":
		return "", ""
	case !utils.IsRemoteURL(track.LyricLocator):
		content, err := os.ReadFile(track.LyricLocator)
		if err != nil {
			logger.Warnf(ctx, "Failed to read lyric file '%s': %v", track.LyricLocator, err)
			return "", ""
		}

		return track.LyricLocator, string(content)
	}

	content, err := s.fetchClient.FetchText(ctx, track.LyricLocator)
	if err != nil {
		logger.Warnf(ctx, "Failed to fetch lyrics for track '%s': %v", track.ID, err)
		return "", ""
	}

	lyricPath := utils.SetFileExtension(trackPath, constants.ExtensionLRC, true)
	if err = os.WriteFile(lyricPath, []byte(content), constants.DefaultFilePermissions); err != nil {
		logger.Warnf(ctx, "Failed to write lyric file '%s': %v", lyricPath, err)
		return "", content
	}

	return lyricPath, content
}

func (s *ServiceImpl) writeTags(
	ctx context.Context,
	track *store.TrackRecord,
	trackPath, coverPath, lyricsContent string,
) {
	err := s.tagProcessor.WriteTags(ctx, &WriteTagsRequest{
		TrackPath: trackPath,
		CoverPath: coverPath,
		Title:     track.Title,
		Artist:    track.Artist,
		Album:     track.Album,
		LyricsLRC: lyricsContent,
	})
	if err != nil {
		logger.Warnf(ctx, "Failed to write tags for track '%s': %v", track.ID, err)
	}
}

func (s *ServiceImpl) emitProgress(states chan<- DownloadState, trackID string, progress float64) {
	state := DownloadingState(progress)

	s.tracker.Set(trackID, state)

	select {
	case states <- state:
	default:
	}
}

func (s *ServiceImpl) emitFailure(
	ctx context.Context,
	states chan<- DownloadState,
	track *store.TrackRecord,
	err error,
) {
	reason := err.Error()
	if errors.Is(err, context.Canceled) {
		reason = "canceled"
	}

	logger.Errorf(ctx, "Download of track '%s - %s' failed: %v", track.Artist, track.Title, err)

	state := FailedState(reason)

	s.tracker.Set(track.ID, state)
	states <- state
}

func (s *ServiceImpl) failImmediately(states chan DownloadState, trackID string, reason string) {
	state := FailedState(reason)

	s.tracker.Set(trackID, state)

	states <- state
	close(states)
}

// audioExtension picks the library file extension from the final, possibly
// redirected, audio URL. Unknown extensions fall back to MP3.
func audioExtension(finalURL string) string {
	ext := strings.ToLower(filepath.Ext(stripQuery(finalURL)))
	if ext == constants.ExtensionFLAC || ext == constants.ExtensionMP3 {
		return ext
	}

	return constants.ExtensionMP3
}

func stripQuery(rawURL string) string {
	if idx := strings.IndexAny(rawURL, "?#"); idx >= 0 {
		return rawURL[:idx]
	}

	return rawURL
}
