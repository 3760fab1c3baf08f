package library

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhowden/tag"
	"github.com/google/uuid"

	"github.com/lyra-player/lyra/internal/client/fetch"
	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/store"
	"github.com/lyra-player/lyra/internal/utils"
)

// Service manages the music library: downloading remote tracks, importing
// local audio files and deleting tracks with all their artifacts.
type Service interface {
	// Download transfers a track's remote audio to the library and reports
	// progress on the returned channel. The channel always emits at least one
	// state and closes after a terminal state (downloaded or failed).
	Download(ctx context.Context, trackID string) <-chan DownloadState
	// Delete removes a track's record, cached artwork and playlist
	// memberships, plus audio and lyric files stored inside the library.
	// Imported files living outside the library are left untouched.
	Delete(ctx context.Context, trackID string) error
	// ImportLocal registers an existing audio file as a library track,
	// reading what metadata it carries.
	ImportLocal(ctx context.Context, path string) (*store.TrackRecord, error)
}

// ServiceImpl provides the default implementation of Service.
type ServiceImpl struct {
	cfg          *config.Config
	store        *store.Store
	fetchClient  fetch.Client
	tagProcessor TagProcessor
	tracker      *StateTracker

	mu     sync.Mutex
	active map[string]struct{}
}

// NewService creates a library service.
func NewService(
	cfg *config.Config,
	s *store.Store,
	fetchClient fetch.Client,
	tagProcessor TagProcessor,
	tracker *StateTracker,
) Service {
	return &ServiceImpl{
		cfg:          cfg,
		store:        s,
		fetchClient:  fetchClient,
		tagProcessor: tagProcessor,
		tracker:      tracker,
		active:       make(map[string]struct{}),
	}
}

// Delete removes the track and everything derived from it. Artifact removal
// is best-effort: a missing file never blocks the record from going away.
func (s *ServiceImpl) Delete(ctx context.Context, trackID string) error {
	track, err := s.store.GetTrack(ctx, trackID)
	if err != nil {
		return err
	}

	s.removeManagedFile(ctx, track.AudioLocator, "audio")
	s.removeManagedFile(ctx, track.LyricLocator, "lyric")

	s.removeCachedArt(ctx, trackID)

	if err = s.store.RemoveTrackEverywhere(ctx, trackID); err != nil {
		return fmt.Errorf("remove track from playlists: %w", err)
	}

	if err = s.store.DeleteTrack(ctx, trackID); err != nil {
		return err
	}

	s.tracker.Remove(trackID)

	logger.Infof(ctx, "Deleted track '%s - %s'", track.Artist, track.Title)

	return nil
}

// ImportLocal registers an audio file that already exists on disk.
// Title, artist and album come from the file's embedded tags; a file without
// tags falls back to its name. A sibling .lrc file becomes the lyric locator.
func (s *ServiceImpl) ImportLocal(ctx context.Context, path string) (*store.TrackRecord, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve audio path: %w", err)
	}

	exists, err := utils.IsFileExist(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat audio path: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("'%s': %w", absPath, ErrAudioFileMissing)
	}

	track := &store.TrackRecord{
		ID:           uuid.NewString(),
		Title:        strings.TrimSuffix(filepath.Base(absPath), filepath.Ext(absPath)),
		Artist:       "Unknown Artist",
		Platform:     store.PlatformLocal,
		AudioLocator: absPath,
	}

	s.fillFromEmbeddedTags(ctx, track, absPath)

	lyricPath := utils.SetFileExtension(absPath, constants.ExtensionLRC, true)
	if hasLyrics, lyricsErr := utils.IsFileExist(lyricPath); lyricsErr == nil && hasLyrics {
		track.LyricLocator = lyricPath
	}

	if err = s.store.PutTrack(ctx, track); err != nil {
		return nil, err
	}

	s.tracker.Set(track.ID, DownloadedState())

	logger.Infof(ctx, "Imported track '%s - %s' from '%s'", track.Artist, track.Title, absPath)

	return track, nil
}

func (s *ServiceImpl) fillFromEmbeddedTags(ctx context.Context, track *store.TrackRecord, audioPath string) {
	file, err := os.Open(audioPath)
	if err != nil {
		logger.Warnf(ctx, "Failed to open '%s' for tag reading: %v", audioPath, err)
		return
	}

	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		logger.Debugf(ctx, "No readable tags in '%s': %v", audioPath, err)
		return
	}

	if title := strings.TrimSpace(meta.Title()); title != "" {
		track.Title = title
	}

	if artist := strings.TrimSpace(meta.Artist()); artist != "" {
		track.Artist = artist
	}

	track.Album = strings.TrimSpace(meta.Album())
}

// removeManagedFile deletes a local file, but only when it lives inside the
// library's own music directory. Files imported from elsewhere on disk belong
// to the user and survive track deletion.
func (s *ServiceImpl) removeManagedFile(ctx context.Context, locator, kind string) {
	if locator == "" || utils.IsRemoteURL(locator) {
		return
	}

	if !isUnderDir(locator, s.store.MusicDir()) {
		logger.Debugf(ctx, "Keeping %s file '%s': outside the library music directory", kind, locator)
		return
	}

	if err := os.Remove(locator); err != nil && !os.IsNotExist(err) {
		logger.Warnf(ctx, "Failed to remove %s file '%s': %v", kind, locator, err)
	}
}

// isUnderDir reports whether path points inside dir.
func isUnderDir(path, dir string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}

	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *ServiceImpl) removeCachedArt(ctx context.Context, trackID string) {
	for _, ext := range []string{constants.ExtensionJPG, constants.ExtensionPNG} {
		cached := filepath.Join(s.store.ArtCacheDir(), trackID+ext)
		if err := os.Remove(cached); err != nil && !os.IsNotExist(err) {
			logger.Warnf(ctx, "Failed to remove cached artwork '%s': %v", cached, err)
		}
	}
}

func (s *ServiceImpl) markActive(trackID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, running := s.active[trackID]; running {
		return false
	}

	s.active[trackID] = struct{}{}

	return true
}

func (s *ServiceImpl) markIdle(trackID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.active, trackID)
}
