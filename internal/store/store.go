package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
)

const (
	tracksDirName    = "tracks"
	playlistsDirName = "playlists"
	musicDirName     = "music"
	coversDirName    = "covers"
	artCacheDirName  = "art"
)

// Store persists track records, playlists and their artifacts under the
// library root. It is the only writer of the on-disk layout; other components
// hand it records to commit and read back what it returns.
type Store struct {
	root      string
	cachePath string
}

// New creates a Store rooted at the configured library path,
// creating the directory layout when it does not exist yet.
func New(cfg *config.Config) (*Store, error) {
	s := &Store{
		root:      cfg.LibraryRoot,
		cachePath: cfg.CachePath,
	}

	for _, dir := range []string{
		s.tracksDir(),
		s.playlistsDir(),
		s.MusicDir(),
		s.coversDir(),
		s.ArtCacheDir(),
	} {
		if err := os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
			return nil, fmt.Errorf("create directory '%s': %w", dir, err)
		}
	}

	return s, nil
}

func (s *Store) tracksDir() string {
	return filepath.Join(s.root, tracksDirName)
}

func (s *Store) playlistsDir() string {
	return filepath.Join(s.root, playlistsDirName)
}

// MusicDir is where downloaded and imported audio files (and their lyric
// siblings) live.
func (s *Store) MusicDir() string {
	return filepath.Join(s.root, musicDirName)
}

func (s *Store) coversDir() string {
	return filepath.Join(s.root, coversDirName)
}

// ArtCacheDir is where fetched remote cover art is cached for reuse.
func (s *Store) ArtCacheDir() string {
	return filepath.Join(s.cachePath, artCacheDirName)
}

func (s *Store) trackPath(id string) string {
	return filepath.Join(s.tracksDir(), id+constants.ExtensionJSON)
}

// ListTracks returns every readable track record sorted by title.
// Unreadable or malformed record files are skipped with a warning
// so one corrupt entry cannot hide the rest of the library.
func (s *Store) ListTracks(ctx context.Context) ([]*TrackRecord, error) {
	entries, err := os.ReadDir(s.tracksDir())
	if err != nil {
		return nil, fmt.Errorf("read tracks directory: %w", err)
	}

	tracks := make([]*TrackRecord, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.ExtensionJSON) {
			continue
		}

		path := filepath.Join(s.tracksDir(), entry.Name())

		track, err := readTrackFile(path)
		if err != nil {
			logger.Warnf(ctx, "Skipping unreadable track record '%s': %v", path, err)
			continue
		}

		tracks = append(tracks, track)
	}

	sort.Slice(tracks, func(i, j int) bool {
		return strings.ToLower(tracks[i].Title) < strings.ToLower(tracks[j].Title)
	})

	return tracks, nil
}

// GetTrack returns the record with the given identifier.
func (s *Store) GetTrack(_ context.Context, id string) (*TrackRecord, error) {
	track, err := readTrackFile(s.trackPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("track '%s': %w", id, ErrTrackNotFound)
		}

		return nil, err
	}

	return track, nil
}

// PutTrack writes the record to its identifier-scoped file,
// replacing any previous version.
func (s *Store) PutTrack(_ context.Context, track *TrackRecord) error {
	data, err := json.MarshalIndent(track, "", "  ")
	if err != nil {
		return fmt.Errorf("encode track '%s': %w", track.ID, err)
	}

	if err = os.WriteFile(s.trackPath(track.ID), data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write track '%s': %w", track.ID, err)
	}

	return nil
}

// DeleteTrack removes the record file. Removing an absent record is not an
// error, so delete flows stay idempotent.
func (s *Store) DeleteTrack(_ context.Context, id string) error {
	if err := os.Remove(s.trackPath(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete track '%s': %w", id, err)
	}

	return nil
}

func readTrackFile(path string) (*TrackRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track record: %w", err)
	}

	var track TrackRecord
	if err = json.Unmarshal(data, &track); err != nil {
		return nil, fmt.Errorf("decode track record: %w", err)
	}

	if track.ID == "" {
		return nil, errors.New("track record has no identifier")
	}

	return &track, nil
}
