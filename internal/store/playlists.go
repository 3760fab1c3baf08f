package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
)

const orderFilename = "order" + constants.ExtensionJSON

func (s *Store) playlistPath(id string) string {
	return filepath.Join(s.playlistsDir(), id+constants.ExtensionJSON)
}

func (s *Store) orderPath() string {
	return filepath.Join(s.playlistsDir(), orderFilename)
}

// ListPlaylists returns every playlist in the user-defined display order.
// Playlists absent from the order artifact (or all of them when the artifact
// is missing or unreadable) are sorted alphabetically by name.
func (s *Store) ListPlaylists(ctx context.Context) ([]*Playlist, error) {
	entries, err := os.ReadDir(s.playlistsDir())
	if err != nil {
		return nil, fmt.Errorf("read playlists directory: %w", err)
	}

	playlists := make([]*Playlist, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() ||
			!strings.HasSuffix(entry.Name(), constants.ExtensionJSON) ||
			entry.Name() == orderFilename {
			continue
		}

		path := filepath.Join(s.playlistsDir(), entry.Name())

		playlist, err := readPlaylistFile(path)
		if err != nil {
			logger.Warnf(ctx, "Skipping unreadable playlist '%s': %v", path, err)
			continue
		}

		playlists = append(playlists, playlist)
	}

	s.sortPlaylists(ctx, playlists)

	return playlists, nil
}

func (s *Store) sortPlaylists(ctx context.Context, playlists []*Playlist) {
	rank := make(map[string]int)

	if data, err := os.ReadFile(s.orderPath()); err == nil {
		var ordered []string
		if err = json.Unmarshal(data, &ordered); err != nil {
			logger.Warnf(ctx, "Ignoring malformed playlist order artifact: %v", err)
		} else {
			for i, id := range ordered {
				rank[id] = i
			}
		}
	}

	sort.SliceStable(playlists, func(i, j int) bool {
		ri, iOrdered := rank[playlists[i].ID]
		rj, jOrdered := rank[playlists[j].ID]

		switch {
		case iOrdered && jOrdered:
			return ri < rj
		case iOrdered:
			return true
		case jOrdered:
			return false
		default:
			return strings.ToLower(playlists[i].Name) < strings.ToLower(playlists[j].Name)
		}
	})
}

// GetPlaylist returns the playlist with the given identifier.
func (s *Store) GetPlaylist(_ context.Context, id string) (*Playlist, error) {
	playlist, err := readPlaylistFile(s.playlistPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("playlist '%s': %w", id, ErrPlaylistNotFound)
		}

		return nil, err
	}

	return playlist, nil
}

// CreatePlaylist creates a playlist with a generated identifier.
// Duplicate track identifiers among the initial members are dropped.
func (s *Store) CreatePlaylist(ctx context.Context, name string, trackIDs []string) (*Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	playlist := &Playlist{
		ID:       uuid.NewString(),
		Name:     name,
		TrackIDs: dedupeIDs(nil, trackIDs),
	}

	s.regeneratePlaylistCover(ctx, playlist)

	if err := s.writePlaylist(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// RenamePlaylist changes the display name. Membership and cover are untouched.
func (s *Store) RenamePlaylist(ctx context.Context, id, name string) (*Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	playlist, err := s.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	playlist.Name = name

	if err = s.writePlaylist(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// DeletePlaylist removes the playlist, its generated cover
// and its entry in the order artifact. Member tracks are untouched.
func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	if err := os.Remove(s.playlistPath(id)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("playlist '%s': %w", id, ErrPlaylistNotFound)
		}

		return fmt.Errorf("delete playlist '%s': %w", id, err)
	}

	coverPath := s.playlistCoverPath(id)
	if err := os.Remove(coverPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf(ctx, "Failed to remove playlist cover '%s': %v", coverPath, err)
	}

	s.removeFromOrder(ctx, id)

	return nil
}

// AddTracks appends track identifiers to the playlist, skipping any that are
// already members, and regenerates the composite cover.
func (s *Store) AddTracks(ctx context.Context, id string, trackIDs []string) (*Playlist, error) {
	playlist, err := s.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	playlist.TrackIDs = dedupeIDs(playlist.TrackIDs, trackIDs)

	s.regeneratePlaylistCover(ctx, playlist)

	if err = s.writePlaylist(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// RemoveTrack removes one track identifier from the playlist, if present,
// and regenerates the composite cover.
func (s *Store) RemoveTrack(ctx context.Context, id, trackID string) (*Playlist, error) {
	playlist, err := s.GetPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	playlist.TrackIDs = slices.DeleteFunc(playlist.TrackIDs, func(memberID string) bool {
		return memberID == trackID
	})

	s.regeneratePlaylistCover(ctx, playlist)

	if err = s.writePlaylist(playlist); err != nil {
		return nil, err
	}

	return playlist, nil
}

// RemoveTrackEverywhere strips the track from every playlist that contains it.
// Used by track deletion so playlists never reference a missing record.
func (s *Store) RemoveTrackEverywhere(ctx context.Context, trackID string) error {
	playlists, err := s.ListPlaylists(ctx)
	if err != nil {
		return err
	}

	for _, playlist := range playlists {
		if !slices.Contains(playlist.TrackIDs, trackID) {
			continue
		}

		if _, err = s.RemoveTrack(ctx, playlist.ID, trackID); err != nil {
			return err
		}
	}

	return nil
}

// ReorderPlaylists replaces the whole order artifact with the given sequence.
// The write is atomic (temp file plus rename), so the last writer wins and a
// crash never leaves a truncated artifact behind.
func (s *Store) ReorderPlaylists(_ context.Context, orderedIDs []string) error {
	data, err := json.MarshalIndent(orderedIDs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode playlist order: %w", err)
	}

	tempPath := s.orderPath() + ".tmp"

	if err = os.WriteFile(tempPath, data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write playlist order: %w", err)
	}

	if err = os.Rename(tempPath, s.orderPath()); err != nil {
		return fmt.Errorf("replace playlist order: %w", err)
	}

	return nil
}

func (s *Store) removeFromOrder(ctx context.Context, id string) {
	data, err := os.ReadFile(s.orderPath())
	if err != nil {
		return
	}

	var ordered []string
	if err = json.Unmarshal(data, &ordered); err != nil {
		return
	}

	trimmed := slices.DeleteFunc(ordered, func(orderedID string) bool {
		return orderedID == id
	})

	if len(trimmed) == len(ordered) {
		return
	}

	if err = s.ReorderPlaylists(ctx, trimmed); err != nil {
		logger.Warnf(ctx, "Failed to update playlist order artifact: %v", err)
	}
}

func (s *Store) writePlaylist(playlist *Playlist) error {
	data, err := json.MarshalIndent(playlist, "", "  ")
	if err != nil {
		return fmt.Errorf("encode playlist '%s': %w", playlist.ID, err)
	}

	if err = os.WriteFile(s.playlistPath(playlist.ID), data, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write playlist '%s': %w", playlist.ID, err)
	}

	return nil
}

func readPlaylistFile(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}

	var playlist Playlist
	if err = json.Unmarshal(data, &playlist); err != nil {
		return nil, fmt.Errorf("decode playlist: %w", err)
	}

	if playlist.ID == "" {
		return nil, errors.New("playlist has no identifier")
	}

	return &playlist, nil
}

func dedupeIDs(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	result := make([]string, 0, len(existing)+len(incoming))

	for _, id := range existing {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		result = append(result, id)
	}

	for _, id := range incoming {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		result = append(result, id)
	}

	return result
}
