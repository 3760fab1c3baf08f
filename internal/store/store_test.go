package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	base := t.TempDir()

	s, err := store.New(&config.Config{
		LibraryRoot: filepath.Join(base, "library"),
		CachePath:   filepath.Join(base, "cache"),
	})
	require.NoError(t, err)

	return s
}

func TestStore_PutGetTrack(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	track := &store.TrackRecord{
		ID:           "track-1",
		Title:        "Nightcall",
		Artist:       "Kavinsky",
		Album:        "OutRun",
		Platform:     "example",
		AudioLocator: "https://cdn.example.com/audio/track-1.mp3",
	}

	require.NoError(t, s.PutTrack(ctx, track))

	stored, err := s.GetTrack(ctx, "track-1")
	require.NoError(t, err)
	assert.Equal(t, track, stored)
}

func TestStore_PutTrack_ReplacesExisting(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutTrack(ctx, &store.TrackRecord{
		ID:       "track-1",
		Title:    "Old Title",
		Artist:   "Someone",
		Platform: "example",
	}))
	require.NoError(t, s.PutTrack(ctx, &store.TrackRecord{
		ID:       "track-1",
		Title:    "New Title",
		Artist:   "Someone",
		Platform: store.PlatformLocal,
	}))

	stored, err := s.GetTrack(ctx, "track-1")
	require.NoError(t, err)
	assert.Equal(t, "New Title", stored.Title)
	assert.Equal(t, store.PlatformLocal, stored.Platform)

	tracks, err := s.ListTracks(ctx)
	require.NoError(t, err)
	assert.Len(t, tracks, 1)
}

func TestStore_GetTrack_NotFound(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.GetTrack(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrTrackNotFound)
}

func TestStore_ListTracks_SortedByTitle(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	for _, track := range []*store.TrackRecord{
		{ID: "1", Title: "zebra", Artist: "A", Platform: "example"},
		{ID: "2", Title: "Alpha", Artist: "B", Platform: "example"},
		{ID: "3", Title: "mango", Artist: "C", Platform: "example"},
	} {
		require.NoError(t, s.PutTrack(ctx, track))
	}

	tracks, err := s.ListTracks(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 3)
	assert.Equal(t, "Alpha", tracks[0].Title)
	assert.Equal(t, "mango", tracks[1].Title)
	assert.Equal(t, "zebra", tracks[2].Title)
}

func TestStore_ListTracks_SkipsCorruptRecords(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	libraryRoot := filepath.Join(base, "library")

	s, err := store.New(&config.Config{
		LibraryRoot: libraryRoot,
		CachePath:   filepath.Join(base, "cache"),
	})
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, s.PutTrack(ctx, &store.TrackRecord{
		ID:       "good",
		Title:    "Readable",
		Artist:   "A",
		Platform: "example",
	}))

	corruptPath := filepath.Join(libraryRoot, "tracks", "bad.json")
	require.NoError(t, os.WriteFile(corruptPath, []byte("{not json"), 0o644))

	tracks, err := s.ListTracks(ctx)
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "good", tracks[0].ID)
}

func TestStore_DeleteTrack_IsIdempotent(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutTrack(ctx, &store.TrackRecord{
		ID:       "track-1",
		Title:    "Doomed",
		Artist:   "A",
		Platform: "example",
	}))

	require.NoError(t, s.DeleteTrack(ctx, "track-1"))
	require.NoError(t, s.DeleteTrack(ctx, "track-1"))

	_, err := s.GetTrack(ctx, "track-1")
	assert.ErrorIs(t, err, store.ErrTrackNotFound)
}
