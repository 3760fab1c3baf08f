package store_test

import (
	"context"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/store"
)

func decodeCover(t *testing.T, path string) image.Image {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)

	defer file.Close()

	img, err := jpeg.Decode(file)
	require.NoError(t, err)

	return img
}

func TestStore_PlaylistCover_PlaceholderCells(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	// No track records exist, so every cell degrades to a placeholder.
	playlist, err := s.CreatePlaylist(ctx, "Mix", []string{"a", "b", "c", "d"})
	require.NoError(t, err)

	require.NotEmpty(t, playlist.CoverLocator)

	img := decodeCover(t, playlist.CoverLocator)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestStore_PlaylistCover_SingleMemberUsesFullCanvas(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	playlist, err := s.CreatePlaylist(ctx, "Solo", []string{"only"})
	require.NoError(t, err)

	require.NotEmpty(t, playlist.CoverLocator)

	img := decodeCover(t, playlist.CoverLocator)
	assert.Equal(t, 600, img.Bounds().Dx())
}

func TestStore_PlaylistCover_UsesCachedArt(t *testing.T) {
	t.Parallel()

	base := t.TempDir()

	s, err := store.New(&config.Config{
		LibraryRoot: filepath.Join(base, "library"),
		CachePath:   filepath.Join(base, "cache"),
	})
	require.NoError(t, err)

	ctx := context.Background()

	// Seed the art cache with a small PNG for one member.
	artPath := filepath.Join(s.ArtCacheDir(), "a.png")

	file, err := os.Create(artPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, file.Close())

	playlist, err := s.CreatePlaylist(ctx, "Cached", []string{"a", "b"})
	require.NoError(t, err)

	require.NotEmpty(t, playlist.CoverLocator)
	decodeCover(t, playlist.CoverLocator)
}

func TestStore_PlaylistCover_RemovedWhenEmpty(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()

	playlist, err := s.CreatePlaylist(ctx, "Shrinking", []string{"a"})
	require.NoError(t, err)
	require.NotEmpty(t, playlist.CoverLocator)

	coverPath := playlist.CoverLocator

	updated, err := s.RemoveTrack(ctx, playlist.ID, "a")
	require.NoError(t, err)
	assert.Empty(t, updated.CoverLocator)

	_, err = os.Stat(coverPath)
	assert.True(t, os.IsNotExist(err))
}
