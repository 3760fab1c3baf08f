package store

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
	xdraw "golang.org/x/image/draw"

	// Registered for image.Decode so PNG cover art is accepted alongside JPEG.
	_ "image/png"

	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/utils"
)

const (
	coverSize     = 600
	coverGridSide = 2
	coverCells    = coverGridSide * coverGridSide
	jpegQuality   = 90
)

// placeholderPalette colors the cells of tracks without any resolvable artwork.
var placeholderPalette = []color.RGBA{
	{R: 0x35, G: 0x46, B: 0x5E, A: 0xFF},
	{R: 0x4A, G: 0x5D, B: 0x7A, A: 0xFF},
	{R: 0x2B, G: 0x3A, B: 0x4F, A: 0xFF},
	{R: 0x5C, G: 0x6F, B: 0x8C, A: 0xFF},
}

func (s *Store) playlistCoverPath(id string) string {
	return filepath.Join(s.coversDir(), id+constants.ExtensionJPG)
}

// regeneratePlaylistCover rebuilds the composite cover from the playlist's
// first members and updates the playlist's cover locator. Generation is
// best-effort: a cell whose artwork cannot be resolved degrades to a
// placeholder color, and a failed write leaves the previous cover in place.
func (s *Store) regeneratePlaylistCover(ctx context.Context, playlist *Playlist) {
	if len(playlist.TrackIDs) == 0 {
		coverPath := s.playlistCoverPath(playlist.ID)
		if err := os.Remove(coverPath); err != nil && !os.IsNotExist(err) {
			logger.Warnf(ctx, "Failed to remove stale playlist cover '%s': %v", coverPath, err)
		}

		playlist.CoverLocator = ""

		return
	}

	canvas := image.NewRGBA(image.Rect(0, 0, coverSize, coverSize))

	if len(playlist.TrackIDs) == 1 {
		s.drawCell(ctx, canvas, canvas.Bounds(), playlist.TrackIDs[0], 0)
	} else {
		cellSize := coverSize / coverGridSide

		for cell := range coverCells {
			x := (cell % coverGridSide) * cellSize
			y := (cell / coverGridSide) * cellSize
			bounds := image.Rect(x, y, x+cellSize, y+cellSize)

			if cell < len(playlist.TrackIDs) {
				s.drawCell(ctx, canvas, bounds, playlist.TrackIDs[cell], cell)
			} else {
				fillCell(canvas, bounds, cell)
			}
		}
	}

	coverPath := s.playlistCoverPath(playlist.ID)
	if err := writeJPEG(coverPath, canvas); err != nil {
		logger.Warnf(ctx, "Failed to write playlist cover '%s': %v", coverPath, err)
		return
	}

	playlist.CoverLocator = coverPath
}

func (s *Store) drawCell(ctx context.Context, canvas *image.RGBA, bounds image.Rectangle, trackID string, cell int) {
	art, err := s.trackArtwork(ctx, trackID)
	if err != nil {
		logger.Debugf(ctx, "No artwork for track '%s', using placeholder: %v", trackID, err)
		fillCell(canvas, bounds, cell)

		return
	}

	xdraw.ApproxBiLinear.Scale(canvas, bounds, art, art.Bounds(), xdraw.Src, nil)
}

// trackArtwork resolves cover art for one track: a cached fetched cover first,
// then artwork embedded in the local audio file.
func (s *Store) trackArtwork(ctx context.Context, trackID string) (image.Image, error) {
	for _, ext := range []string{constants.ExtensionJPG, constants.ExtensionPNG} {
		cached := filepath.Join(s.ArtCacheDir(), trackID+ext)
		if exists, err := utils.IsFileExist(cached); err != nil || !exists {
			continue
		}

		data, err := os.ReadFile(cached)
		if err != nil {
			continue
		}

		img, _, err := image.Decode(bytes.NewReader(data))
		if err == nil {
			return img, nil
		}
	}

	track, err := s.GetTrack(ctx, trackID)
	if err != nil {
		return nil, err
	}

	if track.AudioLocator == "" || utils.IsRemoteURL(track.AudioLocator) {
		return nil, fmt.Errorf("track '%s' has no local audio to read artwork from", trackID)
	}

	return embeddedArtwork(track.AudioLocator)
}

func embeddedArtwork(audioPath string) (image.Image, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("read audio tags: %w", err)
	}

	picture := meta.Picture()
	if picture == nil || len(picture.Data) == 0 {
		return nil, fmt.Errorf("audio file '%s' has no embedded artwork", audioPath)
	}

	img, _, err := image.Decode(bytes.NewReader(picture.Data))
	if err != nil {
		return nil, fmt.Errorf("decode embedded artwork: %w", err)
	}

	return img, nil
}

func fillCell(canvas *image.RGBA, bounds image.Rectangle, cell int) {
	fill := placeholderPalette[cell%len(placeholderPalette)]

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			canvas.SetRGBA(x, y, fill)
		}
	}
}

func writeJPEG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = jpeg.Encode(file, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
