package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyra-player/lyra/internal/config"
)

func newCatalogTestServer(t *testing.T, track *Track) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Variables struct {
				ID string `json:"id"`
			} `json:"variables"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))

		response := map[string]any{
			"data": map[string]any{"track": nil},
		}

		if track != nil && request.Variables.ID == track.ID {
			response["data"] = map[string]any{"track": track}
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

// TestGetTrack tests resolving a known track ID.
func TestGetTrack(t *testing.T) {
	t.Parallel()

	expected := &Track{
		ID:        "trk-42",
		Title:     "Nightcall",
		Artist:    "Kavinsky",
		Album:     "OutRun",
		Platform:  "demo",
		AudioURL:  "https://cdn.example.com/trk-42.mp3",
		CoverURL:  "https://cdn.example.com/trk-42.jpg",
		LyricsURL: "https://cdn.example.com/trk-42.lrc",
	}

	server := newCatalogTestServer(t, expected)
	defer server.Close()

	//nolint:exhaustruct // Only fields relevant to the client are needed.
	client := NewClient(&config.Config{
		CatalogURL:        server.URL,
		ParsedHTTPTimeout: 5 * time.Second,
	})

	track, err := client.GetTrack(context.Background(), "trk-42")
	require.NoError(t, err)
	assert.Equal(t, expected, track)
}

// TestGetTrack_NotFound tests the missing-track error path.
func TestGetTrack_NotFound(t *testing.T) {
	t.Parallel()

	server := newCatalogTestServer(t, nil)
	defer server.Close()

	//nolint:exhaustruct // Only fields relevant to the client are needed.
	client := NewClient(&config.Config{
		CatalogURL:        server.URL,
		ParsedHTTPTimeout: 5 * time.Second,
	})

	track, err := client.GetTrack(context.Background(), "missing")
	assert.Nil(t, track)
	assert.ErrorIs(t, err, ErrTrackNotFound)
}
