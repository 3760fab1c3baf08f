package playback

//go:generate $MOCKGEN -source=player.go -destination=mocks/player_mock.go

import (
	"time"

	"github.com/lyra-player/lyra/internal/store"
)

// Player exposes what the synchronizer needs from an audio player:
// which track is loaded and where playback currently stands.
type Player interface {
	// Current returns the loaded track, or nil when the player is idle.
	Current() *store.TrackRecord
	// Position is the elapsed playback time of the current track.
	Position() time.Duration
	// Duration is the total length of the current track.
	Duration() time.Duration
}
