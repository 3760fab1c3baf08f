package playback

import (
	"context"
	"sync"
	"time"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/lyrics"
	"github.com/lyra-player/lyra/internal/store"
)

// SyncState is one sampled snapshot of playback and the lyric line that
// matches it. Index is -1 before the first line has started and when the
// track has no lyrics.
type SyncState struct {
	Track    *store.TrackRecord
	Lines    []lyrics.Line
	Index    int
	Position time.Duration
	Duration time.Duration
}

// Syncer periodically samples the player and keeps the current lyric line
// index in step with playback. Lyric documents are resolved once per track
// change, not per tick.
type Syncer struct {
	cfg      *config.Config
	player   Player
	resolver LyricsResolver

	mu           sync.RWMutex
	state        SyncState
	loadedLyrics string
}

// NewSyncer creates a synchronizer for the given player.
func NewSyncer(cfg *config.Config, player Player, resolver LyricsResolver) *Syncer {
	return &Syncer{
		cfg:      cfg,
		player:   player,
		resolver: resolver,
		state:    SyncState{Index: -1},
	}
}

// Run samples the player at the configured interval until the context is
// canceled.
func (s *Syncer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ParsedSyncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample(ctx)
		}
	}
}

// State returns the latest sampled snapshot.
func (s *Syncer) State() SyncState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

func (s *Syncer) sample(ctx context.Context) {
	track := s.player.Current()

	s.mu.Lock()
	defer s.mu.Unlock()

	if track == nil {
		s.state = SyncState{Index: -1}
		s.loadedLyrics = ""

		return
	}

	if s.state.Track == nil || s.state.Track.ID != track.ID || s.loadedLyrics != track.LyricLocator {
		lines, err := s.resolver.Resolve(ctx, track.LyricLocator)
		if err != nil {
			logger.Warnf(ctx, "Failed to resolve lyrics for track '%s': %v", track.ID, err)

			lines = nil
		}

		s.state.Lines = lines
		s.loadedLyrics = track.LyricLocator
	}

	position := s.player.Position()

	s.state.Track = track
	s.state.Position = position
	s.state.Duration = s.player.Duration()
	s.state.Index = lyrics.IndexAt(s.state.Lines, position.Milliseconds())
}
