package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/lyrics"
	"github.com/lyra-player/lyra/internal/playback"
	"github.com/lyra-player/lyra/internal/store"
	"github.com/lyra-player/lyra/internal/utils"
)

// followTailGrace keeps the follow loop alive a little past the last line.
const followTailGrace = 3 * time.Second

// clockPlayer simulates playback on the wall clock, which is enough to drive
// the lyric synchronizer from the terminal.
type clockPlayer struct {
	track    *store.TrackRecord
	started  time.Time
	duration time.Duration
}

func (p *clockPlayer) Current() *store.TrackRecord { return p.track }

func (p *clockPlayer) Position() time.Duration { return time.Since(p.started) }

func (p *clockPlayer) Duration() time.Duration { return p.duration }

// ExecuteLyricsCommand prints a track's timed lyrics. In follow mode the lines
// appear in real time, paced by the playback synchronizer.
func ExecuteLyricsCommand(ctx context.Context, cfg *config.Config, trackID string, follow bool) {
	env := newEnvironment(ctx, cfg)

	track, err := env.store.GetTrack(ctx, trackID)
	if err != nil {
		logger.Fatalf(ctx, "Failed to load track '%s': %v", trackID, err)
	}

	resolver, err := playback.NewLyricsResolver(env.fetchClient)
	if err != nil {
		logger.Fatalf(ctx, "Failed to create lyrics resolver: %v", err)
	}

	lines, err := resolver.Resolve(ctx, track.LyricLocator)
	if err != nil {
		logger.Fatalf(ctx, "Failed to resolve lyrics for track '%s': %v", trackID, err)
	}

	if len(lines) == 0 {
		fmt.Printf("'%s - %s' has no timed lyrics.\n", track.Artist, track.Title)
		return
	}

	if !follow {
		fmt.Println(strings.Join(utils.Map(lines, formatLine), "\n"))

		return
	}

	followLyrics(ctx, env.cfg, resolver, track, lines)
}

// followLyrics replays the lyric timeline against the wall clock, printing
// each line the moment it becomes active.
func followLyrics(
	ctx context.Context,
	cfg *config.Config,
	resolver playback.LyricsResolver,
	track *store.TrackRecord,
	lines []lyrics.Line,
) {
	lastLineAt := time.Duration(lines[len(lines)-1].Time) * time.Millisecond
	player := &clockPlayer{
		track:    track,
		started:  time.Now(),
		duration: lastLineAt + followTailGrace,
	}

	syncer := playback.NewSyncer(cfg, player, resolver)

	syncCtx, stopSync := context.WithCancel(ctx)
	defer stopSync()

	go syncer.Run(syncCtx)

	fmt.Printf("%s - %s\n\n", track.Artist, track.Title)

	ticker := time.NewTicker(cfg.ParsedSyncInterval)
	defer ticker.Stop()

	printed := -1

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		state := syncer.State()

		// Catch up in case several lines passed between samples.
		for index := printed + 1; index <= state.Index && index < len(state.Lines); index++ {
			fmt.Println(formatLine(state.Lines[index]))

			printed = index
		}

		if player.Position() > player.Duration() {
			return
		}
	}
}

func formatLine(line lyrics.Line) string {
	stamp := time.Duration(line.Time) * time.Millisecond
	formatted := fmt.Sprintf("[%02d:%05.2f] %s",
		int(stamp.Minutes()),
		stamp.Seconds()-float64(int(stamp.Minutes()))*60, //nolint:mnd // Seconds within the minute.
		line.Text)

	if line.Translation != "" {
		formatted += "\n           " + line.Translation
	}

	return formatted
}
