package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
)

const tabPadding = 2

// ExecuteListCommand prints the library's tracks, or its playlists when
// requested, as an aligned table on stdout.
func ExecuteListCommand(ctx context.Context, cfg *config.Config, showPlaylists bool) {
	env := newEnvironment(ctx, cfg)

	if showPlaylists {
		listPlaylists(ctx, env)
		return
	}

	listTracks(ctx, env)
}

func listTracks(ctx context.Context, env *environment) {
	tracks, err := env.store.ListTracks(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to list tracks: %v", err)
	}

	if len(tracks) == 0 {
		fmt.Println("The library is empty.")
		return
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(writer, "ID\tARTIST\tTITLE\tALBUM\tSTATE")

	for _, track := range tracks {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			track.ID,
			track.Artist,
			track.Title,
			track.Album,
			env.tracker.Get(track.ID))
	}

	_ = writer.Flush()
}

func listPlaylists(ctx context.Context, env *environment) {
	playlists, err := env.store.ListPlaylists(ctx)
	if err != nil {
		logger.Fatalf(ctx, "Failed to list playlists: %v", err)
	}

	if len(playlists) == 0 {
		fmt.Println("There are no playlists.")
		return
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tTRACKS\tMEMBERS")

	for _, playlist := range playlists {
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\n",
			playlist.ID,
			playlist.Name,
			len(playlist.TrackIDs),
			strings.Join(playlist.TrackIDs, ", "))
	}

	_ = writer.Flush()
}
