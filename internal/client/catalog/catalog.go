package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/machinebox/graphql"

	"github.com/lyra-player/lyra/internal/config"
	http_transport "github.com/lyra-player/lyra/internal/transport/http"
	"github.com/lyra-player/lyra/internal/utils"
)

// Client defines the interface for resolving track descriptors
// through the remote catalog service.
type Client interface {
	// GetTrack retrieves the descriptor for a single track ID.
	GetTrack(ctx context.Context, trackID string) (*Track, error)
}

// ClientImpl implements the Client interface over the catalog's GraphQL endpoint.
type ClientImpl struct {
	// graphQLClient is the GraphQL client for making queries.
	graphQLClient *graphql.Client
}

// Track is a descriptor as served by the catalog. Locators may be empty
// when the catalog has no corresponding resource for the track.
type Track struct {
	// ID is the catalog's unique identifier for the track.
	ID string `json:"id"`
	// Title is the track title.
	Title string `json:"title"`
	// Artist is the performing artist.
	Artist string `json:"artist"`
	// Album is the optional album title.
	Album string `json:"album"`
	// Platform is the source platform tag.
	Platform string `json:"platform"`
	// AudioURL is the remote audio locator.
	AudioURL string `json:"audioUrl"`
	// CoverURL is the optional remote cover art locator.
	CoverURL string `json:"coverUrl"`
	// LyricsURL is the optional remote lyric file locator.
	LyricsURL string `json:"lyricsUrl"`
}

// ErrTrackNotFound indicates that the catalog has no track for the given ID.
var ErrTrackNotFound = errors.New("track not found in catalog")

// NewClient creates a catalog client against the configured GraphQL endpoint.
func NewClient(cfg *config.Config) Client {
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: cfg.ParsedHTTPTimeout,
	}

	return &ClientImpl{
		graphQLClient: graphql.NewClient(cfg.CatalogURL, graphql.WithHTTPClient(httpClient)),
	}
}

// GetTrack retrieves the descriptor for a single track ID.
func (c *ClientImpl) GetTrack(ctx context.Context, trackID string) (*Track, error) {
	graphqlRequest := graphql.NewRequest(`
		query getTrack($id: ID!) {
			track(id: $id) {
				id
				title
				artist
				album
				platform
				audioUrl
				coverUrl
				lyricsUrl
			}
		}
	`)

	graphqlRequest.Var("id", trackID)

	var graphQLResponse struct {
		Track *Track `json:"track"`
	}

	if err := c.graphQLClient.Run(ctx, graphqlRequest, &graphQLResponse); err != nil {
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}

	if graphQLResponse.Track == nil || graphQLResponse.Track.ID == "" {
		return nil, fmt.Errorf("%w: '%s'", ErrTrackNotFound, trackID)
	}

	return graphQLResponse.Track, nil
}
