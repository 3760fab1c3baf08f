package playback

//go:generate $MOCKGEN -source=resolver.go -destination=mocks/resolver_mock.go

import (
	"context"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/lyra-player/lyra/internal/client/fetch"
	"github.com/lyra-player/lyra/internal/lyrics"
	"github.com/lyra-player/lyra/internal/utils"
)

const resolverCacheSize = 128

// LyricsResolver turns a lyric locator into parsed, timed lines.
type LyricsResolver interface {
	Resolve(ctx context.Context, locator string) ([]lyrics.Line, error)
}

// LyricsResolverImpl resolves local and remote lyric documents and caches
// parse results, so switching back to a recently played track is free.
type LyricsResolverImpl struct {
	fetchClient fetch.Client
	cache       *lru.Cache[string, []lyrics.Line]
}

// NewLyricsResolver creates a resolver backed by an LRU parse cache.
func NewLyricsResolver(fetchClient fetch.Client) (*LyricsResolverImpl, error) {
	cache, err := lru.New[string, []lyrics.Line](resolverCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create lyrics cache: %w", err)
	}

	return &LyricsResolverImpl{
		fetchClient: fetchClient,
		cache:       cache,
	}, nil
}

// Resolve loads and parses the lyric document behind the locator.
// An empty locator resolves to no lines, which callers treat as
// "track has no lyrics".
func (r *LyricsResolverImpl) Resolve(ctx context.Context, locator string) ([]lyrics.Line, error) {
	if locator == "" {
		return nil, nil
	}

	if cached, ok := r.cache.Get(locator); ok {
		return cached, nil
	}

	var (
		content string
		err     error
	)

	if utils.IsRemoteURL(locator) {
		content, err = r.fetchClient.FetchText(ctx, locator)
		if err != nil {
			return nil, fmt.Errorf("fetch lyrics '%s': %w", locator, err)
		}
	} else {
		var data []byte

		data, err = os.ReadFile(locator)
		if err != nil {
			return nil, fmt.Errorf("read lyrics '%s': %w", locator, err)
		}

		content = string(data)
	}

	lines := lyrics.Parse(content)
	r.cache.Add(locator, lines)

	return lines, nil
}
