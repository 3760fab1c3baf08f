package fetch

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/lyra-player/lyra/internal/config"
	http_transport "github.com/lyra-player/lyra/internal/transport/http"
	"github.com/lyra-player/lyra/internal/utils"
)

// Client defines the interface for fetching remote audio, artwork and lyric resources.
type Client interface {
	// FetchAudio opens a streaming download of an audio resource,
	// following redirects manually and rejecting HTML error pages.
	FetchAudio(ctx context.Context, audioURL string) (*FetchAudioResult, error)
	// FetchText retrieves a small text resource, such as a timed lyric file.
	FetchText(ctx context.Context, textURL string) (string, error)
	// FetchImage retrieves an image resource and reports its MIME type.
	FetchImage(ctx context.Context, imageURL string) (*FetchImageResult, error)
}

// ClientImpl implements the Client interface over net/http.
type ClientImpl struct {
	// httpClient is the HTTP client for making requests.
	// Its redirect handling is disabled; redirects are resolved manually.
	httpClient *http.Client
}

// maxRedirectHops bounds manual redirect resolution.
// Exceeding the bound is a permanent failure, not a retry.
const maxRedirectHops = 10

// NewClient creates and returns a new instance of ClientImpl.
// Transport-level redirect following is disabled so that relative Location
// headers can be re-resolved against the previous URL explicitly.
func NewClient(cfg *config.Config) Client {
	httpClient := &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, 0),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: cfg.ParsedHTTPTimeout,
	}

	return &ClientImpl{httpClient: httpClient}
}

// FetchAudio opens a streaming download of an audio resource.
// The caller owns the returned body and must close it.
func (c *ClientImpl) FetchAudio(ctx context.Context, audioURL string) (*FetchAudioResult, error) {
	response, err := c.resolveRedirects(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusPartialContent {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	// A 200 carrying an HTML document is an error page pretending to be audio.
	contentType := response.Header.Get("Content-Type")
	if utils.IsHTMLContentType(contentType) {
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		return nil, fmt.Errorf("%w: %s", ErrHTMLContent, contentType)
	}

	return &FetchAudioResult{
		Body:        response.Body,
		TotalBytes:  response.ContentLength,
		ContentType: contentType,
		FinalURL:    response.Request.URL.String(),
	}, nil
}

// FetchText retrieves a small text resource in full.
func (c *ClientImpl) FetchText(ctx context.Context, textURL string) (string, error) {
	response, err := c.resolveRedirects(ctx, textURL)
	if err != nil {
		return "", err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(content), nil
}

// FetchImage retrieves an image resource and reports its MIME type.
func (c *ClientImpl) FetchImage(ctx context.Context, imageURL string) (*FetchImageResult, error) {
	response, err := c.resolveRedirects(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedHTTPStatus, response.StatusCode)
	}

	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &FetchImageResult{
		Data:     data,
		MIMEType: response.Header.Get("Content-Type"),
	}, nil
}

// resolveRedirects performs a bounded iterative redirect resolution and
// returns the first non-redirect response. Relative Location headers are
// resolved against the URL that produced them.
func (c *ClientImpl) resolveRedirects(ctx context.Context, rawURL string) (*http.Response, error) {
	currentURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// One request per redirect hop plus the final fetch,
	// so a chain of exactly maxRedirectHops redirects still resolves.
	for range maxRedirectHops + 1 {
		request, requestErr := http.NewRequestWithContext(ctx, http.MethodGet, currentURL.String(), http.NoBody)
		if requestErr != nil {
			return nil, requestErr
		}

		response, doErr := c.httpClient.Do(request)
		if doErr != nil {
			return nil, doErr
		}

		if !isRedirectStatus(response.StatusCode) {
			return response, nil
		}

		location := response.Header.Get("Location")

		// The redirect body is never needed.
		response.Body.Close() //nolint:errcheck,gosec // Error on close is not critical here.

		if location == "" {
			return nil, fmt.Errorf("%w: status %d", ErrMissingLocation, response.StatusCode)
		}

		nextURL, parseErr := currentURL.Parse(location)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid redirect location '%s': %w", location, parseErr)
		}

		currentURL = nextURL
	}

	return nil, fmt.Errorf("%w: more than %d hops", ErrTooManyRedirects, maxRedirectHops)
}

func isRedirectStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}
