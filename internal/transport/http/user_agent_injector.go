package http

import (
	"net/http"

	"github.com/lyra-player/lyra/internal/utils"
)

// userAgentHeader is the HTTP header name for User-Agent.
const userAgentHeader = "User-Agent"

// UserAgentInjector is an http.RoundTripper that fills in the User-Agent
// header on outbound requests. Audio CDNs and lyric hosts reject Go's
// default agent often enough that every client in this module goes through
// it. A User-Agent already set on the request wins.
type UserAgentInjector struct {
	next     http.RoundTripper
	provider utils.UserAgentProvider
}

// NewUserAgentInjector wraps next so that every request leaves with a
// User-Agent supplied by provider.
func NewUserAgentInjector(next http.RoundTripper, provider utils.UserAgentProvider) http.RoundTripper {
	return &UserAgentInjector{
		next:     next,
		provider: provider,
	}
}

// RoundTrip executes a single HTTP transaction, injecting the User-Agent
// header when the request has none. It implements the http.RoundTripper
// interface.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(userAgentHeader) == "" {
		req.Header.Set(userAgentHeader, t.provider.GetUserAgent())
	}

	return t.next.RoundTrip(req)
}
