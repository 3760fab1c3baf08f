package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyra-player/lyra/internal/utils"
)

// TestNewUserAgentInjector tests the NewUserAgentInjector function.
func TestNewUserAgentInjector(t *testing.T) {
	t.Parallel()

	injector := NewUserAgentInjector(http.DefaultTransport, utils.NewSimpleUserAgentProvider("TestAgent/1.0"))

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestUserAgentInjector_RoundTrip_WithExistingUserAgent tests RoundTrip when User-Agent header already exists.
func TestUserAgentInjector_RoundTrip_WithExistingUserAgent(t *testing.T) {
	t.Parallel()

	// Create a test server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ExistingAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewUserAgentInjector(http.DefaultTransport, utils.NewSimpleUserAgentProvider("TestAgent/1.0"))

	// Create request with existing User-Agent header.
	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ExistingAgent/1.0")

	// Execute request.
	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestUserAgentInjector_RoundTrip_WithoutUserAgent tests RoundTrip when User-Agent header is missing.
func TestUserAgentInjector_RoundTrip_WithoutUserAgent(t *testing.T) {
	t.Parallel()

	// Create a test server.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewUserAgentInjector(http.DefaultTransport, utils.NewSimpleUserAgentProvider("TestAgent/1.0"))

	// Create request without User-Agent header.
	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	// Execute request.
	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestLogTransport_NilRequest tests that a nil request is rejected.
func TestLogTransport_NilRequest(t *testing.T) {
	t.Parallel()

	transport := NewLogTransport(http.DefaultTransport, 0)

	resp, err := transport.RoundTrip(nil)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNilRequest)
}

// TestLogTransport_PassesThrough tests that requests reach the underlying transport.
func TestLogTransport_PassesThrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	}))
	defer server.Close()

	transport := NewLogTransport(http.DefaultTransport, 0)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
