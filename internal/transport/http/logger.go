package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/lyra-player/lyra/internal/config"
	"github.com/lyra-player/lyra/internal/logger"
	"github.com/lyra-player/lyra/internal/utils"
)

// LogTransport is an http.RoundTripper that dumps request/response traffic
// at debug level. Requests carry no bodies here (the client only issues GETs),
// so only their headers are dumped; response bodies are dumped for textual
// payloads such as lyric files, catalog replies and error pages, never for
// audio or image streams.
type LogTransport struct {
	next http.RoundTripper
	// maxLogLength caps the size of a single dumped payload.
	maxLogLength uint64
}

// ErrNilRequest indicates that the HTTP request is nil.
var ErrNilRequest = errors.New("request is nil")

// NewLogTransport wraps next with debug traffic logging.
// A non-positive maxLogLength falls back to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength <= 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction, logging it when the logger
// runs at debug level. It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := req.Context()
	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.String(), err)

		return nil, err
	}

	logger.Debugf(ctx, "%s %s [%d] %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.Path, resp.StatusCode, time.Since(startTime),
		t.dumpRequest(req), t.dumpResponse(resp))

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// Headers only: outbound requests never carry a body.
	dump, err := httputil.DumpRequest(req, false)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextualContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}
