// Package http provides custom HTTP transport utilities,
// including request/response logging and User-Agent header injection.
// It augments HTTP client behavior with debugging capabilities
// and per-request customization.
package http
