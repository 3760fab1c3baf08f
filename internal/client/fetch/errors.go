package fetch

import "errors"

var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrTooManyRedirects indicates that redirect resolution exceeded the hop bound.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrMissingLocation indicates a redirect response without a Location header.
	ErrMissingLocation = errors.New("redirect without location header")
	// ErrHTMLContent indicates an HTML document was served where audio was expected.
	ErrHTMLContent = errors.New("server returned a text or HTML document instead of audio")
)
