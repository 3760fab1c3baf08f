package store

import "errors"

// Errors returned by the library store.
var (
	ErrTrackNotFound    = errors.New("track not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrEmptyName        = errors.New("name must not be empty")
)
