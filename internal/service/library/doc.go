// Package library implements the music library service: downloading remote
// audio with observable per-track state, importing local files, writing
// metadata tags and deleting tracks together with their artifacts.
package library
