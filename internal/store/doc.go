// Package store persists the music library: track records, playlists, the
// playlist order artifact, downloaded audio, cached cover art and generated
// composite playlist covers. Records are one JSON file per entity under the
// library root, which keeps the layout inspectable and lets external tools
// sync it file by file.
package store
