// Package fetch implements the outbound HTTP client used for downloading
// audio payloads, cover art and lyric files. Redirects are resolved manually
// with a bounded hop count, and responses that turn out to be HTML error
// pages are rejected before any bytes reach disk.
package fetch
