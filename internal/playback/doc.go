// Package playback keeps timed lyrics in step with an audio player by
// sampling playback position on a fixed interval and resolving lyric
// documents through a cached resolver.
package playback
