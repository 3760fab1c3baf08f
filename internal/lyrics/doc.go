// Package lyrics parses timestamped lyric text of the form "[mm:ss.xx]caption"
// into an ordered sequence of timed lines and locates the active line for a
// given playback position.
package lyrics
