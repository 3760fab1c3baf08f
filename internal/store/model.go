package store

// PlatformLocal is the source platform tag of tracks whose audio lives on disk,
// either imported from the filesystem or rewritten after a completed download.
const PlatformLocal = "local"

// TrackRecord is the persisted description of one song.
// The identifier is immutable once assigned.
type TrackRecord struct {
	// ID is the opaque unique identifier of the track.
	ID string `json:"id"`
	// Title is the track title.
	Title string `json:"title"`
	// Artist is the performing artist.
	Artist string `json:"artist"`
	// Album is the optional album title.
	Album string `json:"album,omitempty"`
	// Platform is the source platform tag ("local" once the audio lives on disk).
	Platform string `json:"platform"`
	// AudioLocator is a remote URL before download, a local file path after.
	AudioLocator string `json:"audioLocator,omitempty"`
	// CoverLocator is an optional cover art locator. It is cleared after a
	// completed download because artwork is then embedded in the audio file.
	CoverLocator string `json:"coverLocator,omitempty"`
	// LyricLocator is an optional locator for a timed lyric file.
	LyricLocator string `json:"lyricLocator,omitempty"`
}

// Playlist is an ordered collection of track identifiers.
type Playlist struct {
	// ID is the opaque unique identifier of the playlist.
	ID string `json:"id"`
	// Name is the display name.
	Name string `json:"name"`
	// TrackIDs is the ordered list of member track identifiers, without duplicates.
	TrackIDs []string `json:"trackIds"`
	// CoverLocator points at the generated composite cover, when one exists.
	CoverLocator string `json:"coverLocator,omitempty"`
}
