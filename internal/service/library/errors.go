package library

import "errors"

// Static error definitions for better error handling.
var (
	// ErrAudioNotRemote indicates the track's audio locator is not a remote URL,
	// so there is nothing to download.
	ErrAudioNotRemote = errors.New("track audio locator is not a remote URL")
	// ErrDownloadInProgress indicates another download for the same track is running.
	ErrDownloadInProgress = errors.New("download already in progress")
	// ErrEmptyDownload indicates the remote endpoint produced zero bytes of audio.
	ErrEmptyDownload = errors.New("download produced an empty file")
	// ErrAudioFileMissing indicates a local audio path that does not exist on disk.
	ErrAudioFileMissing = errors.New("audio file does not exist")
)
