package library

import "fmt"

// DownloadStateKind enumerates the lifecycle phases of a track download.
type DownloadStateKind int

const (
	// DownloadStateNone means the track has no local audio and no download is running.
	DownloadStateNone DownloadStateKind = iota
	// DownloadStateDownloading means bytes are being transferred.
	DownloadStateDownloading
	// DownloadStateDownloaded means the audio file is complete on disk.
	DownloadStateDownloaded
	// DownloadStateFailed means the last download attempt ended with an error.
	DownloadStateFailed
)

// DownloadState is the observable state of one track's download.
// Progress is meaningful only while downloading, Reason only after a failure.
type DownloadState struct {
	Kind     DownloadStateKind
	Progress float64
	Reason   string
}

// NoneState is the state of a track that was never downloaded.
func NoneState() DownloadState {
	return DownloadState{Kind: DownloadStateNone}
}

// DownloadingState reports transfer progress in the range [0, 1].
func DownloadingState(progress float64) DownloadState {
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}

	return DownloadState{Kind: DownloadStateDownloading, Progress: progress}
}

// DownloadedState is the terminal state of a completed download.
func DownloadedState() DownloadState {
	return DownloadState{Kind: DownloadStateDownloaded}
}

// FailedState is the terminal state of an unsuccessful download attempt.
func FailedState(reason string) DownloadState {
	return DownloadState{Kind: DownloadStateFailed, Reason: reason}
}

// String renders the state for logs and CLI output.
func (s DownloadState) String() string {
	switch s.Kind {
	case DownloadStateDownloading:
		return fmt.Sprintf("downloading %.0f%%", s.Progress*100) //nolint:mnd // Fraction to percent.
	case DownloadStateDownloaded:
		return "downloaded"
	case DownloadStateFailed:
		if s.Reason == "" {
			return "failed"
		}

		return "failed: " + s.Reason
	case DownloadStateNone:
		return "not downloaded"
	default:
		return "unknown"
	}
}
