package fetch

import "io"

// FetchAudioResult contains the streaming body of a resolved audio download.
type FetchAudioResult struct {
	// Body is the streaming response body. The caller must close it.
	Body io.ReadCloser
	// TotalBytes is the reported content length, or -1 when unknown.
	TotalBytes int64
	// ContentType is the reported content type of the payload.
	ContentType string
	// FinalURL is the URL that produced the payload after redirect resolution.
	FinalURL string
}

// FetchImageResult contains a fully read image payload.
type FetchImageResult struct {
	// Data contains the raw image bytes.
	Data []byte
	// MIMEType specifies the image format (e.g., "image/jpeg").
	MIMEType string
}
