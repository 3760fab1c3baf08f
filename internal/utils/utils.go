package utils

import (
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// invalidCharsPattern includes ASCII control characters (0-31) and Windows-restricted characters: < > : " / \ | ? *.
	//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
	invalidCharsPattern = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

	// htmlContentTypePatterns is a slice of regular expressions that match content types
	// indicating a text or HTML document. A download endpoint answering with one of these
	// returned an error page, not an audio payload.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	htmlContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile(`^application/xhtml\+xml`),
	}

	// textualContentTypePatterns matches content types whose bodies are safe
	// to dump into debug logs: plain text, HTML, JSON and XML.
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textualContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile(`^application/(\w+\+)?json`),
		regexp.MustCompile(`^application/(\w+\+)?xml`),
	}

	// windowsReservedNames is a map of filenames that are reserved on Windows systems.
	// These names are case-insensitive and cannot be used as filenames or folder names.
	//nolint:gochecknoglobals // This is an immutable map used as a constant for validation purposes.
	windowsReservedNames = map[string]struct{}{
		"CON":  {},
		"PRN":  {},
		"AUX":  {},
		"NUL":  {},
		"COM1": {},
		"COM2": {},
		"COM3": {},
		"COM4": {},
		"COM5": {},
		"COM6": {},
		"COM7": {},
		"COM8": {},
		"COM9": {},
		"LPT1": {},
		"LPT2": {},
		"LPT3": {},
		"LPT4": {},
		"LPT5": {},
		"LPT6": {},
		"LPT7": {},
		"LPT8": {},
		"LPT9": {},
	}
)

// SanitizeFilename sanitizes a filename or folder name to be valid on both Windows and Unix-like systems.
// It removes or replaces invalid characters, handles Windows reserved names, and ensures the filename is not empty.
func SanitizeFilename(name string) string {
	if name == "" {
		return ""
	}

	result := invalidCharsPattern.ReplaceAllString(name, "_")

	// Extract base filename (without extension) for comparison
	baseName := result
	if dotIndex := strings.LastIndex(result, "."); dotIndex != -1 {
		baseName = result[:dotIndex]
	}

	// If base name is a Windows reserved name, prepend an underscore.
	if _, ok := windowsReservedNames[strings.ToUpper(baseName)]; ok {
		result = "_" + result
	}

	// Remove trailing dots from the filename.
	result = strings.TrimRight(result, ".")

	// Ensure the filename is not empty.
	if result == "" {
		result = "_"
	}

	return result
}

// SetFileExtension ensures the file has the specified extension.
// If the filename already has the correct extension, it is returned unchanged.
// If the filename has a different extension, the old extension is replaced with the new one.
// If the filename has no extension, the new extension is appended.
func SetFileExtension(filename, extension string, isExtensionReplaced bool) string {
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}

	currentExt := filepath.Ext(filename)
	if currentExt == extension {
		return filename
	}

	if isExtensionReplaced {
		// Remove existing extension if present.
		filename = strings.TrimSuffix(filename, currentExt)
	}

	return filename + extension
}

// IsFileExist checks if a file exists at the specified path.
// It returns true if the file exists and is not a directory, false if the file does not exist,
// and an error if there was an issue accessing the file.
func IsFileExist(path string) (bool, error) {
	stat, err := os.Stat(path)
	if err == nil {
		return !stat.IsDir(), nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// IsHTMLContentType checks if the given content type represents a text or HTML document.
// A 200 response carrying one of these for an audio URL is an error page in disguise.
func IsHTMLContentType(contentType string) bool {
	parsedType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range htmlContentTypePatterns {
		if pattern.MatchString(parsedType) {
			return true
		}
	}

	return false
}

// IsTextualContentType reports whether the content type carries a textual
// payload that can be reproduced in a log.
func IsTextualContentType(contentType string) bool {
	parsedType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textualContentTypePatterns {
		if pattern.MatchString(parsedType) {
			return true
		}
	}

	return false
}

// IsRemoteURL reports whether a locator refers to a remote HTTP resource
// rather than a local file path.
func IsRemoteURL(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// Map applies a transformation function to each element of a slice and returns a new slice with the results.
func Map[E, S any](v []E, transformFunc func(E) S) []S {
	result := make([]S, len(v))
	for i := range v {
		result[i] = transformFunc(v[i])
	}

	return result
}
