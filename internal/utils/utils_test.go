package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSanitizeFilename tests the SanitizeFilename function.
func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean name unchanged",
			input:    "Bohemian Rhapsody",
			expected: "Bohemian Rhapsody",
		},
		{
			name:     "slashes replaced",
			input:    "AC/DC - Back In Black",
			expected: "AC_DC - Back In Black",
		},
		{
			name:     "windows restricted characters",
			input:    `What? "Is" <this>`,
			expected: "What_ _Is_ _this_",
		},
		{
			name:     "reserved windows name",
			input:    "CON",
			expected: "_CON",
		},
		{
			name:     "reserved name with extension",
			input:    "aux.mp3",
			expected: "_aux.mp3",
		},
		{
			name:     "trailing dots removed",
			input:    "song...",
			expected: "song",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "only invalid characters",
			input:    "???",
			expected: "___",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

// TestSetFileExtension tests the SetFileExtension function.
func TestSetFileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		filename   string
		extension  string
		isReplaced bool
		expected   string
	}{
		{
			name:       "append missing extension",
			filename:   "track",
			extension:  ".mp3",
			isReplaced: true,
			expected:   "track.mp3",
		},
		{
			name:       "extension without dot",
			filename:   "track",
			extension:  "mp3",
			isReplaced: true,
			expected:   "track.mp3",
		},
		{
			name:       "already correct",
			filename:   "track.mp3",
			extension:  ".mp3",
			isReplaced: true,
			expected:   "track.mp3",
		},
		{
			name:       "replace different extension",
			filename:   "track.flac",
			extension:  ".lrc",
			isReplaced: true,
			expected:   "track.lrc",
		},
		{
			name:       "keep existing extension and append",
			filename:   "track.flac",
			extension:  ".lrc",
			isReplaced: false,
			expected:   "track.flac.lrc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, SetFileExtension(tt.filename, tt.extension, tt.isReplaced))
		})
	}
}

// TestIsFileExist tests the IsFileExist function.
func TestIsFileExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	exists, err := IsFileExist(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = IsFileExist(filepath.Join(dir, "absent.txt"))
	require.NoError(t, err)
	assert.False(t, exists)

	// A directory is not a file.
	exists, err = IsFileExist(dir)
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestIsHTMLContentType tests the IsHTMLContentType function.
func TestIsHTMLContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{
			name:        "html page",
			contentType: "text/html; charset=utf-8",
			expected:    true,
		},
		{
			name:        "plain text",
			contentType: "text/plain",
			expected:    true,
		},
		{
			name:        "xhtml",
			contentType: "application/xhtml+xml",
			expected:    true,
		},
		{
			name:        "mpeg audio",
			contentType: "audio/mpeg",
			expected:    false,
		},
		{
			name:        "octet stream",
			contentType: "application/octet-stream",
			expected:    false,
		},
		{
			name:        "empty",
			contentType: "",
			expected:    false,
		},
		{
			name:        "garbage",
			contentType: ";;;",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsHTMLContentType(tt.contentType))
		})
	}
}

// TestIsTextualContentType tests the IsTextualContentType function.
func TestIsTextualContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{
			name:        "plain text",
			contentType: "text/plain; charset=utf-8",
			expected:    true,
		},
		{
			name:        "json",
			contentType: "application/json",
			expected:    true,
		},
		{
			name:        "graphql json",
			contentType: "application/graphql+json",
			expected:    true,
		},
		{
			name:        "xml",
			contentType: "application/xml",
			expected:    true,
		},
		{
			name:        "mpeg audio",
			contentType: "audio/mpeg",
			expected:    false,
		},
		{
			name:        "jpeg image",
			contentType: "image/jpeg",
			expected:    false,
		},
		{
			name:        "empty",
			contentType: "",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IsTextualContentType(tt.contentType))
		})
	}
}

// TestIsRemoteURL tests the IsRemoteURL function.
func TestIsRemoteURL(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRemoteURL("https://example.com/track.mp3"))
	assert.True(t, IsRemoteURL("http://example.com/lyrics.lrc"))
	assert.False(t, IsRemoteURL("/home/user/music/track.mp3"))
	assert.False(t, IsRemoteURL("C:\\music\\track.mp3"))
	assert.False(t, IsRemoteURL(""))
}

// TestMap tests the Map function.
func TestMap(t *testing.T) {
	t.Parallel()

	result := Map([]int{1, 2, 3}, func(v int) int { return v * 2 })
	assert.Equal(t, []int{2, 4, 6}, result)

	empty := Map([]string(nil), func(v string) string { return v })
	assert.Empty(t, empty)
}
