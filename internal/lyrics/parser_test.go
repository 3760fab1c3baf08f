package lyrics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse tests the Parse function across the format's edge cases.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Line
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []Line{},
		},
		{
			name:  "single line",
			input: "[00:12.34]Hello world\n",
			expected: []Line{
				{Time: 12_340, Text: "Hello world"},
			},
		},
		{
			name:  "two digit fraction scales to milliseconds",
			input: "[00:01.50]Half past one\n",
			expected: []Line{
				{Time: 1_500, Text: "Half past one"},
			},
		},
		{
			name:  "three digit fraction taken as is",
			input: "[00:01.500]Half past one\n",
			expected: []Line{
				{Time: 1_500, Text: "Half past one"},
			},
		},
		{
			name:  "duplicate timestamp merges into translation",
			input: "[00:01.00]Hello\n[00:01.00]你好\n",
			expected: []Line{
				{Time: 1_000, Text: "Hello", Translation: "你好"},
			},
		},
		{
			name:  "repeated tags on one line expand to every timestamp",
			input: "[00:10.50][00:20.50]Same line\n",
			expected: []Line{
				{Time: 10_500, Text: "Same line"},
				{Time: 20_500, Text: "Same line"},
			},
		},
		{
			name:  "more than two entries join the remainder",
			input: "[00:05.00]first\n[00:05.00]second\n[00:05.00]third\n",
			expected: []Line{
				{Time: 5_000, Text: "first", Translation: "second\nthird"},
			},
		},
		{
			name:     "tag with empty trailing text is dropped",
			input:    "[00:03.00]\n[00:04.00]   \n",
			expected: []Line{},
		},
		{
			name:     "untagged lines are ignored",
			input:    "just some text\nLyricist: Somebody\n",
			expected: []Line{},
		},
		{
			name:  "malformed tag is not recognized",
			input: "[0:01.0]broken\n[00:02.00]fine\n",
			expected: []Line{
				{Time: 2_000, Text: "fine"},
			},
		},
		{
			name:  "output sorted by timestamp",
			input: "[00:30.00]later\n[00:10.00]earlier\n[00:20.00]middle\n",
			expected: []Line{
				{Time: 10_000, Text: "earlier"},
				{Time: 20_000, Text: "middle"},
				{Time: 30_000, Text: "later"},
			},
		},
		{
			name:  "minutes converted to milliseconds",
			input: "[02:05.00]two minutes in\n",
			expected: []Line{
				{Time: 125_000, Text: "two minutes in"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Parse(tt.input)
			require.Len(t, result, len(tt.expected))

			for i, expected := range tt.expected {
				assert.Equal(t, expected, result[i])
			}
		})
	}
}

// TestParse_SortedAndDeduplicated tests ordering and de-duplication on a larger sample.
func TestParse_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	input := "[00:45.10]d\n[00:01.00]a\n[00:30.00]c\n[00:01.00]a2\n[00:02.50]b\n"
	result := Parse(input)

	assert.True(t, sort.SliceIsSorted(result, func(i, j int) bool {
		return result[i].Time < result[j].Time
	}))

	seen := make(map[int64]struct{}, len(result))
	for _, line := range result {
		_, duplicate := seen[line.Time]
		assert.False(t, duplicate, "timestamp %d appears twice", line.Time)
		seen[line.Time] = struct{}{}
	}
}

// TestIndexAt tests the IndexAt function.
func TestIndexAt(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Time: 1_000, Text: "one"},
		{Time: 5_000, Text: "five"},
		{Time: 9_000, Text: "nine"},
	}

	tests := []struct {
		name     string
		position int64
		expected int
	}{
		{
			name:     "before the first line",
			position: 500,
			expected: -1,
		},
		{
			name:     "exactly on a line",
			position: 5_000,
			expected: 1,
		},
		{
			name:     "between lines",
			position: 7_000,
			expected: 1,
		},
		{
			name:     "after the last line",
			position: 60_000,
			expected: 2,
		},
		{
			name:     "zero position",
			position: 0,
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, IndexAt(lines, tt.position))
		})
	}
}

// TestIndexAt_EmptyLines tests IndexAt with no lines at all.
func TestIndexAt_EmptyLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, IndexAt(nil, 10_000))
}
