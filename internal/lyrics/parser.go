package lyrics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Line is a single timed lyric line.
type Line struct {
	// Time is the offset from track start in milliseconds.
	Time int64
	// Text is the primary caption.
	Text string
	// Translation is an optional secondary caption sharing the same timestamp.
	Translation string
}

// tagPattern matches a timestamp tag of the form [mm:ss.xx] or [mm:ss.xxx].
// Tags with any other digit counts are not recognized as timestamps.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var tagPattern = regexp.MustCompile(`\[(\d{2}):(\d{2})\.(\d{2,3})\]`)

const (
	millisPerMinute = 60_000
	millisPerSecond = 1_000
)

// Parse converts raw timestamped lyric text into an ordered, deduplicated
// sequence of lines. It never fails: malformed tags are not recognized,
// untagged lines are ignored, and tagged lines with no trailing text are dropped.
//
// A line may carry several timestamp tags; its trailing text is associated
// with every one of them. Entries sharing a timestamp are merged: the first
// becomes the primary text, a single extra entry becomes the translation,
// and any further entries are joined below it.
func Parse(text string) []Line {
	type timedText struct {
		time int64
		text string
	}

	var pairs []timedText

	for _, rawLine := range strings.Split(text, "\n") {
		matches := tagPattern.FindAllStringSubmatchIndex(rawLine, -1)
		if len(matches) == 0 {
			continue
		}

		// The caption is everything after the last recognized tag.
		lastMatch := matches[len(matches)-1]

		caption := strings.TrimSpace(rawLine[lastMatch[1]:])
		if caption == "" {
			continue
		}

		for _, match := range matches {
			pairs = append(pairs, timedText{
				time: timestampFromMatch(rawLine, match),
				text: caption,
			})
		}
	}

	// Group captions by timestamp, preserving order of appearance within a group.
	grouped := make(map[int64][]string, len(pairs))
	order := make([]int64, 0, len(pairs))

	for _, pair := range pairs {
		if _, seen := grouped[pair.time]; !seen {
			order = append(order, pair.time)
		}

		grouped[pair.time] = append(grouped[pair.time], pair.text)
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	result := make([]Line, 0, len(order))

	for _, timestamp := range order {
		captions := grouped[timestamp]

		line := Line{
			Time: timestamp,
			Text: captions[0],
		}

		if len(captions) > 1 {
			line.Translation = strings.Join(captions[1:], "\n")
		}

		result = append(result, line)
	}

	return result
}

// timestampFromMatch converts a matched tag into milliseconds.
// Two-digit fractional values are hundredths of a second and scale by ten.
func timestampFromMatch(line string, match []int) int64 {
	minutes, _ := strconv.ParseInt(line[match[2]:match[3]], 10, 64)
	seconds, _ := strconv.ParseInt(line[match[4]:match[5]], 10, 64)

	fraction := line[match[6]:match[7]]

	millis, _ := strconv.ParseInt(fraction, 10, 64)
	if len(fraction) == 2 {
		millis *= 10
	}

	return minutes*millisPerMinute + seconds*millisPerSecond + millis
}

// IndexAt returns the greatest index whose timestamp is less than or equal
// to the given playback position, or -1 when no line has started yet.
// Lines must be sorted ascending by time, which Parse guarantees.
func IndexAt(lines []Line, position int64) int {
	// First index strictly after the position.
	next := sort.Search(len(lines), func(i int) bool {
		return lines[i].Time > position
	})

	return next - 1
}
