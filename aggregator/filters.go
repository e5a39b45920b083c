package aggregator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// durationPattern matches the compact ISO-8601 form the provider uses for
// video lengths, e.g. PT1H2M30S. Day and fractional components are not used.
var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// maxDurationSeconds is the longest length a time.Duration can hold
const maxDurationSeconds = math.MaxInt64 / int64(time.Second)

// ParseDuration returns the total length encoded in value. ok is false when
// value does not match the pattern, carries none of the three components or
// is too long for a time.Duration.
func ParseDuration(value string) (d time.Duration, ok bool) {
	m := durationPattern.FindStringSubmatch(value)
	if m == nil || (m[1] == "" && m[2] == "" && m[3] == "") {
		return 0, false
	}

	var total int64
	for i, unit := range []int64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil || n > (maxDurationSeconds-total)/unit {
			return 0, false
		}
		total += n * unit
	}
	return time.Duration(total) * time.Second, true
}

// FormatDuration renders a provider duration as m:ss or h:mm:ss, "" when it
// cannot be parsed
func FormatDuration(value string) string {
	d, ok := ParseDuration(value)
	if !ok {
		return ""
	}

	total := int64(d / time.Second)
	hours, minutes, seconds := total/3600, (total%3600)/60, total%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FilterShorts keeps the videos whose duration parses and is at most max,
// in their original order. Videos with an unparseable or empty duration are
// never treated as shorts.
func FilterShorts(videos []youtube.YouTubeVideo, max time.Duration) []youtube.YouTubeVideo {
	shorts := make([]youtube.YouTubeVideo, 0, len(videos))
	for _, v := range videos {
		d, ok := ParseDuration(v.Duration)
		if !ok || d > max {
			continue
		}
		shorts = append(shorts, v)
	}
	return shorts
}

// RemoveFirst returns videos without the first one whose id equals id.
// Later entries with the same id are kept.
func RemoveFirst(videos []youtube.YouTubeVideo, id string) []youtube.YouTubeVideo {
	out := make([]youtube.YouTubeVideo, 0, len(videos))
	removed := false
	for _, v := range videos {
		if !removed && v.ID == id {
			removed = true
			continue
		}
		out = append(out, v)
	}
	return out
}
