package common

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Abbreviation thresholds shared by every count shown in compact form
const (
	millionThreshold  = 1_000_000
	thousandThreshold = 1_000
)

// FormatCount abbreviates n: >= 1,000,000 as millions with one decimal,
// >= 1,000 as thousands with one decimal, otherwise the raw integer.
//
//	1739901 -> "1.7M", 1500 -> "1.5K", 999 -> "999"
func FormatCount(n uint64) string {
	switch {
	case n >= millionThreshold:
		return fmt.Sprintf("%.1fM", float64(n)/millionThreshold)
	case n >= thousandThreshold:
		return fmt.Sprintf("%.1fK", float64(n)/thousandThreshold)
	default:
		return strconv.FormatUint(n, 10)
	}
}

// FormatViews renders a view count such as "1.7M views"
func FormatViews(n uint64) string {
	return FormatCount(n) + " views"
}

// FormatSubscribers renders a subscriber count such as "12.3K subscribers"
func FormatSubscribers(n uint64) string {
	return FormatCount(n) + " subscribers"
}

// FormatFullCount renders n with thousands separators, e.g. "1,234,567"
func FormatFullCount(n uint64) string {
	return humanize.Comma(int64(n))
}

// TimeAgo renders the distance from t to now in the coarse units used on
// video cards. A month is 30 days and a year 365 days.
func TimeAgo(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	seconds := int64(now.Sub(t) / time.Second)

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%d days ago", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%d months ago", seconds/2592000)
	default:
		return fmt.Sprintf("%d years ago", seconds/31536000)
	}
}
