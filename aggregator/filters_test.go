package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		value  string
		want   time.Duration
		wantOK bool
	}{
		{"PT3M54S", 234 * time.Second, true},
		{"PT1H2M30S", 3750 * time.Second, true},
		{"PT45S", 45 * time.Second, true},
		{"PT0M45S", 45 * time.Second, true},
		{"PT1M0S", 60 * time.Second, true},
		{"PT2H", 2 * time.Hour, true},
		{"PT0S", 0, true},
		{"PT", 0, false},
		{"", 0, false},
		{"P1D", 0, false},
		{"P0D", 0, false},
		{"3:54", 0, false},
		{"PT1.5S", 0, false},
		{"pt3m54s", 0, false},
		{"PT3S4M", 0, false},
		{"PT2562047H", 2562047 * time.Hour, true},
		{"PT2562048H", 0, false},
		{"PT153722868M", 0, false},
		{"PT9223372037S", 0, false},
		{"PT2562047H47M17S", 0, false},
		{"PT99999999999999999999H", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := ParseDuration(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"PT3M54S", "3:54"},
		{"PT1H2M30S", "1:02:30"},
		{"PT45S", "0:45"},
		{"PT10M", "10:00"},
		{"PT1H", "1:00:00"},
		{"garbage", ""},
		{"PT2562048H", ""},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.value))
		})
	}
}

func TestFilterShorts(t *testing.T) {
	videos := []youtube.YouTubeVideo{
		video("a", "c1", "PT0M45S"),
		video("b", "c1", "PT2M10S"),
		video("c", "c2", "PT1M0S"),
	}

	got := FilterShorts(videos, 60*time.Second)
	assert.Equal(t, []string{"a", "c"}, videoIDs(got))
}

func TestFilterShortsExcludesUnknownDurations(t *testing.T) {
	videos := []youtube.YouTubeVideo{
		video("live", "c1", "P0D"),
		video("empty", "c1", ""),
		video("bare", "c1", "PT"),
		video("overflow", "c1", "PT2562048H"),
		video("short", "c1", "PT30S"),
	}

	got := FilterShorts(videos, 60*time.Second)
	assert.Equal(t, []string{"short"}, videoIDs(got))
}

func TestRemoveFirst(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		id    string
		want  []string
	}{
		{"source first", []string{"v1", "v2", "v3"}, "v1", []string{"v2", "v3"}},
		{"source in middle", []string{"v2", "v1", "v3"}, "v1", []string{"v2", "v3"}},
		{"source absent", []string{"v2", "v3"}, "v1", []string{"v2", "v3"}},
		{"only first match removed", []string{"v1", "v2", "v1"}, "v1", []string{"v2", "v1"}},
		{"only the source", []string{"v1"}, "v1", []string{}},
		{"empty", []string{}, "v1", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := make([]youtube.YouTubeVideo, 0, len(tt.input))
			for _, id := range tt.input {
				videos = append(videos, video(id, "c1", ""))
			}

			got := RemoveFirst(videos, tt.id)
			assert.Equal(t, tt.want, videoIDs(got))
			assert.Len(t, videos, len(tt.input), "input not modified")
		})
	}
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "fetching-primary", StageFetchingPrimary.String())
	assert.Equal(t, "failed", StageFailed.String())
	assert.Equal(t, "unknown", Stage(99).String())
}
