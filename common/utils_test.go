package common

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()

	matched, err := regexp.MatchString(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id)
	require.NoError(t, err)
	assert.True(t, matched, "request id %q is not a UUID", id)
	assert.NotEqual(t, id, GenerateRequestID())
}

func TestGenerateRunStamp(t *testing.T) {
	stamp := GenerateRunStamp(time.Date(2023, 5, 15, 10, 30, 45, 0, time.UTC))
	assert.Equal(t, "20230515103045", stamp)
}

func ExampleGenerateRunStamp() {
	currentTime, _ := time.Parse("2006-01-02 15:04:05", "2023-05-15 10:30:45")
	fmt.Println(GenerateRunStamp(currentTime))
	// Output: 20230515103045
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		size  int
		want  [][]string
	}{
		{"empty", nil, 50, nil},
		{"fits in one", []string{"a", "b"}, 50, [][]string{{"a", "b"}}},
		{"exact multiple", []string{"a", "b", "c", "d"}, 2, [][]string{{"a", "b"}, {"c", "d"}}},
		{"remainder", []string{"a", "b", "c"}, 2, [][]string{{"a", "b"}, {"c"}}},
		{"size one", []string{"a", "b"}, 1, [][]string{{"a"}, {"b"}}},
		{"non-positive size", []string{"a", "b"}, 0, [][]string{{"a", "b"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.items, tt.size))
		})
	}
}

func TestChunkCount(t *testing.T) {
	ids := make([]int, 101)
	for limit := 1; limit <= 60; limit++ {
		want := (len(ids) + limit - 1) / limit
		assert.Len(t, Chunk(ids, limit), want, "limit %d", limit)
	}
}

func TestChunkAppendDoesNotClobber(t *testing.T) {
	items := []int{1, 2, 3, 4}
	chunks := Chunk(items, 2)
	_ = append(chunks[0], 99)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}
