package common

import (
	"time"

	"github.com/google/uuid"
)

// GenerateRequestID returns a unique identifier for one aggregate fetch,
// used to correlate the log lines of a single pipeline run.
func GenerateRequestID() string {
	return uuid.New().String()
}

// GenerateRunStamp formats t as "YYYYMMDDHHMMSS", the compact stamp used in
// CLI output file names.
func GenerateRunStamp(t time.Time) string {
	return t.Format("20060102150405")
}

// Chunk splits items into consecutive slices of at most size elements.
// The chunks share the backing array of items. A size <= 0 yields one chunk
// holding everything; an empty input yields no chunks.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items[:len(items):len(items)]}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		chunks = append(chunks, items[start:end:end])
	}
	return chunks
}
