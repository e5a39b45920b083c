package aggregator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/researchaccelerator-hub/video-aggregator/common"
	"github.com/researchaccelerator-hub/video-aggregator/metrics"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// LookupMap holds resolved channels keyed by channel id. Every key comes from
// the ReferenceSet that was resolved; unresolved references are simply absent.
type LookupMap map[string]youtube.YouTubeChannel

// ChannelLookup is the slice of the Resource Client the resolver needs
type ChannelLookup interface {
	ChannelsByID(ctx context.Context, ids []string) ([]youtube.YouTubeChannel, error)
}

// Resolver turns a ReferenceSet into a LookupMap with the fewest batched calls
type Resolver struct {
	lookup     ChannelLookup
	batchLimit int
	metrics    *metrics.Metrics
}

// NewResolver creates a resolver issuing at most batchLimit ids per call
func NewResolver(lookup ChannelLookup, batchLimit int, m *metrics.Metrics) *Resolver {
	if batchLimit <= 0 {
		batchLimit = 50
	}
	return &Resolver{lookup: lookup, batchLimit: batchLimit, metrics: m}
}

// Resolve issues ceil(len(refs)/batchLimit) lookups concurrently and merges
// the responses. An empty set issues no call. When some batches fail, the
// channels from the successful batches are still returned alongside the error.
func (r *Resolver) Resolve(ctx context.Context, refs ReferenceSet) (LookupMap, error) {
	lookup := make(LookupMap, len(refs))
	if len(refs) == 0 {
		r.metrics.ObserveBatches(0)
		return lookup, nil
	}

	batches := common.Chunk([]string(refs), r.batchLimit)
	results := make([][]youtube.YouTubeChannel, len(batches))
	errs := make([]error, len(batches))

	// A failed batch must not cancel its siblings, so the group has no context
	var g errgroup.Group
	for i, batch := range batches {
		g.Go(func() error {
			channels, err := r.lookup.ChannelsByID(ctx, batch)
			if err != nil {
				errs[i] = fmt.Errorf("channel batch %d/%d: %w", i+1, len(batches), err)
				return nil
			}
			results[i] = channels
			return nil
		})
	}
	_ = g.Wait()
	r.metrics.ObserveBatches(len(batches))

	for _, channels := range results {
		for _, ch := range channels {
			if !refs.Contains(ch.ID) {
				log.Debug().Str("channel_id", ch.ID).Msg("Ignoring channel not requested")
				continue
			}
			lookup[ch.ID] = ch
		}
	}

	log.Debug().
		Int("references", len(refs)).
		Int("batches", len(batches)).
		Int("resolved", len(lookup)).
		Msg("Resolved channel references")

	return lookup, errors.Join(errs...)
}
