// Package aggregator turns dependent API calls into display-ready results:
// it fetches a primary resource, resolves the channels it references,
// merges their avatars back onto the items and applies derived-view
// filters, reusing cached results while they are fresh.
package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/video-aggregator/cache"
	"github.com/researchaccelerator-hub/video-aggregator/client"
	"github.com/researchaccelerator-hub/video-aggregator/common"
	"github.com/researchaccelerator-hub/video-aggregator/config"
	"github.com/researchaccelerator-hub/video-aggregator/metrics"
	"github.com/researchaccelerator-hub/video-aggregator/model/youtube"
)

// AggregateResult is the output of one list operation
type AggregateResult[T any] struct {
	Items         []T       `json:"items"`
	Count         int       `json:"count"`
	NextPageToken string    `json:"next_page_token,omitempty"`
	Degraded      bool      `json:"degraded,omitempty"` // a transport failure was absorbed
	RequestID     string    `json:"request_id"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// Aggregator serves every aggregate fetch operation. It is safe for
// concurrent use; independent operations run as independent pipelines.
type Aggregator struct {
	cfg      *config.Config
	client   client.ResourceClient
	suggest  client.SuggestionClient
	cache    *cache.Cache
	resolver *Resolver
	metrics  *metrics.Metrics
	now      func() time.Time
	onStage  func(StageEvent)
}

// Option customizes an Aggregator
type Option func(*Aggregator)

// WithMetrics reports pipeline latency, resolver batches and failures
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Aggregator) {
		a.metrics = m
	}
}

// WithClock replaces time.Now for FetchedAt stamps
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// WithStageObserver registers a callback receiving every stage transition.
// It is called synchronously from the pipeline goroutine.
func WithStageObserver(fn func(StageEvent)) Option {
	return func(a *Aggregator) {
		a.onStage = fn
	}
}

// New creates an Aggregator. A nil cache gets an in-memory cache sized and
// timed by cfg; a nil suggestion client makes Suggestions always empty.
func New(cfg *config.Config, rc client.ResourceClient, sc client.SuggestionClient, c *cache.Cache, opts ...Option) (*Aggregator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if rc == nil {
		return nil, fmt.Errorf("resource client is required")
	}

	a := &Aggregator{
		cfg:     cfg,
		client:  rc,
		suggest: sc,
		cache:   c,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.cache == nil {
		mem, err := cache.NewMemoryStore(cfg.Cache.Size)
		if err != nil {
			return nil, err
		}
		a.cache = cache.New(mem, cfg.TTL, cache.WithMetrics(a.metrics))
	}
	a.resolver = NewResolver(rc, cfg.BatchLimit(youtube.KindChannels), a.metrics)
	return a, nil
}

// run tracks one pipeline invocation
type run struct {
	agg       *Aggregator
	kind      youtube.ResourceKind
	requestID string
	stage     Stage
	start     time.Time
	log       zerolog.Logger
}

func (a *Aggregator) begin(kind youtube.ResourceKind) *run {
	id := common.GenerateRequestID()
	return &run{
		agg:       a,
		kind:      kind,
		requestID: id,
		stage:     StageIdle,
		start:     time.Now(),
		log:       log.With().Str("request_id", id).Str("kind", kind.String()).Logger(),
	}
}

func (r *run) to(next Stage) {
	prev := r.stage
	r.stage = next
	r.log.Debug().Stringer("from", prev).Stringer("to", next).Msg("Pipeline stage")
	if r.agg.onStage != nil {
		r.agg.onStage(StageEvent{RequestID: r.requestID, Kind: r.kind.String(), From: prev, To: next})
	}
}

func (r *run) fail(err error) {
	r.agg.metrics.FetchFailure(r.kind.String(), client.KindOf(err).String())
	r.to(StageFailed)
	r.agg.metrics.ObservePipeline(r.kind.String(), r.start)
}

func (r *run) ready() {
	r.to(StageReady)
	r.agg.metrics.ObservePipeline(r.kind.String(), r.start)
}

func newResult[T any](r *run, items []T, token string) *AggregateResult[T] {
	if items == nil {
		items = []T{}
	}
	return &AggregateResult[T]{
		Items:         items,
		Count:         len(items),
		NextPageToken: token,
		RequestID:     r.requestID,
		FetchedAt:     r.agg.now(),
	}
}

// listPipeline produces the items of a list operation; it moves the run
// through the stages after StageFetchingPrimary itself
type listPipeline[T any] func(ctx context.Context, r *run) (items []T, nextPageToken string, err error)

// runList serves a list operation from cache or runs its pipeline. Failures
// are absorbed into an empty result, flagged Degraded for transport failures,
// and never cached.
func runList[T any](ctx context.Context, a *Aggregator, kind youtube.ResourceKind, key string, pipeline listPipeline[T]) *AggregateResult[T] {
	r := a.begin(kind)

	if cached, ok := cache.Get[AggregateResult[T]](ctx, a.cache, kind, key); ok {
		r.to(StageReady)
		cached.RequestID = r.requestID
		return &cached
	}

	r.log.Info().Str("key", key).Msg("Fetching")
	r.to(StageFetchingPrimary)

	items, token, err := pipeline(ctx, r)
	if err != nil {
		r.fail(err)
		res := newResult[T](r, nil, "")
		res.Degraded = client.IsTransport(err)
		r.log.Warn().Err(err).Bool("degraded", res.Degraded).Msg("List fetch failed, returning empty result")
		return res
	}

	r.ready()
	res := newResult(r, items, token)
	cache.Put(ctx, a.cache, kind, key, res)

	r.log.Info().Int("count", res.Count).Msg("Fetched")
	return res
}

// singlePipeline produces the one resource of a single-resource operation
type singlePipeline[T any] func(ctx context.Context, r *run) (*T, error)

// runSingle serves a single-resource operation from cache or runs its
// pipeline, returning NotFound and Transport failures to the caller
func runSingle[T any](ctx context.Context, a *Aggregator, kind youtube.ResourceKind, key string, pipeline singlePipeline[T]) (*T, error) {
	r := a.begin(kind)

	if cached, ok := cache.Get[T](ctx, a.cache, kind, key); ok {
		r.to(StageReady)
		return &cached, nil
	}

	r.log.Info().Str("key", key).Msg("Fetching")
	r.to(StageFetchingPrimary)

	item, err := pipeline(ctx, r)
	if err != nil {
		r.fail(err)
		r.log.Error().Err(err).Stringer("failure", client.KindOf(err)).Msg("Fetch failed")
		return nil, err
	}

	r.ready()
	cache.Put(ctx, a.cache, kind, key, *item)
	return item, nil
}

// enrich resolves the channels referenced by items and merges their avatars.
// Resolution failures leave the affected items unenriched.
func enrich[T Enrichable[T]](ctx context.Context, r *run, items []T) []T {
	r.to(StageResolvingReferences)
	refs := ExtractChannelRefs(items)
	lookup, err := r.agg.resolver.Resolve(ctx, refs)
	if err != nil {
		r.log.Warn().Err(err).
			Int("references", len(refs)).
			Int("resolved", len(lookup)).
			Msg("Partial channel resolution, continuing")
	}

	r.to(StageEnriching)
	return Merge(items, lookup)
}
