package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitlanes/pkg/cache"
	"github.com/matzehuels/gitlanes/pkg/graph"
	"github.com/matzehuels/gitlanes/pkg/observability"
	"github.com/matzehuels/gitlanes/pkg/render/rows"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Every Execute call
// builds its own renderer, so multiple goroutines can safely share a Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // cache entry lifetime; zero means cache.TTLRender
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute validates the stream, renders it and composes every requested
// artifact. Artifacts are served from the cache when all of them are present.
func (r *Runner) Execute(ctx context.Context, s graph.Stream, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := checkStream(s, opts); err != nil {
		return nil, err
	}

	result := &Result{
		Lanes: s.LaneCount(),
		Stats: Stats{NodeCount: len(s.Nodes), EdgeCount: s.EdgeCount()},
	}

	data, err := graph.MarshalStream(s)
	if err != nil {
		return nil, fmt.Errorf("serialize stream for cache key: %w", err)
	}
	result.StreamHash = cache.Hash(data)

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, result.StreamHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Debug("served from cache", "hash", result.StreamHash[:12], "formats", opts.Formats)
			return result, nil
		}
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, result.Stats.NodeCount, result.Lanes)
	rendered, artifacts, err := r.render(ctx, s, opts)
	result.Stats.RenderTime = time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, result.Stats.NodeCount, result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Rows = rendered
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.RenderKey(result.StreamHash, opts.RenderKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	opts.Logger.Info("rendered rows",
		"nodes", result.Stats.NodeCount,
		"lanes", result.Lanes,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) render(ctx context.Context, s graph.Stream, opts Options) ([]rows.Row, map[string][]byte, error) {
	rendered, err := RenderRows(ctx, s, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	artifacts, err := Compose(ctx, s, rendered, opts)
	if err != nil {
		return nil, nil, err
	}
	return rendered, artifacts, nil
}

// cached returns the artifacts for every requested format, or false if any
// one of them is missing.
func (r *Runner) cached(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.RenderKey(hash, opts.RenderKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
			return nil, false
		}
		if !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLRender
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
