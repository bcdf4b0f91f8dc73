package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flexline/pkg/cache"
	"github.com/matzehuels/flexline/pkg/observability"
	"github.com/matzehuels/flexline/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *scene.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	if doc != nil {
		result.Stats.ItemCount = len(doc.Items)
		if data, err := scene.MarshalDocument(doc); err == nil {
			result.SceneHash = cache.Hash(data)
		}
	}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LineCount = len(l.ContentLines())
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"size", fmt.Sprintf("%dx%d", l.Width, l.Height),
		"lines", result.Stats.LineCount,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. Refresh skips the lookup but still stores the result.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, doc *scene.Document, opts Options) (scene.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Layout{}, false, err
	}

	docData, err := scene.MarshalDocument(doc)
	if err != nil {
		return scene.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(docData), opts.LayoutKeyOpts())
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := scene.UnmarshalLayout(data)
			if err == nil {
				hooks.OnCacheHit(ctx, cache.KeyTypeLayout)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
			r.Logger.Warn("discarding unreadable cached layout", "key", cacheKey, "error", err)
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "key", cacheKey, "error", err)
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeLayout)
	}

	l, err := ComputeLayout(ctx, doc, opts)
	if err != nil {
		return scene.Layout{}, false, err
	}

	if data, err := scene.MarshalLayout(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache store failed", "key", cacheKey, "error", err)
		} else {
			hooks.OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}

	return l, false, nil
}

// ComputeLayout is a convenience wrapper that calls ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, doc *scene.Document, opts Options) (scene.Layout, error) {
	l, _, err := r.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is set only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := scene.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)
	hooks := observability.Cache()

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			hooks.OnCacheHit(ctx, cache.KeyTypeArtifact)
			return artifacts, true, nil
		}
		hooks.OnCacheMiss(ctx, cache.KeyTypeArtifact)
	}

	pipelineHooks := observability.Pipeline()
	pipelineHooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, l, opts)
	pipelineHooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache store failed", "key", cacheKey, "error", err)
			continue
		}
		hooks.OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
