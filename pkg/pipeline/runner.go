package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/meander/pkg/cache"
	"github.com/matzehuels/meander/pkg/meander"
	"github.com/matzehuels/meander/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so the caching logic lives in one place.
//
// The Runner holds no per-run state; multiple goroutines can safely use the
// same Runner with different options.
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

// Execute runs generate → render with caching. Writing is left to the caller.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	genStart := time.Now()
	d, err := r.Generate(ctx, opts.Params)
	if err != nil {
		return nil, err
	}
	result.Drawing = d
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.EntityCount = len(d.Entities)
	result.Stats.PointCount = d.PointCount()
	result.Stats.TraceLength = d.TraceLength()

	opts.Logger.Info("generated geometry",
		"loops", opts.Params.NumberOfLoops,
		"loop_gap", d.Geometry.LoopGap,
		"points", result.Stats.PointCount,
		"duration", result.Stats.GenerateTime)

	if result.ParamsHash, err = ParamsHash(opts.Params); err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, info, err := r.RenderWithCacheInfo(ctx, d, result.ParamsHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo = info
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", len(info.Hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Generate validates p and assembles its drawing.
func (r *Runner) Generate(ctx context.Context, p meander.Params) (meander.Drawing, error) {
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, p.NumberOfLoops)
	start := time.Now()

	d, err := meander.Generate(p)
	hooks.OnGenerateComplete(ctx, len(d.Entities), d.PointCount(), time.Since(start), err)
	if err != nil {
		return meander.Drawing{}, err
	}
	return d, nil
}

// RenderWithCacheInfo renders every format in opts, serving formats from the
// cache where possible, and reports which were hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d meander.Drawing, paramsHash string, opts Options) (map[string][]byte, CacheInfo, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, CacheInfo{}, err
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var info CacheInfo
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(paramsHash, artifactVariant(format, opts))

		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				opts.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, format)
				artifacts[format] = data
				info.Hits = append(info.Hits, format)
				continue
			}
			cacheHooks.OnCacheMiss(ctx, format)
		}

		data, err := RenderFormat(d, format, opts)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return nil, CacheInfo{}, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, format, len(data))
		}
	}

	info.RenderHit = len(info.Hits) == len(opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return artifacts, info, nil
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
