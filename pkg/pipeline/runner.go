package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/LiixTT/AMS-IO-Agent/pkg/buildinfo"
	"github.com/LiixTT/AMS-IO-Agent/pkg/cache"
	"github.com/LiixTT/AMS-IO-Agent/pkg/observability"
	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
	"github.com/LiixTT/AMS-IO-Agent/pkg/skill"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, logger and configuration
// loader - it doesn't store pipeline results. Multiple goroutines can
// safely use the same Runner with different graphs; each run is itself
// single-threaded.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader *process.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If loader is nil, the process-wide loader is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger, loader *process.Loader) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	if loader == nil {
		loader = process.DefaultLoader()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Loader: loader,
	}
}

// cachedRun is the serialized form of a cached result.
type cachedRun struct {
	Components []ring.Component `json:"components"`
	Gaps       []ring.PadPair   `json:"gaps,omitempty"`
	Script     []string         `json:"script,omitempty"`
}

// Execute runs the complete resolve → fill → emit pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *ring.IntentGraph, opts Options) (*Result, error) {
	return r.run(ctx, g, opts, true)
}

// Plan runs the resolve and fill stages only.
func (r *Runner) Plan(ctx context.Context, g *ring.IntentGraph, opts Options) (*Result, error) {
	return r.run(ctx, g, opts, false)
}

func (r *Runner) run(ctx context.Context, g *ring.IntentGraph, opts Options, emit bool) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	node, err := opts.NodeFor(g)
	if err != nil {
		return nil, err
	}
	e, err := newEngine(r.Loader, node, g)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID: uuid.NewString(),
		Node:  node,
		Ring:  e.ring,
	}
	logger := opts.Logger.With("run", result.RunID[:8], "node", node)

	intent, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("hash intent graph: %w", err)
	}
	result.IntentHash = cache.Hash(intent)

	keyOpts := opts.ScriptKeyOpts(e.cfg, buildinfo.Header())
	key, keyType := r.Keyer.ComponentsKey(string(node), result.IntentHash, keyOpts), "components"
	if emit {
		key, keyType = r.Keyer.ScriptKey(string(node), result.IntentHash, keyOpts), "script"
	}

	if hit := r.lookup(ctx, key, keyType, opts, result, emit); hit {
		logger.Debug("cache hit", "key", keyType)
	} else {
		if err := r.place(ctx, e, g, opts, result, logger); err != nil {
			return nil, err
		}
		if emit {
			if err := r.emit(ctx, e, result, logger); err != nil {
				return nil, err
			}
		}
		r.store(ctx, key, keyType, result, opts)
	}
	result.Stats.count(result.Components)
	if result.Script != nil {
		result.Stats.Commands = result.Script.Commands()
	}

	if opts.Validate || opts.Validator != nil {
		v := opts.Validator
		if v == nil {
			v = e.validator()
		}
		report := v.Validate(result.Components, node)
		result.Report = &report
		logger.Info("validated layout", "pass", report.Pass,
			"errors", len(report.Errors()), "warnings", len(report.Warnings()))
	}
	return result, nil
}

// place runs the resolve and fill stages into result.
func (r *Runner) place(ctx context.Context, e *engine, g *ring.IntentGraph, opts Options, result *Result, logger *log.Logger) error {
	hooks := observability.Pipeline()
	node := string(result.Node)

	start := time.Now()
	hooks.OnResolveStart(ctx, node, len(g.Instances)+len(g.Components))
	components, err := e.resolve(g)
	result.Stats.ResolveTime = time.Since(start)
	hooks.OnResolveComplete(ctx, node, len(components), result.Stats.ResolveTime, err)
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	logger.Info("resolved positions",
		"components", len(components),
		"chip", fmt.Sprintf("%vx%v", e.ring.ChipWidth, e.ring.ChipHeight),
		"duration", result.Stats.ResolveTime)

	if err := ctx.Err(); err != nil {
		return err
	}

	gaps, err := g.Gaps()
	if err != nil {
		return fmt.Errorf("resolve: %w", err)
	}
	result.Gaps = gaps
	result.Components = components

	switch {
	case opts.NoFill:
		logger.Debug("filling disabled")
		return nil
	case g.Prefilled():
		logger.Debug("intent graph already carries spacers or corners; placed as given")
		return nil
	}

	start = time.Now()
	hooks.OnFillStart(ctx, node, len(ring.OuterPads(components)))
	filled, err := e.fill(components, gaps)
	result.Stats.FillTime = time.Since(start)
	hooks.OnFillComplete(ctx, node, len(filled)-len(components), result.Stats.FillTime, err)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	result.Components = filled
	logger.Info("inserted fillers",
		"inserted", len(filled)-len(components),
		"duration", result.Stats.FillTime)
	return nil
}

// emit runs the emission stage into result.
func (r *Runner) emit(ctx context.Context, e *engine, result *Result, logger *log.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hooks := observability.Pipeline()
	node := string(result.Node)

	start := time.Now()
	hooks.OnEmitStart(ctx, node, len(result.Components))
	script, err := e.emit(result.Components)
	result.Stats.EmitTime = time.Since(start)
	commands := 0
	if script != nil {
		commands = script.Commands()
	}
	hooks.OnEmitComplete(ctx, node, commands, result.Stats.EmitTime, err)
	if err != nil {
		return fmt.Errorf("emit: %w", err)
	}
	result.Script = script
	logger.Info("emitted script",
		"commands", commands,
		"duration", result.Stats.EmitTime)
	return nil
}

// lookup fills result from the cache. A corrupt entry counts as a miss.
func (r *Runner) lookup(ctx context.Context, key, keyType string, opts Options, result *Result, emit bool) bool {
	if opts.Refresh {
		return false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "key", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	var cached cachedRun
	if err := json.Unmarshal(data, &cached); err != nil || (emit && cached.Script == nil) {
		opts.Logger.Debug("ignoring unusable cache entry", "key", keyType)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	result.Components = cached.Components
	result.Gaps = cached.Gaps
	if emit {
		result.Script = &skill.Script{Node: result.Node, Lines: cached.Script}
	}
	result.CacheInfo.ScriptHit = true
	return true
}

func (r *Runner) store(ctx context.Context, key, keyType string, result *Result, opts Options) {
	entry := cachedRun{Components: result.Components, Gaps: result.Gaps}
	ttl := cache.TTLComponents
	if result.Script != nil {
		entry.Script = result.Script.Lines
		ttl = cache.TTLScript
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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
