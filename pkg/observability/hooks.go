// Package observability carries stage and cache events out of the pipeline.
//
// The pipeline reports to whatever hooks are registered here and never
// imports a backend itself. Both registries start as no-ops. The ioring
// binary installs [LogHooks] under --verbose; an embedding service can
// install its own metrics hooks instead:
//
//	observability.SetPipelineHooks(promHooks)
//	observability.SetCacheHooks(promHooks)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives one start and one complete event per stage.
// Counts are the stage's input on start and its output on complete.
type PipelineHooks interface {
	OnResolveStart(ctx context.Context, node string, instanceCount int)
	OnResolveComplete(ctx context.Context, node string, componentCount int, duration time.Duration, err error)

	OnFillStart(ctx context.Context, node string, padCount int)
	OnFillComplete(ctx context.Context, node string, inserted int, duration time.Duration, err error)

	OnEmitStart(ctx context.Context, node string, componentCount int)
	OnEmitComplete(ctx context.Context, node string, commandCount int, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "script" or
// "components".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopPipelineHooks discards every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolveStart(context.Context, string, int)                          {}
func (NoopPipelineHooks) OnResolveComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnFillStart(context.Context, string, int)                             {}
func (NoopPipelineHooks) OnFillComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnEmitStart(context.Context, string, int)                             {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, string, int, time.Duration, error)    {}

// NoopCacheHooks discards every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
}{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
}

// SetPipelineHooks replaces the pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// Pipeline returns the current pipeline hooks.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// Cache returns the current cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// Reset puts the no-op hooks back.
func Reset() {
	registry.Lock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.Unlock()
}
