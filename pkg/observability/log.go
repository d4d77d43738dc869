package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline and cache event to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger under the "hooks" prefix.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("hooks")}
}

// Install registers h for both pipeline and cache events.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
}

func (h *LogHooks) start(stage, node, unit string, n int) {
	h.logger.Debug(stage+" started", "node", node, unit, n)
}

func (h *LogHooks) complete(stage, node, unit string, n int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug(stage+" failed", "node", node, "duration", d, "err", err)
		return
	}
	h.logger.Debug(stage+" done", "node", node, unit, n, "duration", d)
}

func (h *LogHooks) OnResolveStart(_ context.Context, node string, n int) {
	h.start("resolve", node, "instances", n)
}

func (h *LogHooks) OnResolveComplete(_ context.Context, node string, n int, d time.Duration, err error) {
	h.complete("resolve", node, "components", n, d, err)
}

func (h *LogHooks) OnFillStart(_ context.Context, node string, n int) {
	h.start("fill", node, "pads", n)
}

func (h *LogHooks) OnFillComplete(_ context.Context, node string, n int, d time.Duration, err error) {
	h.complete("fill", node, "inserted", n, d, err)
}

func (h *LogHooks) OnEmitStart(_ context.Context, node string, n int) {
	h.start("emit", node, "components", n)
}

func (h *LogHooks) OnEmitComplete(_ context.Context, node string, n int, d time.Duration, err error) {
	h.complete("emit", node, "commands", n, d, err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
