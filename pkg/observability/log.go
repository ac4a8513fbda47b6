package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event to a charm logger at debug level; failures
// are logged as warnings.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger (log.Default() when nil).
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger.WithPrefix("hooks")}
}

func (h *LogHooks) OnParseStart(_ context.Context, path string) {
	h.Logger.Debug("parse start", "path", path)
}

func (h *LogHooks) OnParseComplete(_ context.Context, path string, concepts int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("parse failed", "path", path, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("parse complete", "path", path, "concepts", concepts, "elapsed", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, kind, root string) {
	h.Logger.Debug("render start", "kind", kind, "root", root)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, kind, root string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "kind", kind, "root", root, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("render complete", "kind", kind, "root", root, "bytes", size, "elapsed", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
