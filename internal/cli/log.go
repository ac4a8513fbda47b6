// Package cli implements the demise command-line interface.
//
// The commands turn the Modes of Demise catalogue into artifacts
// (node-link diagrams, HTML hierarchy and network pages, JSON) and report
// on it (counts, single concepts, diagnostics). The CLI is built with
// cobra; configuration comes from pkg/config and every command honours
// --verbose (-v) for debug-level logging via charmbracelet/log.
//
// # Commands
//
//   - visualize: render the subgraph under a root concept
//   - hierarchy, network: write the interactive HTML pages
//   - count, show, check: inspect the catalogue
//   - from-html: rebuild a graph from a hierarchy page
//   - export: write the concept graph as JSON
//   - browse: interactive tree browser
//   - serve: read-only HTTP API
//   - cache: manage the artifact cache
//
// # Logging
//
// Loggers are passed through context.Context so that long steps can report
// their duration.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that stamps each line with "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress reports how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time at info level, e.g.
// "Rendered physicalViolence (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, p.elapsed())
}

// debug is done at debug level.
func (p *progress) debug(msg string) {
	p.logger.Debugf("%s (%s)", msg, p.elapsed())
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
