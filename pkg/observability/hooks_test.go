package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type recordingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks
	events []string
}

func (r *recordingHooks) OnParseStart(_ context.Context, path string) {
	r.events = append(r.events, "parse:"+path)
}

func (r *recordingHooks) OnCacheHit(_ context.Context, keyType string) {
	r.events = append(r.events, "hit:"+keyType)
}

type recordingHTTP struct{ routes []string }

func (r *recordingHTTP) OnRequest(_ context.Context, method, route string, _ int, _ time.Duration) {
	r.routes = append(r.routes, method+" "+route)
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should default to NoopHTTPHooks")
	}

	rec := &recordingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)
	SetPipelineHooks(nil) // ignored

	ctx := context.Background()
	Pipeline().OnParseStart(ctx, "catalogue_MOD.ttl")
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "page")

	if got := strings.Join(rec.events, ","); got != "parse:catalogue_MOD.ttl,hit:artifact" {
		t.Errorf("events = %s", got)
	}

	httpRec := &recordingHTTP{}
	SetHTTPHooks(httpRec)
	HTTP().OnRequest(ctx, "GET", "/concepts/{id}", 200, time.Millisecond)
	if len(httpRec.routes) != 1 || httpRec.routes[0] != "GET /concepts/{id}" {
		t.Errorf("routes = %v", httpRec.routes)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore no-op hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnParseComplete(ctx, "catalogue_MOD.ttl", 42, time.Millisecond, nil)
	h.OnRenderComplete(ctx, "png", "poison", 0, time.Millisecond, errors.New("graphviz exploded"))
	h.OnCacheSet(ctx, "artifact", 2048)

	out := buf.String()
	for _, want := range []string{"parse complete", "concepts=42", "render failed", "graphviz exploded", "cache set", "bytes=2048"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
