package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/cache"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/observability"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/htmltree"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/network"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/ttl"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache TTLs when positive.
	TTL time.Duration
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

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Cache key types reported to the cache hooks.
const (
	keyCatalogue = "catalogue"
	keyArtifact  = "artifact"
	keyPage      = "page"
)

// cacheGet looks key up. Backend errors count as misses.
func (r *Runner) cacheGet(ctx context.Context, keyType, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

// cacheSet stores data; a failed write only costs a later re-render.
func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, r.ttl(ttl)); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Load reads and parses the catalogue at opts.Path. The bool reports
// whether the parse came from the cache.
//
// A missing file yields an INPUT_NOT_FOUND error; a repeated concept id in
// strict mode yields DUPLICATE_CONCEPT.
func (r *Runner) Load(ctx context.Context, opts LoadOptions) (*Source, bool, error) {
	data, err := os.ReadFile(opts.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, demerr.Wrap(demerr.ErrCodeInputNotFound, err, "catalogue %s not found", opts.Path)
	}
	if err != nil {
		return nil, false, demerr.Wrap(demerr.ErrCodeInvalidInput, err, "read catalogue %s", opts.Path)
	}
	return r.LoadBytes(ctx, opts.Path, data, opts)
}

// LoadBytes parses catalogue bytes that were already read. path is only
// used for messages.
func (r *Runner) LoadBytes(ctx context.Context, path string, data []byte, opts LoadOptions) (*Source, bool, error) {
	src := &Source{Path: path, Hash: cache.Hash(data)}
	key := r.Keyer.CatalogueKey(src.Hash, cache.CatalogueKeyOpts{Strict: opts.Strict})

	if !opts.Refresh {
		if cached, hit := r.cacheGet(ctx, keyCatalogue, key); hit {
			var res ttl.Result
			if err := json.Unmarshal(cached, &res); err == nil && res.Concepts != nil {
				src.Result = &res
				return src, true, nil
			}
		}
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, path)
	start := time.Now()
	res, err := ttl.ParseWithOptions(string(data), ttl.Options{Strict: opts.Strict})
	concepts := 0
	if res != nil {
		concepts = len(res.Concepts)
	}
	hooks.OnParseComplete(ctx, path, concepts, time.Since(start), err)
	if errors.Is(err, ttl.ErrDuplicateConcept) {
		return nil, false, demerr.Wrap(demerr.ErrCodeDuplicateConcept, err, "duplicate concept %s in %s", strings.TrimPrefix(err.Error(), ttl.ErrDuplicateConcept.Error()+": "), path)
	}
	if err != nil {
		return nil, false, demerr.Wrap(demerr.ErrCodeInvalidInput, err, "parse %s", path)
	}
	src.Result = res

	if encoded, err := json.Marshal(res); err == nil {
		r.cacheSet(ctx, keyCatalogue, key, encoded, cache.TTLCatalogue)
	}
	return src, false, nil
}

// Subgraph returns the graph induced by root and everything below it.
// An unknown root yields UNKNOWN_ROOT.
func (r *Runner) Subgraph(src *Source, root string) (*dag.DAG, error) {
	root = strings.TrimPrefix(root, ":")
	if err := demerr.ValidateConceptID(root); err != nil {
		return nil, err
	}
	cat := src.Concepts()
	if !cat.Has(root) {
		return nil, demerr.New(demerr.ErrCodeUnknownRoot, "concept %q not found in %s", root, src.Path)
	}
	g, err := taxonomy.ToDAG(cat, taxonomy.Subset(cat, root), root)
	if err != nil {
		return nil, demerr.Wrap(demerr.ErrCodeInternal, err, "build subgraph for %s", root)
	}
	r.Logger.Debug("selected subgraph", "root", root, "nodes", g.NodeCount(), "edges", g.EdgeCount())
	return g, nil
}

// Visualize renders the subgraph under opts.Root as a node-link diagram.
func (r *Runner) Visualize(ctx context.Context, src *Source, opts RenderOptions) (*Artifact, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g, err := r.Subgraph(src, opts.Root)
	if err != nil {
		return nil, err
	}
	return r.RenderGraph(ctx, g, src.Hash, opts)
}

// RenderGraph renders an existing graph. sourceHash identifies the input
// the graph was built from and scopes the cache entry.
func (r *Runner) RenderGraph(ctx context.Context, g *dag.DAG, sourceHash string, opts RenderOptions) (*Artifact, error) {
	opts.SetDefaults()
	if err := opts.validateOutput(); err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(sourceHash, opts.ArtifactKeyOpts())

	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyArtifact, key); hit {
			return &Artifact{Data: data, Format: opts.Format, Graph: g, CacheHit: true}, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format, opts.Root)
	start := time.Now()
	dot := nodelink.ToDOT(g, opts.NodelinkOptions())
	data, err := nodelink.Render(ctx, dot, opts.Format)
	hooks.OnRenderComplete(ctx, opts.Format, opts.Root, len(data), time.Since(start), err)
	if err != nil {
		return nil, demerr.Wrap(demerr.ErrCodeRenderFailed, err, "render %s as %s", opts.Root, opts.Format)
	}

	r.cacheSet(ctx, keyArtifact, key, data, cache.TTLArtifact)
	return &Artifact{Data: data, Format: opts.Format, Graph: g}, nil
}

// Page renders an HTML page: the nested hierarchy list or the interactive
// network. With an empty Root the hierarchy starts at the well-known root
// (or every top-level concept when it is absent) and the network shows
// the whole catalogue.
func (r *Runner) Page(ctx context.Context, src *Source, opts PageOptions) ([]byte, bool, error) {
	opts.Root = strings.TrimPrefix(opts.Root, ":")
	opts.RootID = strings.TrimPrefix(opts.RootID, ":")
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	cat := src.Concepts()
	if opts.Root != "" && !cat.Has(opts.Root) {
		return nil, false, demerr.New(demerr.ErrCodeUnknownRoot, "concept %q not found in %s", opts.Root, src.Path)
	}

	key := r.Keyer.PageKey(src.Hash, cache.PageKeyOpts{Kind: opts.Kind, Root: opts.Root, RootID: opts.RootID, Title: opts.Title})
	if !opts.Refresh {
		if data, hit := r.cacheGet(ctx, keyPage, key); hit {
			return data, true, nil
		}
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Kind, opts.Root)
	start := time.Now()
	var buf bytes.Buffer
	var err error
	switch opts.Kind {
	case PageHierarchy:
		err = htmltree.Write(&buf, hierarchyRoots(cat, opts.Root, opts.RootID), htmltree.Options{Title: opts.Title})
	case PageNetwork:
		var g *dag.DAG
		g, err = networkGraph(cat, opts.Root)
		if err == nil {
			err = network.Write(&buf, network.Build(g), network.Options{Title: opts.Title})
		}
	}
	hooks.OnRenderComplete(ctx, opts.Kind, opts.Root, buf.Len(), time.Since(start), err)
	if err != nil {
		return nil, false, demerr.Wrap(demerr.ErrCodeRenderFailed, err, "render %s page", opts.Kind)
	}

	r.cacheSet(ctx, keyPage, key, buf.Bytes(), cache.TTLPage)
	return buf.Bytes(), false, nil
}

func hierarchyRoots(cat taxonomy.Catalogue, root, rootID string) []*taxonomy.Node {
	if root == "" {
		return taxonomy.Build(cat, taxonomy.BuildOptions{RootID: rootID})
	}
	n, ok := taxonomy.BuildFrom(cat, root)
	if !ok {
		return nil
	}
	return []*taxonomy.Node{n}
}

func networkGraph(cat taxonomy.Catalogue, root string) (*dag.DAG, error) {
	if root == "" {
		return taxonomy.ToDAG(cat, taxonomy.All(cat), "")
	}
	return taxonomy.ToDAG(cat, taxonomy.Subset(cat, root), root)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// String describes the runner for debug logs.
func (r *Runner) String() string {
	return fmt.Sprintf("pipeline.Runner{cache: %T}", r.Cache)
}
