// Package pipeline runs the catalogue → subgraph → artifact steps shared by
// the CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read and parse the TTL catalogue ([Runner.Load])
//  2. Select: induce the subgraph under a root concept ([Runner.Subgraph])
//  3. Render: produce a node-link diagram ([Runner.Visualize]) or an HTML
//     page ([Runner.Page])
//
// Stages 1 and 3 go through the configured [cache.Cache]. Every key
// includes the hash of the catalogue bytes, so an edited catalogue never
// serves stale output.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	src, _, err := runner.Load(ctx, pipeline.LoadOptions{Path: "catalogue_MOD.ttl"})
//	if err != nil {
//	    return err
//	}
//	art, err := runner.Visualize(ctx, src, pipeline.RenderOptions{Root: "physicalViolence"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("images/violence.png", art.Data, 0o644)
package pipeline

import (
	"slices"
	"strings"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/cache"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	demerr "github.com/FPannach/Fanfiction-Annotation-Project/pkg/errors"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/ttl"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultFormat  = nodelink.FormatPNG
	DefaultRankDir = "LR"
	DefaultShape   = "plaintext"
)

// Page kinds.
const (
	PageHierarchy = "hierarchy"
	PageNetwork   = "network"
)

// =============================================================================
// Load
// =============================================================================

// LoadOptions configures [Runner.Load].
type LoadOptions struct {
	Path    string
	Strict  bool // repeated concept ids fail instead of last-wins
	Refresh bool // ignore a cached parse
}

// Source is a parsed catalogue and the identity of the bytes it came from.
type Source struct {
	Path   string
	Hash   string // SHA-256 of the file contents
	Result *ttl.Result
}

// Concepts returns the parsed catalogue.
func (s *Source) Concepts() taxonomy.Catalogue { return s.Result.Concepts }

// =============================================================================
// Render
// =============================================================================

// RenderOptions configures [Runner.Visualize].
type RenderOptions struct {
	Root     string
	Format   string
	RankDir  string
	Shape    string
	Style    string
	Detailed bool
	Tooltips bool
	Refresh  bool // ignore a cached artifact
}

// SetDefaults fills empty fields.
func (o *RenderOptions) SetDefaults() {
	o.Root = strings.TrimPrefix(o.Root, ":")
	if o.Root == "" {
		o.Root = taxonomy.WellKnownRoot
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.Shape == "" {
		o.Shape = DefaultShape
	}
}

// Validate checks the options after [RenderOptions.SetDefaults].
func (o RenderOptions) Validate() error {
	if err := demerr.ValidateConceptID(o.Root); err != nil {
		return err
	}
	return o.validateOutput()
}

// validateOutput checks the fields that reach Graphviz. Graphs that do not
// come from the catalogue may carry roots that are not concept ids.
func (o RenderOptions) validateOutput() error {
	if err := demerr.ValidateFormat(o.Format, nodelink.Formats...); err != nil {
		return err
	}
	if !slices.Contains(nodelink.RankDirs, o.RankDir) {
		return demerr.New(demerr.ErrCodeInvalidInput, "invalid rankdir: %s (must be one of %s)", o.RankDir, strings.Join(nodelink.RankDirs, ", "))
	}
	return nil
}

// NodelinkOptions converts to renderer options.
func (o RenderOptions) NodelinkOptions() nodelink.Options {
	return nodelink.Options{
		RankDir:  o.RankDir,
		Shape:    o.Shape,
		Style:    o.Style,
		Detailed: o.Detailed,
		Tooltips: o.Tooltips,
	}
}

// ArtifactKeyOpts converts to cache key options.
func (o RenderOptions) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Root:     o.Root,
		Format:   o.Format,
		RankDir:  o.RankDir,
		Shape:    o.Shape,
		Style:    o.Style,
		Detailed: o.Detailed,
		Tooltips: o.Tooltips,
	}
}

// Artifact is a rendered diagram.
type Artifact struct {
	Data     []byte
	Format   string
	Graph    *dag.DAG // the rendered subgraph
	CacheHit bool
}

// =============================================================================
// Pages
// =============================================================================

// PageOptions configures [Runner.Page].
type PageOptions struct {
	Kind string // PageHierarchy or PageNetwork
	Root string // empty: the whole catalogue
	// RootID is the well-known root preferred when the whole hierarchy is
	// built. Empty means [taxonomy.WellKnownRoot].
	RootID  string
	Title   string
	Refresh bool
}

// Validate checks the options.
func (o PageOptions) Validate() error {
	if err := demerr.ValidateFormat(o.Kind, PageHierarchy, PageNetwork); err != nil {
		return err
	}
	if o.Root != "" {
		if err := demerr.ValidateConceptID(o.Root); err != nil {
			return err
		}
	}
	if o.RootID != "" {
		return demerr.ValidateConceptID(o.RootID)
	}
	return nil
}
