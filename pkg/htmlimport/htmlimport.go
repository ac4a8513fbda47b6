// Package htmlimport rebuilds a concept graph from a hierarchy HTML page.
//
// The expected markup is the one [htmltree] writes: an element with id
// "hierarchy-container" holding nested <ul>/<li> lists, each <li> starting
// with a <span class="concept">. Pages edited by hand work as long as they
// keep that shape.
//
// [htmltree]: github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/htmltree
package htmlimport

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/htmltree"
)

// ErrNoHierarchy is returned when the page has no hierarchy container or
// the container holds no list.
var ErrNoHierarchy = errors.New("no hierarchy found")

// Namespace seeds the name-based UUIDs given to list items without a
// data-id attribute.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/FPannach/Fanfiction-Annotation-Project/htmlimport"))

// Options configures parsing.
type Options struct {
	// ContainerID is the id of the element holding the outermost list.
	// Empty means [htmltree.ContainerID].
	ContainerID string
}

// Result is an imported graph plus what was dropped on the way.
type Result struct {
	Graph *dag.DAG
	// Skipped counts <li> elements without a concept span. Their nested
	// lists are dropped with them.
	Skipped int
}

// Parse reads a hierarchy page from r.
//
// Each concept span becomes a node labelled with its trimmed text, with
// the data-definition and data-example attributes as metadata (the
// "No ... available." placeholders count as absent). The node id is the
// data-id attribute when present, so a concept listed under two parents
// becomes one node with two incoming edges. Without data-id, the id is a
// version 5 UUID of the item's position ("0/2/1"), which is stable across
// runs but unique per position.
func Parse(r io.Reader, opts Options) (*Result, error) {
	if opts.ContainerID == "" {
		opts.ContainerID = htmltree.ContainerID
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	container := find(doc, func(n *html.Node) bool { return attr(n, "id") == opts.ContainerID })
	if container == nil {
		return nil, fmt.Errorf("%w: no element with id %q", ErrNoHierarchy, opts.ContainerID)
	}
	list := find(container, isElement(atom.Ul))
	if list == nil {
		return nil, fmt.Errorf("%w: #%s has no list", ErrNoHierarchy, opts.ContainerID)
	}

	imp := &importer{res: &Result{Graph: dag.New(nil)}}
	roots, err := imp.list(list, "", nil)
	if err != nil {
		return nil, err
	}
	if len(roots) > 0 {
		imp.res.Graph.Meta()[dag.MetaRoot] = roots[0]
	}
	dag.AssignLevels(imp.res.Graph)
	return imp.res, nil
}

// ParseFile reads the hierarchy page at path.
func ParseFile(path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, opts)
}

type importer struct {
	res *Result
}

// list imports the <li> children of ul under parentID and returns the ids
// of the imported items.
func (imp *importer) list(ul *html.Node, parentID string, path []int) ([]string, error) {
	var ids []string
	pos := 0
	for li := ul.FirstChild; li != nil; li = li.NextSibling {
		if !isElement(atom.Li)(li) {
			continue
		}
		itemPath := append(slices.Clone(path), pos)
		pos++

		span := ownSpan(li)
		if span == nil {
			imp.res.Skipped++
			continue
		}
		id, err := imp.item(span, parentID, itemPath)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)

		if sub := childList(li, span); sub != nil {
			if _, err := imp.list(sub, id, itemPath); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

func (imp *importer) item(span *html.Node, parentID string, path []int) (string, error) {
	id := attr(span, "data-id")
	if id == "" {
		id = positionID(path)
	}

	g := imp.res.Graph
	n := dag.Node{
		ID:    id,
		Label: text(span),
		Meta: dag.Metadata{
			dag.MetaDefinition: strip(attr(span, "data-definition"), htmltree.NoDefinition),
			dag.MetaExample:    strip(attr(span, "data-example"), htmltree.NoExample),
		},
	}
	if err := g.AddNode(n); err != nil && !errors.Is(err, dag.ErrDuplicateNodeID) {
		return "", fmt.Errorf("node %s: %w", id, err)
	}
	if parentID != "" {
		if err := g.AddEdge(dag.Edge{From: parentID, To: id}); err != nil && !errors.Is(err, dag.ErrDuplicateEdge) {
			return "", fmt.Errorf("edge %s->%s: %w", parentID, id, err)
		}
	}
	return id, nil
}

func positionID(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return uuid.NewSHA1(Namespace, []byte(strings.Join(parts, "/"))).String()
}

// ownSpan returns the first concept span of li that is not part of a
// nested list.
func ownSpan(li *html.Node) *html.Node {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if isElement(atom.Ul)(c) || isElement(atom.Ol)(c) {
			continue
		}
		if span := find(c, isConceptSpan); span != nil {
			return span
		}
	}
	return nil
}

// childList returns the first <ul> inside li that is not inside span.
func childList(li, span *html.Node) *html.Node {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c == span {
			continue
		}
		if ul := find(c, isElement(atom.Ul)); ul != nil {
			return ul
		}
	}
	return nil
}

func strip(s, placeholder string) string {
	if s == placeholder {
		return ""
	}
	return s
}

// find returns the first node in document order (n included) matching f.
func find(n *html.Node, f func(*html.Node) bool) *html.Node {
	if f(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := find(c, f); m != nil {
			return m
		}
	}
	return nil
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool { return n.Type == html.ElementNode && n.DataAtom == a }
}

func isConceptSpan(n *html.Node) bool {
	return isElement(atom.Span)(n) && slices.Contains(strings.Fields(attr(n, "class")), "concept")
}

func attr(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// text returns the whitespace-normalized text content of n.
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
