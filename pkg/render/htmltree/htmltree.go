// Package htmltree writes the concept hierarchy as a browsable HTML page.
//
// The page nests one <ul> per level inside a div with id
// "hierarchy-container". Each concept is a <span class="concept"> carrying
// its id, definition and example as data attributes; hovering shows the
// definition and clicking shows the example. [htmlimport] reads the same
// structure back.
//
// [htmlimport]: github.com/FPannach/Fanfiction-Annotation-Project/pkg/htmlimport
package htmltree

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

// Placeholders used when a concept has no definition or example.
const (
	NoDefinition = "No definition available."
	NoExample    = "No example available."
)

// ContainerID is the id of the element that holds the outermost list.
const ContainerID = "hierarchy-container"

//go:embed page.html.tmpl
var pageSource string

var pageTmpl = template.Must(template.New("htmltree").Parse(pageSource))

// Options configures the generated page.
type Options struct {
	Title   string // <title>; "Modes of Demise" when empty
	Heading string // <h1>; Title when empty
}

// Item is one list entry of the rendered tree.
type Item struct {
	ID         string
	Label      string
	Definition string
	Example    string
	Children   []*Item
}

// Items converts hierarchy trees into list items. Order and nesting follow
// [taxonomy.Walk], so a concept with two parents appears under both.
func Items(roots []*taxonomy.Node) ([]*Item, error) {
	b := &itemBuilder{}
	if err := taxonomy.Walk(roots, b); err != nil {
		return nil, err
	}
	return b.roots, nil
}

type itemBuilder struct {
	roots []*Item
	stack []*Item
}

func (b *itemBuilder) Enter(v taxonomy.Visit) error {
	c := v.Concept
	it := &Item{
		ID:         c.ID,
		Label:      c.DisplayLabel(),
		Definition: orDefault(c.Definition, NoDefinition),
		Example:    orDefault(c.Example, NoExample),
	}
	if n := len(b.stack); n > 0 {
		parent := b.stack[n-1]
		parent.Children = append(parent.Children, it)
	} else {
		b.roots = append(b.roots, it)
	}
	b.stack = append(b.stack, it)
	return nil
}

func (b *itemBuilder) Leave(taxonomy.Visit) error {
	b.stack = b.stack[:len(b.stack)-1]
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Write renders a complete HTML document for roots to w.
func Write(w io.Writer, roots []*taxonomy.Node, opts Options) error {
	items, err := Items(roots)
	if err != nil {
		return err
	}
	if opts.Title == "" {
		opts.Title = "Modes of Demise"
	}
	if opts.Heading == "" {
		opts.Heading = opts.Title
	}

	data := struct {
		Options
		Items []*Item
	}{opts, items}
	if err := pageTmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render hierarchy page: %w", err)
	}
	return nil
}

// WriteList renders only the nested <ul> for roots, without the page
// around it. Nothing is written when roots is empty.
func WriteList(w io.Writer, roots []*taxonomy.Node) error {
	items, err := Items(roots)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	if err := pageTmpl.ExecuteTemplate(w, "list", items); err != nil {
		return fmt.Errorf("render hierarchy list: %w", err)
	}
	return nil
}
