package htmlimport

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/htmltree"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

func TestParse_RoundTrip(t *testing.T) {
	cat := taxonomy.Catalogue{
		"modeOfDemise": {ID: "modeOfDemise", Label: "Mode of Demise", Definition: "How a character dies."},
		"violence":     {ID: "violence", Label: "Violence", Broader: []string{"modeOfDemise"}},
		"poison":       {ID: "poison", Label: "Poisoning", Example: "Socrates & hemlock.", Broader: []string{"modeOfDemise"}},
		"venomBlade":   {ID: "venomBlade", Label: "Venomous Blade", Broader: []string{"poison", "violence"}},
	}
	var buf bytes.Buffer
	if err := htmltree.Write(&buf, taxonomy.Build(cat, taxonomy.BuildOptions{}), htmltree.Options{}); err != nil {
		t.Fatal(err)
	}

	res, err := Parse(&buf, Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	g := res.Graph

	if got := dag.NodeIDs(g.Nodes()); !reflect.DeepEqual(got, []string{"modeOfDemise", "poison", "venomBlade", "violence"}) {
		t.Errorf("nodes = %v", got)
	}
	if g.EdgeCount() != 4 {
		t.Errorf("edges = %v, want 4", g.Edges())
	}
	if got := g.Parents("venomBlade"); !reflect.DeepEqual(got, []string{"poison", "violence"}) {
		t.Errorf("venomBlade parents = %v", got)
	}

	root, _ := g.Node("modeOfDemise")
	if root.Label != "Mode of Demise" || root.MetaString(dag.MetaDefinition) != "How a character dies." {
		t.Errorf("root = %+v", root)
	}
	if root.MetaString(dag.MetaExample) != "" {
		t.Errorf("placeholder example should be dropped, got %q", root.MetaString(dag.MetaExample))
	}
	poison, _ := g.Node("poison")
	if poison.MetaString(dag.MetaExample) != "Socrates & hemlock." {
		t.Errorf("poison example = %q", poison.MetaString(dag.MetaExample))
	}
	if g.Meta()[dag.MetaRoot] != "modeOfDemise" {
		t.Errorf("root meta = %v", g.Meta()[dag.MetaRoot])
	}
	if blade, _ := g.Node("venomBlade"); blade.Level != 2 {
		t.Errorf("venomBlade level = %d, want 2", blade.Level)
	}
}

const handWritten = `<html><body>
<div id="hierarchy-container">
  <ul>
    <li><span class="concept" data-example="Root example">  Root
      concept </span>
      <ul>
        <li><span class="concept">Child A</span></li>
        <li>no span here<ul><li><span class="concept">Lost</span></li></ul></li>
        <li><span class="concept">Child B</span>
          <ul><li><span class="concept">Grandchild</span></li></ul>
        </li>
      </ul>
    </li>
  </ul>
</div>
</body></html>`

func TestParse_PositionIDs(t *testing.T) {
	res, err := Parse(strings.NewReader(handWritten), Options{})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	g := res.Graph

	if g.NodeCount() != 4 || g.EdgeCount() != 3 {
		t.Fatalf("graph = %d nodes, %d edges, want 4 and 3", g.NodeCount(), g.EdgeCount())
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", res.Skipped)
	}

	rootID := positionID([]int{0})
	root, ok := g.Node(rootID)
	if !ok {
		t.Fatalf("root %s missing", rootID)
	}
	if root.Label != "Root concept" {
		t.Errorf("root label = %q", root.Label)
	}
	if root.MetaString(dag.MetaExample) != "Root example" {
		t.Errorf("root example = %q", root.MetaString(dag.MetaExample))
	}

	grand, ok := g.Node(positionID([]int{0, 2, 0}))
	if !ok || grand.Label != "Grandchild" {
		t.Errorf("grandchild = %+v, %v", grand, ok)
	}

	again, _ := Parse(strings.NewReader(handWritten), Options{})
	if !reflect.DeepEqual(dag.NodeIDs(g.Nodes()), dag.NodeIDs(again.Graph.Nodes())) {
		t.Error("position ids should be stable across runs")
	}
}

func TestParse_NoHierarchy(t *testing.T) {
	tests := []struct {
		name, input string
	}{
		{"no container", `<html><body><ul><li>x</li></ul></body></html>`},
		{"empty container", `<div id="hierarchy-container"></div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), Options{})
			if !errors.Is(err, ErrNoHierarchy) {
				t.Errorf("Parse() error = %v, want %v", err, ErrNoHierarchy)
			}
		})
	}
}

func TestParse_CustomContainer(t *testing.T) {
	input := `<section id="tree"><ul><li><span class="concept big" data-id="x">X</span></li></ul></section>`
	res, err := Parse(strings.NewReader(input), Options{ContainerID: "tree"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := res.Graph.Node("x"); !ok {
		t.Error("node x missing")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hierarchy.html")
	if err := os.WriteFile(path, []byte(handWritten), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(path, Options{}); err != nil {
		t.Errorf("ParseFile() error = %v", err)
	}
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.html"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v", err)
	}
}
