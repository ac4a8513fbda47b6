package taxonomy

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

type pair struct {
	parent, id string
	depth      int
	repeat     bool
}

func pairsOf(visits []Visit) []pair {
	out := make([]pair, len(visits))
	for i, v := range visits {
		out[i] = pair{v.ParentID, v.Concept.ID, v.Depth, v.Repeat}
	}
	return out
}

func diamond() Catalogue {
	return catalogue(
		Concept{ID: "top", Label: "Top"},
		Concept{ID: "left", Label: "Left", Broader: []string{"top"}},
		Concept{ID: "right", Label: "Right", Broader: []string{"top"}},
		Concept{ID: "bottom", Label: "Bottom", Broader: []string{"left", "right"}},
	)
}

func TestPairs_PreOrder(t *testing.T) {
	roots := Build(diamond(), BuildOptions{RootID: "top"})

	want := []pair{
		{"", "top", 0, false},
		{"top", "left", 1, false},
		{"left", "bottom", 2, false},
		{"top", "right", 1, false},
		{"right", "bottom", 2, true},
	}
	if got := pairsOf(Pairs(roots)); !reflect.DeepEqual(got, want) {
		t.Errorf("Pairs() = %v, want %v", got, want)
	}
}

func TestWalkSubset_EachEdgeOnce(t *testing.T) {
	cat := diamond()
	got := pairsOf(SubsetPairs(cat, Subset(cat, "top"), "top"))

	want := []pair{
		{"", "top", 0, false},
		{"top", "left", 1, false},
		{"left", "bottom", 2, false},
		{"top", "right", 1, false},
		{"right", "bottom", 2, true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SubsetPairs() = %v, want %v", got, want)
	}
}

func TestWalkSubset_FiltersOutsiders(t *testing.T) {
	cat := diamond()
	allowed := Subset(cat, "left")

	got := pairsOf(SubsetPairs(cat, allowed, "left"))
	want := []pair{
		{"", "left", 0, false},
		{"left", "bottom", 1, false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SubsetPairs(left) = %v, want %v", got, want)
	}
}

func TestWalkSubset_CycleThroughStart(t *testing.T) {
	cat := catalogue(
		Concept{ID: "a", Broader: []string{"b"}},
		Concept{ID: "b", Broader: []string{"a"}},
	)

	got := pairsOf(SubsetPairs(cat, Subset(cat, "b"), "b"))
	want := []pair{
		{"", "b", 0, false},
		{"b", "a", 1, false},
		{"a", "b", 2, true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SubsetPairs() = %v, want %v", got, want)
	}
}

func TestWalkSubset_WithoutStart(t *testing.T) {
	cat := catalogue(
		Concept{ID: "x", Label: "Zulu"},
		Concept{ID: "y", Label: "Alpha"},
		Concept{ID: "loop1", Broader: []string{"loop2"}},
		Concept{ID: "loop2", Broader: []string{"loop1"}},
	)

	var ids []string
	for _, v := range SubsetPairs(cat, All(cat), "") {
		ids = append(ids, v.ParentID+">"+v.Concept.ID)
	}
	want := []string{">y", ">x", ">loop1", "loop1>loop2", "loop2>loop1"}
	if !slices.Equal(ids, want) {
		t.Errorf("SubsetPairs() = %v, want %v", ids, want)
	}
}

type recorder struct {
	events []string
	skip   string
}

func (r *recorder) Enter(v Visit) error {
	r.events = append(r.events, "+"+v.Concept.ID)
	if v.Concept.ID == r.skip {
		return SkipChildren
	}
	return nil
}

func (r *recorder) Leave(v Visit) error {
	r.events = append(r.events, "-"+v.Concept.ID)
	return nil
}

func TestWalk_EnterLeave(t *testing.T) {
	rec := &recorder{skip: "b"}
	if err := Walk(Build(chain(), BuildOptions{}), rec); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := []string{"+a", "+b", "-b", "-a"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestWalk_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Walk(Build(chain(), BuildOptions{}), VisitFunc(func(v Visit) error {
		calls++
		if v.Concept.ID == "b" {
			return boom
		}
		return nil
	}))

	if !errors.Is(err, boom) {
		t.Errorf("Walk() error = %v, want %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestEdges(t *testing.T) {
	cat := diamond()
	got := Edges(cat, All(cat))

	want := []Edge{
		{"top", "left"},
		{"left", "bottom"},
		{"top", "right"},
		{"right", "bottom"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestToDAG(t *testing.T) {
	cat := diamond()
	cat["bottom"] = Concept{ID: "bottom", Label: "Bottom", Definition: "d", Example: "e", Broader: []string{"left", "right"}}

	g, err := ToDAG(cat, Subset(cat, "top"), "top")
	if err != nil {
		t.Fatalf("ToDAG() error = %v", err)
	}

	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Errorf("ToDAG() = %d nodes, %d edges, want 4, 4", g.NodeCount(), g.EdgeCount())
	}
	if g.Meta()["root"] != "top" {
		t.Errorf("root meta = %v", g.Meta()["root"])
	}

	n, ok := g.Node("bottom")
	if !ok {
		t.Fatal("bottom missing")
	}
	if n.Level != 2 {
		t.Errorf("bottom level = %d, want 2", n.Level)
	}
	if n.MetaString("definition") != "d" || n.MetaString("example") != "e" {
		t.Errorf("bottom meta = %v", n.Meta)
	}
}

func TestTreeToDAG(t *testing.T) {
	g, err := TreeToDAG(Build(diamond(), BuildOptions{RootID: "top"}))
	if err != nil {
		t.Fatalf("TreeToDAG() error = %v", err)
	}
	if g.NodeCount() != 4 || g.EdgeCount() != 4 {
		t.Errorf("TreeToDAG() = %d nodes, %d edges, want 4, 4", g.NodeCount(), g.EdgeCount())
	}
}
