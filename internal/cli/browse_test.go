package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

func browseTree() []*taxonomy.Node {
	cat := taxonomy.Catalogue{
		"modeOfDemise":     {ID: "modeOfDemise", Label: "Mode of Demise"},
		"physicalViolence": {ID: "physicalViolence", Label: "Physical Violence", Definition: "Death by force.", Broader: []string{"modeOfDemise"}},
		"stabbing":         {ID: "stabbing", Label: "Stabbing", Example: "Caesar.", Broader: []string{"physicalViolence"}},
		"poison":           {ID: "poison", Label: "Poison", Broader: []string{"modeOfDemise"}},
	}
	return taxonomy.Build(cat, taxonomy.BuildOptions{})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m browseModel, keys ...string) browseModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(browseModel)
	}
	return m
}

func rowLabels(m browseModel) []string {
	var out []string
	for _, r := range m.rows {
		out = append(out, r.node.Concept.DisplayLabel())
	}
	return out
}

func TestBrowseModel_ExpandCollapse(t *testing.T) {
	m := newBrowseModel(browseTree())
	if got := strings.Join(rowLabels(m), ","); got != "Mode of Demise,Physical Violence,Poison" {
		t.Fatalf("initial rows = %s", got)
	}

	m = press(m, "j", "right")
	if got := strings.Join(rowLabels(m), ","); got != "Mode of Demise,Physical Violence,Stabbing,Poison" {
		t.Errorf("after expand = %s", got)
	}

	m = press(m, "j")
	if got := m.selected().node.Concept.ID; got != "stabbing" {
		t.Errorf("selected = %s, want stabbing", got)
	}

	// left on a leaf jumps to its parent, left again collapses it
	m = press(m, "left")
	if got := m.selected().node.Concept.ID; got != "physicalViolence" {
		t.Errorf("after left selected = %s, want physicalViolence", got)
	}
	m = press(m, "left")
	if len(m.rows) != 3 {
		t.Errorf("after collapse rows = %v", rowLabels(m))
	}

	m = press(m, " ")
	if len(m.rows) != 4 {
		t.Errorf("space should toggle open, rows = %v", rowLabels(m))
	}
}

func TestBrowseModel_CursorBounds(t *testing.T) {
	m := newBrowseModel(browseTree())
	m = press(m, "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	m = press(m, "j", "j", "j", "j", "j")
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want last row", m.cursor)
	}
}

func TestBrowseModel_View(t *testing.T) {
	m := press(newBrowseModel(browseTree()), "j")
	view := m.View()
	for _, want := range []string{"Modes of Demise", "▸ Physical Violence", "Death by force.", "1 below", "[2/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = press(m, "j")
	if !strings.Contains(m.View(), "No definition available.") {
		t.Error("view should show the definition placeholder for poison")
	}
}

func TestBrowseModel_Quit(t *testing.T) {
	_, cmd := newBrowseModel(browseTree()).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
