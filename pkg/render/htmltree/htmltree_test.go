package htmltree

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

func catalogue() taxonomy.Catalogue {
	return taxonomy.Catalogue{
		"modeOfDemise": {ID: "modeOfDemise", Label: "Mode of Demise", Definition: "How a character dies."},
		"violence":     {ID: "violence", Label: "Violence", Broader: []string{"modeOfDemise"}},
		"poison":       {ID: "poison", Label: "Poisoning", Example: `"Hemlock" & wine`, Broader: []string{"modeOfDemise"}},
		"stab":         {ID: "stab", Label: "Stabbing", Broader: []string{"violence"}},
	}
}

func TestItems(t *testing.T) {
	roots := taxonomy.Build(catalogue(), taxonomy.BuildOptions{})
	items, err := Items(roots)
	if err != nil {
		t.Fatalf("Items() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "modeOfDemise" {
		t.Fatalf("roots = %+v, want modeOfDemise only", items)
	}
	kids := items[0].Children
	if len(kids) != 2 || kids[0].ID != "poison" || kids[1].ID != "violence" {
		t.Fatalf("children = %+v, want [poison violence]", kids)
	}
	if kids[1].Children[0].ID != "stab" {
		t.Errorf("violence children = %+v", kids[1].Children)
	}
	if kids[0].Definition != NoDefinition || kids[1].Example != NoExample {
		t.Errorf("placeholders not applied: %+v %+v", kids[0], kids[1])
	}
}

func TestWriteList(t *testing.T) {
	cat := taxonomy.Catalogue{
		"a": {ID: "a", Label: "A", Definition: "first"},
		"b": {ID: "b", Broader: []string{"a"}},
	}
	var buf bytes.Buffer
	if err := WriteList(&buf, taxonomy.Build(cat, taxonomy.BuildOptions{})); err != nil {
		t.Fatalf("WriteList() error = %v", err)
	}
	want := `<ul><li><span class="concept" data-id="a" data-definition="first" data-example="No example available.">A</span>` +
		`<ul><li><span class="concept" data-id="b" data-definition="No definition available." data-example="No example available.">b</span></li></ul>` +
		`</li></ul>`
	if buf.String() != want {
		t.Errorf("WriteList() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteList_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteList(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("WriteList(nil) = %q, want nothing", buf.String())
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	roots := taxonomy.Build(catalogue(), taxonomy.BuildOptions{})
	if err := Write(&buf, roots, Options{Title: "Demise"}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Demise</title>",
		"<h1>Demise</h1>",
		`<div id="hierarchy-container">`,
		`data-id="stab"`,
		`<div id="tooltip"></div>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Write() output missing %q", want)
		}
	}
	if strings.Contains(out, `"Hemlock" & wine`) {
		t.Error("example attribute should be escaped")
	}
	if !strings.Contains(out, "&#34;Hemlock&#34; &amp; wine") {
		t.Error("escaped example not found")
	}
}

func TestWrite_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	_ = Write(&a, taxonomy.Build(catalogue(), taxonomy.BuildOptions{}), Options{})
	_ = Write(&b, taxonomy.Build(catalogue(), taxonomy.BuildOptions{}), Options{})
	if a.String() != b.String() {
		t.Error("Write() should be deterministic")
	}
	if !strings.Contains(a.String(), "<title>Modes of Demise</title>") {
		t.Error("default title missing")
	}
}
