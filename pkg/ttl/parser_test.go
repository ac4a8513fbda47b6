package ttl

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/taxonomy"
)

const sample = `@prefix : <http://example.org/demise#> .
@prefix skos: <http://www.w3.org/2004/02/skos/core#> .

:modeOfDemise a skos:Concept ;
    skos:prefLabel "Mode of Demise" ;
    skos:definition "The way a character dies." ;
    skos:narrower :physicalViolence .

:physicalViolence a skos:Concept ;
    skos:prefLabel "Physical Violence" ;
    skos:definition "Death inflicted by force, e.g. blades; clubs, fists." ;
    skos:broader :modeOfDemise .


:stabbing a skos:Concept ;
    skos:prefLabel "Stabbing" ;
    skos:example "Caesar on the Ides of March." ;
    skos:broader :physicalViolence .
`

func TestParse_Sample(t *testing.T) {
	res := Parse(sample)

	if len(res.Concepts) != 3 {
		t.Fatalf("Parse() concepts = %d, want 3", len(res.Concepts))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Line != 1 {
		t.Errorf("Skipped = %+v, want the prologue block", res.Skipped)
	}

	want := taxonomy.Concept{
		ID:         "physicalViolence",
		Label:      "Physical Violence",
		Definition: "Death inflicted by force, e.g. blades; clubs, fists.",
		Broader:    []string{"modeOfDemise"},
	}
	if got := res.Concepts["physicalViolence"]; !reflect.DeepEqual(got, want) {
		t.Errorf("physicalViolence = %+v, want %+v", got, want)
	}
	if got := res.Concepts["modeOfDemise"].Narrower; !reflect.DeepEqual(got, []string{"physicalViolence"}) {
		t.Errorf("modeOfDemise narrower = %v", got)
	}
	if got := res.Concepts["stabbing"].Example; got != "Caesar on the Ides of March." {
		t.Errorf("stabbing example = %q", got)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestParse_RoundTripSingleLine(t *testing.T) {
	res := Parse(`:x a skos:Concept ; skos:prefLabel "X" ; skos:broader :y .`)

	x, ok := res.Concepts["x"]
	if !ok {
		t.Fatal("concept x missing")
	}
	if x.Label != "X" {
		t.Errorf("label = %q, want %q", x.Label, "X")
	}
	if !reflect.DeepEqual(x.Broader, []string{"y"}) {
		t.Errorf("broader = %v, want [y]", x.Broader)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, src := range []string{"", "\n\n   \n"} {
		res := Parse(src)
		if len(res.Concepts) != 0 || len(res.Skipped) != 0 {
			t.Errorf("Parse(%q) = %+v, want empty", src, res)
		}
	}
}

func TestParse_MissingFields(t *testing.T) {
	res := Parse(":bare a skos:Concept .")
	got := res.Concepts["bare"]
	if got.Label != "" || got.Definition != "" || got.Example != "" || got.Broader != nil {
		t.Errorf("bare = %+v, want only an id", got)
	}
	if got.DisplayLabel() != "bare" {
		t.Errorf("DisplayLabel() = %q, want %q", got.DisplayLabel(), "bare")
	}
}

func TestParse_MultipleBroader(t *testing.T) {
	res := Parse(`:x skos:broader :a ;
    skos:broader :b, :c ;
    skos:broader :a .`)

	if got := res.Concepts["x"].Broader; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("broader = %v, want [a b c]", got)
	}
}

func TestParse_FirstTextWins(t *testing.T) {
	res := Parse(`:x skos:prefLabel "First" ;
    skos:prefLabel "Second"@en .`)

	if got := res.Concepts["x"].Label; got != "First" {
		t.Errorf("label = %q, want First", got)
	}
}

func TestParse_SupplementalFields(t *testing.T) {
	res := Parse(`:x skos:altLabel "One", "Two" ;
    skos:scopeNote "Only mythological deaths." .`)

	x := res.Concepts["x"]
	if !reflect.DeepEqual(x.AltLabels, []string{"One", "Two"}) {
		t.Errorf("altLabels = %v", x.AltLabels)
	}
	if x.ScopeNote != "Only mythological deaths." {
		t.Errorf("scopeNote = %q", x.ScopeNote)
	}
}

func TestParse_SkipsBlocksWithoutID(t *testing.T) {
	res := Parse(`skos:Concept is not a subject .

"just a string"

:ok skos:prefLabel "OK" .`)

	if len(res.Concepts) != 1 {
		t.Errorf("concepts = %v, want only ok", res.Concepts.IDs())
	}
	if len(res.Skipped) != 2 {
		t.Errorf("Skipped = %+v, want 2", res.Skipped)
	}
}

func TestParse_RecoversFromBadStatement(t *testing.T) {
	res := Parse(`:x skos:prefLabel "X" ;
    "stray" "tokens" ;
    skos:broader "not a ref", :y ;
    skos:definition "Kept." .`)

	x := res.Concepts["x"]
	if x.Label != "X" || x.Definition != "Kept." {
		t.Errorf("x = %+v", x)
	}
	if !reflect.DeepEqual(x.Broader, []string{"y"}) {
		t.Errorf("broader = %v, want [y]", x.Broader)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("Warnings = %v, want 2", res.Warnings)
	}
}

func TestParse_MissingSemicolon(t *testing.T) {
	res := Parse(`:x a skos:Concept ;
    skos:prefLabel "X"
    skos:broader :y ;
    skos:definition "D" .`)

	x := res.Concepts["x"]
	if x.Label != "X" || x.Definition != "D" {
		t.Errorf("x = %+v", x)
	}
	if !reflect.DeepEqual(x.Broader, []string{"y"}) {
		t.Errorf("broader = %v, want [y]", x.Broader)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Line != 3 {
		t.Errorf("Warnings = %v, want one on line 3", res.Warnings)
	}
}

func TestParse_UnterminatedString(t *testing.T) {
	res := Parse(`:x skos:prefLabel "oops ;
    skos:broader :y .`)

	x, ok := res.Concepts["x"]
	if !ok {
		t.Fatal("x should still be parsed")
	}
	if x.Label != "" {
		t.Errorf("label = %q, want empty", x.Label)
	}
	if len(res.Warnings) == 0 {
		t.Error("expected a warning for the unterminated string")
	}
}

func TestParse_DuplicateLastWins(t *testing.T) {
	src := `:x skos:prefLabel "Old" ; skos:broader :a .

:x skos:prefLabel "New" .`

	res := Parse(src)
	x := res.Concepts["x"]
	if x.Label != "New" || x.Broader != nil {
		t.Errorf("x = %+v, want later block to replace earlier", x)
	}
	want := []Duplicate{{ID: "x", FirstLine: 1, Line: 3}}
	if !reflect.DeepEqual(res.Duplicates, want) {
		t.Errorf("Duplicates = %+v, want %+v", res.Duplicates, want)
	}

	_, err := ParseWithOptions(src, Options{Strict: true})
	if !errors.Is(err, ErrDuplicateConcept) {
		t.Errorf("strict error = %v, want %v", err, ErrDuplicateConcept)
	}
}

func TestParse_SecondSubjectInBlock(t *testing.T) {
	res := Parse(`:a skos:prefLabel "A" .
:b skos:broader :a .`)

	if len(res.Concepts) != 2 {
		t.Errorf("concepts = %v, want [a b]", res.Concepts.IDs())
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v, want 1", res.Warnings)
	}
}

func TestBlocks(t *testing.T) {
	blocks := Blocks("a\nb\n\n \t\n\nc\r\n")
	want := []Block{{Line: 1, Text: "a\nb"}, {Line: 6, Text: "c"}}
	if !reflect.DeepEqual(blocks, want) {
		t.Errorf("Blocks() = %+v, want %+v", blocks, want)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogue.ttl")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := ParseFile(path, Options{})
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(res.Concepts) != 3 {
		t.Errorf("concepts = %d, want 3", len(res.Concepts))
	}

	_, err = ParseFile(filepath.Join(dir, "missing.ttl"), Options{})
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("ParseFile(missing) error = %v, want %v", err, ErrInputNotFound)
	}
}
