package io

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

func sampleGraph(t *testing.T) *dag.DAG {
	t.Helper()
	g := dag.New(dag.Metadata{dag.MetaRoot: "physicalViolence"})
	nodes := []dag.Node{
		{ID: "physicalViolence", Label: "Physical Violence", Meta: dag.Metadata{dag.MetaDefinition: "By force.", dag.MetaExample: ""}},
		{ID: "stabbing", Label: "Stabbing", Level: 1, Meta: dag.Metadata{dag.MetaExample: "Caesar."}},
		{ID: "beheading", Level: 1},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range []dag.Edge{{From: "physicalViolence", To: "stabbing"}, {From: "physicalViolence", To: "beheading"}} {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	g := sampleGraph(t)

	var first bytes.Buffer
	if err := WriteJSON(g, &first); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if strings.Contains(first.String(), `"example": ""`) {
		t.Error("empty metadata values should be omitted")
	}

	back, err := ReadJSON(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if back.NodeCount() != 3 || back.EdgeCount() != 2 {
		t.Fatalf("round trip = %d nodes, %d edges", back.NodeCount(), back.EdgeCount())
	}
	n, _ := back.Node("stabbing")
	if n.Label != "Stabbing" || n.Level != 1 || n.MetaString(dag.MetaExample) != "Caesar." {
		t.Errorf("stabbing = %+v", n)
	}
	if back.Meta()[dag.MetaRoot] != "physicalViolence" {
		t.Errorf("graph meta = %v", back.Meta())
	}

	var second bytes.Buffer
	if err := WriteJSON(back, &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("re-export differs:\n%s\nvs\n%s", first.String(), second.String())
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"duplicate node", `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`, dag.ErrDuplicateNodeID},
		{"empty id", `{"nodes":[{"id":""}],"edges":[]}`, dag.ErrInvalidNodeID},
		{"unknown target", `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"b"}]}`, dag.ErrUnknownTargetNode},
		{"duplicate edge", `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"},{"from":"a","to":"b"}]}`, dag.ErrDuplicateEdge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader("{")); err == nil {
		t.Error("malformed JSON should fail")
	}
}

func TestExportImportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := ExportJSON(sampleGraph(t), path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}
	g, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if got := dag.NodeIDs(g.Nodes()); strings.Join(got, ",") != "beheading,physicalViolence,stabbing" {
		t.Errorf("nodes = %v", got)
	}

	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON(missing) should fail")
	}
}
