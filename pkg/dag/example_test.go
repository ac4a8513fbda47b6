package dag_test

import (
	"fmt"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
)

func ExampleDAG_basic() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "modeOfDemise", Label: "Mode of Demise"})
	_ = g.AddNode(dag.Node{ID: "physicalViolence", Label: "Physical Violence"})
	_ = g.AddNode(dag.Node{ID: "stabbing", Label: "Stabbing"})
	_ = g.AddEdge(dag.Edge{From: "modeOfDemise", To: "physicalViolence"})
	_ = g.AddEdge(dag.Edge{From: "physicalViolence", To: "stabbing"})
	dag.AssignLevels(g)

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Max level:", g.MaxLevel())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Max level: 2
}

func ExampleDAG_traversal() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "violence"})
	_ = g.AddNode(dag.Node{ID: "drowning"})
	_ = g.AddNode(dag.Node{ID: "stabbing"})
	_ = g.AddEdge(dag.Edge{From: "violence", To: "stabbing"})
	_ = g.AddEdge(dag.Edge{From: "violence", To: "drowning"})

	fmt.Println("Children of violence:", g.Children("violence"))
	fmt.Println("Parents of stabbing:", g.Parents("stabbing"))
	fmt.Println("Sinks:", dag.NodeIDs(g.Sinks()))
	// Output:
	// Children of violence: [stabbing drowning]
	// Parents of stabbing: [violence]
	// Sinks: [drowning stabbing]
}

func ExampleDAG_FindCycle() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "a"})
	_ = g.AddNode(dag.Node{ID: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "a"})

	fmt.Println(g.FindCycle())
	fmt.Println(g.Validate())
	// Output:
	// [a b]
	// graph contains a cycle
}
