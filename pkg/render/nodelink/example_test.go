package nodelink_test

import (
	"fmt"

	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/dag"
	"github.com/FPannach/Fanfiction-Annotation-Project/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: "drowning", Label: "Drowning"})
	_ = g.AddNode(dag.Node{ID: "shipwreck", Label: "Shipwreck", Level: 1})
	_ = g.AddEdge(dag.Edge{From: "drowning", To: "shipwreck"})

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{}))
	// Output:
	// digraph G {
	//   rankdir=LR;
	//   bgcolor="transparent";
	//   node [shape="plaintext", fontname="Helvetica"];
	//
	//   "drowning" [label="Drowning"];
	//   "shipwreck" [label="Shipwreck"];
	//
	//   "drowning" -> "shipwreck";
	// }
}
