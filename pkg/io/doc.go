// Package io provides JSON import and export for concept graphs.
//
// # Overview
//
// A concept graph (a [dag.DAG] built from the catalogue, or rebuilt from a
// hierarchy HTML page) can be written to a small JSON document and read
// back. The format is handy for:
//
//   - Feeding the taxonomy to external tools that expect nodes and edges
//   - Re-rendering a subgraph without re-parsing the catalogue
//   - Round-tripping: export, import and export again yields the same bytes
//
// # JSON Format
//
// The format has two required top-level arrays:
//
//	{
//	  "nodes": [
//	    {"id": "physicalViolence", "label": "Physical Violence"},
//	    {"id": "stabbing", "label": "Stabbing", "level": 1,
//	     "meta": {"definition": "Death by a pointed weapon."}}
//	  ],
//	  "edges": [
//	    {"from": "physicalViolence", "to": "stabbing"}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier (the concept id)
//
// Optional:
//   - label: Display label (the id is shown when omitted)
//   - level: Depth below the subgraph roots (0 when omitted)
//   - meta: Freeform object; "definition" and "example" are used by the
//     renderers
//
// Graph-level metadata (for example the root a subgraph was induced from)
// is written under a top-level "meta" key.
//
// # Edges
//
// Edges point from the broader concept to the narrower one. Both ends must
// name nodes that appear in "nodes".
package io
