// Package lanes tracks which lineages occupy which lanes while a commit graph
// is rendered row by row.
//
// # Overview
//
// A lineage (path identity) becomes open when some node names it as a parent:
// the identity is seeded into that node's lane. It stays open until the node
// carrying that identity is itself rendered, at which point it is retired from
// every lane at once. Between those two moments the renderer draws the lineage
// as a vertical line, a crossing, or a connector bending toward its node.
//
//	s := lanes.New(2)
//	s.Seed(0, []int{2})      // node 1 continues as lineage 2 in lane 0
//	s.IsOpen(0, 2)           // true
//	s.Retire(2)              // node 2 was rendered
//	s.OpenCount(0)           // 0
//
// # Lane Range
//
// A [State] covers lanes 0..Count()-1. Indexing outside that range is a
// contract violation by the caller and panics; lane assignment happens
// upstream and a bad column cannot be repaired here without silently
// corrupting the picture.
//
// # Concurrency
//
// State is not safe for concurrent use. Rendering is inherently ordered: each
// row must observe exactly the occupancy left by all earlier rows, so one
// State serves one sequential traversal. Independent graph fragments each
// need their own State.
package lanes
