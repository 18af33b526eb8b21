// Package rows draws a commit graph as text, two lines per node.
//
// # Overview
//
// A [Renderer] consumes nodes one at a time in traversal order. For every node
// it returns a [Row] holding two strings:
//
//   - Transition: the node marker plus every branch, merge, and crossing
//     connector that happens on this row
//   - Padding: the line underneath, continuing every lane that stays open
//
// Each line has 2·lanes−1 cells: lane 0, then for every further lane the gap
// before it followed by the lane itself. Gaps only ever hold horizontal
// connectors; node markers live in lanes.
//
//	r := rows.New(2, rows.Options{})
//	row := r.Render(graph.Node{ID: 1, Column: 0, Parents: []int{2}})
//	fmt.Println(row.Transition)
//	fmt.Println(row.Padding)
//
// # Lane Occupancy
//
// The renderer owns a [lanes.State]. Glyph decisions for a node always see
// the occupancy from before that node: after the row is composed the node's
// own identity is retired from every lane and its parents are seeded into its
// column. Feeding the same nodes to a fresh renderer yields byte-identical
// output.
//
// # Glyphs
//
// Positions are classified as pass-through, termination (corner), fan-in
// (tee), connector (arrow), crossing, node, or empty. [Unicode] and [ASCII]
// map those classes to characters; any [GlyphSet] can be supplied.
//
// # Orientation
//
// [Orientation] holds two independent flips. HFlip mirrors the row for
// right-to-left drawing: cells are emitted in reverse and left/right glyph
// variants swap. VFlip is for bottom-up drawing: corners open downward
// instead of upward. Neither flip changes lane semantics.
//
// # Colors
//
// Every cell is prefixed with an ANSI SGR foreground escape. By default the
// color is keyed on the lane where the depicted lineage was found (red through
// cyan, rotating with the index), so hues follow lanes rather than lineages as
// branches shift columns. [ColorByLineage] keys on identity instead and
// [ColorNone] drops escapes entirely. The node marker always uses the reset
// escape. Lines carry no trailing reset; callers that write to a terminal
// should reset after each line.
//
// # Contract
//
// A node whose column lies outside the lane range is a bug in the upstream
// walker. Render panics on it rather than draw a silently wrong graph;
// validate untrusted input with [graph.Stream.Validate] first.
//
// Renderer is not safe for concurrent use.
package rows
