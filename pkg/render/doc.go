// Package render groups the output renderers for node streams.
//
// # Lane Rows
//
// The [rows] subpackage is the terminal renderer: every node yields a
// transition line and a padding line of box-drawing (or ASCII) glyphs with
// optional ANSI colors.
//
//	r := rows.New(lanes, opts)
//	row := r.Render(node)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the same stream as a Graphviz diagram,
// grouping nodes by lane so the layout keeps lanes vertical.
//
//	dot := nodelink.ToDOT(stream, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [rows]: github.com/matzehuels/gitlanes/pkg/render/rows
// [nodelink]: github.com/matzehuels/gitlanes/pkg/render/nodelink
package render
