// Package nodelink renders node streams as traditional node-link diagrams.
//
// # Overview
//
// The lane renderer in [github.com/matzehuels/gitlanes/pkg/render/rows] draws
// a history as terminal text. This package draws the same stream as a directed
// graph with Graphviz, one box per node and one arrow per parent link, which is
// handier for documentation and for checking a walker's column assignments.
//
// # Usage
//
//	dot := nodelink.ToDOT(stream, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Each node joins the group of its column, merges are shaded grey and
// parents missing from the stream are dashed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
