package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gitlanes/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the column and label in node labels.
	// When false, only the node ID is shown.
	Detailed bool
}

// ToDOT converts a node stream to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes sharing a column are placed in the same DOT group so that lanes stay
// straight. Parents that never appear in the stream are drawn dashed.
func ToDOT(s graph.Stream, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	seen := make(map[int]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		seen[n.ID] = true
	}

	for _, n := range s.Nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n.ID), strings.Join(attrs, ", "))
	}

	var external []int
	for _, n := range s.Nodes {
		for _, p := range n.Parents {
			if !seen[p] {
				seen[p] = true
				external = append(external, p)
			}
		}
	}
	for _, id := range external {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", nodeID(id), strconv.Itoa(id))
	}

	buf.WriteString("\n")
	for _, n := range s.Nodes {
		for _, p := range n.Parents {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID(n.ID), nodeID(p))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "n" + strconv.Itoa(id) }

func fmtLabel(n graph.Node, detailed bool) string {
	id := strconv.Itoa(n.ID)
	if !detailed {
		return id
	}
	parts := []string{id, fmt.Sprintf("column: %d", n.Column)}
	if n.Label != "" {
		parts = append(parts, n.Label)
	}
	return strings.Join(parts, "\n")
}

func fmtAttrs(n graph.Node, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("group=\"lane%d\"", n.Column),
	}
	if n.IsMerge() {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from the
// origin with explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
