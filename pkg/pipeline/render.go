package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/gitlanes/pkg/graph"
	"github.com/matzehuels/gitlanes/pkg/render/nodelink"
	"github.com/matzehuels/gitlanes/pkg/render/rows"
)

// RenderRows renders every node of s in traversal order with a fresh
// renderer. The stream is validated first, so a bad column surfaces as an
// error rather than a panic. Cancellation is checked between nodes.
func RenderRows(ctx context.Context, s graph.Stream, opts Options) ([]rows.Row, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := checkStream(s, opts); err != nil {
		return nil, err
	}

	r := rows.New(s.LaneCount(), opts.RowOptions())
	out := make([]rows.Row, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, r.Render(n))
	}
	return out, nil
}

// checkStream validates s and enforces the lane limit before anything is
// allocated per lane.
func checkStream(s graph.Stream, opts Options) error {
	if err := s.CheckLanes(opts.MaxLanes); err != nil {
		return err
	}
	return s.Validate()
}

// Compose builds the requested artifacts from rendered rows. rs must hold
// one row per node of s, as returned by [RenderRows].
func Compose(ctx context.Context, s graph.Stream, rs []rows.Row, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if len(rs) != len(s.Nodes) {
		return nil, fmt.Errorf("compose: %d rows for %d nodes", len(rs), len(s.Nodes))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = Text(s.Nodes, rs, opts)
		case FormatJSON:
			data, err = JSON(s, rs, opts)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Labels}))
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, nodelink.ToDOT(s, nodelink.Options{Detailed: opts.Labels}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Lines returns the output lines for rendered rows: per node the transition
// line, with its label when labels are enabled, then the padding line. With
// colors on, every line ends in a reset. With Reverse the whole sequence is
// flipped so the history reads bottom-up.
func Lines(nodes []graph.Node, rs []rows.Row, opts Options) []string {
	reset := ""
	if opts.Colored() {
		reset = rows.Reset.SGR()
	}

	lines := make([]string, 0, 2*len(rs))
	for i, r := range rs {
		transition := r.Transition
		if opts.Labels && nodes[i].Label != "" {
			transition += reset + " " + nodes[i].Label
		}
		lines = append(lines, transition+reset, r.Padding+reset)
	}
	if opts.Reverse {
		for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
			lines[i], lines[j] = lines[j], lines[i]
		}
	}
	return lines
}

// Text joins [Lines] into a newline-terminated document.
func Text(nodes []graph.Node, rs []rows.Row, opts Options) []byte {
	var buf bytes.Buffer
	for _, line := range Lines(nodes, rs, opts) {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// JSONOutput is the json artifact.
type JSONOutput struct {
	Lanes int       `json:"lanes"`
	Rows  []JSONRow `json:"rows"`
}

// JSONRow is one rendered node in the json artifact.
type JSONRow struct {
	ID         int    `json:"id"`
	Transition string `json:"transition"`
	Padding    string `json:"padding"`
	Label      string `json:"label,omitempty"`
}

// JSON encodes rendered rows with their node ids. Rows are listed bottom-up
// when Reverse is set.
func JSON(s graph.Stream, rs []rows.Row, opts Options) ([]byte, error) {
	out := JSONOutput{Lanes: s.LaneCount(), Rows: make([]JSONRow, len(rs))}
	for i, r := range rs {
		row := JSONRow{ID: s.Nodes[i].ID, Transition: r.Transition, Padding: r.Padding}
		if opts.Labels {
			row.Label = s.Nodes[i].Label
		}
		j := i
		if opts.Reverse {
			j = len(rs) - 1 - i
		}
		out.Rows[j] = row
	}

	data, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
