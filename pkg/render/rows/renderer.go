package rows

import (
	"fmt"

	"github.com/matzehuels/gitlanes/pkg/graph"
	"github.com/matzehuels/gitlanes/pkg/lanes"
)

// Row is the output for one node.
type Row struct {
	Cells      []Cell // in output order
	Transition string
	Padding    string
}

// Options configures a Renderer. The zero value draws Unicode glyphs,
// top-down and left-to-right, colored by lane.
type Options struct {
	Glyphs GlyphSet
	Orientation
	ColorMode ColorMode
}

// Renderer turns a stream of nodes into rows. It is stateful: nodes must be
// rendered in traversal order, one at a time.
type Renderer struct {
	opts  Options
	comp  composer
	state *lanes.State
}

// New creates a renderer for a session with the given number of lanes.
// It panics if laneCount is not positive.
func New(laneCount int, opts Options) *Renderer {
	return NewWithState(lanes.New(laneCount), opts)
}

// NewWithState creates a renderer that continues from an existing lane state,
// for example to resume a session or to render a fragment whose open lanes
// are already known.
func NewWithState(state *lanes.State, opts Options) *Renderer {
	if opts.Glyphs == (GlyphSet{}) {
		opts.Glyphs = Unicode
	}
	return &Renderer{
		opts:  opts,
		state: state,
		comp: composer{
			state: state,
			res:   resolver{view: state, glyphs: opts.Glyphs, orient: opts.Orientation},
			mode:  opts.ColorMode,
		},
	}
}

// Lanes returns the session's lane count.
func (r *Renderer) Lanes() int { return r.state.Count() }

// State exposes the lane occupancy left by the nodes rendered so far.
// Callers must not mutate it.
func (r *Renderer) State() *lanes.State { return r.state }

// Render draws n against the current occupancy, then retires n's identity and
// seeds its parents into its column. It panics if n.Column lies outside the
// lane range.
func (r *Renderer) Render(n graph.Node) Row {
	if n.Column < 0 || n.Column >= r.state.Count() {
		panic(fmt.Sprintf("rows: %v has column outside lanes 0..%d", n, r.state.Count()-1))
	}
	cells := r.comp.compose(n)
	r.comp.advance(n)
	return r.opts.Orientation.finish(cells, r.opts.ColorMode)
}

// RenderAll renders nodes in order and returns one row per node.
func (r *Renderer) RenderAll(nodes []graph.Node) []Row {
	out := make([]Row, len(nodes))
	for i, n := range nodes {
		out[i] = r.Render(n)
	}
	return out
}
