package rows

import (
	"github.com/matzehuels/gitlanes/pkg/graph"
	"github.com/matzehuels/gitlanes/pkg/lanes"
)

// Cell is one rendered position of a row.
type Cell struct {
	Color   Color
	Glyph   string
	Padding string
}

// composer walks the fixed position sequence for a node and advances the
// lane state once the row is complete.
type composer struct {
	state *lanes.State
	res   resolver
	mode  ColorMode
}

// compose returns the cells for n in logical order: lane 0, then gap i and
// lane i for every further lane. It reads but never mutates the state, and
// does a constant amount of work per position.
func (c composer) compose(n graph.Node) []Cell {
	res := c.res.forNode(n)
	count := res.view.Count()
	cells := make([]Cell, 0, 2*count-1)
	cells = append(cells, c.cell(res.lane(n, 0)))
	for i := 1; i < count; i++ {
		cells = append(cells, c.cell(res.gap(n, i)))
		cells = append(cells, c.cell(res.lane(n, i)))
	}
	return cells
}

// advance retires n's lineage everywhere, then opens its parents in its lane.
// Retiring first lets a node continue as its own identity.
func (c composer) advance(n graph.Node) {
	c.state.Retire(n.ID)
	c.state.Seed(n.Column, n.Parents)
}

func (c composer) cell(r resolved) Cell {
	return Cell{Color: c.mode.color(r.src), Glyph: r.glyph, Padding: r.padding}
}
