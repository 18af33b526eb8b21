package rows

import "github.com/matzehuels/gitlanes/pkg/graph"

// laneView is the read-only part of lanes.State the resolver needs.
type laneView interface {
	Count() int
	IsOpen(lane, id int) bool
	OpenCount(lane int) int
	MinOpen(lane int) (int, bool)
	MinOther(lane int, keep func(id int) bool) (int, bool)
	Lanes(id int) []int
}

// resolved is the content of one position before coloring.
type resolved struct {
	glyph   string
	padding string
	src     colorSource
}

// resolver decides what to draw at a lane or gap for the current node.
// reach must be built for that node with [resolver.forNode].
type resolver struct {
	view   laneView
	glyphs GlyphSet
	orient Orientation
	reach  reach
}

// forNode returns a copy of r indexed for n's own lineage.
func (r resolver) forNode(n graph.Node) resolver {
	r.reach = newReach(r.view.Count(), r.view.Lanes(n.ID))
	return r
}

// lane resolves real lane l.
func (r resolver) lane(n graph.Node, l int) resolved {
	if l == n.Column {
		return r.own(n)
	}

	right := l > n.Column
	s := r.orient.side(right)
	if res, ok := r.occupied(n, l, s); ok {
		return res
	}

	var k int
	var found bool
	if right {
		k, found = r.scanUp(l)
	} else {
		k, found = r.scanDown(l)
	}
	if found {
		return resolved{r.glyphs.arrow(s), r.glyphs.Blank, lineageSource(k, n.ID)}
	}
	return r.passThrough(l)
}

// gap resolves the gap between lanes g-1 and g. Gaps only carry connectors.
func (r resolver) gap(n graph.Node, g int) resolved {
	if g > n.Column {
		s := r.orient.side(true)
		if r.view.IsOpen(g, n.ID) {
			return resolved{r.glyphs.arrow(s), r.glyphs.Blank, lineageSource(g, n.ID)}
		}
		if k, ok := r.scanUp(g); ok {
			return resolved{r.glyphs.arrow(s), r.glyphs.Blank, lineageSource(k, n.ID)}
		}
		return resolved{r.glyphs.Blank, r.glyphs.Blank, laneSource(g)}
	}

	s := r.orient.side(false)
	if r.view.IsOpen(g-1, n.ID) {
		return resolved{r.glyphs.arrow(s), r.glyphs.Blank, lineageSource(g-1, n.ID)}
	}
	if k, ok := r.scanDown(g-2); ok {
		return resolved{r.glyphs.arrow(s), r.glyphs.Blank, lineageSource(k, n.ID)}
	}
	return resolved{r.glyphs.Blank, r.glyphs.Blank, laneSource(g)}
}

// own resolves the node's own lane: a crossing if an unrelated lineage is
// open there, otherwise the node marker.
func (r resolver) own(n graph.Node) resolved {
	padding := r.glyphs.Blank
	if !n.IsRoot() {
		padding = r.glyphs.Vertical
	}

	related := func(id int) bool { return id == n.ID || n.HasParent(id) }
	if other, ok := r.view.MinOther(n.Column, related); ok {
		return resolved{r.glyphs.Cross, padding, lineageSource(n.Column, other)}
	}
	return resolved{r.glyphs.Node, padding, colorSource{index: n.Column, neutral: true}}
}

// occupied handles a lane holding at least one open lineage: a tee or corner
// when the node's own lineage is among them, otherwise a plain pass-through.
func (r resolver) occupied(n graph.Node, l int, s side) (resolved, bool) {
	if r.view.IsOpen(l, n.ID) {
		src := lineageSource(l, n.ID)
		if r.view.OpenCount(l) > 1 {
			return resolved{r.glyphs.tee(s), r.glyphs.Vertical, src}, true
		}
		return resolved{r.glyphs.corner(s, r.orient.VFlip), r.glyphs.Blank, src}, true
	}
	if r.view.OpenCount(l) > 0 {
		return r.passThrough(l), true
	}
	return resolved{}, false
}

func (r resolver) passThrough(l int) resolved {
	if id, ok := r.view.MinOpen(l); ok {
		return resolved{r.glyphs.Vertical, r.glyphs.Vertical, lineageSource(l, id)}
	}
	return resolved{r.glyphs.Blank, r.glyphs.Blank, laneSource(l)}
}

// scanUp returns the first lane at or after from holding the node's lineage.
func (r resolver) scanUp(from int) (int, bool) {
	return r.reach.up(from)
}

// scanDown returns the last lane at or before from holding the node's lineage.
func (r resolver) scanDown(from int) (int, bool) {
	return r.reach.down(from)
}

// reach answers nearest-lane queries for one lineage in constant time.
// next[k] is the first holding lane at or after k and prev[k] the last one at
// or before k, -1 when there is none. Both are nil when no lane holds it.
type reach struct {
	next []int
	prev []int
}

// newReach indexes held, which must be ascending and within 0..count-1.
func newReach(count int, held []int) reach {
	if len(held) == 0 {
		return reach{}
	}
	rc := reach{next: make([]int, count), prev: make([]int, count)}

	nearest, j := -1, len(held)-1
	for k := count - 1; k >= 0; k-- {
		if j >= 0 && held[j] == k {
			nearest = k
			j--
		}
		rc.next[k] = nearest
	}

	nearest, j = -1, 0
	for k := 0; k < count; k++ {
		if j < len(held) && held[j] == k {
			nearest = k
			j++
		}
		rc.prev[k] = nearest
	}
	return rc
}

func (rc reach) up(from int) (int, bool) {
	from = max(from, 0)
	if from >= len(rc.next) || rc.next[from] < 0 {
		return 0, false
	}
	return rc.next[from], true
}

func (rc reach) down(from int) (int, bool) {
	from = min(from, len(rc.prev)-1)
	if from < 0 || rc.prev[from] < 0 {
		return 0, false
	}
	return rc.prev[from], true
}
