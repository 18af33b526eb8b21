package rows

import (
	"slices"
	"testing"

	"github.com/matzehuels/gitlanes/pkg/graph"
	"github.com/matzehuels/gitlanes/pkg/lanes"
)

// sampleStream exercises fan-out, fan-in, crossings, and lanes on both sides
// of the node.
var sampleStream = []graph.Node{
	{ID: 1, Column: 0, Parents: []int{2}},
	{ID: 2, Column: 0, Parents: []int{3, 4}},
	{ID: 3, Column: 0, Parents: []int{5}},
	{ID: 4, Column: 2, Parents: []int{5, 7}},
	{ID: 7, Column: 1, Parents: []int{5}},
	{ID: 5, Column: 0, Parents: []int{6}},
	{ID: 6, Column: 1},
}

func TestRenderLinearStart(t *testing.T) {
	r := New(2, Options{})
	row := r.Render(graph.Node{ID: 1, Column: 0, Parents: []int{2}})

	wantCells := []Cell{
		{Color: Reset, Glyph: "•", Padding: "│"},
		{Color: 32, Glyph: " ", Padding: " "},
		{Color: 32, Glyph: " ", Padding: " "},
	}
	if !slices.Equal(row.Cells, wantCells) {
		t.Errorf("Cells = %+v, want %+v", row.Cells, wantCells)
	}
	if want := "\x1b[0m•\x1b[32m \x1b[32m "; row.Transition != want {
		t.Errorf("Transition = %q, want %q", row.Transition, want)
	}
	if want := "\x1b[0m│\x1b[32m \x1b[32m "; row.Padding != want {
		t.Errorf("Padding = %q, want %q", row.Padding, want)
	}

	snap := r.State().Snapshot()
	if !slices.Equal(snap[0], []int{2}) || snap[1] != nil {
		t.Errorf("state after render = %v, want [[2] []]", snap)
	}
}

func TestRenderMergeTerminatesLane(t *testing.T) {
	s := lanes.New(2)
	s.Seed(1, []int{3})
	r := NewWithState(s, Options{})

	row := r.Render(graph.Node{ID: 3, Column: 0, Parents: []int{4, 5}})

	if want := "\x1b[0m•\x1b[32m─\x1b[32m╯"; row.Transition != want {
		t.Errorf("Transition = %q, want %q", row.Transition, want)
	}
	if want := "\x1b[0m│\x1b[32m \x1b[32m "; row.Padding != want {
		t.Errorf("Padding = %q, want %q", row.Padding, want)
	}

	snap := s.Snapshot()
	if !slices.Equal(snap[0], []int{4, 5}) || snap[1] != nil {
		t.Errorf("state after render = %v, want [[4 5] []]", snap)
	}
}

func TestRenderTeeWhenLaneContinues(t *testing.T) {
	s := lanes.New(2)
	s.Seed(1, []int{3, 9})
	r := NewWithState(s, Options{ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 3, Column: 0, Parents: []int{4}})
	if row.Transition != "•─┤" || row.Padding != "│ │" {
		t.Errorf("row = %q / %q, want %q / %q", row.Transition, row.Padding, "•─┤", "│ │")
	}
}

func TestRenderCrossing(t *testing.T) {
	s := lanes.New(1)
	s.Seed(0, []int{6, 7})
	r := NewWithState(s, Options{})

	row := r.Render(graph.Node{ID: 6, Column: 0, Parents: []int{6}})
	if want := "\x1b[31m✕"; row.Transition != want {
		t.Errorf("Transition = %q, want %q", row.Transition, want)
	}
	if want := "\x1b[31m│"; row.Padding != want {
		t.Errorf("Padding = %q, want %q", row.Padding, want)
	}
	if !s.IsOpen(0, 6) || !s.IsOpen(0, 7) {
		t.Errorf("state after render = %v, want [[6 7]]", s.Snapshot())
	}
}

func TestRenderCrossingIgnoresParents(t *testing.T) {
	s := lanes.New(1)
	s.Seed(0, []int{6, 8})
	r := NewWithState(s, Options{ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 6, Column: 0, Parents: []int{8}})
	if row.Transition != "•" {
		t.Errorf("Transition = %q, want node marker when only parents share the lane", row.Transition)
	}
}

func TestRenderConnectorsFromLeft(t *testing.T) {
	s := lanes.New(3)
	s.Seed(0, []int{4})
	r := NewWithState(s, Options{ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 4, Column: 2})
	if row.Transition != "╰───•" {
		t.Errorf("Transition = %q, want %q", row.Transition, "╰───•")
	}
	if row.Padding != "     " {
		t.Errorf("Padding = %q, want blanks", row.Padding)
	}
}

func TestRenderConnectorsFromRight(t *testing.T) {
	s := lanes.New(3)
	s.Seed(2, []int{4})
	r := NewWithState(s, Options{})

	row := r.Render(graph.Node{ID: 4, Column: 0})
	want := []Cell{
		{Color: Reset, Glyph: "•", Padding: " "},
		{Color: 33, Glyph: "─", Padding: " "}, // colored by the lane where 4 was found
		{Color: 33, Glyph: "─", Padding: " "},
		{Color: 33, Glyph: "─", Padding: " "},
		{Color: 33, Glyph: "╯", Padding: " "},
	}
	if !slices.Equal(row.Cells, want) {
		t.Errorf("Cells = %+v, want %+v", row.Cells, want)
	}
}

func TestRenderPassThroughBlocksNothing(t *testing.T) {
	s := lanes.New(3)
	s.Seed(1, []int{9})
	s.Seed(2, []int{4})
	r := NewWithState(s, Options{ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 4, Column: 0, Parents: []int{5}})
	if row.Transition != "•─│─╯" || row.Padding != "│ │  " {
		t.Errorf("row = %q / %q", row.Transition, row.Padding)
	}
}

func TestRenderPassThroughLeftOfNode(t *testing.T) {
	s := lanes.New(3)
	s.Seed(0, []int{4})
	s.Seed(1, []int{9})
	r := NewWithState(s, Options{ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 4, Column: 2, Parents: []int{5}})
	if row.Transition != "╰─│─•" || row.Padding != "  │ │" {
		t.Errorf("row = %q / %q", row.Transition, row.Padding)
	}
}

func TestRenderTeeLeftOfNode(t *testing.T) {
	s := lanes.New(3)
	s.Seed(0, []int{4, 8})
	s.Seed(1, []int{9})
	r := NewWithState(s, Options{ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 4, Column: 2, Parents: []int{5}})
	if row.Transition != "├─│─•" || row.Padding != "│ │ │" {
		t.Errorf("row = %q / %q", row.Transition, row.Padding)
	}
}

func TestRenderSampleStreamPrefix(t *testing.T) {
	want := []struct{ transition, padding string }{
		{"•    ", "│    "},
		{"•    ", "│    "},
		{"✕    ", "│    "},
		{"├───•", "│   │"},
		{"│ •─┤", "│ │ │"}, // lane 0 holds 5 only; node 7 passes it by
	}

	r := New(3, Options{ColorMode: ColorNone})
	for i, w := range want {
		row := r.Render(sampleStream[i])
		if row.Transition != w.transition || row.Padding != w.padding {
			t.Errorf("row %d (%v) = %q / %q, want %q / %q", i, sampleStream[i],
				row.Transition, row.Padding, w.transition, w.padding)
		}
	}
}

func TestRenderVFlipCorners(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		seedAt int
		column int
		want   string
	}{
		{"above right", Options{}, 1, 0, "•─╯"},
		{"above left", Options{}, 0, 1, "╰─•"},
		{"below right", Options{Orientation: Orientation{VFlip: true}}, 1, 0, "•─╮"},
		{"below left", Options{Orientation: Orientation{VFlip: true}}, 0, 1, "╭─•"},
		{"hflip above", Options{Orientation: Orientation{HFlip: true}}, 1, 0, "╰─•"},
		{"hflip below", Options{Orientation: Orientation{HFlip: true, VFlip: true}}, 1, 0, "╭─•"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := lanes.New(2)
			s.Seed(tt.seedAt, []int{1})
			tt.opts.ColorMode = ColorNone
			row := NewWithState(s, tt.opts).Render(graph.Node{ID: 1, Column: tt.column})
			if row.Transition != tt.want {
				t.Errorf("Transition = %q, want %q", row.Transition, tt.want)
			}
		})
	}
}

func TestRenderASCII(t *testing.T) {
	s := lanes.New(2)
	s.Seed(1, []int{3})
	r := NewWithState(s, Options{Glyphs: ASCII, ColorMode: ColorNone})

	row := r.Render(graph.Node{ID: 3, Column: 0, Parents: []int{4}})
	if row.Transition != "*-/" || row.Padding != "|  " {
		t.Errorf("row = %q / %q", row.Transition, row.Padding)
	}
}

func TestRenderColorByLineage(t *testing.T) {
	s := lanes.New(1)
	s.Seed(0, []int{6, 7})
	r := NewWithState(s, Options{ColorMode: ColorByLineage})

	row := r.Render(graph.Node{ID: 6, Column: 0, Parents: []int{6}})
	// 7 is the crossing lineage: 31 + 7%6.
	if want := "\x1b[32m✕"; row.Transition != want {
		t.Errorf("Transition = %q, want %q", row.Transition, want)
	}
}

func TestRenderPanicsOnBadColumn(t *testing.T) {
	for _, col := range []int{-1, 2} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Render with column %d should panic", col)
				}
			}()
			New(2, Options{}).Render(graph.Node{ID: 1, Column: col})
		}()
	}
}

func TestRowWidth(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		row := New(n, Options{}).Render(graph.Node{ID: 1, Column: 0})
		if len(row.Cells) != 2*n-1 {
			t.Errorf("lanes=%d: %d cells, want %d", n, len(row.Cells), 2*n-1)
		}
	}
}

func TestOwnLanePadding(t *testing.T) {
	r := New(3, Options{ColorMode: ColorNone})
	for _, n := range sampleStream {
		row := r.Render(n)
		got := row.Cells[2*n.Column].Padding
		want := Unicode.Vertical
		if n.IsRoot() {
			want = Unicode.Blank
		}
		if got != want {
			t.Errorf("%v: own-lane padding = %q, want %q", n, got, want)
		}
	}
}

func TestStateAfterRender(t *testing.T) {
	r := New(3, Options{})
	for _, n := range sampleStream {
		r.Render(n)
		st := r.State()
		if !n.HasParent(n.ID) && len(st.Lanes(n.ID)) != 0 {
			t.Errorf("%v: id still open in lanes %v", n, st.Lanes(n.ID))
		}
		for _, p := range n.Parents {
			if !st.IsOpen(n.Column, p) {
				t.Errorf("%v: parent %d not open in lane %d", n, p, n.Column)
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	render := func() []Row {
		return New(3, Options{ColorMode: ColorByLineage}).RenderAll(sampleStream)
	}
	a, b := render(), render()
	for i := range a {
		if a[i].Transition != b[i].Transition || a[i].Padding != b[i].Padding {
			t.Fatalf("row %d differs between runs: %q vs %q", i, a[i].Transition, b[i].Transition)
		}
	}
}

var mirrorGlyph = map[string]string{
	"├": "┤", "┤": "├",
	"╰": "╯", "╯": "╰",
	"╭": "╮", "╮": "╭",
}

func mirror(g string) string {
	if m, ok := mirrorGlyph[g]; ok {
		return m
	}
	return g
}

func TestHFlipMirrorsRows(t *testing.T) {
	for _, vflip := range []bool{false, true} {
		plain := New(3, Options{Orientation: Orientation{VFlip: vflip}}).RenderAll(sampleStream)
		flipped := New(3, Options{Orientation: Orientation{HFlip: true, VFlip: vflip}}).RenderAll(sampleStream)

		for i := range plain {
			want := slices.Clone(plain[i].Cells)
			slices.Reverse(want)
			for j := range want {
				want[j].Glyph = mirror(want[j].Glyph)
				want[j].Padding = mirror(want[j].Padding)
			}
			if !slices.Equal(flipped[i].Cells, want) {
				t.Errorf("vflip=%v row %d: flipped %+v, want %+v", vflip, i, flipped[i].Cells, want)
			}
		}
	}
}

func TestReach(t *testing.T) {
	rc := newReach(6, []int{1, 4})
	tests := []struct {
		from     int
		up, down int // -1 for none
	}{
		{-1, 1, -1},
		{0, 1, -1},
		{1, 1, 1},
		{2, 4, 1},
		{4, 4, 4},
		{5, -1, 4},
		{9, -1, 4},
	}

	for _, tt := range tests {
		up, ok := rc.up(tt.from)
		if !ok {
			up = -1
		}
		down, ok := rc.down(tt.from)
		if !ok {
			down = -1
		}
		if up != tt.up || down != tt.down {
			t.Errorf("from %d: up=%d down=%d, want up=%d down=%d", tt.from, up, down, tt.up, tt.down)
		}
	}

	var empty reach
	if _, ok := empty.up(0); ok {
		t.Error("empty reach should find nothing above")
	}
	if _, ok := empty.down(3); ok {
		t.Error("empty reach should find nothing below")
	}
}

// countingView counts the per-lane lookups made while composing a row.
type countingView struct {
	*lanes.State
	calls int
}

func (v *countingView) IsOpen(lane, id int) bool {
	v.calls++
	return v.State.IsOpen(lane, id)
}

func (v *countingView) OpenCount(lane int) int {
	v.calls++
	return v.State.OpenCount(lane)
}

func (v *countingView) MinOpen(lane int) (int, bool) {
	v.calls++
	return v.State.MinOpen(lane)
}

func (v *countingView) MinOther(lane int, keep func(id int) bool) (int, bool) {
	v.calls++
	return v.State.MinOther(lane, keep)
}

func TestComposeLinearInLanes(t *testing.T) {
	tests := []struct {
		name   string
		farID  bool // open the node's lineage in the last lane
		column int
	}{
		{"empty", false, 0},
		{"lineage far right", true, 0},
		{"lineage far left", false, -1},
	}

	for _, count := range []int{1000, 8000} {
		for _, tt := range tests {
			st := lanes.New(count)
			col := tt.column
			if col < 0 {
				col = count - 1
				st.Seed(0, []int{1})
			}
			if tt.farID {
				st.Seed(count-1, []int{1})
			}
			view := &countingView{State: st}
			c := composer{state: st, res: resolver{view: view, glyphs: Unicode}, mode: ColorNone}

			cells := c.compose(graph.Node{ID: 1, Column: col, Parents: []int{2}})
			if len(cells) != 2*count-1 {
				t.Fatalf("%s/%d: %d cells", tt.name, count, len(cells))
			}
			if view.calls > 8*count {
				t.Errorf("%s/%d: %d lane lookups for one row", tt.name, count, view.calls)
			}
		}
	}
}

func BenchmarkRenderWideRow(b *testing.B) {
	const count = 50000
	for i := 0; i < b.N; i++ {
		st := lanes.New(count)
		st.Seed(count-1, []int{1})
		NewWithState(st, Options{ColorMode: ColorNone}).Render(graph.Node{ID: 1, Column: 0, Parents: []int{2}})
	}
}
