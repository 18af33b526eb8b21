package rows

import (
	"slices"
	"strings"
)

// Orientation holds the two presentation flips.
type Orientation struct {
	// HFlip draws right to left: cells are emitted in reverse order and
	// left/right glyph variants swap.
	HFlip bool
	// VFlip draws bottom-up: terminating lineages come from below.
	VFlip bool
}

// side maps a logical side of the node to the side it appears on.
func (o Orientation) side(logicalRight bool) side {
	if logicalRight != o.HFlip {
		return sideRight
	}
	return sideLeft
}

// finish orders cells for output and renders both lines.
func (o Orientation) finish(cells []Cell, mode ColorMode) Row {
	if o.HFlip {
		cells = slices.Clone(cells)
		slices.Reverse(cells)
	}

	var transition, padding strings.Builder
	for _, c := range cells {
		if mode != ColorNone {
			esc := c.Color.SGR()
			transition.WriteString(esc)
			padding.WriteString(esc)
		}
		transition.WriteString(c.Glyph)
		padding.WriteString(c.Padding)
	}
	return Row{Cells: cells, Transition: transition.String(), Padding: padding.String()}
}
