package rows

import "strconv"

// ColorMode selects how cell colors are chosen.
type ColorMode int

const (
	// ColorByLane keys the palette on the lane where the depicted lineage
	// was found.
	ColorByLane ColorMode = iota
	// ColorByLineage keys the palette on the lineage identity itself, so a
	// branch keeps its hue when it moves between lanes.
	ColorByLineage
	// ColorNone emits no escape sequences.
	ColorNone
)

// Color mode names accepted by [ColorModeByName].
const (
	ColorModeLane    = "lane"
	ColorModeLineage = "lineage"
	ColorModeNone    = "none"
)

// ColorModeByName parses a color mode name.
func ColorModeByName(name string) (ColorMode, bool) {
	switch name {
	case ColorModeLane:
		return ColorByLane, true
	case ColorModeLineage:
		return ColorByLineage, true
	case ColorModeNone:
		return ColorNone, true
	}
	return 0, false
}

// String returns the mode's name.
func (m ColorMode) String() string {
	switch m {
	case ColorByLineage:
		return ColorModeLineage
	case ColorNone:
		return ColorModeNone
	default:
		return ColorModeLane
	}
}

// Color is an SGR parameter: 0 resets, 31..36 are red through cyan.
type Color int

const (
	// Reset is the terminal's default color.
	Reset Color = 0

	colorBase = 31

	// PaletteSize is the number of distinct hues cells rotate through.
	PaletteSize = 6
)

// SGR returns the escape sequence that selects c.
func (c Color) SGR() string {
	return "\x1b[" + strconv.Itoa(int(c)) + "m"
}

// paletteColor maps any integer key onto the six-color palette.
func paletteColor(k int) Color {
	m := k % PaletteSize
	if m < 0 {
		m += PaletteSize
	}
	return Color(colorBase + m)
}

// colorSource records what a cell depicts, independently of where it is
// drawn. index is the lane or gap where the lineage was actually found.
type colorSource struct {
	index   int
	id      int
	hasID   bool
	neutral bool
}

func laneSource(index int) colorSource { return colorSource{index: index} }

func lineageSource(index, id int) colorSource {
	return colorSource{index: index, id: id, hasID: true}
}

func (m ColorMode) color(src colorSource) Color {
	if src.neutral {
		return Reset
	}
	if m == ColorByLineage && src.hasID {
		return paletteColor(src.id)
	}
	return paletteColor(src.index)
}
