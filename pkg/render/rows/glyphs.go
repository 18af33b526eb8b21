package rows

// GlyphSet names the character drawn for each position class.
//
// Left and Right refer to the visual side of the node a glyph sits on. Above
// and Below name where the terminating lineage comes from.
type GlyphSet struct {
	Blank    string
	Vertical string
	Node     string
	Cross    string

	TeeLeft  string // lineage continues and also bends right into the node
	TeeRight string // lineage continues and also bends left into the node

	CornerAboveLeft  string
	CornerAboveRight string
	CornerBelowLeft  string
	CornerBelowRight string

	ArrowLeft  string // connector right of the node, pointing at it
	ArrowRight string // connector left of the node, pointing at it
}

// Unicode draws with box-drawing characters.
var Unicode = GlyphSet{
	Blank:    " ",
	Vertical: "│",
	Node:     "•",
	Cross:    "✕",

	TeeLeft:  "├",
	TeeRight: "┤",

	CornerAboveLeft:  "╰",
	CornerAboveRight: "╯",
	CornerBelowLeft:  "╭",
	CornerBelowRight: "╮",

	ArrowLeft:  "─",
	ArrowRight: "─",
}

// ASCII draws with 7-bit characters only.
var ASCII = GlyphSet{
	Blank:    " ",
	Vertical: "|",
	Node:     "*",
	Cross:    "X",

	TeeLeft:  "+",
	TeeRight: "+",

	CornerAboveLeft:  `\`,
	CornerAboveRight: "/",
	CornerBelowLeft:  "/",
	CornerBelowRight: `\`,

	ArrowLeft:  "-",
	ArrowRight: "-",
}

// Charset names accepted by [GlyphSetByName].
const (
	CharsetUnicode = "unicode"
	CharsetASCII   = "ascii"
)

// GlyphSetByName returns the built-in glyph set for name.
func GlyphSetByName(name string) (GlyphSet, bool) {
	switch name {
	case CharsetUnicode:
		return Unicode, true
	case CharsetASCII:
		return ASCII, true
	}
	return GlyphSet{}, false
}

// side is the visual side of the node a position is drawn on.
type side int

const (
	sideLeft side = iota
	sideRight
)

func (g GlyphSet) tee(s side) string {
	if s == sideRight {
		return g.TeeRight
	}
	return g.TeeLeft
}

func (g GlyphSet) corner(s side, fromBelow bool) string {
	switch {
	case s == sideRight && fromBelow:
		return g.CornerBelowRight
	case s == sideRight:
		return g.CornerAboveRight
	case fromBelow:
		return g.CornerBelowLeft
	default:
		return g.CornerAboveLeft
	}
}

func (g GlyphSet) arrow(s side) string {
	if s == sideRight {
		return g.ArrowLeft
	}
	return g.ArrowRight
}
