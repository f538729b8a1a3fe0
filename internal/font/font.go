// Package font holds the 4×4 bitmap font used to draw text on the key matrix.
//
// Each glyph is three pixels wide with a blank fourth column, so glyphs
// placed side by side stay one column apart.
package font

import (
	"sort"

	"github.com/fkcurrie/keyled/pkg/pixelbuf"
)

const (
	// Width is the glyph width in pixels.
	Width = 4
	// Height is the glyph height in pixels.
	Height = 4
)

// Glyph is a Height×Width bitmap. 0 is off; larger values are brighter.
type Glyph [Height][Width]uint8

// Space is the all-off glyph and the initial state of the display.
var Space = Glyph{}

// Unknown is drawn for characters the font does not cover.
var Unknown = Glyph{
	{1, 1, 1, 0},
	{1, 1, 1, 0},
	{1, 1, 1, 0},
	{1, 1, 1, 0},
}

// Underscore is the '_' glyph.
var Underscore = Glyph{
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{0, 0, 0, 0},
	{1, 1, 1, 0},
}

// glyphs is keyed by rune constants; the compiler rejects duplicate keys.
var glyphs = map[rune]Glyph{
	' ': Space,
	'_': Underscore,
	'0': {
		{1, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 1, 0},
	},
	'1': {
		{0, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
	},
	'2': {
		{1, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
	},
	'3': {
		{1, 1, 1, 0},
		{0, 0, 1, 0},
		{0, 1, 1, 0},
		{1, 1, 1, 0},
	},
	'4': {
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 1, 0},
		{0, 0, 1, 0},
	},
	'a': {
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 1, 0},
	},
	'b': {
		{1, 0, 0, 0},
		{1, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 1, 1, 0},
	},
	'c': {
		{0, 1, 1, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{0, 1, 1, 0},
	},
	'd': {
		{0, 0, 1, 0},
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 1, 0},
	},
	'e': {
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 0, 0},
		{0, 1, 1, 0},
	},
	'f': {
		{0, 1, 1, 0},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
		{0, 1, 0, 0},
	},
	'g': {
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 1, 0},
		{1, 1, 0, 0},
	},
	'h': {
		{1, 0, 0, 0},
		{1, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
	},
	'i': {
		{1, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
	},
	'j': {
		{0, 1, 0, 0},
		{0, 0, 0, 0},
		{0, 1, 0, 0},
		{1, 0, 0, 0},
	},
	'k': {
		{1, 0, 0, 0},
		{1, 0, 1, 0},
		{1, 1, 0, 0},
		{1, 0, 1, 0},
	},
	'l': {
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
		{1, 1, 0, 0},
	},
	'm': {
		{1, 0, 1, 0},
		{1, 1, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
	},
	'n': {
		{0, 0, 0, 0},
		{1, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
	},
	'o': {
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 0},
	},
	'p': {
		{1, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 1, 0, 0},
		{1, 0, 0, 0},
	},
	'q': {
		{0, 1, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 1, 0},
		{0, 0, 1, 0},
	},
	'r': {
		{1, 0, 1, 0},
		{1, 1, 0, 0},
		{1, 0, 0, 0},
		{1, 0, 0, 0},
	},
	's': {
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 0},
		{1, 1, 0, 0},
	},
	't': {
		{0, 1, 0, 0},
		{1, 1, 1, 0},
		{0, 1, 0, 0},
		{0, 1, 1, 0},
	},
	'u': {
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 1, 0},
	},
	'v': {
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 0},
	},
	'w': {
		{1, 0, 1, 0},
		{1, 0, 1, 0},
		{1, 1, 1, 0},
		{1, 0, 1, 0},
	},
	'x': {
		{1, 0, 1, 0},
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{1, 0, 1, 0},
	},
	'z': {
		{1, 1, 1, 0},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{1, 1, 1, 0},
	},
}

// Lookup returns the glyph for r, or Unknown if the font does not cover it.
func Lookup(r rune) Glyph {
	if g, ok := glyphs[r]; ok {
		return g
	}
	return Unknown
}

// Known reports whether the font has a glyph for r.
func Known(r rune) bool {
	_, ok := glyphs[r]
	return ok
}

// Runes returns the covered characters in ascending order.
func Runes() []rune {
	rs := make([]rune, 0, len(glyphs))
	for r := range glyphs {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
	return rs
}

// Cell converts the glyph to a diff buffer cell.
func (g Glyph) Cell() pixelbuf.Cell[uint8] {
	c := pixelbuf.NewCell[uint8](Width, Height)
	for y := range g {
		for x, v := range g[y] {
			c.Set(x, y, v)
		}
	}
	return c
}

// String renders the glyph as rows of '#' and '.', for debugging.
func (g Glyph) String() string {
	b := make([]byte, 0, (Width+1)*Height)
	for y := range g {
		for _, v := range g[y] {
			if v == 0 {
				b = append(b, '.')
			} else {
				b = append(b, '#')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
