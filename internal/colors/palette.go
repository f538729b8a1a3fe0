package colors

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette maps pixel values to LED colors. Value 0 is Off, values at or
// above Levels are On, and anything in between is blended.
type Palette struct {
	Off    Triplet
	On     Triplet
	Levels uint8
}

// DefaultPalette is white-on-black with binary pixels.
var DefaultPalette = Palette{
	Off:    Black,
	On:     Triplet{R: 0xFF, G: 0xFF, B: 0xFF},
	Levels: 1,
}

// Color returns the color for pixel value v.
func (p Palette) Color(v uint8) Triplet {
	if v == 0 {
		return p.Off
	}
	if p.Levels <= 1 || v >= p.Levels {
		return p.On
	}

	off := colorful.Color{R: float64(p.Off.R) / 255, G: float64(p.Off.G) / 255, B: float64(p.Off.B) / 255}
	on := colorful.Color{R: float64(p.On.R) / 255, G: float64(p.On.G) / 255, B: float64(p.On.B) / 255}
	r, g, b := off.BlendLab(on, float64(v)/float64(p.Levels)).Clamped().RGB255()
	return Triplet{R: r, G: g, B: b}
}
