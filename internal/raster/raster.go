// Package raster turns text into frames of glyph cells.
package raster

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"

	"github.com/fkcurrie/keyled/internal/font"
	"github.com/fkcurrie/keyled/pkg/pixelbuf"
)

// Frame is a sequence of font-sized cells.
type Frame = pixelbuf.Frame[uint8]

// Options control how text is rasterized.
type Options struct {
	// FoldCase folds input to lower case before lookup, so "OK" draws
	// as "ok".
	FoldCase bool
}

// Text rasterizes s with default options.
func Text(s string) Frame {
	return Options{}.Text(s)
}

// Text returns one cell per character of s, in order. A character is a
// grapheme cluster: a base rune plus any combining marks takes exactly one
// cell. Clusters of more than one rune, and runes the font does not cover,
// draw as font.Unknown.
//
// Case folding is applied per character after segmentation. A character
// whose folded form is not a single rune, such as 'ß' folding to "ss",
// draws as font.Unknown.
func (o Options) Text(s string) Frame {
	var fold cases.Caser
	if o.FoldCase {
		fold = cases.Fold()
	}

	frame := make(Frame, 0, uniseg.GraphemeClusterCount(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		glyph := font.Unknown
		if r, ok := singleRune(g.Str()); ok {
			if o.FoldCase {
				r, ok = singleRune(fold.String(string(r)))
			}
			if ok {
				glyph = font.Lookup(r)
			}
		}
		frame = append(frame, glyph.Cell())
	}
	return frame
}

// singleRune returns the only rune of s
func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) {
		return 0, false
	}
	return r, true
}

// Window returns n cells of f starting at start. Positions outside f are
// filled with spaces.
func Window(f Frame, start, n int) Frame {
	w := make(Frame, n)
	for i := range w {
		j := start + i
		if j >= 0 && j < len(f) {
			w[i] = f[j]
		} else {
			w[i] = font.Space.Cell()
		}
	}
	return w
}

// Pages splits f into consecutive windows of n cells. The last page is
// padded with spaces. An empty frame yields one blank page.
func Pages(f Frame, n int) []Frame {
	if n <= 0 {
		return nil
	}
	count := (len(f) + n - 1) / n
	if count == 0 {
		count = 1
	}
	pages := make([]Frame, count)
	for i := range pages {
		pages[i] = Window(f, i*n, n)
	}
	return pages
}
