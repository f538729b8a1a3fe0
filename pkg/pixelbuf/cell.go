package pixelbuf

import "fmt"

// Cell is a fixed-size grid of pixel values representing one glyph.
type Cell[T comparable] struct {
	w, h int
	px   []T
}

// NewCell creates a w×h cell with every pixel set to the zero value.
func NewCell[T comparable](w, h int) Cell[T] {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("pixelbuf: invalid cell dimensions %dx%d", w, h))
	}
	return Cell[T]{w: w, h: h, px: make([]T, w*h)}
}

// CellOf creates a cell from rows of pixels. All rows must have the same length.
func CellOf[T comparable](rows [][]T) Cell[T] {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("pixelbuf: empty cell")
	}
	c := NewCell[T](len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != c.w {
			panic(fmt.Sprintf("pixelbuf: row %d has %d pixels, want %d", y, len(row), c.w))
		}
		copy(c.px[y*c.w:], row)
	}
	return c
}

// Width returns the number of columns in the cell.
func (c Cell[T]) Width() int { return c.w }

// Height returns the number of rows in the cell.
func (c Cell[T]) Height() int { return c.h }

// At returns the pixel at (x, y).
func (c Cell[T]) At(x, y int) T {
	return c.px[c.offset(x, y)]
}

// Set sets the pixel at (x, y).
func (c Cell[T]) Set(x, y int, v T) {
	c.px[c.offset(x, y)] = v
}

// Equal reports whether both cells have the same shape and pixels.
func (c Cell[T]) Equal(o Cell[T]) bool {
	if c.w != o.w || c.h != o.h {
		return false
	}
	for i := range c.px {
		if c.px[i] != o.px[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy that does not share storage with c.
func (c Cell[T]) Clone() Cell[T] {
	px := make([]T, len(c.px))
	copy(px, c.px)
	return Cell[T]{w: c.w, h: c.h, px: px}
}

func (c Cell[T]) offset(x, y int) int {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		panic(fmt.Sprintf("pixelbuf: pixel (%d, %d) outside %dx%d cell", x, y, c.w, c.h))
	}
	return y*c.w + x
}

// Frame is an ordered, left-to-right sequence of cells.
type Frame[T comparable] []Cell[T]
