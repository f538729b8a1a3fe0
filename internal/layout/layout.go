// Package layout maps logical key positions to physical LED indices.
package layout

const (
	// Rows is the number of logical rows, including the thumb row.
	Rows = 5
	// Cols is the number of logical columns across both halves.
	Cols = 12
	// KeyCount is the number of physical LEDs.
	KeyCount = 52
	// Unused marks a logical slot with no physical key.
	Unused = 60
)

// Table maps [row][col] to a physical LED index or Unused.
type Table [Rows][Cols]int

// Voyager is the per-key LED order of a ZSA Voyager.
//
//	0..23   left half, four rows of six
//	24, 25  left thumb keys
//	26..49  right half, four rows of six
//	50, 51  right thumb keys
var Voyager = Table{
	{0, 1, 2, 3, 4, 5, 26, 27, 28, 29, 30, 31},
	{6, 7, 8, 9, 10, 11, 32, 33, 34, 35, 36, 37},
	{12, 13, 14, 15, 16, 17, 38, 39, 40, 41, 42, 43},
	{18, 19, 20, 21, 22, 23, 44, 45, 46, 47, 48, 49},
	{Unused, Unused, Unused, Unused, 24, 25, 50, 51, Unused, Unused, Unused, Unused},
}

// Index returns the LED index for the key at (col, row). It panics if the
// position is outside the table.
func (t *Table) Index(col, row int) int {
	return t[row][col]
}

// Position returns the logical position of an LED index.
func (t *Table) Position(index int) (col, row int, ok bool) {
	if IsUnused(index) {
		return 0, 0, false
	}
	for r := range t {
		for c, i := range t[r] {
			if i == index {
				return c, r, true
			}
		}
	}
	return 0, 0, false
}

// Each calls fn for every populated slot in row-major order.
func (t *Table) Each(fn func(col, row, index int)) {
	for r := range t {
		for c, i := range t[r] {
			if IsUnused(i) {
				continue
			}
			fn(c, r, i)
		}
	}
}

// IsUnused reports whether index is the Unused sentinel.
func IsUnused(index int) bool {
	return index == Unused
}
