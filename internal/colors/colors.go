// Package colors decodes configured hex colors into RGB triplets.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrLength indicates the input does not hold exactly six hex digits.
var ErrLength = errors.New("want exactly 6 hex digits")

// Triplet is an 8-bit RGB color.
type Triplet struct {
	R, G, B uint8
}

// Black is the all-off triplet.
var Black = Triplet{}

// ParseError reports a malformed hex color.
type ParseError struct {
	// Input is the string as given, including any '#'.
	Input string
	// Offset is the position of the offending digit pair after the prefix,
	// or -1 for a length error.
	Offset int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("invalid hex color %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("invalid hex color %q at offset %d: %v", e.Input, e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode parses "#RRGGBB" or "RRGGBB" into a Triplet. Digits are
// case-insensitive. Inputs that are shorter or longer than six digits are
// rejected.
func Decode(s string) (Triplet, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Triplet{}, &ParseError{Input: s, Offset: -1, Err: ErrLength}
	}

	var rgb [3]uint8
	for i := range rgb {
		off := i * 2
		v, err := strconv.ParseUint(hex[off:off+2], 16, 8)
		if err != nil {
			var numErr *strconv.NumError
			if errors.As(err, &numErr) {
				err = numErr.Err
			}
			return Triplet{}, &ParseError{Input: s, Offset: off, Err: err}
		}
		rgb[i] = uint8(v)
	}

	return Triplet{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// MustDecode is like Decode but panics on error.
func MustDecode(s string) Triplet {
	t, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return t
}

// RGBA returns the triplet as an opaque color.RGBA.
func (t Triplet) RGBA() color.RGBA {
	return color.RGBA{R: t.R, G: t.G, B: t.B, A: 0xFF}
}

// IsBlack reports whether all channels are zero.
func (t Triplet) IsBlack() bool {
	return t == Black
}

// String returns the triplet as "#RRGGBB".
func (t Triplet) String() string {
	return fmt.Sprintf("#%02X%02X%02X", t.R, t.G, t.B)
}

// FromColor converts any color.Color to a Triplet, dropping alpha.
func FromColor(c color.Color) Triplet {
	r, g, b, _ := c.RGBA()
	return Triplet{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}
