// Package snapshot draws the current state of the keys as an image.
package snapshot

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/fkcurrie/keyled/internal/display"
	"github.com/fkcurrie/keyled/internal/layout"
)

// Key geometry in SVG user units
const (
	KeySize  = 40
	KeyGap   = 8
	HandGap  = 32
	Margin   = 16
	cornerRx = 6

	keyPitch = KeySize + KeyGap
)

// Background is the board color behind the keys
const Background = "#202020"

// Size returns the width and height of a snapshot
func Size() (width, height int) {
	width = 2*Margin + layout.Cols*keyPitch - KeyGap + HandGap
	height = 2*Margin + layout.Rows*keyPitch - KeyGap
	return width, height
}

// KeyOrigin returns the top-left corner of the key at (col, row)
func KeyOrigin(col, row int) (x, y int) {
	x = Margin + col*keyPitch
	if col >= layout.Cols/2 {
		x += HandGap
	}
	return x, Margin + row*keyPitch
}

// SVG writes the shown colors of m as an SVG document, one rounded
// rectangle per key of t
func SVG(w io.Writer, m *display.MemoryMatrix, t *layout.Table) error {
	width, height := Size()
	shown := m.Snapshot()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(bw, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n", width, height, Background)

	var err error
	t.Each(func(col, row, index int) {
		if err != nil {
			return
		}
		if index >= len(shown) {
			err = fmt.Errorf("layout index %d outside %d LEDs", index, len(shown))
			return
		}
		x, y := KeyOrigin(col, row)
		fmt.Fprintf(bw, `<rect x="%d" y="%d" width="%d" height="%d" rx="%d" ry="%d" fill="%s"/>`+"\n",
			x, y, KeySize, KeySize, cornerRx, cornerRx, shown[index])
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(bw, `</svg>`)
	return bw.Flush()
}

// PNG rasterizes an SVG document to a width×height PNG
func PNG(w io.Writer, svg io.Reader, width, height int) error {
	icon, err := oksvg.ReadIconStream(svg)
	if err != nil {
		return fmt.Errorf("failed to parse svg: %v", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode png: %v", err)
	}
	return nil
}
