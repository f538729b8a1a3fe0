package snapshot

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/display"
	"github.com/fkcurrie/keyled/internal/layout"
)

func litMatrix(t *testing.T) *display.MemoryMatrix {
	t.Helper()
	m := display.NewMemoryMatrix(layout.KeyCount)
	if err := m.SetLED(0, colors.Triplet{R: 0xFF}.RGBA()); err != nil {
		t.Fatal(err)
	}
	if err := m.Show(); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, litMatrix(t), &layout.Voyager); err != nil {
		t.Fatalf("SVG() error = %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("SVG() output is not a single svg element:\n%s", out)
	}
	// One background plus one rect per key
	if got := strings.Count(out, "<rect"); got != layout.KeyCount+1 {
		t.Errorf("SVG() drew %d rects, want %d", got, layout.KeyCount+1)
	}
	if !strings.Contains(out, `fill="#FF0000"`) {
		t.Error("SVG() output is missing the lit key")
	}
}

func TestSVGShortMatrix(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, display.NewMemoryMatrix(10), &layout.Voyager); err == nil {
		t.Error("SVG() with too few LEDs did not return error")
	}
}

func TestPNG(t *testing.T) {
	var svg bytes.Buffer
	if err := SVG(&svg, litMatrix(t), &layout.Voyager); err != nil {
		t.Fatalf("SVG() error = %v", err)
	}

	width, height := Size()
	var out bytes.Buffer
	if err := PNG(&out, &svg, width, height); err != nil {
		t.Fatalf("PNG() error = %v", err)
	}

	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Errorf("PNG() size = %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}

	// Center of LED 0, the top-left key
	x, y := KeyOrigin(0, 0)
	c := color.RGBAModel.Convert(img.At(x+KeySize/2, y+KeySize/2)).(color.RGBA)
	if c.R < 0xF0 || c.G > 0x10 || c.B > 0x10 {
		t.Errorf("pixel at key 0 = %v, want red", c)
	}
}

func TestPNGInvalidSVG(t *testing.T) {
	var out bytes.Buffer
	if err := PNG(&out, strings.NewReader("<svg><rect"), 10, 10); err == nil {
		t.Error("PNG() with invalid svg did not return error")
	}
}
