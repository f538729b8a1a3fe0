package display

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/font"
	"github.com/fkcurrie/keyled/internal/layout"
	"github.com/fkcurrie/keyled/internal/types"
)

var (
	white = colors.Triplet{R: 0xFF, G: 0xFF, B: 0xFF}
	red   = colors.Triplet{R: 0xFF}
	mono  = colors.Palette{Off: colors.Black, On: white, Levels: 1}
)

func newTestRenderer(text string) (*Renderer, *MemoryMatrix) {
	cfg := &types.DisplayConfig{
		Capacity:  3,
		RefreshMs: 50,
		ScrollMs:  400,
		Text:      text,
	}
	m := NewMemoryMatrix(layout.KeyCount)
	r := NewRenderer(cfg, &layout.Voyager, mono)
	r.SetMatrix(m)
	return r, m
}

// checkCell compares cell i on the matrix with glyph g drawn in p
func checkCell(t *testing.T, m *MemoryMatrix, i int, g font.Glyph, p colors.Palette) {
	t.Helper()
	for y := 0; y < font.Height; y++ {
		for x := 0; x < font.Width; x++ {
			index := layout.Voyager.Index(x+font.Width*i, y)
			got, err := m.Color(index)
			if err != nil {
				t.Fatalf("Color(%d) error = %v", index, err)
			}
			if want := p.Color(g[y][x]); got != want {
				t.Errorf("cell %d pixel (%d, %d) = %v, want %v", i, x, y, got, want)
			}
		}
	}
}

func TestRenderOnceDrawsText(t *testing.T) {
	r, m := newTestRenderer("ab")

	n, err := r.RenderOnce()
	if err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	// The first pass sends every pixel of the capacity
	if n != 3*font.Width*font.Height {
		t.Errorf("RenderOnce() = %d, want %d", n, 3*font.Width*font.Height)
	}
	checkCell(t, m, 0, font.Lookup('a'), mono)
	checkCell(t, m, 1, font.Lookup('b'), mono)
	checkCell(t, m, 2, font.Space, mono)
	if m.Shows() != 1 {
		t.Errorf("Shows() = %d, want 1", m.Shows())
	}

	writes := m.Writes()
	n, err = r.RenderOnce()
	if err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second RenderOnce() = %d, want 0", n)
	}
	if m.Writes() != writes {
		t.Errorf("second pass wrote %d LEDs, want 0", m.Writes()-writes)
	}
	if m.Shows() != 1 {
		t.Errorf("Shows() after idle pass = %d, want 1", m.Shows())
	}
}

func TestRenderOnceClearsShorterText(t *testing.T) {
	r, m := newTestRenderer("abc")
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}

	r.SetText("")
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		checkCell(t, m, i, font.Space, mono)
	}
}

func TestRenderOnceWithoutMatrix(t *testing.T) {
	r := NewRenderer(&types.DisplayConfig{Capacity: 3}, &layout.Voyager, mono)
	if n, err := r.RenderOnce(); n != 0 || err != nil {
		t.Errorf("RenderOnce() = %d, %v, want 0, nil", n, err)
	}
}

func TestScroll(t *testing.T) {
	r, m := newTestRenderer("abcd")

	r.Scroll()
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('b'), mono)
	checkCell(t, m, 2, font.Lookup('d'), mono)

	// Scrolls through the tail, then wraps
	for i := 0; i < 3; i++ {
		r.Scroll()
	}
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('a'), mono)
}

func TestScrollShortTextStays(t *testing.T) {
	r, m := newTestRenderer("ab")
	r.Scroll()
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('a'), mono)
}

// failingMatrix fails the nth SetLED call
type failingMatrix struct {
	*MemoryMatrix
	calls  int
	failAt int
}

func (f *failingMatrix) SetLED(index int, c color.Color) error {
	f.calls++
	if f.calls == f.failAt {
		return errors.New("bus error")
	}
	return f.MemoryMatrix.SetLED(index, c)
}

func TestRenderOnceResendsAfterSinkError(t *testing.T) {
	r, _ := newTestRenderer("ab")
	f := &failingMatrix{MemoryMatrix: NewMemoryMatrix(layout.KeyCount), failAt: 5}
	r.SetMatrix(f)

	if _, err := r.RenderOnce(); err == nil {
		t.Fatal("RenderOnce() error = nil, want sink error")
	}
	if f.Shows() != 0 {
		t.Errorf("Shows() after failed pass = %d, want 0", f.Shows())
	}

	n, err := r.RenderOnce()
	if err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	if n != 3*font.Width*font.Height {
		t.Errorf("RenderOnce() after failure = %d, want full resend", n)
	}
	checkCell(t, f.MemoryMatrix, 0, font.Lookup('a'), mono)
}

func TestKeyColorsArePinned(t *testing.T) {
	r, m := newTestRenderer("ab")
	r.SetKeyColors(map[int]colors.Triplet{0: red})

	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	if got, _ := m.Color(0); got != red {
		t.Errorf("Color(0) = %v, want %v", got, red)
	}

	r.SetText("zz")
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	if got, _ := m.Color(0); got != red {
		t.Errorf("Color(0) after new text = %v, want %v", got, red)
	}
}

func TestSetPaletteRecolors(t *testing.T) {
	r, m := newTestRenderer("ab")
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}

	p := colors.Palette{Off: colors.Black, On: red, Levels: 1}
	r.SetPalette(p)
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('a'), p)
}

func TestMessages(t *testing.T) {
	r, m := newTestRenderer("ab")

	ch := make(chan types.Message, 2)
	ch <- types.Message{Text: "hi", Color: &red}
	close(ch)

	if err := r.Messages(context.Background(), ch); err != nil {
		t.Fatalf("Messages() error = %v", err)
	}
	if r.Text() != "hi" {
		t.Errorf("Text() = %q, want %q", r.Text(), "hi")
	}

	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('h'), colors.Palette{Off: colors.Black, On: red, Levels: 1})
}

func TestMessagesStopsOnCancel(t *testing.T) {
	r, _ := newTestRenderer("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := r.Messages(ctx, make(chan types.Message)); !errors.Is(err, context.Canceled) {
		t.Errorf("Messages() = %v, want context.Canceled", err)
	}
}

func TestSetPaletteKeepsMessageColor(t *testing.T) {
	r, m := newTestRenderer("")
	r.Show(types.Message{Text: "ab", Color: &red})

	// A config reload changes the off color but not the message color
	dim := colors.Triplet{R: 0x10, G: 0x10, B: 0x10}
	r.SetPalette(colors.Palette{Off: dim, On: white, Levels: 1})
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('a'), colors.Palette{Off: dim, On: red, Levels: 1})

	// A message without a color returns to the configured on color
	r.Show(types.Message{Text: "ab"})
	if _, err := r.RenderOnce(); err != nil {
		t.Fatalf("RenderOnce() error = %v", err)
	}
	checkCell(t, m, 0, font.Lookup('a'), colors.Palette{Off: dim, On: white, Levels: 1})
}
