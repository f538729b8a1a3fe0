package display

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/layout"
)

// Key geometry on the terminal preview. Each key is keyWidth cells wide
// with one blank column and one blank row around it; the right half is
// shifted by halfGap to separate the two hands.
const (
	keyWidth = 2
	keyPitch = keyWidth + 1
	rowPitch = 2
	halfGap  = 2
)

// TerminalMatrix previews the keyboard in a terminal. Keys are drawn as
// colored blocks at their layout position.
type TerminalMatrix struct {
	screen tcell.Screen
	table  *layout.Table
	mu     sync.Mutex
}

// NewTerminalMatrix initializes screen and draws every key off
func NewTerminalMatrix(screen tcell.Screen, table *layout.Table) (*TerminalMatrix, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %v", err)
	}
	screen.Clear()

	m := &TerminalMatrix{
		screen: screen,
		table:  table,
	}
	if err := m.Clear(); err != nil {
		screen.Fini()
		return nil, err
	}
	return m, nil
}

// KeyOrigin returns the terminal cell of the top-left corner of the key at
// (col, row)
func KeyOrigin(col, row int) (x, y int) {
	x = col * keyPitch
	if col >= layout.Cols/2 {
		x += halfGap
	}
	return x, row * rowPitch
}

// SetLED draws the key for index in color c
func (m *TerminalMatrix) SetLED(index int, c color.Color) error {
	col, row, ok := m.table.Position(index)
	if !ok {
		return fmt.Errorf("index out of bounds: %d", index)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.draw(col, row, colors.FromColor(c))
	return nil
}

func (m *TerminalMatrix) draw(col, row int, t colors.Triplet) {
	style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(t.R), int32(t.G), int32(t.B)))
	x, y := KeyOrigin(col, row)
	for dx := 0; dx < keyWidth; dx++ {
		m.screen.SetContent(x+dx, y, ' ', nil, style)
	}
}

// Show flushes drawn keys to the terminal
func (m *TerminalMatrix) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.screen.Show()
	return nil
}

// Clear draws every key black and shows the result
func (m *TerminalMatrix) Clear() error {
	m.mu.Lock()
	m.table.Each(func(col, row, _ int) {
		m.draw(col, row, colors.Black)
	})
	m.mu.Unlock()

	return m.Show()
}

// Len returns the number of keys
func (m *TerminalMatrix) Len() int {
	return layout.KeyCount
}

// Close restores the terminal
func (m *TerminalMatrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.screen.Fini()
	return nil
}

// WaitQuit blocks until Escape, Ctrl-C or q is pressed, or the matrix is
// closed. The terminal swallows SIGINT while the preview is running.
func (m *TerminalMatrix) WaitQuit() {
	for {
		ev := m.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return
			}
		case *tcell.EventResize:
			m.screen.Sync()
		}
	}
}
