package display

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/fkcurrie/keyled/internal/colors"
)

// MemoryMatrix keeps LED colors in memory. Writes are staged until Show.
type MemoryMatrix struct {
	mu     sync.Mutex
	buffer []colors.Triplet
	shown  []colors.Triplet
	writes int
	shows  int
}

// NewMemoryMatrix creates an in-memory matrix of n LEDs, all off
func NewMemoryMatrix(n int) *MemoryMatrix {
	return &MemoryMatrix{
		buffer: make([]colors.Triplet, n),
		shown:  make([]colors.Triplet, n),
	}
}

// SetLED stages a color for the LED at index
func (m *MemoryMatrix) SetLED(index int, c color.Color) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.buffer) {
		return fmt.Errorf("index out of bounds: %d", index)
	}
	m.buffer[index] = colors.FromColor(c)
	m.writes++
	return nil
}

// Show makes staged colors visible
func (m *MemoryMatrix) Show() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.shown, m.buffer)
	m.shows++
	return nil
}

// Clear turns every LED off and shows the result
func (m *MemoryMatrix) Clear() error {
	return m.Fill(colors.Black.RGBA())
}

// Fill sets every LED to c and shows the result
func (m *MemoryMatrix) Fill(c color.Color) error {
	m.mu.Lock()
	t := colors.FromColor(c)
	for i := range m.buffer {
		m.buffer[i] = t
	}
	m.mu.Unlock()

	return m.Show()
}

// Len returns the number of LEDs
func (m *MemoryMatrix) Len() int {
	return len(m.buffer)
}

// Close is a no-op
func (m *MemoryMatrix) Close() error {
	return nil
}

// Color returns the shown color of the LED at index
func (m *MemoryMatrix) Color(index int) (colors.Triplet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.shown) {
		return colors.Triplet{}, fmt.Errorf("index out of bounds: %d", index)
	}
	return m.shown[index], nil
}

// Snapshot returns a copy of all shown colors
func (m *MemoryMatrix) Snapshot() []colors.Triplet {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]colors.Triplet, len(m.shown))
	copy(out, m.shown)
	return out
}

// Writes returns the number of SetLED calls so far
func (m *MemoryMatrix) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Shows returns the number of Show calls so far
func (m *MemoryMatrix) Shows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shows
}
