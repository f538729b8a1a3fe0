package display

import (
	"image/color"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/pkg/gpio"
)

// GPIOMatrix drives one GPIO line per key. A key is lit when its color is
// not black; the color itself is lost.
type GPIOMatrix struct {
	bank *gpio.Bank
}

// NewGPIOMatrix wraps a bank whose line i belongs to LED index i
func NewGPIOMatrix(bank *gpio.Bank) *GPIOMatrix {
	return &GPIOMatrix{bank: bank}
}

// SetLED drives the line for index high for any non-black color
func (m *GPIOMatrix) SetLED(index int, c color.Color) error {
	v := 0
	if !colors.FromColor(c).IsBlack() {
		v = 1
	}
	return m.bank.Set(index, v)
}

// Show is a no-op; lines change as soon as they are set
func (m *GPIOMatrix) Show() error {
	return nil
}

// Clear drives every line low
func (m *GPIOMatrix) Clear() error {
	for i := 0; i < m.bank.Len(); i++ {
		if err := m.bank.Set(i, 0); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of lines
func (m *GPIOMatrix) Len() int {
	return m.bank.Len()
}

// Close releases the lines
func (m *GPIOMatrix) Close() error {
	return m.bank.Close()
}
