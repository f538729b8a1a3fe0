package types

import "image/color"

// Matrix is a row of individually addressable LEDs
type Matrix interface {
	// SetLED sets the LED at the given physical index to the given color
	SetLED(index int, c color.Color) error
	// Show pushes pending changes to the device
	Show() error
	// Clear turns every LED off
	Clear() error
	// Len returns the number of LEDs
	Len() int
	// Close releases the device
	Close() error
}
