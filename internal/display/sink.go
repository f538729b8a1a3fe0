package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fkcurrie/keyled/internal/config"
	"github.com/fkcurrie/keyled/internal/layout"
	"github.com/fkcurrie/keyled/internal/types"
	"github.com/fkcurrie/keyled/pkg/gpio"
)

// Open creates the sink named by cfg.Display.Sink
func Open(cfg *config.Config) (types.Matrix, error) {
	switch cfg.Display.Sink {
	case config.SinkMemory:
		return NewMemoryMatrix(layout.KeyCount), nil

	case config.SinkTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %v", err)
		}
		return NewTerminalMatrix(screen, &layout.Voyager)

	case config.SinkGPIO:
		bank, err := gpio.NewBank(cfg.GPIO.Chip, cfg.GPIO.Offsets, cfg.GPIO.Consumer)
		if err != nil {
			return nil, err
		}
		return NewGPIOMatrix(bank), nil

	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Display.Sink)
	}
}
