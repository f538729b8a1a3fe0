package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/juju/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/font"
	"github.com/fkcurrie/keyled/internal/layout"
	"github.com/fkcurrie/keyled/internal/types"
)

// Sink names accepted in display.sink
const (
	SinkTerminal = "terminal"
	SinkGPIO     = "gpio"
	SinkMemory   = "memory"
)

// Config represents the application configuration
type Config struct {
	Display types.DisplayConfig `toml:"display"`
	Colors  types.ColorsConfig  `toml:"colors"`
	Keys    []types.KeyColor    `toml:"keys"`
	GPIO    types.GPIOConfig    `toml:"gpio"`
	Feed    types.FeedConfig    `toml:"feed"`
	Log     types.LogConfig     `toml:"log"`
}

// ValidationError reports an invalid configuration field
type ValidationError struct {
	Field string
	Err   error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LoadConfig loads the configuration from a file. Missing fields keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "reading config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Annotatef(err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotate(err, "parsing toml")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Display: types.DisplayConfig{
			Capacity:  3,
			RefreshMs: 50,
			ScrollMs:  400,
			FoldCase:  true,
			Sink:      SinkTerminal,
		},
		Colors: types.ColorsConfig{
			On:     "#FFFFFF",
			Off:    "#000000",
			Levels: 1,
		},
		GPIO: types.GPIOConfig{
			Chip:     "gpiochip0",
			Consumer: "keyled",
		},
		Feed: types.FeedConfig{
			ReconnectS: 5,
		},
		Log: types.LogConfig{
			Level: "info",
		},
	}
}

// Validate checks every field and decodes every color
func (c *Config) Validate() error {
	maxCells := layout.Cols / font.Width
	if c.Display.Capacity <= 0 || c.Display.Capacity > maxCells {
		return &ValidationError{"display.capacity", fmt.Errorf("must be between 1 and %d, got %d", maxCells, c.Display.Capacity)}
	}
	if c.Display.RefreshMs <= 0 {
		return &ValidationError{"display.refresh_ms", fmt.Errorf("must be positive, got %d", c.Display.RefreshMs)}
	}
	if c.Display.ScrollMs <= 0 {
		return &ValidationError{"display.scroll_ms", fmt.Errorf("must be positive, got %d", c.Display.ScrollMs)}
	}
	switch c.Display.Sink {
	case SinkTerminal, SinkGPIO, SinkMemory:
	default:
		return &ValidationError{"display.sink", fmt.Errorf("unknown sink %q", c.Display.Sink)}
	}

	if _, err := c.Palette(); err != nil {
		return err
	}
	if _, err := c.KeyColors(); err != nil {
		return err
	}

	if c.Display.Sink == SinkGPIO && len(c.GPIO.Offsets) != layout.KeyCount {
		return &ValidationError{"gpio.offsets", fmt.Errorf("want %d offsets, got %d", layout.KeyCount, len(c.GPIO.Offsets))}
	}
	if c.Feed.ReconnectS <= 0 {
		return &ValidationError{"feed.reconnect_s", fmt.Errorf("must be positive, got %d", c.Feed.ReconnectS)}
	}
	return nil
}

// Palette decodes the configured colors
func (c *Config) Palette() (colors.Palette, error) {
	on, err := colors.Decode(c.Colors.On)
	if err != nil {
		return colors.Palette{}, &ValidationError{"colors.on", err}
	}
	off, err := colors.Decode(c.Colors.Off)
	if err != nil {
		return colors.Palette{}, &ValidationError{"colors.off", err}
	}
	if c.Colors.Levels < 1 || c.Colors.Levels > 255 {
		return colors.Palette{}, &ValidationError{"colors.levels", fmt.Errorf("must be between 1 and 255, got %d", c.Colors.Levels)}
	}
	return colors.Palette{Off: off, On: on, Levels: uint8(c.Colors.Levels)}, nil
}

// KeyColors decodes the static key overrides, keyed by LED index
func (c *Config) KeyColors() (map[int]colors.Triplet, error) {
	out := make(map[int]colors.Triplet, len(c.Keys))
	for i, k := range c.Keys {
		field := fmt.Sprintf("keys[%d]", i)
		if k.Row < 0 || k.Row >= layout.Rows || k.Col < 0 || k.Col >= layout.Cols {
			return nil, &ValidationError{field, fmt.Errorf("position (%d, %d) outside %dx%d layout", k.Col, k.Row, layout.Cols, layout.Rows)}
		}
		index := layout.Voyager.Index(k.Col, k.Row)
		if layout.IsUnused(index) {
			return nil, &ValidationError{field, fmt.Errorf("position (%d, %d) has no key", k.Col, k.Row)}
		}
		t, err := colors.Decode(k.Color)
		if err != nil {
			return nil, &ValidationError{field + ".color", err}
		}
		out[index] = t
	}
	return out, nil
}

// RestartFields lists the fields that differ between c and next but only
// take effect on restart. Colors, keys and display.text apply live.
func (c *Config) RestartFields(next *Config) []string {
	var fields []string
	add := func(changed bool, field string) {
		if changed {
			fields = append(fields, field)
		}
	}
	add(c.Display.Capacity != next.Display.Capacity, "display.capacity")
	add(c.Display.RefreshMs != next.Display.RefreshMs, "display.refresh_ms")
	add(c.Display.ScrollMs != next.Display.ScrollMs, "display.scroll_ms")
	add(c.Display.FoldCase != next.Display.FoldCase, "display.fold_case")
	add(c.Display.Sink != next.Display.Sink, "display.sink")
	add(c.GPIO.Chip != next.GPIO.Chip || c.GPIO.Consumer != next.GPIO.Consumer ||
		!slices.Equal(c.GPIO.Offsets, next.GPIO.Offsets), "gpio")
	add(c.Feed != next.Feed, "feed")
	add(c.Log != next.Log, "log")
	return fields
}
