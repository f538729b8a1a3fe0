package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/op/go-logging"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/config"
	"github.com/fkcurrie/keyled/internal/display"
	"github.com/fkcurrie/keyled/internal/font"
	"github.com/fkcurrie/keyled/internal/layout"
	klog "github.com/fkcurrie/keyled/internal/logging"
	"github.com/fkcurrie/keyled/internal/types"
)

var log = logging.MustGetLogger("keytest")

func main() {
	configPath := flag.String("config", "keyled.toml", "path to config file")
	sink := flag.String("sink", "", "output sink: terminal, gpio or memory")
	delay := flag.Duration("delay", 2*time.Second, "time to hold each pattern")
	flag.Parse()

	if err := run(*configPath, *sink, *delay); err != nil {
		fmt.Fprintln(os.Stderr, errors.ErrorStack(err))
		os.Exit(1)
	}
	fmt.Println("Test completed successfully")
}

func run(configPath, sink string, delay time.Duration) error {
	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Infof("Failed to load config from %s: %v", configPath, err)
		log.Infof("Using default configuration")
		cfg = config.DefaultConfig()
	}
	if sink != "" {
		cfg.Display.Sink = sink
	}
	if err := cfg.Validate(); err != nil {
		return errors.Trace(err)
	}

	if cfg.Log.File != "" || cfg.Display.Sink != config.SinkTerminal {
		closer, err := klog.Configure(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return errors.Trace(err)
		}
		defer closer.Close()
	} else {
		// Keep the preview readable
		logging.SetLevel(logging.WARNING, "")
	}

	matrix, err := display.Open(cfg)
	if err != nil {
		return errors.Annotate(err, "opening sink")
	}
	defer matrix.Close()

	patterns := []struct {
		name  string
		color func(index int) color.Color
	}{
		{"red", solid(colors.Triplet{R: 255})},
		{"green", solid(colors.Triplet{G: 255})},
		{"blue", solid(colors.Triplet{B: 255})},
		{"alternating", func(index int) color.Color {
			if index%2 == 0 {
				return colors.Triplet{R: 255, G: 255, B: 255}.RGBA()
			}
			return colors.Black.RGBA()
		}},
	}

	for _, p := range patterns {
		log.Infof("Setting all keys to %s", p.name)
		if err := fill(matrix, p.color); err != nil {
			return errors.Annotatef(err, "pattern %s", p.name)
		}
		time.Sleep(delay)
	}

	log.Info("Clearing keys")
	if err := matrix.Clear(); err != nil {
		return errors.Annotate(err, "clearing")
	}

	// Scroll every glyph the font knows through the renderer
	palette, err := cfg.Palette()
	if err != nil {
		return errors.Trace(err)
	}
	scroll := cfg.Display
	scroll.Text = string(font.Runes())
	renderer := newRenderer(&scroll, palette, matrix)

	log.Infof("Scrolling %q", scroll.Text)
	step := time.Duration(cfg.Display.ScrollMs) * time.Millisecond
	for i := 0; i < len(font.Runes()); i++ {
		if _, err := renderer.RenderOnce(); err != nil {
			return errors.Annotate(err, "rendering")
		}
		renderer.Scroll()
		time.Sleep(step)
	}

	return errors.Trace(matrix.Clear())
}

func newRenderer(cfg *types.DisplayConfig, p colors.Palette, m types.Matrix) *display.Renderer {
	r := display.NewRenderer(cfg, &layout.Voyager, p)
	r.SetMatrix(m)
	return r
}

func solid(c colors.Triplet) func(int) color.Color {
	return func(int) color.Color { return c.RGBA() }
}

// fill sets every key from fn and shows the result
func fill(m types.Matrix, fn func(index int) color.Color) error {
	var err error
	layout.Voyager.Each(func(_, _, index int) {
		if err == nil {
			err = m.SetLED(index, fn(index))
		}
	})
	if err != nil {
		return err
	}
	return m.Show()
}
