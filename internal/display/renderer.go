package display

import (
	"context"
	"sync"
	"time"

	"github.com/op/go-logging"

	"github.com/fkcurrie/keyled/internal/colors"
	"github.com/fkcurrie/keyled/internal/font"
	"github.com/fkcurrie/keyled/internal/layout"
	"github.com/fkcurrie/keyled/internal/raster"
	"github.com/fkcurrie/keyled/internal/types"
	"github.com/fkcurrie/keyled/pkg/pixelbuf"
)

var log = logging.MustGetLogger("display")

// Renderer handles the display rendering logic
type Renderer struct {
	cfg    *types.DisplayConfig
	table  *layout.Table
	matrix types.Matrix
	buf    *pixelbuf.Buffer[uint8]
	opts   raster.Options

	// base is the configured palette; palette is base with the on color of
	// the showing message, if it has one.
	base     colors.Palette
	palette  colors.Palette
	override *colors.Triplet

	keys      map[int]colors.Triplet
	keysDirty bool

	text   string
	frame  raster.Frame
	offset int

	mu sync.Mutex
}

// NewRenderer creates a new renderer instance. cfg.Capacity glyphs must
// fit across table.
func NewRenderer(cfg *types.DisplayConfig, table *layout.Table, palette colors.Palette) *Renderer {
	r := &Renderer{
		cfg:     cfg,
		table:   table,
		buf:     pixelbuf.New[uint8](font.Width, font.Height, cfg.Capacity),
		opts:    raster.Options{FoldCase: cfg.FoldCase},
		base:    palette,
		palette: palette,
	}
	// The sink's initial state is unknown, so the first pass sends every pixel.
	r.buf.Invalidate()
	r.setText(cfg.Text)
	return r
}

// SetMatrix sets the matrix to render to
func (r *Renderer) SetMatrix(matrix types.Matrix) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matrix = matrix
	r.buf.Invalidate()
	r.keysDirty = true
}

// SetText replaces the displayed text and scrolls back to its start
func (r *Renderer) SetText(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setText(s)
}

func (r *Renderer) setText(s string) {
	r.text = s
	r.frame = r.opts.Text(s)
	r.offset = 0
}

// Text returns the displayed text
func (r *Renderer) Text() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// SetPalette replaces the configured palette. A color set by the showing
// message stays in effect. Changed pixels are resent on the next pass.
func (r *Renderer) SetPalette(p colors.Palette) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = p
	r.applyPalette()
}

// applyPalette derives the effective palette from base and override
func (r *Renderer) applyPalette() {
	p := r.base
	if r.override != nil {
		p.On = *r.override
	}
	if p == r.palette {
		return
	}
	r.palette = p
	r.buf.Invalidate()
	r.keysDirty = true
}

// SetKeyColors pins static colors to LED indices. Text never draws over a
// pinned key.
func (r *Renderer) SetKeyColors(keys map[int]colors.Triplet) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys = make(map[int]colors.Triplet, len(keys))
	for i, c := range keys {
		r.keys[i] = c
	}
	// Keys that lost their pin need their text pixel back.
	r.buf.Invalidate()
	r.keysDirty = true
}

// Scroll advances text that does not fit by one cell, wrapping back to
// the start after the last cell has scrolled through
func (r *Renderer) Scroll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.frame) <= r.buf.Limit() {
		r.offset = 0
		return
	}
	r.offset = (r.offset + 1) % len(r.frame)
}

// RenderOnce runs one diff pass against the sink and returns the number of
// pixels that changed
func (r *Renderer) RenderOnce() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.matrix == nil {
		return 0, nil
	}

	dirty := false
	if r.keysDirty {
		for i, c := range r.keys {
			if err := r.matrix.SetLED(i, c.RGBA()); err != nil {
				return 0, err
			}
		}
		r.keysDirty = false
		dirty = len(r.keys) > 0
	}

	var sinkErr error
	window := raster.Window(r.frame, r.offset, r.buf.Limit())
	n := r.buf.Render(window, func(x, y int, v uint8) {
		if sinkErr != nil {
			return
		}
		index := r.table.Index(x, y)
		if layout.IsUnused(index) {
			return
		}
		if _, pinned := r.keys[index]; pinned {
			return
		}
		sinkErr = r.matrix.SetLED(index, r.palette.Color(v).RGBA())
	})
	if sinkErr != nil {
		// Part of the frame may be missing on the device
		r.buf.Invalidate()
		return n, sinkErr
	}

	if n > 0 || dirty {
		if err := r.matrix.Show(); err != nil {
			r.buf.Invalidate()
			return n, err
		}
	}
	return n, nil
}

// Start starts the renderer
func (r *Renderer) Start(ctx context.Context) error {
	ticker := time.NewTicker(time.Duration(r.cfg.RefreshMs) * time.Millisecond)
	defer ticker.Stop()
	scroll := time.NewTicker(time.Duration(r.cfg.ScrollMs) * time.Millisecond)
	defer scroll.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-scroll.C:
			r.Scroll()
		case <-ticker.C:
			if _, err := r.RenderOnce(); err != nil {
				log.Errorf("Failed to render: %v", err)
			}
		}
	}
}

// Show displays msg. A message color replaces the palette's on color
// until the next message.
func (r *Renderer) Show(msg types.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log.Debugf("Showing message %q", msg.Text)
	r.override = nil
	if msg.Color != nil {
		c := *msg.Color
		r.override = &c
	}
	r.applyPalette()
	r.setText(msg.Text)
}

// Messages shows each received message until ctx is cancelled or the
// channel is closed
func (r *Renderer) Messages(ctx context.Context, messages <-chan types.Message) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			r.Show(msg)
		}
	}
}
