// Package pixelbuf provides an incremental pixel-diff buffer for small
// cell-based displays.
//
// A Buffer remembers the last value it emitted for every pixel of a fixed
// number of cells. Each Flush walks the current frame and calls the emit
// function only for pixels whose value changed since the previous pass, so
// an unchanged frame converges to silence.
//
//	buf := pixelbuf.New[uint8](4, 4, 3)
//	buf.Render(frame, func(x, y int, v uint8) {
//		// write v to the device at (x, y)
//	})
//
// Cells beyond the buffer's limit are not diffed; callers that need to show
// more content page or scroll it across successive frames.
//
// A Buffer is not safe for concurrent use.
package pixelbuf

import "fmt"

// EmitFunc receives a changed pixel. x is absolute: the column inside the
// cell plus the cell's width times its index in the frame.
type EmitFunc[T comparable] func(x, y int, v T)

// Buffer tracks the last emitted value of every pixel in up to limit cells.
type Buffer[T comparable] struct {
	w, h  int
	limit int

	frame Frame[T]
	last  []T    // limit cells of w*h values, row-major per cell
	stale []bool // pixels that must be emitted whatever their last value
}

// New creates a buffer for w×h cells that tracks at most limit cells.
// All tracking storage is allocated here. The initial state is the zero
// value of T for every pixel.
func New[T comparable](w, h, limit int) *Buffer[T] {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("pixelbuf: invalid cell dimensions %dx%d", w, h))
	}
	if limit <= 0 {
		panic(fmt.Sprintf("pixelbuf: invalid cell limit %d", limit))
	}
	return &Buffer[T]{
		w:     w,
		h:     h,
		limit: limit,
		last:  make([]T, limit*w*h),
		stale: make([]bool, limit*w*h),
	}
}

// Width returns the cell width.
func (b *Buffer[T]) Width() int { return b.w }

// Height returns the cell height.
func (b *Buffer[T]) Height() int { return b.h }

// Limit returns the number of cells the buffer tracks.
func (b *Buffer[T]) Limit() int { return b.limit }

// SetFrame replaces the current frame. It panics if any cell's dimensions
// differ from the buffer's.
func (b *Buffer[T]) SetFrame(f Frame[T]) {
	for i, c := range f {
		if c.w != b.w || c.h != b.h {
			panic(fmt.Sprintf("pixelbuf: cell %d is %dx%d, buffer expects %dx%d", i, c.w, c.h, b.w, b.h))
		}
	}
	b.frame = f
}

// Flush emits every pixel of the current frame that differs from the last
// emitted value, or was invalidated, and records the new value. It returns
// the number of emitted pixels. A pixel is recorded only after emit
// returns, so if emit panics that pixel and every later one stay pending.
func (b *Buffer[T]) Flush(emit EmitFunc[T]) int {
	n := len(b.frame)
	if n > b.limit {
		n = b.limit
	}

	emitted := 0
	size := b.w * b.h
	for i := 0; i < n; i++ {
		cell := b.frame[i]
		last := b.last[i*size : (i+1)*size]
		stale := b.stale[i*size : (i+1)*size]
		for y := 0; y < b.h; y++ {
			for x := 0; x < b.w; x++ {
				off := y*b.w + x
				v := cell.px[off]
				if !stale[off] && last[off] == v {
					continue
				}
				emit(x+b.w*i, y, v)
				last[off] = v
				stale[off] = false
				emitted++
			}
		}
	}
	return emitted
}

// Render sets the frame and flushes it.
func (b *Buffer[T]) Render(f Frame[T], emit EmitFunc[T]) int {
	b.SetFrame(f)
	return b.Flush(emit)
}

// Invalidate forces every tracked pixel to be emitted once more,
// regardless of its recorded value. A pixel stays pending until a Flush
// emits it, so an aborted pass does not lose the resend. Use it when the
// output device may have lost what was sent.
func (b *Buffer[T]) Invalidate() {
	for i := range b.stale {
		b.stale[i] = true
	}
}

// Reset drops the current frame and restores the zero baseline.
func (b *Buffer[T]) Reset() {
	var zero T
	for i := range b.last {
		b.last[i] = zero
		b.stale[i] = false
	}
	b.frame = nil
}

// Last returns a copy of the last emitted values for cell i.
func (b *Buffer[T]) Last(i int) Cell[T] {
	if i < 0 || i >= b.limit {
		panic(fmt.Sprintf("pixelbuf: cell %d outside limit %d", i, b.limit))
	}
	size := b.w * b.h
	c := NewCell[T](b.w, b.h)
	copy(c.px, b.last[i*size:(i+1)*size])
	return c
}
