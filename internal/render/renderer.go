// Package render draws brush points, lines and box damage onto a linear ARGB
// surface. Every exported operation holds the renderer lock for its whole
// duration, so concurrent writers (touch delivery, timers, the box animation)
// never interleave stores within one operation.
package render

import (
	"image"
	"sync"

	"github.com/example/touchpaint/internal/surface"
)

// Renderer serialises all writes to one surface.
type Renderer struct {
	mu  sync.Mutex
	buf *surface.Buffer
}

// New returns a renderer for buf.
func New(buf *surface.Buffer) *Renderer {
	return &Renderer{buf: buf}
}

// Size reports the surface dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.buf.Width, r.buf.Height
}

// FillRegion writes c to every pixel of the surface.
func (r *Renderer) FillRegion(c Pixel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fill(c)
}

// Blank fills the surface with black.
func (r *Renderer) Blank() { r.FillRegion(Black) }

// FillWhite fills the surface with white.
func (r *Renderer) FillWhite() { r.FillRegion(White) }

// DrawSegment writes a horizontal run of length pixels starting at (x, y),
// clipped to the surface width. Rows outside the surface are ignored.
func (r *Renderer) DrawSegment(x, y, length int, c Pixel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segment(x, y, length, c)
}

// DrawPoint draws a size×size brush whose top-left corner is
// (x-size/2, y-size/2). Odd sizes are centred on (x, y); even sizes lean
// right and down. The square is clipped to the surface.
func (r *Renderer) DrawPoint(x, y, size int, c Pixel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.point(x, y, size, c)
}

// Snapshot copies the surface into a new image.
func (r *Renderer) Snapshot() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.RGBA()
}

func (r *Renderer) fill(c Pixel) {
	for y := 0; y < r.buf.Height; y++ {
		r.segment(0, y, r.buf.Width, c)
	}
}

func (r *Renderer) segment(x, y, length int, c Pixel) {
	if y < 0 || y >= r.buf.Height {
		return
	}
	end := min(x+length, r.buf.Width)
	x = max(x, 0)
	off := r.buf.Offset(x, y)
	px := r.buf.Native(uint32(c))
	for x < end {
		n := r.store(off, end-x, px)
		x += n
		off += n
	}
}

// store writes the widest batch that fits in remaining and returns the
// number of pixels written. px is already in surface order.
func (r *Renderer) store(off, remaining int, px uint32) int {
	switch {
	case remaining >= 4:
		r.buf.Store4(off, px)
		return 4
	case remaining >= 2:
		r.buf.Store2(off, px)
		return 2
	case remaining >= 1:
		r.buf.Store1(off, px)
		return 1
	}
	return 0
}

func (r *Renderer) point(x, y, size int, c Pixel) {
	left := x - size/2
	top := y - size/2
	r.rect(left, top, left+size, top+size, c)
}

// rect fills [x0,x1)×[y0,y1) clipped to the surface.
func (r *Renderer) rect(x0, y0, x1, y1 int, c Pixel) {
	if x1 <= x0 {
		return
	}
	for y := max(y0, 0); y < min(y1, r.buf.Height); y++ {
		r.segment(x0, y, x1-x0, c)
	}
}
