// Package surface describes the linear pixel memory the renderer draws into.
package surface

import (
	"errors"
	"fmt"
	"image"
)

// ErrGeometry reports a buffer whose dimensions do not fit its backing memory.
var ErrGeometry = errors.New("invalid surface geometry")

// Order is the channel layout of a pixel word.
type Order int

const (
	// XRGB keeps red in bits 16-23 and blue in bits 0-7.
	XRGB Order = iota
	// XBGR keeps blue in bits 16-23 and red in bits 0-7.
	XBGR
)

func (o Order) String() string {
	if o == XBGR {
		return "XBGR"
	}
	return "XRGB"
}

// Buffer is a linear 32-bit pixel surface. The pixel at (x, y) lives at
// Pix[x + y*Stride].
type Buffer struct {
	Width  int
	Height int
	Stride int
	Pix    []uint32
	Order  Order
}

// Native converts an ARGB word into the buffer's channel order.
func (b *Buffer) Native(argb uint32) uint32 {
	if b.Order == XBGR {
		return swapRB(argb)
	}
	return argb
}

// ARGB converts a word stored in the buffer back to ARGB.
func (b *Buffer) ARGB(px uint32) uint32 {
	if b.Order == XBGR {
		return swapRB(px)
	}
	return px
}

func swapRB(px uint32) uint32 {
	return px&0xff00ff00 | px>>16&0xff | px&0xff<<16
}

// New allocates a zeroed (black, transparent) in-memory buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrGeometry, width, height)
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Stride: width,
		Pix:    make([]uint32, width*height),
	}, nil
}

// Wrap exposes existing pixel memory, such as a mapped framebuffer, as a
// Buffer. stride is measured in pixels.
func Wrap(pix []uint32, width, height, stride int) (*Buffer, error) {
	if width <= 0 || height <= 0 || stride < width {
		return nil, fmt.Errorf("%w: %dx%d stride %d", ErrGeometry, width, height, stride)
	}
	if need := stride*(height-1) + width; len(pix) < need {
		return nil, fmt.Errorf("%w: %d pixels mapped, %d needed", ErrGeometry, len(pix), need)
	}
	return &Buffer{Width: width, Height: height, Stride: stride, Pix: pix}, nil
}

// Offset returns the index of (x, y) in Pix.
func (b *Buffer) Offset(x, y int) int {
	return x + y*b.Stride
}

// Store1 writes a single pixel.
func (b *Buffer) Store1(off int, px uint32) {
	b.Pix[off] = px
}

// Store2 writes two adjacent pixels with one array store.
func (b *Buffer) Store2(off int, px uint32) {
	*(*[2]uint32)(b.Pix[off : off+2]) = [2]uint32{px, px}
}

// Store4 writes four adjacent pixels with one array store.
func (b *Buffer) Store4(off int, px uint32) {
	*(*[4]uint32)(b.Pix[off : off+4]) = [4]uint32{px, px, px, px}
}

// At returns the raw pixel word at (x, y).
func (b *Buffer) At(x, y int) uint32 {
	return b.Pix[b.Offset(x, y)]
}

// RGBA converts the visible area into an image.RGBA, honouring Order.
// Alpha is taken from the pixel word.
func (b *Buffer) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		row := b.Pix[y*b.Stride : y*b.Stride+b.Width]
		dst := img.Pix[y*img.Stride:]
		for x, px := range row {
			px = b.ARGB(px)
			i := x * 4
			dst[i+0] = uint8(px >> 16)
			dst[i+1] = uint8(px >> 8)
			dst[i+2] = uint8(px)
			dst[i+3] = uint8(px >> 24)
		}
	}
	return img
}
