package render

import "image/color"

// Pixel is a native 32-bit ARGB surface word.
type Pixel uint32

// Colors used by the drawing modes.
var (
	Black         = RGB(0, 0, 0)
	White         = RGB(255, 255, 255)
	BoxBackground = RGB(64, 0, 128)
	BoxForeground = RGB(255, 255, 0)
)

// RGB packs r, g, b into an opaque pixel.
func RGB(r, g, b uint8) Pixel {
	return 0xff000000 | Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

// FromColor converts any color to an opaque pixel, dropping alpha.
func FromColor(c color.Color) Pixel {
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGBA returns the pixel as a color.RGBA.
func (p Pixel) RGBA() color.RGBA {
	return color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: uint8(p >> 24)}
}

// Point is a surface coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}
