// Package framebuffer maps a Linux fbdev device as a drawing surface.
package framebuffer

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/touchpaint/internal/surface"
)

var (
	// ErrFormat is returned for devices that are not 32 bits per pixel with
	// 8-bit channels in XRGB or XBGR order.
	ErrFormat = errors.New("unsupported framebuffer pixel format")
	// ErrUnsupported is returned on platforms without fbdev.
	ErrUnsupported = errors.New("framebuffer devices are not supported on this platform")
)

type bitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

// struct fb_var_screeninfo
type varScreenInfo struct {
	XRes, YRes               uint32
	XResVirtual, YResVirtual uint32
	XOffset, YOffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp bitfield
	Nonstd, Activate         uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync, Vmode              uint32
	Rotate, Colorspace       uint32
	Reserved                 [4]uint32
}

// struct fb_fix_screeninfo
type fixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// Info describes the mapped display.
type Info struct {
	ID     string
	Width  int
	Height int
	// Stride in pixels between rows.
	Stride int
	// Channel bit offsets within a pixel.
	RedOffset, GreenOffset, BlueOffset uint32
	Order                              surface.Order
}

func (i Info) String() string {
	return fmt.Sprintf("%s %dx%d stride %d %s", i.ID, i.Width, i.Height, i.Stride, i.Order)
}

func channelOrder(v varScreenInfo) (surface.Order, error) {
	if v.Red.Length != 8 || v.Green.Length != 8 || v.Blue.Length != 8 || v.Green.Offset != 8 {
		return 0, fmt.Errorf("%w: channels r=%d/%d g=%d/%d b=%d/%d", ErrFormat,
			v.Red.Offset, v.Red.Length, v.Green.Offset, v.Green.Length, v.Blue.Offset, v.Blue.Length)
	}
	switch {
	case v.Red.Offset == 16 && v.Blue.Offset == 0:
		return surface.XRGB, nil
	case v.Red.Offset == 0 && v.Blue.Offset == 16:
		return surface.XBGR, nil
	}
	return 0, fmt.Errorf("%w: channels r=%d g=%d b=%d", ErrFormat, v.Red.Offset, v.Green.Offset, v.Blue.Offset)
}

func newInfo(v varScreenInfo, f fixScreenInfo) (Info, error) {
	if v.BitsPerPixel != 32 {
		return Info{}, fmt.Errorf("%w: %d bits per pixel", ErrFormat, v.BitsPerPixel)
	}
	if f.LineLength%4 != 0 || int(f.LineLength/4) < int(v.XRes) {
		return Info{}, fmt.Errorf("%w: line length %d for width %d", ErrFormat, f.LineLength, v.XRes)
	}
	id := string(f.ID[:])
	for i, c := range f.ID {
		if c == 0 {
			id = string(f.ID[:i])
			break
		}
	}
	order, err := channelOrder(v)
	if err != nil {
		return Info{}, err
	}
	return Info{
		ID:          id,
		Width:       int(v.XRes),
		Height:      int(v.YRes),
		Stride:      int(f.LineLength / 4),
		RedOffset:   v.Red.Offset,
		GreenOffset: v.Green.Offset,
		BlueOffset:  v.Blue.Offset,
		Order:       order,
	}, nil
}

// Device is a mapped framebuffer.
type Device struct {
	Path string
	info Info
	buf  *surface.Buffer

	f   *os.File
	mem []byte
}

// Info returns the display geometry.
func (d *Device) Info() Info { return d.info }

// Buffer returns the whole visible screen.
func (d *Device) Buffer() *surface.Buffer { return d.buf }

// Surface returns the top-left width x height region of the screen. Zero
// dimensions select the full device size.
func (d *Device) Surface(width, height int) (*surface.Buffer, error) {
	if width == 0 {
		width = d.buf.Width
	}
	if height == 0 {
		height = d.buf.Height
	}
	if width > d.buf.Width || height > d.buf.Height {
		return nil, fmt.Errorf("%w: %dx%d does not fit display %dx%d",
			surface.ErrGeometry, width, height, d.buf.Width, d.buf.Height)
	}
	buf, err := surface.Wrap(d.buf.Pix, width, height, d.buf.Stride)
	if err != nil {
		return nil, err
	}
	buf.Order = d.buf.Order
	return buf, nil
}
