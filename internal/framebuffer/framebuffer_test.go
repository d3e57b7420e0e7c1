package framebuffer

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/example/touchpaint/internal/surface"
)

func TestStructLayout(t *testing.T) {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		t.Skip("layout checked on 64-bit only")
	}
	if got := unsafe.Sizeof(varScreenInfo{}); got != 160 {
		t.Errorf("fb_var_screeninfo is %d bytes, want 160", got)
	}
	if got := unsafe.Sizeof(fixScreenInfo{}); got != 80 {
		t.Errorf("fb_fix_screeninfo is %d bytes, want 80", got)
	}
	if got := unsafe.Offsetof(fixScreenInfo{}.LineLength); got != 48 {
		t.Errorf("line_length at offset %d, want 48", got)
	}
}

func TestNewInfo(t *testing.T) {
	v := xrgb(1080, 2340)
	var f fixScreenInfo
	copy(f.ID[:], "msmfb")
	f.LineLength = 1088 * 4

	info, err := newInfo(v, f)
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "msmfb" || info.Width != 1080 || info.Height != 2340 || info.Stride != 1088 || info.Order != surface.XRGB {
		t.Fatalf("unexpected info %+v", info)
	}

	v.BitsPerPixel = 16
	if _, err := newInfo(v, f); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for 16bpp, got %v", err)
	}

	v.BitsPerPixel = 32
	f.LineLength = 100
	if _, err := newInfo(v, f); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for short lines, got %v", err)
	}
}

func xrgb(w, h uint32) varScreenInfo {
	v := varScreenInfo{XRes: w, YRes: h, BitsPerPixel: 32}
	v.Red = bitfield{Offset: 16, Length: 8}
	v.Green = bitfield{Offset: 8, Length: 8}
	v.Blue = bitfield{Offset: 0, Length: 8}
	return v
}

func TestNewInfoChannelOrder(t *testing.T) {
	var f fixScreenInfo
	f.LineLength = 64 * 4

	v := xrgb(64, 32)
	v.Red.Offset, v.Blue.Offset = 0, 16
	info, err := newInfo(v, f)
	if err != nil {
		t.Fatal(err)
	}
	if info.Order != surface.XBGR {
		t.Fatalf("expected XBGR, got %s", info.Order)
	}

	v = xrgb(64, 32)
	v.Green.Offset = 24
	if _, err := newInfo(v, f); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for green at 24, got %v", err)
	}

	v = xrgb(64, 32)
	v.Red.Length = 10
	if _, err := newInfo(v, f); !errors.Is(err, ErrFormat) {
		t.Fatalf("expected ErrFormat for 10-bit red, got %v", err)
	}
}

func TestSurfaceRegion(t *testing.T) {
	pix := make([]uint32, 12*10)
	buf, err := surface.Wrap(pix, 10, 10, 12)
	if err != nil {
		t.Fatal(err)
	}
	buf.Order = surface.XBGR
	d := &Device{buf: buf}

	full, err := d.Surface(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if full.Width != 10 || full.Height != 10 || full.Stride != 12 {
		t.Fatalf("unexpected full surface %dx%d/%d", full.Width, full.Height, full.Stride)
	}

	part, err := d.Surface(4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if part.Order != surface.XBGR {
		t.Fatal("region lost the channel order")
	}
	part.Store1(part.Offset(3, 9), 7)
	if pix[9*12+3] != 7 {
		t.Fatal("region does not share screen memory")
	}

	if _, err := d.Surface(11, 5); !errors.Is(err, surface.ErrGeometry) {
		t.Fatalf("expected ErrGeometry, got %v", err)
	}
}
