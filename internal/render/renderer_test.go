package render

import (
	"image"
	"slices"
	"testing"

	"github.com/example/touchpaint/internal/surface"
)

func newTestRenderer(t *testing.T, w, h int) (*Renderer, *surface.Buffer) {
	t.Helper()
	buf, err := surface.New(w, h)
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	return New(buf), buf
}

// changed lists every pixel that differs from before.
func changed(before []uint32, buf *surface.Buffer) []image.Point {
	var pts []image.Point
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			if buf.At(x, y) != before[buf.Offset(x, y)] {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

func TestRGBForcesOpaqueAlpha(t *testing.T) {
	if got := RGB(0x12, 0x34, 0x56); got != 0xff123456 {
		t.Fatalf("got %#x", uint32(got))
	}
	if c := BoxBackground.RGBA(); c.R != 64 || c.G != 0 || c.B != 128 || c.A != 255 {
		t.Fatalf("unexpected box background %+v", c)
	}
}

func TestFillRegionCoversOddWidths(t *testing.T) {
	for _, w := range []int{1, 2, 3, 5, 7, 9} {
		r, buf := newTestRenderer(t, w, 3)
		r.FillWhite()
		for i, px := range buf.Pix {
			if Pixel(px) != White {
				t.Fatalf("width %d: pixel %d not white: %#x", w, i, px)
			}
		}
	}
}

func TestFillRegionRespectsStride(t *testing.T) {
	pix := make([]uint32, 6*2)
	buf, err := surface.Wrap(pix, 5, 2, 6)
	if err != nil {
		t.Fatal(err)
	}
	New(buf).FillRegion(BoxForeground)
	if pix[5] != 0 || pix[11] != 0 {
		t.Fatalf("padding column was written: %#x %#x", pix[5], pix[11])
	}
	if Pixel(pix[6]) != BoxForeground {
		t.Fatalf("second row not filled")
	}
}

func TestDrawSegmentClipsToWidth(t *testing.T) {
	r, buf := newTestRenderer(t, 10, 2)
	r.DrawSegment(7, 1, 20, White)
	for x := 0; x < 10; x++ {
		want := x >= 7
		if got := Pixel(buf.At(x, 1)) == White; got != want {
			t.Fatalf("x=%d: white=%v want %v", x, got, want)
		}
	}
	before := slices.Clone(buf.Pix)
	r.DrawSegment(0, 5, 4, White)
	if len(changed(before, buf)) != 0 {
		t.Fatal("segment outside the surface wrote pixels")
	}
}

func TestDrawPointSizeOneTouchesOnePixel(t *testing.T) {
	r, buf := newTestRenderer(t, 20, 20)
	for _, p := range []Point{{0, 0}, {19, 19}, {7, 3}, {0, 19}} {
		before := slices.Clone(buf.Pix)
		r.DrawPoint(p.X, p.Y, 1, RGB(1, 2, 3))
		got := changed(before, buf)
		if len(got) != 1 || got[0] != image.Pt(p.X, p.Y) {
			t.Fatalf("point %v changed %v", p, got)
		}
		if Pixel(buf.At(p.X, p.Y)) != RGB(1, 2, 3) {
			t.Fatalf("point %v has wrong color", p)
		}
		r.Blank()
	}
}

func TestDrawPointOddSizeIsCentred(t *testing.T) {
	const w, h = 30, 30
	for _, size := range []int{3, 5, 7} {
		k := size / 2
		for _, p := range []Point{{15, 15}, {1, 1}, {0, 29}, {28, 2}} {
			r, buf := newTestRenderer(t, w, h)
			r.DrawPoint(p.X, p.Y, size, White)
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					inside := x >= p.X-k && x <= p.X+k && y >= p.Y-k && y <= p.Y+k
					if got := Pixel(buf.At(x, y)) == White; got != inside {
						t.Fatalf("size %d at %v: pixel (%d,%d) white=%v want %v", size, p, x, y, got, inside)
					}
				}
			}
		}
	}
}

func TestDrawPointEvenSizeLeansRightDown(t *testing.T) {
	r, buf := newTestRenderer(t, 10, 10)
	r.DrawPoint(5, 5, 2, White)
	want := []image.Point{{4, 4}, {5, 4}, {4, 5}, {5, 5}}
	got := changed(make([]uint32, 100), buf)
	if !slices.Equal(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	r.Blank()
	r.DrawPoint(5, 5, 4, White)
	for y := 3; y < 7; y++ {
		for x := 3; x < 7; x++ {
			if Pixel(buf.At(x, y)) != White {
				t.Fatalf("pixel (%d,%d) not painted", x, y)
			}
		}
	}
}

func TestDrawPointPartialAtEdges(t *testing.T) {
	r, buf := newTestRenderer(t, 6, 6)
	r.DrawPoint(5, 5, 5, White)
	got := changed(make([]uint32, 36), buf)
	if len(got) != 9 {
		t.Fatalf("expected 3x3 corner, got %d pixels: %v", len(got), got)
	}
	for _, p := range got {
		if p.X < 3 || p.Y < 3 {
			t.Fatalf("pixel %v outside the clipped square", p)
		}
	}
}

func TestSnapshotMatchesSurface(t *testing.T) {
	r, _ := newTestRenderer(t, 4, 4)
	r.FillRegion(BoxBackground)
	r.DrawPoint(1, 1, 1, BoxForeground)
	img := r.Snapshot()
	if img.RGBAAt(1, 1) != BoxForeground.RGBA() {
		t.Fatalf("unexpected pixel %+v", img.RGBAAt(1, 1))
	}
	if img.RGBAAt(3, 3) != BoxBackground.RGBA() {
		t.Fatalf("unexpected pixel %+v", img.RGBAAt(3, 3))
	}
}

func TestDrawingHonoursChannelOrder(t *testing.T) {
	buf, err := surface.New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	buf.Order = surface.XBGR
	r := New(buf)
	r.FillRegion(BoxBackground)
	r.DrawPoint(1, 1, 1, BoxForeground)

	if got := buf.At(0, 0); got != 0xff800040 {
		t.Fatalf("background stored as %#x, want 0xff800040", got)
	}
	if got := buf.At(1, 1); got != 0xff00ffff {
		t.Fatalf("foreground stored as %#x, want 0xff00ffff", got)
	}
	img := r.Snapshot()
	if img.RGBAAt(0, 0) != BoxBackground.RGBA() || img.RGBAAt(1, 1) != BoxForeground.RGBA() {
		t.Fatal("snapshot colors do not match the drawn colors")
	}
}
