package render

import (
	"slices"
	"testing"

	"github.com/example/touchpaint/internal/surface"
)

func TestLineIncludesEndpoints(t *testing.T) {
	pts := Line(Pt(2, 3), Pt(9, 6))
	if pts[0] != Pt(2, 3) || pts[len(pts)-1] != Pt(9, 6) {
		t.Fatalf("endpoints missing: %v", pts)
	}
	if len(pts) != 8 {
		t.Fatalf("expected one point per x step, got %d", len(pts))
	}
}

func TestLineIsConnected(t *testing.T) {
	pts := Line(Pt(-4, 10), Pt(13, -7))
	for i := 1; i < len(pts); i++ {
		dx := abs(pts[i].X - pts[i-1].X)
		dy := abs(pts[i].Y - pts[i-1].Y)
		if dx > 1 || dy > 1 || dx+dy == 0 {
			t.Fatalf("gap between %v and %v", pts[i-1], pts[i])
		}
	}
}

func TestLineSymmetric(t *testing.T) {
	cases := [][2]Point{
		{Pt(0, 0), Pt(2, 1)},
		{Pt(0, 0), Pt(7, 3)},
		{Pt(5, 5), Pt(1, 9)},
		{Pt(3, 8), Pt(3, 1)},
		{Pt(10, 2), Pt(0, 2)},
		{Pt(1, 1), Pt(6, 14)},
	}
	for _, c := range cases {
		fwd := Line(c[0], c[1])
		rev := Line(c[1], c[0])
		slices.Reverse(rev)
		if !slices.Equal(fwd, rev) {
			t.Fatalf("%v→%v: forward %v reverse %v", c[0], c[1], fwd, rev)
		}
	}
}

func TestDrawLineDegenerateEqualsPoint(t *testing.T) {
	a, _ := surface.New(20, 20)
	b, _ := surface.New(20, 20)
	New(a).DrawLine(Pt(7, 9), Pt(7, 9), 3, White)
	New(b).DrawPoint(7, 9, 3, White)
	if !slices.Equal(a.Pix, b.Pix) {
		t.Fatal("degenerate line differs from a single point")
	}
}

func TestDrawLineSameForSwappedEndpoints(t *testing.T) {
	a, _ := surface.New(40, 40)
	b, _ := surface.New(40, 40)
	New(a).DrawLine(Pt(3, 30), Pt(35, 4), 2, White)
	New(b).DrawLine(Pt(35, 4), Pt(3, 30), 2, White)
	if !slices.Equal(a.Pix, b.Pix) {
		t.Fatal("swapped endpoints produced different pixels")
	}
}

func TestDrawLineStampsEveryPoint(t *testing.T) {
	buf, _ := surface.New(50, 50)
	r := New(buf)
	r.DrawLine(Pt(10, 10), Pt(20, 15), 1, White)
	for _, p := range Line(Pt(10, 10), Pt(20, 15)) {
		if Pixel(buf.At(p.X, p.Y)) != White {
			t.Fatalf("point %v not stamped", p)
		}
	}
}
