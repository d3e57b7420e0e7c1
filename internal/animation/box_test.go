package animation

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/example/touchpaint/internal/render"
	"github.com/example/touchpaint/internal/surface"
)

func newBox(t *testing.T, w, h int, opts ...Option) (*Box, *surface.Buffer, *render.Renderer) {
	t.Helper()
	buf, err := surface.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	r := render.New(buf)
	opts = append([]Option{WithSize(11), WithTick(time.Millisecond)}, opts...)
	return New(r, opts...), buf, r
}

func TestStartPaintsBackgroundAndBox(t *testing.T) {
	b, _, r := newBox(t, 40, 120, WithTick(time.Hour))
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	defer b.Stop()
	img := r.Snapshot()
	if got := img.RGBAAt(0, 119); got != render.BoxBackground.RGBA() {
		t.Fatalf("background not painted: %+v", got)
	}
	// Rows 12..15 are covered both before and after the first step.
	if got := img.RGBAAt(20, 15); got != render.BoxForeground.RGBA() {
		t.Fatalf("box not painted near its start position: %+v", got)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	b, _, _ := newBox(t, 40, 120)
	if err := b.Stop(); err != nil {
		t.Fatalf("stop before start: %v", err)
	}
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	if !b.Running() {
		t.Fatal("expected running")
	}
	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}
	if b.Running() {
		t.Fatal("expected stopped")
	}
}

func TestAnimationMovesAndStops(t *testing.T) {
	b, buf, _ := newBox(t, 40, 120)
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	first := pixels(b)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if !slices.Equal(pixels(b), first) {
			break
		}
		if time.Now().After(deadline) {
			b.Stop()
			t.Fatal("box never moved")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}
	stopped := slices.Clone(buf.Pix)
	time.Sleep(30 * time.Millisecond)
	if !slices.Equal(stopped, buf.Pix) {
		t.Fatal("pixels changed after Stop returned")
	}
}

func TestBoxStaysInsideBounceRange(t *testing.T) {
	b, buf, _ := newBox(t, 40, 240, WithSize(9))
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}
	// Exactly one box worth of foreground rows must remain.
	rows := 0
	for y := 0; y < buf.Height; y++ {
		if render.Pixel(buf.At(20, y)) == render.BoxForeground {
			rows++
		}
	}
	if rows != 9 {
		t.Fatalf("expected 9 foreground rows, got %d", rows)
	}
}

func TestStartRejectsTinySurface(t *testing.T) {
	b, _, _ := newBox(t, 40, 6)
	if err := b.Start(); !errors.Is(err, ErrSurfaceTooSmall) {
		t.Fatalf("expected ErrSurfaceTooSmall, got %v", err)
	}
	if b.Running() {
		t.Fatal("box running after failed start")
	}
}

func TestStopTimeoutKeepsTrackingLoop(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	orig := drawStep
	drawStep = func(r *render.Renderer, size int, from, to render.Point, fg, bg render.Pixel) {
		select {
		case entered <- struct{}{}:
		default:
		}
		<-release
		r.DrawDamagedSegment(size, from, to, fg, bg)
	}
	t.Cleanup(func() { drawStep = orig })

	b, _, _ := newBox(t, 40, 120, WithStopTimeout(10*time.Millisecond))
	if err := b.Start(); err != nil {
		t.Fatal(err)
	}
	<-entered

	if err := b.Stop(); !errors.Is(err, ErrStopTimeout) {
		close(release)
		t.Fatalf("expected ErrStopTimeout, got %v", err)
	}
	if !b.Running() {
		close(release)
		t.Fatal("loop reported stopped while still drawing")
	}
	if err := b.Start(); !errors.Is(err, ErrStopPending) {
		close(release)
		t.Fatalf("expected ErrStopPending, got %v", err)
	}

	close(release)
	b.stopTimeout = time.Second
	if err := b.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	if b.Running() {
		t.Fatal("loop still running after it exited")
	}
	if err := b.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}
}

// pixels reads the surface through a snapshot so the read does not race
// with the animation's writes.
func pixels(b *Box) []uint32 {
	img := b.r.Snapshot()
	w, h := b.r.Size()
	out := make([]uint32, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(x, y)
			out = append(out, uint32(c.A)<<24|uint32(c.R)<<16|uint32(c.G)<<8|uint32(c.B))
		}
	}
	return out
}
