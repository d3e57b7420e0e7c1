// Package animation runs the bouncing box shown in box mode.
package animation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/example/touchpaint/internal/render"
)

const (
	// DefaultSize is the edge length of the box in pixels.
	DefaultSize = 301
	// DefaultStep is the vertical distance moved per tick.
	DefaultStep = 7
	// DefaultTick is the frame interval.
	DefaultTick = 8 * time.Millisecond
	// DefaultStopTimeout bounds how long Stop waits for the loop to exit.
	DefaultStopTimeout = time.Second
)

var (
	// ErrStopTimeout is returned by Stop when the loop did not exit in time.
	ErrStopTimeout = errors.New("box animation did not stop in time")
	// ErrStopPending is returned by Start while a loop that missed its stop
	// deadline is still running.
	ErrStopPending = errors.New("previous box animation is still stopping")
	// ErrSurfaceTooSmall is returned by Start when the surface cannot hold
	// a single step of the bounce.
	ErrSurfaceTooSmall = errors.New("surface too small for box animation")
)

// Box bounces a square vertically at the horizontal centre of the surface,
// repainting only the rows that change each tick.
type Box struct {
	r           *render.Renderer
	size        int
	step        int
	tick        time.Duration
	stopTimeout time.Duration
	fg, bg      render.Pixel

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	schedOnce sync.Once
}

// Option configures a Box.
type Option func(*Box)

// WithSize sets the box edge length.
func WithSize(size int) Option { return func(b *Box) { b.size = size } }

// WithColors sets the box and background colors.
func WithColors(fg, bg render.Pixel) Option {
	return func(b *Box) { b.fg, b.bg = fg, bg }
}

// WithTick sets the frame interval.
func WithTick(d time.Duration) Option { return func(b *Box) { b.tick = d } }

// WithStopTimeout bounds the wait performed by Stop.
func WithStopTimeout(d time.Duration) Option { return func(b *Box) { b.stopTimeout = d } }

// New returns a stopped animation drawing through r.
func New(r *render.Renderer, opts ...Option) *Box {
	b := &Box{
		r:           r,
		size:        DefaultSize,
		step:        DefaultStep,
		tick:        DefaultTick,
		stopTimeout: DefaultStopTimeout,
		fg:          render.BoxForeground,
		bg:          render.BoxBackground,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// drawStep is replaced in tests.
var drawStep = (*render.Renderer).DrawDamagedSegment

// Running reports whether a loop goroutine is alive, including one that was
// told to stop but has not exited yet.
func (b *Box) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.alive()
}

// alive reports whether the loop in b.done has not exited, forgetting it
// once it has. Callers hold b.mu.
func (b *Box) alive() bool {
	if b.done == nil {
		return false
	}
	select {
	case <-b.done:
		b.cancel, b.done = nil, nil
		return false
	default:
		return true
	}
}

// Start paints the background and the box, then launches the loop. It does
// nothing if the loop is already running and returns ErrStopPending if a
// stopped loop has not exited yet.
func (b *Box) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.alive() {
		if b.cancel == nil {
			return ErrStopPending
		}
		return nil
	}
	w, h := b.r.Size()
	margin := h / 12
	if h-2*margin < b.step || w <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrSurfaceTooSmall, w, h)
	}

	start := render.Pt(w/2, margin)
	b.r.FillRegion(b.bg)
	b.r.DrawPoint(start.X, start.Y, b.size, b.fg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.cancel, b.done = cancel, done
	go b.run(ctx, done, start, h, margin)
	return nil
}

// Stop signals the loop and waits up to the stop timeout for it to finish
// its current tick. It does nothing if the loop is not running. After
// ErrStopTimeout the loop is still tracked: Running stays true and a later
// Stop waits for it again.
func (b *Box) Stop() error {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel = nil
	b.mu.Unlock()
	if done == nil {
		return nil
	}
	if cancel != nil {
		cancel()
	}
	timer := time.NewTimer(b.stopTimeout)
	defer timer.Stop()
	select {
	case <-done:
		b.mu.Lock()
		if b.done == done {
			b.done = nil
		}
		b.mu.Unlock()
		return nil
	case <-timer.C:
		return ErrStopTimeout
	}
}

func (b *Box) run(ctx context.Context, done chan<- struct{}, pos render.Point, height, margin int) {
	defer close(done)

	// The goroutine never unlocks: when it returns the runtime retires the
	// thread together with any realtime policy applied to it.
	runtime.LockOSThread()
	if err := setRealtime(); err != nil {
		b.schedOnce.Do(func() {
			log.Printf("box animation: realtime scheduling unavailable: %v", err)
		})
	}

	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()
	step := b.step
	for {
		if pos.Y > height-margin || pos.Y < margin {
			step = -step
		}
		next := render.Pt(pos.X, pos.Y+step)
		drawStep(b.r, b.size, pos, next, b.fg, b.bg)
		pos = next

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
