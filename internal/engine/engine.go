// Package engine owns one touchpaint instance: the renderer, the box
// animation, the mode controller and the contact tracker that feeds it.
package engine

import (
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	"github.com/example/touchpaint/internal/animation"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/contact"
	"github.com/example/touchpaint/internal/mode"
	"github.com/example/touchpaint/internal/render"
	"github.com/example/touchpaint/internal/surface"
)

// Engine routes input frames to the active drawing mode.
type Engine struct {
	renderer   *render.Renderer
	box        *animation.Box
	controller *mode.Controller
	tracker    *contact.Tracker

	onMode      func(mode.Mode)
	stopTimeout time.Duration

	mu      sync.Mutex
	started bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithModeListener registers fn to be called after every mode change.
func WithModeListener(fn func(mode.Mode)) Option {
	return func(e *Engine) { e.onMode = fn }
}

// WithStopTimeout bounds how long stopping the box animation may take.
func WithStopTimeout(d time.Duration) Option {
	return func(e *Engine) { e.stopTimeout = d }
}

// New wires an engine drawing into buf. Non-zero dimensions in cfg must
// match the buffer.
func New(cfg *config.Config, buf *surface.Buffer, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if (cfg.Width != 0 && cfg.Width != buf.Width) || (cfg.Height != 0 && cfg.Height != buf.Height) {
		return nil, fmt.Errorf("%w: configured %dx%d, surface is %dx%d",
			surface.ErrGeometry, cfg.Width, cfg.Height, buf.Width, buf.Height)
	}

	e := &Engine{stopTimeout: animation.DefaultStopTimeout}
	for _, o := range opts {
		o(e)
	}

	e.renderer = render.New(buf)
	e.box = animation.New(e.renderer,
		animation.WithSize(cfg.BoxSize),
		animation.WithColors(render.FromColor(cfg.BoxForeground), render.FromColor(cfg.BoxBackground)),
		animation.WithStopTimeout(e.stopTimeout),
	)
	e.controller = mode.NewController(e.renderer, e.box, cfg.Settings())
	if e.onMode != nil {
		e.controller.OnChange(e.onMode)
	}
	e.tracker = contact.New(e.controller)
	return e, nil
}

// Start blanks the surface and begins accepting contacts.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.renderer.Blank()
	e.tracker.SetReady(true)
	e.started = true
	log.Printf("touchpaint started in %s mode", e.controller.Mode())
}

// Close stops accepting contacts, cancels pending clears and stops the
// animation.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tracker.SetReady(false)
	e.started = false
	return e.controller.Close()
}

// Select implements input.Sink.
func (e *Engine) Select(slot int) error { return e.tracker.Select(slot) }

// SetX implements input.Sink.
func (e *Engine) SetX(v int) { e.tracker.SetX(v) }

// SetY implements input.Sink.
func (e *Engine) SetY(v int) { e.tracker.SetY(v) }

// Lift implements input.Sink.
func (e *Engine) Lift() { e.tracker.Lift() }

// Commit implements input.Sink.
func (e *Engine) Commit() { e.tracker.Commit() }

// Cycle implements input.Sink by advancing to the next mode.
func (e *Engine) Cycle() error {
	m, err := e.controller.Cycle()
	log.Printf("mode changed to %s", m)
	return err
}

// Mode returns the active mode.
func (e *Engine) Mode() mode.Mode { return e.controller.Mode() }

// Tracker returns the contact tracker.
func (e *Engine) Tracker() *contact.Tracker { return e.tracker }

// Controller returns the mode controller.
func (e *Engine) Controller() *mode.Controller { return e.controller }

// Renderer returns the renderer drawing into the surface.
func (e *Engine) Renderer() *render.Renderer { return e.renderer }

// Snapshot copies the surface into an image.
func (e *Engine) Snapshot() *image.RGBA { return e.renderer.Snapshot() }
