package mode

import (
	"log"
	"sync"
	"time"

	"github.com/example/touchpaint/internal/render"
)

// FillRevertDelay is how long fill mode stays white after the last contact
// lifts.
const FillRevertDelay = 250 * time.Millisecond

// Animator is the background animation toggled in box mode.
type Animator interface {
	Start() error
	Stop() error
	Running() bool
}

// Settings are the drawing parameters read once at start.
type Settings struct {
	BrushSize     int
	FollowBoxSize int
	// PaintClearDelay: 0 clears on the next contact, >0 clears that long
	// after the last contact lifts, <0 never clears.
	PaintClearDelay time.Duration
	Initial         Mode
}

// Controller dispatches contact transitions to the active mode. It
// implements contact.Handler.
type Controller struct {
	r        *render.Renderer
	anim     Animator
	settings Settings

	mu       sync.Mutex
	mode     Mode
	timer    clearTimer
	onChange func(Mode)
}

// NewController returns a controller in settings.Initial mode.
func NewController(r *render.Renderer, anim Animator, settings Settings) *Controller {
	if !settings.Initial.Valid() {
		settings.Initial = Paint
	}
	return &Controller{
		r:        r,
		anim:     anim,
		settings: settings,
		mode:     settings.Initial,
	}
}

// OnChange registers fn to run after every successful mode cycle. fn runs
// with the controller lock released.
func (c *Controller) OnChange(fn func(Mode)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ClearPending reports whether an auto-clear is armed.
func (c *Controller) ClearPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer.pending()
}

// Cycle advances to the next mode. Leaving box mode stops the animation
// first; a stop failure is returned but the transition still completes.
// Any pending auto-clear is cancelled and the surface is blanked before the
// new mode becomes active.
func (c *Controller) Cycle() (Mode, error) {
	c.mu.Lock()
	var stopErr error
	if c.mode == Box {
		if stopErr = c.anim.Stop(); stopErr != nil {
			log.Printf("mode %s: stop animation: %v", c.mode, stopErr)
		}
	}
	c.timer.cancel()
	c.r.Blank()
	c.mode = c.mode.Next()
	m, fn := c.mode, c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(m)
	}
	return m, stopErr
}

// Close cancels any pending clear and stops the animation.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timer.cancel()
	return c.anim.Stop()
}

// FirstContact implements contact.Handler.
func (c *Controller) FirstContact() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case Paint:
		switch d := c.settings.PaintClearDelay; {
		case d > 0:
			c.timer.cancel()
		case d == 0:
			c.r.Blank()
		}
	case Fill:
		c.timer.cancel()
		c.r.FillWhite()
	case Box:
		if c.anim.Running() {
			if err := c.anim.Stop(); err != nil {
				log.Printf("mode %s: stop animation: %v", c.mode, err)
			}
			c.r.Blank()
			return
		}
		if err := c.anim.Start(); err != nil {
			log.Printf("mode %s: start animation: %v", c.mode, err)
		}
	case Follow:
	}
}

// Sample implements contact.Handler.
func (c *Controller) Sample(slot int, prev render.Point, hasPrev bool, cur render.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case Paint:
		size := c.settings.BrushSize
		c.r.DrawPoint(cur.X, cur.Y, size, render.White)
		if hasPrev {
			c.r.DrawLine(prev, cur, size, render.White)
		}
	case Follow:
		size := c.settings.FollowBoxSize
		if hasPrev {
			c.r.DrawPoint(prev.X, prev.Y, size, render.Black)
		}
		c.r.DrawPoint(cur.X, cur.Y, size, render.White)
	case Fill, Box:
	}
}

// Released implements contact.Handler.
func (c *Controller) Released(slot int, last render.Point, hasLast bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case Follow:
		if hasLast {
			c.r.DrawPoint(last.X, last.Y, c.settings.FollowBoxSize, render.Black)
		}
	case Paint, Fill, Box:
	}
}

// LastReleased implements contact.Handler.
func (c *Controller) LastReleased() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.mode {
	case Paint:
		if d := c.settings.PaintClearDelay; d > 0 {
			c.timer.arm(d, c.fireClear)
		}
	case Fill:
		c.timer.arm(FillRevertDelay, c.fireClear)
	case Box, Follow:
	}
}

func (c *Controller) fireClear(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.timer.claim(gen) {
		return
	}
	c.r.Blank()
}
