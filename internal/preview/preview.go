// Package preview shows a memory surface in a desktop window and turns
// mouse buttons into touch contacts.
package preview

import (
	"fmt"
	"image"
	"log"
	"slices"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/touchpaint/internal/display"
	"github.com/example/touchpaint/internal/input"
	"github.com/example/touchpaint/internal/mode"
	"github.com/example/touchpaint/internal/notify"
)

// DefaultRefresh is how often the window repaints while open.
const DefaultRefresh = 30 * time.Millisecond

// decorations is the vertical space reserved for the title bar and panels
// when fitting the window to a monitor.
const decorations = 96

// Engine is the painter shown in the window.
type Engine interface {
	input.Sink
	Mode() mode.Mode
	Snapshot() *image.RGBA
}

// Window is a preview of one engine surface.
type Window struct {
	engine        Engine
	width, height int

	scale    float64
	saveDir  string
	notifier *notify.Notifier
	refresh  time.Duration
	onClose  func()

	message      string
	messageUntil time.Time

	closeOnce sync.Once
	err       error
}

// Option modifies a Window during creation.
type Option func(*Window)

// WithScale fixes the initial zoom. Zero fits the primary monitor.
func WithScale(scale float64) Option { return func(p *Window) { p.scale = scale } }

// WithSaveDir sets where snapshots are written.
func WithSaveDir(dir string) Option { return func(p *Window) { p.saveDir = dir } }

// WithNotifier sends desktop notifications for saves and copies.
func WithNotifier(n *notify.Notifier) Option { return func(p *Window) { p.notifier = n } }

// WithRefresh sets the repaint interval.
func WithRefresh(d time.Duration) Option { return func(p *Window) { p.refresh = d } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(p *Window) { p.onClose = fn } }

// New creates a preview of a width x height engine surface.
func New(engine Engine, width, height int, opts ...Option) *Window {
	p := &Window{
		engine:  engine,
		width:   width,
		height:  height,
		refresh: DefaultRefresh,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run opens the window and blocks until it is closed.
func (p *Window) Run() error {
	driver.Main(p.Main)
	return p.err
}

func (p *Window) notifyClose() {
	p.closeOnce.Do(func() {
		if p.onClose != nil {
			p.onClose()
		}
	})
}

func (p *Window) initialScale() float64 {
	if p.scale > 0 {
		return p.scale
	}
	bounds := image.Rect(0, 0, 1920, 1080)
	if m, err := display.PrimaryMonitor(); err != nil {
		log.Printf("preview: %v, assuming %dx%d", err, bounds.Dx(), bounds.Dy())
	} else {
		bounds = m.Rect
	}
	return display.FitScale(p.width, p.height, bounds, decorations)
}

// Main runs the event loop on s.
func (p *Window) Main(s screen.Screen) {
	defer p.notifyClose()

	scale := p.initialScale()
	width, height := windowSize(p.width, p.height, scale)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "touchpaint"})
	if err != nil {
		p.err = fmt.Errorf("new window: %w", err)
		return
	}
	defer w.Release()

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(p.refresh)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	lay := newLayout(p.width, p.height, width, height)
	held := make(map[int]bool)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			lay = newLayout(p.width, p.height, width, height)
		case paint.Event:
			drawFrame(s, w, paintState{
				width:        width,
				height:       height,
				layout:       lay,
				surface:      p.engine.Snapshot(),
				status:       statusLine(p.engine.Mode(), len(held), lay.scale),
				message:      p.message,
				messageUntil: p.messageUntil,
			})
		case mouse.Event:
			p.handleMouse(e, lay, held)
		case key.Event:
			if p.handleKey(e) == actionQuit {
				return
			}
		case error:
			log.Printf("preview: %v", e)
		}
	}
}

func (p *Window) handleMouse(e mouse.Event, lay layout, held map[int]bool) {
	pt, inside := lay.toSurface(image.Pt(int(e.X), int(e.Y)))
	switch e.Direction {
	case mouse.DirPress:
		slot, ok := slotFor(e.Button)
		if !ok || !inside {
			return
		}
		held[slot] = true
		p.touch(slot, pt)
	case mouse.DirRelease:
		slot, ok := slotFor(e.Button)
		if !ok || !held[slot] {
			return
		}
		delete(held, slot)
		if err := p.engine.Select(slot); err != nil {
			log.Printf("preview: %v", err)
			return
		}
		p.engine.Lift()
		p.engine.Commit()
	case mouse.DirNone:
		if !inside {
			return
		}
		slots := make([]int, 0, len(held))
		for s := range held {
			slots = append(slots, s)
		}
		slices.Sort(slots)
		for _, s := range slots {
			p.touch(s, pt)
		}
	}
}

func (p *Window) touch(slot int, pt image.Point) {
	if err := p.engine.Select(slot); err != nil {
		log.Printf("preview: %v", err)
		return
	}
	p.engine.SetX(pt.X)
	p.engine.SetY(pt.Y)
	p.engine.Commit()
}

func (p *Window) handleKey(e key.Event) action {
	a := actionFor(e)
	switch a {
	case actionCycle:
		if err := p.engine.Cycle(); err != nil {
			p.flash(err.Error())
		}
	case actionSave:
		img := p.engine.Snapshot()
		path, err := SaveSnapshot(img, p.saveDir, time.Now())
		if err != nil {
			log.Printf("save snapshot: %v", err)
			p.flash("save failed")
			break
		}
		log.Printf("saved %s", path)
		p.flash("saved")
		p.notifier.Save(path)
	case actionCopy:
		img := p.engine.Snapshot()
		if err := copyImage(img); err != nil {
			log.Printf("copy snapshot: %v", err)
			p.flash("copy failed")
			break
		}
		p.flash("copied")
		p.notifier.Copy("snapshot", img)
	}
	return a
}

func (p *Window) flash(msg string) {
	p.message = msg
	p.messageUntil = time.Now().Add(2 * time.Second)
}
