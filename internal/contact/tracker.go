// Package contact tracks multi-touch contacts ("slots") and reports their
// down, move and up transitions to a Handler.
package contact

import (
	"errors"
	"fmt"
	"sync"

	"github.com/example/touchpaint/internal/render"
)

// MaxSlots is the number of simultaneous contacts tracked.
const MaxSlots = 10

// ErrSlotRange reports a slot index outside [0, MaxSlots).
var ErrSlotRange = errors.New("slot out of range")

// Handler receives contact transitions. Calls are made with the tracker
// lock held and are never concurrent with each other.
type Handler interface {
	// FirstContact runs when the active contact count goes from 0 to 1.
	FirstContact()
	// Sample runs for every position reported for a down slot. hasPrev is
	// false for the first sample of a contact.
	Sample(slot int, prev render.Point, hasPrev bool, cur render.Point)
	// Released runs when a down slot lifts, before it is reset.
	Released(slot int, last render.Point, hasLast bool)
	// LastReleased runs when the active contact count goes from 1 to 0.
	LastReleased()
}

type slot struct {
	down    bool
	last    render.Point
	hasLast bool

	// pending position reported by the event source, -1 when unknown
	pendingX int
	pendingY int
	dirty    bool
}

// Tracker owns the slot table. The zero value is not usable; use New.
type Tracker struct {
	mu      sync.Mutex
	handler Handler
	ready   bool
	active  int
	slots   [MaxSlots]slot

	// current is the slot frame calls apply to; selected is false after
	// an out-of-range Select.
	current  int
	selected bool
}

// New creates a tracker with every slot up. It ignores contacts until
// SetReady(true) is called.
func New(h Handler) *Tracker {
	t := &Tracker{handler: h, selected: true}
	for i := range t.slots {
		t.slots[i].pendingX = -1
		t.slots[i].pendingY = -1
	}
	return t
}

// SetReady enables or disables contact processing.
func (t *Tracker) SetReady(ready bool) {
	t.mu.Lock()
	t.ready = ready
	t.mu.Unlock()
}

// Active returns the number of slots currently down.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// IsDown reports whether slot is down. Out-of-range slots are never down.
func (t *Tracker) IsDown(slot int) bool {
	if slot < 0 || slot >= MaxSlots {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.slots[slot].down
}

// Down marks slot as touching. It is edge-triggered: repeated calls before Up
// do nothing.
func (t *Tracker) Down(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.down(slot)
	return nil
}

// Move reports a new position for slot. It is ignored while the slot is up.
func (t *Tracker) Move(slot, x, y int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.move(slot, x, y)
	return nil
}

// Up lifts slot. It is ignored while the slot is already up.
func (t *Tracker) Up(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.up(slot)
	return nil
}

func (t *Tracker) down(slot int) {
	s := &t.slots[slot]
	if !t.ready || s.down {
		return
	}
	s.down = true
	t.active++
	if t.active == 1 {
		t.handler.FirstContact()
	}
}

func (t *Tracker) move(slot, x, y int) {
	s := &t.slots[slot]
	if !t.ready || !s.down {
		return
	}
	cur := render.Pt(x, y)
	t.handler.Sample(slot, s.last, s.hasLast, cur)
	s.last = cur
	s.hasLast = true
}

func (t *Tracker) up(slot int) {
	s := &t.slots[slot]
	if !t.ready || !s.down {
		return
	}
	t.handler.Released(slot, s.last, s.hasLast)
	s.last = render.Point{}
	s.hasLast = false
	s.down = false
	t.active--
	if t.active == 0 {
		t.handler.LastReleased()
	}
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("%w: %d", ErrSlotRange, slot)
	}
	return nil
}
