package contact

// The methods below implement the multi-touch frame protocol used by event
// sources: select a slot, update its pending coordinates, then commit.

// Select makes slot the target of subsequent SetX, SetY, Lift and Commit
// calls. Pending coordinates of the previously selected slot are flushed
// first. An out-of-range slot leaves no slot selected: the calls that
// follow are dropped until a valid Select.
func (t *Tracker) Select(slot int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.selected && slot != t.current {
		t.flush(t.current)
	}
	if err := checkSlot(slot); err != nil {
		t.selected = false
		return err
	}
	t.current = slot
	t.selected = true
	return nil
}

// SetX records the pending X coordinate of the selected slot.
func (t *Tracker) SetX(v int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selected {
		return
	}
	t.slots[t.current].pendingX = v
	t.slots[t.current].dirty = true
}

// SetY records the pending Y coordinate of the selected slot.
func (t *Tracker) SetY(v int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selected {
		return
	}
	t.slots[t.current].pendingY = v
	t.slots[t.current].dirty = true
}

// Lift ends the contact on the selected slot and forgets its pending
// position.
func (t *Tracker) Lift() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selected {
		return
	}
	t.up(t.current)
	s := &t.slots[t.current]
	s.pendingX = -1
	s.pendingY = -1
	s.dirty = false
}

// Commit flushes the selected slot's pending position: the slot goes down
// if it was up and the point is sampled. A position that has not changed
// since the last flush is not sampled again.
func (t *Tracker) Commit() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selected {
		return
	}
	t.flush(t.current)
}

func (t *Tracker) flush(slot int) {
	s := &t.slots[slot]
	if !s.dirty || s.pendingX == -1 || s.pendingY == -1 {
		return
	}
	s.dirty = false
	t.down(slot)
	t.move(slot, s.pendingX, s.pendingY)
}
