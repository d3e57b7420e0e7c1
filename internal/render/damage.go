package render

// DrawDamagedSegment moves a size×size box from one centre to another by
// repainting only the rows that changed: rows the box left are painted bg,
// rows it entered are painted fg. The result matches erasing the old box
// with bg and drawing the new one with fg, provided the old box was drawn
// in fg. Moves that change X fall back to exactly that erase-and-draw.
func (r *Renderer) DrawDamagedSegment(size int, from, to Point, fg, bg Pixel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if from.X != to.X {
		r.point(from.X, from.Y, size, bg)
		r.point(to.X, to.Y, size, fg)
		return
	}

	left := from.X - size/2
	right := left + size
	oldTop := from.Y - size/2
	oldBottom := oldTop + size
	newTop := to.Y - size/2
	newBottom := newTop + size

	switch {
	case newTop > oldTop:
		r.rect(left, oldTop, right, min(oldBottom, newTop), bg)
		r.rect(left, max(newTop, oldBottom), right, newBottom, fg)
	case newTop < oldTop:
		r.rect(left, max(newBottom, oldTop), right, oldBottom, bg)
		r.rect(left, newTop, right, min(newBottom, oldTop), fg)
	}
}
