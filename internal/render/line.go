package render

import "slices"

// Line returns the lattice points Bresenham's algorithm visits between p1
// and p2, both endpoints included. The walk always starts from the smaller
// endpoint (by X, then Y) so that swapping the endpoints yields the same
// points in reverse order.
func Line(p1, p2 Point) []Point {
	var pts []Point
	if less(p2, p1) {
		walkLine(p2, p1, func(p Point) { pts = append(pts, p) })
		slices.Reverse(pts)
		return pts
	}
	walkLine(p1, p2, func(p Point) { pts = append(pts, p) })
	return pts
}

// DrawLine stamps a brush of the given size at every point of Line(p1, p2).
func (r *Renderer) DrawLine(p1, p2 Point, size int, c Pixel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if less(p2, p1) {
		p1, p2 = p2, p1
	}
	walkLine(p1, p2, func(p Point) { r.point(p.X, p.Y, size, c) })
}

func less(a, b Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func walkLine(p1, p2 Point, visit func(Point)) {
	dx, sx := abs(p2.X-p1.X), -1
	if p1.X < p2.X {
		sx = 1
	}
	dy, sy := abs(p2.Y-p1.Y), -1
	if p1.Y < p2.Y {
		sy = 1
	}
	err := -dy / 2
	if dx > dy {
		err = dx / 2
	}
	x, y := p1.X, p1.Y
	for {
		visit(Point{X: x, Y: y})
		if x == p2.X && y == p2.Y {
			return
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			x += sx
		}
		if e2 < dy {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
