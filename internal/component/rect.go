package component

// Rect is an axis-aligned cell rectangle. X grows right, Y grows down.
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) Left() int    { return r.X }
func (r Rect) Right() int   { return r.X + r.W }
func (r Rect) Top() int     { return r.Y }
func (r Rect) Bottom() int  { return r.Y + r.H }
func (r Rect) CenterX() int { return r.X + r.W/2 }
func (r Rect) CenterY() int { return r.Y + r.H/2 }

// Moved returns r translated by (dx, dy).
func (r Rect) Moved(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Move translates r in place.
func (r *Rect) Move(dx, dy int) {
	r.X += dx
	r.Y += dy
}

// Intersects reports whether the two rectangles share at least one cell.
// Empty rectangles never intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// CollideList returns the index of the first rectangle r intersects, or -1.
func (r Rect) CollideList(others []Rect) int {
	for i, o := range others {
		if r.Intersects(o) {
			return i
		}
	}
	return -1
}

// CollideListAll returns the indices of every rectangle r intersects.
func (r Rect) CollideListAll(others []Rect) []int {
	var hits []int
	for i, o := range others {
		if r.Intersects(o) {
			hits = append(hits, i)
		}
	}
	return hits
}
