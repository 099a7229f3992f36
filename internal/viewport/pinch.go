package viewport

import "math"

// Point is a screen position with sub-pixel precision, as delivered by
// touch events.
type Point struct {
	X, Y float64
}

// Pinch turns successive two-finger positions into incremental zoom steps.
type Pinch struct {
	active bool
	prev   float64
}

// Begin records the starting finger distance.
func (p *Pinch) Begin(a, b Point) {
	p.prev = distance(a, b)
	p.active = p.prev > 0
}

// Move reports the zoom factor since the previous call and the midpoint the
// zoom should be anchored at. ok is false when no pinch is in progress.
func (p *Pinch) Move(a, b Point) (factor, ax, ay float64, ok bool) {
	d := distance(a, b)
	if !p.active || d == 0 {
		p.Begin(a, b)
		return 1, 0, 0, false
	}
	factor = d / p.prev
	p.prev = d
	return factor, (a.X + b.X) / 2, (a.Y + b.Y) / 2, true
}

// End stops tracking.
func (p *Pinch) End() {
	p.active = false
	p.prev = 0
}

// Active reports whether a pinch is in progress.
func (p *Pinch) Active() bool { return p.active }

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
