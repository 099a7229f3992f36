package viewport

import "testing"

func TestPinch(t *testing.T) {
	var p Pinch
	if _, _, _, ok := p.Move(Point{0, 0}, Point{10, 0}); ok {
		t.Fatalf("Move before Begin should not report a step")
	}
	p.End()
	p.Begin(Point{0, 0}, Point{100, 0})
	f, ax, ay, ok := p.Move(Point{0, 0}, Point{200, 0})
	if !ok || f != 2 || ax != 100 || ay != 0 {
		t.Fatalf("Move = %g %g,%g %v", f, ax, ay, ok)
	}
	f, _, _, ok = p.Move(Point{50, 0}, Point{150, 0})
	if !ok || f != 0.5 {
		t.Fatalf("second Move factor = %g", f)
	}
	p.End()
	if p.Active() {
		t.Fatalf("pinch still active after End")
	}
}

func TestPinchFingersTogether(t *testing.T) {
	var p Pinch
	p.Begin(Point{5, 5}, Point{5, 5})
	if p.Active() {
		t.Fatalf("zero distance pinch should not start")
	}
}
