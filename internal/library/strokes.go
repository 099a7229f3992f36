package library

import (
	"image"
	"image/color"
	"math"
)

// pen draws black outlines of a fixed thickness onto a picture.
type pen struct {
	img   *image.RGBA
	col   color.RGBA
	thick int
}

func (p pen) dot(x, y int) {
	r := p.thick / 2
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			pt := image.Pt(x+dx, y+dy)
			if pt.In(p.img.Rect) {
				p.img.SetRGBA(pt.X, pt.Y, p.col)
			}
		}
	}
}

// line is Bresenham with a square nib.
func (p pen) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		p.dot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (p pen) rect(r image.Rectangle) {
	p.polygon([]image.Point{
		r.Min,
		{r.Max.X - 1, r.Min.Y},
		{r.Max.X - 1, r.Max.Y - 1},
		{r.Min.X, r.Max.Y - 1},
	})
}

func (p pen) polygon(pts []image.Point) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		p.line(a.X, a.Y, b.X, b.Y)
	}
}

func (p pen) circle(cx, cy, r int) {
	p.ellipse(cx, cy, r, r)
}

// ellipse is traced as a closed polyline so thick strokes stay watertight.
func (p pen) ellipse(cx, cy, rx, ry int) {
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry)/2)))
	if steps < 8 {
		steps = 8
	}
	pts := make([]image.Point, steps)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(steps)
		pts[i] = image.Pt(
			cx+int(math.Round(math.Cos(a)*float64(rx))),
			cy+int(math.Round(math.Sin(a)*float64(ry))),
		)
	}
	p.polygon(pts)
}

// regular returns the vertices of an n-sided polygon starting at angle
// start (radians, 0 pointing right).
func regular(cx, cy, r, n int, start float64) []image.Point {
	pts := make([]image.Point, n)
	for i := range pts {
		a := start + 2*math.Pi*float64(i)/float64(n)
		pts[i] = image.Pt(
			cx+int(math.Round(math.Cos(a)*float64(r))),
			cy+int(math.Round(math.Sin(a)*float64(r))),
		)
	}
	return pts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
