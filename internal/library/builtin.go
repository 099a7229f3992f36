package library

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// DefaultSize is the picture size used when none is configured.
var DefaultSize = image.Pt(400, 400)

var (
	paper = color.RGBA{255, 255, 255, 255}
	ink   = color.RGBA{0, 0, 0, 255}
)

type design struct {
	name string
	draw func(p pen, w, h int)
}

var designs = []design{
	{"rings", drawRings},
	{"panes", drawPanes},
	{"flower", drawFlower},
	{"house", drawHouse},
	{"star", drawStar},
	{"sun", drawSun},
	{"fish", drawFish},
	{"diamonds", drawDiamonds},
	{"mandala", drawMandala},
}

// Builtin returns a library of line drawings generated at size, usable
// without any image files.
func Builtin(size image.Point) *Library {
	if size.X <= 0 || size.Y <= 0 {
		size = DefaultSize
	}
	l := &Library{size: size}
	for _, d := range designs {
		d := d
		l.entries = append(l.entries, &entry{
			name: d.name,
			load: func() (image.Image, error) { return Sketch(d.name, size) },
		})
	}
	return l
}

// Designs lists the names accepted by Sketch.
func Designs() []string {
	out := make([]string, len(designs))
	for i, d := range designs {
		out[i] = d.name
	}
	return out
}

// Sketch draws one named design.
func Sketch(name string, size image.Point) (*image.RGBA, error) {
	for _, d := range designs {
		if d.name != name {
			continue
		}
		img := image.NewRGBA(image.Rectangle{Max: size})
		draw.Draw(img, img.Rect, image.NewUniform(paper), image.Point{}, draw.Src)
		p := pen{img: img, col: ink, thick: strokeWidth(size)}
		p.rect(img.Rect)
		d.draw(p, size.X, size.Y)
		return img, nil
	}
	return nil, fmt.Errorf("unknown design %q", name)
}

func strokeWidth(size image.Point) int {
	s := min(size.X, size.Y)
	if t := s / 100; t > 2 {
		return t
	}
	return 2
}

func frac(v int, f float64) int { return int(math.Round(float64(v) * f)) }

func drawRings(p pen, w, h int) {
	s := min(w, h)
	for _, f := range []float64{0.42, 0.30, 0.18, 0.06} {
		p.circle(w/2, h/2, frac(s, f))
	}
}

func drawPanes(p pen, w, h int) {
	inset := image.Rect(frac(w, 0.1), frac(h, 0.1), frac(w, 0.9), frac(h, 0.9))
	p.rect(inset)
	for i := 1; i < 3; i++ {
		x := inset.Min.X + inset.Dx()*i/3
		y := inset.Min.Y + inset.Dy()*i/3
		p.line(x, inset.Min.Y, x, inset.Max.Y-1)
		p.line(inset.Min.X, y, inset.Max.X-1, y)
	}
}

func drawFlower(p pen, w, h int) {
	s := min(w, h)
	cx, cy := w/2, frac(h, 0.4)
	p.line(cx, cy, cx, h-1)
	p.ellipse(cx+frac(s, 0.12), frac(h, 0.78), frac(s, 0.1), frac(s, 0.04))
	for _, c := range regular(cx, cy, frac(s, 0.18), 6, -math.Pi/2) {
		p.circle(c.X, c.Y, frac(s, 0.1))
	}
	p.circle(cx, cy, frac(s, 0.08))
}

func drawHouse(p pen, w, h int) {
	body := image.Rect(frac(w, 0.2), frac(h, 0.45), frac(w, 0.8), frac(h, 0.9))
	p.rect(body)
	p.polygon([]image.Point{
		{body.Min.X, body.Min.Y},
		{w / 2, frac(h, 0.15)},
		{body.Max.X - 1, body.Min.Y},
	})
	p.rect(image.Rect(frac(w, 0.44), frac(h, 0.65), frac(w, 0.56), body.Max.Y))
	p.rect(image.Rect(frac(w, 0.27), frac(h, 0.55), frac(w, 0.38), frac(h, 0.66)))
	p.rect(image.Rect(frac(w, 0.62), frac(h, 0.55), frac(w, 0.73), frac(h, 0.66)))
	p.line(0, body.Max.Y-1, w-1, body.Max.Y-1)
}

func drawStar(p pen, w, h int) {
	s := min(w, h)
	outer := regular(w/2, h/2, frac(s, 0.42), 5, -math.Pi/2)
	star := make([]image.Point, 5)
	for i := range star {
		star[i] = outer[(i*2)%5]
	}
	p.polygon(star)
	p.circle(w/2, h/2, frac(s, 0.45))
}

func drawSun(p pen, w, h int) {
	s := min(w, h)
	r := frac(s, 0.2)
	p.circle(w/2, h/2, r)
	inner := regular(w/2, h/2, r, 12, 0)
	outer := regular(w/2, h/2, frac(s, 0.7), 12, 0)
	for i := range inner {
		p.line(inner[i].X, inner[i].Y, outer[i].X, outer[i].Y)
	}
}

func drawFish(p pen, w, h int) {
	cx, cy := frac(w, 0.45), h/2
	rx, ry := frac(w, 0.28), frac(h, 0.18)
	p.ellipse(cx, cy, rx, ry)
	tail := cx + rx
	p.polygon([]image.Point{
		{tail - frac(w, 0.02), cy},
		{tail + frac(w, 0.18), cy - frac(h, 0.15)},
		{tail + frac(w, 0.18), cy + frac(h, 0.15)},
	})
	p.circle(cx-rx/2, cy-ry/3, frac(min(w, h), 0.03))
	p.line(cx-rx/6, cy-ry+frac(h, 0.02), cx-rx/6, cy+ry-frac(h, 0.02))
	for _, f := range []float64{0.15, 0.5, 0.85} {
		x := frac(w, f)
		p.circle(x, frac(h, 0.12), frac(min(w, h), 0.04))
	}
}

func drawDiamonds(p pen, w, h int) {
	for _, f := range []float64{0.5, 0.35, 0.2} {
		dx, dy := frac(w, f), frac(h, f)
		p.polygon([]image.Point{
			{w / 2, h/2 - dy},
			{w/2 + dx, h / 2},
			{w / 2, h/2 + dy},
			{w/2 - dx, h / 2},
		})
	}
}

func drawMandala(p pen, w, h int) {
	s := min(w, h)
	hex := regular(w/2, h/2, frac(s, 0.4), 6, 0)
	p.polygon(hex)
	p.circle(w/2, h/2, frac(s, 0.2))
	for _, v := range hex {
		p.line(w/2, h/2, v.X, v.Y)
	}
	for _, c := range regular(w/2, h/2, frac(s, 0.3), 6, math.Pi/6) {
		p.circle(c.X, c.Y, frac(s, 0.05))
	}
}
