// Package floodfill replaces 4-connected regions of an RGBA buffer that are
// enclosed by dark outline pixels.
package floodfill

import (
	"fmt"
	"image"
	"image/color"
)

// Outcome classifies what a fill request did.
type Outcome int

const (
	// Filled means at least the seed pixel was repainted.
	Filled Outcome = iota
	// OutOfBounds means the seed lies outside the buffer.
	OutOfBounds
	// BoundaryHit means the seed is an outline pixel.
	BoundaryHit
	// RedundantFill means the region already has the requested colour.
	RedundantFill
)

func (o Outcome) String() string {
	switch o {
	case Filled:
		return "filled"
	case OutOfBounds:
		return "out-of-bounds"
	case BoundaryHit:
		return "boundary"
	case RedundantFill:
		return "redundant"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Default tolerances.
const (
	DefaultBoundaryTolerance = 30
	DefaultMatchTolerance    = 10
)

// Options tunes the two colour predicates.
type Options struct {
	// BoundaryTolerance marks a pixel as outline when R, G and B are all
	// strictly below it.
	BoundaryTolerance uint8
	// MatchTolerance is the largest per-channel difference, alpha included,
	// for a pixel to count as the seed colour.
	MatchTolerance uint8
}

// DefaultOptions returns the tolerances used by Fill.
func DefaultOptions() Options {
	return Options{
		BoundaryTolerance: DefaultBoundaryTolerance,
		MatchTolerance:    DefaultMatchTolerance,
	}
}

// Result reports the outcome and the number of pixels written.
type Result struct {
	Outcome Outcome
	Painted int
}

// Fill runs FillWith using DefaultOptions.
func Fill(buf *image.RGBA, seed image.Point, fill color.RGBA) Result {
	return FillWith(buf, seed, fill, DefaultOptions())
}

// FillWith repaints the region containing seed with fill. The buffer is
// only touched when the outcome is Filled. Fill alpha is forced to 255.
func FillWith(buf *image.RGBA, seed image.Point, fill color.RGBA, opts Options) Result {
	if buf == nil || !seed.In(buf.Rect) {
		return Result{Outcome: OutOfBounds}
	}
	fill.A = 255
	target := buf.RGBAAt(seed.X, seed.Y)
	if isBoundary(target, opts.BoundaryTolerance) {
		return Result{Outcome: BoundaryHit}
	}
	if matches(fill, target, opts.MatchTolerance) {
		return Result{Outcome: RedundantFill}
	}

	painted := 0
	stack := make([]image.Point, 0, 256)
	stack = append(stack, seed)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(buf.Rect) {
			continue
		}
		i := buf.PixOffset(p.X, p.Y)
		px := buf.Pix[i : i+4 : i+4]
		c := color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
		if isBoundary(c, opts.BoundaryTolerance) || !matches(c, target, opts.MatchTolerance) {
			continue
		}
		px[0], px[1], px[2], px[3] = fill.R, fill.G, fill.B, 255
		painted++
		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}
	return Result{Outcome: Filled, Painted: painted}
}

func isBoundary(c color.RGBA, tol uint8) bool {
	return c.R < tol && c.G < tol && c.B < tol
}

func matches(a, b color.RGBA, tol uint8) bool {
	return within(a.R, b.R, tol) && within(a.G, b.G, tol) &&
		within(a.B, b.B, tol) && within(a.A, b.A, tol)
}

func within(a, b, tol uint8) bool {
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}
