// Package render composites the base picture and its painted overlay.
package render

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/colorfill/internal/viewport"
)

// Native draws base and then overlay at native scale into a new image with
// base's bounds. This is the buffer fills are computed against.
func Native(base, overlay *image.RGBA) *image.RGBA {
	if base == nil {
		return nil
	}
	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, base.Bounds().Min, draw.Src)
	if overlay != nil {
		draw.Draw(out, out.Bounds(), overlay, overlay.Bounds().Min, draw.Over)
	}
	return out
}

// Composite draws base and overlay scaled by vp into frame of dst. Nothing
// outside frame is touched.
func Composite(dst *image.RGBA, frame image.Rectangle, base, overlay *image.RGBA, vp viewport.State) {
	if dst == nil || base == nil {
		return
	}
	frame = frame.Intersect(dst.Bounds())
	if frame.Empty() {
		return
	}
	sub, ok := dst.SubImage(frame).(*image.RGBA)
	if !ok {
		return
	}
	dr := vp.DestRect(base.Bounds().Size()).Add(frame.Min)
	if dr.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(sub, dr, base, base.Bounds(), draw.Src, nil)
	if overlay != nil {
		xdraw.NearestNeighbor.Scale(sub, dr, overlay, overlay.Bounds(), draw.Over, nil)
	}
}

// Checkerboard fills rect of dst with squares of the given size.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 1
	}
	rect = rect.Intersect(dst.Bounds())
	lu := image.NewUniform(light)
	du := image.NewUniform(dark)
	for y := rect.Min.Y; y < rect.Max.Y; y += size - mod(y, size) {
		y1 := min(y+size-mod(y, size), rect.Max.Y)
		for x := rect.Min.X; x < rect.Max.X; x += size - mod(x, size) {
			x1 := min(x+size-mod(x, size), rect.Max.X)
			src := du
			if (floorDiv(x, size)+floorDiv(y, size))%2 == 0 {
				src = lu
			}
			draw.Draw(dst, image.Rect(x, y, x1, y1), src, image.Point{}, draw.Src)
		}
	}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func floorDiv(a, n int) int {
	return (a - mod(a, n)) / n
}
