// Package viewport maps between screen and image coordinates for a zoomable,
// pannable picture shown inside a fixed frame.
package viewport

import (
	"fmt"
	"image"
	"math"
)

// Zoom defaults.
const (
	DefaultMinZoom = 1.0
	DefaultMaxZoom = 5.0
	ZoomInStep     = 1.1
	ZoomOutStep    = 0.9
)

// State is the transform: screen = image*Zoom + Offset.
type State struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

func (s State) String() string {
	return fmt.Sprintf("zoom %.3g offset %.1f,%.1f", s.Zoom, s.OffsetX, s.OffsetY)
}

// Viewport holds the transform for one picture. Frame is the on-screen area
// in pixels, native the picture size. Offsets are relative to the frame
// origin.
type Viewport struct {
	native  image.Point
	frame   image.Point
	min     float64
	max     float64
	stepIn  float64
	stepOut float64
	st      State
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithZoomBounds overrides the zoom range. Invalid ranges are ignored.
func WithZoomBounds(min, max float64) Option {
	return func(v *Viewport) {
		if min > 0 && max >= min {
			v.min, v.max = min, max
		}
	}
}

// WithWheelSteps overrides the per-notch wheel factors.
func WithWheelSteps(in, out float64) Option {
	return func(v *Viewport) {
		if in > 1 {
			v.stepIn = in
		}
		if out > 0 && out < 1 {
			v.stepOut = out
		}
	}
}

// New returns a viewport showing native inside frame at minimum zoom.
func New(native, frame image.Point, opts ...Option) *Viewport {
	v := &Viewport{
		native:  native,
		frame:   frame,
		min:     DefaultMinZoom,
		max:     DefaultMaxZoom,
		stepIn:  ZoomInStep,
		stepOut: ZoomOutStep,
	}
	for _, o := range opts {
		o(v)
	}
	v.Reset()
	return v
}

// State returns the current transform.
func (v *Viewport) State() State { return v.st }

// Native is the picture size in pixels.
func (v *Viewport) Native() image.Point { return v.native }

// Frame is the on-screen area size.
func (v *Viewport) Frame() image.Point { return v.frame }

// MinZoom is the lower zoom bound, the fitted view.
func (v *Viewport) MinZoom() float64 { return v.min }

// MaxZoom is the upper zoom bound.
func (v *Viewport) MaxZoom() float64 { return v.max }

// SetFrame changes the on-screen size and re-clamps the offset.
func (v *Viewport) SetFrame(frame image.Point) {
	v.frame = frame
	v.Clamp()
}

// SetNative switches to a picture of a different size and resets the view.
func (v *Viewport) SetNative(native image.Point) {
	v.native = native
	v.Reset()
}

// ScreenToImage maps a frame-relative screen position into image space.
func (v *Viewport) ScreenToImage(sx, sy float64) (float64, float64) {
	return (sx - v.st.OffsetX) / v.st.Zoom, (sy - v.st.OffsetY) / v.st.Zoom
}

// ImageToScreen is the inverse of ScreenToImage.
func (v *Viewport) ImageToScreen(ix, iy float64) (float64, float64) {
	return ix*v.st.Zoom + v.st.OffsetX, iy*v.st.Zoom + v.st.OffsetY
}

// ImagePoint returns the picture pixel drawn at a screen position. It samples
// the rounded DestRect at pixel centres the way nearest-neighbour scaling
// does, so the pixel a tap fills is the one shown under it.
func (v *Viewport) ImagePoint(sx, sy float64) image.Point {
	d := v.DestRect()
	return image.Pt(
		sample(int(math.Floor(sx))-d.Min.X, v.native.X, d.Dx()),
		sample(int(math.Floor(sy))-d.Min.Y, v.native.Y, d.Dy()),
	)
}

// sample maps destination pixel d of a span dw onto a source span sw,
// flooring for pixels left of the span.
func sample(d, sw, dw int) int {
	if dw <= 0 {
		return 0
	}
	n := (2*d + 1) * sw
	q := n / (2 * dw)
	if n < 0 && n%(2*dw) != 0 {
		q--
	}
	return q
}

// ZoomAt multiplies the zoom by factor, clamped to the zoom bounds, and
// shifts the offset towards the anchor by (anchor/newZoom)*(factor-1) on
// each axis. The raw factor is used even when the zoom was clamped. Zooming
// to the minimum snaps the picture back to fit.
func (v *Viewport) ZoomAt(ax, ay, factor float64) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	z := clampf(v.st.Zoom*factor, v.min, v.max)
	if z <= v.min {
		v.st = State{Zoom: v.min}
		v.Clamp()
		return
	}
	v.st.Zoom = z
	v.st.OffsetX -= ax / z * (factor - 1)
	v.st.OffsetY -= ay / z * (factor - 1)
	v.Clamp()
}

// Clamp keeps the scaled picture covering the frame. An axis on which the
// picture is smaller than the frame is pinned to zero.
func (v *Viewport) Clamp() {
	v.st.OffsetX = clampAxis(v.st.OffsetX, float64(v.frame.X)-float64(v.native.X)*v.st.Zoom)
	v.st.OffsetY = clampAxis(v.st.OffsetY, float64(v.frame.Y)-float64(v.native.Y)*v.st.Zoom)
}

func clampAxis(off, lo float64) float64 {
	if lo > 0 || math.IsNaN(off) {
		return 0
	}
	return clampf(off, lo, 0)
}

// Pan moves the picture by a screen delta.
func (v *Viewport) Pan(dx, dy float64) {
	v.st.OffsetX += dx
	v.st.OffsetY += dy
	v.Clamp()
}

// SetOffset assigns the offset directly.
func (v *Viewport) SetOffset(x, y float64) {
	v.st.OffsetX, v.st.OffsetY = x, y
	v.Clamp()
}

// Reset returns to minimum zoom with no offset.
func (v *Viewport) Reset() {
	v.st = State{Zoom: v.min}
	v.Clamp()
}

// WheelFactor converts a wheel delta into a zoom factor. Negative deltas
// (wheel up) zoom in.
func (v *Viewport) WheelFactor(delta float64) float64 {
	if delta < 0 {
		return v.stepIn
	}
	return v.stepOut
}

// DestRect is the frame-relative rectangle covered by the scaled picture.
func (v *Viewport) DestRect() image.Rectangle {
	return v.st.DestRect(v.native)
}

// DestRect returns where a picture of the given size lands under s.
func (s State) DestRect(native image.Point) image.Rectangle {
	x0 := math.Round(s.OffsetX)
	y0 := math.Round(s.OffsetY)
	x1 := math.Round(s.OffsetX + float64(native.X)*s.Zoom)
	y1 := math.Round(s.OffsetY + float64(native.Y)*s.Zoom)
	return image.Rect(int(x0), int(y0), int(x1), int(y1))
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
