// Package canvas ties a picture library, the viewport and the flood fill
// together into one colouring session driven by pointer input.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/floodfill"
	"github.com/example/colorfill/internal/overlay"
	"github.com/example/colorfill/internal/render"
	"github.com/example/colorfill/internal/viewport"
)

// TapSlop is how far, in screen pixels, a pointer may travel between press
// and release and still count as a tap.
const TapSlop = 3

var (
	// ErrNoImages is returned when the library is empty.
	ErrNoImages = errors.New("no images")
	// ErrReadOnly is returned by AppendImage when the library cannot grow.
	ErrReadOnly = errors.New("library is read only")
)

// Library supplies decoded base images by index.
type Library interface {
	Len() int
	Image(i int) (*image.RGBA, error)
}

// Appender is implemented by libraries that accept new images at runtime.
type Appender interface {
	Append(img image.Image) int
}

type pointer struct {
	down         bool
	startX       float64
	startY       float64
	lastX, lastY float64
	moved        bool
}

// Session is one colouring surface. It is not safe for concurrent use; the
// images it hands out are never written after they are returned.
type Session struct {
	lib       Library
	index     int
	base      *image.RGBA
	frame     image.Point
	vp        *viewport.Viewport
	vpOpts    []viewport.Option
	painted   overlay.Store
	fillColor colormodel.HSL
	fillOpts  floodfill.Options
	pinch     viewport.Pinch
	ptr       pointer
	log       *slog.Logger

	onBufferChanged func(*image.RGBA)
	onFillRejected  func(floodfill.Outcome)
	onFilled        func(floodfill.Result)
	onViewChanged   func(viewport.State)
}

// New opens a session on lib showing the first image.
func New(lib Library, opts ...Option) (*Session, error) {
	s := &Session{
		lib:       lib,
		fillColor: colormodel.DefaultColor(),
		fillOpts:  floodfill.DefaultOptions(),
		log:       Logger(),
	}
	for _, o := range opts {
		o(s)
	}
	if err := s.fillColor.Validate(); err != nil {
		return nil, err
	}
	if lib == nil || lib.Len() == 0 {
		return nil, ErrNoImages
	}
	if s.index < 0 || s.index >= lib.Len() {
		return nil, fmt.Errorf("image index %d out of range [0,%d)", s.index, lib.Len())
	}
	img, err := lib.Image(s.index)
	if err != nil {
		return nil, fmt.Errorf("load image %d: %w", s.index, err)
	}
	s.base = img
	if s.frame.X <= 0 || s.frame.Y <= 0 {
		s.frame = img.Bounds().Size()
	}
	s.vp = viewport.New(img.Bounds().Size(), s.frame, s.vpOpts...)
	return s, nil
}

// Index is the position of the current image in the library.
func (s *Session) Index() int { return s.index }

// Len is the number of images available.
func (s *Session) Len() int { return s.lib.Len() }

// Base returns the current unpainted image.
func (s *Session) Base() *image.RGBA { return s.base }

// Overlay returns the painted layer, if any.
func (s *Session) Overlay() (*image.RGBA, bool) { return s.painted.Get() }

// View returns the current transform.
func (s *Session) View() viewport.State { return s.vp.State() }

// Viewport exposes the transform for read-only queries such as ImagePoint.
func (s *Session) Viewport() *viewport.Viewport { return s.vp }

// Frame is the size of the picture area on screen.
func (s *Session) Frame() image.Point { return s.frame }

// SetFrame resizes the picture area.
func (s *Session) SetFrame(frame image.Point) {
	if frame.X <= 0 || frame.Y <= 0 || frame == s.frame {
		return
	}
	s.frame = frame
	s.updateView(func() { s.vp.SetFrame(frame) })
}

// FillColor is the selected colour.
func (s *Session) FillColor() colormodel.HSL { return s.fillColor }

// SelectFillColor changes the colour used by subsequent fills.
func (s *Session) SelectFillColor(c colormodel.HSL) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.fillColor = c
	s.log.Debug("fill color selected", "color", c.String())
	return nil
}

// NativeBuffer returns a composite of base and overlay at native resolution
// that the caller owns. Fills are computed on this buffer. The overlay
// already holds the whole composite once anything is painted.
func (s *Session) NativeBuffer() *image.RGBA {
	if buf := s.painted.Snapshot(); buf != nil {
		return buf
	}
	return render.Native(s.base, nil)
}

// Render draws the picture under the current transform into dst.
func (s *Session) Render(dst *image.RGBA) {
	if dst == nil {
		return
	}
	ov, _ := s.painted.Get()
	render.Composite(dst, dst.Bounds(), s.base, ov, s.vp.State())
}

// FillAt fills the region under a frame-relative screen position.
func (s *Session) FillAt(sx, sy float64) floodfill.Result {
	p := s.vp.ImagePoint(sx, sy).Add(s.base.Bounds().Min)
	return s.FillImage(p)
}

// FillImage fills the region containing the image pixel p.
func (s *Session) FillImage(p image.Point) floodfill.Result {
	buf := s.NativeBuffer()
	res := floodfill.FillWith(buf, p, s.fillColor.RGBA(), s.fillOpts)
	if res.Outcome != floodfill.Filled {
		s.log.Debug("fill rejected", "x", p.X, "y", p.Y, "outcome", res.Outcome.String())
		if s.onFillRejected != nil {
			s.onFillRejected(res.Outcome)
		}
		return res
	}
	s.painted.Set(buf)
	s.log.Debug("filled", "x", p.X, "y", p.Y, "pixels", res.Painted, "color", s.fillColor.String())
	if s.onFilled != nil {
		s.onFilled(res)
	}
	s.bufferChanged()
	return res
}

// NextImage advances to the following image, wrapping around.
func (s *Session) NextImage() error {
	return s.LoadImage((s.index + 1) % s.lib.Len())
}

// LoadImage switches to image i, dropping the painted layer and resetting
// the view.
func (s *Session) LoadImage(i int) error {
	if i < 0 || i >= s.lib.Len() {
		return fmt.Errorf("image index %d out of range [0,%d)", i, s.lib.Len())
	}
	img, err := s.lib.Image(i)
	if err != nil {
		s.log.Warn("load image failed", "index", i, "err", err)
		return fmt.Errorf("load image %d: %w", i, err)
	}
	s.index = i
	s.base = img
	s.painted.Clear()
	s.ptr = pointer{}
	s.pinch.End()
	s.log.Info("image loaded", "index", i, "size", img.Bounds().Size().String())
	if img.Bounds().Size() != s.vp.Native() {
		s.vp.SetNative(img.Bounds().Size())
	} else {
		s.vp.Reset()
	}
	s.viewChanged()
	s.bufferChanged()
	return nil
}

// AppendImage adds img to the library and switches to it.
func (s *Session) AppendImage(img image.Image) error {
	a, ok := s.lib.(Appender)
	if !ok {
		return ErrReadOnly
	}
	return s.LoadImage(a.Append(img))
}

// PointerDown starts a tap or drag at a frame-relative position.
func (s *Session) PointerDown(x, y float64) {
	s.ptr = pointer{down: true, startX: x, startY: y, lastX: x, lastY: y}
}

// PointerMove pans the view while the pointer is held and the picture is
// zoomed in.
func (s *Session) PointerMove(x, y float64) {
	if !s.ptr.down || s.pinch.Active() {
		return
	}
	if math.Hypot(x-s.ptr.startX, y-s.ptr.startY) > TapSlop {
		s.ptr.moved = true
	}
	dx, dy := x-s.ptr.lastX, y-s.ptr.lastY
	s.ptr.lastX, s.ptr.lastY = x, y
	if s.vp.State().Zoom > s.vp.MinZoom() && (dx != 0 || dy != 0) {
		s.Pan(dx, dy)
	}
}

// PointerUp ends the gesture. A release close to the press is a tap and
// fills at that position; ok is false when the gesture was a drag.
func (s *Session) PointerUp(x, y float64) (res floodfill.Result, ok bool) {
	if !s.ptr.down {
		return floodfill.Result{}, false
	}
	moved := s.ptr.moved || math.Hypot(x-s.ptr.startX, y-s.ptr.startY) > TapSlop
	s.ptr = pointer{}
	if moved || s.pinch.Active() {
		return floodfill.Result{}, false
	}
	return s.FillAt(x, y), true
}

// PointerCancel forgets any pending press.
func (s *Session) PointerCancel() { s.ptr = pointer{} }

// PinchBegin starts a two finger zoom. Any pending tap is cancelled.
func (s *Session) PinchBegin(p0, p1 viewport.Point) {
	s.ptr = pointer{}
	s.pinch.Begin(p0, p1)
}

// PinchMove zooms by the change in finger distance around their midpoint.
func (s *Session) PinchMove(p0, p1 viewport.Point) {
	if f, ax, ay, ok := s.pinch.Move(p0, p1); ok {
		s.ZoomAt(ax, ay, f)
	}
}

// PinchEnd stops the pinch.
func (s *Session) PinchEnd() { s.pinch.End() }

// PinchZoom applies a precomputed pinch ratio anchored at ax, ay.
func (s *Session) PinchZoom(ratio, ax, ay float64) { s.ZoomAt(ax, ay, ratio) }

// WheelZoom zooms one wheel notch around the cursor. Negative delta zooms in.
func (s *Session) WheelZoom(delta, ax, ay float64) {
	s.ZoomAt(ax, ay, s.vp.WheelFactor(delta))
}

// ZoomAt scales the view by factor keeping the anchor fixed.
func (s *Session) ZoomAt(ax, ay, factor float64) {
	s.updateView(func() { s.vp.ZoomAt(ax, ay, factor) })
}

// Pan moves the view by a screen delta.
func (s *Session) Pan(dx, dy float64) {
	s.updateView(func() { s.vp.Pan(dx, dy) })
}

// ResetView returns to the fitted view.
func (s *Session) ResetView() {
	s.updateView(s.vp.Reset)
}

func (s *Session) updateView(fn func()) {
	before := s.vp.State()
	fn()
	if s.vp.State() != before {
		s.viewChanged()
	}
}

func (s *Session) viewChanged() {
	st := s.vp.State()
	s.log.Debug("view changed", "zoom", st.Zoom, "x", st.OffsetX, "y", st.OffsetY)
	if s.onViewChanged != nil {
		s.onViewChanged(st)
	}
}

func (s *Session) bufferChanged() {
	if s.onBufferChanged != nil {
		s.onBufferChanged(s.NativeBuffer())
	}
}
