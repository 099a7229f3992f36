package canvas

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"strings"
	"testing"

	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/floodfill"
	"github.com/example/colorfill/internal/viewport"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	brick = color.RGBA{200, 50, 50, 255}
)

type sliceLib struct {
	imgs []*image.RGBA
	err  error
}

func (l *sliceLib) Len() int { return len(l.imgs) }

func (l *sliceLib) Image(i int) (*image.RGBA, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.imgs[i], nil
}

type growLib struct{ sliceLib }

func (l *growLib) Append(img image.Image) int {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	l.imgs = append(l.imgs, rgba)
	return len(l.imgs) - 1
}

func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func ring(w, h int) *image.RGBA {
	img := blank(w, h)
	for x := 0; x < w; x++ {
		img.SetRGBA(x, 0, black)
		img.SetRGBA(x, h-1, black)
	}
	for y := 0; y < h; y++ {
		img.SetRGBA(0, y, black)
		img.SetRGBA(w-1, y, black)
	}
	return img
}

// divided is a white picture split by a black vertical line at x=w/2.
func divided(w, h int) *image.RGBA {
	img := blank(w, h)
	for y := 0; y < h; y++ {
		img.SetRGBA(w/2, y, black)
	}
	return img
}

var brickHSL = colormodel.HSL{H: 0, S: 60, L: 100 * 250.0 / 510.0}

func TestRingScenario(t *testing.T) {
	base := ring(10, 10)
	var changed *image.RGBA
	var filled floodfill.Result
	s, err := New(&sliceLib{imgs: []*image.RGBA{base}},
		WithBufferChanged(func(img *image.RGBA) { changed = img }),
		WithFilled(func(r floodfill.Result) { filled = r }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SelectFillColor(brickHSL); err != nil {
		t.Fatalf("SelectFillColor: %v", err)
	}
	res := s.FillAt(5, 5)
	if res.Outcome != floodfill.Filled || res.Painted != 64 {
		t.Fatalf("FillAt = %+v", res)
	}
	if filled != res {
		t.Fatalf("Filled listener got %+v", filled)
	}
	if changed == nil || changed.RGBAAt(5, 5) != brick {
		t.Fatalf("BufferChanged not fired with the painted buffer")
	}
	if base.RGBAAt(5, 5) != white {
		t.Fatalf("fill wrote into the base image")
	}
	native := s.NativeBuffer()
	if native.RGBAAt(1, 1) != brick || native.RGBAAt(0, 0) != black {
		t.Fatalf("native buffer = %v %v", native.RGBAAt(1, 1), native.RGBAAt(0, 0))
	}
	if _, ok := s.Overlay(); !ok {
		t.Fatalf("overlay missing after fill")
	}
}

func TestNativeBufferIsPrivate(t *testing.T) {
	s, err := New(&sliceLib{imgs: []*image.RGBA{divided(20, 20)}})
	if err != nil {
		t.Fatal(err)
	}
	before := s.NativeBuffer()
	before.SetRGBA(2, 2, black)
	if s.Base().RGBAAt(2, 2) == black {
		t.Fatalf("unpainted buffer aliases the base")
	}
	if res := s.FillImage(image.Pt(2, 2)); res.Outcome != floodfill.Filled {
		t.Fatalf("FillImage = %v", res.Outcome)
	}
	a := s.NativeBuffer()
	want := a.RGBAAt(2, 2)
	a.SetRGBA(2, 2, black)
	ov, _ := s.Overlay()
	if ov.RGBAAt(2, 2) != want || s.NativeBuffer().RGBAAt(2, 2) != want {
		t.Fatalf("writing a native buffer changed the painted layer")
	}
}

func TestFillUnderZoomHitsImagePixel(t *testing.T) {
	var rejected []floodfill.Outcome
	s, err := New(&sliceLib{imgs: []*image.RGBA{divided(400, 400)}},
		WithFillRejected(func(o floodfill.Outcome) { rejected = append(rejected, o) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.ZoomAt(0, 0, 2)
	// screen 300 is image 150, left of the divider
	if res := s.FillAt(300, 10); res.Outcome != floodfill.Filled {
		t.Fatalf("FillAt = %+v", res)
	}
	native := s.NativeBuffer()
	if native.RGBAAt(150, 5) == white || native.RGBAAt(250, 5) != white {
		t.Fatalf("wrong region filled")
	}
	// screen 400 is image 200, the divider itself
	if res := s.FillAt(400, 10); res.Outcome != floodfill.BoundaryHit {
		t.Fatalf("FillAt on divider = %v", res.Outcome)
	}
	if res := s.FillAt(20, 20); res.Outcome != floodfill.RedundantFill {
		t.Fatalf("refill = %v", res.Outcome)
	}
	if res := s.FillImage(image.Pt(-3, 2)); res.Outcome != floodfill.OutOfBounds {
		t.Fatalf("FillImage outside = %v", res.Outcome)
	}
	want := []floodfill.Outcome{floodfill.BoundaryHit, floodfill.RedundantFill, floodfill.OutOfBounds}
	if len(rejected) != len(want) {
		t.Fatalf("rejections = %v, want %v", rejected, want)
	}
	for i := range want {
		if rejected[i] != want[i] {
			t.Fatalf("rejections = %v, want %v", rejected, want)
		}
	}
}

func TestTapFillsDragPans(t *testing.T) {
	var views []viewport.State
	s, err := New(&sliceLib{imgs: []*image.RGBA{blank(400, 400)}},
		WithViewChanged(func(v viewport.State) { views = append(views, v) }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// At minimum zoom a drag neither pans nor fills.
	s.PointerDown(100, 100)
	s.PointerMove(150, 150)
	if _, ok := s.PointerUp(150, 150); ok {
		t.Fatalf("drag at zoom 1 filled")
	}
	if len(views) != 0 {
		t.Fatalf("drag at zoom 1 changed the view: %v", views)
	}

	s.ZoomAt(200, 200, 2)
	views = nil
	s.PointerDown(100, 100)
	s.PointerMove(120, 90)
	s.PointerMove(130, 80)
	if _, ok := s.PointerUp(130, 80); ok {
		t.Fatalf("drag filled")
	}
	if got := s.View(); got.OffsetX != -70 || got.OffsetY != -120 {
		t.Fatalf("view after drag = %v, want offset -70,-120", got)
	}
	if len(views) != 2 {
		t.Fatalf("view events = %d, want 2", len(views))
	}
	if s.painted.Present() {
		t.Fatalf("drag painted")
	}

	s.PointerDown(50, 50)
	s.PointerMove(51, 52)
	res, ok := s.PointerUp(51, 52)
	if !ok || res.Outcome != floodfill.Filled {
		t.Fatalf("tap = %+v %v", res, ok)
	}
	if _, ok := s.PointerUp(51, 52); ok {
		t.Fatalf("release without press filled")
	}
}

func TestWheelZoom(t *testing.T) {
	events := 0
	s, err := New(&sliceLib{imgs: []*image.RGBA{blank(400, 400)}},
		WithViewChanged(func(viewport.State) { events++ }),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.WheelZoom(1, 200, 200)
	if events != 0 || s.View() != (viewport.State{Zoom: 1}) {
		t.Fatalf("zooming out at fit changed view: %v", s.View())
	}
	s.WheelZoom(-1, 200, 200)
	if events != 1 || s.View().Zoom != viewport.ZoomInStep {
		t.Fatalf("wheel up: zoom %g events %d", s.View().Zoom, events)
	}
	s.ResetView()
	if s.View() != (viewport.State{Zoom: 1}) {
		t.Fatalf("ResetView = %v", s.View())
	}
}

func TestPinch(t *testing.T) {
	s, err := New(&sliceLib{imgs: []*image.RGBA{blank(400, 400)}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.PointerDown(100, 200)
	s.PinchBegin(viewport.Point{X: 100, Y: 200}, viewport.Point{X: 200, Y: 200})
	s.PinchMove(viewport.Point{X: 50, Y: 200}, viewport.Point{X: 250, Y: 200})
	if got := s.View(); got.Zoom != 2 || got.OffsetX != -75 || got.OffsetY != -100 {
		t.Fatalf("view after pinch = %v", got)
	}
	s.PinchEnd()
	if _, ok := s.PointerUp(100, 200); ok {
		t.Fatalf("pinch finished with a fill")
	}
	s.PinchZoom(0.5, 0, 0)
	if got := s.View(); got != (viewport.State{Zoom: 1}) {
		t.Fatalf("PinchZoom back out = %v", got)
	}
}

func TestNextImageResets(t *testing.T) {
	lib := &sliceLib{imgs: []*image.RGBA{ring(10, 10), blank(20, 10), ring(10, 10)}}
	buffers := 0
	s, err := New(lib, WithBufferChanged(func(*image.RGBA) { buffers++ }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.FillAt(5, 5)
	s.ZoomAt(5, 5, 3)
	if err := s.NextImage(); err != nil {
		t.Fatalf("NextImage: %v", err)
	}
	if s.Index() != 1 || s.painted.Present() {
		t.Fatalf("index %d overlay %v", s.Index(), s.painted.Present())
	}
	if s.View() != (viewport.State{Zoom: 1}) {
		t.Fatalf("view not reset: %v", s.View())
	}
	if s.Viewport().Native() != image.Pt(20, 10) {
		t.Fatalf("viewport native = %v", s.Viewport().Native())
	}
	s.NextImage()
	s.NextImage()
	if s.Index() != 0 {
		t.Fatalf("NextImage did not wrap: %d", s.Index())
	}
	if buffers != 4 {
		t.Fatalf("buffer events = %d, want 4", buffers)
	}
	if err := s.LoadImage(3); err == nil {
		t.Fatalf("LoadImage out of range succeeded")
	}
}

func TestLoadImageError(t *testing.T) {
	lib := &sliceLib{imgs: []*image.RGBA{blank(4, 4), blank(4, 4)}}
	s, err := New(lib)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	boom := errors.New("boom")
	lib.err = boom
	if err := s.NextImage(); !errors.Is(err, boom) {
		t.Fatalf("NextImage error = %v", err)
	}
	if s.Index() != 0 {
		t.Fatalf("failed load changed index")
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(&sliceLib{}); !errors.Is(err, ErrNoImages) {
		t.Fatalf("empty library: %v", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrNoImages) {
		t.Fatalf("nil library: %v", err)
	}
	lib := &sliceLib{imgs: []*image.RGBA{blank(4, 4)}}
	if _, err := New(lib, WithStartIndex(2)); err == nil {
		t.Fatalf("bad start index accepted")
	}
	if _, err := New(lib, WithFillColor(colormodel.HSL{H: 400})); !errors.Is(err, colormodel.ErrInvalidColorSpec) {
		t.Fatalf("bad colour: %v", err)
	}
}

func TestSelectFillColorRejectsInvalid(t *testing.T) {
	s, err := New(&sliceLib{imgs: []*image.RGBA{blank(4, 4)}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	before := s.FillColor()
	if err := s.SelectFillColor(colormodel.HSL{H: 10, S: 120, L: 50}); !errors.Is(err, colormodel.ErrInvalidColorSpec) {
		t.Fatalf("error = %v", err)
	}
	if s.FillColor() != before {
		t.Fatalf("invalid colour was selected")
	}
}

func TestAppendImage(t *testing.T) {
	ro, _ := New(&sliceLib{imgs: []*image.RGBA{blank(4, 4)}})
	if err := ro.AppendImage(blank(2, 2)); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("AppendImage on read-only library = %v", err)
	}
	lib := &growLib{sliceLib{imgs: []*image.RGBA{blank(4, 4)}}}
	s, err := New(lib)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.AppendImage(ring(6, 6)); err != nil {
		t.Fatalf("AppendImage: %v", err)
	}
	if s.Index() != 1 || s.Base().Bounds().Dx() != 6 {
		t.Fatalf("appended image not shown")
	}
}

func TestRender(t *testing.T) {
	s, err := New(&sliceLib{imgs: []*image.RGBA{ring(10, 10)}}, WithFillColor(brickHSL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.FillAt(5, 5)
	s.ZoomAt(0, 0, 2)
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	s.Render(dst)
	if dst.RGBAAt(0, 0) != black || dst.RGBAAt(1, 1) != black || dst.RGBAAt(2, 2) != brick {
		t.Fatalf("render = %v %v %v", dst.RGBAAt(0, 0), dst.RGBAAt(1, 1), dst.RGBAAt(2, 2))
	}
}

func TestSessionLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := New(&sliceLib{imgs: []*image.RGBA{ring(10, 10)}}, WithLogger(l))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.FillAt(0, 0)
	if !strings.Contains(buf.String(), "outcome=boundary") {
		t.Fatalf("log output %q", buf.String())
	}
}

func TestPackageLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("default logger should be silent")
	}
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatalf("SetLogger not applied")
	}
	SetLogger(nil)
	if Logger() == custom || Logger() == nil {
		t.Fatalf("SetLogger(nil) should restore the silent logger")
	}
}
