// Package appstate is the colouring window: a palette bar, the picture
// frame and a shortcut bar around a canvas.Session.
package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/colorfill/internal/canvas"
	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/render"
	"github.com/example/colorfill/internal/theme"
	"github.com/example/colorfill/internal/viewport"
)

const (
	paletteHeight = 40
	bottomHeight  = 24
	frameMargin   = 8
	swatchSize    = 28
	swatchGap     = 6
	checkerSize   = 8
	nextLabel     = "Next"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive element of the window chrome.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState, th *theme.Theme)
	Rect() image.Rectangle
}

// labelButton is a flat button with a text label, used for "Next" and the
// shortcut bar.
type labelButton struct {
	label string
	rect  image.Rectangle
}

var _ Button = labelButton{}

func (b labelButton) Draw(dst *image.RGBA, state ButtonState, th *theme.Theme) {
	bg := th.ButtonBackground
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawBorder(dst, b.rect, th.ButtonBorder, 1)
	w := labelWidth(b.label)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: labelFace,
		Dot: fixed.P(b.rect.Min.X+(b.rect.Dx()-w)/2, b.rect.Min.Y+(b.rect.Dy()+10)/2)}
	d.DrawString(b.label)
}

func (b labelButton) Rect() image.Rectangle { return b.rect }

// shortcut is an entry of the bottom bar.
type shortcut struct {
	label   string
	binding Binding
}

func shortcutsFor(zoom float64) []shortcut {
	return []shortcut{
		{label: "N:next", binding: Binding{Action: ActionNextImage}},
		{label: "Tab:colour", binding: Binding{Action: ActionCycleSwatch}},
		{label: fmt.Sprintf("^+/^-:zoom (%.0f%%)", zoom*100), binding: Binding{Action: ActionZoomIn}},
		{label: "Home:reset", binding: Binding{Action: ActionResetView}},
		{label: "^C:copy", binding: Binding{Action: ActionCopy}},
		{label: "^V:paste", binding: Binding{Action: ActionPaste}},
		{label: "^S:save", binding: Binding{Action: ActionSave}},
		{label: "Q:quit", binding: Binding{Action: ActionQuit}},
	}
}

type targetKind int

const (
	targetNone targetKind = iota
	targetSwatch
	targetNext
	targetShortcut
	targetFrame
)

// target is the element under a window position.
type target struct {
	kind  targetKind
	index int
}

var noTarget = target{kind: targetNone, index: -1}

// layout places every element for a window size. It is recomputed for each
// paint and each pointer event so hit testing always agrees with drawing.
type layout struct {
	size      image.Point
	palette   image.Rectangle
	swatches  []image.Rectangle
	next      image.Rectangle
	frame     image.Rectangle
	status    image.Rectangle
	shortcuts []labelButton
	bindings  []Binding
}

// computeLayout lays out a window of size around a picture frame of the
// given size. The frame is centred in the space between the bars and
// clipped when the window is too small.
func computeLayout(size, frame image.Point, zoom float64) layout {
	l := layout{size: size}
	l.palette = image.Rect(0, 0, size.X, paletteHeight)
	x := swatchGap
	y := (paletteHeight - swatchSize) / 2
	for range colormodel.Palette() {
		l.swatches = append(l.swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchSize + swatchGap
	}
	nw := labelWidth(nextLabel) + 24
	l.next = image.Rect(x+swatchGap, y, x+swatchGap+nw, y+swatchSize)

	l.status = image.Rect(0, size.Y-bottomHeight, size.X, size.Y)

	avail := image.Rect(0, paletteHeight, size.X, size.Y-bottomHeight)
	fx := avail.Min.X + (avail.Dx()-frame.X)/2
	fy := avail.Min.Y + (avail.Dy()-frame.Y)/2
	fx = max(fx, avail.Min.X)
	fy = max(fy, avail.Min.Y)
	l.frame = image.Rect(fx, fy, fx+frame.X, fy+frame.Y).Intersect(avail)

	x = 4
	sy := size.Y - bottomHeight + 3
	for _, sc := range shortcutsFor(zoom) {
		w := labelWidth(sc.label) + 8
		l.shortcuts = append(l.shortcuts, labelButton{label: sc.label, rect: image.Rect(x, sy, x+w, sy+bottomHeight-6)})
		l.bindings = append(l.bindings, sc.binding)
		x += w + 4
	}
	return l
}

// preferredSize is the window size that shows the whole frame and every
// bar without clipping.
func preferredSize(frame image.Point) image.Point {
	l := computeLayout(image.Point{}, frame, viewport.DefaultMaxZoom)
	w := frame.X + 2*frameMargin
	w = max(w, l.next.Max.X+swatchGap)
	if n := len(l.shortcuts); n > 0 {
		w = max(w, l.shortcuts[n-1].rect.Max.X+4)
	}
	h := paletteHeight + frame.Y + 2*frameMargin + bottomHeight
	return image.Pt(w, h)
}

func (l layout) hit(p image.Point) target {
	for i, r := range l.swatches {
		if p.In(r) {
			return target{kind: targetSwatch, index: i}
		}
	}
	if p.In(l.next) {
		return target{kind: targetNext}
	}
	for i, sc := range l.shortcuts {
		if p.In(sc.rect) {
			return target{kind: targetShortcut, index: i}
		}
	}
	if p.In(l.frame) {
		return target{kind: targetFrame}
	}
	return noTarget
}

// PaintState is an immutable snapshot of everything drawn in one frame.
type PaintState struct {
	Width, Height int
	Frame         image.Point // picture frame size
	Base          *image.RGBA
	Overlay       *image.RGBA
	View          viewport.State
	Selected      int // palette slot, -1 for a colour outside the palette
	Color         colormodel.HSL
	ImageIndex    int
	ImageCount    int
	Message       string
	Theme         *theme.Theme

	hover   target
	pressed target
}

// DrawScene renders the whole window into dst, whose origin must be (0,0).
// It returns ctx's error when the frame was abandoned part way.
func DrawScene(ctx context.Context, dst *image.RGBA, st PaintState) error {
	th := st.Theme
	if th == nil {
		th = theme.Default()
	}
	l := computeLayout(image.Pt(st.Width, st.Height), st.Frame, st.View.Zoom)

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	render.Checkerboard(dst, l.frame, checkerSize, th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	render.Composite(dst, l.frame, st.Base, st.Overlay, st.View)
	drawBorder(dst, l.frame.Inset(-1), th.SwatchBorder, 1)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	drawPalette(dst, l, st, th)
	drawStatus(dst, l, st, th)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if st.Message != "" {
		drawMessage(dst, l.frame, st.Message, th)
	}
	return ctx.Err()
}

func drawPalette(dst *image.RGBA, l layout, st PaintState, th *theme.Theme) {
	draw.Draw(dst, l.palette, &image.Uniform{th.PaletteBackground}, image.Point{}, draw.Src)
	for i, sw := range colormodel.Palette() {
		r := l.swatches[i]
		draw.Draw(dst, r, &image.Uniform{sw.Color.RGBA()}, image.Point{}, draw.Src)
		if st.hover == (target{kind: targetSwatch, index: i}) {
			draw.Draw(dst, r, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		drawBorder(dst, r, th.SwatchBorder, 1)
		if i == st.Selected {
			drawBorder(dst, r.Inset(-3), th.SwatchSelected, 2)
		}
	}
	state := StateDefault
	switch {
	case st.pressed.kind == targetNext:
		state = StatePressed
	case st.hover.kind == targetNext:
		state = StateHover
	}
	labelButton{label: nextLabel, rect: l.next}.Draw(dst, state, th)

	// current colour and picture position to the right of the button
	info := fmt.Sprintf("%s  %d/%d", st.Color, st.ImageIndex+1, st.ImageCount)
	x := l.next.Max.X + 12
	if x+labelWidth(info) <= l.palette.Max.X {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: labelFace,
			Dot: fixed.P(x, (paletteHeight+10)/2)}
		d.DrawString(info)
	}
}

func drawStatus(dst *image.RGBA, l layout, st PaintState, th *theme.Theme) {
	draw.Draw(dst, l.status, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	for i, sc := range l.shortcuts {
		state := StateDefault
		if st.hover == (target{kind: targetShortcut, index: i}) {
			state = StateHover
		}
		sc.Draw(dst, state, th)
	}
}

func drawMessage(dst *image.RGBA, frame image.Rectangle, msg string, th *theme.Theme) {
	w, h, _ := MeasureText(msg, messageSize)
	px := frame.Min.X + (frame.Dx()-w)/2
	py := frame.Min.Y + (frame.Dy()-h)/2
	rect := image.Rect(px-10, py-8, px+w+10, py+h+8)
	draw.Draw(dst, rect, &image.Uniform{th.MessageBackground}, image.Point{}, draw.Over)
	DrawText(dst, px, py, msg, th.MessageText, messageSize)
}

// drawBorder strokes the inside edge of r with the given thickness.
func drawBorder(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y),
		image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge.Intersect(dst.Bounds()), u, image.Point{}, draw.Src)
	}
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st PaintState) {
	b, err := s.NewBuffer(image.Point{st.Width, st.Height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if err := DrawScene(ctx, b.RGBA(), st); err != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// Snapshot captures sess for drawing into a window of the given size. A
// zero size means the preferred size for the session's frame.
func Snapshot(sess *canvas.Session, size image.Point, th *theme.Theme) PaintState {
	if size.X <= 0 || size.Y <= 0 {
		size = preferredSize(sess.Frame())
	}
	ov, _ := sess.Overlay()
	return PaintState{
		Width:      size.X,
		Height:     size.Y,
		Frame:      sess.Frame(),
		Base:       sess.Base(),
		Overlay:    ov,
		View:       sess.View(),
		Selected:   swatchSlot(sess.FillColor()),
		Color:      sess.FillColor(),
		ImageIndex: sess.Index(),
		ImageCount: sess.Len(),
		Theme:      th,
		hover:      noTarget,
		pressed:    noTarget,
	}
}

func swatchSlot(c colormodel.HSL) int {
	for i, sw := range colormodel.Palette() {
		if sw.Color == c {
			return i
		}
	}
	return -1
}
