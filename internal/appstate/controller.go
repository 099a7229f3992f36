package appstate

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/touch"

	"github.com/example/colorfill/internal/canvas"
	"github.com/example/colorfill/internal/clipboard"
	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/feedback"
	"github.com/example/colorfill/internal/floodfill"
	"github.com/example/colorfill/internal/notify"
	"github.com/example/colorfill/internal/theme"
	"github.com/example/colorfill/internal/viewport"
)

const (
	messageDuration = 2 * time.Second
	panStep         = 20
)

// Swapped in tests.
var (
	clipboardWriteFn     = clipboard.WriteImage
	clipboardReadFn      = clipboard.ReadImage
	clipboardWriteTextFn = clipboard.WriteText
	clipboardReadTextFn  = clipboard.ReadText
)

// controller turns window input into session calls. It lives on the event
// goroutine and is not safe for concurrent use.
type controller struct {
	sess     *canvas.Session
	theme    *theme.Theme
	cues     feedback.Sink
	notifier *notify.Notifier
	output   string

	size     image.Point // window size
	selected int
	hover    target
	pressed  target
	dragging bool
	touches  map[touch.Sequence]viewport.Point
	order    []touch.Sequence

	message      string
	messageUntil time.Time
	now          func() time.Time
	schedule     func(time.Duration)
}

func newController(sess *canvas.Session) *controller {
	c := &controller{
		sess:     sess,
		theme:    theme.Default(),
		cues:     feedback.Nop,
		size:     preferredSize(sess.Frame()),
		selected: swatchSlot(sess.FillColor()),
		hover:    noTarget,
		pressed:  noTarget,
		touches:  make(map[touch.Sequence]viewport.Point),
		now:      time.Now,
	}
	return c
}

func (c *controller) layout() layout {
	return computeLayout(c.size, c.sess.Frame(), c.sess.View().Zoom)
}

func (c *controller) paintState() PaintState {
	st := Snapshot(c.sess, c.size, c.theme)
	st.Selected = c.selected
	st.hover = c.hover
	st.pressed = c.pressed
	if c.message != "" && c.now().Before(c.messageUntil) {
		st.Message = c.message
	}
	return st
}

func (c *controller) setMessage(format string, args ...any) {
	c.message = fmt.Sprintf(format, args...)
	c.messageUntil = c.now().Add(messageDuration)
	log.Print(c.message)
	if c.schedule != nil {
		c.schedule(messageDuration)
	}
}

// perform runs one action and reports whether the window should close.
func (c *controller) perform(b Binding) (quit bool) {
	frame := c.sess.Frame()
	cx, cy := float64(frame.X)/2, float64(frame.Y)/2
	switch b.Action {
	case ActionSelectSwatch:
		c.selectSwatch(b.Arg)
	case ActionCycleSwatch:
		c.selectSwatch((c.selected + 1) % len(colormodel.Palette()))
	case ActionNextImage:
		if err := c.sess.NextImage(); err != nil {
			c.setMessage("next image: %v", err)
			return false
		}
		c.cues.Play(feedback.NextImage())
	case ActionZoomIn:
		c.sess.WheelZoom(-1, cx, cy)
	case ActionZoomOut:
		c.sess.WheelZoom(1, cx, cy)
	case ActionPanLeft:
		c.sess.Pan(-panStep, 0)
	case ActionPanRight:
		c.sess.Pan(panStep, 0)
	case ActionPanUp:
		c.sess.Pan(0, -panStep)
	case ActionPanDown:
		c.sess.Pan(0, panStep)
	case ActionResetView:
		c.sess.ResetView()
	case ActionCopy:
		c.copyPicture()
	case ActionCopyColor:
		c.copyColor()
	case ActionPaste:
		c.pastePicture()
	case ActionSave:
		c.savePicture()
	case ActionQuit:
		return true
	}
	return false
}

func (c *controller) selectSwatch(i int) {
	p := colormodel.Palette()
	if i < 0 || i >= len(p) {
		return
	}
	if err := c.sess.SelectFillColor(p[i].Color); err != nil {
		log.Printf("select colour: %v", err)
		return
	}
	c.selected = i
	c.cues.Play(feedback.Select(i))
}

func (c *controller) copyPicture() {
	img := c.sess.NativeBuffer()
	if err := clipboardWriteFn(img); err != nil {
		log.Printf("copy: %v", err)
		c.setMessage("copy failed")
		return
	}
	c.setMessage("picture copied to clipboard")
	c.notifier.Copy("picture", img)
}

// copyColor puts the selected colour on the clipboard as hsl() text.
func (c *controller) copyColor() {
	spec := c.sess.FillColor().String()
	if err := clipboardWriteTextFn(spec); err != nil {
		log.Printf("copy colour: %v", err)
		c.setMessage("copy failed")
		return
	}
	c.setMessage("copied %s", spec)
}

// pastePicture appends a clipboard image. Without one, clipboard text naming
// a colour selects that colour instead.
func (c *controller) pastePicture() {
	img, err := clipboardReadFn()
	if err != nil {
		if c.pasteColor() {
			return
		}
		log.Printf("paste: %v", err)
		c.setMessage("nothing to paste")
		return
	}
	if err := c.sess.AppendImage(ToRGBA(img)); err != nil {
		if errors.Is(err, canvas.ErrReadOnly) {
			c.setMessage("cannot add pictures here")
			return
		}
		log.Printf("paste: %v", err)
		c.setMessage("paste failed")
		return
	}
	c.setMessage("pasted new picture")
}

func (c *controller) pasteColor() bool {
	text, err := clipboardReadTextFn()
	if err != nil || strings.TrimSpace(text) == "" {
		return false
	}
	col, err := colormodel.ParseSwatch(text)
	if err != nil {
		return false
	}
	if err := c.sess.SelectFillColor(col); err != nil {
		return false
	}
	c.selected = swatchSlot(col)
	c.setMessage("colour %s", col.String())
	return true
}

func (c *controller) savePicture() {
	if c.output == "" {
		c.setMessage("no output file")
		return
	}
	if err := SavePNG(c.output, c.sess.NativeBuffer()); err != nil {
		log.Printf("save: %v", err)
		c.setMessage("save failed")
		return
	}
	c.setMessage("saved %s", c.output)
	c.notifier.Save(c.output)
}

func (c *controller) fillResult(res floodfill.Result) {
	if res.Outcome == floodfill.Filled {
		c.cues.Play(feedback.Fill())
		return
	}
	c.cues.Play(feedback.Reject())
}

// framePoint converts a window position to frame-relative coordinates.
func (c *controller) framePoint(l layout, x, y float32) (float64, float64) {
	return float64(x) - float64(l.frame.Min.X), float64(y) - float64(l.frame.Min.Y)
}

// mouse handles one mouse event, reporting whether a repaint is needed and
// whether the window should close.
func (c *controller) mouse(e mouse.Event) (repaint, quit bool) {
	l := c.layout()
	p := image.Pt(int(e.X), int(e.Y))
	fx, fy := c.framePoint(l, e.X, e.Y)

	if e.Direction == mouse.DirPress && c.message != "" && c.now().Before(c.messageUntil) {
		c.messageUntil = time.Time{}
		repaint = true
	}

	switch {
	case e.Button.IsWheel():
		if l.hit(p).kind != targetFrame {
			return repaint, false
		}
		switch e.Button {
		case mouse.ButtonWheelUp:
			c.sess.WheelZoom(-1, fx, fy)
		case mouse.ButtonWheelDown:
			c.sess.WheelZoom(1, fx, fy)
		}
		return true, false

	case c.dragging && e.Direction == mouse.DirNone:
		c.sess.PointerMove(fx, fy)
		return true, false

	case c.dragging && e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
		c.dragging = false
		if res, ok := c.sess.PointerUp(fx, fy); ok {
			c.fillResult(res)
		}
		return true, false

	case e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft:
		t := l.hit(p)
		c.pressed = t
		return true, c.activate(l, t, fx, fy)

	case e.Direction == mouse.DirRelease:
		c.pressed = noTarget
		return true, false

	case e.Direction == mouse.DirNone:
		if t := l.hit(p); t != c.hover {
			c.hover = t
			repaint = true
		}
	}
	return repaint, false
}

// activate presses the element t. A press in the frame starts a gesture.
func (c *controller) activate(l layout, t target, fx, fy float64) (quit bool) {
	switch t.kind {
	case targetSwatch:
		return c.perform(Binding{Action: ActionSelectSwatch, Arg: t.index})
	case targetNext:
		return c.perform(Binding{Action: ActionNextImage})
	case targetShortcut:
		return c.perform(l.bindings[t.index])
	case targetFrame:
		c.sess.PointerDown(fx, fy)
		c.dragging = true
	}
	return false
}

// touch handles one touch event. One finger behaves like the left mouse
// button, two fingers pinch.
func (c *controller) touch(e touch.Event) (repaint, quit bool) {
	l := c.layout()
	fx, fy := c.framePoint(l, e.X, e.Y)
	pt := viewport.Point{X: fx, Y: fy}

	switch e.Type {
	case touch.TypeBegin:
		if len(c.order) == 0 {
			if t := l.hit(image.Pt(int(e.X), int(e.Y))); t.kind != targetFrame {
				return true, c.activate(l, t, fx, fy)
			}
		}
		c.touches[e.Sequence] = pt
		c.order = append(c.order, e.Sequence)
		switch len(c.order) {
		case 1:
			c.sess.PointerDown(fx, fy)
		case 2:
			c.sess.PinchBegin(c.touches[c.order[0]], c.touches[c.order[1]])
		}
	case touch.TypeMove:
		if _, ok := c.touches[e.Sequence]; !ok {
			return false, false
		}
		c.touches[e.Sequence] = pt
		switch len(c.order) {
		case 1:
			c.sess.PointerMove(fx, fy)
		case 2:
			c.sess.PinchMove(c.touches[c.order[0]], c.touches[c.order[1]])
		}
	case touch.TypeEnd:
		if _, ok := c.touches[e.Sequence]; !ok {
			return false, false
		}
		switch len(c.order) {
		case 1:
			if res, ok := c.sess.PointerUp(fx, fy); ok {
				c.fillResult(res)
			}
		case 2:
			c.sess.PinchEnd()
		}
		delete(c.touches, e.Sequence)
		for i, s := range c.order {
			if s == e.Sequence {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
	return true, false
}
