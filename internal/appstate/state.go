package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/colorfill/internal/canvas"
	"github.com/example/colorfill/internal/feedback"
	"github.com/example/colorfill/internal/notify"
	"github.com/example/colorfill/internal/theme"
)

// ProgramTitle is the window title prefix.
const ProgramTitle = "ColorFill"

// AppState holds application configuration for the UI.
type AppState struct {
	Session *canvas.Session
	Output  string
	Theme   *theme.Theme
	Title   string

	cues     feedback.Sink
	notifier *notify.Notifier

	updateCh chan struct{}

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the colouring session shown in the window.
func WithSession(s *canvas.Session) Option { return func(a *AppState) { a.Session = s } }

// WithOutput sets the file written by the save shortcut.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithCueSink receives a cue for every fill, rejection, swatch and image
// change.
func WithCueSink(s feedback.Sink) Option { return func(a *AppState) { a.cues = s } }

// WithNotifier announces saves and copies on the desktop.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Theme:    theme.Default(),
		Title:    ProgramTitle,
		cues:     feedback.Nop,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.cues == nil {
		a.cues = feedback.Nop
	}
	return a
}

// Refresh requests a repaint, for example after the session changed from
// another goroutine's point of view or a message expired.
func (a *AppState) Refresh() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *AppState) newController() *controller {
	c := newController(a.Session)
	c.theme = a.Theme
	c.cues = a.cues
	c.notifier = a.notifier
	c.output = a.Output
	c.schedule = func(d time.Duration) { time.AfterFunc(d, a.Refresh) }
	return c
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()
	if a.Session == nil {
		log.Print("appstate: no session to show")
		return
	}
	c := a.newController()

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: c.size.X, Height: c.size.Y, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	var refresh sync.WaitGroup
	done := make(chan struct{})
	refresh.Add(1)
	go func() {
		defer refresh.Done()
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer func() {
		close(done)
		refresh.Wait()
	}()

	p := newPainter(func(ctx context.Context, st PaintState) { drawFrame(ctx, s, w, st) })
	defer p.close()

	for {
		var repaint, quit bool
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			c.size = image.Pt(e.WidthPx, e.HeightPx)
			repaint = true
		case paint.Event:
			p.submit(c.paintState())
		case key.Event:
			if b, ok := bindingFor(e); ok {
				quit = c.perform(b)
				repaint = true
			}
		case mouse.Event:
			repaint, quit = c.mouse(e)
		case touch.Event:
			repaint, quit = c.touch(e)
		case error:
			log.Printf("window: %v", e)
		}
		if quit {
			return
		}
		if repaint {
			w.Send(paint.Event{})
		}
	}
}
