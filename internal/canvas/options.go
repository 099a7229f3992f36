package canvas

import (
	"image"
	"log/slog"

	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/floodfill"
	"github.com/example/colorfill/internal/viewport"
)

// Option configures a Session.
type Option func(*Session)

// WithBufferChanged is called with the native composite after every change
// to the picture: a fill, an image switch or a paste.
func WithBufferChanged(fn func(*image.RGBA)) Option {
	return func(s *Session) { s.onBufferChanged = fn }
}

// WithFillRejected is called when a fill request leaves the picture untouched.
func WithFillRejected(fn func(floodfill.Outcome)) Option {
	return func(s *Session) { s.onFillRejected = fn }
}

// WithFilled is called after a successful fill.
func WithFilled(fn func(floodfill.Result)) Option {
	return func(s *Session) { s.onFilled = fn }
}

// WithViewChanged is called whenever zoom or offset change.
func WithViewChanged(fn func(viewport.State)) Option {
	return func(s *Session) { s.onViewChanged = fn }
}

// WithLogger overrides the package logger for one session.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFillOptions sets the flood fill tolerances.
func WithFillOptions(o floodfill.Options) Option {
	return func(s *Session) { s.fillOpts = o }
}

// WithViewport passes options through to the viewport.
func WithViewport(opts ...viewport.Option) Option {
	return func(s *Session) { s.vpOpts = append(s.vpOpts, opts...) }
}

// WithFillColor sets the initially selected colour.
func WithFillColor(c colormodel.HSL) Option {
	return func(s *Session) { s.fillColor = c }
}

// WithStartIndex selects the first image shown.
func WithStartIndex(i int) Option {
	return func(s *Session) { s.index = i }
}

// WithFrame sets the on-screen size of the picture area. It defaults to the
// size of the first image.
func WithFrame(frame image.Point) Option {
	return func(s *Session) { s.frame = frame }
}
