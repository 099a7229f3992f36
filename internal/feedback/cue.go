// Package feedback turns colouring events into short cues such as a
// terminal bell or a log line.
package feedback

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"golang.org/x/term"
)

// Kind identifies what triggered a cue.
type Kind int

const (
	CueFill Kind = iota
	CueReject
	CueSelect
	CueNextImage
)

func (k Kind) String() string {
	switch k {
	case CueFill:
		return "fill"
	case CueReject:
		return "reject"
	case CueSelect:
		return "select"
	case CueNextImage:
		return "next-image"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Tone frequencies in Hz.
const (
	FillFrequency      = 350
	RejectFrequency    = 150
	NextImageFrequency = 300
	selectBase         = 200
	selectStep         = 40
)

// Cue is a short tone description. Frequency is informational; sinks that
// cannot produce tones ignore it.
type Cue struct {
	Kind      Kind
	Frequency float64
}

func (c Cue) String() string {
	return fmt.Sprintf("%s %.0fHz", c.Kind, c.Frequency)
}

func Fill() Cue      { return Cue{Kind: CueFill, Frequency: FillFrequency} }
func Reject() Cue    { return Cue{Kind: CueReject, Frequency: RejectFrequency} }
func NextImage() Cue { return Cue{Kind: CueNextImage, Frequency: NextImageFrequency} }

// Select is the cue for choosing palette swatch i.
func Select(i int) Cue {
	return Cue{Kind: CueSelect, Frequency: float64(selectBase + i*selectStep)}
}

// Sink receives cues.
type Sink interface {
	Play(Cue)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Cue)

func (f SinkFunc) Play(c Cue) { f(c) }

// Nop discards cues.
var Nop Sink = SinkFunc(func(Cue) {})

// BellSink rings the terminal bell. It stays silent when its writer is not
// a terminal.
type BellSink struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
}

// NewBellSink rings on f when f is a terminal.
func NewBellSink(f *os.File) *BellSink {
	return &BellSink{w: f, enabled: term.IsTerminal(int(f.Fd()))}
}

func (b *BellSink) Enabled() bool { return b.enabled }

func (b *BellSink) Play(c Cue) {
	if !b.enabled {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		log.Printf("bell: %v", err)
	}
}

// LogSink writes each cue to a logger.
type LogSink struct {
	Logger *log.Logger
}

func (l LogSink) Play(c Cue) {
	if l.Logger == nil {
		log.Printf("cue: %s", c)
		return
	}
	l.Logger.Printf("cue: %s", c)
}

// Multi plays each cue on every sink in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(c Cue) {
		for _, s := range sinks {
			s.Play(c)
		}
	})
}
