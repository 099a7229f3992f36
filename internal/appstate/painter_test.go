package appstate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPainterCloseWaitsForFrame(t *testing.T) {
	started := make(chan struct{})
	var finished atomic.Bool
	p := newPainter(func(ctx context.Context, st PaintState) {
		close(started)
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		finished.Store(true)
	})
	p.submit(PaintState{})
	<-started
	p.close()
	if !finished.Load() {
		t.Fatalf("close returned while a frame was still drawing")
	}
}

func TestPainterCancelsStaleFrame(t *testing.T) {
	started := make(chan string, 4)
	cancelled := make(chan string, 4)
	p := newPainter(func(ctx context.Context, st PaintState) {
		started <- st.Message
		select {
		case <-ctx.Done():
			cancelled <- st.Message
		case <-time.After(time.Second):
		}
	})
	defer p.close()

	p.submit(PaintState{Message: "first"})
	if got := <-started; got != "first" {
		t.Fatalf("started %q", got)
	}
	p.submit(PaintState{Message: "second"})
	if got := <-cancelled; got != "first" {
		t.Fatalf("cancelled %q", got)
	}
	if got := <-started; got != "second" {
		t.Fatalf("then started %q", got)
	}
}

func TestPainterStopsDroppingAfterThreshold(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	p := newPainter(func(ctx context.Context, st PaintState) {
		started <- struct{}{}
		<-release
	})
	defer func() {
		close(release)
		p.close()
	}()

	p.submit(PaintState{})
	<-started
	for i := 0; i < frameDropThreshold+5; i++ {
		p.submit(PaintState{})
	}
	p.mu.Lock()
	dropped := p.dropped
	p.mu.Unlock()
	if dropped != frameDropThreshold {
		t.Fatalf("dropped %d frames, want %d", dropped, frameDropThreshold)
	}
}
