package appstate

import (
	"context"
	"sync"
)

// painter draws frames on its own goroutine. A newer frame replaces one that
// has not started yet and cancels the one being drawn, unless
// frameDropThreshold frames in a row have already been dropped.
type painter struct {
	draw func(context.Context, PaintState)
	ch   chan PaintState
	wg   sync.WaitGroup

	mu      sync.Mutex
	cancel  context.CancelFunc
	dropped int
}

func newPainter(draw func(context.Context, PaintState)) *painter {
	p := &painter{draw: draw, ch: make(chan PaintState, 1)}
	p.wg.Add(1)
	go p.loop()
	return p
}

func (p *painter) loop() {
	defer p.wg.Done()
	for st := range p.ch {
		ctx, cancel := context.WithCancel(context.Background())
		p.mu.Lock()
		p.cancel = cancel
		p.mu.Unlock()
		p.draw(ctx, st)
		p.mu.Lock()
		p.cancel = nil
		if ctx.Err() == nil {
			p.dropped = 0
		}
		p.mu.Unlock()
		cancel()
	}
}

// submit queues st. It must not be called after close.
func (p *painter) submit(st PaintState) {
	p.mu.Lock()
	if p.cancel != nil && p.dropped < frameDropThreshold {
		p.cancel()
		p.dropped++
	}
	p.mu.Unlock()
	select {
	case p.ch <- st:
	default:
		select {
		case <-p.ch:
		default:
		}
		p.ch <- st
	}
}

// stop cancels the frame being drawn, if any.
func (p *painter) stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
}

// close cancels drawing and returns once the goroutine has exited, so the
// window can be released safely afterwards.
func (p *painter) close() {
	p.stop()
	close(p.ch)
	p.wg.Wait()
}
