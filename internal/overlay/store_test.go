package overlay

import (
	"image"
	"image/color"
	"sync"
	"testing"
)

func TestStoreStartsEmpty(t *testing.T) {
	var s Store
	if s.Present() {
		t.Fatalf("new store reports an overlay")
	}
	if img, ok := s.Get(); ok || img != nil {
		t.Fatalf("Get on empty store = %v, %v", img, ok)
	}
	if s.Snapshot() != nil {
		t.Fatalf("Snapshot on empty store should be nil")
	}
}

func TestSetCopies(t *testing.T) {
	var s Store
	buf := image.NewRGBA(image.Rect(2, 3, 6, 7))
	buf.SetRGBA(3, 4, color.RGBA{1, 2, 3, 255})
	s.Set(buf)
	buf.SetRGBA(3, 4, color.RGBA{9, 9, 9, 255})

	got, ok := s.Get()
	if !ok {
		t.Fatalf("overlay missing after Set")
	}
	if got == buf {
		t.Fatalf("Set kept the caller's buffer")
	}
	if got.Rect != buf.Rect {
		t.Fatalf("bounds = %v, want %v", got.Rect, buf.Rect)
	}
	if c := got.RGBAAt(3, 4); c != (color.RGBA{1, 2, 3, 255}) {
		t.Fatalf("stored pixel = %v", c)
	}
}

func TestSetDoesNotDisturbEarlierSnapshot(t *testing.T) {
	var s Store
	a := image.NewRGBA(image.Rect(0, 0, 2, 2))
	a.SetRGBA(0, 0, color.RGBA{10, 0, 0, 255})
	s.Set(a)
	held, _ := s.Get()

	b := image.NewRGBA(image.Rect(0, 0, 2, 2))
	b.SetRGBA(0, 0, color.RGBA{20, 0, 0, 255})
	s.Set(b)

	if c := held.RGBAAt(0, 0); c.R != 10 {
		t.Fatalf("held snapshot changed to %v", c)
	}
	cur, _ := s.Get()
	if c := cur.RGBAAt(0, 0); c.R != 20 {
		t.Fatalf("current snapshot = %v", c)
	}
}

func TestSnapshotIsPrivate(t *testing.T) {
	var s Store
	s.Set(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	snap := s.Snapshot()
	snap.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	cur, _ := s.Get()
	if c := cur.RGBAAt(0, 0); c.R != 0 {
		t.Fatalf("writing to a snapshot changed the store")
	}
}

func TestClear(t *testing.T) {
	var s Store
	s.Set(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.Clear()
	if s.Present() {
		t.Fatalf("overlay still present after Clear")
	}
	s.Set(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.Set(nil)
	if s.Present() {
		t.Fatalf("Set(nil) should clear")
	}
}

func TestConcurrentReaders(t *testing.T) {
	var s Store
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if img, ok := s.Get(); ok {
					_ = img.RGBAAt(0, 0)
				}
			}
		}()
	}
	for j := 0; j < 200; j++ {
		s.Set(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	}
	wg.Wait()
}
