// Package overlay keeps the painted layer drawn over the current base image.
package overlay

import (
	"image"
	"sync"
)

// Store holds the latest painted snapshot. Readers may hold the image
// returned by Get for as long as they like; Set always installs a fresh copy
// instead of writing into the previous one.
type Store struct {
	mu  sync.RWMutex
	img *image.RGBA
}

// Set replaces the overlay with a deep copy of buf. A nil buf clears it.
func (s *Store) Set(buf *image.RGBA) {
	var cp *image.RGBA
	if buf != nil {
		cp = Clone(buf)
	}
	s.mu.Lock()
	s.img = cp
	s.mu.Unlock()
}

// Clear drops the overlay.
func (s *Store) Clear() {
	s.mu.Lock()
	s.img = nil
	s.mu.Unlock()
}

// Get returns the current snapshot. Callers must not modify it.
func (s *Store) Get() (*image.RGBA, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img, s.img != nil
}

// Snapshot returns a copy the caller owns, or nil.
func (s *Store) Snapshot() *image.RGBA {
	img, ok := s.Get()
	if !ok {
		return nil
	}
	return Clone(img)
}

// Present reports whether anything has been painted.
func (s *Store) Present() bool {
	_, ok := s.Get()
	return ok
}

// Clone copies src into a new RGBA image with the same bounds.
func Clone(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
