//go:build linux

package platform

import "testing"

func TestHints(t *testing.T) {
	h := hints(Options{IconPath: "/tmp/p.png", Sound: true})
	if got := h["image-path"].Value(); got != "/tmp/p.png" {
		t.Fatalf("image-path = %v", got)
	}
	if got := h["sound-name"].Value(); got != "complete" {
		t.Fatalf("sound-name = %v", got)
	}
	if _, ok := h["suppress-sound"]; ok {
		t.Fatalf("sound requested but suppressed")
	}

	h = hints(Options{})
	if _, ok := h["image-path"]; ok {
		t.Fatalf("unexpected image-path without icon")
	}
	if got := h["suppress-sound"].Value(); got != true {
		t.Fatalf("suppress-sound = %v", got)
	}
}
