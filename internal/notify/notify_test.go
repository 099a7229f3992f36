package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/colorfill/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	orig := notifyFn
	notifyFn = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { notifyFn = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("x.png")
	n.Copy("", nil)
	var nilN *Notifier
	nilN.Save("x.png")
	nilN.Enable(EventSave, true)
	if len(*got) != 0 {
		t.Fatalf("sent %v", *got)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := capture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != "ColorFill" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("notification = %+v", s)
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied picture to clipboard" {
		t.Fatalf("body = %q", s.body)
	}
	if !s.iconExisted {
		t.Fatalf("preview missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("COLORFILL_NOTIFY_TITLE", "Colouring")
	t.Setenv("COLORFILL_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Colouring" || prefs.Events[EventSave].Template != "Wrote %s" {
		t.Fatalf("prefs = %+v", prefs)
	}
	if prefs.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Fatalf("copy template changed")
	}
}

func TestDispatchErrorIsLogged(t *testing.T) {
	orig := notifyFn
	notifyFn = func(string, string, platform.Options) error { return errors.New("no bus") }
	t.Cleanup(func() { notifyFn = orig })
	n := New(Preferences{Title: "T", Events: map[Event]EventPreference{EventCopy: {Template: "  "}}})
	n.Enable(EventCopy, true)
	n.Copy("x", nil)
	n2 := New(DefaultPreferences())
	n2.Enable(EventCopy, true)
	n2.Copy(strings.Repeat("x", 3), nil)
}

func TestSoundPreference(t *testing.T) {
	t.Setenv("COLORFILL_NOTIFY_SOUND", "true")
	got := capture(t)
	n := New(LoadPreferences())
	n.Enable(EventCopy, true)
	n.Copy("page", nil)
	if len(*got) != 1 || !(*got)[0].opts.Sound {
		t.Fatalf("expected a notification with sound, got %+v", *got)
	}
}
