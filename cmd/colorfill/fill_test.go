package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/example/colorfill/internal/colormodel"
)

// divided is white with a black column at x=10.
func divided() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x == 10 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func writeDivided(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, divided()); err != nil {
		t.Fatal(err)
	}
	return path
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestFillRunWritesOutput(t *testing.T) {
	in := writeDivided(t)
	out := filepath.Join(t.TempDir(), "out.png")
	cmd, err := parseFillCmd([]string{"-file", in, "-output", out, "-color", "Coral", "2,2", "10,3", "40,40"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var log bytes.Buffer
	cmd.stderr = &log
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(log.String()), "\n")
	want := []string{"2,2 filled 200", "10,3 boundary 0", "40,40 out-of-bounds 0"}
	for i, w := range want {
		if i >= len(lines) || lines[i] != w {
			t.Fatalf("report = %q, want prefix %q", lines, want)
		}
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	coral, _ := colormodel.ParseSwatch("Coral")
	if got := rgbaAt(img, 2, 2); got != coral.RGBA() {
		t.Fatalf("left half = %v, want %v", got, coral.RGBA())
	}
	if got := rgbaAt(img, 15, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("right half changed: %v", got)
	}
	if got := rgbaAt(img, 10, 2); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("outline changed: %v", got)
	}
}

func TestFillRunStdoutRefusesTerminal(t *testing.T) {
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return true }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	cmd, err := parseFillCmd([]string{"-file", writeDivided(t), "-output", "-", "2,2"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, errTerminalOutput) {
		t.Fatalf("expected terminal refusal, got %v", err)
	}
}

func TestFillRunStdoutStreamsPNG(t *testing.T) {
	orig := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { stdoutIsTerminal = orig })

	cmd, err := parseFillCmd([]string{"-file", writeDivided(t), "-output", "-", "15,15"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var out, log bytes.Buffer
	cmd.stdout = &out
	cmd.stderr = &log
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("decode stdout: %v", err)
	}
	if got := rgbaAt(img, 15, 15); got != colormodel.DefaultColor().RGBA() {
		t.Fatalf("right half = %v, want default colour", got)
	}
}

func TestFillRunClipboardRoundTrip(t *testing.T) {
	origRead, origWrite := clipboardReadFn, clipboardWriteFn
	t.Cleanup(func() { clipboardReadFn, clipboardWriteFn = origRead, origWrite })

	clipboardReadFn = func() (image.Image, error) { return divided(), nil }
	var copied image.Image
	clipboardWriteFn = func(img image.Image) error {
		copied = img
		return nil
	}

	cmd, err := parseFillCmd([]string{"-from-clipboard", "-to-clipboard", "2,2"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var log bytes.Buffer
	cmd.stderr = &log
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if copied == nil {
		t.Fatalf("nothing copied")
	}
	if got := rgbaAt(copied, 2, 2); got != colormodel.DefaultColor().RGBA() {
		t.Fatalf("copied picture not filled: %v", got)
	}
	if !strings.Contains(log.String(), "copied picture to clipboard") {
		t.Fatalf("missing copy report: %q", log.String())
	}
}

func TestFillRunClipboardReadError(t *testing.T) {
	orig := clipboardReadFn
	sentinel := errors.New("no owner")
	clipboardReadFn = func() (image.Image, error) { return nil, sentinel }
	t.Cleanup(func() { clipboardReadFn = orig })

	cmd, err := parseFillCmd([]string{"-from-clipboard", "-output", filepath.Join(t.TempDir(), "o.png"), "1,1"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, sentinel) || !strings.Contains(err.Error(), "read clipboard image") {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
}

func TestFillRunOpenError(t *testing.T) {
	cmd, err := parseFillCmd([]string{"-file", "missing.png", "1,1"}, nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), "open missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}
