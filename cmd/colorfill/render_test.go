package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderRunWritesSceneSize(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.png")
	cmd := &renderCmd{
		root:   &root{program: "colorfill render"},
		input:  writeScene(t, `{"width": 520, "height": 480, "image": 2, "color": "3", "zoom": [{"x": 200, "y": 200, "factor": 2}], "pan": [10, -5], "message": "hello"}`),
		output: out,
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("open result: %v", err)
	}
	if got := img.Bounds().Size(); got.X != 520 || got.Y != 480 {
		t.Fatalf("size = %v, want 520x480", got)
	}
}

func TestRenderBuildReplaysScene(t *testing.T) {
	cmd := &renderCmd{root: &root{}}
	st, err := cmd.build(Scene{Image: 1, Color: "Mint", Zoom: []ZoomStep{{X: 0, Y: 0, Factor: 2}}, Message: "saved"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if st.ImageIndex != 1 {
		t.Fatalf("image index = %d, want 1", st.ImageIndex)
	}
	if st.Selected != 6 {
		t.Fatalf("selected = %d, want Mint at 6", st.Selected)
	}
	if st.View.Zoom != 2 {
		t.Fatalf("zoom = %g, want 2", st.View.Zoom)
	}
	if st.Width <= 0 || st.Height <= 0 {
		t.Fatalf("expected preferred window size, got %dx%d", st.Width, st.Height)
	}
	if st.Message != "saved" {
		t.Fatalf("message = %q", st.Message)
	}
}

func TestRenderRejectsBadScene(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"json", `{"width": `, "decode input"},
		{"color", `{"color": "teal"}`, "invalid color spec"},
		{"index", `{"image": 99}`, "out of range"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &renderCmd{
				root:   &root{},
				input:  writeScene(t, tc.body),
				output: filepath.Join(t.TempDir(), "x.png"),
			}
			if err := cmd.Run(); err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}
