package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/example/colorfill/internal/appstate"
	"github.com/example/colorfill/internal/canvas"
	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/theme"
)

type renderCmd struct {
	*root
	fs     *flag.FlagSet
	input  string
	output string
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	r = r.subcommand("render")
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.input, "input", "", "scene description (JSON)")
	fs.StringVar(&c.output, "output", "", "output PNG file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.input == "" || c.output == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// Scene describes one headless frame of the colouring window.
type Scene struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Images  string     `json:"images"`
	Image   int        `json:"image"`
	Color   string     `json:"color"`
	Zoom    []ZoomStep `json:"zoom"`
	Pan     [2]float64 `json:"pan"`
	Fills   [][2]int   `json:"fills"`
	Message string     `json:"message"`
	Theme   string     `json:"theme"`
}

// ZoomStep zooms by Factor around the frame-relative anchor X,Y.
type ZoomStep struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Factor float64 `json:"factor"`
}

func (c *renderCmd) Run() error {
	f, err := os.Open(c.input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var sc Scene
	if err := json.NewDecoder(f).Decode(&sc); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}
	st, err := c.build(sc)
	if err != nil {
		return err
	}
	out := image.NewRGBA(image.Rect(0, 0, st.Width, st.Height))
	if err := appstate.DrawScene(context.Background(), out, st); err != nil {
		return err
	}
	return appstate.SavePNG(c.output, out)
}

// build replays the scene against a fresh session.
func (c *renderCmd) build(sc Scene) (appstate.PaintState, error) {
	cfg := c.settings()
	lib, err := loadLibrary(sc.Images, cfg.Size())
	if err != nil {
		return appstate.PaintState{}, err
	}
	opts := []canvas.Option{
		canvas.WithStartIndex(sc.Image),
		canvas.WithFillOptions(cfg.FillOptions()),
		canvas.WithViewport(cfg.ViewportOptions()...),
	}
	if sc.Color != "" {
		col, err := colormodel.ParseSwatch(sc.Color)
		if err != nil {
			return appstate.PaintState{}, err
		}
		opts = append(opts, canvas.WithFillColor(col))
	}
	sess, err := canvas.New(lib, opts...)
	if err != nil {
		return appstate.PaintState{}, err
	}
	for _, p := range sc.Fills {
		sess.FillImage(image.Pt(p[0], p[1]))
	}
	for _, z := range sc.Zoom {
		sess.ZoomAt(z.X, z.Y, z.Factor)
	}
	if sc.Pan != [2]float64{} {
		sess.Pan(sc.Pan[0], sc.Pan[1])
	}

	th := c.activeTheme
	if sc.Theme != "" {
		if th, err = theme.NewLoader().Load(sc.Theme); err != nil {
			return appstate.PaintState{}, fmt.Errorf("theme %s: %w", sc.Theme, err)
		}
	}
	st := appstate.Snapshot(sess, image.Pt(sc.Width, sc.Height), th)
	st.Message = sc.Message
	return st, nil
}
