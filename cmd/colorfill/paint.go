package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/example/colorfill/internal/appstate"
	"github.com/example/colorfill/internal/canvas"
	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/feedback"
	"github.com/example/colorfill/internal/library"
)

type paintCmd struct {
	images    string
	index     int
	colorSpec string
	output    string
	bell      bool
	*root
	fs *flag.FlagSet
}

func (p *paintCmd) FlagSet() *flag.FlagSet {
	return p.fs
}

func parsePaintCmd(args []string, r *root) (*paintCmd, error) {
	r = r.subcommand("paint")
	cfg := r.settings()
	fs := flag.NewFlagSet("paint", flag.ExitOnError)
	p := &paintCmd{root: r, fs: fs}
	fs.Usage = usageFunc(p)
	fs.StringVar(&p.images, "images", cfg.Images, "directory of line drawings (PNG, JPEG, GIF, BMP, TIFF)")
	fs.IntVar(&p.index, "index", 1, "picture to start with, counting from 1")
	fs.StringVar(&p.colorSpec, "color", cfg.Color, "initial colour: hsl(h, s%, l%), swatch name or swatch number")
	fs.StringVar(&p.output, "output", "colorfill.png", "file written by Ctrl+S")
	fs.BoolVar(&p.bell, "bell", false, "ring the terminal bell on fills and rejected taps")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: p}
	}
	if p.index < 1 {
		return nil, fmt.Errorf("-index must be at least 1")
	}
	return p, nil
}

func (p *paintCmd) Run() error {
	cfg := p.settings()
	lib, err := loadLibrary(p.images, cfg.Size())
	if err != nil {
		return err
	}
	if p.index > lib.Len() {
		return fmt.Errorf("-index %d: only %d pictures available", p.index, lib.Len())
	}
	col := colormodel.DefaultColor()
	if p.colorSpec != "" {
		if col, err = colormodel.ParseSwatch(p.colorSpec); err != nil {
			return err
		}
	}

	sinks := []feedback.Sink{}
	if p.bell {
		sinks = append(sinks, feedback.NewBellSink(os.Stderr))
	}
	if p.verbose {
		sinks = append(sinks, feedback.LogSink{Logger: log.New(os.Stderr, "", log.LstdFlags)})
	}
	cues := feedback.Debounced(feedback.Multi(sinks...), feedback.DefaultDelay)
	defer cues.Stop()

	sess, err := canvas.New(lib,
		canvas.WithStartIndex(p.index-1),
		canvas.WithFillColor(col),
		canvas.WithFillOptions(cfg.FillOptions()),
		canvas.WithViewport(cfg.ViewportOptions()...),
	)
	if err != nil {
		return err
	}

	title := windowTitle(titleOptions{
		Picture: lib.Name(sess.Index()),
		Source:  p.images,
		Output:  filepath.Base(p.output),
	})
	app := appstate.New(
		appstate.WithSession(sess),
		appstate.WithOutput(p.output),
		appstate.WithTheme(p.activeTheme),
		appstate.WithTitle(title),
		appstate.WithCueSink(cues),
		appstate.WithNotifier(p.notifier),
	)
	app.Run()
	return nil
}

// loadLibrary opens the drawings in dir, or the built-in set when dir is
// empty.
func loadLibrary(dir string, size image.Point) (*library.Library, error) {
	if dir == "" {
		return library.Builtin(size), nil
	}
	lib, err := library.LoadDir(dir, size)
	if err != nil {
		return nil, fmt.Errorf("load pictures from %s: %w", dir, err)
	}
	return lib, nil
}
