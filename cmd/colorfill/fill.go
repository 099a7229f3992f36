package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/term"

	"github.com/example/colorfill/internal/canvas"
	"github.com/example/colorfill/internal/clipboard"
	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/library"
)

// Swapped in tests.
var (
	clipboardWriteFn = clipboard.WriteImage
	clipboardReadFn  = clipboard.ReadImage
	stdoutIsTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

var errTerminalOutput = errors.New("refusing to write PNG data to a terminal; redirect stdout or use -output file")

// fillCmd applies flood fills to a picture without opening a window.
type fillCmd struct {
	file          string
	output        string
	colorSpec     string
	color         colormodel.HSL
	fromClipboard bool
	toClipboard   bool
	seeds         []image.Point
	stdout        io.Writer
	stderr        io.Writer
	*root
	fs *flag.FlagSet
}

func (f *fillCmd) FlagSet() *flag.FlagSet {
	return f.fs
}

func parseFillCmd(args []string, r *root) (*fillCmd, error) {
	r = r.subcommand("fill")
	cfg := r.settings()
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	f := &fillCmd{root: r, fs: fs, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(f)
	fs.StringVar(&f.file, "file", "", "picture to colour")
	fs.StringVar(&f.output, "output", "", "write the result here, - for stdout (defaults to -file)")
	fs.StringVar(&f.colorSpec, "color", cfg.Color, "fill colour: hsl(h, s%, l%), swatch name or swatch number")
	fs.BoolVar(&f.fromClipboard, "from-clipboard", false, "read the picture from the clipboard")
	fs.BoolVar(&f.fromClipboard, "from-clip", false, "read the picture from the clipboard (alias)")
	fs.BoolVar(&f.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&f.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: f}
	}
	seeds, err := parseSeeds(fs.Args())
	if err != nil {
		return nil, err
	}
	f.seeds = seeds

	f.color = colormodel.DefaultColor()
	if strings.TrimSpace(f.colorSpec) != "" {
		if f.color, err = colormodel.ParseSwatch(f.colorSpec); err != nil {
			return nil, err
		}
	}

	if f.fromClipboard {
		if f.output == "" {
			if f.file == "" && !f.toClipboard {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
			f.output = f.file
		}
	} else {
		if f.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if f.output == "" {
			f.output = f.file
		}
	}
	return f, nil
}

// parseSeeds reads "x,y" pairs.
func parseSeeds(args []string) ([]image.Point, error) {
	seeds := make([]image.Point, 0, len(args))
	for _, a := range args {
		xs, ys, ok := strings.Cut(strings.TrimSpace(a), ",")
		if !ok {
			return nil, fmt.Errorf("seed %q: want x,y", a)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", a, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("seed %q: %w", a, err)
		}
		seeds = append(seeds, image.Pt(x, y))
	}
	return seeds, nil
}

func (f *fillCmd) Run() error {
	if f.output == "-" && stdoutIsTerminal() {
		return errTerminalOutput
	}
	src, err := f.loadSource()
	if err != nil {
		return err
	}
	sess, err := canvas.New(library.FromImages(src),
		canvas.WithFillColor(f.color),
		canvas.WithFillOptions(f.settings().FillOptions()),
	)
	if err != nil {
		return err
	}
	for _, p := range f.seeds {
		res := sess.FillImage(p)
		fmt.Fprintf(f.stderr, "%d,%d %s %d\n", p.X, p.Y, res.Outcome, res.Painted)
	}
	result := sess.NativeBuffer()

	if err := f.writeOutput(result); err != nil {
		return err
	}
	if f.toClipboard {
		if err := clipboardWriteFn(result); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(f.output)
		if f.output == "" || f.output == "-" {
			detail = "picture"
		}
		fmt.Fprintf(f.stderr, "copied %s to clipboard\n", detail)
		f.root.notifyCopy(detail, result)
	}
	return nil
}

func (f *fillCmd) loadSource() (image.Image, error) {
	if f.fromClipboard {
		img, err := clipboardReadFn()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	img, err := imaging.Open(f.file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.file, err)
	}
	return img, nil
}

func (f *fillCmd) writeOutput(img image.Image) error {
	switch f.output {
	case "":
		return nil
	case "-":
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
		_, err := f.stdout.Write(buf.Bytes())
		return err
	}
	if err := imaging.Save(img, f.output); err != nil {
		return fmt.Errorf("save %s: %w", f.output, err)
	}
	saved := f.output
	if abs, err := filepath.Abs(f.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(f.stderr, "saved %s\n", saved)
	f.root.notifySave(saved)
	return nil
}
