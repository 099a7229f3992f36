package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/example/colorfill/internal/colormodel"
)

type colorsCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	r = r.subcommand("colors")
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tname\thsl\trgb")
	for i, sw := range colormodel.Palette() {
		rgb := sw.Color.RGBA()
		fmt.Fprintf(tw, "%d\t%s\t%s\t#%02X%02X%02X\n", i+1, sw.Name, sw.Color, rgb.R, rgb.G, rgb.B)
	}
	return tw.Flush()
}
