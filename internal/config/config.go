package config

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"github.com/example/colorfill/internal/colormodel"
	"github.com/example/colorfill/internal/floodfill"
	"github.com/example/colorfill/internal/theme"
	"github.com/example/colorfill/internal/viewport"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Fill holds the flood fill tolerances.
type Fill struct {
	BoundaryTolerance int
	MatchTolerance    int
}

// Zoom holds the zoom range and wheel steps.
type Zoom struct {
	Min     float64
	Max     float64
	StepIn  float64
	StepOut float64
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Images string // directory of line art; empty uses the built-in pictures
	Width  int
	Height int
	Color  string // initial selection, see colormodel.ParseSwatch
	Fill   Fill
	Zoom   Zoom
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Width:  400,
		Height: 400,
		Fill: Fill{
			BoundaryTolerance: floodfill.DefaultBoundaryTolerance,
			MatchTolerance:    floodfill.DefaultMatchTolerance,
		},
		Zoom: Zoom{
			Min:     viewport.DefaultMinZoom,
			Max:     viewport.DefaultMaxZoom,
			StepIn:  viewport.ZoomInStep,
			StepOut: viewport.ZoomOutStep,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Size is the picture size.
func (c *Config) Size() image.Point {
	return image.Pt(c.Width, c.Height)
}

// FillOptions converts the [fill] section.
func (c *Config) FillOptions() floodfill.Options {
	return floodfill.Options{
		BoundaryTolerance: uint8(c.Fill.BoundaryTolerance),
		MatchTolerance:    uint8(c.Fill.MatchTolerance),
	}
}

// ViewportOptions converts the [zoom] section.
func (c *Config) ViewportOptions() []viewport.Option {
	return []viewport.Option{
		viewport.WithZoomBounds(c.Zoom.Min, c.Zoom.Max),
		viewport.WithWheelSteps(c.Zoom.StepIn, c.Zoom.StepOut),
	}
}

// FillColor resolves the initial selection, falling back to the first
// swatch when none is configured.
func (c *Config) FillColor() (colormodel.HSL, error) {
	if strings.TrimSpace(c.Color) == "" {
		return colormodel.DefaultColor(), nil
	}
	return colormodel.ParseSwatch(c.Color)
}

// Validate checks ranges that the parser cannot check line by line.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("picture size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		return fmt.Errorf("zoom range [%g,%g] is invalid", c.Zoom.Min, c.Zoom.Max)
	}
	if c.Zoom.StepIn <= 1 || c.Zoom.StepOut <= 0 || c.Zoom.StepOut >= 1 {
		return fmt.Errorf("zoom steps %g/%g must zoom in and out", c.Zoom.StepIn, c.Zoom.StepOut)
	}
	if _, err := c.FillColor(); err != nil {
		return err
	}
	return nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Images != "" {
		fmt.Fprintf(&sb, "images = %s\n", c.Images)
	}
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Height)
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	sb.WriteString("\n")

	sb.WriteString("[fill]\n")
	fmt.Fprintf(&sb, "boundary_tolerance = %d\n", c.Fill.BoundaryTolerance)
	fmt.Fprintf(&sb, "match_tolerance = %d\n", c.Fill.MatchTolerance)
	sb.WriteString("\n")

	sb.WriteString("[zoom]\n")
	fmt.Fprintf(&sb, "min = %s\n", formatFloat(c.Zoom.Min))
	fmt.Fprintf(&sb, "max = %s\n", formatFloat(c.Zoom.Max))
	fmt.Fprintf(&sb, "step_in = %s\n", formatFloat(c.Zoom.StepIn))
	fmt.Fprintf(&sb, "step_out = %s\n", formatFloat(c.Zoom.StepOut))
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		theme.Fields(t, func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
