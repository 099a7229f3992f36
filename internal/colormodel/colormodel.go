// Package colormodel converts the HSL colours used for selection into the
// 8-bit RGBA values written into pixel buffers.
package colormodel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrInvalidColorSpec reports a colour specification that cannot be resolved.
var ErrInvalidColorSpec = errors.New("invalid color spec")

// HSL is a hue/saturation/lightness triple. Hue is in degrees [0,360),
// saturation and lightness are percentages [0,100].
type HSL struct {
	H float64
	S float64
	L float64
}

// RGBA resolves the triple to an opaque 8-bit colour.
func (c HSL) RGBA() color.RGBA {
	return ToRGBA(c.H, c.S, c.L)
}

// Validate reports whether the triple lies inside the documented domain.
func (c HSL) Validate() error {
	switch {
	case math.IsNaN(c.H) || math.IsNaN(c.S) || math.IsNaN(c.L):
		return fmt.Errorf("%w: NaN component in %v", ErrInvalidColorSpec, c)
	case c.H < 0 || c.H >= 360:
		return fmt.Errorf("%w: hue %g outside [0,360)", ErrInvalidColorSpec, c.H)
	case c.S < 0 || c.S > 100:
		return fmt.Errorf("%w: saturation %g outside [0,100]", ErrInvalidColorSpec, c.S)
	case c.L < 0 || c.L > 100:
		return fmt.Errorf("%w: lightness %g outside [0,100]", ErrInvalidColorSpec, c.L)
	}
	return nil
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%s, %s%%, %s%%)", formatNum(c.H), formatNum(c.S), formatNum(c.L))
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToRGBA converts hue (degrees), saturation and lightness (percent) to RGBA
// with alpha 255. Zero saturation yields a gray of round(l*255/100).
func ToRGBA(h, s, l float64) color.RGBA {
	hN := h / 360
	sN := s / 100
	lN := l / 100
	var r, g, b float64
	if sN == 0 {
		r, g, b = lN, lN, lN
	} else {
		var q float64
		if lN < 0.5 {
			q = lN * (1 + sN)
		} else {
			q = lN + sN - lN*sN
		}
		p := 2*lN - q
		r = hueToChannel(p, q, hN+1.0/3)
		g = hueToChannel(p, q, hN)
		b = hueToChannel(p, q, hN-1.0/3)
	}
	return color.RGBA{R: channel(r), G: channel(g), B: channel(b), A: 255}
}

// hueToChannel evaluates one channel of the six-sector HSL ramp.
func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func channel(v float64) uint8 {
	x := math.Round(v * 255)
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// ParseHSL parses "hsl(H, S%, L%)". Commas may be replaced by spaces and the
// percent signs are optional. "hsla(H, S%, L%, A)" is accepted with an alpha
// in [0,1] or a percentage; the alpha is checked and then dropped.
func ParseHSL(spec string) (HSL, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	var body string
	want := 3
	switch {
	case strings.HasPrefix(s, "hsla(") && strings.HasSuffix(s, ")"):
		body = s[len("hsla(") : len(s)-1]
		want = 4
	case strings.HasPrefix(s, "hsl(") && strings.HasSuffix(s, ")"):
		body = s[len("hsl(") : len(s)-1]
	default:
		return HSL{}, fmt.Errorf("%w: %q is not an hsl() value", ErrInvalidColorSpec, spec)
	}
	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '/'
	})
	if len(fields) != want {
		return HSL{}, fmt.Errorf("%w: %q has %d components, want %d", ErrInvalidColorSpec, spec, len(fields), want)
	}
	var vals [3]float64
	for i := 0; i < 3; i++ {
		raw := strings.TrimSuffix(strings.TrimSuffix(fields[i], "%"), "deg")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return HSL{}, fmt.Errorf("%w: component %q of %q", ErrInvalidColorSpec, fields[i], spec)
		}
		vals[i] = v
	}
	if want == 4 {
		if err := checkAlpha(fields[3]); err != nil {
			return HSL{}, fmt.Errorf("%w: alpha of %q: %v", ErrInvalidColorSpec, spec, err)
		}
	}
	c := HSL{H: vals[0], S: vals[1], L: vals[2]}
	if err := c.Validate(); err != nil {
		return HSL{}, err
	}
	return c, nil
}

// checkAlpha accepts 0..1 or 0%..100%.
func checkAlpha(field string) error {
	limit := 1.0
	raw := field
	if strings.HasSuffix(raw, "%") {
		raw = strings.TrimSuffix(raw, "%")
		limit = 100
	}
	a, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", field)
	}
	if math.IsNaN(a) || a < 0 || a > limit {
		return fmt.Errorf("%q outside [0,%g]", field, limit)
	}
	return nil
}

// Parse resolves hsl(), #RRGGBB, #RRGGBBAA or a named colour to RGBA.
func Parse(spec string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("%w: empty", ErrInvalidColorSpec)
	}
	if strings.HasPrefix(s, "hsl") {
		c, err := ParseHSL(s)
		if err != nil {
			return color.RGBA{}, err
		}
		return c.RGBA(), nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	for _, sw := range Palette() {
		if strings.EqualFold(sw.Name, s) {
			return sw.Color.RGBA(), nil
		}
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorSpec, spec)
}

func parseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w: %q has invalid hex length", ErrInvalidColorSpec, s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColorSpec, s)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	}
	return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
}
