package colormodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Swatch is a named entry of the colour picker.
type Swatch struct {
	Name  string
	Color HSL
}

const (
	paletteSize       = 12
	paletteStartHue   = 270
	paletteHueStep    = 22.5
	swatchSaturation  = 70
	swatchLightness   = 70
	defaultSwatchSlot = 0
)

var swatchNames = [paletteSize]string{
	"Lavender", "Periwinkle", "Sky", "Azure", "Aqua", "Seafoam",
	"Mint", "Spring", "Lime", "Butter", "Apricot", "Coral",
}

// Palette returns the picker swatches, hues stepping down from 270 degrees.
func Palette() []Swatch {
	out := make([]Swatch, paletteSize)
	for i := range out {
		hue := math.Round(paletteStartHue - float64(i)*paletteHueStep)
		out[i] = Swatch{
			Name:  swatchNames[i],
			Color: HSL{H: hue, S: swatchSaturation, L: swatchLightness},
		}
	}
	return out
}

// DefaultColor is the colour selected when a session starts.
func DefaultColor() HSL {
	return Palette()[defaultSwatchSlot].Color
}

// ParseSwatch resolves a selection colour given as hsl(), a swatch name or
// a 1-based swatch number.
func ParseSwatch(spec string) (HSL, error) {
	s := strings.TrimSpace(spec)
	if strings.HasPrefix(strings.ToLower(s), "hsl") {
		return ParseHSL(s)
	}
	p := Palette()
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(p) {
			return HSL{}, fmt.Errorf("%w: swatch %d outside 1-%d", ErrInvalidColorSpec, n, len(p))
		}
		return p[n-1].Color, nil
	}
	for _, sw := range p {
		if strings.EqualFold(sw.Name, s) {
			return sw.Color, nil
		}
	}
	return HSL{}, fmt.Errorf("%w: %q is neither hsl() nor a swatch", ErrInvalidColorSpec, spec)
}
