package colormodel

import (
	"errors"
	"image/color"
	"testing"
)

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    color.RGBA
	}{
		{"red", 0, 100, 50, color.RGBA{255, 0, 0, 255}},
		{"lime", 120, 100, 50, color.RGBA{0, 255, 0, 255}},
		{"blue", 240, 100, 50, color.RGBA{0, 0, 255, 255}},
		{"white", 0, 0, 100, color.RGBA{255, 255, 255, 255}},
		{"black", 0, 0, 0, color.RGBA{0, 0, 0, 255}},
		{"gray", 200, 0, 50, color.RGBA{128, 128, 128, 255}},
		{"default swatch", 270, 70, 70, color.RGBA{178, 125, 232, 255}},
		{"brick", 0, 60, 100 * 250.0 / 510.0, color.RGBA{200, 50, 50, 255}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToRGBA(tc.h, tc.s, tc.l)
			if got != tc.want {
				t.Fatalf("ToRGBA(%g, %g, %g) = %v, want %v", tc.h, tc.s, tc.l, got, tc.want)
			}
		})
	}
}

func TestHSLRGBAMatchesToRGBA(t *testing.T) {
	c := HSL{H: 135, S: 70, L: 70}
	if c.RGBA() != ToRGBA(135, 70, 70) {
		t.Fatalf("method and function disagree")
	}
	if c.RGBA().A != 255 {
		t.Fatalf("expected opaque colour")
	}
}

func TestParseHSL(t *testing.T) {
	tests := []struct {
		in   string
		want HSL
	}{
		{"hsl(270, 70%, 70%)", HSL{270, 70, 70}},
		{"  HSL(22.5,70%,70%) ", HSL{22.5, 70, 70}},
		{"hsl(90 50% 25%)", HSL{90, 50, 25}},
		{"hsla(10, 20%, 30%, 0.5)", HSL{10, 20, 30}},
		{"hsla(10 20% 30% / 40%)", HSL{10, 20, 30}},
		{"hsl(45deg, 10, 90)", HSL{45, 10, 90}},
	}
	for _, tc := range tests {
		got, err := ParseHSL(tc.in)
		if err != nil {
			t.Fatalf("ParseHSL(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseHSL(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseHSLRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"rgb(1,2,3)",
		"hsl(270, 70%)",
		"hsl(a, b, c)",
		"hsl(400, 10%, 10%)",
		"hsl(10, 101%, 10%)",
		"hsl(10, 10%, -1%)",
		"hsl(270, 70%, 70%",
		"hsl(10, 20%, 30%, garbage)",
		"hsl(10 20 30 40 50)",
		"hsla(10, 20%, 30%)",
		"hsla(10, 20%, 30%, 1.5)",
		"hsla(10, 20%, 30%, -0.1)",
		"hsla(10, 20%, 30%, 120%)",
		"hsla(10, 20%, 30%, x)",
		"hsla(10, 20%, 30%, 0.5, 1)",
	} {
		if _, err := ParseHSL(in); !errors.Is(err, ErrInvalidColorSpec) {
			t.Errorf("ParseHSL(%q) error = %v, want ErrInvalidColorSpec", in, err)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"hsl(0, 100%, 50%)", color.RGBA{255, 0, 0, 255}},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 255}},
		{"#10203040", color.RGBA{0x10, 0x20, 0x30, 0x40}},
		{"cornflowerblue", color.RGBA{100, 149, 237, 255}},
		{"Coral", color.RGBA{255, 127, 80, 255}},
		{"lavender", color.RGBA{230, 230, 250, 255}},
		{"periwinkle", ToRGBA(248, 70, 70)},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseFailsFast(t *testing.T) {
	for _, in := range []string{"", "notacolour", "#12345", "#zzzzzz", "hsl()"} {
		if _, err := Parse(in); !errors.Is(err, ErrInvalidColorSpec) {
			t.Errorf("Parse(%q) error = %v, want ErrInvalidColorSpec", in, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := (HSL{359.9, 100, 0}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (HSL{360, 0, 0}).Validate(); !errors.Is(err, ErrInvalidColorSpec) {
		t.Fatalf("expected hue 360 to be rejected, got %v", err)
	}
}

func TestStringRoundTrips(t *testing.T) {
	c := HSL{H: 247.5, S: 70, L: 70}
	if got := c.String(); got != "hsl(247.5, 70%, 70%)" {
		t.Fatalf("String() = %q", got)
	}
	back, err := ParseHSL(c.String())
	if err != nil {
		t.Fatalf("ParseHSL: %v", err)
	}
	if back != c {
		t.Fatalf("round trip gave %v, want %v", back, c)
	}
}

func TestPalette(t *testing.T) {
	p := Palette()
	if len(p) != 12 {
		t.Fatalf("palette has %d swatches, want 12", len(p))
	}
	wantHues := []float64{270, 248, 225, 203, 180, 158, 135, 113, 90, 68, 45, 23}
	for i, sw := range p {
		if sw.Color.H != wantHues[i] {
			t.Errorf("swatch %d hue = %g, want %g", i, sw.Color.H, wantHues[i])
		}
		if sw.Color.S != 70 || sw.Color.L != 70 {
			t.Errorf("swatch %d = %v, want S=70 L=70", i, sw.Color)
		}
		if sw.Name == "" {
			t.Errorf("swatch %d has no name", i)
		}
	}
	if DefaultColor() != p[0].Color {
		t.Fatalf("default colour should be the first swatch")
	}
}

func TestParseSwatch(t *testing.T) {
	p := Palette()
	tests := []struct {
		in   string
		want HSL
	}{
		{"hsl(10, 20%, 30%)", HSL{10, 20, 30}},
		{"3", p[2].Color},
		{" coral ", p[11].Color},
		{"Lavender", p[0].Color},
	}
	for _, tc := range tests {
		got, err := ParseSwatch(tc.in)
		if err != nil {
			t.Fatalf("ParseSwatch(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseSwatch(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{"0", "13", "#ff0000", "teal"} {
		if _, err := ParseSwatch(in); !errors.Is(err, ErrInvalidColorSpec) {
			t.Errorf("ParseSwatch(%q) error = %v", in, err)
		}
	}
}
