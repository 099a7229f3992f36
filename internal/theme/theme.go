package theme

import (
	"image/color"
)

// Theme defines the colours of the window chrome around the picture.
type Theme struct {
	Name string

	// General
	Background color.RGBA // behind the picture frame
	Foreground color.RGBA // labels and status text

	// Palette bar
	PaletteBackground color.RGBA
	SwatchBorder      color.RGBA
	SwatchSelected    color.RGBA // ring around the active swatch

	// Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonBorder          color.RGBA

	// Shortcut bar and transient messages
	StatusBackground  color.RGBA
	StatusText        color.RGBA
	MessageBackground color.RGBA
	MessageText       color.RGBA

	// Shown where the picture does not cover the frame
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{236, 236, 236, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		PaletteBackground:     color.RGBA{222, 222, 222, 255},
		SwatchBorder:          color.RGBA{96, 96, 96, 255},
		SwatchSelected:        color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		StatusBackground:      color.RGBA{222, 222, 222, 255},
		StatusText:            color.RGBA{40, 40, 40, 255},
		MessageBackground:     color.RGBA{0, 0, 0, 160},
		MessageText:           color.RGBA{255, 255, 255, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
