package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
)

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		if cerr := out.Close(); cerr != nil {
			return fmt.Errorf("%w (closing file: %v)", err, cerr)
		}
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}

// ToRGBA returns img as an *image.RGBA with its origin at (0,0), copying
// only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}
