package appstate

import (
	"image"
	"image/color"
	"log"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// messageSize is the point size of transient on-screen messages.
const messageSize = 22

var (
	regularFont *opentype.Font
	labelFace   font.Face = basicfont.Face7x13
	faces       sync.Map // map[float64]font.Face
)

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	regularFont = f
}

func faceForSize(size float64) font.Face {
	if size <= 0 || math.IsNaN(size) {
		return labelFace
	}
	if face, ok := faces.Load(size); ok {
		return face.(font.Face)
	}
	face, err := opentype.NewFace(regularFont, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("font face %.0fpt: %v", size, err)
		return labelFace
	}
	actual, _ := faces.LoadOrStore(size, face)
	return actual.(font.Face)
}

// MeasureText returns the bounding box of text at the given point size and
// the offset of its baseline from the top. A size of zero uses the label
// face.
func MeasureText(text string, size float64) (width, height, baseline int) {
	face := faceForSize(size)
	m := face.Metrics()
	width = (&font.Drawer{Face: face}).MeasureString(text).Ceil()
	baseline = m.Ascent.Ceil()
	height = baseline + m.Descent.Ceil()
	return
}

// DrawText renders text with its top-left corner at (x, y).
func DrawText(img *image.RGBA, x, y int, text string, col color.Color, size float64) {
	face := faceForSize(size)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

func labelWidth(text string) int {
	return (&font.Drawer{Face: labelFace}).MeasureString(text).Ceil()
}
