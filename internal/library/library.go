// Package library loads the line-art pictures offered for colouring.
package library

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ErrEmpty is returned when a directory holds no usable pictures.
var ErrEmpty = errors.New("no images found")

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".bmp": true, ".tif": true, ".tiff": true,
}

type entry struct {
	name string
	load func() (image.Image, error)
	img  *image.RGBA
}

// Library is an ordered list of pictures decoded on first use. All pictures
// are fitted to the library size, if one is set, and flattened onto white so
// transparent areas are not mistaken for outlines.
type Library struct {
	mu      sync.Mutex
	size    image.Point
	entries []*entry
}

// LoadDir lists the pictures in dir in natural order. Nothing is decoded
// until Image is called.
func LoadDir(dir string, size image.Point) (*Library, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, de := range des {
		if de.IsDir() || !imageExts[strings.ToLower(filepath.Ext(de.Name()))] {
			continue
		}
		names = append(names, de.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmpty)
	}
	sort.Slice(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
	l := &Library{size: size}
	for _, n := range names {
		path := filepath.Join(dir, n)
		l.entries = append(l.entries, &entry{
			name: n,
			load: func() (image.Image, error) {
				return imaging.Open(path, imaging.AutoOrientation(true))
			},
		})
	}
	return l, nil
}

// FromImages wraps already decoded pictures, keeping their sizes.
func FromImages(imgs ...image.Image) *Library {
	l := &Library{}
	for _, img := range imgs {
		l.Append(img)
	}
	return l
}

// Len is the number of pictures.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Size is the size pictures are fitted to, or zero when they keep their own.
func (l *Library) Size() image.Point { return l.size }

// Name is a short label for picture i.
func (l *Library) Name(i int) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.entries) {
		return ""
	}
	return l.entries[i].name
}

// Image decodes picture i, caching the result. The returned image must not
// be modified.
func (l *Library) Image(i int) (*image.RGBA, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.entries) {
		return nil, fmt.Errorf("image %d out of range [0,%d)", i, len(l.entries))
	}
	e := l.entries[i]
	if e.img != nil {
		return e.img, nil
	}
	src, err := e.load()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", e.name, err)
	}
	e.img = l.fit(src)
	return e.img, nil
}

// Append adds a picture and returns its index.
func (l *Library) Append(img image.Image) int {
	rgba := l.fit(img)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, &entry{
		name: fmt.Sprintf("picture %d", len(l.entries)+1),
		img:  rgba,
	})
	return len(l.entries) - 1
}

func (l *Library) fit(src image.Image) *image.RGBA {
	if l.size.X > 0 && l.size.Y > 0 && src.Bounds().Size() != l.size {
		src = imaging.Fill(src, l.size.X, l.size.Y, imaging.Center, imaging.Lanczos)
	}
	b := src.Bounds()
	out := image.NewRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(out, out.Rect, image.NewUniform(paper), image.Point{}, draw.Src)
	draw.Draw(out, out.Rect, src, b.Min, draw.Over)
	return out
}

// naturalLess orders strings with embedded numbers by value, so "pic2"
// sorts before "pic10".
func naturalLess(a, b string) bool {
	for a != "" && b != "" {
		da, db := isDigit(a[0]), isDigit(b[0])
		switch {
		case da && db:
			na, ra := splitDigits(a)
			nb, rb := splitDigits(b)
			ta := strings.TrimLeft(na, "0")
			tb := strings.TrimLeft(nb, "0")
			if len(ta) != len(tb) {
				return len(ta) < len(tb)
			}
			if ta != tb {
				return ta < tb
			}
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			a, b = ra, rb
		default:
			ca, cb := lower(a[0]), lower(b[0])
			if ca != cb {
				return ca < cb
			}
			a, b = a[1:], b[1:]
		}
	}
	return len(a) < len(b)
}

func splitDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
