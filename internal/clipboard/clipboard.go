// Package clipboard copies pictures and colour specs to and from the system
// clipboard. Pictures travel as PNG.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

type format int

const (
	formatText format = iota
	formatPNG
)

func (f format) String() string {
	if f == formatPNG {
		return "image"
	}
	return "text"
}

// backend is one platform implementation.
type backend interface {
	init() error
	write(f format, data []byte) error
	read(f format) ([]byte, error)
}

var (
	initOnce     sync.Once
	initErr      error
	active       backend = newBackend()
	errNoDisplay         = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrEmpty reports that the clipboard holds nothing in the requested form.
	ErrEmpty = errors.New("clipboard is empty")
)

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay && !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = active.init()
	})
	return initErr
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return active.write(formatPNG, buf.Bytes())
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	data, err := read(formatPNG)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return active.write(formatText, []byte(text))
}

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	data, err := read(formatText)
	if err != nil {
		return "", err
	}
	// Some X11 owners append a NUL to STRING replies.
	return string(bytes.TrimSuffix(data, []byte{0})), nil
}

func read(f format) ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := active.read(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no %s data", ErrEmpty, f)
	}
	return data, nil
}
