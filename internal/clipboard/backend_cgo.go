//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

const needsDisplay = true

type designBackend struct{}

func newBackend() backend { return designBackend{} }

func (designBackend) init() error { return clipboard.Init() }

func (designBackend) write(f format, data []byte) error {
	clipboard.Write(designFormat(f), data)
	return nil
}

func (designBackend) read(f format) ([]byte, error) {
	return clipboard.Read(designFormat(f)), nil
}

func designFormat(f format) clipboard.Format {
	if f == formatPNG {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}
