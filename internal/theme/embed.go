package theme

import (
	"embed"
	"io/fs"
	"strings"
)

// EmbeddedThemes holds the themes shipped inside the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Names lists the embedded theme names without extension.
func Names() []string {
	entries, err := fs.ReadDir(EmbeddedThemes, "defaults")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if n, ok := strings.CutSuffix(e.Name(), ".theme"); ok {
			out = append(out, n)
		}
	}
	return out
}
