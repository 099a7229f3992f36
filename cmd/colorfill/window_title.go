package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/example/colorfill/internal/appstate"
)

type titleOptions struct {
	Picture string // name of the first picture shown
	Source  string // image directory, empty for the built-in drawings
	Output  string
	Extras  []string
}

func windowTitle(opts titleOptions) string {
	parts := []string{appstate.ProgramTitle}

	if pic := strings.TrimSpace(opts.Picture); pic != "" {
		parts = append(parts, pic)
	}

	source := strings.TrimSpace(opts.Source)
	if source == "" {
		source = "built-in drawings"
	} else {
		source = filepath.Base(source)
	}
	parts = append(parts, source)

	extras := make([]string, 0, len(opts.Extras)+3)
	if out := strings.TrimSpace(opts.Output); out != "" {
		extras = append(extras, fmt.Sprintf("saves to %s", out))
	}
	if v := strings.TrimSpace(version); v != "" {
		extras = append(extras, fmt.Sprintf("v%s", v))
	}
	if c := strings.TrimSpace(commit); c != "" {
		extras = append(extras, fmt.Sprintf("commit %s", c))
	}
	extras = append(extras, opts.Extras...)

	return strings.Join(append(parts, extras...), " - ")
}
