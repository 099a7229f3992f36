package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/colorfill/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			raw := strings.TrimSpace(line[1 : len(line)-1])
			currentSection = strings.ToLower(raw)
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := raw[len("theme."):]
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.Set(currentTheme, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "fill":
			err = setFillField(&cfg.Fill, key, value)
		case currentSection == "zoom":
			err = setZoomField(&cfg.Zoom, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d: error in section [%s]: %w", lineNo, section, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitKeyValue(line string) (string, string, bool) {
	sep := strings.IndexAny(line, "=:")
	if sep < 0 {
		return "", "", false
	}
	key := strings.TrimSpace(line[:sep])
	value := strings.TrimSpace(line[sep+1:])
	// Remove quotes if present
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "images":
		cfg.Images = value
	case "color", "colour":
		cfg.Color = value
	case "width":
		cfg.Width, err = parseSize(key, value)
	case "height":
		cfg.Height, err = parseSize(key, value)
	}
	return err
}

func parseSize(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size for key %s: %q", key, value)
	}
	return n, nil
}

func setFillField(f *Fill, key, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return fmt.Errorf("invalid tolerance for key %s: %q must be 0-255", key, value)
	}
	switch strings.ToLower(key) {
	case "boundary_tolerance":
		f.BoundaryTolerance = n
	case "match_tolerance":
		f.MatchTolerance = n
	}
	return nil
}

func setZoomField(z *Zoom, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid number for key %s: %q", key, value)
	}
	switch strings.ToLower(key) {
	case "min":
		z.Min = v
	case "max":
		z.Max = v
	case "step_in":
		z.StepIn = v
	case "step_out":
		z.StepOut = v
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}
