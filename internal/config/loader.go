package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(cfg.String()), 0o644)
}

// configDir is $XDG_CONFIG_HOME/colorfill, falling back to ~/.config.
func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "colorfill")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "colorfill")
}

// DefaultPath is where Save writes when no config file exists yet.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.rc")
}

// candidates lists config locations in precedence order: the build-time
// override, COLORFILL_CONFIG, .colorfillrc in the working directory for dev
// builds, then the user config directory.
func (l *Loader) candidates() []string {
	var paths []string
	if l.OverridePath != "" {
		paths = append(paths, l.OverridePath)
	}
	if env := os.Getenv("COLORFILL_CONFIG"); env != "" {
		paths = append(paths, env)
	}
	if l.Version == "dev" {
		if wd, err := os.Getwd(); err == nil {
			paths = append(paths, filepath.Join(wd, ".colorfillrc"))
		}
	}
	dir := configDir()
	return append(paths, filepath.Join(dir, "config.rc"), filepath.Join(dir, "colorfill.rc"))
}

// GetConfigPath returns the first existing config file, or "" when there is none.
func (l *Loader) GetConfigPath() string {
	for _, p := range l.candidates() {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}
