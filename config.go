package rush

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default configuration values, used for missing files and missing or
// out-of-range keys.
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultFontSize     = 48
	DefaultWindowTitle  = "rush"
)

// Config is the yaml-file configuration surface: window geometry, font
// selection, and palette. Colors are "#RRGGBB" or "#RRGGBBAA" hex
// strings; empty strings keep the default palette entry.
type Config struct {
	FontPath string `yaml:"font_path"`
	FontSize int    `yaml:"font_size"`

	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`

	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Cursor     string `yaml:"cursor"`
}

// DefaultConfig returns the stock configuration: an 800x600 window, a
// 48px face, and the default palette. FontPath is empty; callers fall
// back to an embedded face when no path is configured.
func DefaultConfig() Config {
	return Config{
		FontSize: DefaultFontSize,
		Width:    DefaultWindowWidth,
		Height:   DefaultWindowHeight,
		Title:    DefaultWindowTitle,
	}
}

// LoadConfig reads the yaml file at path over the defaults. A missing
// file is not an error: the defaults come back as-is. Unknown keys are
// ignored; zero or negative numeric values fall back to their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize pulls out-of-range numeric values back to the defaults.
func (c *Config) normalize() {
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.Width <= 0 {
		c.Width = DefaultWindowWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultWindowHeight
	}
	if c.Title == "" {
		c.Title = DefaultWindowTitle
	}
}

// Style resolves the configured hex colors onto the default palette.
// Entries left empty keep their defaults; malformed hex is an error.
func (c Config) Style() (Style, error) {
	s := DefaultStyle()

	for _, entry := range []struct {
		name string
		hex  string
		dst  *uint32
	}{
		{"foreground", c.Foreground, &s.Foreground},
		{"background", c.Background, &s.Background},
		{"cursor", c.Cursor, &s.Cursor},
	} {
		if entry.hex == "" {
			continue
		}
		color, err := parseHexColor(entry.hex)
		if err != nil {
			return s, fmt.Errorf("config %s: %w", entry.name, err)
		}
		*entry.dst = color
	}

	return s, nil
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA" into a packed RGBA
// color. A missing alpha component means opaque.
func parseHexColor(s string) (uint32, error) {
	if len(s) == 0 || s[0] != '#' {
		return 0, fmt.Errorf("hex color %q: missing '#' prefix", s)
	}

	digits := s[1:]
	if len(digits) != 6 && len(digits) != 8 {
		return 0, fmt.Errorf("hex color %q: want #RRGGBB or #RRGGBBAA", s)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("hex color %q: %v", s, err)
	}

	if len(digits) == 6 {
		v = v<<8 | 0xFF
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
