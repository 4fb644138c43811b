package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	headlessterm "github.com/embeddedterm/goterm"
)

var errHexColor = errors.New("invalid hex color")

// demoConfig is the optional ~/.termdemo.toml overlay: font and palette
// tweaks layered on top of termview.DefaultConfig(), in the same
// decode-into-struct style the retrieval pack's vee CLI uses for its own
// TOML config file.
type demoConfig struct {
	FontFamily string  `toml:"font_family"`
	FontSizePx float64 `toml:"font_size_px"`
	Shell      string  `toml:"shell"`

	Palette struct {
		Background string `toml:"background"`
		Foreground string `toml:"foreground"`
		Cursor     string `toml:"cursor"`
	} `toml:"palette"`
}

// loadDemoConfig reads ~/.termdemo.toml if present. A missing file is not
// an error; the demo runs on defaults.
func loadDemoConfig() (demoConfig, error) {
	var cfg demoConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}
	path := filepath.Join(home, ".termdemo.toml")

	if _, statErr := os.Stat(path); statErr != nil {
		return cfg, nil
	}

	_, err = toml.DecodeFile(path, &cfg)
	return cfg, err
}

// applyPaletteOverrides parses the config's hex color overrides (if any)
// via the PaletteBuilder fluent API. Unset or unparseable fields leave the
// default palette's color in place.
func applyPaletteOverrides(cfg demoConfig) headlessterm.Palette {
	b := headlessterm.NewPaletteBuilder()
	if r, g, bch, ok := parseHexColor(cfg.Palette.Background); ok {
		b = b.Background(r, g, bch)
	}
	if r, g, bch, ok := parseHexColor(cfg.Palette.Foreground); ok {
		b = b.Foreground(r, g, bch)
	}
	if r, g, bch, ok := parseHexColor(cfg.Palette.Cursor); ok {
		b = b.Cursor(r, g, bch)
	}
	return b.Build()
}

// parseHexColor parses a "#rrggbb" string into its component bytes.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	if err := parseHexByte(s[1:3], &r); err != nil {
		return 0, 0, 0, false
	}
	if err := parseHexByte(s[3:5], &g); err != nil {
		return 0, 0, 0, false
	}
	if err := parseHexByte(s[5:7], &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func parseHexByte(s string, out *uint8) error {
	var v uint8
	for _, c := range []byte(s) {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= c - '0'
		case c >= 'a' && c <= 'f':
			v |= c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v |= c - 'A' + 10
		default:
			return errHexColor
		}
	}
	*out = v
	return nil
}
