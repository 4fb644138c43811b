package headlessterm

import (
	"image/color"
	"math"
)

// Hsla is a color in the hue/saturation/lightness/alpha space, the space the
// renderer composites in. Hue is normalized to [0,1), not degrees.
type Hsla struct {
	H float32
	S float32
	L float32
	A float32
}

// FromRGB8 converts an 8-bit RGB triple to Hsla with alpha=1.
func FromRGB8(r, g, b uint8) Hsla {
	rf := float64(r) / 255.0
	gf := float64(g) / 255.0
	bf := float64(b) / 255.0

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	l := (max + min) / 2.0

	if max == min {
		return Hsla{H: 0, S: 0, L: float32(l), A: 1}
	}

	delta := max - min

	var s float64
	if l > 0.5 {
		s = delta / (2.0 - max - min)
	} else {
		s = delta / (max + min)
	}

	var h float64
	switch max {
	case rf:
		h = math.Mod((gf-bf)/delta, 6.0)
		if gf < bf {
			h += 6.0
		}
	case gf:
		h = (bf-rf)/delta + 2.0
	default:
		h = (rf-gf)/delta + 4.0
	}
	h *= 60.0
	if h < 0 {
		h += 360.0
	}

	return Hsla{H: float32(h / 360.0), S: float32(s), L: float32(l), A: 1}
}

// ToRGBA converts back to 8-bit sRGB for host surfaces that only speak RGBA
// (screenshots, dynamic-color query responses).
func (c Hsla) ToRGBA() color.RGBA {
	if c.S == 0 {
		v := uint8(math.Round(float64(c.L) * 255.0))
		return color.RGBA{R: v, G: v, B: v, A: uint8(math.Round(float64(c.A) * 255.0))}
	}

	h := float64(c.H)
	s := float64(c.S)
	l := float64(c.L)

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	hueToRGB := func(p, q, t float64) float64 {
		if t < 0 {
			t += 1
		}
		if t > 1 {
			t -= 1
		}
		switch {
		case t < 1.0/6.0:
			return p + (q-p)*6*t
		case t < 1.0/2.0:
			return q
		case t < 2.0/3.0:
			return p + (q-p)*(2.0/3.0-t)*6
		default:
			return p
		}
	}

	r := hueToRGB(p, q, h+1.0/3.0)
	g := hueToRGB(p, q, h)
	b := hueToRGB(p, q, h-1.0/3.0)

	return color.RGBA{
		R: uint8(math.Round(r * 255.0)),
		G: uint8(math.Round(g * 255.0)),
		B: uint8(math.Round(b * 255.0)),
		A: uint8(math.Round(float64(c.A) * 255.0)),
	}
}

// dim scales lightness down for NamedColorDim* and NamedColorDimForeground.
func (c Hsla) dim() Hsla {
	c.L *= 0.7
	return c
}

// bright scales lightness up (clamped to 1) for NamedColorBrightForeground.
func (c Hsla) bright() Hsla {
	l := c.L * 1.2
	if l > 1 {
		l = 1
	}
	c.L = l
	return c
}

// Palette holds the 16 ANSI colors, the 256-entry extended table, and the
// three distinguished special colors (foreground, background, cursor).
//
// Invariants: Extended[0:16] == Ansi; Extended[16:232] is the 6x6x6 color
// cube with component levels {0,95,135,175,215,255}; Extended[232:256] is a
// 24-step grayscale ramp at values 8+10i.
type Palette struct {
	Ansi       [16]Hsla
	Extended   [256]Hsla
	Foreground Hsla
	Background Hsla
	Cursor     Hsla
}

// cubeLevel maps a cube coordinate in [0,5] to its 8-bit component value.
func cubeLevel(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(55 + n*40)
}

// DefaultColorPalette builds the palette described in the glossary: the
// default ANSI 16, the computed 6x6x6 cube and grayscale ramp for the
// extended range, and default foreground/background/cursor colors.
func DefaultColorPalette() Palette {
	ansiRGB := [16][3]uint8{
		{0x00, 0x00, 0x00}, {0xCC, 0x00, 0x00}, {0x4E, 0x9A, 0x06}, {0xC4, 0xA0, 0x00},
		{0x34, 0x65, 0xA4}, {0x75, 0x50, 0x7B}, {0x06, 0x98, 0x9A}, {0xD3, 0xD7, 0xCF},
		{0x55, 0x57, 0x53}, {0xEF, 0x29, 0x29}, {0x8A, 0xE2, 0x34}, {0xFC, 0xE9, 0x4F},
		{0x72, 0x9F, 0xCF}, {0xAD, 0x7F, 0xA8}, {0x34, 0xE2, 0xE2}, {0xEE, 0xEE, 0xEC},
	}

	var p Palette
	for i, rgb := range ansiRGB {
		p.Ansi[i] = FromRGB8(rgb[0], rgb[1], rgb[2])
	}

	for i := 0; i < 16; i++ {
		p.Extended[i] = p.Ansi[i]
	}

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.Extended[i] = FromRGB8(cubeLevel(r), cubeLevel(g), cubeLevel(b))
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p.Extended[232+j] = FromRGB8(gray, gray, gray)
	}

	p.Foreground = FromRGB8(0xd4, 0xd4, 0xd4)
	p.Background = FromRGB8(0x1e, 0x1e, 0x1e)
	p.Cursor = FromRGB8(0xff, 0xff, 0xff)

	return p
}

// Resolve maps a color.Color reference (as stored on a Cell) to an Hsla
// value. overrides, when non-nil, takes precedence for indices 0-15 (the
// "current color table" override mentioned in the data model).
func (p Palette) Resolve(c color.Color, overrides *Palette) Hsla {
	if c == nil {
		return p.Foreground
	}

	switch v := c.(type) {
	case color.RGBA:
		return FromRGB8(v.R, v.G, v.B)
	case *IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return p.Extended[v.Index]
		}
		return p.Foreground
	case *NamedColor:
		return p.resolveNamed(v.Name, overrides)
	default:
		r, g, b, _ := c.RGBA()
		return FromRGB8(uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func (p Palette) resolveNamed(name int, overrides *Palette) Hsla {
	if overrides != nil && name >= 0 && name < 16 {
		return overrides.Ansi[name]
	}

	switch {
	case name >= 0 && name < 16:
		return p.Ansi[name]
	case name == NamedColorForeground:
		return p.Foreground
	case name == NamedColorBackground:
		return p.Background
	case name == NamedColorCursor:
		return p.Cursor
	case name >= NamedColorDimBlack && name <= NamedColorDimWhite:
		return p.Ansi[name-NamedColorDimBlack].dim()
	case name == NamedColorBrightForeground:
		return p.Foreground.bright()
	case name == NamedColorDimForeground:
		return p.Foreground.dim()
	default:
		return p.Foreground
	}
}

// ResolveRGBA is a convenience wrapper around Resolve for image/color.RGBA
// consumers, such as the OSC 10/11/12 dynamic-color query responses (via
// resolveDefaultColor).
func ResolveRGBA(p Palette, c color.Color, fg bool) color.RGBA {
	if c == nil {
		if fg {
			return p.Foreground.ToRGBA()
		}
		return p.Background.ToRGBA()
	}
	return p.Resolve(c, nil).ToRGBA()
}

// PaletteBuilder provides fluent construction of a custom Palette, mirroring
// changes to ANSI indices 0-15 into the extended table as required by the
// invariant extended[0:16]==ansi.
type PaletteBuilder struct {
	p Palette
}

// NewPaletteBuilder starts from the default palette.
func NewPaletteBuilder() *PaletteBuilder {
	return &PaletteBuilder{p: DefaultColorPalette()}
}

// Background overrides the default background color.
func (b *PaletteBuilder) Background(r, g, bch uint8) *PaletteBuilder {
	b.p.Background = FromRGB8(r, g, bch)
	return b
}

// Foreground overrides the default foreground color.
func (b *PaletteBuilder) Foreground(r, g, bch uint8) *PaletteBuilder {
	b.p.Foreground = FromRGB8(r, g, bch)
	return b
}

// Cursor overrides the default cursor color.
func (b *PaletteBuilder) Cursor(r, g, bch uint8) *PaletteBuilder {
	b.p.Cursor = FromRGB8(r, g, bch)
	return b
}

// AnsiColor overrides ANSI index idx (0-15) and mirrors the change into the
// extended table, preserving the extended[0:16]==ansi invariant.
func (b *PaletteBuilder) AnsiColor(idx int, r, g, bch uint8) *PaletteBuilder {
	if idx < 0 || idx >= 16 {
		return b
	}
	c := FromRGB8(r, g, bch)
	b.p.Ansi[idx] = c
	b.p.Extended[idx] = c
	return b
}

// Build returns the constructed palette.
func (b *PaletteBuilder) Build() Palette {
	return b.p
}

// DefaultPalette is the legacy 256-entry RGBA table kept for backward
// compatibility with code that indexes directly into an image/color.RGBA
// array rather than going through Palette.Resolve (the OSC 10/11/12 query
// response for an index with no custom color set).
var DefaultPalette [256]color.RGBA

// DefaultForeground, DefaultBackground and DefaultCursorColor mirror the
// Palette defaults in RGBA form for the same legacy callers.
var (
	DefaultForeground  color.RGBA
	DefaultBackground  color.RGBA
	DefaultCursorColor color.RGBA
)

func init() {
	pal := DefaultColorPalette()
	for i, c := range pal.Extended {
		DefaultPalette[i] = c.ToRGBA()
	}
	DefaultForeground = pal.Foreground.ToRGBA()
	DefaultBackground = pal.Background.ToRGBA()
	DefaultCursorColor = pal.Cursor.ToRGBA()
}

// Named color indices for semantic colors (used with NamedColor).
const (
	NamedColorForeground       = 256 // Default foreground text color
	NamedColorBackground       = 257 // Default background color
	NamedColorCursor           = 258 // Cursor color
	NamedColorDimBlack         = 259 // Dim black
	NamedColorDimRed           = 260 // Dim red
	NamedColorDimGreen         = 261 // Dim green
	NamedColorDimYellow        = 262 // Dim yellow
	NamedColorDimBlue          = 263 // Dim blue
	NamedColorDimMagenta       = 264 // Dim magenta
	NamedColorDimCyan          = 265 // Dim cyan
	NamedColorDimWhite         = 266 // Dim white
	NamedColorBrightForeground = 267 // Bright foreground
	NamedColorDimForeground    = 268 // Dim foreground
)

// resolveDefaultColor converts a color.Color to RGBA using the default
// palette, kept for existing call sites that haven't been threaded through
// to an explicit Palette value yet.
func resolveDefaultColor(c color.Color, fg bool) color.RGBA {
	return ResolveRGBA(DefaultColorPalette(), c, fg)
}
