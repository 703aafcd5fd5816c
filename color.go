package textnode

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Components are not premultiplied.
type Color struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA2 creates a color from RGBA components.
func RGBA2(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(nc.R) / 255,
		G: float64(nc.G) / 255,
		B: float64(nc.B) / 255,
		A: float64(nc.A) / 255,
	}
}

// NRGBA converts the color to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: uint8(clamp255(c.A*255 + 0.5)),
	}
}

// Key returns the color packed as 0xAARRGGBB. Colors that render identically
// at 8-bit precision share a key.
func (c Color) Key() uint32 {
	n := c.NRGBA()
	return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Premultiply returns a premultiplied color.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A <= 0
}

// String returns the color as #AARRGGBB.
func (c Color) String() string {
	return fmt.Sprintf("#%08x", c.Key())
}

// ParseColor parses a color as written in markup attributes and
// configuration files: a CSS color name, "#rgb", "#rrggbb", or the
// alpha-first "#aarrggbb" form.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	alpha := 1.0
	rgb := s
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("textnode: invalid color %q: %w", s, err)
		}
		alpha, rgb = float64(a)/255, "#"+s[3:]
	}
	cf, err := colorful.Hex(rgb)
	if err != nil {
		return Color{}, fmt.Errorf("textnode: invalid color %q: %w", s, err)
	}
	r, g, b := cf.Clamped().RGB255()
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: alpha}, nil
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Red         = RGB(1, 0, 0)
	Green       = RGB(0, 128.0/255, 0)
	Blue        = RGB(0, 0, 1)
	Yellow      = RGB(1, 1, 0)
	Cyan        = RGB(0, 1, 1)
	Magenta     = RGB(1, 0, 1)
	Gray        = RGB(128.0/255, 128.0/255, 128.0/255)
	Transparent = RGBA2(0, 0, 0, 0)
)

var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"lime":        RGB(0, 1, 0),
	"blue":        Blue,
	"navy":        RGB(0, 0, 128.0/255),
	"yellow":      Yellow,
	"cyan":        Cyan,
	"aqua":        Cyan,
	"magenta":     Magenta,
	"fuchsia":     Magenta,
	"gray":        Gray,
	"grey":        Gray,
	"silver":      RGB(192.0/255, 192.0/255, 192.0/255),
	"maroon":      RGB(128.0/255, 0, 0),
	"purple":      RGB(128.0/255, 0, 128.0/255),
	"olive":       RGB(128.0/255, 128.0/255, 0),
	"teal":        RGB(0, 128.0/255, 128.0/255),
	"orange":      RGB(1, 165.0/255, 0),
	"transparent": Transparent,
}
