package easel

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGBA color. Alpha 255 is fully opaque.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	ColorBlack = Color{0, 0, 0, 255}
	ColorWhite = Color{255, 255, 255, 255}
)

// RGB returns an opaque color from its red, green and blue channels.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// Hex returns an opaque color from a 0xRRGGBB literal.
func Hex(hex uint32) Color {
	return Color{uint8(hex >> 16), uint8(hex >> 8), uint8(hex), 255}
}

// HSV returns an opaque color from hue in degrees and saturation/value in [0, 1].
func HSV(h, s, v float64) Color {
	return fromColorful(colorful.Hsv(h, s, v))
}

// hues is the named palette accepted by ParseColor.
var hues = map[string]uint32{
	"black":   0x000000,
	"white":   0xffffff,
	"slate":   0x94a3b8,
	"gray":    0x9ca3af,
	"zinc":    0xa1a1aa,
	"neutral": 0xa3a3a3,
	"stone":   0xa8a29e,
	"red":     0xf87171,
	"orange":  0xfb923c,
	"amber":   0xfbbf24,
	"yellow":  0xfacc15,
	"lime":    0xa3e635,
	"green":   0x4ade80,
	"emerald": 0x34d399,
	"teal":    0x2dd4bf,
	"cyan":    0x22d3ee,
	"sky":     0x38bdf8,
	"blue":    0x60a5fa,
	"indigo":  0x818cf8,
	"purple":  0xa78bfa,
	"fuchsia": 0xe879f9,
	"pink":    0xf472b6,
	"rose":    0xfb7185,
}

// HueNames returns the names accepted by ParseColor, sorted.
func HueNames() []string {
	names := make([]string, 0, len(hues))
	for name := range hues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseColor accepts a "#rrggbb" or "#rrggbbaa" hex string or a palette
// name (case-insensitive).
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		alpha := uint64(255)
		hex := s
		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
			}
			alpha, hex = a, s[:7]
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", ErrUnknownColor, s)
		}
		return fromColorful(c).WithAlpha(uint8(alpha)), nil
	}
	if hex, ok := hues[strings.ToLower(s)]; ok {
		return Hex(hex), nil
	}
	return Color{}, fmt.Errorf("%w: %q (valid names: %s)", ErrUnknownColor, s, strings.Join(HueNames(), ", "))
}

// String returns the color as "#rrggbb", with a trailing alpha pair when not opaque.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseColor.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Floats returns the channels normalized to [0, 1], not premultiplied.
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// lerpColor interpolates the RGB channels and keeps the alpha of from.
func lerpColor(from, to Color, t float64) Color {
	return Color{
		R: lerpChannel(from.R, to.R, t),
		G: lerpChannel(from.G, to.G, t),
		B: lerpChannel(from.B, to.B, t),
		A: from.A,
	}
}

// lerpChannel rounds to the nearest integer and clamps to [0, 255]. Easings
// such as back or elastic overshoot, so the clamp is load-bearing.
func lerpChannel(from, to uint8, t float64) uint8 {
	v := math.Round(float64(from) + (float64(to)-float64(from))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b, 255}
}
