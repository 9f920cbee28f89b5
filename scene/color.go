package scene

import (
	"fmt"
	"image/color"
)

// Color is an 8-bit ARGB color that round-trips through the #AARRGGBB hex
// form used by saved maps.
type Color struct {
	R, G, B, A uint8
}

// Default colors for new entities.
var (
	DefaultObjectFill = Color{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff} // light gray
	DefaultZoneFill   = Color{R: 0xff, A: 0x3c}                   // translucent red
	DefaultZoneEdge   = Color{R: 0xff, A: 0xff}                   // red
)

// RGBA implements image/color.Color. Channels are not premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Hex returns the color in #AARRGGBB form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// ParseColor parses #AARRGGBB or #RRGGBB. Anything malformed yields the
// fallback instead of an error: a corrupt color in a save file must not
// abort the load.
func ParseColor(s string, fallback Color) Color {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	digits := s[1:]
	var a, r, g, b uint8
	switch len(digits) {
	case 6:
		a = 0xff
		if _, err := fmt.Sscanf(digits, "%02x%02x%02x", &r, &g, &b); err != nil {
			return fallback
		}
	case 8:
		if _, err := fmt.Sscanf(digits, "%02x%02x%02x%02x", &a, &r, &g, &b); err != nil {
			return fallback
		}
	default:
		return fallback
	}
	return Color{R: r, G: g, B: b, A: a}
}
