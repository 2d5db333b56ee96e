package gopresentation

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an ARGB color written as eight upper-case hex digits, alpha
// first. "FF1F4E79" is an opaque dark blue.
type Color struct {
	ARGB string
}

var (
	ColorBlack  = Color{ARGB: "FF000000"}
	ColorWhite  = Color{ARGB: "FFFFFFFF"}
	ColorRed    = Color{ARGB: "FFFF0000"}
	ColorGreen  = Color{ARGB: "FF00FF00"}
	ColorBlue   = Color{ARGB: "FF0000FF"}
	ColorYellow = Color{ARGB: "FFFFFF00"}
)

// ParseColor reads "RRGGBB" or "AARRGGBB" in either case, with or without
// a leading '#'. Six digits are opaque.
func ParseColor(s string) (Color, error) {
	hex := strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(hex) == 6 {
		hex = "FF" + hex
	}
	if !isValidARGB(hex) {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	return Color{ARGB: hex}, nil
}

// NewColor is ParseColor for literals: anything unreadable is black.
func NewColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		return ColorBlack
	}
	return c
}

func isValidARGB(s string) bool {
	if len(s) != 8 || s != strings.ToUpper(s) {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

// packed returns the color as 0xAARRGGBB, or 0 when ARGB is malformed.
func (c Color) packed() uint32 {
	if len(c.ARGB) != 8 {
		return 0
	}
	v, err := strconv.ParseUint(c.ARGB, 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}

func (c Color) GetAlpha() uint8 { return uint8(c.packed() >> 24) }
func (c Color) GetRed() uint8   { return uint8(c.packed() >> 16) }
func (c Color) GetGreen() uint8 { return uint8(c.packed() >> 8) }
func (c Color) GetBlue() uint8  { return uint8(c.packed()) }
