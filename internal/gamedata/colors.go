package gamedata

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

// ParseHexColor converts a hex color string (e.g., "#C8826E" or "C8826E") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, errors.Errorf("invalid hex color length: %q", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, errors.Wrapf(err, "invalid hex color %q", hex)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// MustParseHexColor converts a hex color string to tcell.Color, panicking on error.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// Terrain colours, shared by the renderer and the scenario file defaults.
var (
	SkyColor    = MustParseHexColor("#D7D4FF")
	EarthColor  = MustParseHexColor("#C8826E")
	TunnelColor = MustParseHexColor("#641E0A")
)

// ColorOr parses a hex color code, returning fallback if it is invalid.
func ColorOr(hex string, fallback tcell.Color) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return color
}
