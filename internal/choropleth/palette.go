// Package choropleth maps sparse regional datasets onto color scales:
// range extraction, value-to-color classification, legend intervals, and
// summary statistics. Every function is pure and safe for concurrent use.
package choropleth

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
)

// ValueMap associates region identifiers with observed values. A nil entry
// means the region has no data; NaN and infinities are treated the same way.
type ValueMap map[string]*float64

// RGB is a single palette color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Hex renders the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NoData is returned for regions without a usable value. It is not part of
// any palette.
var NoData = RGB{R: 128, G: 128, B: 128}

// Palette is an ordered low-to-high color sequence. It must contain at least
// one entry and is never mutated by this package.
type Palette []RGB

// ParseHex parses a "#rrggbb" or "rrggbb" color string.
func ParseHex(s string) (RGB, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}, eris.Errorf("choropleth: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, eris.Wrapf(err, "choropleth: parse hex color %q", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// ParsePalette parses an ordered list of hex color strings.
func ParsePalette(hexes []string) (Palette, error) {
	if len(hexes) == 0 {
		return nil, eris.New("choropleth: palette must have at least one color")
	}
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// valid reports whether v is a usable data point.
func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
