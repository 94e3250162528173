package render

import (
	"fmt"
	"math"
	"strings"
)

// RGB is an opaque colour.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText encodes the colour as #rrggbb.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText decodes #rrggbb.
func (c *RGB) UnmarshalText(b []byte) error {
	v, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseHex parses a #rrggbb colour.
func ParseHex(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return c, nil
}

// Named colours used by the chart.
var (
	Blue       = RGB{0x00, 0x00, 0xff}
	DodgerBlue = RGB{0x1e, 0x90, 0xff}
	LightBlue  = RGB{0xad, 0xd8, 0xe6}
	Gray       = RGB{0x80, 0x80, 0x80}
	LightCoral = RGB{0xf0, 0x80, 0x80}
	IndianRed  = RGB{0xcd, 0x5c, 0x5c}
	FireBrick  = RGB{0xb2, 0x22, 0x22}
	DarkRed    = RGB{0x8b, 0x00, 0x00}
	Black      = RGB{0x00, 0x00, 0x00}
	White      = RGB{0xff, 0xff, 0xff}
	Red        = RGB{0xff, 0x00, 0x00}
	LightGray  = RGB{0xd3, 0xd3, 0xd3}
	Beige      = RGB{0xf5, 0xf5, 0xdc}
)

// Stop is one colour stop of a scale, Pos in [0,1].
type Stop struct {
	Pos   float64
	Color RGB
}

// Scale is a piecewise linear colour scale over a clamped numeric domain.
type Scale struct {
	Stops []Stop
	Min   float64
	Max   float64
}

// PercentileScale runs from blue at 0 through gray at 50 to dark red at 100.
var PercentileScale = Scale{
	Stops: []Stop{
		{0.0, Blue},
		{0.2, DodgerBlue},
		{0.4, LightBlue},
		{0.5, Gray},
		{0.7, LightCoral},
		{0.8, IndianRed},
		{0.9, FireBrick},
		{1.0, DarkRed},
	},
	Min: 0,
	Max: 100,
}

// At returns the colour for v. Values outside [Min, Max] take the end colours.
func (s Scale) At(v float64) RGB {
	if len(s.Stops) == 0 {
		return Gray
	}
	t := 0.0
	if s.Max > s.Min {
		t = (v - s.Min) / (s.Max - s.Min)
	}
	if math.IsNaN(t) || t <= s.Stops[0].Pos {
		return s.Stops[0].Color
	}
	last := s.Stops[len(s.Stops)-1]
	if t >= last.Pos {
		return last.Color
	}
	for i := 1; i < len(s.Stops); i++ {
		hi := s.Stops[i]
		if t > hi.Pos {
			continue
		}
		lo := s.Stops[i-1]
		f := (t - lo.Pos) / (hi.Pos - lo.Pos)
		return RGB{
			R: lerp(lo.Color.R, hi.Color.R, f),
			G: lerp(lo.Color.G, hi.Color.G, f),
			B: lerp(lo.Color.B, hi.Color.B, f),
		}
	}
	return last.Color
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
