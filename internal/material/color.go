package material

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGBA color. In YAML it is written as "#RGB", "#RRGGBB" or "#RRGGBBAA".
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA. Alpha defaults to 255.
func ParseHex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) < 4 || s[0] != '#' {
		return Color{}, fmt.Errorf("color %q: expected #RGB or #RRGGBB", s)
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Color{}, fmt.Errorf("color %q: invalid hex digit %q", s, hex[i])
		}
	}
	switch len(hex) {
	case 3:
		// #RGB -> RR GG BB
		return RGB(hexByte(hex[0])*17, hexByte(hex[1])*17, hexByte(hex[2])*17), nil
	case 6:
		return RGB(hexPair(hex[0], hex[1]), hexPair(hex[2], hex[3]), hexPair(hex[4], hex[5])), nil
	case 8:
		c := RGB(hexPair(hex[0], hex[1]), hexPair(hex[2], hex[3]), hexPair(hex[4], hex[5]))
		c.A = hexPair(hex[6], hex[7])
		return c, nil
	}
	return Color{}, fmt.Errorf("color %q: expected 3, 6 or 8 hex digits", s)
}

// MustHex is ParseHex for package-level defaults. It panics on malformed input.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the color as #RRGGBB, or #RRGGBBAA when not opaque.
func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Floats returns the color as normalized [r, g, b, a] for shader uniforms.
func (c Color) Floats() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseHex(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func hexPair(hi, lo byte) uint8 {
	return hexByte(hi)<<4 + hexByte(lo)
}

func hexByte(c byte) uint8 {
	v, _ := hexDigit(c)
	return v
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
