package ecolor

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/abworrall/skylayers/pkg/emath"
)

var ErrUnknownColor = errors.New("unknown color")

// A Color is the color identity given to a layer: what the user (or the
// catalog) called it, plus its sRGB value. The embedded colorful.Color
// implements color.Color.
type Color struct {
	Name string // "red", "turquoise", "#ff8800"
	colorful.Color
}

// Parse accepts any of the SVG 1.1 color keywords, or #rgb / #rrggbb hex.
func Parse(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrUnknownColor)
	}

	if strings.HasPrefix(name, "#") {
		hex := expandShortHex(name)
		if len(hex) != 7 {
			return Color{}, fmt.Errorf("parse color %q: %w", s, ErrUnknownColor)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return Color{}, fmt.Errorf("parse color %q: %w", s, ErrUnknownColor)
		}
		return Color{Name: name, Color: c}, nil
	}

	rgba, exists := colornames.Map[name]
	if !exists {
		return Color{}, fmt.Errorf("parse color %q: %w", s, ErrUnknownColor)
	}
	c, _ := colorful.MakeColor(rgba)
	return Color{Name: name, Color: c}, nil
}

// MustParse is for palettes compiled into the binary.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromColor wraps an arbitrary color (e.g. from a color picker dialog); it
// is named by its hex value.
func FromColor(col color.Color) Color {
	c, ok := colorful.MakeColor(col)
	if !ok {
		// Fully transparent; there is nothing sensible to compose with
		return Color{Name: "#000000"}
	}
	return Color{Name: c.Hex(), Color: c}
}

func (c Color) String() string { return c.Name }
func (c Color) IsZero() bool   { return c.Name == "" }

// Equal compares the color values, not the names; "red" == "#ff0000".
func (c Color) Equal(o Color) bool { return c.Hex() == o.Hex() }

// Linear returns the color in linear RGB, which is what the compositor
// accumulates in.
func (c Color) Linear() emath.Vec3 {
	r, g, b := c.LinearRgb()
	return emath.Vec3{r, g, b}
}

func expandShortHex(s string) string {
	if len(s) != 4 {
		return s
	}
	return string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
}
