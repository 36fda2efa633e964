package marker

import (
	"fmt"
	"image/color"
)

// DefaultPrefix namespaces generated identifiers when no valid prefix is given.
const DefaultPrefix = "touch"

// DefaultRadius is the marker radius in pixels.
const DefaultRadius = 12

// Style is the rule shared by every marker in a pool.
type Style struct {
	Prefix      string
	Radius      int
	Padding     int
	BorderWidth int
	Fill        color.RGBA
	Border      color.RGBA
	Text        color.RGBA
}

// DefaultStyle returns the light-fill, dark-border circle style.
func DefaultStyle() Style {
	return Style{
		Prefix:      DefaultPrefix,
		Radius:      DefaultRadius,
		Padding:     3,
		BorderWidth: 2,
		Fill:        color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
		Border:      color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
		Text:        color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
	}
}

// Normalize fills zero fields from DefaultStyle and replaces an invalid prefix.
func (s Style) Normalize() Style {
	def := DefaultStyle()
	s.Prefix = NormalizePrefix(s.Prefix)
	if s.Radius <= 0 {
		s.Radius = def.Radius
	}
	if s.Padding < 0 {
		s.Padding = 0
	}
	if s.BorderWidth < 0 {
		s.BorderWidth = 0
	}
	if s.BorderWidth > s.Radius {
		s.BorderWidth = s.Radius
	}
	if s.Fill == (color.RGBA{}) {
		s.Fill = def.Fill
	}
	if s.Border == (color.RGBA{}) {
		s.Border = def.Border
	}
	if s.Text == (color.RGBA{}) {
		s.Text = def.Text
	}
	return s
}

// StyleID is the identifier the shared rule is registered under.
func (s Style) StyleID() string { return s.Prefix + "-TouchShow" }

// Class is the class name every marker carries.
func (s Style) Class() string { return s.Prefix + "-point" }

// MarkerID is the identifier of the marker in slot.
func (s Style) MarkerID(slot int) string { return fmt.Sprintf("%s-point%d", s.Prefix, slot) }

// Rule renders the style as a stylesheet rule, mostly for logs and debugging.
func (s Style) Rule() string {
	return fmt.Sprintf(".%s { border-radius: 50%%; width: %dpx; height: %dpx; padding: %dpx;"+
		" background-color: %s; border: %dpx solid %s; color: %s; text-align: center; }",
		s.Class(), s.Radius, s.Radius, s.Padding,
		hexColor(s.Fill), s.BorderWidth, hexColor(s.Border), hexColor(s.Text))
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// NormalizePrefix returns p when it is a usable identifier prefix and
// DefaultPrefix otherwise.
//
// A usable prefix starts with a letter and continues with letters, digits,
// '-' or '_'.
func NormalizePrefix(p string) string {
	if p == "" {
		return DefaultPrefix
	}
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '_'):
		default:
			return DefaultPrefix
		}
	}
	return p
}
