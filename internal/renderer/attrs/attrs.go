// Package attrs provides the rendering backend's primitive attribute
// representation: typed attributes over half-open byte ranges, collected
// in an ordered List that the paragraph layout consumes.
//
// The List never merges or reorders entries. When several attributes
// cover the same byte, StyleAt applies them in insertion order, so later
// entries win for scalar properties. That is the only combination rule
// in the pipeline.
package attrs

import (
	"fmt"

	"github.com/dshills/potato/internal/renderer/core"
)

// Scale is the fixed-point unit factor for sizes and widths.
// One cell (or one point) is Scale units.
const Scale = 1024

// MaxIntensity is the largest value of a 16-bit color channel.
const MaxIntensity = 65535

// Type identifies a primitive attribute.
type Type uint8

const (
	TypeWeight Type = iota
	TypeStyle
	TypeUnderline
	TypeStrikethrough
	TypeForeground
	TypeSize
	TypeFamily
)

// String returns the string representation of the type.
func (t Type) String() string {
	switch t {
	case TypeWeight:
		return "weight"
	case TypeStyle:
		return "style"
	case TypeUnderline:
		return "underline"
	case TypeStrikethrough:
		return "strikethrough"
	case TypeForeground:
		return "foreground"
	case TypeSize:
		return "size"
	case TypeFamily:
		return "family"
	default:
		return "unknown"
	}
}

// Font weights.
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Font styles.
const (
	StyleNormal = iota
	StyleItalic
)

// Underline kinds.
const (
	UnderlineNone = iota
	UnderlineSingle
)

// Color16 is a color with 16-bit channels.
type Color16 struct {
	R, G, B uint16
}

// To8 reduces the color to 8 bits per channel.
func (c Color16) To8() core.Color {
	return core.ColorFromRGB(uint8(c.R>>8), uint8(c.G>>8), uint8(c.B>>8))
}

// Attr is a single primitive attribute over [Start, End).
type Attr struct {
	Type  Type
	Start int
	End   int

	// Int holds the value of weight, style, underline, strikethrough
	// (0 or 1) and size attributes.
	Int int

	// Color holds the value of foreground attributes.
	Color Color16

	// Str holds the value of family attributes.
	Str string
}

// Weight creates a font weight attribute.
func Weight(w int) Attr { return Attr{Type: TypeWeight, Int: w} }

// Style creates a font style attribute.
func Style(s int) Attr { return Attr{Type: TypeStyle, Int: s} }

// Underline creates an underline attribute.
func Underline(u int) Attr { return Attr{Type: TypeUnderline, Int: u} }

// Strikethrough creates a strikethrough attribute.
func Strikethrough(on bool) Attr {
	a := Attr{Type: TypeStrikethrough}
	if on {
		a.Int = 1
	}
	return a
}

// Foreground creates a foreground color attribute.
func Foreground(r, g, b uint16) Attr {
	return Attr{Type: TypeForeground, Color: Color16{R: r, G: g, B: b}}
}

// Size creates a font size attribute in Scale units.
func Size(size int) Attr { return Attr{Type: TypeSize, Int: size} }

// Family creates a font family attribute.
func Family(name string) Attr { return Attr{Type: TypeFamily, Str: name} }

// WithRange returns a copy of a covering [start, end).
func (a Attr) WithRange(start, end int) Attr {
	a.Start = start
	a.End = end
	return a
}

// Covers reports whether index lies in [Start, End).
// Inverted ranges cover nothing.
func (a Attr) Covers(index int) bool {
	return index >= a.Start && index < a.End
}

// String returns a compact representation, mainly for test output.
func (a Attr) String() string {
	var v string
	switch a.Type {
	case TypeForeground:
		v = fmt.Sprintf("#%04x%04x%04x", a.Color.R, a.Color.G, a.Color.B)
	case TypeFamily:
		v = a.Str
	default:
		v = fmt.Sprint(a.Int)
	}
	return fmt.Sprintf("%s=%s[%d,%d)", a.Type, v, a.Start, a.End)
}

// apply folds a into a cell style.
func (a Attr) apply(s core.Style) core.Style {
	switch a.Type {
	case TypeWeight:
		if a.Int >= WeightBold {
			s.Attributes = s.Attributes.With(core.AttrBold)
		} else {
			s.Attributes = s.Attributes.Without(core.AttrBold)
		}
	case TypeStyle:
		if a.Int == StyleItalic {
			s.Attributes = s.Attributes.With(core.AttrItalic)
		} else {
			s.Attributes = s.Attributes.Without(core.AttrItalic)
		}
	case TypeUnderline:
		if a.Int != UnderlineNone {
			s.Attributes = s.Attributes.With(core.AttrUnderline)
		} else {
			s.Attributes = s.Attributes.Without(core.AttrUnderline)
		}
	case TypeStrikethrough:
		if a.Int != 0 {
			s.Attributes = s.Attributes.With(core.AttrStrikethrough)
		} else {
			s.Attributes = s.Attributes.Without(core.AttrStrikethrough)
		}
	case TypeForeground:
		s.Foreground = a.Color.To8()
	case TypeSize, TypeFamily:
		// Cell surfaces have one font; size and family carry no cell style.
	}
	return s
}
