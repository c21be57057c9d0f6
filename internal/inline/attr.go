package inline

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/potato/internal/renderer/attrs"
)

// AttrKind identifies the variant of a TextAttr.
type AttrKind uint8

const (
	KindBold AttrKind = iota
	KindItalic
	KindUnderline
	KindStrikethrough
	KindColor
	KindLink
	KindFontSize
	KindFontFamily
)

// String returns the string representation of the kind.
func (k AttrKind) String() string {
	switch k {
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindUnderline:
		return "underline"
	case KindStrikethrough:
		return "strikethrough"
	case KindColor:
		return "color"
	case KindLink:
		return "link"
	case KindFontSize:
		return "font-size"
	case KindFontFamily:
		return "font-family"
	default:
		return "unknown"
	}
}

// TextAttr is a styling operation applied to a range of text.
// The set of implementations is closed: Bold, Italic, Underline,
// Strikethrough, Color, Link, FontSize and FontFamily.
type TextAttr interface {
	// Kind returns the variant of the attribute.
	Kind() AttrKind

	// Apply appends the backend primitives for this attribute over
	// [start, end) to list.
	Apply(list *attrs.List, start, end int)

	textAttr()
}

// Bold renders text in a bold weight.
type Bold struct{}

// Italic renders text in an italic style.
type Italic struct{}

// Underline draws a single underline.
type Underline struct{}

// Strikethrough draws a line through the text.
type Strikethrough struct{}

// Color sets the foreground color.
type Color struct {
	RGB colorful.Color
}

// RGB returns a Color attribute from normalized channels in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{RGB: colorful.Color{R: r, G: g, B: b}}
}

// ColorFromHex parses "#rrggbb" into a Color attribute.
func ColorFromHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("color attribute: %w", err)
	}
	return Color{RGB: c}, nil
}

// Link marks text as a hyperlink. Rendering gives it a fixed tint and an
// underline; there is no navigation behaviour.
type Link struct {
	URL string
}

// FontSize sets the font size in points.
type FontSize struct {
	Points int
}

// FontFamily sets the font family by name.
type FontFamily struct {
	Name string
}

// linkColor is the tint used for links, in 16-bit channels.
var linkColor = attrs.Color16{R: 0, G: 0, B: attrs.MaxIntensity}

func (Bold) Kind() AttrKind          { return KindBold }
func (Italic) Kind() AttrKind        { return KindItalic }
func (Underline) Kind() AttrKind     { return KindUnderline }
func (Strikethrough) Kind() AttrKind { return KindStrikethrough }
func (Color) Kind() AttrKind         { return KindColor }
func (Link) Kind() AttrKind          { return KindLink }
func (FontSize) Kind() AttrKind      { return KindFontSize }
func (FontFamily) Kind() AttrKind    { return KindFontFamily }

func (Bold) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Weight(attrs.WeightBold).WithRange(start, end))
}

func (Italic) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Style(attrs.StyleItalic).WithRange(start, end))
}

func (Underline) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Underline(attrs.UnderlineSingle).WithRange(start, end))
}

func (Strikethrough) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Strikethrough(true).WithRange(start, end))
}

func (c Color) Apply(list *attrs.List, start, end int) {
	ch := c.RGB.Clamped()
	list.Insert(attrs.Foreground(channel16(ch.R), channel16(ch.G), channel16(ch.B)).WithRange(start, end))
}

func (Link) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Foreground(linkColor.R, linkColor.G, linkColor.B).WithRange(start, end))
	list.Insert(attrs.Underline(attrs.UnderlineSingle).WithRange(start, end))
}

func (f FontSize) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Size(f.Points*attrs.Scale).WithRange(start, end))
}

func (f FontFamily) Apply(list *attrs.List, start, end int) {
	list.Insert(attrs.Family(f.Name).WithRange(start, end))
}

func (Bold) textAttr()          {}
func (Italic) textAttr()        {}
func (Underline) textAttr()     {}
func (Strikethrough) textAttr() {}
func (Color) textAttr()         {}
func (Link) textAttr()          {}
func (FontSize) textAttr()      {}
func (FontFamily) textAttr()    {}

// channel16 scales a normalized channel to 16 bits.
func channel16(v float64) uint16 {
	return uint16(v * attrs.MaxIntensity)
}

// AttributeSpan is an attribute applied over [Start, End).
type AttributeSpan struct {
	Attr  TextAttr
	Start Position
	End   Position
}
