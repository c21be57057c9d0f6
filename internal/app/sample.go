package app

import (
	"github.com/dshills/potato/internal/inline"
	"github.com/dshills/potato/internal/renderer/core"
)

// Title is the heading shown above the sample paragraph.
const Title = "potato"

// writeSample fills doc with a paragraph that uses every attribute kind
// and one embedded marker.
func writeSample(doc *inline.Document) {
	doc.SetText("Inline documents mix ")

	styled := func(text string, attr inline.TextAttr) {
		start := doc.CurrentPosition()
		end := doc.Append(text)
		doc.ApplyAttribute(start, end, attr)
	}

	styled("bold", inline.Bold{})
	doc.Append(", ")
	styled("italic", inline.Italic{})
	doc.Append(", ")
	styled("underlined", inline.Underline{})
	doc.Append(" and ")
	styled("struck", inline.Strikethrough{})
	doc.Append(" text with ")
	styled("color", inline.RGB(0.9, 0.4, 0.1))
	doc.Append(", ")
	styled("links", inline.Link{URL: "https://example.com"})
	doc.Append(", ")
	styled("sizes", inline.FontSize{Points: 14})
	doc.Append(", ")
	styled("families", inline.FontFamily{Name: "Monospace"})
	doc.Append(" and embedded objects ")

	marker := doc.CreateAnchor()
	doc.AttachPayload(marker, Marker{
		Rune:  '◆',
		Style: core.NewStyle(core.ColorFromRGB(0xff, 0xaf, 0x00)),
	})
	doc.Append(". Press q to quit.")
}
