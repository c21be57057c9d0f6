// Package layout turns a paragraph of text plus an attribute list into
// wrapped lines that can be measured and painted onto a cell surface.
//
// A Layout is built once from (text, attrs). Grapheme segmentation happens
// in New; SetWidth and SetWrap only re-run line breaking, so reflowing an
// existing layout to a new width is cheap compared to building a new one.
//
// Widths and sizes are in attrs.Scale units (Scale units per cell), the
// same fixed-point convention the attribute list uses for font sizes.
package layout

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/potato/internal/renderer/attrs"
)

// DefaultTabWidth is the number of cells between tab stops.
const DefaultTabWidth = 8

// Unbounded disables wrapping when passed to SetWidth.
const Unbounded = -1

type clusterKind uint8

const (
	kindText clusterKind = iota
	kindSpace
	kindTab
	kindNewline
)

// cluster is one grapheme cluster of the source text.
type cluster struct {
	start, end int // byte range in text
	width      int // display width in cells; tabs are resolved at break time
	kind       clusterKind
	lead       rune // first rune, used for painting
}

// Line is one visual line of a layout.
type Line struct {
	Start int // First byte (inclusive)
	End   int // Last byte (exclusive), excluding a terminating newline
	Width int // Display width in cells, excluding trailing whitespace

	first, last int // cluster index range [first, last)
}

// Layout is a wrapped paragraph.
type Layout struct {
	text     string
	list     *attrs.List
	clusters []cluster

	wrap     WrapMode
	width    int
	tabWidth int

	lines []Line
	cols  []int // column of each cluster within its line
	rows  []int // line index of each cluster
}

// New builds a layout for text styled by list. The layout starts
// unbounded with WrapWordChar.
func New(text string, list *attrs.List) *Layout {
	if list == nil {
		list = attrs.NewList()
	}
	l := &Layout{
		text:     text,
		list:     list,
		wrap:     WrapWordChar,
		width:    Unbounded,
		tabWidth: DefaultTabWidth,
	}
	l.segment()
	l.breakLines()
	return l
}

// segment splits the text into grapheme clusters.
func (l *Layout) segment() {
	l.clusters = make([]cluster, 0, len(l.text))
	state := -1
	rest := l.text
	offset := 0
	for len(rest) > 0 {
		var c string
		c, rest, _, state = uniseg.StepString(rest, state)
		cl := cluster{start: offset, end: offset + len(c)}
		for _, r := range c {
			cl.lead = r
			break
		}
		switch {
		case c == "\n" || c == "\r\n" || c == "\r":
			cl.kind = kindNewline
		case c == "\t":
			cl.kind = kindTab
		case c == " " || c == "\u3000":
			cl.kind = kindSpace
			cl.width = uniseg.StringWidth(c)
		case cl.lead == ObjectReplacement:
			cl.width = 1
		default:
			cl.width = uniseg.StringWidth(c)
		}
		l.clusters = append(l.clusters, cl)
		offset += len(c)
	}
}

// ObjectReplacement is the placeholder rune for embedded objects.
// It always occupies exactly one cell.
const ObjectReplacement = '\uFFFC'

// Text returns the laid-out text.
func (l *Layout) Text() string {
	return l.text
}

// Attributes returns the attribute list the layout was built with.
func (l *Layout) Attributes() *attrs.List {
	return l.list
}

// Wrap returns the wrap mode.
func (l *Layout) Wrap() WrapMode {
	return l.wrap
}

// SetWrap sets the wrap mode and re-breaks lines if it changed.
func (l *Layout) SetWrap(mode WrapMode) {
	if mode == l.wrap {
		return
	}
	l.wrap = mode
	l.breakLines()
}

// Width returns the wrap width in Scale units, or Unbounded.
func (l *Layout) Width() int {
	return l.width
}

// SetWidth sets the wrap width in Scale units. Negative values mean
// Unbounded. Lines are re-broken only if the width changed.
func (l *Layout) SetWidth(units int) {
	if units < 0 {
		units = Unbounded
	}
	if units == l.width {
		return
	}
	l.width = units
	l.breakLines()
}

// TabWidth returns the distance between tab stops in cells.
func (l *Layout) TabWidth() int {
	return l.tabWidth
}

// SetTabWidth sets the distance between tab stops. Values below 1 are
// treated as 1.
func (l *Layout) SetTabWidth(cells int) {
	if cells < 1 {
		cells = 1
	}
	if cells == l.tabWidth {
		return
	}
	l.tabWidth = cells
	l.breakLines()
}

// Lines returns the visual lines. There is always at least one line,
// even for empty text.
func (l *Layout) Lines() []Line {
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// LineCount returns the number of visual lines.
func (l *Layout) LineCount() int {
	return len(l.lines)
}

// PixelSize returns the logical extents in cells: the widest line and
// the number of lines.
func (l *Layout) PixelSize() (width, height int) {
	for _, ln := range l.lines {
		width = max(width, ln.Width)
	}
	return width, len(l.lines)
}

// Size returns the logical extents in Scale units.
func (l *Layout) Size() (width, height int) {
	w, h := l.PixelSize()
	return w * attrs.Scale, h * attrs.Scale
}
