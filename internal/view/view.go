// Package view provides View, a lazily laid-out presentation of an
// inline.Document.
//
// A View never does layout work when its document changes. The change
// handler only marks the view dirty and asks the host for a new size
// request; the layout is rebuilt on the next Measure. Width changes on an
// existing layout reflow it without rebuilding the content.
package view

import (
	"github.com/tliron/commonlog"

	"github.com/dshills/potato/internal/event"
	"github.com/dshills/potato/internal/inline"
	"github.com/dshills/potato/internal/renderer/attrs"
	"github.com/dshills/potato/internal/renderer/backend"
	"github.com/dshills/potato/internal/renderer/core"
	"github.com/dshills/potato/internal/renderer/layout"
)

var log = commonlog.GetLogger("potato.view")

// Orientation selects the axis of a size request.
type Orientation uint8

const (
	// Horizontal asks for a width.
	Horizontal Orientation = iota
	// Vertical asks for a height, optionally for a given width.
	Vertical
)

// String returns the string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Host is the widget system hosting a View.
type Host interface {
	// QueueResize requests a new measurement pass.
	QueueResize()
	// QueueDraw requests a repaint.
	QueueDraw()
}

// Stats counts the layout work a View has done.
type Stats struct {
	// Rebuilds is the number of layouts built from document content.
	Rebuilds int
	// WidthReapplies is the number of times an existing layout was
	// reflowed to a new width.
	WidthReapplies int
}

// Option configures a View.
type Option func(*View)

// WithHost sets the host notified of size and draw requests.
func WithHost(h Host) Option {
	return func(v *View) { v.host = h }
}

// WithWrap sets the wrap mode used for new layouts.
func WithWrap(mode layout.WrapMode) Option {
	return func(v *View) { v.wrap = mode }
}

// WithStyleTag sets the initial style tag.
func WithStyleTag(tag string) Option {
	return func(v *View) { v.styleTag = tag }
}

// WithBaseStyle sets the style cells start from before attributes apply.
func WithBaseStyle(s core.Style) Option {
	return func(v *View) { v.base = s }
}

// View presents one Document at a time.
//
// A View is not safe for concurrent use; the document, the view and the
// host are expected to live on one goroutine.
type View struct {
	doc *inline.Document
	sub *event.Subscription

	host     Host
	wrap     layout.WrapMode
	styleTag string
	base     core.Style

	layout *layout.Layout
	dirty  bool
	stats  Stats
}

// New creates a View with no document.
func New(opts ...Option) *View {
	v := &View{
		wrap: layout.WrapWordChar,
		base: core.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetDocument binds the view to doc, replacing any previous document.
// A nil doc detaches the view.
func (v *View) SetDocument(doc *inline.Document) {
	if v.sub != nil {
		v.sub.Cancel()
		v.sub = nil
	}
	v.doc = doc
	v.layout = nil
	v.dirty = true

	if doc != nil {
		v.sub = doc.OnChanged(v.onChanged)
	}
	v.queueResize()
}

// Document returns the bound document, or nil.
func (v *View) Document() *inline.Document {
	return v.doc
}

// Text returns the document text, or "" when no document is bound.
func (v *View) Text() string {
	if v.doc == nil {
		return ""
	}
	return v.doc.Text()
}

// SetText replaces the document text. If no document is bound, a new one
// is created and bound first.
func (v *View) SetText(text string) {
	if v.doc == nil {
		v.SetDocument(inline.New())
	}
	v.doc.SetText(text)
}

// StyleTag returns the style tag.
func (v *View) StyleTag() string {
	return v.styleTag
}

// SetStyleTag sets the style tag and requests a redraw if it changed.
func (v *View) SetStyleTag(tag string) {
	if tag == v.styleTag {
		return
	}
	v.styleTag = tag
	if v.host != nil {
		v.host.QueueDraw()
	}
}

// BaseStyle returns the style cells start from.
func (v *View) BaseStyle() core.Style {
	return v.base
}

// SetBaseStyle sets the style cells start from and requests a redraw if
// it changed.
func (v *View) SetBaseStyle(s core.Style) {
	if s.Equals(v.base) {
		return
	}
	v.base = s
	if v.host != nil {
		v.host.QueueDraw()
	}
}

// Stats returns the layout work counters.
func (v *View) Stats() Stats {
	return v.stats
}

// Measure returns the minimum and natural size along o, in cells.
//
// Horizontal yields (0, width of the laid-out text). Vertical yields
// (height, height); when forSize is positive the layout is first
// reflowed to that width. Without a document both are 0.
func (v *View) Measure(o Orientation, forSize int) (minimum, natural int) {
	if v.doc == nil {
		return 0, 0
	}
	if v.dirty || v.layout == nil {
		v.rebuild()
	}
	if o == Vertical && forSize > 0 {
		v.applyWidth(forSize)
	}

	width, height := v.layout.PixelSize()
	if o == Horizontal {
		return 0, width
	}
	return height, height
}

// Paint draws the cached layout at the surface origin in foreground fg,
// reflowing it to the surface width first. Attached payloads that are
// inline.Paintable draw themselves over their placeholder cell. Paint is
// a no-op until a Measure has produced a layout.
func (v *View) Paint(s backend.Surface, fg core.Color) {
	if v.layout == nil {
		return
	}
	width, _ := s.Size()
	v.applyWidth(width)

	v.layout.Draw(s, 0, 0, v.base.WithForeground(fg))
	v.paintPayloads(s)
}

// paintPayloads draws Paintable payloads over their placeholders. Anchor
// positions are only valid for a layout built from the current text, so
// nothing is drawn while the view is dirty.
func (v *View) paintPayloads(s backend.Surface) {
	if v.doc == nil || v.dirty {
		return
	}
	for _, anchor := range v.doc.Anchors() {
		payload, ok := v.doc.Payload(anchor)
		if !ok {
			continue
		}
		p, ok := payload.(inline.Paintable)
		if !ok {
			continue
		}
		pos, _ := v.doc.AnchorPosition(anchor)
		col, row, ok := v.layout.IndexToPos(pos.Offset() - len(inline.ObjectReplacement))
		if !ok {
			continue
		}
		p.Draw(s, col, row)
	}
}

func (v *View) onChanged() {
	v.dirty = true
	v.queueResize()
}

func (v *View) queueResize() {
	if v.host != nil {
		v.host.QueueResize()
	}
}

// rebuild lays out the document content from scratch, keeping the width
// of the previous layout.
func (v *View) rebuild() {
	width := layout.Unbounded
	if v.layout != nil {
		width = v.layout.Width()
	}

	l := layout.New(v.doc.Text(), v.doc.BuildRenderAttributes())
	l.SetWrap(v.wrap)
	l.SetWidth(width)

	v.layout = l
	v.dirty = false
	v.stats.Rebuilds++
	log.Debugf("rebuilt layout: %d bytes, %d lines", len(l.Text()), l.LineCount())
}

// applyWidth reflows the layout to cells if its width differs.
func (v *View) applyWidth(cells int) {
	units := cells * attrs.Scale
	if v.layout.Width() == units {
		return
	}
	v.layout.SetWidth(units)
	v.stats.WidthReapplies++
	log.Debugf("reflowed layout to %d cells", cells)
}
