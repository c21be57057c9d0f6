package inline

import (
	"fmt"

	"github.com/dshills/potato/internal/event"
	"github.com/dshills/potato/internal/renderer/attrs"
	"github.com/dshills/potato/internal/renderer/backend"
)

// ObjectReplacement is the placeholder appended for every anchor.
const ObjectReplacement = "\uFFFC"

// Paintable is a payload that knows how to draw itself in the cell
// reserved by its anchor's placeholder.
type Paintable interface {
	Draw(s backend.Surface, x, y int)
}

type anchorRecord struct {
	id       uint64
	pos      Position
	payload  any
	attached bool
}

// Document is a mutable rich-text buffer: text, attribute spans in
// insertion order, and anchor records for embedded objects.
//
// Every mutation notifies subscribers synchronously before returning.
// Handlers must not call mutating Document methods. A Document is not
// safe for concurrent use.
type Document struct {
	text       string
	spans      []AttributeSpan
	anchors    []anchorRecord
	nextAnchor uint64

	events event.Emitter[Event]
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// Subscribe registers a handler for every notification.
func (d *Document) Subscribe(handler func(Event)) *event.Subscription {
	return d.events.Subscribe(handler)
}

// OnChanged registers a handler for Changed notifications only.
func (d *Document) OnChanged(handler func()) *event.Subscription {
	return d.events.Subscribe(
		func(Event) { handler() },
		event.WithFilter[Event](func(ev Event) bool { return ev.Type() == EventChanged }),
	)
}

// Text returns the current content.
func (d *Document) Text() string {
	return d.text
}

// Len returns the content length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// IsEmpty reports whether the content is empty.
func (d *Document) IsEmpty() bool {
	return len(d.text) == 0
}

// SetText replaces the content and drops every attribute span and
// anchor record, then emits Changed. Anchor identities keep counting up.
func (d *Document) SetText(text string) {
	d.text = text
	d.spans = nil
	d.anchors = nil

	d.events.Emit(Changed{})
}

// Append adds text at the end, emits Changed, and returns the position
// just past the appended text.
func (d *Document) Append(text string) Position {
	d.text += text
	pos := d.CurrentPosition()

	d.events.Emit(Changed{})
	return pos
}

// ApplyAttribute records attr over [start, end), then emits
// AttributeAdded followed by Changed. The range is not validated;
// inverted or out-of-range spans are passed through to the renderer.
func (d *Document) ApplyAttribute(start, end Position, attr TextAttr) {
	d.spans = append(d.spans, AttributeSpan{Attr: attr, Start: start, End: end})

	d.events.Emit(AttributeAdded{Kind: attr.Kind(), Start: start, End: end})
	d.events.Emit(Changed{})
}

// ValidateRange checks that [start, end) is ordered and lies within the
// current content. ApplyAttribute does not call it.
func (d *Document) ValidateRange(start, end Position) error {
	if start.After(end) {
		return fmt.Errorf("%w: %v > %v", ErrInvertedRange, start, end)
	}
	if end.Offset() > len(d.text) {
		return fmt.Errorf("%w: %v beyond %d", ErrRangeOutOfBounds, end, len(d.text))
	}
	return nil
}

// CreateAnchor appends one ObjectReplacement placeholder and records a
// new anchor just past it. The append emits Changed; AnchorCreated
// follows once the anchor is recorded.
func (d *Document) CreateAnchor() Anchor {
	id := d.nextAnchor
	d.nextAnchor++

	pos := d.Append(ObjectReplacement)
	d.anchors = append(d.anchors, anchorRecord{id: id, pos: pos})

	anchor := Anchor{id: id}
	d.events.Emit(AnchorCreated{Anchor: anchor, Position: pos})
	return anchor
}

// AttachPayload stores payload on the anchor and emits PaintableInserted
// followed by Changed. Attaching again replaces the payload. Unknown
// anchors are ignored without any notification.
func (d *Document) AttachPayload(anchor Anchor, payload any) {
	_ = d.TryAttachPayload(anchor, payload)
}

// TryAttachPayload is AttachPayload that reports unknown anchors with
// ErrUnknownAnchor.
func (d *Document) TryAttachPayload(anchor Anchor, payload any) error {
	rec := d.find(anchor)
	if rec == nil {
		return fmt.Errorf("attach payload to %v: %w", anchor, ErrUnknownAnchor)
	}
	rec.payload = payload
	rec.attached = true

	d.events.Emit(PaintableInserted{Anchor: anchor})
	d.events.Emit(Changed{})
	return nil
}

// AnchorPosition returns the position recorded when the anchor was
// created.
func (d *Document) AnchorPosition(anchor Anchor) (Position, bool) {
	rec := d.find(anchor)
	if rec == nil {
		return Position{}, false
	}
	return rec.pos, true
}

// Payload returns the payload attached to the anchor. The boolean is
// false for unknown anchors and anchors nothing was attached to; an
// attached nil payload reports true.
func (d *Document) Payload(anchor Anchor) (any, bool) {
	rec := d.find(anchor)
	if rec == nil || !rec.attached {
		return nil, false
	}
	return rec.payload, true
}

// Anchors returns the live anchors in creation order.
func (d *Document) Anchors() []Anchor {
	out := make([]Anchor, len(d.anchors))
	for i, rec := range d.anchors {
		out[i] = Anchor{id: rec.id}
	}
	return out
}

// Spans returns a copy of the attribute spans in insertion order.
func (d *Document) Spans() []AttributeSpan {
	out := make([]AttributeSpan, len(d.spans))
	copy(out, d.spans)
	return out
}

// StartPosition returns the position of the first byte.
func (d *Document) StartPosition() Position {
	return Position{offset: 0}
}

// CurrentPosition returns the position just past the last byte.
func (d *Document) CurrentPosition() Position {
	return Position{offset: len(d.text)}
}

// Clear empties the content, spans and anchors.
//
// Unlike SetText(""), Clear emits no notification; subscribers, including
// views, are not told about it. The anchor counter is kept.
func (d *Document) Clear() {
	d.text = ""
	d.spans = nil
	d.anchors = nil
}

// BuildRenderAttributes translates the spans, in insertion order, into a
// fresh backend attribute list.
func (d *Document) BuildRenderAttributes() *attrs.List {
	list := attrs.NewList()
	for _, span := range d.spans {
		span.Attr.Apply(list, span.Start.Offset(), span.End.Offset())
	}
	return list
}

func (d *Document) find(anchor Anchor) *anchorRecord {
	for i := range d.anchors {
		if d.anchors[i].id == anchor.id {
			return &d.anchors[i]
		}
	}
	return nil
}
