package inline

// EventType identifies a Document notification.
type EventType uint8

const (
	EventChanged EventType = iota
	EventAttributeAdded
	EventAnchorCreated
	EventPaintableInserted
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventChanged:
		return "changed"
	case EventAttributeAdded:
		return "attribute-added"
	case EventAnchorCreated:
		return "anchor-created"
	case EventPaintableInserted:
		return "paintable-inserted"
	default:
		return "unknown"
	}
}

// Event is a Document notification. Implementations are Changed,
// AttributeAdded, AnchorCreated and PaintableInserted.
type Event interface {
	Type() EventType
}

// Changed is emitted whenever the content, attributes or payloads change.
type Changed struct{}

// AttributeAdded is emitted by ApplyAttribute, before Changed.
type AttributeAdded struct {
	Kind  AttrKind
	Start Position
	End   Position
}

// AnchorCreated is emitted by CreateAnchor, after the Changed caused by
// appending the placeholder.
type AnchorCreated struct {
	Anchor   Anchor
	Position Position
}

// PaintableInserted is emitted by AttachPayload, before Changed.
type PaintableInserted struct {
	Anchor Anchor
}

func (Changed) Type() EventType           { return EventChanged }
func (AttributeAdded) Type() EventType    { return EventAttributeAdded }
func (AnchorCreated) Type() EventType     { return EventAnchorCreated }
func (PaintableInserted) Type() EventType { return EventPaintableInserted }
