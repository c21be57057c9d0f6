// Package inline provides the inline rich-text document model.
//
// A Document owns a string of text, an ordered list of attribute spans,
// and a list of anchors marking points where external content (an image,
// say) is embedded. Mutation is append-only between resets:
//
//	doc := inline.New()
//	start := doc.CurrentPosition()
//	end := doc.Append("Hello")
//	doc.ApplyAttribute(start, end, inline.Italic{})
//	img := doc.CreateAnchor()
//	doc.AttachPayload(img, picture)
//
// Positions are byte offsets bound to the text they were taken from.
// Because nothing is ever inserted mid-stream, positions handed out since
// the last SetText or Clear stay valid; after a reset they are stale.
//
// Anchor identities and positions are decoupled. An Anchor is a stable
// integer identity; its position is recorded once, at creation. Looking
// up or attaching to an anchor that no longer exists is a silent no-op
// (TryAttachPayload reports it instead).
//
// Subscribers are notified synchronously, in registration order, on the
// goroutine performing the mutation. The ordering per operation is:
//
//	SetText, Append    Changed
//	ApplyAttribute     AttributeAdded, Changed
//	CreateAnchor       Changed, AnchorCreated
//	AttachPayload      PaintableInserted, Changed
//	Clear              (nothing)
//
// BuildRenderAttributes translates the spans into the renderer's
// primitive attribute list. Overlapping spans are passed through in
// insertion order; resolving them is the renderer's business.
package inline
