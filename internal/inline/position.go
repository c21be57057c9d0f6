package inline

import (
	"cmp"
	"fmt"
)

// Position is an opaque byte offset into one specific text snapshot of a
// Document. It is only meaningful against the content it was derived
// from; a SetText or Clear makes every earlier Position stale.
//
// Positions compare with == and order with Compare. They deliberately
// have no arithmetic.
type Position struct {
	offset int
}

// PositionAt returns the Position for a byte offset. Negative offsets
// clamp to zero.
func PositionAt(offset int) Position {
	return Position{offset: max(offset, 0)}
}

// Offset returns the byte offset.
func (p Position) Offset() int {
	return p.offset
}

// Compare returns -1, 0 or +1 as p is before, equal to, or after other.
func (p Position) Compare(other Position) int {
	return cmp.Compare(p.offset, other.offset)
}

// Before reports whether p comes before other.
func (p Position) Before(other Position) bool {
	return p.offset < other.offset
}

// After reports whether p comes after other.
func (p Position) After(other Position) bool {
	return p.offset > other.offset
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("@%d", p.offset)
}

// Anchor is the stable identity of an embedded-object placeholder.
// Identities are handed out in strictly increasing order, starting at 0,
// and are never reused by the Document that issued them.
type Anchor struct {
	id uint64
}

// AnchorWithID returns an Anchor handle for an arbitrary identity. The
// handle need not refer to an anchor that exists; Document operations
// tolerate unknown identities.
func AnchorWithID(id uint64) Anchor {
	return Anchor{id: id}
}

// ID returns the anchor identity.
func (a Anchor) ID() uint64 {
	return a.id
}

// Compare orders anchors by identity, i.e. by creation order.
func (a Anchor) Compare(other Anchor) int {
	return cmp.Compare(a.id, other.id)
}

// String returns a human-readable representation of the anchor.
func (a Anchor) String() string {
	return fmt.Sprintf("anchor#%d", a.id)
}
