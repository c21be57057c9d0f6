package attrs

import (
	"github.com/dshills/potato/internal/renderer/core"
)

// List is an ordered collection of attributes.
// The zero value is an empty list ready to use.
type List struct {
	attrs []Attr
}

// NewList creates an empty attribute list.
func NewList() *List {
	return &List{}
}

// Insert appends an attribute. Insertion order is preserved.
func (l *List) Insert(a Attr) {
	l.attrs = append(l.attrs, a)
}

// Len returns the number of attributes.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.attrs)
}

// Attrs returns a copy of the attributes in insertion order.
func (l *List) Attrs() []Attr {
	if l == nil {
		return nil
	}
	out := make([]Attr, len(l.attrs))
	copy(out, l.attrs)
	return out
}

// Equal reports whether two lists hold the same attributes in the same order.
func (l *List) Equal(other *List) bool {
	if l.Len() != other.Len() {
		return false
	}
	for i := range l.Len() {
		if l.attrs[i] != other.attrs[i] {
			return false
		}
	}
	return true
}

// StyleAt returns the style of the byte at index, starting from base and
// applying every covering attribute in insertion order.
func (l *List) StyleAt(index int, base core.Style) core.Style {
	if l == nil {
		return base
	}
	s := base
	for _, a := range l.attrs {
		if a.Covers(index) {
			s = a.apply(s)
		}
	}
	return s
}

// SizeAt returns the effective font size at index in Scale units,
// or 0 if no size attribute covers it.
func (l *List) SizeAt(index int) int {
	if l == nil {
		return 0
	}
	size := 0
	for _, a := range l.attrs {
		if a.Type == TypeSize && a.Covers(index) {
			size = a.Int
		}
	}
	return size
}
