package app

import (
	"github.com/dshills/potato/internal/renderer/backend"
	"github.com/dshills/potato/internal/renderer/core"
)

// region is a rectangle of a surface addressed from its own origin.
// Writes outside the rectangle are dropped.
type region struct {
	s    backend.Surface
	rect core.ScreenRect
}

func (r region) Size() (int, int) {
	return r.rect.Width(), r.rect.Height()
}

func (r region) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.rect.Width() && y < r.rect.Height()
}

func (r region) SetCell(x, y int, cell core.Cell) {
	if !r.contains(x, y) {
		return
	}
	r.s.SetCell(r.rect.Left+x, r.rect.Top+y, cell)
}

func (r region) GetCell(x, y int) core.Cell {
	if !r.contains(x, y) {
		return core.EmptyCell()
	}
	return r.s.GetCell(r.rect.Left+x, r.rect.Top+y)
}

// Marker is a payload that paints a single styled rune over its
// placeholder.
type Marker struct {
	Rune  rune
	Style core.Style
}

// Draw implements inline.Paintable.
func (m Marker) Draw(s backend.Surface, x, y int) {
	s.SetCell(x, y, core.NewStyledCell(m.Rune, m.Style))
}
