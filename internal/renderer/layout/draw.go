package layout

import (
	"sort"

	"github.com/dshills/potato/internal/renderer/backend"
	"github.com/dshills/potato/internal/renderer/core"
)

// IndexToPos returns the cell column and line of the grapheme containing
// byte index. The end of the text maps to the position just past the last
// grapheme. ok is false for indexes outside [0, len(text)].
func (l *Layout) IndexToPos(index int) (col, row int, ok bool) {
	if index < 0 || index > len(l.text) {
		return 0, 0, false
	}
	if index == len(l.text) {
		if len(l.clusters) == 0 {
			return 0, 0, true
		}
		lc := len(l.clusters) - 1
		c := l.clusters[lc]
		if c.kind == kindNewline {
			return 0, len(l.lines) - 1, true
		}
		w := c.width
		if c.kind == kindTab {
			w = tabStop(l.cols[lc], l.tabWidth)
		}
		return l.cols[lc] + w, l.rows[lc], true
	}

	i := sort.Search(len(l.clusters), func(i int) bool {
		return l.clusters[i].end > index
	})
	return l.cols[i], l.rows[i], true
}

// Draw paints the layout with its top-left corner at (x, y). Each cell's
// style is base with the covering attributes applied. Cells falling
// outside the surface are dropped by the surface.
func (l *Layout) Draw(s backend.Surface, x, y int, base core.Style) {
	for row, ln := range l.lines {
		for i := ln.first; i < ln.last; i++ {
			c := l.clusters[i]
			style := l.list.StyleAt(c.start, base)
			col := x + l.cols[i]

			switch c.kind {
			case kindNewline:
				continue
			case kindTab:
				for n := 0; n < tabStop(l.cols[i], l.tabWidth); n++ {
					s.SetCell(col+n, y+row, core.Cell{Rune: ' ', Width: 1, Style: style})
				}
				continue
			}

			if c.width == 0 {
				continue
			}
			s.SetCell(col, y+row, core.Cell{Rune: c.lead, Width: c.width, Style: style})
			for n := 1; n < c.width; n++ {
				s.SetCell(col+n, y+row, core.ContinuationCell(style))
			}
		}
	}
}
