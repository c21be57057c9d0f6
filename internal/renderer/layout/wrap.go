package layout

import "github.com/dshills/potato/internal/renderer/attrs"

// WrapMode controls where lines may break when a width is set.
type WrapMode uint8

const (
	// WrapWordChar breaks at whitespace, falling back to a grapheme
	// boundary when a single word is wider than the line.
	WrapWordChar WrapMode = iota
	// WrapWord breaks only at whitespace; over-long words overflow.
	WrapWord
	// WrapChar breaks at any grapheme boundary.
	WrapChar
)

// String returns the string representation of the wrap mode.
func (m WrapMode) String() string {
	switch m {
	case WrapWordChar:
		return "word-char"
	case WrapWord:
		return "word"
	case WrapChar:
		return "char"
	default:
		return "unknown"
	}
}

// ParseWrapMode parses a wrap mode name. Unknown names yield WrapWordChar
// and false.
func ParseWrapMode(s string) (WrapMode, bool) {
	switch s {
	case "word-char", "wordchar", "":
		return WrapWordChar, true
	case "word":
		return WrapWord, true
	case "char":
		return WrapChar, true
	default:
		return WrapWordChar, false
	}
}

// tabStop returns how many cells a tab at col expands to.
func tabStop(col, tabWidth int) int {
	return tabWidth - (col % tabWidth)
}

// breakLines recomputes lines, cols and rows from the clusters.
func (l *Layout) breakLines() {
	l.lines = l.lines[:0]
	if cap(l.cols) < len(l.clusters) {
		l.cols = make([]int, len(l.clusters))
		l.rows = make([]int, len(l.clusters))
	}
	l.cols = l.cols[:len(l.clusters)]
	l.rows = l.rows[:len(l.clusters)]

	limit := -1
	if l.width >= 0 {
		limit = l.width / attrs.Scale
	}

	lineStart := 0
	col := 0
	lastSpace := -1

	i := 0
	for i < len(l.clusters) {
		c := l.clusters[i]

		if c.kind == kindNewline {
			l.emit(lineStart, i, i+1)
			lineStart, col, lastSpace = i+1, 0, -1
			i++
			continue
		}

		w := c.width
		if c.kind == kindTab {
			w = tabStop(col, l.tabWidth)
		}

		// Whitespace never forces a break; it hangs past the edge.
		overflow := limit >= 0 && col > 0 && col+w > limit && c.kind == kindText
		if overflow {
			switch {
			case l.wrap != WrapChar && lastSpace >= lineStart:
				l.emit(lineStart, lastSpace+1, lastSpace+1)
				lineStart, col, lastSpace = lastSpace+1, 0, -1
				i = lineStart
				continue
			case l.wrap != WrapWord:
				l.emit(lineStart, i, i)
				lineStart, col, lastSpace = i, 0, -1
				continue
			}
		}

		if c.kind == kindSpace || c.kind == kindTab {
			lastSpace = i
		}
		col += w
		i++
	}
	l.emit(lineStart, len(l.clusters), len(l.clusters))
}

// emit appends the line made of clusters [first, last) and assigns their
// columns. next is the index the following line starts at, which differs
// from last when a newline cluster is consumed.
func (l *Layout) emit(first, last, next int) {
	row := len(l.lines)
	col := 0
	width := 0
	for i := first; i < next; i++ {
		c := l.clusters[i]
		l.cols[i] = col
		l.rows[i] = row
		if i >= last || c.kind == kindNewline {
			continue
		}
		w := c.width
		if c.kind == kindTab {
			w = tabStop(col, l.tabWidth)
		}
		col += w
		if c.kind == kindText {
			width = col
		}
	}

	ln := Line{Width: width, first: first, last: last}
	switch {
	case first < last:
		ln.Start = l.clusters[first].start
		ln.End = l.clusters[last-1].end
	case first < len(l.clusters):
		ln.Start = l.clusters[first].start
		ln.End = ln.Start
	default:
		ln.Start = len(l.text)
		ln.End = ln.Start
	}
	l.lines = append(l.lines, ln)
}
