package ui

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// cell is one grapheme cluster placed on screen.
type cell struct {
	x      int
	width  int
	offset int
	text   string
}

// row is one screen row. start and end are the rune offsets of its first
// cluster and of the position after its last one.
type row struct {
	start int
	end   int
	cells []cell
}

// layout places view text on rows of a fixed width, wrapping long lines.
// Offsets are rune offsets into the text, the unit render.View uses.
type layout struct {
	rows []row
	end  int
}

func newLayout(text string, width int) layout {
	if width < 1 {
		width = 1
	}

	l := layout{rows: []row{{}}}
	cur := &l.rows[0]
	offset, x := 0, 0
	state := -1

	for text != "" {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		n := utf8.RuneCountInString(cluster)

		if cluster == "\n" || cluster == "\r\n" {
			cur.end = offset
			offset += n
			l.rows = append(l.rows, row{start: offset, end: offset})
			cur = &l.rows[len(l.rows)-1]
			x = 0
			continue
		}

		if x+w > width && x > 0 {
			cur.end = offset
			l.rows = append(l.rows, row{start: offset, end: offset})
			cur = &l.rows[len(l.rows)-1]
			x = 0
		}

		cur.cells = append(cur.cells, cell{x: x, width: w, offset: offset, text: cluster})
		x += w
		offset += n
		cur.end = offset
	}

	l.end = offset
	return l
}

// locate returns the screen position of the caret at offset.
func (l layout) locate(offset int) (x, y int) {
	for i, r := range l.rows {
		if offset < r.start || offset > r.end {
			continue
		}
		for _, c := range r.cells {
			if c.offset == offset {
				return c.x, i
			}
		}
		// A wrapped row ends where the next one starts; the caret belongs
		// to the next row.
		if i+1 < len(l.rows) && l.rows[i+1].start == offset && len(l.rows[i+1].cells) > 0 {
			continue
		}
		if n := len(r.cells); n > 0 {
			last := r.cells[n-1]
			return last.x + last.width, i
		}
		return 0, i
	}
	last := len(l.rows) - 1
	return 0, last
}

// offsetAt returns the caret offset nearest to screen position (x, y).
func (l layout) offsetAt(x, y int) int {
	if y < 0 {
		return 0
	}
	if y >= len(l.rows) {
		return l.end
	}
	r := l.rows[y]
	for _, c := range r.cells {
		if x < c.x+c.width {
			return c.offset
		}
	}
	return r.end
}

// next returns the caret offset one cluster after offset.
func (l layout) next(offset int) int {
	for _, r := range l.rows {
		for _, c := range r.cells {
			if c.offset > offset {
				return c.offset
			}
		}
		if r.end > offset {
			return r.end
		}
	}
	return l.end
}

// prev returns the caret offset one cluster before offset.
func (l layout) prev(offset int) int {
	best := 0
	for _, r := range l.rows {
		if r.start >= offset {
			break
		}
		best = r.start
		for _, c := range r.cells {
			if c.offset >= offset {
				return best
			}
			best = c.offset
		}
		if r.end < offset {
			best = r.end
		}
	}
	return best
}
