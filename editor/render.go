package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/textkit/buffer"
)

// Overlay flags layered over a cell's attribute style, lowest first.
const (
	overlayMarked uint8 = 1 << iota
	overlaySelected
	overlayCaret
	overlayFloating
)

// renderState is what the overlays need, resolved once per frame.
type renderState struct {
	sel      buffer.Interval
	hasSel   bool
	marked   buffer.Interval
	caret    int
	hasCaret bool

	floatX, floatY int
	hasFloat       bool
}

func (m *Model) renderState() renderState {
	var rs renderState
	n := m.storage.Len()
	if r, ok := m.view.SelectedRange(); ok {
		if iv, ok := r.Interval(n); ok {
			if iv.IsEmpty() {
				rs.caret, rs.hasCaret = iv.Start, m.focused
			} else {
				rs.sel, rs.hasSel = iv, true
			}
		}
	}
	if r, ok := m.view.MarkedRange(); ok {
		if iv, ok := r.Interval(n); ok {
			rs.marked = iv
		}
	}
	if ind, ok := m.fc.Indicator(m.cfg.Now()); ok && m.focused {
		c := ind.Rect.Origin
		c.X += ind.Rect.Size.W / 2
		c.Y += ind.Rect.Size.H / 2
		rs.floatX, rs.floatY = int(math.Floor(c.X)), int(math.Floor(c.Y))
		rs.hasFloat = true
	}
	return rs
}

func (rs renderState) flags(abs, row, x int) uint8 {
	var f uint8
	if abs >= rs.marked.Start && abs < rs.marked.End {
		f |= overlayMarked
	}
	if rs.hasSel && abs >= rs.sel.Start && abs < rs.sel.End {
		f |= overlaySelected
	}
	if rs.hasCaret && abs == rs.caret {
		f |= overlayCaret
	}
	if rs.hasFloat && row == rs.floatY && x == rs.floatX {
		f |= overlayFloating
	}
	return f
}

func (m *Model) renderContent() string {
	height := m.host.height
	if height <= 0 {
		return ""
	}
	top := m.host.TopRow()
	rows := make([]string, height)
	filled := make([]bool, height)
	rs := m.renderState()
	digits := maxInt(m.gutterWidth-1, 0)

	for _, id := range m.vc.Materialized() {
		s, ok := m.vc.Surface(id)
		if !ok {
			continue
		}
		fs, ok := s.(*fragmentSurface)
		if !ok {
			continue
		}
		frag := fs.Fragment()
		fragTop := int(frag.Frame().MinY())
		start := frag.Interval().Start
		lines := fs.rows()
		for li, sl := range lines {
			row := fragTop + sl.row
			y := row - top
			if y < 0 || y >= height {
				continue
			}
			var sb strings.Builder
			if m.cfg.ShowLineNums {
				sb.WriteString(m.renderGutter(start, frag.Interval().End, !frag.EndsWithNewline(), li == 0, digits))
			}
			last := li == len(lines)-1
			sb.WriteString(m.renderLine(rs, sl, start, row, last && frag.EndsWithNewline(), last))
			rows[y] = sb.String()
			filled[y] = true
		}
	}

	if m.cfg.ShowLineNums {
		blank := m.cfg.Style.LineNum.Render(strings.Repeat(" ", digits)) + m.cfg.Style.Gutter.Render(" ")
		for y := range rows {
			if !filled[y] {
				rows[y] = blank
			}
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderGutter(start, end int, open, first bool, digits int) string {
	num := fmt.Sprintf("%*s", digits, "")
	style := m.cfg.Style.LineNum
	if first {
		if idx, ok := m.engine.ParagraphIndex(buffer.Position(start)); ok {
			num = fmt.Sprintf("%*d", digits, idx+1)
		}
		head := int(m.sel.head)
		if m.focused && head >= start && (head < end || (open && head == end)) {
			style = m.cfg.Style.LineNumActive
		}
	}
	return style.Render(num) + m.cfg.Style.Gutter.Render(" ")
}

// renderLine renders one visual line clipped to the host width, merging
// neighbouring cells that share a style.
func (m *Model) renderLine(rs renderState, sl surfaceLine, fragStart, row int, newline, last bool) string {
	left, right := m.xOffset, m.xOffset+m.host.width
	var sb strings.Builder
	var run strings.Builder
	runID, runFlags := -1, uint8(0)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		sb.WriteString(m.cellStyle(runID, runFlags).Render(run.String()))
		run.Reset()
	}
	emit := func(text string, id int, flags uint8) {
		if id != runID || flags != runFlags {
			flush()
			runID, runFlags = id, flags
		}
		run.WriteString(text)
	}

	x := 0
	for _, c := range sl.cells {
		if x >= right {
			break
		}
		if x >= left && x+c.width <= right {
			emit(c.text, c.styleID, rs.flags(fragStart+c.rel, row, x))
		}
		x += c.width
	}

	// The cell after the line holds the line break, or the caret at the end.
	end := fragStart + sl.end
	if last && x >= left && x < right {
		flags := rs.flags(end, row, x)
		if !newline {
			flags &^= overlaySelected | overlayMarked
		}
		if flags != 0 {
			emit(" ", 0, flags)
			x++
		}
	}
	if rs.hasFloat && row == rs.floatY && rs.floatX >= x && rs.floatX >= left && rs.floatX < right {
		if pad := rs.floatX - maxInt(x, left); pad > 0 {
			emit(strings.Repeat(" ", pad), 0, 0)
		}
		emit(" ", 0, overlayFloating)
	}
	flush()
	return sb.String()
}

func (m *Model) cellStyle(id int, flags uint8) lipgloss.Style {
	st := m.styles.get(id)
	if flags&overlayMarked != 0 {
		st = m.cfg.Style.Marked.Inherit(st)
	}
	if flags&overlaySelected != 0 {
		st = m.cfg.Style.Selection.Inherit(st)
	}
	if flags&overlayCaret != 0 {
		st = m.cfg.Style.Cursor.Inherit(st)
	}
	if flags&overlayFloating != 0 {
		st = m.cfg.Style.FloatingCursor.Inherit(st)
	}
	return st
}
