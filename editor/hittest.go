package editor

import (
	"math"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

// screenToDocPoint maps viewport-local cell coordinates to the centre of
// that cell in document coordinates. Gutter columns map to column 0.
func (m *Model) screenToDocPoint(x, y int) geom.Point {
	col := maxInt(x-m.gutterWidth, 0) + m.xOffset
	return geom.Pt(float64(col)+0.5, float64(y+m.host.TopRow())+0.5)
}

// screenToDocPos maps viewport-local mouse coordinates to the closest caret
// position. Points past the end of a line resolve to the line end.
func (m *Model) screenToDocPos(x, y int) buffer.Position {
	return m.view.ClosestPosition(m.screenToDocPoint(x, y))
}

// docToScreenPos maps a document position to viewport-local coordinates of
// its caret cell. ok is false when the cell is scrolled out of view.
func (m *Model) docToScreenPos(p buffer.Position) (x, y int, ok bool) {
	r := m.view.CaretRect(p)
	x = int(math.Floor(r.MinX())) - m.xOffset + m.gutterWidth
	y = int(math.Floor(r.MinY())) - m.host.TopRow()
	if x < m.gutterWidth || x >= m.viewport.Width || y < 0 || y >= m.host.height {
		return x, y, false
	}
	return x, y, true
}
