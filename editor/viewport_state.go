package editor

import "github.com/iw2rmb/textkit/buffer"

// ViewportState is a stable host-facing snapshot of editor camera state.
type ViewportState struct {
	// TopRow is the document row rendered at viewport screen row 0.
	TopRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// LeftCellOffset is the horizontal cell offset in WrapNone mode.
	LeftCellOffset int
	// ContentHeight is the document height in rows.
	ContentHeight int
	// Materialized is the number of fragments with a live surface.
	Materialized int
	// ViewportRange covers the materialized fragments.
	ViewportRange buffer.Range
}

// ViewportState returns the current host-facing viewport state.
func (m Model) ViewportState() ViewportState {
	return ViewportState{
		TopRow:         m.host.TopRow(),
		VisibleRows:    m.host.height,
		LeftCellOffset: m.xOffset,
		ContentHeight:  int(m.vc.ContentSize().H),
		Materialized:   len(m.vc.Materialized()),
		ViewportRange:  m.vc.ViewportRange(),
	}
}

// ScreenToDoc maps viewport-local screen coordinates to a document position.
//
// Coordinates use terminal cells relative to the editor viewport.
func (m Model) ScreenToDoc(x, y int) buffer.Position {
	return (&m).screenToDocPos(x, y)
}

// DocToScreen maps a document position to viewport-local screen coordinates.
//
// ok is false when the position is outside the visible viewport content.
func (m Model) DocToScreen(p buffer.Position) (x int, y int, ok bool) {
	return (&m).docToScreenPos(p)
}
