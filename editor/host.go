package editor

import (
	"math"

	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/textview"
)

// terminalHost is the textview.Host backing the editor. Document
// coordinates are terminal cells: one unit is one column or one row.
type terminalHost struct {
	width, height int
	offsetY       float64
	contentSize   geom.Size

	// attached surfaces in attach order.
	attached []*fragmentSurface
}

var _ textview.Host = (*terminalHost)(nil)

func (h *terminalHost) Bounds() geom.Rect {
	return geom.R(0, h.offsetY, float64(h.width), float64(h.height))
}

func (h *terminalHost) Attach(s textview.RenderingSurface) {
	fs, ok := s.(*fragmentSurface)
	if !ok {
		return
	}
	h.attached = append(h.attached, fs)
}

func (h *terminalHost) Detach(s textview.RenderingSurface) {
	for i, fs := range h.attached {
		if fs == s {
			h.attached = append(h.attached[:i], h.attached[i+1:]...)
			return
		}
	}
}

func (h *terminalHost) SetContentSize(size geom.Size) { h.contentSize = size }

// SetContentOffset scrolls to p.Y. Terminal rows are whole, so the offset is
// rounded.
func (h *terminalHost) SetContentOffset(p geom.Point) {
	h.offsetY = math.Max(0, math.Round(p.Y))
}

// TopRow returns the first visible document row.
func (h *terminalHost) TopRow() int { return int(h.offsetY) }

// maxOffset is the largest offset that still shows content.
func (h *terminalHost) maxOffset() float64 {
	return math.Max(0, math.Ceil(h.contentSize.H)-float64(h.height))
}

// scrollBy scrolls by rows, clamped to the content.
func (h *terminalHost) scrollBy(rows int) bool {
	next := math.Min(h.maxOffset(), math.Max(0, h.offsetY+float64(rows)))
	if next == h.offsetY {
		return false
	}
	h.offsetY = next
	return true
}

// reveal scrolls the minimum amount that makes r fully visible.
func (h *terminalHost) reveal(r geom.Rect) bool {
	if h.height <= 0 {
		return false
	}
	top := h.offsetY
	switch {
	case r.MinY() < top:
		top = math.Floor(r.MinY())
	case r.MaxY() > top+float64(h.height):
		top = math.Ceil(r.MaxY()) - float64(h.height)
	}
	top = math.Max(0, top)
	if top == h.offsetY {
		return false
	}
	h.offsetY = top
	return true
}
