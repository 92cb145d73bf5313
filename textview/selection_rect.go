package textview

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

// SelectionRect is one line-sized piece of a selection highlight.
type SelectionRect struct {
	Rect geom.Rect
	// ContainsStart marks the piece holding the selection's start.
	ContainsStart bool
	// ContainsEnd marks the piece holding the selection's end.
	ContainsEnd bool
}

func (SelectionRect) WritingDirection() WritingDirection { return WritingDirectionLeftToRight }

func (SelectionRect) IsVertical() bool { return false }

// SelectionRects returns the highlight rects for r in document order.
// An empty range yields the caret rect. A stale range yields nil.
func (v *View) SelectionRects(r buffer.Range) []SelectionRect {
	iv, ok := r.Interval(v.storage.Len())
	if !ok {
		log.Debugf("selection rects: stale range %v", r)
		return nil
	}
	if iv.IsEmpty() {
		caret := v.CaretRect(r.Start())
		return []SelectionRect{{Rect: widen(caret), ContainsStart: true, ContainsEnd: true}}
	}

	rects := v.engine.EnclosingRects(iv)
	out := make([]SelectionRect, 0, len(rects))
	for _, rect := range rects {
		out = append(out, SelectionRect{Rect: widen(rect)})
	}
	if len(out) > 0 {
		out[0].ContainsStart = true
		out[len(out)-1].ContainsEnd = true
	}
	return out
}

// widen gives zero-width rects a width of one so they stay visible.
func widen(r geom.Rect) geom.Rect {
	if r.Size.W <= 0 {
		r.Size.W = 1
	}
	return r
}
