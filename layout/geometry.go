package layout

import (
	"math"
	"sort"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

// FragmentsIntersecting returns the fragments whose frames overlap r
// vertically, in document order.
func (e *Engine) FragmentsIntersecting(r geom.Rect) []*Fragment {
	e.ensureLayout()
	i := sort.Search(len(e.frags), func(i int) bool {
		return e.frags[i].frame.MaxY() > r.MinY()
	})
	var out []*Fragment
	for ; i < len(e.frags); i++ {
		f := e.frags[i]
		if f.frame.MinY() >= r.MaxY() {
			break
		}
		out = append(out, f)
	}
	return out
}

// FragmentAt returns the fragment whose frame spans p.Y.
func (e *Engine) FragmentAt(p geom.Point) (*Fragment, bool) {
	e.ensureLayout()
	i := sort.Search(len(e.frags), func(i int) bool {
		return e.frags[i].frame.MaxY() > p.Y
	})
	if i == len(e.frags) || e.frags[i].frame.MinY() > p.Y {
		return nil, false
	}
	return e.frags[i], true
}

// FragmentContaining returns the fragment holding position p. The document
// end belongs to the last fragment.
func (e *Engine) FragmentContaining(p buffer.Position) (*Fragment, bool) {
	i, ok := e.fragmentIndex(p)
	if !ok {
		return nil, false
	}
	return e.frags[i], true
}

// LastFragment returns the final fragment. A laid out document always has
// one, even when empty.
func (e *Engine) LastFragment() (*Fragment, bool) {
	e.ensureLayout()
	if len(e.frags) == 0 {
		return nil, false
	}
	return e.frags[len(e.frags)-1], true
}

// ContentHeight returns the bottom edge of the last fragment.
func (e *Engine) ContentHeight() float64 {
	f, ok := e.LastFragment()
	if !ok {
		return 0
	}
	return f.frame.MaxY()
}

// ParagraphIndex returns the zero-based index of the paragraph holding p.
func (e *Engine) ParagraphIndex(p buffer.Position) (int, bool) {
	return e.fragmentIndex(p)
}

func (e *Engine) fragmentIndex(p buffer.Position) (int, bool) {
	e.ensureLayout()
	if p < 0 || int(p) > e.storage.Len() || len(e.frags) == 0 {
		return 0, false
	}
	i := sort.Search(len(e.frags), func(i int) bool {
		return e.frags[i].end > int(p)
	})
	if i == len(e.frags) {
		i = len(e.frags) - 1
	}
	return i, true
}

// CaretRect returns the zero-width insertion rect at p.
func (e *Engine) CaretRect(p buffer.Position) (geom.Rect, bool) {
	f, ok := e.FragmentContaining(p)
	if !ok {
		return geom.Rect{}, false
	}
	rel := int(p) - f.start
	li := f.lineFor(rel)
	origin := f.LineOrigin(li)
	return geom.Rect{
		Origin: geom.Point{X: origin.X + f.caretX(li, rel), Y: origin.Y},
		Size:   geom.Size{W: 0, H: f.lines[li].Height},
	}, true
}

// BoundingRect returns the rect enclosing iv. An empty iv yields the
// insertion rect at its start.
func (e *Engine) BoundingRect(iv buffer.Interval) (geom.Rect, bool) {
	if iv.IsEmpty() {
		return e.CaretRect(buffer.Position(iv.Start))
	}
	rects := e.EnclosingRects(iv)
	if len(rects) == 0 {
		return geom.Rect{}, false
	}
	out := rects[0]
	for _, r := range rects[1:] {
		minX := math.Min(out.MinX(), r.MinX())
		minY := math.Min(out.MinY(), r.MinY())
		maxX := math.Max(out.MaxX(), r.MaxX())
		maxY := math.Max(out.MaxY(), r.MaxY())
		out = geom.R(minX, minY, maxX-minX, maxY-minY)
	}
	return out, true
}

// EnclosingRects returns one rect per line covered by iv. A covered line
// break adds one cell at the end of its line.
func (e *Engine) EnclosingRects(iv buffer.Interval) []geom.Rect {
	e.ensureLayout()
	if iv.IsEmpty() {
		return nil
	}
	i := sort.Search(len(e.frags), func(i int) bool {
		f := e.frags[i]
		return f.end > iv.Start
	})

	var out []geom.Rect
	for ; i < len(e.frags); i++ {
		f := e.frags[i]
		if f.start >= iv.End {
			break
		}
		for li, l := range f.lines {
			ls := f.start + l.Start
			le := f.start + l.End
			nl := f.newline && li == len(f.lines)-1
			ext := le
			if nl {
				ext++
			}
			s := maxInt(iv.Start, ls)
			end := minInt(iv.End, ext)
			if s >= end {
				continue
			}
			x0 := f.caretX(li, s-f.start)
			var x1 float64
			if end > le {
				x1 = l.Width(f.padding) + 1
			} else {
				x1 = f.caretX(li, end-f.start)
			}
			origin := f.LineOrigin(li)
			out = append(out, geom.R(origin.X+x0, origin.Y, x1-x0, l.Height))
		}
	}
	return out
}

// CharacterIndex returns the character under p and the fraction of the way
// across it p lies. Points outside the document clamp to the nearest line.
func (e *Engine) CharacterIndex(p geom.Point) (int, float64) {
	e.ensureLayout()
	if len(e.frags) == 0 {
		return 0, 0
	}

	f, ok := e.FragmentAt(p)
	if !ok {
		if p.Y < e.frags[0].frame.MinY() {
			f = e.frags[0]
		} else {
			f = e.frags[len(e.frags)-1]
		}
	}
	li := f.lineAtY(p.Y)
	l := f.lines[li]
	if len(l.Glyphs) == 0 {
		return f.start + l.Start, 0
	}
	// The end of a wrapped line is the start of the next one, so the last
	// glyph of a wrapped line never reports more than half.
	maxLast := 1.0
	if li < len(f.lines)-1 {
		maxLast = 0.5
	}
	x := p.X - f.frame.Origin.X
	last := len(l.Glyphs) - 1
	for k, g := range l.Glyphs {
		if x < g.X+g.Width {
			frac := clampFloat((x-g.X)/g.Width, 0, 1)
			if k == last {
				frac = math.Min(frac, maxLast)
			}
			return f.start + l.Start + k, frac
		}
	}
	return f.start + l.Start + last, maxLast
}

// lineAtY returns the line spanning document y, clamped to f's lines.
func (f *Fragment) lineAtY(y float64) int {
	rel := y - f.frame.Origin.Y - f.spacing
	for i, l := range f.lines {
		if rel < l.Y+l.Height {
			return i
		}
	}
	return len(f.lines) - 1
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
