package layout

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

// FragmentID identifies a fragment for its whole lifetime. IDs are never
// reused by an Engine.
type FragmentID uint64

// Glyph is one laid out character.
type Glyph struct {
	Text string
	// X is the cell offset from the fragment's left edge.
	X     float64
	Width float64
}

// Line is one visual line of a fragment.
type Line struct {
	// Start and End are character offsets relative to the fragment start.
	Start, End int
	// Y is the offset of the line's top from the fragment's top.
	Y      float64
	Height float64
	Glyphs []Glyph
}

// Width returns the cell extent of the line, including leading padding.
func (l Line) Width(padding float64) float64 {
	if len(l.Glyphs) == 0 {
		return padding
	}
	g := l.Glyphs[len(l.Glyphs)-1]
	return g.X + g.Width
}

// Fragment is the laid out form of one paragraph.
//
// An Engine mutates its fragments in place when they shift or are re-wrapped,
// so holders of a *Fragment always observe current geometry.
type Fragment struct {
	id         FragmentID
	start, end int
	newline    bool

	frame     geom.Rect
	lines     []Line
	spacing   float64
	padding   float64
	needsWrap bool
}

// NewFragment returns a detached fragment with a single empty line. It lets
// alternative engines and tests produce fragments for a text view.
func NewFragment(id FragmentID, iv buffer.Interval, frame geom.Rect) *Fragment {
	return &Fragment{
		id:    id,
		start: iv.Start,
		end:   iv.End,
		frame: frame,
		lines: []Line{{Start: 0, End: iv.Len(), Height: frame.Size.H}},
	}
}

func (f *Fragment) ID() FragmentID { return f.id }

// ContentRange returns the paragraph's characters, including its trailing
// line break if any.
func (f *Fragment) ContentRange() buffer.Range {
	return buffer.NewRange(buffer.Position(f.start), buffer.Position(f.end))
}

func (f *Fragment) Interval() buffer.Interval {
	return buffer.Interval{Start: f.start, End: f.end}
}

// EndsWithNewline reports whether the paragraph is terminated by a line break.
func (f *Fragment) EndsWithNewline() bool { return f.newline }

// Frame is the fragment's rectangle in document coordinates.
func (f *Fragment) Frame() geom.Rect { return f.frame }

// SetFrame moves f. Engines call it during layout; it is exported for
// engines outside this package.
func (f *Fragment) SetFrame(r geom.Rect) { f.frame = r }

// RenderingBounds returns the area that must be painted, relative to the
// frame origin. It covers every glyph and at least one cell per line so an
// empty paragraph still shows a caret.
func (f *Fragment) RenderingBounds() geom.Rect {
	w := 1.0
	for _, l := range f.lines {
		if lw := l.Width(f.padding); lw > w {
			w = lw
		}
	}
	if f.frame.Size.W > w {
		w = f.frame.Size.W
	}
	return geom.Rect{Size: geom.Size{W: w, H: f.frame.Size.H}}
}

// Lines returns the fragment's lines. The slice must not be modified.
func (f *Fragment) Lines() []Line { return f.lines }

// LineOrigin returns the document-space top-left of line i.
func (f *Fragment) LineOrigin(i int) geom.Point {
	if i < 0 || i >= len(f.lines) {
		return f.frame.Origin
	}
	return geom.Point{
		X: f.frame.Origin.X,
		Y: f.frame.Origin.Y + f.spacing + f.lines[i].Y,
	}
}

// lineFor returns the line holding the caret at relative offset rel. A caret
// at a wrap point belongs to the following line.
func (f *Fragment) lineFor(rel int) int {
	for i, l := range f.lines {
		if rel < l.End {
			return i
		}
	}
	return len(f.lines) - 1
}

// caretX returns the x offset of the caret at relative offset rel on line i.
func (f *Fragment) caretX(i, rel int) float64 {
	l := f.lines[i]
	if k := rel - l.Start; k >= 0 && k < len(l.Glyphs) {
		return l.Glyphs[k].X
	}
	if rel < l.Start {
		return f.padding
	}
	return l.Width(f.padding)
}

func (f *Fragment) shift(delta int) {
	f.start += delta
	f.end += delta
}
