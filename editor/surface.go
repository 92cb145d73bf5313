package editor

import (
	"strings"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/layout"
	"github.com/iw2rmb/textkit/textview"
)

// cell is one rendered glyph.
type cell struct {
	text  string
	width int
	// rel is the character offset from the fragment start.
	rel     int
	styleID int
}

type surfaceLine struct {
	// row is the line's offset in rows from the fragment's top.
	row   int
	start int
	end   int
	cells []cell
}

// fragmentSurface caches the styled cells of one fragment. Attribute edits
// replace the fragment, so cached styles only go stale when the fragment is
// re-wrapped, which changes its frame.
type fragmentSurface struct {
	frag    *layout.Fragment
	storage *buffer.Storage
	styles  *styleCache

	frame geom.Rect
	dirty bool
	lines []surfaceLine
}

var _ textview.RenderingSurface = (*fragmentSurface)(nil)

func newFragmentSurface(f *layout.Fragment, s *buffer.Storage, styles *styleCache) *fragmentSurface {
	return &fragmentSurface{frag: f, storage: s, styles: styles, frame: f.Frame(), dirty: true}
}

func (s *fragmentSurface) Fragment() *layout.Fragment { return s.frag }
func (s *fragmentSurface) Frame() geom.Rect           { return s.frame }
func (s *fragmentSurface) UpdateGeometry()            { s.frame = s.frag.Frame() }
func (s *fragmentSurface) SetNeedsDisplay()           { s.dirty = true }

// rows returns the fragment's lines, rebuilding the cell cache if needed.
func (s *fragmentSurface) rows() []surfaceLine {
	if !s.dirty && s.lines != nil {
		return s.lines
	}
	start := s.frag.Interval().Start
	top := s.frag.Frame().MinY()
	lines := s.frag.Lines()
	out := make([]surfaceLine, 0, len(lines))
	for i, l := range lines {
		sl := surfaceLine{
			row:   int(s.frag.LineOrigin(i).Y - top),
			start: l.Start,
			end:   l.End,
			cells: make([]cell, 0, len(l.Glyphs)),
		}
		for k, g := range l.Glyphs {
			rel := l.Start + k
			w := int(g.Width)
			text := g.Text
			if text == "\t" || w <= 0 {
				text = strings.Repeat(" ", maxInt(w, 0))
			}
			sl.cells = append(sl.cells, cell{
				text:    text,
				width:   w,
				rel:     rel,
				styleID: s.styles.id(s.storage.AttributesAt(start + rel)),
			})
		}
		out = append(out, sl)
	}
	s.lines = out
	s.dirty = false
	return out
}
