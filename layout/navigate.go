package layout

import "github.com/iw2rmb/textkit/buffer"

// Direction is a vertical navigation direction.
type Direction int

const (
	Up Direction = iota
	Down
)

// Navigate moves p count lines up or down, keeping its x offset. Moving past
// the first line yields 0 and moving past the last line yields the document
// end.
func (e *Engine) Navigate(p buffer.Position, dir Direction, count int) buffer.Position {
	p = p.Clamp(e.storage.Len())
	if count <= 0 {
		return p
	}
	fi, ok := e.fragmentIndex(p)
	if !ok {
		return p
	}

	f := e.frags[fi]
	rel := int(p) - f.start
	li := f.lineFor(rel)
	x := f.caretX(li, rel)

	for n := 0; n < count; n++ {
		switch dir {
		case Up:
			if li > 0 {
				li--
				continue
			}
			if fi == 0 {
				return 0
			}
			fi--
			li = len(e.frags[fi].lines) - 1
		case Down:
			if li < len(e.frags[fi].lines)-1 {
				li++
				continue
			}
			if fi == len(e.frags)-1 {
				return buffer.Position(e.storage.Len())
			}
			fi++
			li = 0
		default:
			return p
		}
	}

	return e.frags[fi].positionOnLine(li, x)
}

// positionOnLine returns the caret position on line li closest to x.
func (f *Fragment) positionOnLine(li int, x float64) buffer.Position {
	l := f.lines[li]
	for k, g := range l.Glyphs {
		if x < g.X+g.Width/2 {
			return buffer.Position(f.start + l.Start + k)
		}
	}
	if li < len(f.lines)-1 && len(l.Glyphs) > 0 {
		// The end of a wrapped line is the start of the next one.
		return buffer.Position(f.start + l.End - 1)
	}
	return buffer.Position(f.start + l.End)
}
