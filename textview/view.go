package textview

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/layout"
)

// Direction is a layout direction for position queries.
type Direction int

const (
	DirectionRight Direction = iota
	DirectionLeft
	DirectionUp
	DirectionDown
)

func (d Direction) String() string {
	switch d {
	case DirectionRight:
		return "right"
	case DirectionLeft:
		return "left"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unknown"
	}
}

// StorageDirection is a logical direction through the document.
type StorageDirection int

const (
	Forward StorageDirection = iota
	Backward
)

// WritingDirection is a base writing direction. Only left-to-right text is
// supported.
type WritingDirection int

const (
	WritingDirectionNatural WritingDirection = iota - 1
	WritingDirectionLeftToRight
	WritingDirectionRightToLeft
)

// View is the text-input surface: the coordinator's editing operations
// plus position, geometry and tokenizer queries over a layout engine.
type View struct {
	*Coordinator

	engine    LayoutEngine
	cfg       Config
	tokenizer *Tokenizer
}

// NewView returns a View editing storage laid out by engine.
func NewView(storage TextStorage, engine LayoutEngine, cfg Config) *View {
	cfg = cfg.normalized()
	v := &View{
		Coordinator: NewCoordinator(storage, cfg),
		engine:      engine,
		cfg:         cfg,
	}
	v.tokenizer = newTokenizer(storage)
	return v
}

func (v *View) Engine() LayoutEngine { return v.engine }

func (v *View) Config() Config { return v.cfg }

func (v *View) Tokenizer() *Tokenizer { return v.tokenizer }

// SetClipboard replaces the clipboard used by editing actions.
func (v *View) SetClipboard(c Clipboard) { v.cfg.Clipboard = c }

func (v *View) BeginningOfDocument() buffer.Position { return 0 }

func (v *View) EndOfDocument() buffer.Position { return buffer.Position(v.storage.Len()) }

// PositionFrom returns p moved by offset characters, clamped to the
// document.
func (v *View) PositionFrom(p buffer.Position, offset int) buffer.Position {
	return p.Offset(offset).Clamp(v.storage.Len())
}

// PositionInDirection moves p by offset characters left or right, or by
// offset lines up or down. ok is false for unsupported directions.
func (v *View) PositionInDirection(p buffer.Position, dir Direction, offset int) (buffer.Position, bool) {
	n := v.storage.Len()
	switch dir {
	case DirectionRight:
		return p.Offset(offset).Clamp(n), true
	case DirectionLeft:
		return p.Offset(-offset).Clamp(n), true
	case DirectionUp:
		return v.engine.Navigate(p.Clamp(n), layout.Up, offset).Clamp(n), true
	case DirectionDown:
		return v.engine.Navigate(p.Clamp(n), layout.Down, offset).Clamp(n), true
	default:
		log.Debugf("position in direction: unsupported direction %d", dir)
		return 0, false
	}
}

// TextRange returns the normalized range between from and to.
func (v *View) TextRange(from, to buffer.Position) buffer.Range {
	return buffer.NewRange(from, to)
}

func (v *View) Compare(a, b buffer.Position) int { return buffer.Compare(a, b) }

// OffsetBetween returns the signed distance from from to to.
func (v *View) OffsetBetween(from, to buffer.Position) int { return int(to - from) }

// PositionWithin returns the end of r farthest in dir.
func (v *View) PositionWithin(r buffer.Range, dir Direction) buffer.Position {
	switch dir {
	case DirectionUp, DirectionLeft:
		return r.Start()
	case DirectionDown, DirectionRight:
		return r.End()
	default:
		violate("positionWithin", "unknown direction %d", dir)
		return 0
	}
}

// CharacterRangeByExtending returns the one-character range next to p in
// dir, clamped to the document.
func (v *View) CharacterRangeByExtending(p buffer.Position, dir Direction) buffer.Range {
	n := v.storage.Len()
	switch dir {
	case DirectionUp, DirectionLeft:
		return buffer.NewRange(p.Offset(-1).Clamp(n), p)
	case DirectionDown, DirectionRight:
		return buffer.NewRange(p, p.Offset(1).Clamp(n))
	default:
		violate("characterRangeByExtending", "unknown direction %d", dir)
		return buffer.Range{}
	}
}

// BaseWritingDirection is always left-to-right.
func (v *View) BaseWritingDirection(p buffer.Position, dir StorageDirection) WritingDirection {
	return WritingDirectionLeftToRight
}

// SetBaseWritingDirection accepts only left-to-right (or natural, which is
// left-to-right here) and changes nothing.
func (v *View) SetBaseWritingDirection(wd WritingDirection, r buffer.Range) bool {
	switch wd {
	case WritingDirectionLeftToRight, WritingDirectionNatural:
		return true
	default:
		log.Warningf("set base writing direction: %d is not supported", wd)
		return false
	}
}

// CaretRect returns the one-unit-wide caret box at p. An empty document
// yields the configured default box; a position outside the document yields
// the trailing edge of the last character.
func (v *View) CaretRect(p buffer.Position) geom.Rect {
	if v.storage.Len() == 0 {
		return geom.Rect{Size: v.cfg.CaretSize}
	}
	r, _ := v.caretRect(p)
	return r
}

func (v *View) caretRect(p buffer.Position) (geom.Rect, bool) {
	n := v.storage.Len()
	if n == 0 {
		return geom.Rect{Size: v.cfg.CaretSize}, true
	}
	if p < 0 || int(p) > n {
		last, ok := v.engine.BoundingRect(buffer.Interval{Start: n - 1, End: n})
		if !ok {
			return geom.Rect{}, false
		}
		last.Origin.X = last.MaxX()
		last.Size.W = 1
		return last, true
	}
	r, ok := v.engine.BoundingRect(buffer.Interval{Start: int(p), End: int(p)})
	if !ok {
		return geom.Rect{}, false
	}
	r.Size.W = 1
	return r, true
}

// FirstRect returns the rect of the first line covered by r. A stale range
// yields the zero rect.
func (v *View) FirstRect(r buffer.Range) geom.Rect {
	iv, ok := r.Interval(v.storage.Len())
	if !ok {
		log.Warningf("first rect: stale range %v", r)
		return geom.Rect{}
	}
	if iv.IsEmpty() {
		rect, _ := v.engine.BoundingRect(iv)
		return rect
	}
	rects := v.engine.EnclosingRects(iv)
	if len(rects) == 0 {
		return geom.Rect{}
	}
	return rects[0]
}

// ClosestPosition returns the caret position nearest p. A point past the
// middle of a character resolves to the position after it.
func (v *View) ClosestPosition(p geom.Point) buffer.Position {
	n := v.storage.Len()
	idx, frac := v.engine.CharacterIndex(p)
	if frac > 0.5 && idx < n {
		idx++
	}
	return buffer.Position(idx).Clamp(n)
}

// ClosestPositionWithin is ClosestPosition clamped into r.
func (v *View) ClosestPositionWithin(p geom.Point, r buffer.Range) buffer.Position {
	pos := v.ClosestPosition(p)
	switch {
	case pos < r.Start():
		return r.Start()
	case pos > r.End():
		return r.End()
	default:
		return pos
	}
}

// CharacterRangeAt returns the character range starting at the position
// closest to p.
func (v *View) CharacterRangeAt(p geom.Point) buffer.Range {
	start := v.ClosestPosition(p)
	return buffer.NewRange(start, start.Offset(1).Clamp(v.storage.Len()))
}
