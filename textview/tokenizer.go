package textview

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/internal/grapheme"
)

// Granularity is the unit a Tokenizer moves by.
type Granularity int

const (
	GranularityCharacter Granularity = iota
	GranularityWord
	GranularitySentence
	GranularityParagraph
	GranularityLine
	GranularityDocument
)

func (g Granularity) String() string {
	switch g {
	case GranularityCharacter:
		return "character"
	case GranularityWord:
		return "word"
	case GranularitySentence:
		return "sentence"
	case GranularityParagraph:
		return "paragraph"
	case GranularityLine:
		return "line"
	case GranularityDocument:
		return "document"
	default:
		return "unknown"
	}
}

// Boundaries answers the text-unit questions a Tokenizer needs.
// *buffer.Storage implements it.
type Boundaries interface {
	Len() int
	CharAt(i int) string
	PrevWordBoundary(p buffer.Position) buffer.Position
	NextWordBoundary(p buffer.Position) buffer.Position
	WordRange(p buffer.Position) buffer.Range
	ParagraphRange(p buffer.Position) buffer.Range
}

// Tokenizer finds character, word, paragraph and document boundaries.
// Sentence and line granularities are not supported and always report no
// boundary.
type Tokenizer struct {
	storage TextStorage
}

func newTokenizer(storage TextStorage) *Tokenizer {
	return &Tokenizer{storage: storage}
}

// text returns the storage itself when it can answer boundary queries, or
// a snapshot that can.
func (t *Tokenizer) text() Boundaries {
	if b, ok := t.storage.(Boundaries); ok {
		return b
	}
	return buffer.New(t.storage.String())
}

// IsAtBoundary reports whether p ends a unit (forward) or starts one
// (backward).
func (t *Tokenizer) IsAtBoundary(p buffer.Position, g Granularity, dir StorageDirection) bool {
	b := t.text()
	n := b.Len()
	if p < 0 || int(p) > n {
		return false
	}
	switch g {
	case GranularityCharacter:
		return true
	case GranularityWord:
		if dir == Forward {
			return int(p) > 0 && !isSpaceAt(b, int(p)-1) && (int(p) == n || isSpaceAt(b, int(p)))
		}
		return int(p) < n && !isSpaceAt(b, int(p)) && (p == 0 || isSpaceAt(b, int(p)-1))
	case GranularityParagraph:
		if dir == Forward {
			return int(p) == n || grapheme.IsNewline(b.CharAt(int(p)))
		}
		return p == 0 || grapheme.IsNewline(b.CharAt(int(p)-1))
	case GranularityDocument:
		if dir == Forward {
			return int(p) == n
		}
		return p == 0
	default:
		return false
	}
}

// IsWithinUnit reports whether p lies inside a unit of granularity g.
func (t *Tokenizer) IsWithinUnit(p buffer.Position, g Granularity, dir StorageDirection) bool {
	b := t.text()
	n := b.Len()
	if p < 0 || int(p) > n {
		return false
	}
	switch g {
	case GranularityCharacter:
		if dir == Forward {
			return int(p) < n
		}
		return p > 0
	case GranularityWord:
		i := int(p)
		if dir == Backward {
			i--
		}
		return i >= 0 && i < n && !isSpaceAt(b, i)
	case GranularityParagraph, GranularityDocument:
		return n > 0
	default:
		return false
	}
}

// PositionFromBoundary moves from p to the next boundary of granularity g
// in dir. ok is false when no such boundary exists.
func (t *Tokenizer) PositionFromBoundary(p buffer.Position, g Granularity, dir StorageDirection) (buffer.Position, bool) {
	b := t.text()
	n := b.Len()
	if p < 0 || int(p) > n {
		return 0, false
	}
	switch g {
	case GranularityCharacter:
		if dir == Forward {
			if int(p) >= n {
				return 0, false
			}
			return p + 1, true
		}
		if p == 0 {
			return 0, false
		}
		return p - 1, true
	case GranularityWord:
		return wordBoundaryFrom(b, p, dir)
	case GranularityParagraph:
		return paragraphBoundaryFrom(b, p, dir)
	case GranularityDocument:
		if dir == Forward {
			return buffer.Position(n), int(p) < n
		}
		return 0, p > 0
	default:
		return 0, false
	}
}

// RangeEnclosing returns the unit of granularity g around p.
func (t *Tokenizer) RangeEnclosing(p buffer.Position, g Granularity, dir StorageDirection) (buffer.Range, bool) {
	b := t.text()
	n := b.Len()
	if p < 0 || int(p) > n {
		return buffer.Range{}, false
	}
	switch g {
	case GranularityCharacter:
		i := int(p)
		if dir == Backward {
			i--
		}
		if i < 0 || i >= n {
			return buffer.Range{}, false
		}
		return buffer.NewRange(buffer.Position(i), buffer.Position(i+1)), true
	case GranularityWord:
		r := b.WordRange(p)
		if r.IsEmpty() || isSpaceAt(b, int(r.Start())) {
			return buffer.Range{}, false
		}
		return r, true
	case GranularityParagraph:
		return b.ParagraphRange(p), true
	case GranularityDocument:
		return buffer.NewRange(0, buffer.Position(n)), true
	default:
		return buffer.Range{}, false
	}
}

func wordBoundaryFrom(b Boundaries, p buffer.Position, dir StorageDirection) (buffer.Position, bool) {
	n := b.Len()
	if dir == Forward {
		for cur := p; int(cur) < n; {
			next := b.NextWordBoundary(cur)
			if next > p && !isSpaceAt(b, int(next)-1) {
				return next, true
			}
			if next == cur {
				// Stuck on a line break.
				next = cur + 1
			}
			cur = next
		}
		return 0, false
	}
	for cur := p; cur > 0; {
		prev := b.PrevWordBoundary(cur)
		if prev < p && int(prev) < n && !isSpaceAt(b, int(prev)) {
			return prev, true
		}
		if prev == cur {
			prev = cur - 1
		}
		cur = prev
	}
	return 0, false
}

func paragraphBoundaryFrom(b Boundaries, p buffer.Position, dir StorageDirection) (buffer.Position, bool) {
	n := b.Len()
	if dir == Forward {
		if int(p) >= n {
			return 0, false
		}
		end := contentEnd(b.ParagraphRange(p), b)
		if end > p {
			return end, true
		}
		// p sits on a line break: move to the end of the next paragraph.
		return contentEnd(b.ParagraphRange(p+1), b), true
	}
	if p == 0 {
		return 0, false
	}
	start := b.ParagraphRange(p).Start()
	if start < p {
		return start, true
	}
	return b.ParagraphRange(p - 1).Start(), true
}

// contentEnd is the end of r without its trailing line break.
func contentEnd(r buffer.Range, b Boundaries) buffer.Position {
	end := r.End()
	if end > r.Start() && grapheme.IsNewline(b.CharAt(int(end)-1)) {
		end--
	}
	return end
}

func isSpaceAt(b Boundaries, i int) bool {
	return grapheme.IsSpace(b.CharAt(i))
}
