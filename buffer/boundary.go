package buffer

import "github.com/iw2rmb/textkit/internal/grapheme"

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - a line break is a hard boundary
//
// Punctuation belongs to the surrounding word, so "foo.bar" is one word.

// PrevWordBoundary returns the start of the word at or before p.
func (s *Storage) PrevWordBoundary(p Position) Position {
	i := clampInt(int(p), 0, len(s.chars))
	lo := s.paragraphStart(i)
	for i > lo && grapheme.IsSpace(s.chars[i-1]) {
		i--
	}
	for i > lo && !grapheme.IsSpace(s.chars[i-1]) {
		i--
	}
	return Position(i)
}

// NextWordBoundary returns the end of the word at or after p.
func (s *Storage) NextWordBoundary(p Position) Position {
	i := clampInt(int(p), 0, len(s.chars))
	hi := s.paragraphContentEnd(i)
	for i < hi && grapheme.IsSpace(s.chars[i]) {
		i++
	}
	for i < hi && !grapheme.IsSpace(s.chars[i]) {
		i++
	}
	return Position(i)
}

// WordRange returns the word containing p. When p sits in whitespace the
// run of whitespace is returned instead, and a line break yields an empty
// range at p.
func (s *Storage) WordRange(p Position) Range {
	i := clampInt(int(p), 0, len(s.chars))
	lo := s.paragraphStart(i)
	hi := s.paragraphContentEnd(i)
	if lo == hi {
		return CaretRange(Position(i))
	}
	// Prefer the character after p, falling back to the one before at a line end.
	at := i
	if at >= hi {
		at = hi - 1
	}
	space := grapheme.IsSpace(s.chars[at])
	start, end := at, at+1
	for start > lo && grapheme.IsSpace(s.chars[start-1]) == space {
		start--
	}
	for end < hi && grapheme.IsSpace(s.chars[end]) == space {
		end++
	}
	return NewRange(Position(start), Position(end))
}

// ParagraphRange returns the paragraph containing p, including its trailing
// line break if it has one.
func (s *Storage) ParagraphRange(p Position) Range {
	i := clampInt(int(p), 0, len(s.chars))
	start := s.paragraphStart(i)
	end := s.paragraphContentEnd(i)
	if end < len(s.chars) {
		end++
	}
	return NewRange(Position(start), Position(end))
}

// Paragraphs splits the document at line breaks. Each interval includes its
// terminating line break. The last paragraph has none and may be empty, so
// an empty document has exactly one empty paragraph.
func (s *Storage) Paragraphs() []Interval {
	out := make([]Interval, 0, 8)
	start := 0
	for i, c := range s.chars {
		if grapheme.IsNewline(c) {
			out = append(out, Interval{Start: start, End: i + 1})
			start = i + 1
		}
	}
	return append(out, Interval{Start: start, End: len(s.chars)})
}

// paragraphStart returns the index just after the line break preceding i.
func (s *Storage) paragraphStart(i int) int {
	for i > 0 && !grapheme.IsNewline(s.chars[i-1]) {
		i--
	}
	return i
}

// paragraphContentEnd returns the index of the line break at or after i, or
// the document length.
func (s *Storage) paragraphContentEnd(i int) int {
	for i < len(s.chars) && !grapheme.IsNewline(s.chars[i]) {
		i++
	}
	return i
}
