package buffer

import (
	"github.com/iw2rmb/textkit/internal/grapheme"
)

// Storage owns the mutable character sequence and its attribute runs.
//
// Storage is not safe for concurrent use; all calls must come from the thread
// that drives the surface.
type Storage struct {
	chars []string
	attrs []Attributes

	version   uint64
	observers []Observer
	tx        editTransaction
}

// New returns a Storage holding text with no attributes.
func New(text string) *Storage {
	chars := grapheme.Split(text)
	return &Storage{
		chars: chars,
		attrs: make([]Attributes, len(chars)),
	}
}

// NewAttributed returns a Storage holding text with attrs applied throughout.
func NewAttributed(text string, attrs Attributes) *Storage {
	s := New(text)
	shared := attrs.clone()
	for i := range s.attrs {
		s.attrs[i] = shared
	}
	return s
}

// Len returns the document length in characters.
func (s *Storage) Len() int { return len(s.chars) }

// Version increases on every effective mutation.
func (s *Storage) Version() uint64 { return s.version }

func (s *Storage) String() string { return grapheme.Join(s.chars) }

// Substring returns the text in iv, clamped to the document.
func (s *Storage) Substring(iv Interval) string {
	iv = s.clampInterval(iv)
	return grapheme.Join(s.chars[iv.Start:iv.End])
}

// CharAt returns the character at index i, or "" when i is out of range.
func (s *Storage) CharAt(i int) string {
	if i < 0 || i >= len(s.chars) {
		return ""
	}
	return s.chars[i]
}

// AttributesAt returns the attributes of the character at index i.
// The returned map must not be modified.
func (s *Storage) AttributesAt(i int) Attributes {
	if i < 0 || i >= len(s.attrs) {
		return nil
	}
	return s.attrs[i]
}

// Runs returns the attribute runs covering iv in document order.
func (s *Storage) Runs(iv Interval) []Run {
	iv = s.clampInterval(iv)
	if iv.IsEmpty() {
		return nil
	}
	var out []Run
	start := iv.Start
	for i := iv.Start + 1; i <= iv.End; i++ {
		if i < iv.End && attributesEqual(s.attrs[i], s.attrs[start]) {
			continue
		}
		out = append(out, Run{
			Interval:   Interval{Start: start, End: i},
			Attributes: s.attrs[start],
		})
		start = i
	}
	return out
}

// Replace replaces the characters in iv with text. Inserted characters carry
// attrs. iv is clamped into the document.
func (s *Storage) Replace(iv Interval, text string, attrs Attributes) {
	iv = s.clampInterval(iv)
	ins := grapheme.Split(text)
	if iv.IsEmpty() && len(ins) == 0 {
		return
	}

	s.beginEditing()
	defer s.endEditing()

	shared := attrs.clone()
	insAttrs := make([]Attributes, len(ins))
	for i := range insAttrs {
		insAttrs[i] = shared
	}

	tail := len(s.chars) - iv.End
	chars := make([]string, 0, iv.Start+len(ins)+tail)
	chars = append(chars, s.chars[:iv.Start]...)
	chars = append(chars, ins...)
	chars = append(chars, s.chars[iv.End:]...)

	at := make([]Attributes, 0, cap(chars))
	at = append(at, s.attrs[:iv.Start]...)
	at = append(at, insAttrs...)
	at = append(at, s.attrs[iv.End:]...)

	s.chars = chars
	s.attrs = at
	s.recordEdit(EditedCharacters, iv.Start, iv.End, len(ins))
}

// Insert inserts text at index at.
func (s *Storage) Insert(at int, text string, attrs Attributes) {
	s.Replace(Interval{Start: at, End: at}, text, attrs)
}

// Delete removes the characters in iv.
func (s *Storage) Delete(iv Interval) {
	s.Replace(iv, "", nil)
}

// AddAttributes sets attrs on every character in iv. Only the span of
// characters whose attributes actually changed is reported as edited.
func (s *Storage) AddAttributes(attrs Attributes, iv Interval) {
	if len(attrs) == 0 {
		return
	}
	s.editAttributes(iv, func(cur Attributes) (Attributes, bool) {
		return cur.merged(attrs)
	})
}

// RemoveAttribute clears key on every character in iv.
func (s *Storage) RemoveAttribute(key AttributeKey, iv Interval) {
	s.editAttributes(iv, func(cur Attributes) (Attributes, bool) {
		return cur.without(key)
	})
}

// SetAttributes replaces the attributes of every character in iv.
func (s *Storage) SetAttributes(attrs Attributes, iv Interval) {
	shared := attrs.clone()
	s.editAttributes(iv, func(cur Attributes) (Attributes, bool) {
		if attributesEqual(cur, shared) {
			return cur, false
		}
		return shared, true
	})
}

func (s *Storage) editAttributes(iv Interval, edit func(Attributes) (Attributes, bool)) {
	iv = s.clampInterval(iv)
	if iv.IsEmpty() {
		return
	}

	s.beginEditing()
	defer s.endEditing()

	first, last := -1, -1
	// Consecutive characters usually share one map; reuse the edited result.
	var prevIn, prevOut Attributes
	var prevChanged, havePrev bool
	for i := iv.Start; i < iv.End; i++ {
		cur := s.attrs[i]
		var next Attributes
		var changed bool
		if havePrev && attributesEqual(cur, prevIn) {
			next, changed = prevOut, prevChanged
		} else {
			next, changed = edit(cur)
			prevIn, prevOut, prevChanged, havePrev = cur, next, changed, true
		}
		if !changed {
			continue
		}
		s.attrs[i] = next
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return
	}
	s.recordEdit(EditedAttributes, first, last+1, last+1-first)
}

func (s *Storage) clampInterval(iv Interval) Interval {
	n := len(s.chars)
	start := clampInt(iv.Start, 0, n)
	end := clampInt(iv.End, 0, n)
	if end < start {
		start, end = end, start
	}
	return Interval{Start: start, End: end}
}
