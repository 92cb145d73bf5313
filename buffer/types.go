package buffer

import (
	"fmt"
	"strconv"
)

// Position is a document offset in characters (grapheme clusters).
//
// Positions are plain values: they are not updated when the document changes.
// Callers recompute them after an edit and clamp stale ones with Clamp.
type Position int

// Offset returns p moved by n characters. The result is not clamped.
func (p Position) Offset(n int) Position {
	return p + Position(n)
}

// Clamp clamps p into [0, length].
func (p Position) Clamp(length int) Position {
	return Position(clampInt(int(p), 0, length))
}

func (p Position) String() string { return strconv.Itoa(int(p)) }

// Compare orders positions by value: -1 when a < b, 1 when a > b, 0 otherwise.
func Compare(a, b Position) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Range is a half-open span of positions: [Start, End).
// Start <= End always holds; NewRange swaps reversed bounds.
type Range struct {
	start Position
	end   Position
}

// NewRange returns the normalized range between a and b.
func NewRange(a, b Position) Range {
	if a > b {
		a, b = b, a
	}
	return Range{start: a, end: b}
}

// CaretRange returns the empty range at p.
func CaretRange(p Position) Range {
	return Range{start: p, end: p}
}

func (r Range) Start() Position { return r.start }

func (r Range) End() Position { return r.end }

func (r Range) IsEmpty() bool { return r.start >= r.end }

// Len returns the number of characters covered by r.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.end - r.start)
}

// Contains reports whether p lies in [Start, End).
func (r Range) Contains(p Position) bool {
	return p >= r.start && p < r.end
}

// Clamp clamps both bounds into [0, length].
func (r Range) Clamp(length int) Range {
	return Range{start: r.start.Clamp(length), end: r.end.Clamp(length)}
}

// Interval converts r into an index interval over a document of the given
// length. It fails when either bound falls outside [0, length]; this is the
// staleness check every mutation goes through.
func (r Range) Interval(length int) (Interval, bool) {
	if r.start < 0 || r.end < 0 {
		return Interval{}, false
	}
	if int(r.start) > length || int(r.end) > length {
		return Interval{}, false
	}
	return Interval{Start: int(r.start), End: int(r.end)}, true
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.start, r.end)
}

// Interval is a validated index interval [Start, End) over the character
// sequence of a Storage.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) Len() int {
	if iv.End < iv.Start {
		return 0
	}
	return iv.End - iv.Start
}

func (iv Interval) IsEmpty() bool { return iv.End <= iv.Start }

// Range returns iv as a position range.
func (iv Interval) Range() Range {
	return NewRange(Position(iv.Start), Position(iv.End))
}

// Intersects reports whether iv and o share at least one index. An empty
// interval intersects nothing.
func (iv Interval) Intersects(o Interval) bool {
	return !iv.IsEmpty() && !o.IsEmpty() && iv.Start < o.End && o.Start < iv.End
}

// Union returns the smallest interval covering both iv and o.
func (iv Interval) Union(o Interval) Interval {
	return Interval{Start: minInt(iv.Start, o.Start), End: maxInt(iv.End, o.End)}
}

func (iv Interval) String() string {
	return fmt.Sprintf("{%d, %d}", iv.Start, iv.End)
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
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
