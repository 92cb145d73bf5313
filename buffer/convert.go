package buffer

import (
	"unicode/utf16"
	"unicode/utf8"
)

// OffsetClampMode controls how out-of-range offsets are treated.
type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

// OffsetUnit selects the code unit an external offset is counted in.
type OffsetUnit uint8

const (
	UnitByte OffsetUnit = iota
	UnitRune
	// UnitUTF16 matches input-method APIs that count UTF-16 code units.
	UnitUTF16
)

// PositionFromOffset converts an offset counted in unit into a document
// position. Offsets that land inside a character fail in both modes.
func (s *Storage) PositionFromOffset(off int, unit OffsetUnit, mode OffsetClampMode) (Position, bool) {
	if !validUnit(unit) {
		return 0, false
	}
	off, ok := clampOffset(off, s.unitLen(unit), mode)
	if !ok {
		return 0, false
	}

	cur := 0
	for i, c := range s.chars {
		if off == cur {
			return Position(i), true
		}
		next := cur + unitWidth(c, unit)
		if off < next {
			return 0, false
		}
		cur = next
	}
	if off == cur {
		return Position(len(s.chars)), true
	}
	return 0, false
}

// OffsetFromPosition converts p into an offset counted in unit.
func (s *Storage) OffsetFromPosition(p Position, unit OffsetUnit, mode OffsetClampMode) (int, bool) {
	if !validUnit(unit) {
		return 0, false
	}
	idx, ok := clampOffset(int(p), len(s.chars), mode)
	if !ok {
		return 0, false
	}
	off := 0
	for _, c := range s.chars[:idx] {
		off += unitWidth(c, unit)
	}
	return off, true
}

// RangeFromOffsets converts an external [start, end) pair into a range.
func (s *Storage) RangeFromOffsets(start, end int, unit OffsetUnit, mode OffsetClampMode) (Range, bool) {
	a, ok := s.PositionFromOffset(start, unit, mode)
	if !ok {
		return Range{}, false
	}
	b, ok := s.PositionFromOffset(end, unit, mode)
	if !ok {
		return Range{}, false
	}
	return NewRange(a, b), true
}

func (s *Storage) unitLen(unit OffsetUnit) int {
	total := 0
	for _, c := range s.chars {
		total += unitWidth(c, unit)
	}
	return total
}

func unitWidth(c string, unit OffsetUnit) int {
	switch unit {
	case UnitRune:
		return utf8.RuneCountInString(c)
	case UnitUTF16:
		n := 0
		for _, r := range c {
			if utf16.IsSurrogate(r) || r > 0xFFFF {
				n += 2
				continue
			}
			n++
		}
		return n
	default:
		return len(c)
	}
}

func validUnit(unit OffsetUnit) bool {
	return unit == UnitByte || unit == UnitRune || unit == UnitUTF16
}

func clampOffset(off, max int, mode OffsetClampMode) (int, bool) {
	switch mode {
	case OffsetError:
		if off < 0 || off > max {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		if off < 0 {
			return 0, true
		}
		if off > max {
			return max, true
		}
		return off, true
	default:
		return 0, false
	}
}
