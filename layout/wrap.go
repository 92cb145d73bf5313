package layout

import (
	"github.com/iw2rmb/textkit/internal/grapheme"
)

type wrapUnit struct {
	text  string
	width int

	isWhitespace bool
	isPunct      bool
}

// measure returns the cell width of every character in chars, a paragraph
// without its line break. Zero-width clusters still take one cell so they
// can hold a caret.
func measure(chars []string, tabWidth int) []int {
	widths := make([]int, len(chars))
	col := 0
	for i, c := range chars {
		w := CellWidth(c, col, tabWidth)
		if w < 1 {
			w = 1
		}
		widths[i] = w
		col += w
	}
	return widths
}

// wrapParagraph splits a measured paragraph into line spans [start, end)
// that fit width cells. width <= 0 or WrapNone yields one span.
func wrapParagraph(chars []string, widths []int, mode WrapMode, width int) [][2]int {
	if len(chars) == 0 || width <= 0 || mode == WrapNone {
		return [][2]int{{0, len(chars)}}
	}

	units := make([]wrapUnit, len(chars))
	total := 0
	for i, c := range chars {
		units[i] = wrapUnit{
			text:         c,
			width:        widths[i],
			isWhitespace: grapheme.IsSpace(c),
			isPunct:      grapheme.IsPunct(c),
		}
		total += widths[i]
	}

	spans := make([][2]int, 0, 1+total/width)
	for start := 0; start < len(units); {
		used := 0
		overflow := start
		for overflow < len(units) {
			w := units[overflow].width
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if mode == WrapWord && overflow < len(units) {
			if br, ok := findWordWrapBreak(units, start, overflow); ok {
				end = br
			} else {
				end = avoidLeadingPunctuation(units, start, overflow)
			}
		}
		if end <= start {
			end = start + 1
		}

		spans = append(spans, [2]int{start, end})
		start = end
	}
	return spans
}

// findWordWrapBreak returns the index just after the last whitespace run in
// [start, overflow).
func findWordWrapBreak(units []wrapUnit, start, overflow int) (int, bool) {
	lastBreak := -1
	i := start
	for i < overflow {
		if !units[i].isWhitespace {
			i++
			continue
		}
		j := i + 1
		for j < overflow && units[j].isWhitespace {
			j++
		}
		lastBreak = j
		i = j
	}
	if lastBreak <= start {
		return 0, false
	}
	return lastBreak, true
}

// avoidLeadingPunctuation moves a forced break back one unit when the next
// line would otherwise start with punctuation.
func avoidLeadingPunctuation(units []wrapUnit, start, overflow int) int {
	if overflow >= len(units) || !units[overflow].isPunct {
		return overflow
	}
	if overflow-1 > start {
		return overflow - 1
	}
	return overflow
}
