package layout

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CellWidth returns the terminal cell width of one character drawn at
// visualCol. Tabs advance to the next tab stop.
func CellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		// Some clusters (emoji with variation selectors) report zero in
		// runewidth but not in uniseg.
		if fallback := uniseg.StringWidth(text); fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	adv := tabWidth - visualCol%tabWidth
	if adv < 1 {
		return 1
	}
	return adv
}
