package textview

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

const (
	DefaultOverscan         = 100
	DefaultOverscrollBottom = 80
)

// DefaultCaretSize is the caret box reported for an empty document.
var DefaultCaretSize = geom.Size{W: 1, H: 20}

// DefaultMarkedTextStyle highlights composition text with a light gray
// background.
var DefaultMarkedTextStyle = buffer.Attributes{buffer.AttrBackground: "#d3d3d3"}

// Config configures a View. Zero values select the defaults.
type Config struct {
	// Overscan is added above and below the visible rectangle when choosing
	// which fragments to materialize. Negative disables it.
	Overscan float64
	// OverscrollBottom is extra scrollable space below the last fragment.
	// Negative disables it.
	OverscrollBottom float64

	// CaretSize is the caret box reported for an empty document.
	CaretSize geom.Size

	// TypingAttributes are applied to inserted text.
	TypingAttributes buffer.Attributes
	// MarkedTextStyle is applied across marked text and removed when it is
	// committed. Nil selects DefaultMarkedTextStyle; use an empty map for no
	// highlight.
	MarkedTextStyle buffer.Attributes

	Clipboard Clipboard
	Delegate  InputDelegate
}

func (c Config) normalized() Config {
	switch {
	case c.Overscan == 0:
		c.Overscan = DefaultOverscan
	case c.Overscan < 0:
		c.Overscan = 0
	}
	switch {
	case c.OverscrollBottom == 0:
		c.OverscrollBottom = DefaultOverscrollBottom
	case c.OverscrollBottom < 0:
		c.OverscrollBottom = 0
	}
	if c.CaretSize.W <= 0 || c.CaretSize.H <= 0 {
		c.CaretSize = DefaultCaretSize
	}
	if c.MarkedTextStyle == nil {
		c.MarkedTextStyle = DefaultMarkedTextStyle
	}
	if c.Delegate == nil {
		c.Delegate = DelegateFuncs{}
	}
	return c
}
