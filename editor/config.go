package editor

import (
	"time"

	"github.com/iw2rmb/textkit/highlight"
	"github.com/iw2rmb/textkit/layout"
	"github.com/iw2rmb/textkit/textview"
)

// Config configures the editor Model.
type Config struct {
	// Initial document text.
	Text string

	// Rendering options.
	ShowLineNums bool
	// Style has no implicit default; pass DefaultStyle() for the stock look.
	Style    Style
	WrapMode layout.WrapMode
	TabWidth int

	// KeyMap defaults to DefaultKeyMap when left zero.
	KeyMap   KeyMap
	ReadOnly bool

	// Clipboard backs copy, cut and paste. Nil disables them.
	Clipboard textview.Clipboard

	// Highlight enables chroma syntax attributes when non-nil.
	Highlight *highlight.Options

	ScrollPolicy ScrollPolicy

	// Overscan is passed to the viewport controller; zero selects the
	// textview default.
	Overscan float64

	// OnChange is called after an update that changed the text, selection or
	// marked range.
	OnChange func(ChangeEvent)

	// Now is the clock used for floating-cursor animation. Nil uses time.Now.
	Now func() time.Time
}
