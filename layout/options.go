package layout

// WrapMode controls how paragraphs wider than the container are displayed.
//
// WrapNone lays out one line per paragraph. WrapWord and WrapGrapheme soft
// wrap at the container width.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapGrapheme
)

func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapWord:
		return "word"
	case WrapGrapheme:
		return "grapheme"
	default:
		return "unknown"
	}
}

// Options configures an Engine. Zero values select the defaults.
type Options struct {
	// LineHeight is the height of one line. Defaults to 1.
	LineHeight float64
	// TabWidth is the tab stop interval in cells. Defaults to 4.
	TabWidth int
	WrapMode WrapMode

	// ParagraphSpacingTop and ParagraphSpacingBottom are added above and
	// below every paragraph.
	ParagraphSpacingTop    float64
	ParagraphSpacingBottom float64
	// LeadingPadding is the horizontal inset of every line.
	LeadingPadding float64
}

func (o Options) normalized() Options {
	if o.LineHeight <= 0 {
		o.LineHeight = 1
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	if o.ParagraphSpacingTop < 0 {
		o.ParagraphSpacingTop = 0
	}
	if o.ParagraphSpacingBottom < 0 {
		o.ParagraphSpacingBottom = 0
	}
	if o.LeadingPadding < 0 {
		o.LeadingPadding = 0
	}
	return o
}
