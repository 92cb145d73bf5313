// Package highlight turns chroma syntax tokens into buffer attribute runs.
//
// A Highlighter writes the same set of keys on every character (foreground,
// bold, italic, underline, token), so applying it again after an edit only
// reports the characters whose token styling actually changed. Other keys,
// such as a marked-text background, are left alone.
package highlight

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/tliron/commonlog"

	"github.com/iw2rmb/textkit/buffer"
)

const DefaultStyle = "monokai"

var log = commonlog.GetLogger("textkit.highlight")

// Keys lists every attribute key a Highlighter owns.
var Keys = []buffer.AttributeKey{
	buffer.AttrForeground,
	buffer.AttrBold,
	buffer.AttrItalic,
	buffer.AttrUnderline,
	buffer.AttrToken,
}

type Options struct {
	// Lexer is a chroma lexer name or alias, such as "go".
	Lexer string
	// Filename selects a lexer by extension when Lexer is empty or unknown.
	Filename string
	// Style is a chroma style name. Empty selects DefaultStyle.
	Style string
}

type Highlighter struct {
	opts  Options
	style *chroma.Style
	base  chroma.Colour
}

func New(opts Options) *Highlighter {
	name := opts.Style
	if name == "" {
		name = DefaultStyle
	}
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		opts:  opts,
		style: style,
		base:  style.Get(chroma.Text).Colour,
	}
}

// StyleName returns the resolved chroma style name.
func (h *Highlighter) StyleName() string { return h.style.Name }

// Background returns the style's background color as "#rrggbb", if set.
func (h *Highlighter) Background() (string, bool) {
	bg := h.style.Get(chroma.Background).Background
	if !bg.IsSet() {
		return "", false
	}
	return bg.String(), true
}

// Apply tokenises the whole document and updates highlight attributes in one
// editing transaction.
func (h *Highlighter) Apply(s *buffer.Storage) error {
	text := s.String()
	lexer := chroma.Coalesce(h.lexer(text))
	tokens, err := chroma.Tokenise(lexer, nil, text)
	if err != nil {
		return fmt.Errorf("highlight: tokenise with %s: %w", lexer.Config().Name, err)
	}

	spans := 0
	s.PerformEditingTransaction(func() {
		c := cursor{s: s}
		off := 0
		for _, tok := range tokens {
			if tok.Type == chroma.EOFType {
				break
			}
			end := off + len(tok.Value)
			iv := buffer.Interval{Start: c.floor(off), End: c.ceil(end)}
			off = end
			if iv.IsEmpty() {
				continue
			}
			s.AddAttributes(h.attributes(tok.Type), iv)
			spans++
		}
	})
	log.Debugf("highlight: %d token span(s) with %s/%s", spans, lexer.Config().Name, h.style.Name)
	return nil
}

// attributes maps a token type to the full set of highlight keys.
func (h *Highlighter) attributes(t chroma.TokenType) buffer.Attributes {
	entry := h.style.Get(t)
	fg := ""
	if entry.Colour.IsSet() && entry.Colour != h.base {
		fg = entry.Colour.String()
	}
	token := ""
	if fg != "" || entry.Bold == chroma.Yes || entry.Italic == chroma.Yes || entry.Underline == chroma.Yes {
		token = t.String()
	}
	return buffer.Attributes{
		buffer.AttrForeground: fg,
		buffer.AttrBold:       entry.Bold == chroma.Yes,
		buffer.AttrItalic:     entry.Italic == chroma.Yes,
		buffer.AttrUnderline:  entry.Underline == chroma.Yes,
		buffer.AttrToken:      token,
	}
}

func (h *Highlighter) lexer(text string) chroma.Lexer {
	if h.opts.Lexer != "" {
		if l := lexers.Get(h.opts.Lexer); l != nil {
			return l
		}
	}
	if h.opts.Filename != "" {
		if l := lexers.Match(h.opts.Filename); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// cursor maps ascending byte offsets of the storage text to character
// indexes.
type cursor struct {
	s   *buffer.Storage
	idx int
	off int
}

// floor returns the character holding byte offset b.
func (c *cursor) floor(b int) int {
	for c.idx < c.s.Len() {
		n := len(c.s.CharAt(c.idx))
		if c.off+n > b {
			break
		}
		c.off += n
		c.idx++
	}
	return c.idx
}

// ceil returns the first character starting at or after byte offset b.
func (c *cursor) ceil(b int) int {
	i := c.floor(b)
	if c.off < b && i < c.s.Len() {
		return i + 1
	}
	return i
}
