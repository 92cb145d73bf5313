package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/textkit/buffer"
)

// styleCache maps character attributes to lipgloss styles derived from a
// base text style.
//
// Each distinct attribute set gets a small id so the renderer can merge
// neighbouring cells without comparing styles. Id 0 is the base style.
type styleCache struct {
	base   lipgloss.Style
	ids    map[string]int
	styles []lipgloss.Style
}

func newStyleCache(base lipgloss.Style) *styleCache {
	return &styleCache{
		base:   base,
		ids:    make(map[string]int),
		styles: []lipgloss.Style{base},
	}
}

func (c *styleCache) get(id int) lipgloss.Style {
	if id < 0 || id >= len(c.styles) {
		return c.base
	}
	return c.styles[id]
}

// id returns the style id for attrs, building the style on first use.
func (c *styleCache) id(attrs buffer.Attributes) int {
	if len(attrs) == 0 {
		return 0
	}
	key := attributesKey(attrs)
	if id, ok := c.ids[key]; ok {
		return id
	}
	st := c.base
	if fg, ok := attrs.String(buffer.AttrForeground); ok && fg != "" {
		st = st.Foreground(lipgloss.Color(fg))
	}
	if bg, ok := attrs.String(buffer.AttrBackground); ok && bg != "" {
		st = st.Background(lipgloss.Color(bg))
	}
	if attrs.Bool(buffer.AttrBold) {
		st = st.Bold(true)
	}
	if attrs.Bool(buffer.AttrItalic) {
		st = st.Italic(true)
	}
	if attrs.Bool(buffer.AttrUnderline) {
		st = st.Underline(true)
	}
	id := len(c.styles)
	c.styles = append(c.styles, st)
	c.ids[key] = id
	return id
}

func attributesKey(attrs buffer.Attributes) string {
	var sb strings.Builder
	for _, k := range attrs.Keys() {
		fmt.Fprintf(&sb, "%s=%v;", k, attrs[k])
	}
	return sb.String()
}
