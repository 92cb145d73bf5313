package editor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/textkit/buffer"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

type brokenClipboard struct{}

func (brokenClipboard) ReadText() (string, error) { return "", errors.New("no clipboard") }
func (brokenClipboard) WriteText(string) error    { return errors.New("no clipboard") }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func keys(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

// caret returns the caret position, failing when the selection is not empty.
func caret(t *testing.T, m Model) buffer.Position {
	t.Helper()
	r, ok := m.TextView().SelectedRange()
	if !ok || !r.IsEmpty() {
		t.Fatalf("selection=%v ok=%v, want a caret", r, ok)
	}
	return r.Start()
}

func selection(t *testing.T, m Model) buffer.Range {
	t.Helper()
	r, ok := m.TextView().SelectedRange()
	if !ok {
		t.Fatalf("no selection")
	}
	return r
}

// numberedLines returns "l0\nl1\n..." with n lines.
func numberedLines(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "l%d", i)
	}
	return sb.String()
}

// viewLines returns the rendered rows without trailing padding.
func viewLines(m Model) []string {
	lines := strings.Split(m.View(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}
