package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/internal/grapheme"
	"github.com/iw2rmb/textkit/textview"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.view.Insert(normalizeNewlines(string(msg.Runes)))
		}
		return m, nil
	}

	km := m.cfg.KeyMap
	if m.composing {
		if handled := m.updateCompose(msg); handled {
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, km.Compose):
		if !m.cfg.ReadOnly {
			m.composing = true
		}

	case key.Matches(msg, km.Left):
		m.moveHorizontal(textview.DirectionLeft, false)
	case key.Matches(msg, km.Right):
		m.moveHorizontal(textview.DirectionRight, false)
	case key.Matches(msg, km.Up):
		m.moveVertical(textview.DirectionUp, 1, false)
	case key.Matches(msg, km.Down):
		m.moveVertical(textview.DirectionDown, 1, false)

	case key.Matches(msg, km.ShiftLeft):
		m.moveHorizontal(textview.DirectionLeft, true)
	case key.Matches(msg, km.ShiftRight):
		m.moveHorizontal(textview.DirectionRight, true)
	case key.Matches(msg, km.ShiftUp):
		m.moveVertical(textview.DirectionUp, 1, true)
	case key.Matches(msg, km.ShiftDown):
		m.moveVertical(textview.DirectionDown, 1, true)

	case key.Matches(msg, km.WordLeft):
		m.moveByBoundary(textview.GranularityWord, textview.Backward)
	case key.Matches(msg, km.WordRight):
		m.moveByBoundary(textview.GranularityWord, textview.Forward)

	case key.Matches(msg, km.Home):
		m.moveToParagraphEdge(textview.Backward)
	case key.Matches(msg, km.End):
		m.moveToParagraphEdge(textview.Forward)
	case key.Matches(msg, km.PageUp):
		m.moveVertical(textview.DirectionUp, maxInt(m.host.height-1, 1), false)
	case key.Matches(msg, km.PageDown):
		m.moveVertical(textview.DirectionDown, maxInt(m.host.height-1, 1), false)

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.view.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.deleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.view.Insert("\n")
		}

	case key.Matches(msg, km.Copy):
		m.view.Perform(textview.ActionCopy)
	case key.Matches(msg, km.Cut):
		if !m.cfg.ReadOnly {
			m.view.Perform(textview.ActionCut)
		}
	case key.Matches(msg, km.Paste):
		if !m.cfg.ReadOnly {
			m.view.Perform(textview.ActionPaste)
		}
	case key.Matches(msg, km.SelectWord):
		m.view.Perform(textview.ActionSelect)
	case key.Matches(msg, km.SelectAll):
		m.view.Perform(textview.ActionSelectAll)

	default:
		if m.cfg.ReadOnly {
			return m, nil
		}
		switch msg.Type {
		case tea.KeyTab:
			m.view.Insert("\t")
		case tea.KeySpace:
			m.view.Insert(" ")
		case tea.KeyRunes:
			if len(msg.Runes) > 0 {
				m.view.Insert(normalizeNewlines(string(msg.Runes)))
			}
		}
	}

	return m, nil
}

// updateCompose handles keys while compose mode is on. Composition text
// lives in the document as marked text until it is committed.
func (m *Model) updateCompose(msg tea.KeyMsg) bool {
	km := m.cfg.KeyMap
	marked, hasMarked := m.view.MarkedRange()
	switch {
	case key.Matches(msg, km.Compose), key.Matches(msg, km.Enter):
		m.view.UnmarkText()
		m.composing = false
		return true
	case key.Matches(msg, km.Cancel):
		if hasMarked {
			m.view.ClearMarkedText()
		}
		m.composing = false
		return true
	case key.Matches(msg, km.Backspace):
		if !hasMarked {
			return false
		}
		text, _ := m.view.Text(marked)
		n := grapheme.Count(text)
		if n <= 1 {
			m.view.ClearMarkedText()
			return true
		}
		m.setComposition(grapheme.Slice(text, 0, n-1))
		return true
	}

	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return false
	}
	add := string(msg.Runes)
	if msg.Type == tea.KeySpace {
		add = " "
	}
	text := ""
	if hasMarked {
		text, _ = m.view.Text(marked)
	}
	m.setComposition(text + normalizeNewlines(add))
	return true
}

func (m *Model) setComposition(text string) {
	n := buffer.Position(grapheme.Count(text))
	m.view.SetMarkedText(text, buffer.CaretRange(n))
}

// moveHorizontal moves the head one character. Without extend, a non-empty
// selection collapses to its edge in dir.
func (m *Model) moveHorizontal(dir textview.Direction, extend bool) {
	r, ok := m.view.SelectedRange()
	if ok && !r.IsEmpty() && !extend {
		m.setCaret(m.view.PositionWithin(r, dir))
		return
	}
	head, ok := m.view.PositionInDirection(m.sel.head, dir, 1)
	if !ok {
		return
	}
	m.moveHead(head, extend)
}

func (m *Model) moveVertical(dir textview.Direction, rows int, extend bool) {
	head, ok := m.view.PositionInDirection(m.sel.head, dir, rows)
	if !ok {
		return
	}
	m.moveHead(head, extend)
}

func (m *Model) moveByBoundary(g textview.Granularity, dir textview.StorageDirection) {
	head, ok := m.view.Tokenizer().PositionFromBoundary(m.sel.head, g, dir)
	if !ok {
		return
	}
	m.moveHead(head, false)
}

func (m *Model) moveToParagraphEdge(dir textview.StorageDirection) {
	t := m.view.Tokenizer()
	if t.IsAtBoundary(m.sel.head, textview.GranularityParagraph, dir) {
		m.setCaret(m.sel.head)
		return
	}
	m.moveByBoundary(textview.GranularityParagraph, dir)
}

func (m *Model) deleteForward() {
	r, ok := m.view.SelectedRange()
	if !ok {
		return
	}
	if r.IsEmpty() {
		r = m.view.CharacterRangeByExtending(r.Start(), textview.DirectionRight)
		if r.IsEmpty() {
			return
		}
	}
	m.view.Replace(r, "")
}

func (m *Model) moveHead(head buffer.Position, extend bool) {
	if !extend {
		m.setCaret(head)
		return
	}
	m.sel.head = head
	m.view.SetSelectedRange(buffer.NewRange(m.sel.anchor, head))
}

func (m *Model) setCaret(p buffer.Position) {
	m.sel.anchor, m.sel.head = p, p
	m.view.SetSelectedRange(buffer.CaretRange(p))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
