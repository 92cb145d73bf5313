package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/textkit/buffer"
)

const (
	wheelRows = 3
	// floatingTickInterval drives the floating-cursor animation.
	floatingTickInterval = 16 * time.Millisecond
)

type floatingTickMsg struct{}

func floatingTick() tea.Cmd {
	return tea.Tick(floatingTickInterval, func(time.Time) tea.Msg { return floatingTickMsg{} })
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if isManualScrollMouse(msg) {
		if m.cfg.ScrollPolicy == ScrollAllowManual {
			rows := wheelRows
			if msg.Button == tea.MouseButtonWheelUp {
				rows = -rows
			}
			if m.host.scrollBy(rows) {
				m.vc.Layout()
			}
		}
		return m, nil
	}

	if !m.focused {
		return m, nil
	}

	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonLeft:
		m.updateLeftButton(msg)
		return m, nil
	case tea.MouseButtonRight:
		return m.updateFloating(msg)
	case tea.MouseButtonNone:
		// Motion and release events may not carry the button.
		if m.floating {
			return m.updateFloating(msg)
		}
		m.updateLeftButton(msg)
	}
	return m, nil
}

func (m *Model) updateLeftButton(msg tea.MouseMsg) {
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return
		}
		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			m.moveHead(p, true)
		} else {
			m.setCaret(p)
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.moveHead(m.screenToDocPos(x, y), true)

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
}

// updateFloating drives the floating cursor: press begins a session, motion
// moves the indicator and release commits the caret.
func (m Model) updateFloating(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, nil
		}
		m.floating = true
		m.fc.Begin(m.screenToDocPoint(msg.X, msg.Y))
		return m, floatingTick()

	case tea.MouseActionMotion:
		if !m.floating {
			return m, nil
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.fc.Update(m.screenToDocPoint(x, y))

	case tea.MouseActionRelease:
		if !m.floating {
			return m, nil
		}
		m.floating = false
		if p, ok := m.fc.End(); ok {
			m.setCaret(p)
		}
		return m, floatingTick()
	}
	return m, nil
}

func (m Model) updateFloatingTick() (Model, tea.Cmd) {
	if m.fc.Animating(m.cfg.Now()) {
		return m, floatingTick()
	}
	return m, nil
}

// FloatingPosition returns the position under the floating cursor while a
// session is active.
func (m Model) FloatingPosition() (buffer.Position, bool) {
	if !m.floating {
		return 0, false
	}
	return m.fc.Position()
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
