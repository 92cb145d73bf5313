package editor

import (
	"fmt"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/textkit/layout"
)

func TestRender_LineNumberAlignment_1To120(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("x")
	}

	m := New(Config{
		Text:         sb.String(),
		ShowLineNums: true,
	})
	m = m.Blur()
	m = m.SetSize(10, 120)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 120 {
		t.Fatalf("expected 120 lines, got %d", len(lines))
	}

	digits := 3
	for i, line := range lines {
		wantPrefix := fmt.Sprintf("%*d x", digits, i+1)
		if !strings.HasPrefix(line, wantPrefix) {
			t.Fatalf("line %d prefix: got %q, want prefix %q", i+1, line, wantPrefix)
		}
	}
}

func TestRender_WrappedParagraphNumbersFirstRowOnly(t *testing.T) {
	m := New(Config{
		Text:         "aaaa bbbb\nc",
		ShowLineNums: true,
		WrapMode:     layout.WrapWord,
	})
	m = m.Blur()
	m = m.SetSize(7, 4) // two gutter cells leave five for text

	got := viewLines(m)
	want := []string{"1 aaaa", "  bbbb", "2 c", "  "}
	for i := range want {
		if strings.TrimRight(got[i], " ") != strings.TrimRight(want[i], " ") {
			t.Fatalf("row %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRender_OnlyVisibleRowsAreRendered(t *testing.T) {
	m := New(Config{Text: numberedLines(1000)})
	m = m.SetSize(20, 5)

	got := viewLines(m)
	want := []string{"l0", "l1", "l2", "l3", "l4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %q, want %q", i, got[i], want[i])
		}
	}

	st := m.ViewportState()
	if st.Materialized == 0 || st.Materialized >= 1000 {
		t.Fatalf("materialized fragments: got %d, want a window", st.Materialized)
	}
	if st.ContentHeight != 1000 {
		t.Fatalf("content height: got %d, want %d", st.ContentHeight, 1000)
	}
}

func TestRender_WheelScrollsAndFollowPolicyIgnoresIt(t *testing.T) {
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}

	m := New(Config{Text: numberedLines(50)})
	m = m.SetSize(20, 5)
	m = keys(m, wheel)
	if got := viewLines(m)[0]; got != "l3" {
		t.Fatalf("first row after wheel: got %q, want %q", got, "l3")
	}
	if got := caret(t, m); got != 0 {
		t.Fatalf("wheel moved the caret to %v", got)
	}

	m = New(Config{Text: numberedLines(50), ScrollPolicy: ScrollFollowCursorOnly})
	m = m.SetSize(20, 5)
	m = keys(m, wheel)
	if got := viewLines(m)[0]; got != "l0" {
		t.Fatalf("first row after ignored wheel: got %q, want %q", got, "l0")
	}
}

func TestRender_ScrollStopsAtLastRow(t *testing.T) {
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	m := New(Config{Text: numberedLines(7)})
	m = m.SetSize(20, 5)
	m = keys(m, wheel, wheel, wheel)
	if got := m.ViewportState().TopRow; got != 2 {
		t.Fatalf("top row: got %d, want %d", got, 2)
	}
}

func TestRender_CaretFollow(t *testing.T) {
	m := New(Config{Text: numberedLines(100)})
	m = m.SetSize(20, 5)

	for i := 0; i < 10; i++ {
		m = keys(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.ViewportState().TopRow; got != 6 {
		t.Fatalf("top row after moving down: got %d, want %d", got, 6)
	}
	if got := viewLines(m)[4]; got != "l10" {
		t.Fatalf("last row: got %q, want %q", got, "l10")
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlA}, tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.ViewportState().TopRow; got != 0 {
		t.Fatalf("top row after jumping to start: got %d, want %d", got, 0)
	}
}

func TestRender_NoWrapScrollsHorizontally(t *testing.T) {
	m := New(Config{Text: "0123456789"})
	m = m.SetSize(4, 1)
	m = keys(m, tea.KeyMsg{Type: tea.KeyEnd})
	if got := m.ViewportState().LeftCellOffset; got != 7 {
		t.Fatalf("left offset: got %d, want %d", got, 7)
	}
	if got := viewLines(m)[0]; got != "789" {
		t.Fatalf("row: got %q, want %q", got, "789")
	}
}

func TestRender_OverlaysUseStyles(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)

	st := Style{
		Text:      r.NewStyle(),
		Selection: r.NewStyle().Reverse(true),
		Cursor:    r.NewStyle().Underline(true),
	}
	m := New(Config{Text: "abcd", Style: st})
	m = m.SetSize(10, 1)

	// Caret at the start.
	want := st.Cursor.Inherit(st.Text).Render("a") + st.Text.Render("bcd")
	if got := m.renderContent(); got != want {
		t.Fatalf("caret render:\n got: %q\nwant: %q", got, want)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyShiftRight}, tea.KeyMsg{Type: tea.KeyShiftRight})
	want = st.Selection.Inherit(st.Text).Render("ab") + st.Text.Render("cd")
	if got := m.renderContent(); got != want {
		t.Fatalf("selection render:\n got: %q\nwant: %q", got, want)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyEnd})
	want = st.Text.Render("abcd") + st.Cursor.Inherit(st.Text).Render(" ")
	if got := m.renderContent(); got != want {
		t.Fatalf("end caret render:\n got: %q\nwant: %q", got, want)
	}

	m = m.Blur()
	if got, want := m.renderContent(), st.Text.Render("abcd"); got != want {
		t.Fatalf("blurred render:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_SetWrapModeRewraps(t *testing.T) {
	m := New(Config{Text: "aaaa bbbb"})
	m = m.Blur()
	m = m.SetSize(5, 2)
	if got := viewLines(m); got[0] != "aaaa" || got[1] != "" {
		t.Fatalf("unwrapped rows: %q", got)
	}

	m = m.SetWrapMode(layout.WrapWord)
	if got := viewLines(m); got[0] != "aaaa" || got[1] != "bbbb" {
		t.Fatalf("word-wrapped rows: %q", got)
	}
	if m.WrapMode() != layout.WrapWord {
		t.Fatalf("wrap mode=%v", m.WrapMode())
	}
}
