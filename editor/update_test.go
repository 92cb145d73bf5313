package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/textkit/buffer"
)

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{
		Text:  "ab",
		Style: Style{}, // keep styles minimal for this test
	})

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight}, runes("X"))
	if got := m.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := caret(t, m); got != 2 {
		t.Fatalf("caret after insert: got %v, want %v", got, 2)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := caret(t, m); got != 1 {
		t.Fatalf("caret after backspace: got %v, want %v", got, 1)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.Text(); got != "a" {
		t.Fatalf("text after delete: got %q, want %q", got, "a")
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyDelete})
	if got := m.Text(); got != "a" {
		t.Fatalf("text after delete at end: got %q, want %q", got, "a")
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{
		Text:      "ab",
		ReadOnly:  true,
		Clipboard: &memClipboard{s: "zz"},
	})

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := caret(t, m); got != 1 {
		t.Fatalf("caret after move: got %v, want %v", got, 1)
	}

	m = keys(m,
		runes("X"),
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyCtrlV},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p"), Paste: true},
	)
	if got := m.Text(); got != "ab" {
		t.Fatalf("text after edits in read-only: got %q, want %q", got, "ab")
	}
	if got := caret(t, m); got != 1 {
		t.Fatalf("caret after edits in read-only: got %v, want %v", got, 1)
	}
}

func TestUpdate_ShiftExtendsAndPlainMoveCollapses(t *testing.T) {
	m := New(Config{Text: "hello world"})

	m = keys(m,
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyShiftRight},
	)
	if got, want := selection(t, m), buffer.NewRange(0, 3); got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyShiftLeft})
	if got, want := selection(t, m), buffer.NewRange(0, 2); got != want {
		t.Fatalf("selection after shrinking: got %v, want %v", got, want)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight})
	if got := caret(t, m); got != 2 {
		t.Fatalf("caret after collapsing right: got %v, want %v", got, 2)
	}

	// Extending past the anchor flips the selection.
	m = keys(m,
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyShiftLeft},
		tea.KeyMsg{Type: tea.KeyShiftLeft},
	)
	if got, want := selection(t, m), buffer.NewRange(1, 2); got != want {
		t.Fatalf("selection after flipping: got %v, want %v", got, want)
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := caret(t, m); got != 1 {
		t.Fatalf("caret after collapsing left: got %v, want %v", got, 1)
	}
}

func TestUpdate_WordAndParagraphMovement(t *testing.T) {
	m := New(Config{Text: "hello world\nnext line"})

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if got := caret(t, m); got != 5 {
		t.Fatalf("caret after word right: got %v, want %v", got, 5)
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if got := caret(t, m); got != 11 {
		t.Fatalf("caret after second word right: got %v, want %v", got, 11)
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if got := caret(t, m); got != 6 {
		t.Fatalf("caret after word left: got %v, want %v", got, 6)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyHome})
	if got := caret(t, m); got != 0 {
		t.Fatalf("caret after home: got %v, want %v", got, 0)
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyEnd})
	if got := caret(t, m); got != 11 {
		t.Fatalf("caret after end: got %v, want %v", got, 11)
	}
	// End at the end of a paragraph stays put.
	m = keys(m, tea.KeyMsg{Type: tea.KeyEnd})
	if got := caret(t, m); got != 11 {
		t.Fatalf("caret after second end: got %v, want %v", got, 11)
	}
}

func TestUpdate_VerticalMovementKeepsColumn(t *testing.T) {
	m := New(Config{Text: "abc\nde\nfghi"})
	m = m.SetSize(20, 5)

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	if got := caret(t, m); got != 5 {
		t.Fatalf("caret after down: got %v, want %v", got, 5)
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyDown})
	if got := caret(t, m); got != 8 {
		t.Fatalf("caret after second down: got %v, want %v", got, 8)
	}
	m = keys(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if got := caret(t, m); got != 1 {
		t.Fatalf("caret after up: got %v, want %v", got, 1)
	}
}

func TestUpdate_EnterTabAndPaste(t *testing.T) {
	m := New(Config{Text: ""})

	m = keys(m,
		runes("a"),
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x\r\ny\rz"), Paste: true},
	)
	if got, want := m.Text(), "a\n\t x\ny\nz"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := caret(t, m); got != buffer.Position(len("a\n\t x\ny\nz")) {
		t.Fatalf("caret: got %v", got)
	}
}

func TestUpdate_ClipboardActions(t *testing.T) {
	clip := &memClipboard{}
	m := New(Config{Text: "hello world", Clipboard: clip})

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlW})
	if got, want := selection(t, m), buffer.NewRange(0, 5); got != want {
		t.Fatalf("selection after select word: got %v, want %v", got, want)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if clip.s != "hello" {
		t.Fatalf("clipboard after copy: got %q, want %q", clip.s, "hello")
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.Text(); got != " world" {
		t.Fatalf("text after cut: got %q, want %q", got, " world")
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyEnd}, tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.Text(); got != " worldhello" {
		t.Fatalf("text after paste: got %q, want %q", got, " worldhello")
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlA})
	if got, want := selection(t, m), buffer.NewRange(0, 11); got != want {
		t.Fatalf("selection after select all: got %v, want %v", got, want)
	}
}

func TestUpdate_BrokenClipboardDoesNotEdit(t *testing.T) {
	m := New(Config{Text: "abc", Clipboard: brokenClipboard{}})
	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlA}, tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.Text(); got != "abc" {
		t.Fatalf("text after failed cut: got %q, want %q", got, "abc")
	}
}

func TestUpdate_ComposeMarksThenCommits(t *testing.T) {
	m := New(Config{Text: "ab"})

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyCtrlK})
	if !m.Composing() {
		t.Fatalf("compose mode not entered")
	}

	m = keys(m, runes("n"), runes("i"))
	if got := m.Text(); got != "anib" {
		t.Fatalf("text while composing: got %q, want %q", got, "anib")
	}
	marked, ok := m.TextView().MarkedRange()
	if !ok || marked != buffer.NewRange(1, 3) {
		t.Fatalf("marked=%v ok=%v, want [1, 3)", marked, ok)
	}
	if got := caret(t, m); got != 3 {
		t.Fatalf("caret while composing: got %v, want %v", got, 3)
	}
	if bg, _ := m.Storage().AttributesAt(1).String(buffer.AttrBackground); bg == "" {
		t.Fatalf("marked text has no highlight")
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Text(); got != "anb" {
		t.Fatalf("text after compose backspace: got %q, want %q", got, "anb")
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Composing() {
		t.Fatalf("compose mode still on after commit")
	}
	if _, ok := m.TextView().MarkedRange(); ok {
		t.Fatalf("marked range survived commit")
	}
	if got := m.Text(); got != "anb" {
		t.Fatalf("text after commit: got %q, want %q", got, "anb")
	}
	if got := caret(t, m); got != 2 {
		t.Fatalf("caret after commit: got %v, want %v", got, 2)
	}
	if _, ok := m.Storage().AttributesAt(1)[buffer.AttrBackground]; ok {
		t.Fatalf("highlight survived commit")
	}
}

func TestUpdate_ComposeBackspaceRemovesWholeCharacters(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = keys(m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyCtrlK},
		runes("e\u0301"),
		runes("o\u0308"),
		tea.KeyMsg{Type: tea.KeyBackspace},
	)
	if got, want := m.Text(), "ae\u0301b"; got != want {
		t.Fatalf("text after compose backspace: got %q, want %q", got, want)
	}
	marked, ok := m.TextView().MarkedRange()
	if !ok || marked != buffer.NewRange(1, 2) {
		t.Fatalf("marked=%v ok=%v, want [1, 2)", marked, ok)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.Text(); got != "ab" {
		t.Fatalf("text after clearing composition: got %q, want %q", got, "ab")
	}
	if _, ok := m.TextView().MarkedRange(); ok {
		t.Fatalf("marked range survived clearing composition")
	}
}

func TestUpdate_ComposeCancelRestoresText(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = keys(m,
		tea.KeyMsg{Type: tea.KeyRight},
		tea.KeyMsg{Type: tea.KeyCtrlK},
		runes("xy"),
		tea.KeyMsg{Type: tea.KeyEsc},
	)
	if got := m.Text(); got != "ab" {
		t.Fatalf("text after cancel: got %q, want %q", got, "ab")
	}
	if got := caret(t, m); got != 1 {
		t.Fatalf("caret after cancel: got %v, want %v", got, 1)
	}
	if m.Composing() {
		t.Fatalf("compose mode still on after cancel")
	}
}

func TestUpdate_BlurredIgnoresKeys(t *testing.T) {
	m := New(Config{Text: "ab"})
	m = m.Blur()
	m = keys(m, runes("X"))
	if got := m.Text(); got != "ab" {
		t.Fatalf("text while blurred: got %q, want %q", got, "ab")
	}
}
