package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/textkit/buffer"
)

func TestOnChange_FiresOnMutationsAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text: "ab",
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})
	events = nil

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight})
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if got := events[0].Text; got != "ab" {
		t.Fatalf("event text after move: got %q, want %q", got, "ab")
	}
	if got, want := events[0].Selection.Range, buffer.CaretRange(1); !events[0].Selection.Active || got != want {
		t.Fatalf("event selection after move: got %v, want %v", got, want)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight}) // to the end
	if len(events) != 2 {
		t.Fatalf("events after move to end: got %d, want %d", len(events), 2)
	}

	m = keys(m, tea.KeyMsg{Type: tea.KeyRight}) // no-op at the end
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m = keys(m, runes("X"))
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	if got := events[2].Text; got != "abX" {
		t.Fatalf("event text after insert: got %q, want %q", got, "abX")
	}
	if events[2].Version <= events[1].Version {
		t.Fatalf("version did not advance: %d -> %d", events[1].Version, events[2].Version)
	}
}

func TestOnChange_ReportsMarkedRange(t *testing.T) {
	var last ChangeEvent
	m := New(Config{
		Text:     "",
		OnChange: func(ev ChangeEvent) { last = ev },
	})

	m = keys(m, tea.KeyMsg{Type: tea.KeyCtrlK}, runes("a"))
	if !last.Marked.Active || last.Marked.Range != buffer.NewRange(0, 1) {
		t.Fatalf("marked in event: %+v", last.Marked)
	}

	_ = keys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if last.Marked.Active {
		t.Fatalf("marked still active after commit")
	}
}

func TestOnChange_HostEditsAreReportedOnNextUpdate(t *testing.T) {
	n := 0
	m := New(Config{
		Text:     "ab",
		OnChange: func(ChangeEvent) { n++ },
	})

	m.Storage().Insert(0, "z", nil)
	m, _ = m.Update(nil)
	if n != 1 {
		t.Fatalf("events after host edit: got %d, want 1", n)
	}
	if got := m.Text(); got != "zab" {
		t.Fatalf("text: got %q", got)
	}
}
