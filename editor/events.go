package editor

import (
	"github.com/iw2rmb/textkit/buffer"
)

type ChangeEvent struct {
	Version   uint64
	Selection struct {
		Range  buffer.Range
		Active bool
	}
	Marked struct {
		Range  buffer.Range
		Active bool
	}

	// v0: simplest payload; host can diff if needed.
	Text string
}

func (m Model) buildChangeEvent() ChangeEvent {
	ev := ChangeEvent{
		Version: m.storage.Version(),
		Text:    m.storage.String(),
	}
	ev.Selection.Range, ev.Selection.Active = m.view.SelectedRange()
	ev.Marked.Range, ev.Marked.Active = m.view.MarkedRange()
	return ev
}

// editState is what OnChange compares between updates.
type editState struct {
	version  uint64
	sel      buffer.Range
	selOK    bool
	marked   buffer.Range
	markedOK bool
}

func (m Model) currentEditState() editState {
	st := editState{version: m.storage.Version()}
	st.sel, st.selOK = m.view.SelectedRange()
	st.marked, st.markedOK = m.view.MarkedRange()
	return st
}
