package textview

import (
	"strings"

	"github.com/iw2rmb/textkit/buffer"
)

// Action is a standard editing command.
type Action int

const (
	ActionCut Action = iota
	ActionCopy
	ActionPaste
	ActionDelete
	ActionSelect
	ActionSelectAll
)

func (a Action) String() string {
	switch a {
	case ActionCut:
		return "cut"
	case ActionCopy:
		return "copy"
	case ActionPaste:
		return "paste"
	case ActionDelete:
		return "delete"
	case ActionSelect:
		return "select"
	case ActionSelectAll:
		return "selectAll"
	default:
		return "unknown"
	}
}

// CanPerform reports whether a is currently meaningful.
func (v *View) CanPerform(a Action) bool {
	sel, has := v.SelectedRange()
	switch a {
	case ActionCut, ActionCopy, ActionDelete:
		return has && !sel.IsEmpty()
	case ActionPaste:
		text, ok := v.readClipboard()
		return ok && text != ""
	case ActionSelect:
		return true
	case ActionSelectAll:
		return has
	default:
		return false
	}
}

// Perform runs a if it can be performed.
func (v *View) Perform(a Action) bool {
	if !v.CanPerform(a) {
		return false
	}
	switch a {
	case ActionCut:
		return v.Cut()
	case ActionCopy:
		return v.Copy()
	case ActionPaste:
		return v.Paste()
	case ActionDelete:
		return v.Delete()
	case ActionSelect:
		return v.Select()
	case ActionSelectAll:
		return v.SelectAll()
	default:
		return false
	}
}

// Copy writes the selected text to the clipboard.
func (v *View) Copy() bool {
	sel, has := v.SelectedRange()
	if !has || sel.IsEmpty() {
		return false
	}
	text, ok := v.Text(sel)
	if !ok {
		return false
	}
	return v.writeClipboard(text)
}

// Cut copies the selection and then deletes it.
func (v *View) Cut() bool {
	if !v.Copy() {
		return false
	}
	sel, _ := v.SelectedRange()
	return v.Replace(sel, "")
}

// Paste inserts the clipboard text with line endings normalized.
func (v *View) Paste() bool {
	text, ok := v.readClipboard()
	if !ok || text == "" {
		return false
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return v.Insert(text)
}

// Delete removes the selection.
func (v *View) Delete() bool {
	sel, has := v.SelectedRange()
	if !has || sel.IsEmpty() {
		return false
	}
	return v.Replace(sel, "")
}

// Select selects the word at the caret.
func (v *View) Select() bool {
	sel, has := v.SelectedRange()
	if !has {
		return false
	}
	r, ok := v.tokenizer.RangeEnclosing(sel.Start(), GranularityWord, Forward)
	if !ok {
		r, ok = v.tokenizer.RangeEnclosing(sel.Start(), GranularityWord, Backward)
	}
	if !ok {
		return false
	}
	v.SetSelectedRange(r)
	return true
}

// SelectAll selects the whole document.
func (v *View) SelectAll() bool {
	v.SetSelectedRange(buffer.NewRange(0, buffer.Position(v.storage.Len())))
	return true
}

func (v *View) readClipboard() (string, bool) {
	if v.cfg.Clipboard == nil {
		return "", false
	}
	text, err := v.cfg.Clipboard.ReadText()
	if err != nil {
		log.Warningf("clipboard read: %s", err)
		return "", false
	}
	return text, true
}

func (v *View) writeClipboard(text string) bool {
	if v.cfg.Clipboard == nil {
		return false
	}
	if err := v.cfg.Clipboard.WriteText(text); err != nil {
		log.Warningf("clipboard write: %s", err)
		return false
	}
	return true
}
