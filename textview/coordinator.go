package textview

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/internal/grapheme"
)

// Coordinator serializes document mutations and owns the selected and
// marked ranges.
//
// Every mutating call either fails its precondition and does nothing, or
// runs inside one edit scope: TextWillChange, one storage transaction,
// state updates, TextDidChange.
type Coordinator struct {
	storage  TextStorage
	delegate InputDelegate

	selected     buffer.Range
	hasSelection bool
	marked       buffer.Range
	hasMarked    bool

	typingAttrs buffer.Attributes
	markedStyle buffer.Attributes

	editing bool
}

// NewCoordinator returns a Coordinator with a caret at the start of the
// document.
func NewCoordinator(storage TextStorage, cfg Config) *Coordinator {
	cfg = cfg.normalized()
	return &Coordinator{
		storage:      storage,
		delegate:     cfg.Delegate,
		hasSelection: true,
		typingAttrs:  cfg.TypingAttributes,
		markedStyle:  cfg.MarkedTextStyle,
	}
}

func (c *Coordinator) Storage() TextStorage { return c.storage }

// SetDelegate replaces the input delegate. nil removes it.
func (c *Coordinator) SetDelegate(d InputDelegate) {
	if d == nil {
		d = DelegateFuncs{}
	}
	c.delegate = d
}

func (c *Coordinator) TypingAttributes() buffer.Attributes { return c.typingAttrs }

func (c *Coordinator) SetTypingAttributes(attrs buffer.Attributes) { c.typingAttrs = attrs }

func (c *Coordinator) MarkedTextStyle() buffer.Attributes { return c.markedStyle }

func (c *Coordinator) SetMarkedTextStyle(attrs buffer.Attributes) { c.markedStyle = attrs }

// SelectedRange returns the selection; ok is false when there is none.
// The range may be stale if the storage was edited behind the coordinator.
func (c *Coordinator) SelectedRange() (buffer.Range, bool) {
	return c.selected, c.hasSelection
}

// MarkedRange returns the composition range, if any.
func (c *Coordinator) MarkedRange() (buffer.Range, bool) {
	return c.marked, c.hasMarked
}

// SetSelectedRange selects r, clamped into the document.
func (c *Coordinator) SetSelectedRange(r buffer.Range) {
	c.setSelection(r.Clamp(c.storage.Len()), true)
}

// ClearSelection leaves the coordinator with no selection.
func (c *Coordinator) ClearSelection() {
	c.setSelection(buffer.Range{}, false)
}

// HasText reports whether the document is non-empty.
func (c *Coordinator) HasText() bool { return c.storage.Len() > 0 }

// Text returns the text in r, or false when r is stale.
func (c *Coordinator) Text(r buffer.Range) (string, bool) {
	iv, ok := r.Interval(c.storage.Len())
	if !ok {
		return "", false
	}
	return c.storage.Substring(iv), true
}

// Insert replaces the marked range, or else the selection, with text and
// leaves a caret after it.
func (c *Coordinator) Insert(text string) bool {
	target, iv, ok := c.target()
	if !ok {
		log.Debugf("insert %q: no valid target", text)
		return false
	}
	log.Debugf("insert %q over %v", text, target)

	scope := c.beginEdit("insert")
	defer scope.end()

	c.storage.PerformEditingTransaction(func() {
		c.storage.Replace(iv, text, c.typingAttrs)
	})
	c.hasMarked = false
	caret := target.Start().Offset(grapheme.Count(text))
	c.setSelection(buffer.CaretRange(caret), true)
	return true
}

// DeleteBackward deletes the marked range or selection. A caret deletes the
// one character before it.
func (c *Coordinator) DeleteBackward() bool {
	n := c.storage.Len()
	if n == 0 {
		return false
	}
	target, iv, ok := c.target()
	if !ok {
		log.Debugf("delete backward: no valid target")
		return false
	}
	if iv.IsEmpty() {
		if iv.Start == 0 {
			return false
		}
		iv.Start--
		target = iv.Range()
	}
	log.Debugf("delete backward over %v", target)

	scope := c.beginEdit("deleteBackward")
	defer scope.end()

	c.storage.PerformEditingTransaction(func() {
		c.storage.Replace(iv, "", nil)
	})
	c.hasMarked = false
	c.setSelection(buffer.CaretRange(target.Start()), true)
	return true
}

// SetMarkedText replaces the marked range, or else the selection, with
// text and marks it. inner is a range of character offsets into text; it
// becomes the selection, clamped into the marked text.
func (c *Coordinator) SetMarkedText(text string, inner buffer.Range) bool {
	target, iv, ok := c.target()
	if !ok {
		log.Debugf("set marked text %q: no valid target", text)
		return false
	}

	scope := c.beginEdit("setMarkedText")
	defer scope.end()

	n := grapheme.Count(text)
	start := target.Start()
	c.storage.PerformEditingTransaction(func() {
		c.storage.Replace(iv, text, c.typingAttrs)
		if n > 0 && len(c.markedStyle) > 0 {
			c.storage.AddAttributes(c.markedStyle, buffer.Interval{Start: iv.Start, End: iv.Start + n})
		}
	})
	c.marked = buffer.NewRange(start, start.Offset(n))
	c.hasMarked = true

	inner = inner.Clamp(n)
	c.setSelection(buffer.NewRange(start.Offset(int(inner.Start())), start.Offset(int(inner.End()))), true)
	log.Debugf("set marked text %q: marked=%v selected=%v", text, c.marked, c.selected)
	return true
}

// ClearMarkedText deletes the marked range, or else the selection, and ends
// composition.
func (c *Coordinator) ClearMarkedText() bool {
	target, iv, ok := c.target()
	if !ok {
		return false
	}

	scope := c.beginEdit("clearMarkedText")
	defer scope.end()

	c.storage.PerformEditingTransaction(func() {
		c.storage.Replace(iv, "", nil)
	})
	c.hasMarked = false
	c.setSelection(buffer.CaretRange(target.Start()), true)
	return true
}

// UnmarkText commits the marked text: its highlight is removed and the
// caret moves to its end. Without a marked range it does nothing; with a
// stale one the composition is dropped and the selection is left as it is.
func (c *Coordinator) UnmarkText() bool {
	if !c.hasMarked {
		return false
	}
	marked := c.marked
	iv, ok := marked.Interval(c.storage.Len())
	if !ok {
		// The storage shrank behind us. Drop the composition and leave the
		// selection to whoever edited the storage.
		log.Warningf("unmark text: stale marked range %v", marked)
		c.hasMarked = false
		return false
	}

	scope := c.beginEdit("unmarkText")
	defer scope.end()

	c.storage.PerformEditingTransaction(func() {
		for _, key := range c.markedStyle.Keys() {
			c.storage.RemoveAttribute(key, iv)
		}
	})
	c.setSelection(buffer.CaretRange(marked.End()), true)
	c.hasMarked = false
	return true
}

// Replace replaces r with text, ends composition and leaves a caret after
// the new text.
func (c *Coordinator) Replace(r buffer.Range, text string) bool {
	iv, ok := r.Interval(c.storage.Len())
	if !ok {
		log.Debugf("replace %v: stale range", r)
		return false
	}

	scope := c.beginEdit("replace")
	defer scope.end()

	c.storage.PerformEditingTransaction(func() {
		c.storage.Replace(iv, text, c.typingAttrs)
	})
	c.hasMarked = false
	c.setSelection(buffer.CaretRange(r.Start().Offset(grapheme.Count(text))), true)
	return true
}

// target returns the marked range if present, else the selection, with
// its validated interval.
func (c *Coordinator) target() (buffer.Range, buffer.Interval, bool) {
	var r buffer.Range
	switch {
	case c.hasMarked:
		r = c.marked
	case c.hasSelection:
		r = c.selected
	default:
		return buffer.Range{}, buffer.Interval{}, false
	}
	iv, ok := r.Interval(c.storage.Len())
	if !ok {
		return buffer.Range{}, buffer.Interval{}, false
	}
	return r, iv, true
}

func (c *Coordinator) setSelection(r buffer.Range, has bool) {
	if has == c.hasSelection && (!has || r == c.selected) {
		return
	}
	c.delegate.SelectionWillChange()
	c.selected = r
	c.hasSelection = has
	c.delegate.SelectionDidChange()
}

// editScope pairs TextWillChange with TextDidChange.
type editScope struct {
	c    *Coordinator
	done bool
}

func (c *Coordinator) beginEdit(op string) *editScope {
	if c.editing {
		violate(op, "edit started while another edit is in progress")
	}
	c.editing = true
	c.delegate.TextWillChange()
	return &editScope{c: c}
}

func (s *editScope) end() {
	if s.done {
		return
	}
	s.done = true
	s.c.editing = false
	s.c.delegate.TextDidChange()
}
