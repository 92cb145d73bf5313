package buffer

// EditMask reports what an editing transaction touched.
type EditMask uint8

const (
	EditedCharacters EditMask = 1 << iota
	EditedAttributes
)

func (m EditMask) Has(flag EditMask) bool { return m&flag != 0 }

// EditInfo describes one completed editing transaction.
type EditInfo struct {
	Mask EditMask
	// Range is the edited interval in post-edit coordinates.
	Range Interval
	// ChangeInLength is the document length delta of the transaction.
	ChangeInLength int

	VersionBefore uint64
	VersionAfter  uint64
}

// PreEditEnd returns the end of the edited interval in pre-edit coordinates.
func (e EditInfo) PreEditEnd() int {
	return e.Range.End - e.ChangeInLength
}

// Observer is notified after every outermost editing transaction that changed
// the storage.
type Observer interface {
	ProcessEditing(info EditInfo)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(info EditInfo)

func (f ObserverFunc) ProcessEditing(info EditInfo) { f(info) }

type editTransaction struct {
	depth int

	versionBefore uint64
	mask          EditMask
	edited        Interval
	hasEdit       bool
	delta         int
}

// AddObserver registers o for edit notifications.
func (s *Storage) AddObserver(o Observer) {
	if o == nil {
		return
	}
	s.observers = append(s.observers, o)
}

// PerformEditingTransaction runs fn as one editing transaction. Nested calls
// join the outermost transaction; observers run once, after the outermost fn
// returns, and only when something changed.
func (s *Storage) PerformEditingTransaction(fn func()) {
	s.beginEditing()
	defer s.endEditing()
	fn()
}

// InTransaction reports whether an editing transaction is open.
func (s *Storage) InTransaction() bool { return s.tx.depth > 0 }

func (s *Storage) beginEditing() {
	if s.tx.depth == 0 {
		s.tx = editTransaction{versionBefore: s.version}
	}
	s.tx.depth++
}

func (s *Storage) endEditing() {
	s.tx.depth--
	if s.tx.depth > 0 {
		return
	}
	tx := s.tx
	s.tx = editTransaction{}
	if !tx.hasEdit {
		return
	}
	s.processEditing(EditInfo{
		Mask:           tx.mask,
		Range:          tx.edited,
		ChangeInLength: tx.delta,
		VersionBefore:  tx.versionBefore,
		VersionAfter:   s.version,
	})
}

func (s *Storage) processEditing(info EditInfo) {
	for _, o := range s.observers {
		o.ProcessEditing(info)
	}
}

// recordEdit folds one primitive edit, which replaced [start, end) with n
// characters, into the open transaction.
func (s *Storage) recordEdit(mask EditMask, start, end, n int) {
	delta := n - (end - start)
	next := Interval{Start: start, End: start + n}
	if s.tx.hasEdit {
		prev := Interval{
			Start: mapThroughEdit(s.tx.edited.Start, start, end, n),
			End:   mapThroughEdit(s.tx.edited.End, start, end, n),
		}
		next = prev.Union(next)
	}
	s.tx.edited = next
	s.tx.hasEdit = true
	s.tx.mask |= mask
	s.tx.delta += delta
	s.version++
}

// mapThroughEdit maps offset x across a replacement of [start, end) by n
// characters. Offsets inside the replaced span collapse to its new end.
func mapThroughEdit(x, start, end, n int) int {
	switch {
	case x <= start:
		return x
	case x >= end:
		return x + n - (end - start)
	default:
		return start + n
	}
}
