package textview

import (
	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/layout"
)

// TextStorage owns the character sequence and its attribute runs.
// Calls made inside PerformEditingTransaction are reported to storage
// observers as a single edit.
type TextStorage interface {
	Len() int
	String() string
	Substring(iv buffer.Interval) string
	Replace(iv buffer.Interval, text string, attrs buffer.Attributes)
	AddAttributes(attrs buffer.Attributes, iv buffer.Interval)
	RemoveAttribute(key buffer.AttributeKey, iv buffer.Interval)
	PerformEditingTransaction(fn func())
}

// LayoutEngine turns the storage into positioned fragments and answers
// geometry queries in document coordinates.
type LayoutEngine interface {
	SetContainerWidth(w float64)
	FragmentsIntersecting(r geom.Rect) []*layout.Fragment
	FragmentAt(p geom.Point) (*layout.Fragment, bool)
	FragmentContaining(p buffer.Position) (*layout.Fragment, bool)
	LastFragment() (*layout.Fragment, bool)
	Navigate(p buffer.Position, dir layout.Direction, count int) buffer.Position
	// BoundingRect returns the insertion rect for an empty interval.
	BoundingRect(iv buffer.Interval) (geom.Rect, bool)
	EnclosingRects(iv buffer.Interval) []geom.Rect
	// CharacterIndex returns the character under p and how far across it
	// p lies, from 0 to 1.
	CharacterIndex(p geom.Point) (int, float64)
}

// RenderingSurface draws one fragment.
type RenderingSurface interface {
	Fragment() *layout.Fragment
	// Frame is the surface's rectangle in document coordinates as of the
	// last UpdateGeometry.
	Frame() geom.Rect
	UpdateGeometry()
	SetNeedsDisplay()
}

// SurfaceFactory creates the surface for a newly visible fragment.
type SurfaceFactory func(f *layout.Fragment) RenderingSurface

// Host is the display that rendering surfaces are attached to.
type Host interface {
	// Bounds is the visible rectangle in document coordinates: its origin is
	// the scroll offset.
	Bounds() geom.Rect
	Attach(s RenderingSurface)
	Detach(s RenderingSurface)
	SetContentSize(size geom.Size)
	SetContentOffset(p geom.Point)
}

// InputDelegate is told about text and selection changes. Will and did
// calls are always paired.
type InputDelegate interface {
	TextWillChange()
	TextDidChange()
	SelectionWillChange()
	SelectionDidChange()
}

// DelegateFuncs adapts optional callbacks to InputDelegate.
type DelegateFuncs struct {
	OnTextWillChange      func()
	OnTextDidChange       func()
	OnSelectionWillChange func()
	OnSelectionDidChange  func()
}

func (d DelegateFuncs) TextWillChange() {
	if d.OnTextWillChange != nil {
		d.OnTextWillChange()
	}
}

func (d DelegateFuncs) TextDidChange() {
	if d.OnTextDidChange != nil {
		d.OnTextDidChange()
	}
}

func (d DelegateFuncs) SelectionWillChange() {
	if d.OnSelectionWillChange != nil {
		d.OnSelectionWillChange()
	}
}

func (d DelegateFuncs) SelectionDidChange() {
	if d.OnSelectionDidChange != nil {
		d.OnSelectionDidChange()
	}
}

// Clipboard provides plain-text clipboard access for editing actions.
//
// Errors must not crash the UI; actions treat a failed read as an empty
// clipboard and report a failed write as not performed.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
