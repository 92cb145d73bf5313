package layout

import (
	"math"

	"github.com/tliron/commonlog"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/internal/grapheme"
)

var log = commonlog.GetLogger("textkit.layout")

// Engine lays out a buffer.Storage as a vertical stack of paragraph
// fragments.
//
// Layout is lazy: edits only invalidate fragments, and the next query lays
// out the whole document again, reusing every fragment that survived.
type Engine struct {
	storage *buffer.Storage
	opts    Options
	width   float64

	frags  []*Fragment
	nextID FragmentID
	valid  bool
}

// New returns an Engine observing storage.
func New(storage *buffer.Storage, opts Options) *Engine {
	e := &Engine{
		storage: storage,
		opts:    opts.normalized(),
	}
	storage.AddObserver(e)
	return e
}

func (e *Engine) Storage() *buffer.Storage { return e.storage }

func (e *Engine) Options() Options { return e.opts }

// SetOptions replaces the layout options. Fragment identity is kept.
func (e *Engine) SetOptions(opts Options) {
	e.opts = opts.normalized()
	e.invalidateWrap()
}

func (e *Engine) ContainerWidth() float64 { return e.width }

// SetContainerWidth sets the width lines wrap at. Fragment identity is kept;
// lines are wrapped again on the next query.
func (e *Engine) SetContainerWidth(w float64) {
	if w < 0 {
		w = 0
	}
	if geom.ApproxEqual(w, e.width) {
		return
	}
	e.width = w
	e.invalidateWrap()
}

func (e *Engine) invalidateWrap() {
	for _, f := range e.frags {
		f.needsWrap = true
	}
	e.valid = false
}

// ProcessEditing drops the fragments an edit touched and shifts the ones
// after it. Untouched fragments keep their identity.
func (e *Engine) ProcessEditing(info buffer.EditInfo) {
	start := info.Range.Start
	preEnd := info.PreEditEnd()
	delta := info.ChangeInLength

	kept := make([]*Fragment, 0, len(e.frags))
	for _, f := range e.frags {
		switch {
		case f.end < start || (f.end == start && f.newline):
			kept = append(kept, f)
		case f.start > start && f.start >= preEnd:
			f.shift(delta)
			kept = append(kept, f)
		}
	}
	if dropped := len(e.frags) - len(kept); dropped > 0 {
		log.Debugf("edit %v (delta %d) invalidated %d fragment(s)", info.Range, delta, dropped)
	}
	e.frags = kept
	e.valid = false
}

// Fragments returns every fragment in document order.
func (e *Engine) Fragments() []*Fragment {
	e.ensureLayout()
	return e.frags
}

// ensureLayout rebuilds the fragment list from the storage's paragraphs.
// A surviving fragment is reused when its interval matches a paragraph
// exactly; every other paragraph gets a new fragment.
func (e *Engine) ensureLayout() {
	if e.valid {
		return
	}

	byRange := make(map[buffer.Interval]*Fragment, len(e.frags))
	for _, f := range e.frags {
		byRange[f.Interval()] = f
	}

	paras := e.storage.Paragraphs()
	out := make([]*Fragment, 0, len(paras))
	created, wrapped := 0, 0
	y := 0.0
	for _, iv := range paras {
		f, ok := byRange[iv]
		if !ok {
			e.nextID++
			f = &Fragment{id: e.nextID, start: iv.Start, end: iv.End, needsWrap: true}
			created++
		}
		f.newline = iv.End > iv.Start && grapheme.IsNewline(e.storage.CharAt(iv.End-1))
		if f.needsWrap {
			e.wrap(f)
			wrapped++
		}

		h := e.opts.ParagraphSpacingTop + float64(len(f.lines))*e.opts.LineHeight + e.opts.ParagraphSpacingBottom
		f.frame = geom.Rect{
			Origin: geom.Point{X: 0, Y: y},
			Size:   geom.Size{W: e.width, H: h},
		}
		y += h
		out = append(out, f)
	}

	e.frags = out
	e.valid = true
	log.Debugf("layout: %d fragment(s), %d created, %d wrapped", len(out), created, wrapped)
}

// wrap lays out f's characters into lines.
func (e *Engine) wrap(f *Fragment) {
	contentEnd := f.end
	if f.newline {
		contentEnd--
	}
	chars := make([]string, 0, contentEnd-f.start)
	for i := f.start; i < contentEnd; i++ {
		chars = append(chars, e.storage.CharAt(i))
	}

	avail := 0
	if e.opts.WrapMode != WrapNone && e.width > 0 {
		avail = int(math.Floor(e.width - e.opts.LeadingPadding))
		if avail < 1 {
			avail = 1
		}
	}

	widths := measure(chars, e.opts.TabWidth)
	spans := wrapParagraph(chars, widths, e.opts.WrapMode, avail)

	lines := make([]Line, 0, len(spans))
	for i, sp := range spans {
		glyphs := make([]Glyph, 0, sp[1]-sp[0])
		x := e.opts.LeadingPadding
		for k := sp[0]; k < sp[1]; k++ {
			w := float64(widths[k])
			glyphs = append(glyphs, Glyph{Text: chars[k], X: x, Width: w})
			x += w
		}
		lines = append(lines, Line{
			Start:  sp[0],
			End:    sp[1],
			Y:      float64(i) * e.opts.LineHeight,
			Height: e.opts.LineHeight,
			Glyphs: glyphs,
		})
	}

	f.lines = lines
	f.spacing = e.opts.ParagraphSpacingTop
	f.padding = e.opts.LeadingPadding
	f.needsWrap = false
}
