package textview

import (
	"errors"
	"strings"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/layout"
)

func newTestView(text string, cfg Config) (*buffer.Storage, *layout.Engine, *View) {
	s := buffer.New(text)
	e := layout.New(s, layout.Options{WrapMode: layout.WrapGrapheme})
	e.SetContainerWidth(80)
	return s, e, NewView(s, e, cfg)
}

// recorder logs delegate calls in order.
type recorder struct {
	calls []string
}

func (r *recorder) TextWillChange()      { r.calls = append(r.calls, "textWill") }
func (r *recorder) TextDidChange()       { r.calls = append(r.calls, "textDid") }
func (r *recorder) SelectionWillChange() { r.calls = append(r.calls, "selWill") }
func (r *recorder) SelectionDidChange()  { r.calls = append(r.calls, "selDid") }

func (r *recorder) String() string { return strings.Join(r.calls, ",") }

type fakeSurface struct {
	frag   *layout.Fragment
	frame  geom.Rect
	dirty  int
	update int
}

func newFakeSurface(f *layout.Fragment) RenderingSurface {
	return &fakeSurface{frag: f, frame: f.Frame()}
}

func (s *fakeSurface) Fragment() *layout.Fragment { return s.frag }
func (s *fakeSurface) Frame() geom.Rect           { return s.frame }
func (s *fakeSurface) SetNeedsDisplay()           { s.dirty++ }

func (s *fakeSurface) UpdateGeometry() {
	s.update++
	s.frame = s.frag.Frame()
}

type fakeHost struct {
	bounds   geom.Rect
	attached map[RenderingSurface]bool
	attaches int
	detaches int
	sizes    []geom.Size
	offsets  []geom.Point

	// onAttach and onBounds run inside host callbacks, to exercise
	// reentrant layout requests.
	onAttach func()
	onBounds func()
}

func newFakeHost(bounds geom.Rect) *fakeHost {
	return &fakeHost{bounds: bounds, attached: make(map[RenderingSurface]bool)}
}

func (h *fakeHost) Bounds() geom.Rect {
	if h.onBounds != nil {
		h.onBounds()
	}
	return h.bounds
}

func (h *fakeHost) Attach(s RenderingSurface) {
	h.attached[s] = true
	h.attaches++
	if h.onAttach != nil {
		h.onAttach()
	}
}

func (h *fakeHost) Detach(s RenderingSurface) {
	delete(h.attached, s)
	h.detaches++
}

func (h *fakeHost) SetContentSize(size geom.Size) { h.sizes = append(h.sizes, size) }

func (h *fakeHost) SetContentOffset(p geom.Point) {
	h.offsets = append(h.offsets, p)
	h.bounds.Origin = p
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadText() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

func (c *fakeClipboard) WriteText(s string) error {
	if c.err != nil {
		return c.err
	}
	c.text = s
	return nil
}

var errClipboard = errors.New("clipboard unavailable")

func lines(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "line"
	}
	return strings.Join(parts, "\n")
}
