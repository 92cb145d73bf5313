package textview

import (
	"math"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
	"github.com/iw2rmb/textkit/layout"
)

// maxFollowUpPasses bounds how many coalesced passes one Layout call runs.
const maxFollowUpPasses = 8

// ViewportController keeps the host's attached surfaces in step with the
// fragments that intersect the visible window.
//
// A pass is never reentered: Layout calls made while a pass runs (from a
// host callback, say) are coalesced into one follow-up pass.
type ViewportController struct {
	engine  LayoutEngine
	host    Host
	factory SurfaceFactory
	cache   *RenderCache

	overscan         float64
	overscrollBottom float64

	order    []layout.FragmentID
	frames   map[layout.FragmentID]geom.Rect
	viewport buffer.Range

	contentSize    geom.Size
	hasContentSize bool

	running bool
	pending bool
	passes  int
}

func NewViewportController(engine LayoutEngine, host Host, factory SurfaceFactory, cfg Config) *ViewportController {
	cfg = cfg.normalized()
	return &ViewportController{
		engine:           engine,
		host:             host,
		factory:          factory,
		cache:            NewRenderCache(),
		overscan:         cfg.Overscan,
		overscrollBottom: cfg.OverscrollBottom,
		frames:           make(map[layout.FragmentID]geom.Rect),
	}
}

// Layout runs a reconciliation pass, plus any passes requested while it ran.
func (vc *ViewportController) Layout() {
	if vc.running {
		vc.pending = true
		return
	}
	vc.running = true
	defer func() { vc.running = false }()

	for i := 0; ; i++ {
		vc.pending = false
		vc.pass()
		if !vc.pending {
			return
		}
		if i == maxFollowUpPasses {
			log.Warningf("viewport: giving up after %d follow-up passes", i)
			vc.pending = false
			return
		}
	}
}

func (vc *ViewportController) pass() {
	bounds := vc.host.Bounds()
	vc.engine.SetContainerWidth(bounds.Size.W)

	window := bounds.Inset(0, -vc.overscan)
	frags := vc.engine.FragmentsIntersecting(window)

	p := reconcile(vc.cache.Handles(), frags)
	vc.apply(p)

	prevFrames := vc.frames
	vc.frames = make(map[layout.FragmentID]geom.Rect, len(frags))
	vc.order = vc.order[:0]
	for _, f := range frags {
		vc.order = append(vc.order, f.ID())
		vc.frames[f.ID()] = f.Frame()
	}
	if len(frags) > 0 {
		vc.viewport = buffer.NewRange(frags[0].ContentRange().Start(), frags[len(frags)-1].ContentRange().End())
	} else {
		vc.viewport = buffer.Range{}
	}

	vc.updateContentSize(bounds)
	vc.adjustViewport(bounds, frags, prevFrames)

	vc.passes++
	if p.isNoop() {
		log.Debugf("viewport pass %d: window %v, %d materialized", vc.passes, window, len(frags))
		return
	}
	log.Debugf("viewport pass %d: window %v, %d materialized (+%d, -%d)",
		vc.passes, window, len(frags), len(p.create), len(p.remove))
}

// apply performs a plan against the host and the cache.
func (vc *ViewportController) apply(p plan) {
	for _, r := range p.reuse {
		s, ok := vc.cache.Get(r.handle)
		if !ok {
			continue
		}
		old := s.Frame()
		s.UpdateGeometry()
		if !old.ApproxEqual(s.Frame()) {
			s.SetNeedsDisplay()
		}
	}
	for _, f := range p.create {
		s := vc.factory(f)
		vc.host.Attach(s)
		vc.cache.Insert(f.ID(), s)
	}
	for _, h := range p.remove {
		s, ok := vc.cache.Get(h)
		if !ok {
			continue
		}
		vc.host.Detach(s)
		vc.cache.Free(h)
	}
}

func (vc *ViewportController) updateContentSize(bounds geom.Rect) {
	h := vc.overscrollBottom
	if last, ok := vc.engine.LastFragment(); ok {
		h += last.Frame().MaxY()
	}
	size := geom.Size{W: bounds.Size.W, H: h}
	if vc.hasContentSize && size.ApproxEqual(vc.contentSize) {
		return
	}
	vc.contentSize = size
	vc.hasContentSize = true
	vc.host.SetContentSize(size)
}

// adjustViewport keeps content visually still when fragments above the
// visible top change height. It only runs near the start of the document:
// when the scroll offset is within one viewport height of the top while the
// materialized range starts after the document start, or when the
// materialized range starts at the document start.
func (vc *ViewportController) adjustViewport(bounds geom.Rect, frags []*layout.Fragment, prev map[layout.FragmentID]geom.Rect) {
	if len(frags) == 0 {
		return
	}
	start := frags[0].ContentRange().Start()
	nearTop := bounds.MinY() < bounds.Size.H && start > 0
	if !nearTop && start != 0 {
		return
	}

	delta, ok := anchorDelta(bounds, frags, prev)
	if !ok || math.Abs(delta) <= geom.Epsilon {
		return
	}
	offset := bounds.Origin
	offset.Y = math.Max(0, offset.Y+delta)
	if geom.ApproxEqual(offset.Y, bounds.Origin.Y) {
		return
	}
	log.Debugf("viewport: anchor moved %g, scrolling to %v", delta, offset)
	vc.host.SetContentOffset(offset)
	vc.pending = true
}

// anchorDelta returns how far the anchor fragment moved since the last
// pass. The anchor is the surviving fragment that started closest to, and
// not below, the visible top.
func anchorDelta(bounds geom.Rect, frags []*layout.Fragment, prev map[layout.FragmentID]geom.Rect) (float64, bool) {
	var anchor *layout.Fragment
	var anchorPrev geom.Rect
	for _, f := range frags {
		old, ok := prev[f.ID()]
		if !ok || old.MinY() > bounds.MinY() {
			continue
		}
		if anchor == nil || old.MinY() >= anchorPrev.MinY() {
			anchor, anchorPrev = f, old
		}
	}
	if anchor == nil {
		return 0, false
	}
	return anchor.Frame().MinY() - anchorPrev.MinY(), true
}

// DetachAll detaches every materialized surface and empties the cache.
func (vc *ViewportController) DetachAll() {
	for id, h := range vc.cache.Handles() {
		if s, ok := vc.cache.Get(h); ok {
			vc.host.Detach(s)
		}
		vc.cache.Free(h)
		delete(vc.frames, id)
	}
	vc.order = vc.order[:0]
	vc.viewport = buffer.Range{}
}

// Materialized returns the IDs of materialized fragments in document order.
func (vc *ViewportController) Materialized() []layout.FragmentID {
	out := make([]layout.FragmentID, len(vc.order))
	copy(out, vc.order)
	return out
}

// Surface returns the surface materialized for fragment id.
func (vc *ViewportController) Surface(id layout.FragmentID) (RenderingSurface, bool) {
	h, ok := vc.cache.Lookup(id)
	if !ok {
		return nil, false
	}
	return vc.cache.Get(h)
}

// ViewportRange returns the document range covered by materialized
// fragments after the last pass.
func (vc *ViewportController) ViewportRange() buffer.Range { return vc.viewport }

// ContentSize returns the last content size sent to the host.
func (vc *ViewportController) ContentSize() geom.Size { return vc.contentSize }

// Passes returns how many passes have completed.
func (vc *ViewportController) Passes() int { return vc.passes }
