package textview

import (
	"time"

	"github.com/iw2rmb/textkit/buffer"
	"github.com/iw2rmb/textkit/geom"
)

const (
	// FloatingPulseScale is the peak scale of the indicator right after
	// Begin.
	FloatingPulseScale = 1.25
	// FloatingPulseDuration is the length of each half of the pulse.
	FloatingPulseDuration = 100 * time.Millisecond
	// FloatingSettleDuration is how long End animates the indicator onto
	// the caret.
	FloatingSettleDuration = 150 * time.Millisecond
)

// EasingFunc maps animation progress in [0,1] to eased progress.
type EasingFunc func(t float64) float64

// EaseSmoothstep accelerates at the start and decelerates at the end.
var EaseSmoothstep EasingFunc = func(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}

type IndicatorPhase uint8

const (
	IndicatorTracking IndicatorPhase = iota + 1
	IndicatorSettling
)

// Indicator is the floating caret as it should be drawn at one instant.
type Indicator struct {
	Rect  geom.Rect
	Scale float64
	Phase IndicatorPhase
}

// FloatingCursor tracks a drag-to-reposition session. It never changes
// the selection itself; End reports the position for the caller to commit.
type FloatingCursor struct {
	view   *View
	now    func() time.Time
	easing EasingFunc

	active bool
	began  time.Time
	point  geom.Point

	pos      buffer.Position
	caret    geom.Rect
	hasCaret bool

	settling    bool
	settleStart time.Time
	settleFrom  geom.Rect
}

// NewFloatingCursor returns a floating cursor over v. now may be nil to use
// time.Now.
func NewFloatingCursor(v *View, now func() time.Time) *FloatingCursor {
	if now == nil {
		now = time.Now
	}
	return &FloatingCursor{view: v, now: now, easing: EaseSmoothstep}
}

// Active reports whether a session is in progress.
func (fc *FloatingCursor) Active() bool { return fc.active }

// Begin starts a session at p and snaps to the nearest position.
func (fc *FloatingCursor) Begin(p geom.Point) {
	fc.reset()
	fc.active = true
	fc.began = fc.now()
	fc.point = p
	fc.track(p)
	log.Debugf("floating cursor: begin at %v -> %v", p, fc.pos)
}

// Update moves the indicator to p and recomputes the nearest caret.
func (fc *FloatingCursor) Update(p geom.Point) {
	if !fc.active {
		return
	}
	fc.point = p
	fc.track(p)
}

// Position returns the position the session currently points at.
func (fc *FloatingCursor) Position() (buffer.Position, bool) {
	return fc.pos, fc.active && fc.hasCaret
}

// End finishes the session. The indicator settles onto the last caret rect,
// or disappears at once when none was computed. ok is false when no session
// was active or no position was resolved.
func (fc *FloatingCursor) End() (buffer.Position, bool) {
	if !fc.active {
		return 0, false
	}
	pos, ok := fc.pos, fc.hasCaret
	if ok {
		ind, _ := fc.Indicator(fc.now())
		fc.settleFrom = ind.Rect
		fc.settleStart = fc.now()
		fc.settling = true
		fc.active = false
	} else {
		fc.reset()
	}
	log.Debugf("floating cursor: end at %v (resolved=%v)", pos, ok)
	return pos, ok
}

// Cancel ends the session without animating.
func (fc *FloatingCursor) Cancel() {
	fc.reset()
}

// Indicator returns what to draw at now. ok is false once the indicator is
// detached.
func (fc *FloatingCursor) Indicator(now time.Time) (Indicator, bool) {
	switch {
	case fc.active:
		scale := fc.pulseScale(now.Sub(fc.began))
		size := fc.caretSize()
		w, h := size.W*scale, size.H*scale
		return Indicator{
			Rect:  geom.R(fc.point.X-w/2, fc.point.Y-h/2, w, h),
			Scale: scale,
			Phase: IndicatorTracking,
		}, true
	case fc.settling:
		t := float64(now.Sub(fc.settleStart)) / float64(FloatingSettleDuration)
		if t >= 1 {
			fc.reset()
			return Indicator{}, false
		}
		e := fc.easing(clamp01(t))
		return Indicator{
			Rect:  lerpRect(fc.settleFrom, fc.caret, e),
			Scale: 1,
			Phase: IndicatorSettling,
		}, true
	default:
		return Indicator{}, false
	}
}

// Animating reports whether the indicator is still changing at now.
func (fc *FloatingCursor) Animating(now time.Time) bool {
	switch {
	case fc.active:
		return now.Sub(fc.began) < 2*FloatingPulseDuration
	case fc.settling:
		return now.Sub(fc.settleStart) < FloatingSettleDuration
	default:
		return false
	}
}

func (fc *FloatingCursor) track(p geom.Point) {
	pos := fc.view.ClosestPosition(p)
	r, ok := fc.view.caretRect(pos)
	if !ok {
		return
	}
	fc.pos = pos
	fc.caret = r
	fc.hasCaret = true
}

// pulseScale scales up to FloatingPulseScale and back to 1.
func (fc *FloatingCursor) pulseScale(elapsed time.Duration) float64 {
	half := float64(FloatingPulseDuration)
	e := float64(elapsed)
	switch {
	case e < 0:
		return 1
	case e < half:
		return 1 + (FloatingPulseScale-1)*fc.easing(e/half)
	case e < 2*half:
		return FloatingPulseScale - (FloatingPulseScale-1)*fc.easing((e-half)/half)
	default:
		return 1
	}
}

func (fc *FloatingCursor) caretSize() geom.Size {
	if fc.hasCaret {
		return fc.caret.Size
	}
	return fc.view.cfg.CaretSize
}

func (fc *FloatingCursor) reset() {
	fc.active = false
	fc.settling = false
	fc.hasCaret = false
	fc.pos = 0
	fc.caret = geom.Rect{}
}

func lerpRect(a, b geom.Rect, t float64) geom.Rect {
	return geom.Rect{
		Origin: geom.Point{X: lerp(a.Origin.X, b.Origin.X, t), Y: lerp(a.Origin.Y, b.Origin.Y, t)},
		Size:   geom.Size{W: lerp(a.Size.W, b.Size.W, t), H: lerp(a.Size.H, b.Size.H, t)},
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
