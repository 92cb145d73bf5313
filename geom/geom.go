// Package geom holds the float geometry shared by layout, the text view and
// hosts. In the terminal host one unit is one cell: X counts columns and Y
// counts rows.
package geom

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used when comparing geometry.
const Epsilon = 1e-10

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

type Size struct {
	W, H float64
}

func (s Size) ApproxEqual(o Size) bool {
	return ApproxEqual(s.W, o.W) && ApproxEqual(s.H, o.H)
}

func (s Size) String() string { return fmt.Sprintf("%gx%g", s.W, s.H) }

// Rect is an origin plus a size. Sizes are never negative for rects built by
// R or Standardize.
type Rect struct {
	Origin Point
	Size   Size
}

// R returns the rect with origin (x, y) and size w×h, standardized.
func R(x, y, w, h float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{W: w, H: h}}.Standardize()
}

// Standardize flips negative sizes so the rect extends right and down.
func (r Rect) Standardize() Rect {
	if r.Size.W < 0 {
		r.Origin.X += r.Size.W
		r.Size.W = -r.Size.W
	}
	if r.Size.H < 0 {
		r.Origin.Y += r.Size.H
		r.Size.H = -r.Size.H
	}
	return r
}

func (r Rect) MinX() float64 { return r.Origin.X }
func (r Rect) MinY() float64 { return r.Origin.Y }
func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.W }
func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.H }

func (r Rect) IsEmpty() bool { return r.Size.W <= 0 || r.Size.H <= 0 }

// Inset moves the horizontal edges inward by dx and the vertical edges by dy.
// Negative values grow r.
func (r Rect) Inset(dx, dy float64) Rect {
	return Rect{
		Origin: Point{X: r.Origin.X + dx, Y: r.Origin.Y + dy},
		Size:   Size{W: r.Size.W - 2*dx, H: r.Size.H - 2*dy},
	}
}

// Offset moves r by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	r.Origin.X += dx
	r.Origin.Y += dy
	return r
}

// Contains reports whether p lies in r. The max edges are exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// IntersectsY reports whether r and o overlap vertically. Zero-height rects
// intersect a band they sit inside.
func (r Rect) IntersectsY(o Rect) bool {
	if r.Size.H == 0 {
		return r.MinY() >= o.MinY() && r.MinY() < o.MaxY()
	}
	return r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Intersects reports whether r and o share interior area.
func (r Rect) Intersects(o Rect) bool {
	return r.MinX() < o.MaxX() && o.MinX() < r.MaxX() &&
		r.MinY() < o.MaxY() && o.MinY() < r.MaxY()
}

// Union returns the smallest rect containing r and o. Empty rects are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX := math.Min(r.MinX(), o.MinX())
	minY := math.Min(r.MinY(), o.MinY())
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{Origin: Point{X: minX, Y: minY}, Size: Size{W: maxX - minX, H: maxY - minY}}
}

func (r Rect) ApproxEqual(o Rect) bool {
	return ApproxEqual(r.Origin.X, o.Origin.X) && ApproxEqual(r.Origin.Y, o.Origin.Y) &&
		r.Size.ApproxEqual(o.Size)
}

func (r Rect) String() string {
	return fmt.Sprintf("{%v %v}", r.Origin, r.Size)
}

// ApproxEqual reports whether a and b differ by no more than Epsilon.
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}
