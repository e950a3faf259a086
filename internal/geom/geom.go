// Package geom holds the floating point geometry used in canvas space.
// The origin is the top-left corner of the canvas and y grows downward.
package geom

import (
	"image"
	"math"
)

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Size is a width and height in canvas units.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// SizeOf returns the dimensions of an integer rectangle.
func SizeOf(r image.Rectangle) Size {
	return Size{W: float64(r.Dx()), H: float64(r.Dy())}
}

// Rect is an axis-aligned rectangle given by its minimum corner and size.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the normalized rectangle spanning a and b.
func RectFromPoints(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}.Normalize()
}

// Normalize flips negative extents so W and H are never negative.
func (r Rect) Normalize() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{r.X, r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.W, r.Y + r.H} }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Bounds returns the smallest integer rectangle covering r.
func (r Rect) Bounds() image.Rectangle {
	r = r.Normalize()
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H)),
	)
}
