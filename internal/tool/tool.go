// Package tool holds the input strategies that turn pointer gestures into
// annotations.
//
// A tool accumulates scratch state between Begin and End and yields at most
// one annotation per gesture. Degenerate gestures produce nothing; tools
// never fail.
package tool

import (
	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
)

// Modifiers reports the keyboard modifiers held during a pointer event.
type Modifiers struct {
	// Shift constrains shapes, e.g. rectangles to squares.
	Shift bool
}

// Tool is one pointer-driven drawing strategy.
type Tool interface {
	Kind() annotation.Kind
	Begin(p geom.Point, mods Modifiers)
	Update(p geom.Point, mods Modifiers)
	// End finishes the gesture. The boolean is false when the gesture
	// produced nothing.
	End(p geom.Point, mods Modifiers) (annotation.Annotation, bool)
	// Preview draws the in-progress gesture.
	Preview(s *render.Surface)
	// Cancel abandons the in-progress gesture.
	Cancel()
	Style() annotation.Style
	SetStyle(st annotation.Style)
}

// CommitFunc receives annotations a tool finishes outside of End.
type CommitFunc func(annotation.Annotation)

type styled struct {
	style annotation.Style
}

func (s *styled) Style() annotation.Style { return s.style }

func (s *styled) SetStyle(st annotation.Style) {
	if st.StrokeWidth <= 0 {
		st.StrokeWidth = annotation.DefaultStrokeWidth
	}
	s.style = st
}

// Pen records a freehand path.
type Pen struct {
	styled
	path   []geom.Point
	active bool
}

// NewPen returns a pen tool using the default style.
func NewPen() *Pen { return &Pen{styled: styled{style: annotation.DefaultStyle()}} }

func (*Pen) Kind() annotation.Kind { return annotation.KindPen }

func (t *Pen) Begin(p geom.Point, _ Modifiers) {
	t.path = []geom.Point{p}
	t.active = true
}

func (t *Pen) Update(p geom.Point, _ Modifiers) {
	if !t.active {
		return
	}
	t.path = append(t.path, p)
}

func (t *Pen) End(p geom.Point, _ Modifiers) (annotation.Annotation, bool) {
	if !t.active {
		return nil, false
	}
	path := append(t.path, p)
	t.Cancel()
	return annotation.NewPen(path, t.style), true
}

func (t *Pen) Preview(s *render.Surface) {
	if !t.active {
		return
	}
	annotation.RenderPath(s, t.path, t.style)
}

func (t *Pen) Cancel() {
	t.path = nil
	t.active = false
}

// Rectangle drags out an axis-aligned outline.
type Rectangle struct {
	styled
	start, current geom.Point
	square         bool
	active         bool
}

// NewRectangle returns a rectangle tool using the default style.
func NewRectangle() *Rectangle {
	return &Rectangle{styled: styled{style: annotation.DefaultStyle()}}
}

func (*Rectangle) Kind() annotation.Kind { return annotation.KindRectangle }

func (t *Rectangle) Begin(p geom.Point, mods Modifiers) {
	t.start, t.current = p, p
	t.square = mods.Shift
	t.active = true
}

func (t *Rectangle) Update(p geom.Point, mods Modifiers) {
	if !t.active {
		return
	}
	t.current = p
	t.square = mods.Shift
}

func (t *Rectangle) End(p geom.Point, mods Modifiers) (annotation.Annotation, bool) {
	if !t.active {
		return nil, false
	}
	t.Update(p, mods)
	r := constrainRect(t.start, t.current, t.square)
	t.Cancel()
	if r.W <= 1 || r.H <= 1 {
		return nil, false
	}
	return annotation.NewRectangle(r, t.style), true
}

func (t *Rectangle) Preview(s *render.Surface) {
	if !t.active {
		return
	}
	s.StrokeRect(constrainRect(t.start, t.current, t.square), t.style.StrokeWidth, t.style.Color)
}

func (t *Rectangle) Cancel() {
	t.active = false
	t.square = false
}

// constrainRect returns the normalized rectangle from start to end. With
// square set both sides take the shorter extent, keeping the drag direction
// so the anchor stays at start.
func constrainRect(start, end geom.Point, square bool) geom.Rect {
	w := end.X - start.X
	h := end.Y - start.Y
	if square {
		side := min(abs(w), abs(h))
		w = withSign(side, w)
		h = withSign(side, h)
	}
	return geom.Rect{X: start.X, Y: start.Y, W: w, H: h}.Normalize()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func withSign(mag, sign float64) float64 {
	if sign < 0 {
		return -mag
	}
	return mag
}

// minArrowLength is the longest drag treated as a click rather than an arrow.
const minArrowLength = 3

// Arrow drags out a line with a head at the release point.
type Arrow struct {
	styled
	start, current geom.Point
	active         bool
}

// NewArrow returns an arrow tool using the default style.
func NewArrow() *Arrow { return &Arrow{styled: styled{style: annotation.DefaultStyle()}} }

func (*Arrow) Kind() annotation.Kind { return annotation.KindArrow }

func (t *Arrow) Begin(p geom.Point, _ Modifiers) {
	t.start, t.current = p, p
	t.active = true
}

func (t *Arrow) Update(p geom.Point, _ Modifiers) {
	if t.active {
		t.current = p
	}
}

func (t *Arrow) End(p geom.Point, _ Modifiers) (annotation.Annotation, bool) {
	if !t.active {
		return nil, false
	}
	start := t.start
	t.Cancel()
	if start.Dist(p) <= minArrowLength {
		return nil, false
	}
	return annotation.NewArrow(start, p, t.style), true
}

func (t *Arrow) Preview(s *render.Surface) {
	if !t.active || t.start == t.current {
		return
	}
	annotation.RenderArrow(s, t.start, t.current, t.style)
}

func (t *Arrow) Cancel() { t.active = false }
