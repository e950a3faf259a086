package annotation

import (
	"log"
	"math"

	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
)

// Pen is a freehand stroke through the sampled pointer positions.
type Pen struct {
	common
	points []geom.Point
}

// NewPen returns a pen stroke over a copy of points.
func NewPen(points []geom.Point, st Style) *Pen {
	return &Pen{common: newCommon(st), points: copyPoints(points)}
}

func (*Pen) Kind() Kind { return KindPen }

// Points returns the stroke path.
func (p *Pen) Points() []geom.Point { return copyPoints(p.points) }

func (p *Pen) Render(s *render.Surface) {
	RenderPath(s, p.points, p.style)
}

// RenderPath draws a pen path. Tools use it for their live preview so the
// preview matches the committed result.
func RenderPath(s *render.Surface, pts []geom.Point, st Style) {
	st = st.normalized()
	s.StrokePath(pts, st.StrokeWidth, st.Color, false, render.RoundStroke)
}

// Rectangle is an axis-aligned outline.
type Rectangle struct {
	common
	rect geom.Rect
}

// NewRectangle returns a rectangle outline. r is normalized.
func NewRectangle(r geom.Rect, st Style) *Rectangle {
	return &Rectangle{common: newCommon(st), rect: r.Normalize()}
}

func (*Rectangle) Kind() Kind { return KindRectangle }

// Rect returns the outlined rectangle.
func (r *Rectangle) Rect() geom.Rect { return r.rect }

func (r *Rectangle) Render(s *render.Surface) {
	s.StrokeRect(r.rect, r.style.StrokeWidth, r.style.Color)
}

const arrowHeadAngle = math.Pi / 6

// Arrow is a line with a filled head at its end point.
type Arrow struct {
	common
	start, end geom.Point
}

// NewArrow returns an arrow from start to end.
func NewArrow(start, end geom.Point, st Style) *Arrow {
	return &Arrow{common: newCommon(st), start: start, end: end}
}

func (*Arrow) Kind() Kind { return KindArrow }

// Start returns the tail of the arrow.
func (a *Arrow) Start() geom.Point { return a.start }

// End returns the point the head touches.
func (a *Arrow) End() geom.Point { return a.end }

// Head returns the triangle drawn at the end of the arrow. The first point
// is the tip.
func (a *Arrow) Head() [3]geom.Point {
	return ArrowHead(a.start, a.end, a.style.StrokeWidth)
}

func (a *Arrow) Render(s *render.Surface) {
	RenderArrow(s, a.start, a.end, a.style)
}

// ArrowHead computes the head triangle for a line from start to end.
func ArrowHead(start, end geom.Point, width float64) [3]geom.Point {
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	length := math.Max(width*4, 12)
	return [3]geom.Point{
		end,
		{X: end.X - length*math.Cos(angle-arrowHeadAngle), Y: end.Y - length*math.Sin(angle-arrowHeadAngle)},
		{X: end.X - length*math.Cos(angle+arrowHeadAngle), Y: end.Y - length*math.Sin(angle+arrowHeadAngle)},
	}
}

// RenderArrow draws the shaft and head of an arrow.
func RenderArrow(s *render.Surface, start, end geom.Point, st Style) {
	st = st.normalized()
	s.StrokeLine(start, end, st.StrokeWidth, st.Color, render.RoundStroke)
	head := ArrowHead(start, end, st.StrokeWidth)
	s.FillPolygon(head[:], st.Color)
}

// Text is a label anchored at the top-left of its rectangle.
type Text struct {
	common
	text     string
	rect     geom.Rect
	fontSize float64
}

// NewText returns a text label. A non-positive fontSize selects
// DefaultFontSize. Callers must not pass an empty string.
func NewText(text string, rect geom.Rect, fontSize float64, st Style) *Text {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Text{common: newCommon(st), text: text, rect: rect, fontSize: fontSize}
}

func (*Text) Kind() Kind { return KindText }

// Text returns the label string.
func (t *Text) Text() string { return t.text }

// Rect returns the anchor rectangle.
func (t *Text) Rect() geom.Rect { return t.rect }

// FontSize returns the size in canvas units.
func (t *Text) FontSize() float64 { return t.fontSize }

func (t *Text) Render(s *render.Surface) {
	if err := s.DrawText(t.rect.Min(), t.text, t.fontSize, t.style.Color); err != nil {
		log.Printf("draw text %s: %v", t.id, err)
	}
}
