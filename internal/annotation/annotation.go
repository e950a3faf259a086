// Package annotation defines the overlay objects drawn on top of a capture.
//
// Annotations are immutable once constructed. Every constructor copies the
// geometry it is given and every accessor returns a copy, so a committed
// annotation can be shared between the undo history and a renderer safely.
package annotation

import (
	"image/color"
	"math"

	"github.com/google/uuid"

	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
)

const (
	// DefaultStrokeWidth is used when a style does not set a width.
	DefaultStrokeWidth = 3.0
	// DefaultFontSize is used for text when no size is given.
	DefaultFontSize = 16.0

	// MinStrokeWidth and MaxStrokeWidth bound the width a user can pick.
	MinStrokeWidth = 1.0
	MaxStrokeWidth = 20.0
)

// DefaultColor is the initial markup colour.
var DefaultColor = color.RGBA{R: 255, G: 59, B: 48, A: 255}

// Kind identifies the variant of an annotation.
type Kind int

const (
	KindPen Kind = iota
	KindRectangle
	KindArrow
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPen:
		return "pen"
	case KindRectangle:
		return "rectangle"
	case KindArrow:
		return "arrow"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Style carries the attributes shared by every annotation.
type Style struct {
	Color       color.RGBA
	StrokeWidth float64
}

// DefaultStyle returns the style new tools start with.
func DefaultStyle() Style {
	return Style{Color: DefaultColor, StrokeWidth: DefaultStrokeWidth}
}

func (s Style) normalized() Style {
	if s.StrokeWidth <= 0 || math.IsNaN(s.StrokeWidth) {
		s.StrokeWidth = DefaultStrokeWidth
	}
	return s
}

// Annotation is one committed drawable overlay.
type Annotation interface {
	ID() uuid.UUID
	Kind() Kind
	Style() Style
	// Render draws the annotation onto s in canvas coordinates.
	Render(s *render.Surface)
}

type common struct {
	id    uuid.UUID
	style Style
}

func newCommon(st Style) common {
	return common{id: uuid.New(), style: st.normalized()}
}

func (c common) ID() uuid.UUID { return c.id }
func (c common) Style() Style  { return c.style }

func copyPoints(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	copy(out, pts)
	return out
}
