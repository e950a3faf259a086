// Package render provides the drawing surface annotations paint onto.
//
// A Surface wraps an RGBA buffer together with a scale from canvas units to
// buffer pixels. Geometry handed to a Surface is always in canvas units; the
// surface applies its scale to coordinates, stroke widths and font sizes so
// the same annotation can be drawn on screen and at native resolution.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawg/internal/geom"
)

// StrokeStyle selects how path ends and corners are drawn.
type StrokeStyle struct {
	Cap        rasterx.CapFunc
	Gap        rasterx.GapFunc
	Join       rasterx.JoinMode
	MiterLimit float64
}

var (
	// RoundStroke draws rounded ends and joins, used for freehand paths and arrow shafts.
	RoundStroke = StrokeStyle{Cap: rasterx.RoundCap, Gap: rasterx.RoundGap, Join: rasterx.Round}
	// SharpStroke draws square corners, used for rectangle outlines.
	SharpStroke = StrokeStyle{Cap: rasterx.ButtCap, Gap: rasterx.FlatGap, Join: rasterx.Miter, MiterLimit: 10}
)

// Surface is a drawing target in canvas coordinates.
type Surface struct {
	img    *image.RGBA
	scaleX float64
	scaleY float64

	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher
	filler  *rasterx.Filler
}

// NewSurface returns a surface drawing into img with a 1:1 scale. img must
// have a zero origin.
func NewSurface(img *image.RGBA) *Surface {
	return &Surface{img: img, scaleX: 1, scaleY: 1}
}

// Scaled returns a surface sharing the same buffer whose scale is multiplied
// by (sx, sy).
func (s *Surface) Scaled(sx, sy float64) *Surface {
	return &Surface{img: s.img, scaleX: s.scaleX * sx, scaleY: s.scaleY * sy}
}

// Image returns the underlying buffer.
func (s *Surface) Image() *image.RGBA { return s.img }

// Scale reports the canvas-to-pixel scale per axis.
func (s *Surface) Scale() (sx, sy float64) { return s.scaleX, s.scaleY }

// Bounds returns the extent of the buffer in canvas units.
func (s *Surface) Bounds() geom.Rect {
	b := s.img.Bounds()
	return geom.Rect{W: float64(b.Dx()) / s.scaleX, H: float64(b.Dy()) / s.scaleY}
}

// lengthScale is the factor applied to lengths that have no axis, such as
// stroke widths and font sizes.
func (s *Surface) lengthScale() float64 {
	return 0.5 * (math.Abs(s.scaleX) + math.Abs(s.scaleY))
}

func (s *Surface) device(p geom.Point) fixed.Point26_6 {
	return rasterx.ToFixedP(p.X*s.scaleX, p.Y*s.scaleY)
}

func (s *Surface) ensureRaster() {
	if s.scanner != nil {
		return
	}
	b := s.img.Bounds()
	s.scanner = rasterx.NewScannerGV(b.Dx(), b.Dy(), s.img, b)
	s.dasher = rasterx.NewDasher(b.Dx(), b.Dy(), s.scanner)
	s.filler = rasterx.NewFiller(b.Dx(), b.Dy(), s.scanner)
}

// StrokePath strokes the polyline through pts. When closed is set the last
// point joins back to the first.
func (s *Surface) StrokePath(pts []geom.Point, width float64, col color.Color, closed bool, style StrokeStyle) {
	if len(pts) == 0 || width <= 0 {
		return
	}
	s.ensureRaster()
	d := s.dasher
	d.Clear()
	w := width * s.lengthScale()
	d.SetStroke(fixed.Int26_6(w*64), fixed.Int26_6(style.MiterLimit*64), style.Cap, style.Cap, style.Gap, style.Join, nil, 0)
	d.Start(s.device(pts[0]))
	if len(pts) == 1 {
		// A lone point still leaves a dot under the pen.
		d.Line(s.device(pts[0].Add(geom.Pt(0.01, 0))))
	}
	for _, p := range pts[1:] {
		d.Line(s.device(p))
	}
	d.Stop(closed)
	d.SetColor(col)
	d.Draw()
	d.Clear()
}

// StrokeLine strokes a single segment from a to b.
func (s *Surface) StrokeLine(a, b geom.Point, width float64, col color.Color, style StrokeStyle) {
	s.StrokePath([]geom.Point{a, b}, width, col, false, style)
}

// StrokeRect strokes the outline of r.
func (s *Surface) StrokeRect(r geom.Rect, width float64, col color.Color) {
	r = r.Normalize()
	pts := []geom.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
	s.StrokePath(pts, width, col, true, SharpStroke)
}

// FillPolygon fills the closed polygon through pts using the non-zero rule.
func (s *Surface) FillPolygon(pts []geom.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	s.ensureRaster()
	f := s.filler
	f.Clear()
	f.SetWinding(true)
	f.Start(s.device(pts[0]))
	for _, p := range pts[1:] {
		f.Line(s.device(p))
	}
	f.Stop(true)
	f.SetColor(col)
	f.Draw()
	f.Clear()
}

// FillRect fills r with col.
func (s *Surface) FillRect(r geom.Rect, col color.Color) {
	r = r.Normalize()
	s.FillPolygon([]geom.Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}, col)
}

// DrawImage scales src into dst. When dst maps onto src pixel for pixel the
// copy is exact.
func (s *Surface) DrawImage(src image.Image, dst geom.Rect) {
	r := geom.Rect{X: dst.X * s.scaleX, Y: dst.Y * s.scaleY, W: dst.W * s.scaleX, H: dst.H * s.scaleY}.Bounds()
	sb := src.Bounds()
	if r.Dx() == sb.Dx() && r.Dy() == sb.Dy() {
		draw.Draw(s.img, r, src, sb.Min, draw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(s.img, r, src, sb, draw.Over, nil)
}

// Fill paints the whole buffer with col.
func (s *Surface) Fill(col color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}
