package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/drawg/internal/geom"
)

var red = color.RGBA{R: 255, A: 255}

func newSurface(w, h int) *Surface {
	return NewSurface(image.NewRGBA(image.Rect(0, 0, w, h)))
}

func TestStrokeLineDrawsAlongSegment(t *testing.T) {
	s := newSurface(40, 40)
	s.StrokeLine(geom.Pt(5, 20), geom.Pt(35, 20), 4, red, RoundStroke)
	if got := s.Image().RGBAAt(20, 20); got.A == 0 || got.R == 0 {
		t.Fatalf("expected red on the line, got %+v", got)
	}
	if got := s.Image().RGBAAt(20, 5); got.A != 0 {
		t.Fatalf("expected nothing far from the line, got %+v", got)
	}
}

func TestScaledSurfaceScalesGeometry(t *testing.T) {
	s := newSurface(100, 100).Scaled(2, 2)
	s.StrokeLine(geom.Pt(10, 40), geom.Pt(40, 40), 2, red, RoundStroke)
	img := s.Image()
	if got := img.RGBAAt(50, 80); got.A == 0 {
		t.Fatalf("expected scaled stroke at (50,80), got %+v", got)
	}
	if got := img.RGBAAt(50, 40); got.A != 0 {
		t.Fatalf("expected unscaled position to be empty, got %+v", got)
	}
	if b := s.Bounds(); b.W != 50 || b.H != 50 {
		t.Fatalf("bounds in canvas units = %+v, want 50x50", b)
	}
}

func TestFillPolygon(t *testing.T) {
	s := newSurface(30, 30)
	s.FillPolygon([]geom.Point{{X: 5, Y: 5}, {X: 25, Y: 5}, {X: 15, Y: 25}}, red)
	if got := s.Image().RGBAAt(15, 10); got.A != 255 {
		t.Fatalf("expected filled interior, got %+v", got)
	}
	if got := s.Image().RGBAAt(2, 28); got.A != 0 {
		t.Fatalf("expected empty exterior, got %+v", got)
	}
}

func TestStrokeRectLeavesInteriorEmpty(t *testing.T) {
	s := newSurface(50, 50)
	s.StrokeRect(geom.Rect{X: 10, Y: 10, W: 30, H: 30}, 2, red)
	if got := s.Image().RGBAAt(10, 25); got.A == 0 {
		t.Fatalf("expected outline on left edge, got %+v", got)
	}
	if got := s.Image().RGBAAt(25, 25); got.A != 0 {
		t.Fatalf("expected empty interior, got %+v", got)
	}
}

func TestDrawImageExactCopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 2, red)
	s := newSurface(4, 4)
	s.DrawImage(src, geom.Rect{W: 4, H: 4})
	if got := s.Image().RGBAAt(1, 2); got != red {
		t.Fatalf("pixel = %+v, want %+v", got, red)
	}
}

func TestDrawImageScalesToBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, red)
		}
	}
	s := newSurface(5, 5)
	s.DrawImage(src, geom.Rect{W: 5, H: 5})
	if got := s.Image().RGBAAt(4, 4); got.A == 0 {
		t.Fatalf("expected downscaled image to cover surface, got %+v", got)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	s := newSurface(120, 40)
	if err := s.DrawText(geom.Pt(2, 2), "Hello", 16, red); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	painted := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if s.Image().RGBAAt(x, y).A != 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Fatal("expected text pixels")
	}
}

func TestMeasureTextGrowsWithText(t *testing.T) {
	short, err := MeasureText("a", 16)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	long, err := MeasureText("a longer label", 16)
	if err != nil {
		t.Fatalf("MeasureText: %v", err)
	}
	if long.W <= short.W {
		t.Fatalf("expected wider measurement, got %v <= %v", long.W, short.W)
	}
	if short.H <= 0 {
		t.Fatalf("expected positive height, got %v", short.H)
	}
}

func TestMeasureTextRejectsBadSize(t *testing.T) {
	if _, err := MeasureText("x", 0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestFaceCacheIsBounded(t *testing.T) {
	for i := 0; i < 3*maxCachedFaces; i++ {
		if _, err := MeasureText("Hello", 10+float64(i)); err != nil {
			t.Fatalf("MeasureText: %v", err)
		}
	}
	if n := textFaces.count(); n > maxCachedFaces {
		t.Fatalf("cached %d faces, limit %d", n, maxCachedFaces)
	}
	recent, err := faceForSize(10 + float64(3*maxCachedFaces-1))
	if err != nil {
		t.Fatalf("faceForSize: %v", err)
	}
	again, _ := faceForSize(10 + float64(3*maxCachedFaces-1))
	if recent != again {
		t.Fatal("most recent size should still be cached")
	}
}
