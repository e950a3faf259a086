package render

import (
	"image"
	"image/draw"
)

// ToRGBA returns img as an RGBA buffer with a zero origin. An RGBA image
// that already has a zero origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
