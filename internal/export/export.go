// Package export flattens annotations onto their capture and encodes the
// result for saving.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
)

var (
	// ErrAllocate reports dimensions no output buffer can be made for.
	ErrAllocate = errors.New("export: cannot allocate output image")
	// ErrUnsupportedFormat reports an encoding other than PNG or JPEG.
	ErrUnsupportedFormat = errors.New("export: unsupported format")
)

// maxPixels bounds the size of a flattened image.
const maxPixels = 1 << 28

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 90

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

// ParseFormat accepts png, jpeg or jpg in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case JPEG:
		return ".jpg"
	default:
		return ".png"
	}
}

func (f Format) String() string { return string(f) }

// Flatten draws annotations over base at the base's native resolution.
// Annotation geometry is given in a canvas of canvasSize and is scaled per
// axis to the base dimensions.
func Flatten(base image.Image, anns []annotation.Annotation, canvasSize geom.Size) (*image.RGBA, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: no base image", ErrAllocate)
	}
	b := base.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: base is %dx%d", ErrAllocate, w, h)
	}
	if canvasSize.Empty() {
		return nil, fmt.Errorf("%w: canvas is %vx%v", ErrAllocate, canvasSize.W, canvasSize.H)
	}
	if int64(w)*int64(h) > maxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocate, w, h, maxPixels)
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), base, b.Min, draw.Src)
	if len(anns) == 0 {
		return out, nil
	}
	sx := float64(w) / canvasSize.W
	sy := float64(h) / canvasSize.H
	s := render.NewSurface(out).Scaled(sx, sy)
	for _, a := range anns {
		a.Render(s)
	}
	return out, nil
}

// Encode serializes img in the given format.
func Encode(img image.Image, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case PNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case JPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
	return buf.Bytes(), nil
}
