package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawg/internal/geom"
)

var (
	fontOnce sync.Once
	textFont *opentype.Font
	fontErr  error

	textFaces = faceCache{limit: maxCachedFaces}
)

// maxCachedFaces bounds the faces kept across renders. Each face carries its
// own glyph cache.
const maxCachedFaces = 16

// faceCache keeps recently built faces by size, dropping the oldest once
// limit is reached.
type faceCache struct {
	mu    sync.Mutex
	limit int
	faces map[float64]font.Face
	order []float64
}

func (c *faceCache) get(size float64) (font.Face, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.faces[size]
	return f, ok
}

// put stores face unless another caller stored one first, and returns the
// face to use.
func (c *faceCache) put(size float64, face font.Face) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[size]; ok {
		return f
	}
	if c.faces == nil {
		c.faces = make(map[float64]font.Face)
	}
	if len(c.order) >= c.limit {
		delete(c.faces, c.order[0])
		c.order = c.order[1:]
	}
	c.faces[size] = face
	c.order = append(c.order, size)
	return face
}

func (c *faceCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		textFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("parse font: %w", fontErr)
		}
	})
	return textFont, fontErr
}

// faceForSize returns a face at size pixels, cached while recently used.
// Sizes are rounded to a quarter pixel so repeated scaled renders share faces.
func faceForSize(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}
	size = math.Round(size*4) / 4
	if face, ok := textFaces.get(size); ok {
		return face, nil
	}
	f, err := loadFont()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("font face %v: %w", size, err)
	}
	return textFaces.put(size, face), nil
}

// MeasureText returns the extent of text set at size in canvas units.
func MeasureText(text string, size float64) (geom.Size, error) {
	face, err := faceForSize(size)
	if err != nil {
		return geom.Size{}, err
	}
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return geom.Size{
		W: float64(d.MeasureString(text)) / 64,
		H: float64(m.Ascent+m.Descent) / 64,
	}, nil
}

// DrawText draws text with its top-left corner at origin. Text is not
// clipped.
func (s *Surface) DrawText(origin geom.Point, text string, size float64, col color.Color) error {
	if text == "" {
		return nil
	}
	face, err := faceForSize(size * s.lengthScale())
	if err != nil {
		return err
	}
	x := origin.X * s.scaleX
	y := origin.Y * s.scaleY
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y*64) + face.Metrics().Ascent},
	}
	d.DrawString(text)
	return nil
}
