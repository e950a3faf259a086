package appstate

import (
	"image"
	"math"

	"github.com/example/drawg/internal/geom"
)

const (
	toolbarHeight = 32
	statusHeight  = 24
	margin        = 12

	// Largest canvas opened without downscaling, in window pixels.
	defaultMaxCanvasW = 1600
	defaultMaxCanvasH = 1000
)

// fitScale returns the factor that fits an imgW x imgH capture inside
// maxW x maxH without ever enlarging it.
func fitScale(imgW, imgH, maxW, maxH int) float64 {
	if imgW <= 0 || imgH <= 0 || maxW <= 0 || maxH <= 0 {
		return 1
	}
	return math.Min(1, math.Min(float64(maxW)/float64(imgW), float64(maxH)/float64(imgH)))
}

// view places the canvas inside the window.
type view struct {
	canvas geom.Size // editor canvas size in window pixels
	window image.Point
	minW   int // narrowest window that still fits the toolbar
}

func newView(imgW, imgH, maxW, maxH, minW int) view {
	s := fitScale(imgW, imgH, maxW, maxH)
	v := view{
		canvas: geom.Size{W: math.Round(float64(imgW) * s), H: math.Round(float64(imgH) * s)},
		minW:   minW,
	}
	v.window = v.preferredSize()
	return v
}

// preferredSize is the window size that shows the whole canvas.
func (v view) preferredSize() image.Point {
	w := int(v.canvas.W) + 2*margin
	if w < v.minW {
		w = v.minW
	}
	return image.Pt(w, int(v.canvas.H)+toolbarHeight+statusHeight+2*margin)
}

// canvasRect is where the canvas is drawn, centred under the toolbar.
func (v view) canvasRect() image.Rectangle {
	cw, ch := int(v.canvas.W), int(v.canvas.H)
	areaH := v.window.Y - toolbarHeight - statusHeight
	x := (v.window.X - cw) / 2
	y := toolbarHeight + (areaH-ch)/2
	if x < 0 {
		x = 0
	}
	if y < toolbarHeight {
		y = toolbarHeight
	}
	return image.Rect(x, y, x+cw, y+ch)
}

// toCanvas maps a window position to canvas coordinates.
func (v view) toCanvas(x, y float32) geom.Point {
	r := v.canvasRect()
	return geom.Pt(float64(x)-float64(r.Min.X), float64(y)-float64(r.Min.Y))
}

func (v view) inToolbar(x, y float32) bool { return y >= 0 && y < toolbarHeight && x >= 0 }

func (v view) inCanvas(x, y float32) bool {
	return image.Pt(int(x), int(y)).In(v.canvasRect())
}

func (v view) statusRect() image.Rectangle {
	return image.Rect(0, v.window.Y-statusHeight, v.window.X, v.window.Y)
}
