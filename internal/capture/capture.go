// Package capture grabs screen regions for annotation.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"

	"github.com/kbinani/screenshot"
)

var (
	// ErrEmptyRegion is returned for a zero-area capture request.
	ErrEmptyRegion = errors.New("capture: region is empty")
	// ErrNoDisplays is returned when no active display is found.
	ErrNoDisplays = errors.New("capture: no active displays")
)

// Capturer grabs a rectangle of the screen in global coordinates.
type Capturer interface {
	CaptureRegion(ctx context.Context, rect image.Rectangle) (*image.RGBA, error)
}

// Test seams.
var (
	captureRectFn      = screenshot.CaptureRect
	portalScreenshotFn = portalScreenshot
	numDisplaysFn      = screenshot.NumActiveDisplays
	displayBoundsFn    = screenshot.GetDisplayBounds
)

// Screen captures through the screenshot library and falls back to the
// desktop portal when the library cannot read the screen, as happens under
// Wayland compositors.
type Screen struct{}

// CaptureRegion implements Capturer.
func (Screen) CaptureRegion(ctx context.Context, rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, ErrEmptyRegion
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, directErr := captureRectFn(rect)
	if directErr == nil {
		return normalize(img), nil
	}
	shot, err := portalScreenshotFn(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("capture %v: %v; portal fallback failed: %w", rect, directErr, err)
	}
	return cropToRect(shot, rect)
}

// Interactive asks the desktop portal to let the user pick a region.
func Interactive(ctx context.Context) (*image.RGBA, error) {
	return portalScreenshotFn(ctx, true)
}

// MonitorInfo describes one display in the desktop layout.
type MonitorInfo struct {
	Index   int
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors returns the active displays. The first display is primary.
func ListMonitors() ([]MonitorInfo, error) {
	n := numDisplaysFn()
	if n <= 0 {
		return nil, ErrNoDisplays
	}
	out := make([]MonitorInfo, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, MonitorInfo{Index: i, Rect: displayBoundsFn(i), Primary: i == 0})
	}
	return out, nil
}

// Desktop returns the union of all display bounds.
func Desktop() (image.Rectangle, error) {
	monitors, err := ListMonitors()
	if err != nil {
		return image.Rectangle{}, err
	}
	union := monitors[0].Rect
	for _, m := range monitors[1:] {
		union = union.Union(m.Rect)
	}
	return union, nil
}

// Async captures rect off the caller's goroutine. The channel yields the
// image, or nil when the capture failed or was cancelled, and is then
// closed. Failures are logged and not retried.
func Async(ctx context.Context, c Capturer, rect image.Rectangle) <-chan *image.RGBA {
	ch := make(chan *image.RGBA, 1)
	go func() {
		defer close(ch)
		img, err := c.CaptureRegion(ctx, rect)
		if err != nil {
			log.Printf("capture %v: %v", rect, err)
			ch <- nil
			return
		}
		ch <- img
	}()
	return ch
}

func normalize(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min == (image.Point{}) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
