package main

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/drawg/internal/capture"
)

// Test seams.
var (
	captureRegionFn = capture.Screen{}.CaptureRegion
	interactiveFn   = capture.Interactive
	desktopFn       = capture.Desktop
	listMonitorsFn  = capture.ListMonitors
)

// parseRect parses "x,y,w,h" in global screen coordinates.
func parseRect(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid rect %q: want x,y,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("invalid rect %q: width and height must be positive", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// captureTarget resolves the region for a capture. An explicit rect wins,
// then a monitor index, then the whole desktop.
func captureTarget(rect string, monitor int) (image.Rectangle, error) {
	if rect != "" {
		return parseRect(rect)
	}
	if monitor >= 0 {
		mons, err := listMonitorsFn()
		if err != nil {
			return image.Rectangle{}, err
		}
		for _, m := range mons {
			if m.Index == monitor {
				return m.Rect, nil
			}
		}
		return image.Rectangle{}, fmt.Errorf("monitor %d not found (%d available)", monitor, len(mons))
	}
	return desktopFn()
}

// screenCapturer adapts captureRegionFn to capture.Capturer.
type screenCapturer struct{}

func (screenCapturer) CaptureRegion(ctx context.Context, rect image.Rectangle) (*image.RGBA, error) {
	return captureRegionFn(ctx, rect)
}
