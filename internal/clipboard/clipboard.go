//go:build windows || ((linux || darwin) && cgo)

// Package clipboard publishes images to the system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"

	"golang.design/x/clipboard"

	"github.com/example/drawg/internal/export"
)

// ErrNoImage is returned by ReadImage when the clipboard holds no image.
var ErrNoImage = errors.New("clipboard does not contain image data")

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

// initFn is replaced in tests.
var initFn = clipboard.Init

func ensureInit() error {
	initOnce.Do(func() {
		if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		initErr = initFn()
	})
	return initErr
}

// WriteImage publishes img to the clipboard as PNG, the one image format
// every clipboard backend understands.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := export.Encode(img, export.PNG)
	if err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	clipboard.Write(clipboard.FmtImage, data)
	return nil
}

// ReadImage decodes the clipboard image. PNG and JPEG payloads are accepted.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data := clipboard.Read(clipboard.FmtImage)
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}
