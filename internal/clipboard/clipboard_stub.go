//go:build !(windows || ((linux || darwin) && cgo))

// Package clipboard publishes images to the system clipboard.
package clipboard

import (
	"errors"
	"image"
)

// ErrNoImage is returned by ReadImage when the clipboard holds no image.
var ErrNoImage = errors.New("clipboard does not contain image data")

var errUnsupported = errors.New("clipboard image operations are not supported on this build")

func WriteImage(image.Image) error { return errUnsupported }

func ReadImage() (image.Image, error) { return nil, errUnsupported }
