//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

var portalHandleToken = newPortalHandleToken

func portalScreenshot(ctx context.Context, interactive bool) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	var handle dbus.ObjectPath
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalScreenshotOptions(interactive))
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return nil, fmt.Errorf("portal screenshot: connection closed")
			}
			if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
				continue
			}
			return portalResult(sig)
		}
	}
}

// portalResult decodes a Request.Response signal. A non-zero response code
// means the user cancelled or permission was denied.
func portalResult(sig *dbus.Signal) (*image.RGBA, error) {
	if len(sig.Body) < 2 {
		return nil, fmt.Errorf("portal screenshot: malformed response")
	}
	if code, ok := sig.Body[0].(uint32); ok && code != 0 {
		return nil, fmt.Errorf("portal screenshot: request ended with code %d", code)
	}
	res, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("portal screenshot: malformed response")
	}
	uriVar, ok := res["uri"]
	if !ok {
		return nil, fmt.Errorf("portal screenshot: response missing image data")
	}
	uri, _ := uriVar.Value().(string)
	path := strings.TrimPrefix(uri, "file://")
	if u, err := url.Parse(uri); err == nil && u.Scheme == "file" {
		path = u.Path
	}
	img, err := loadPNG(path)
	if err != nil {
		return nil, fmt.Errorf("portal screenshot image: %w", err)
	}
	return img, nil
}

func newPortalHandleToken() string {
	return fmt.Sprintf("drawg_%d", time.Now().UnixNano())
}

func portalScreenshotOptions(interactive bool) map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"modal":        dbus.MakeVariant(interactive),
	}
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "close %s: %v\n", path, cerr)
		}
	}()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "remove %s: %v\n", path, err)
		}
	}() // best effort cleanup

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}
