package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
)

// captureCmd grabs the screen and saves it without opening the editor.
type captureCmd struct {
	rect    string
	monitor int
	copy    bool
	*root
	fs *flag.FlagSet
}

func (c *captureCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *captureCmd) Program() string {
	return c.subcommand("capture")
}

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.StringVar(&c.rect, "rect", "", "region to capture as x,y,width,height")
	fs.IntVar(&c.monitor, "monitor", -1, "monitor index to capture")
	fs.BoolVar(&c.copy, "copy", false, "also copy the capture to the clipboard")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.rect != "" && c.monitor >= 0 {
		return nil, fmt.Errorf("-rect and -monitor cannot be combined")
	}
	return c, nil
}

func (c *captureCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rect, err := captureTarget(c.rect, c.monitor)
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	img, err := captureRegionFn(ctx, rect)
	if err != nil {
		return fmt.Errorf("failed to capture screen: %w", err)
	}
	c.notifier.Capture(fmt.Sprintf("%dx%d at %d,%d", rect.Dx(), rect.Dy(), rect.Min.X, rect.Min.Y), img)

	store, err := c.openStore()
	if err != nil {
		return err
	}
	sess := c.newSession(store)
	canvas := rawCanvas{img}
	if c.copy {
		path, err := sess.SaveAndCopy(canvas)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, path)
		return nil
	}
	path, err := store.Save(img, sess.Format())
	if err != nil {
		return err
	}
	c.notifier.Save(path)
	fmt.Fprintln(c.stdout, path)
	return nil
}

// rawCanvas presents an unannotated capture to a session.
type rawCanvas struct{ img *image.RGBA }

func (r rawCanvas) Base() *image.RGBA                    { return r.img }
func (r rawCanvas) Annotations() []annotation.Annotation { return nil }
func (r rawCanvas) CanvasSize() geom.Size                { return geom.SizeOf(r.img.Bounds()) }
