package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/drawg/internal/appstate"
	"github.com/example/drawg/internal/clipboard"
	"github.com/example/drawg/internal/storage"
)

// annotateCmd represents the annotate subcommand.
type annotateCmd struct {
	mode    string
	file    string
	rect    string
	monitor int
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func (a *annotateCmd) Program() string {
	return a.subcommand("annotate")
}

// Test seams.
var (
	runEditorFn     = func(opts ...appstate.Option) { appstate.New(opts...).Run() }
	readClipboardFn = clipboard.ReadImage
)

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ContinueOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.StringVar(&a.file, "file", "", "image file to annotate (open-file)")
	fs.StringVar(&a.rect, "rect", "", "region to capture as x,y,width,height (capture-region)")
	fs.IntVar(&a.monitor, "monitor", -1, "monitor index to capture (capture-screen)")
	fs.Usage = usageFunc(a)
	if len(args) < 1 {
		return nil, &UsageError{of: a}
	}
	a.mode = args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	switch a.mode {
	case "capture-screen", "interactive", "clipboard":
	case "capture-region":
		if a.rect == "" {
			return nil, &UsageError{of: a}
		}
		if _, err := parseRect(a.rect); err != nil {
			return nil, err
		}
	case "open-file":
		if a.file == "" {
			return nil, &UsageError{of: a}
		}
	default:
		return nil, &UsageError{of: a}
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	opts := []appstate.Option{
		appstate.WithSession(a.newSession(store)),
		appstate.WithTheme(a.activeTheme),
		appstate.WithTools(a.config.Tools),
	}

	ctx := context.Background()
	switch a.mode {
	case "capture-screen":
		rect, err := captureTarget("", a.monitor)
		if err != nil {
			return fmt.Errorf("capture-screen: %w", err)
		}
		opts = append(opts, appstate.WithCapture(ctx, screenCapturer{}, rect))
	case "capture-region":
		rect, err := parseRect(a.rect)
		if err != nil {
			return err
		}
		opts = append(opts, appstate.WithCapture(ctx, screenCapturer{}, rect))
	case "interactive":
		img, err := interactiveFn(ctx)
		if err != nil {
			return fmt.Errorf("interactive capture: %w", err)
		}
		a.notifier.Capture("interactive selection", img)
		opts = append(opts, appstate.WithImage(img))
	case "open-file":
		img, err := storage.Load(a.file)
		if err != nil {
			return err
		}
		opts = append(opts, appstate.WithImage(img))
	case "clipboard":
		img, err := readClipboardFn()
		if err != nil {
			return fmt.Errorf("read clipboard: %w", err)
		}
		opts = append(opts, appstate.WithImage(img))
	}
	runEditorFn(opts...)
	return nil
}
