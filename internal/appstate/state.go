// Package appstate hosts an annotation editor in a shiny window.
package appstate

import (
	"context"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/capture"
	"github.com/example/drawg/internal/config"
	"github.com/example/drawg/internal/session"
	"github.com/example/drawg/internal/theme"
)

// AppState holds the configuration of one editor window.
type AppState struct {
	Image   image.Image
	Session *session.Session
	Theme   *theme.Theme
	Tools   config.Tools
	Title   string

	capturer capture.Capturer
	region   image.Rectangle
	ctx      context.Context

	maxW, maxH int

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the capture to annotate.
func WithImage(img image.Image) Option { return func(a *AppState) { a.Image = img } }

// WithCapture captures region with c once the window is open and annotates
// the result. The window closes if the capture fails.
func WithCapture(ctx context.Context, c capture.Capturer, region image.Rectangle) Option {
	return func(a *AppState) {
		a.ctx = ctx
		a.capturer = c
		a.region = region
	}
}

// WithSession sets where Ctrl+S saves to.
func WithSession(s *session.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithTools sets the initial markup style.
func WithTools(t config.Tools) Option { return func(a *AppState) { a.Tools = t } }

// WithMaxCanvas bounds the on-screen canvas; larger captures are shown scaled down.
func WithMaxCanvas(w, h int) Option { return func(a *AppState) { a.maxW, a.maxH = w, h } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title: "drawg",
		Tools: config.Tools{
			Color:       annotation.DefaultColor,
			StrokeWidth: annotation.DefaultStrokeWidth,
			FontSize:    annotation.DefaultFontSize,
		},
		ctx: context.Background(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// captureEvent carries a finished capture into the event loop. img is nil
// when the capture failed.
type captureEvent struct {
	img *image.RGBA
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()

	c := newController(a.Theme, a.Tools, a.Session)
	var planned image.Point
	switch {
	case a.Image != nil:
		b := a.Image.Bounds()
		planned = c.plan(b.Dx(), b.Dy(), a.maxW, a.maxH)
	case a.capturer != nil:
		planned = c.plan(a.region.Dx(), a.region.Dy(), a.maxW, a.maxH)
		c.status = "capturing..."
	default:
		log.Print("nothing to annotate")
		return
	}

	w, err := s.NewWindow(&screen.NewWindowOptions{Width: planned.X, Height: planned.Y, Title: a.Title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	c.repaint = func() { w.Send(paint.Event{}) }
	c.quit = func() { w.Send(lifecycle.Event{To: lifecycle.StageDead}) }

	if a.Image != nil {
		if err := c.open(a.Image); err != nil {
			log.Printf("open editor: %v", err)
			return
		}
	} else {
		ch := capture.Async(a.ctx, a.capturer, a.region)
		go func() { w.Send(captureEvent{img: <-ch}) }()
	}

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				c.close()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				c.focusLost()
			}
		case captureEvent:
			if e.img == nil {
				log.Print("capture failed, closing editor")
				c.close()
				return
			}
			if err := c.open(e.img); err != nil {
				log.Printf("open editor: %v", err)
				return
			}
		case size.Event:
			c.resize(e.Size())
		case paint.Event:
			drawFrame(s, w, c)
		case mouse.Event:
			c.handleMouse(e)
		case key.Event:
			c.handleKey(e)
		case error:
			log.Print(e)
		}
	}
}

func drawFrame(s screen.Screen, w screen.Window, c *controller) {
	b, err := s.NewBuffer(c.view.window)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	c.draw(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
