// Package session turns an editor's canvas into a saved, copied capture.
package session

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/clipboard"
	"github.com/example/drawg/internal/export"
	"github.com/example/drawg/internal/geom"
)

// ErrNothingToSave is returned when the canvas has no base image.
var ErrNothingToSave = errors.New("session: nothing to save")

// Canvas is the editor state a save reads. *editor.Editor satisfies it.
type Canvas interface {
	Base() *image.RGBA
	Annotations() []annotation.Annotation
	CanvasSize() geom.Size
}

// Saver persists encoded captures. *storage.Store satisfies it.
type Saver interface {
	Save(img image.Image, format export.Format) (string, error)
}

// Notifier reports completed saves and copies. *notify.Notifier satisfies it.
type Notifier interface {
	Save(path string)
	Copy(detail string)
}

// Session saves and copies flattened canvases.
type Session struct {
	store    Saver
	format   export.Format
	copyFn   func(image.Image) error
	notifier Notifier
	flatten  func(image.Image, []annotation.Annotation, geom.Size) (*image.RGBA, error)
}

// Option configures a Session.
type Option func(*Session)

// WithClipboard replaces the clipboard writer. A nil fn disables copying.
func WithClipboard(fn func(image.Image) error) Option {
	return func(s *Session) { s.copyFn = fn }
}

// WithNotifier reports saves and copies to n.
func WithNotifier(n Notifier) Option { return func(s *Session) { s.notifier = n } }

// New returns a Session saving into store with the given format.
func New(store Saver, format export.Format, opts ...Option) *Session {
	s := &Session{
		store:   store,
		format:  format,
		copyFn:  clipboard.WriteImage,
		flatten: export.Flatten,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.format == "" {
		s.format = export.PNG
	}
	return s
}

// Format reports the output encoding.
func (s *Session) Format() export.Format { return s.format }

// Render returns the raster that would be saved for c.
// A canvas without annotations is returned as its base, unflattened.
func (s *Session) Render(c Canvas) (*image.RGBA, error) {
	base := c.Base()
	if base == nil || base.Bounds().Empty() {
		return nil, ErrNothingToSave
	}
	anns := c.Annotations()
	if len(anns) == 0 {
		return base, nil
	}
	img, err := s.flatten(base, anns, c.CanvasSize())
	if err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}
	return img, nil
}

// SaveAndCopy flattens c, writes it to the store and places it on the clipboard.
// Nothing is copied when the save fails. Clipboard failures are logged only.
func (s *Session) SaveAndCopy(c Canvas) (string, error) {
	img, err := s.Render(c)
	if err != nil {
		log.Printf("save aborted: %v", err)
		return "", err
	}
	path, err := s.store.Save(img, s.format)
	if err != nil {
		log.Printf("save aborted: %v", err)
		return "", err
	}
	log.Printf("saved %s", path)
	if s.notifier != nil {
		s.notifier.Save(path)
	}
	s.copy(img)
	return path, nil
}

// Copy places the flattened canvas on the clipboard without saving.
func (s *Session) Copy(c Canvas) error {
	img, err := s.Render(c)
	if err != nil {
		log.Printf("copy aborted: %v", err)
		return err
	}
	s.copy(img)
	return nil
}

func (s *Session) copy(img image.Image) {
	if s.copyFn == nil {
		return
	}
	if err := s.copyFn(img); err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	if s.notifier != nil {
		s.notifier.Copy("")
	}
}
