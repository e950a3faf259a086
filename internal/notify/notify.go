// Package notify turns capture, save and copy events into desktop
// notifications. Every event is off until enabled.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/drawg/internal/export"
	"github.com/example/drawg/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	EventCapture Event = "capture"
	EventSave    Event = "save"
	EventCopy    Event = "copy"
)

// Events lists every event in display order.
var Events = []Event{EventCapture, EventSave, EventCopy}

const (
	// DefaultTitle heads every notification.
	DefaultTitle = "Drawg"
	// EnvTitle overrides the title.
	EnvTitle = "DRAWG_NOTIFY_TITLE"
)

// EnvTemplate is the variable overriding the body template of ev, for
// example DRAWG_NOTIFY_SAVE_TEXT.
func EnvTemplate(ev Event) string {
	return "DRAWG_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
}

var defaultTemplates = map[Event]string{
	EventCapture: "Captured %s",
	EventSave:    "Saved %s",
	EventCopy:    "Copied %s to the clipboard",
}

// notifyFn is replaced in tests.
var notifyFn = platform.Notify

// Notifier sends desktop notifications for the events it has enabled. A nil
// Notifier is valid and sends nothing.
type Notifier struct {
	title     string
	templates map[Event]string
	enabled   map[Event]bool
}

// Option customises a Notifier.
type Option func(*Notifier)

// WithTitle replaces the notification title.
func WithTitle(title string) Option { return func(n *Notifier) { n.title = title } }

// WithTemplate replaces the body of ev. A %s verb receives the event detail;
// templates without one are sent verbatim.
func WithTemplate(ev Event, tmpl string) Option {
	return func(n *Notifier) { n.templates[ev] = tmpl }
}

// FromEnv reads title and template overrides through lookup. Blank values
// are ignored.
func FromEnv(lookup func(string) (string, bool)) []Option {
	var opts []Option
	if v, ok := lookup(EnvTitle); ok && strings.TrimSpace(v) != "" {
		opts = append(opts, WithTitle(strings.TrimSpace(v)))
	}
	for _, ev := range Events {
		if v, ok := lookup(EnvTemplate(ev)); ok && strings.TrimSpace(v) != "" {
			opts = append(opts, WithTemplate(ev, strings.TrimSpace(v)))
		}
	}
	return opts
}

// New returns a Notifier with every event disabled.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		title:     DefaultTitle,
		templates: make(map[Event]string, len(defaultTemplates)),
		enabled:   make(map[Event]bool),
	}
	for ev, tmpl := range defaultTemplates {
		n.templates[ev] = tmpl
	}
	for _, o := range opts {
		o(n)
	}
	return n
}

// Enable toggles a single event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Configure sets all three events at once.
func (n *Notifier) Configure(capture, save, copy bool) {
	n.Enable(EventCapture, capture)
	n.Enable(EventSave, save)
	n.Enable(EventCopy, copy)
}

// Enabled reports whether event will produce a notification.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Capture announces a finished capture, using a thumbnail of img as the
// icon when there is one.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.Enabled(EventCapture) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.send(EventCapture, detail, opts)
}

// Save announces a written file. The saved capture doubles as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(detail); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.send(EventSave, detail, opts)
}

// Copy announces a clipboard write.
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "annotated capture"
	}
	n.send(EventCopy, detail, platform.Options{})
}

// body renders the template of event around detail.
func (n *Notifier) body(event Event, detail string) string {
	tmpl := strings.TrimSpace(n.templates[event])
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	return strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
}

func (n *Notifier) send(event Event, detail string, opts platform.Options) {
	body := n.body(event, detail)
	if body == "" {
		return
	}
	if err := notifyFn(n.title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// writePreview stores img as a temporary PNG and returns a func removing it.
func writePreview(img image.Image) (string, func(), error) {
	data, err := export.Encode(img, export.PNG)
	if err != nil {
		return "", nil, err
	}
	f, err := os.CreateTemp("", "drawg-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("write preview: %w", werr)
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}, nil
}
