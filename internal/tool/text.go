package tool

import (
	"image/color"
	"log"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
)

// Entry frame placed around a text click, in canvas units.
const (
	entryOffsetY = 10
	entryWidth   = 200
	entryHeight  = 24
)

// TextEntry is a live editable field opened by the text tool.
type TextEntry interface {
	Text() string
	// Bounds returns the field frame in canvas units.
	Bounds() geom.Rect
	Focused() bool
	Insert(r rune)
	Backspace()
	// Close removes the field from its host.
	Close()
}

// EntryStyle describes how an entry field should present its text.
type EntryStyle struct {
	Color    color.RGBA
	FontSize float64
}

// EntryHost opens entry fields on behalf of the text tool. The tool does
// not own the host.
type EntryHost interface {
	OpenEntry(frame geom.Rect, st EntryStyle) TextEntry
}

// EntryHostFunc adapts a function to EntryHost.
type EntryHostFunc func(frame geom.Rect, st EntryStyle) TextEntry

func (f EntryHostFunc) OpenEntry(frame geom.Rect, st EntryStyle) TextEntry { return f(frame, st) }

// LineEntryHost opens a LineEntry for every request.
var LineEntryHost EntryHost = EntryHostFunc(func(frame geom.Rect, st EntryStyle) TextEntry {
	return NewLineEntry(frame, st)
})

// Text places labels through an inline entry field. Labels are committed
// when the entry is finished rather than from End.
type Text struct {
	styled
	fontSize float64
	host     EntryHost
	commit   CommitFunc

	entry  TextEntry
	origin geom.Point
}

// NewText returns a text tool opening fields through host and handing
// finished labels to commit. A nil host uses LineEntryHost.
func NewText(host EntryHost, commit CommitFunc) *Text {
	if host == nil {
		host = LineEntryHost
	}
	return &Text{
		styled:   styled{style: annotation.DefaultStyle()},
		fontSize: annotation.DefaultFontSize,
		host:     host,
		commit:   commit,
	}
}

func (*Text) Kind() annotation.Kind { return annotation.KindText }

// FontSize returns the size new labels use.
func (t *Text) FontSize() float64 { return t.fontSize }

// SetFontSize changes the size for labels opened afterwards.
func (t *Text) SetFontSize(size float64) {
	if size <= 0 {
		size = annotation.DefaultFontSize
	}
	t.fontSize = size
}

// Entry returns the open field, or nil.
func (t *Text) Entry() TextEntry { return t.entry }

// Begin finishes any open field and opens a new one at p.
func (t *Text) Begin(p geom.Point, _ Modifiers) {
	t.Finish()
	t.origin = p
	frame := geom.Rect{X: p.X, Y: p.Y - entryOffsetY, W: entryWidth, H: entryHeight}
	t.entry = t.host.OpenEntry(frame, EntryStyle{Color: t.style.Color, FontSize: t.fontSize})
	if t.entry == nil {
		log.Printf("text entry could not be opened at %v", p)
	}
}

func (t *Text) Update(geom.Point, Modifiers) {}

func (t *Text) End(geom.Point, Modifiers) (annotation.Annotation, bool) { return nil, false }

// Preview draws the open field when it knows how to draw itself.
func (t *Text) Preview(s *render.Surface) {
	if r, ok := t.entry.(interface{ Render(*render.Surface) }); ok {
		r.Render(s)
	}
}

// Cancel discards the open field without committing it.
func (t *Text) Cancel() { t.Discard() }

// Finish closes the open field and commits its text. Empty text is
// dropped.
func (t *Text) Finish() {
	entry := t.entry
	if entry == nil {
		return
	}
	t.entry = nil
	text := entry.Text()
	bounds := entry.Bounds()
	entry.Close()
	if text == "" {
		return
	}
	rect := geom.Rect{X: t.origin.X, Y: t.origin.Y - entryOffsetY, W: bounds.W, H: bounds.H}
	a := annotation.NewText(text, rect, t.fontSize, t.style)
	if t.commit != nil {
		t.commit(a)
	}
}

// Discard closes the open field without committing.
func (t *Text) Discard() {
	if t.entry == nil {
		return
	}
	t.entry.Close()
	t.entry = nil
}
