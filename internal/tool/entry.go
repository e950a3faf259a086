package tool

import (
	"image/color"
	"log"

	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
)

const entryPadding = 4

var (
	entryBackground = color.RGBA{R: 204, G: 204, B: 204, A: 204}
	entryCaret      = color.RGBA{A: 200}
)

// LineEntry is a single line text field. Its frame widens to fit the text
// but never shrinks below the size it was opened with.
type LineEntry struct {
	frame   geom.Rect
	style   EntryStyle
	text    []rune
	focused bool
	closed  bool
}

// NewLineEntry returns a focused, empty entry.
func NewLineEntry(frame geom.Rect, st EntryStyle) *LineEntry {
	return &LineEntry{frame: frame, style: st, focused: true}
}

func (e *LineEntry) Text() string { return string(e.text) }

func (e *LineEntry) Bounds() geom.Rect {
	b := e.frame
	if len(e.text) == 0 {
		return b
	}
	sz, err := render.MeasureText(string(e.text), e.style.FontSize)
	if err != nil {
		log.Printf("measure entry text: %v", err)
		return b
	}
	if w := sz.W + 2*entryPadding; w > b.W {
		b.W = w
	}
	return b
}

func (e *LineEntry) Focused() bool { return e.focused && !e.closed }

// SetFocused moves keyboard focus onto or off the entry.
func (e *LineEntry) SetFocused(v bool) { e.focused = v }

func (e *LineEntry) Insert(r rune) {
	if e.closed {
		return
	}
	e.text = append(e.text, r)
}

func (e *LineEntry) Backspace() {
	if e.closed || len(e.text) == 0 {
		return
	}
	e.text = e.text[:len(e.text)-1]
}

func (e *LineEntry) Close() { e.closed = true }

// Closed reports whether the entry was removed.
func (e *LineEntry) Closed() bool { return e.closed }

// Render draws the field background, text and caret.
func (e *LineEntry) Render(s *render.Surface) {
	if e.closed {
		return
	}
	b := e.Bounds()
	s.FillRect(b, entryBackground)
	text := string(e.text)
	if err := s.DrawText(b.Min(), text, e.style.FontSize, e.style.Color); err != nil {
		log.Printf("draw entry text: %v", err)
	}
	if !e.focused {
		return
	}
	x := b.X
	if text != "" {
		if sz, err := render.MeasureText(text, e.style.FontSize); err == nil {
			x += sz.W
		}
	}
	s.StrokeLine(geom.Pt(x+1, b.Y+2), geom.Pt(x+1, b.Y+b.H-2), 1, entryCaret, render.SharpStroke)
}
