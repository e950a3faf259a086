package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/drawg/internal/theme"
)

type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

var labelFace font.Face = basicfont.Face7x13

func labelWidth(s string) int {
	return font.MeasureString(labelFace, s).Ceil()
}

func background(th *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover
	case StatePressed:
		return th.ButtonBackgroundPress
	}
	return th.ButtonBackground
}

func outline(dst *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thick, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-thick, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// LabelButton is a text button: tools, sizes and actions.
type LabelButton struct {
	label      string
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (b *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, b.rect, &image.Uniform{background(b.theme, state)}, image.Point{}, draw.Src)
	outline(dst, b.rect, b.theme.ButtonBorder, 1)
	if state == StatePressed {
		outline(dst, b.rect, b.theme.Selection, 2)
	}
	x := b.rect.Min.X + (b.rect.Dx()-labelWidth(b.label))/2
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{b.theme.ButtonText}, Face: labelFace,
		Dot: fixed.P(x, b.rect.Min.Y+(b.rect.Dy()+10)/2)}
	d.DrawString(b.label)
}

func (b *LabelButton) Rect() image.Rectangle { return b.rect }

func (b *LabelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *LabelButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// SwatchButton picks a markup colour.
type SwatchButton struct {
	color      color.RGBA
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (b *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, b.rect, &image.Uniform{b.theme.ToolbarBackground}, image.Point{}, draw.Src)
	inner := b.rect.Inset(3)
	draw.Draw(dst, inner, &image.Uniform{b.color}, image.Point{}, draw.Src)
	outline(dst, inner, b.theme.ButtonBorder, 1)
	switch state {
	case StateHover:
		draw.Draw(dst, inner, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
	case StatePressed:
		outline(dst, b.rect, b.theme.Selection, 2)
	}
}

func (b *SwatchButton) Rect() image.Rectangle { return b.rect }

func (b *SwatchButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *SwatchButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}
