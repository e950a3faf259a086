package appstate

import (
	"image"
	"image/draw"

	"github.com/example/drawg/internal/theme"
)

const (
	buttonHeight = 24
	buttonPad    = 4
	swatchSize   = 24
	groupGap     = 12
)

type toolbarItem struct {
	btn       *CacheButton
	width     int
	gapBefore bool
	selected  func() bool
	visible   func() bool
}

func (it toolbarItem) shown() bool { return it.visible == nil || it.visible() }

// toolbar lays buttons out left to right in a single row.
type toolbar struct {
	items []toolbarItem
	hover int
}

func newToolbar() toolbar { return toolbar{hover: -1} }

func (tb *toolbar) add(it toolbarItem) { tb.items = append(tb.items, it) }

func (tb *toolbar) layout() {
	x := buttonPad
	y := (toolbarHeight - buttonHeight) / 2
	for _, it := range tb.items {
		if !it.shown() {
			continue
		}
		if it.gapBefore {
			x += groupGap
		}
		it.btn.SetRect(image.Rect(x, y, x+it.width, y+buttonHeight))
		x += it.width + buttonPad
	}
}

// naturalWidth is the width needed when every item is shown.
func (tb *toolbar) naturalWidth() int {
	x := buttonPad
	for _, it := range tb.items {
		if it.gapBefore {
			x += groupGap
		}
		x += it.width + buttonPad
	}
	return x
}

// hit returns the index of the visible item under p, or -1.
func (tb *toolbar) hit(p image.Point) int {
	tb.layout()
	for i, it := range tb.items {
		if it.shown() && p.In(it.btn.Rect()) {
			return i
		}
	}
	return -1
}

func (tb *toolbar) activate(i int) {
	if i >= 0 && i < len(tb.items) {
		tb.items[i].btn.Activate()
	}
}

func (tb *toolbar) draw(dst *image.RGBA, th *theme.Theme) {
	bar := image.Rect(0, 0, dst.Bounds().Dx(), toolbarHeight)
	draw.Draw(dst, bar, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	tb.layout()
	for i, it := range tb.items {
		if !it.shown() {
			continue
		}
		state := StateDefault
		if it.selected != nil && it.selected() {
			state = StatePressed
		} else if i == tb.hover {
			state = StateHover
		}
		it.btn.Draw(dst, state)
	}
}
