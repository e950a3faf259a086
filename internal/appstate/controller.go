package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/config"
	"github.com/example/drawg/internal/editor"
	"github.com/example/drawg/internal/render"
	"github.com/example/drawg/internal/session"
	"github.com/example/drawg/internal/theme"
	"github.com/example/drawg/internal/tool"
)

const messageDuration = 2 * time.Second

var (
	palette = []color.RGBA{
		annotation.DefaultColor,
		{255, 149, 0, 255},
		{255, 204, 0, 255},
		{52, 199, 89, 255},
		{0, 122, 255, 255},
		{175, 82, 222, 255},
		{0, 0, 0, 255},
		{255, 255, 255, 255},
	}
	widths    = []float64{1, 2, 3, 5, 8, 12, 20}
	textSizes = []float64{12, 16, 20, 24, 32}
)

// controller owns one editor session and everything the window shows
// around it. It runs on the window's event goroutine only.
type controller struct {
	ed      *editor.Editor
	session *session.Session
	theme   *theme.Theme
	view    view
	bar     toolbar

	palette  []color.RGBA
	style    annotation.Style
	fontSize float64
	pen      *tool.Pen
	rect     *tool.Rectangle
	arrow    *tool.Arrow
	text     *tool.Text

	canvasBuf *image.RGBA
	dragging  bool
	status    string

	message      string
	messageUntil time.Time

	now     func() time.Time
	after   func(time.Duration, func())
	repaint func()
	quit    func()
}

func newController(th *theme.Theme, tools config.Tools, sess *session.Session) *controller {
	if th == nil {
		th = theme.Default()
	}
	c := &controller{
		session:  sess,
		theme:    th,
		palette:  withColor(palette, tools.Color),
		style:    tools.Style(),
		fontSize: tools.FontSize,
		pen:      tool.NewPen(),
		rect:     tool.NewRectangle(),
		arrow:    tool.NewArrow(),
		now:      time.Now,
		after:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
		repaint:  func() {},
		quit:     func() {},
	}
	if c.style.StrokeWidth <= 0 {
		c.style.StrokeWidth = annotation.DefaultStrokeWidth
	}
	if c.fontSize <= 0 {
		c.fontSize = annotation.DefaultFontSize
	}
	c.buildToolbar()
	return c
}

// withColor returns colors with col prepended when it is not already present.
func withColor(colors []color.RGBA, col color.RGBA) []color.RGBA {
	if col.A == 0 {
		return colors
	}
	for _, c := range colors {
		if c == col {
			return colors
		}
	}
	return append([]color.RGBA{col}, colors...)
}

func (c *controller) tools() []tool.Tool {
	out := []tool.Tool{c.pen, c.rect, c.arrow}
	if c.text != nil {
		out = append(out, c.text)
	}
	return out
}

func (c *controller) buildToolbar() {
	c.bar = newToolbar()
	label := func(s string, gap bool, fn func(), selected, visible func() bool) {
		c.bar.add(toolbarItem{
			btn:       &CacheButton{Button: &LabelButton{label: s, theme: c.theme, onActivate: fn}},
			width:     labelWidth(s) + 16,
			gapBefore: gap,
			selected:  selected,
			visible:   visible,
		})
	}
	isTool := func(kind annotation.Kind) func() bool {
		return func() bool { return c.ed != nil && c.ed.Tool() != nil && c.ed.Tool().Kind() == kind }
	}

	label("Pen", false, func() { c.selectTool(c.pen) }, isTool(annotation.KindPen), nil)
	label("Rect", false, func() { c.selectTool(c.rect) }, isTool(annotation.KindRectangle), nil)
	label("Arrow", false, func() { c.selectTool(c.arrow) }, isTool(annotation.KindArrow), nil)
	label("Text", false, func() {
		if c.text != nil {
			c.selectTool(c.text)
		}
	}, isTool(annotation.KindText), nil)

	for i, col := range c.palette {
		col := col
		c.bar.add(toolbarItem{
			btn: &CacheButton{Button: &SwatchButton{color: col, theme: c.theme, onActivate: func() {
				c.setColor(col)
			}}},
			width:     swatchSize,
			gapBefore: i == 0,
			selected:  func() bool { return c.style.Color == col },
		})
	}

	textActive := isTool(annotation.KindText)
	notText := func() bool { return !textActive() }
	for i, w := range widths {
		w := w
		label(strconv.FormatFloat(w, 'g', -1, 64), i == 0, func() { c.setWidth(w) },
			func() bool { return c.style.StrokeWidth == w }, notText)
	}
	for i, s := range textSizes {
		s := s
		label(strconv.FormatFloat(s, 'g', -1, 64)+"pt", i == 0, func() { c.setFontSize(s) },
			func() bool { return c.fontSize == s }, textActive)
	}

	label("Undo", true, func() { c.withEditor((*editor.Editor).Undo) }, nil, nil)
	label("Redo", false, func() { c.withEditor((*editor.Editor).Redo) }, nil, nil)
	label("Copy", true, c.copy, nil, nil)
	label("Save", false, c.save, nil, nil)
}

// plan sizes the window for an imgW x imgH capture.
func (c *controller) plan(imgW, imgH, maxW, maxH int) image.Point {
	if maxW <= 0 {
		maxW = defaultMaxCanvasW
	}
	if maxH <= 0 {
		maxH = defaultMaxCanvasH
	}
	c.view = newView(imgW, imgH, maxW, maxH, c.bar.naturalWidth())
	return c.view.window
}

// open starts an editor over img sized to fit the current window.
func (c *controller) open(img image.Image) error {
	b := img.Bounds()
	win := c.view.window
	if win == (image.Point{}) {
		win = c.plan(b.Dx(), b.Dy(), 0, 0)
	}
	c.view = newView(b.Dx(), b.Dy(), win.X-2*margin, win.Y-toolbarHeight-statusHeight-2*margin, c.bar.naturalWidth())
	c.view.window = win

	ed, err := editor.New(img, c.view.canvas,
		editor.WithOnSave(c.save),
		editor.WithOnInvalidate(c.invalidate),
		editor.WithOnChange(c.changed),
	)
	if err != nil {
		return err
	}
	c.ed = ed
	c.text = tool.NewText(tool.LineEntryHost, ed.Commit)
	c.applyStyle()
	c.text.SetFontSize(c.fontSize)
	ed.SetTool(c.pen)
	c.canvasBuf = nil
	c.status = ""
	log.Printf("editing %dx%d capture on a %.0fx%.0f canvas", b.Dx(), b.Dy(), c.view.canvas.W, c.view.canvas.H)
	c.repaint()
	return nil
}

func (c *controller) withEditor(fn func(*editor.Editor)) {
	if c.ed != nil {
		fn(c.ed)
	}
}

func (c *controller) selectTool(t tool.Tool) {
	if c.ed == nil || t == nil {
		return
	}
	c.dragging = false
	c.ed.SetTool(t)
	log.Printf("tool %s", t.Kind())
}

func (c *controller) applyStyle() {
	for _, t := range c.tools() {
		t.SetStyle(c.style)
	}
}

func (c *controller) setColor(col color.RGBA) {
	c.style.Color = col
	c.applyStyle()
	c.repaint()
}

func (c *controller) setWidth(w float64) {
	c.style.StrokeWidth = w
	c.applyStyle()
	c.repaint()
}

func (c *controller) setFontSize(s float64) {
	c.fontSize = s
	if c.text != nil {
		c.text.SetFontSize(s)
	}
	c.repaint()
}

func (c *controller) invalidate() { c.repaint() }

func (c *controller) changed() {
	if c.ed != nil {
		log.Printf("%d annotations", len(c.ed.Annotations()))
	}
}

func (c *controller) save() {
	if c.ed == nil {
		return
	}
	if c.session == nil {
		c.setMessage("saving is not configured")
		return
	}
	// An entry still being typed is part of what the user sees.
	c.ed.FinishEntry()
	path, err := c.session.SaveAndCopy(c.ed)
	if err != nil {
		c.setMessage("save failed")
		return
	}
	c.setMessage(fmt.Sprintf("saved %s", path))
}

func (c *controller) copy() {
	if c.ed == nil || c.session == nil {
		return
	}
	c.ed.FinishEntry()
	if err := c.session.Copy(c.ed); err != nil {
		c.setMessage("copy failed")
		return
	}
	c.setMessage("copied to clipboard")
}

func (c *controller) setMessage(msg string) {
	log.Print(msg)
	c.message = msg
	c.messageUntil = c.now().Add(messageDuration)
	c.after(messageDuration, c.repaint)
	c.repaint()
}

func (c *controller) handleMouse(e mouse.Event) {
	if c.ed == nil {
		return
	}
	mods := toolModifiers(e.Modifiers)
	switch {
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress:
		if c.view.inToolbar(e.X, e.Y) {
			c.ed.FinishEntry()
			c.bar.activate(c.bar.hit(image.Pt(int(e.X), int(e.Y))))
			c.repaint()
			return
		}
		if !c.view.inCanvas(e.X, e.Y) {
			c.ed.FinishEntry()
			return
		}
		c.dragging = true
		c.ed.PointerDown(c.view.toCanvas(e.X, e.Y), mods)
	case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
		if !c.dragging {
			return
		}
		c.dragging = false
		c.ed.PointerUp(c.view.toCanvas(e.X, e.Y), mods)
	case e.Direction == mouse.DirNone:
		if c.dragging {
			c.ed.PointerDrag(c.view.toCanvas(e.X, e.Y), mods)
			return
		}
		hover := -1
		if c.view.inToolbar(e.X, e.Y) {
			hover = c.bar.hit(image.Pt(int(e.X), int(e.Y)))
		}
		if hover != c.bar.hover {
			c.bar.hover = hover
			c.repaint()
		}
	}
}

func (c *controller) handleKey(e key.Event) {
	ev, ok := editorKey(e)
	if !ok {
		return
	}
	if c.ed != nil && c.ed.Key(ev) {
		return
	}
	if ev.Command {
		switch ev.Rune {
		case 'c', 'C':
			c.copy()
		case 'q', 'Q', 'w', 'W':
			c.quit()
		}
		return
	}
	if ev.Code == editor.KeyEscape {
		if c.dragging && c.ed != nil {
			c.dragging = false
			c.ed.CancelGesture()
			return
		}
		c.quit()
		return
	}
	if c.ed == nil {
		return
	}
	switch ev.Rune {
	case 'p', 'P':
		c.selectTool(c.pen)
	case 'r', 'R':
		c.selectTool(c.rect)
	case 'a', 'A':
		c.selectTool(c.arrow)
	case 't', 'T':
		if c.text != nil {
			c.selectTool(c.text)
		}
	case '[':
		c.stepWidth(-1)
	case ']':
		c.stepWidth(1)
	default:
		if ev.Rune >= '1' && ev.Rune <= '9' {
			if idx := int(ev.Rune - '1'); idx < len(c.palette) {
				c.setColor(c.palette[idx])
			}
		}
	}
}

func (c *controller) stepWidth(dir int) {
	idx := 0
	for i, w := range widths {
		if w <= c.style.StrokeWidth {
			idx = i
		}
	}
	idx += dir
	if idx < 0 || idx >= len(widths) {
		return
	}
	c.setWidth(widths[idx])
}

// focusLost finishes an open text entry and abandons any drag.
func (c *controller) focusLost() {
	if c.ed == nil {
		return
	}
	c.ed.FinishEntry()
	if c.dragging {
		c.dragging = false
		c.ed.CancelGesture()
	}
}

func (c *controller) resize(sz image.Point) {
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}
	c.view.window = sz
}

func (c *controller) close() {
	if c.ed != nil {
		c.ed.Close()
	}
}

// draw paints the whole window into dst.
func (c *controller) draw(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{c.theme.Background}, image.Point{}, draw.Src)
	if c.ed != nil {
		cr := c.view.canvasRect()
		if c.canvasBuf == nil || c.canvasBuf.Bounds().Size() != cr.Size() {
			c.canvasBuf = image.NewRGBA(image.Rectangle{Max: cr.Size()})
			c.renderCanvas()
		} else if c.ed.Dirty() {
			c.renderCanvas()
		}
		draw.Draw(dst, cr, c.canvasBuf, image.Point{}, draw.Src)
		outline(dst, cr.Inset(-1), c.theme.ButtonBorder, 1)
	}
	c.bar.draw(dst, c.theme)
	c.drawStatus(dst)
}

func (c *controller) renderCanvas() {
	draw.Draw(c.canvasBuf, c.canvasBuf.Bounds(), image.Transparent, image.Point{}, draw.Src)
	c.ed.Render(render.NewSurface(c.canvasBuf))
}

func (c *controller) drawStatus(dst *image.RGBA) {
	r := c.view.statusRect()
	draw.Draw(dst, r, &image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)
	text := c.statusText()
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{c.theme.Foreground}, Face: labelFace,
		Dot: fixed.P(r.Min.X+8, r.Min.Y+(r.Dy()+10)/2)}
	d.DrawString(text)
}

func (c *controller) statusText() string {
	if c.message != "" && c.now().Before(c.messageUntil) {
		return c.message
	}
	if c.status != "" {
		return c.status
	}
	if c.ed == nil {
		return ""
	}
	return fmt.Sprintf("%d annotations   Ctrl+S save   Ctrl+Z undo   Ctrl+Shift+Z redo   Esc close", len(c.ed.Annotations()))
}
