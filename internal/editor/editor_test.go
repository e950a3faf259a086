package editor

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
	"github.com/example/drawg/internal/tool"
)

func newEditor(t *testing.T, opts ...Option) *Editor {
	t.Helper()
	base := image.NewRGBA(image.Rect(0, 0, 100, 80))
	e, err := New(base, geom.Size{W: 100, H: 80}, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func arrow(x float64) annotation.Annotation {
	return annotation.NewArrow(geom.Pt(0, 0), geom.Pt(x, 10), annotation.DefaultStyle())
}

func ids(anns []annotation.Annotation) []string {
	out := make([]string, len(anns))
	for i, a := range anns {
		out[i] = a.ID().String()
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewRejectsEmptyBase(t *testing.T) {
	if _, err := New(image.NewRGBA(image.Rectangle{}), geom.Size{W: 1, H: 1}); !errors.Is(err, ErrEmptyBase) {
		t.Fatalf("err = %v, want ErrEmptyBase", err)
	}
}

func TestNewDefaultsCanvasToBase(t *testing.T) {
	e, err := New(image.NewRGBA(image.Rect(0, 0, 30, 20)), geom.Size{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.CanvasSize() != (geom.Size{W: 30, H: 20}) {
		t.Fatalf("canvas = %+v", e.CanvasSize())
	}
}

func TestUndoRedoRestoresSequence(t *testing.T) {
	for n := 1; n <= 5; n++ {
		e := newEditor(t)
		for i := 0; i < n; i++ {
			e.Commit(arrow(float64(10 + i)))
		}
		want := ids(e.Annotations())
		for i := 0; i < n; i++ {
			e.Undo()
		}
		if e.CanUndo() {
			t.Fatalf("n=%d: expected empty canvas after undos", n)
		}
		for i := 0; i < n; i++ {
			e.Redo()
		}
		if got := ids(e.Annotations()); !equalIDs(got, want) {
			t.Fatalf("n=%d: sequence = %v, want %v", n, got, want)
		}
		if e.CanRedo() {
			t.Fatalf("n=%d: redo history should be empty", n)
		}
	}
}

func TestCommitClearsRedo(t *testing.T) {
	e := newEditor(t)
	e.Commit(arrow(10))
	e.Commit(arrow(20))
	e.Undo()
	e.Undo()
	e.Commit(arrow(30))
	if e.CanRedo() {
		t.Fatal("commit should clear redo")
	}
	before := ids(e.Annotations())
	e.Redo()
	if got := ids(e.Annotations()); !equalIDs(got, before) {
		t.Fatalf("redo after commit changed canvas: %v", got)
	}
}

func TestUndoRedoOnEmptyAreNoops(t *testing.T) {
	changes := 0
	e := newEditor(t, WithOnChange(func() { changes++ }))
	e.Undo()
	e.Redo()
	if changes != 0 {
		t.Fatalf("expected no change notifications, got %d", changes)
	}
}

func TestObservers(t *testing.T) {
	var changes, invalidations int
	e := newEditor(t,
		WithOnChange(func() { changes++ }),
		WithOnInvalidate(func() { invalidations++ }),
	)
	e.Commit(arrow(10))
	e.Undo()
	e.Redo()
	if changes != 3 {
		t.Fatalf("changes = %d, want 3", changes)
	}
	if invalidations < 3 {
		t.Fatalf("invalidations = %d, want at least 3", invalidations)
	}
	if !e.Dirty() {
		t.Fatal("expected dirty canvas")
	}
	e.Render(render.NewSurface(image.NewRGBA(image.Rect(0, 0, 100, 80))))
	if e.Dirty() {
		t.Fatal("render should clear dirty flag")
	}
}

func TestPointerRoutingCommits(t *testing.T) {
	e := newEditor(t, WithTool(tool.NewRectangle()))
	e.PointerDown(geom.Pt(10, 10), tool.Modifiers{})
	e.PointerDrag(geom.Pt(30, 20), tool.Modifiers{})
	e.PointerUp(geom.Pt(50, 30), tool.Modifiers{Shift: true})
	anns := e.Annotations()
	if len(anns) != 1 {
		t.Fatalf("expected one annotation, got %d", len(anns))
	}
	if got := anns[0].(*annotation.Rectangle).Rect(); got != (geom.Rect{X: 10, Y: 10, W: 20, H: 20}) {
		t.Fatalf("rect = %+v", got)
	}
	e.PointerDown(geom.Pt(10, 10), tool.Modifiers{})
	e.PointerUp(geom.Pt(10, 10), tool.Modifiers{})
	if len(e.Annotations()) != 1 {
		t.Fatal("degenerate gesture should not commit")
	}
}

func TestPointerWithoutTool(t *testing.T) {
	e := newEditor(t)
	e.PointerDown(geom.Pt(1, 1), tool.Modifiers{})
	e.PointerDrag(geom.Pt(2, 2), tool.Modifiers{})
	e.PointerUp(geom.Pt(3, 3), tool.Modifiers{})
	if len(e.Annotations()) != 0 {
		t.Fatal("expected nothing committed")
	}
}

func TestSetToolFinishesTextEntry(t *testing.T) {
	e := newEditor(t)
	text := tool.NewText(nil, e.Commit)
	e.SetTool(text)
	e.PointerDown(geom.Pt(20, 40), tool.Modifiers{})
	e.PointerUp(geom.Pt(20, 40), tool.Modifiers{})
	for _, r := range "Hello" {
		e.Key(KeyEvent{Rune: r})
	}
	e.SetTool(tool.NewPen())
	anns := e.Annotations()
	if len(anns) != 1 {
		t.Fatalf("expected text to commit on tool switch, got %d", len(anns))
	}
	if got := anns[0].(*annotation.Text).Text(); got != "Hello" {
		t.Fatalf("text = %q", got)
	}
}

func TestSetToolCancelsGesture(t *testing.T) {
	e := newEditor(t)
	pen := tool.NewPen()
	e.SetTool(pen)
	e.PointerDown(geom.Pt(1, 1), tool.Modifiers{})
	e.PointerDrag(geom.Pt(20, 20), tool.Modifiers{})
	e.SetTool(tool.NewArrow())
	if _, ok := pen.End(geom.Pt(30, 30), tool.Modifiers{}); ok {
		t.Fatal("previous tool gesture should be abandoned")
	}
}

func TestCancelGesture(t *testing.T) {
	invalidated := 0
	e := newEditor(t, WithOnInvalidate(func() { invalidated++ }))
	rect := tool.NewRectangle()
	e.SetTool(rect)
	e.PointerDown(geom.Pt(10, 10), tool.Modifiers{})
	e.PointerDrag(geom.Pt(40, 40), tool.Modifiers{})
	before := invalidated
	e.CancelGesture()
	if invalidated != before+1 {
		t.Fatal("cancel should request a repaint")
	}
	e.PointerUp(geom.Pt(40, 40), tool.Modifiers{})
	if len(e.Annotations()) != 0 {
		t.Fatal("cancelled gesture should not commit")
	}
}

func TestCloseDiscardsTextEntry(t *testing.T) {
	e := newEditor(t)
	text := tool.NewText(nil, e.Commit)
	e.SetTool(text)
	e.PointerDown(geom.Pt(20, 40), tool.Modifiers{})
	e.Key(KeyEvent{Rune: 'x'})
	e.Close()
	if len(e.Annotations()) != 0 {
		t.Fatal("close should not commit text")
	}
	if text.Entry() != nil {
		t.Fatal("close should drop the entry")
	}
}

func TestFinishEntryCommitsOnFocusLoss(t *testing.T) {
	e := newEditor(t)
	text := tool.NewText(nil, e.Commit)
	e.SetTool(text)
	e.FinishEntry()
	if len(e.Annotations()) != 0 {
		t.Fatal("nothing open, nothing to commit")
	}
	e.PointerDown(geom.Pt(20, 40), tool.Modifiers{})
	e.Key(KeyEvent{Rune: 'A'})
	e.FinishEntry()
	if len(e.Annotations()) != 1 || text.Entry() != nil {
		t.Fatalf("entry should commit and close, committed=%d", len(e.Annotations()))
	}
	e.SetTool(tool.NewPen())
	e.FinishEntry()
}

func TestRenderDrawsBaseAndAnnotations(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 40, 40))
	blue := color.RGBA{B: 255, A: 255}
	for i := 0; i < len(base.Pix); i += 4 {
		base.Pix[i+2] = 255
		base.Pix[i+3] = 255
	}
	e, err := New(base, geom.Size{W: 20, H: 20})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.Commit(annotation.NewRectangle(geom.Rect{X: 5, Y: 5, W: 10, H: 10}, annotation.DefaultStyle()))

	out := image.NewRGBA(image.Rect(0, 0, 20, 20))
	e.Render(render.NewSurface(out))
	if got := out.RGBAAt(1, 1); got.B < 250 || got.A != 255 || got.R != 0 {
		t.Fatalf("base pixel = %+v, want about %+v", got, blue)
	}
	if got := out.RGBAAt(5, 10); got.R == 0 {
		t.Fatalf("expected rectangle edge, got %+v", got)
	}
}

func TestRenderOrderAndPreviewOnTop(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for i := range base.Pix {
		base.Pix[i] = 255
	}
	e, err := New(base, geom.Size{W: 50, H: 50})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	green := color.RGBA{G: 255, A: 255}
	e.Commit(annotation.NewArrow(geom.Pt(5, 25), geom.Pt(45, 25), annotation.Style{Color: red, StrokeWidth: 3}))
	e.Commit(annotation.NewArrow(geom.Pt(25, 5), geom.Pt(25, 45), annotation.Style{Color: blue, StrokeWidth: 3}))

	pen := tool.NewPen()
	pen.SetStyle(annotation.Style{Color: green, StrokeWidth: 3})
	e.SetTool(pen)
	e.PointerDown(geom.Pt(15, 15), tool.Modifiers{})
	e.PointerDrag(geom.Pt(35, 35), tool.Modifiers{})

	// The surface is twice the canvas, so canvas (25,25) lands on (50,50).
	out := image.NewRGBA(image.Rect(0, 0, 100, 100))
	crossing := func() color.RGBA {
		e.Render(render.NewSurface(out))
		return out.RGBAAt(50, 50)
	}
	tests := []struct {
		name string
		step func()
		want color.RGBA
	}{
		{"preview over committed", func() {}, green},
		{"later commit on top", e.CancelGesture, blue},
		{"committed pen on top", func() {
			e.PointerDown(geom.Pt(15, 15), tool.Modifiers{})
			e.PointerDrag(geom.Pt(35, 35), tool.Modifiers{})
			e.PointerUp(geom.Pt(35, 35), tool.Modifiers{})
		}, green},
		{"undo uncovers blue", e.Undo, blue},
		{"undo again uncovers red", e.Undo, red},
		{"redo restores blue", e.Redo, blue},
	}
	for _, tt := range tests {
		tt.step()
		if got := crossing(); got != tt.want {
			t.Fatalf("%s: crossing pixel = %+v, want %+v", tt.name, got, tt.want)
		}
	}
	if got := out.RGBAAt(90, 10); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("base should show away from the strokes, got %+v", got)
	}
}
