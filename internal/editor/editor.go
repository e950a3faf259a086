// Package editor implements the annotation canvas: a base capture, the
// committed annotations drawn over it, an undo history and the active tool.
//
// An Editor is owned by a single event loop and is not safe for concurrent
// use. Hosts feed it pointer and key events in canvas coordinates and
// register callbacks to learn when it changed, wants saving or needs a
// repaint.
package editor

import (
	"errors"
	"image"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/render"
	"github.com/example/drawg/internal/tool"
)

// ErrEmptyBase is returned when an editor is opened without a usable image.
var ErrEmptyBase = errors.New("editor: base image is empty")

// Option configures an Editor.
type Option func(*Editor)

// WithOnChange registers fn to run after every commit, undo or redo.
func WithOnChange(fn func()) Option { return func(e *Editor) { e.onChange = fn } }

// WithOnSave registers fn to run when the save shortcut is pressed.
func WithOnSave(fn func()) Option { return func(e *Editor) { e.onSave = fn } }

// WithOnInvalidate registers fn to run whenever the canvas needs a repaint.
func WithOnInvalidate(fn func()) Option { return func(e *Editor) { e.onInvalidate = fn } }

// WithTool selects the initial tool.
func WithTool(t tool.Tool) Option { return func(e *Editor) { e.tool = t } }

// Editor holds the state of one annotation session.
type Editor struct {
	base   *image.RGBA
	canvas geom.Size

	committed []annotation.Annotation
	redo      []annotation.Annotation
	tool      tool.Tool
	dirty     bool

	onChange     func()
	onSave       func()
	onInvalidate func()
}

// entryTool is a tool that edits text through an entry field.
type entryTool interface {
	Entry() tool.TextEntry
	Finish()
	Discard()
}

// New opens an editor over base displayed at canvas size. A zero canvas
// uses the base dimensions.
func New(base image.Image, canvas geom.Size, opts ...Option) (*Editor, error) {
	if base == nil || base.Bounds().Empty() {
		return nil, ErrEmptyBase
	}
	rgba := render.ToRGBA(base)
	if canvas.Empty() {
		canvas = geom.SizeOf(rgba.Bounds())
	}
	e := &Editor{base: rgba, canvas: canvas}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Base returns the capture being annotated. It must not be modified.
func (e *Editor) Base() *image.RGBA { return e.base }

// CanvasSize returns the size of the coordinate space annotations live in.
func (e *Editor) CanvasSize() geom.Size { return e.canvas }

// Tool returns the active tool, or nil.
func (e *Editor) Tool() tool.Tool { return e.tool }

// Annotations returns the committed annotations in commit order.
func (e *Editor) Annotations() []annotation.Annotation {
	out := make([]annotation.Annotation, len(e.committed))
	copy(out, e.committed)
	return out
}

// Dirty reports whether the canvas changed since the last Render.
func (e *Editor) Dirty() bool { return e.dirty }

// SetTool makes t the active tool. An open text entry on the previous tool
// is finished first and any gesture in progress is abandoned.
func (e *Editor) SetTool(t tool.Tool) {
	if prev := e.tool; prev != nil {
		if et, ok := prev.(entryTool); ok {
			et.Finish()
		}
		prev.Cancel()
	}
	e.tool = t
	e.invalidate()
}

// Commit appends a to the canvas and clears the redo history.
func (e *Editor) Commit(a annotation.Annotation) {
	if a == nil {
		return
	}
	e.committed = append(e.committed, a)
	e.redo = nil
	e.changed()
}

// CanUndo reports whether Undo would do anything.
func (e *Editor) CanUndo() bool { return len(e.committed) > 0 }

// CanRedo reports whether Redo would do anything.
func (e *Editor) CanRedo() bool { return len(e.redo) > 0 }

// Undo moves the most recent annotation onto the redo history.
func (e *Editor) Undo() {
	n := len(e.committed)
	if n == 0 {
		return
	}
	a := e.committed[n-1]
	e.committed[n-1] = nil
	e.committed = e.committed[:n-1]
	e.redo = append(e.redo, a)
	e.changed()
}

// Redo restores the most recently undone annotation to the end of the
// canvas.
func (e *Editor) Redo() {
	n := len(e.redo)
	if n == 0 {
		return
	}
	a := e.redo[n-1]
	e.redo[n-1] = nil
	e.redo = e.redo[:n-1]
	e.committed = append(e.committed, a)
	e.changed()
}

// Render draws the base scaled to the surface, every committed annotation
// in order and the active tool preview.
func (e *Editor) Render(s *render.Surface) {
	b := s.Bounds()
	s.DrawImage(e.base, b)
	cs := s.Scaled(b.W/e.canvas.W, b.H/e.canvas.H)
	for _, a := range e.committed {
		a.Render(cs)
	}
	if e.tool != nil {
		e.tool.Preview(cs)
	}
	e.dirty = false
}

// PointerDown starts a gesture at p.
func (e *Editor) PointerDown(p geom.Point, mods tool.Modifiers) {
	if e.tool == nil {
		return
	}
	e.tool.Begin(p, mods)
	e.invalidate()
}

// PointerDrag continues the gesture.
func (e *Editor) PointerDrag(p geom.Point, mods tool.Modifiers) {
	if e.tool == nil {
		return
	}
	e.tool.Update(p, mods)
	e.invalidate()
}

// PointerUp ends the gesture and commits its result.
func (e *Editor) PointerUp(p geom.Point, mods tool.Modifiers) {
	if e.tool == nil {
		return
	}
	if a, ok := e.tool.End(p, mods); ok {
		e.Commit(a)
		return
	}
	e.invalidate()
}

// CancelGesture abandons the gesture in progress without committing it.
func (e *Editor) CancelGesture() {
	if e.tool == nil {
		return
	}
	e.tool.Cancel()
	e.invalidate()
}

// FinishEntry commits an open text entry, as when its field loses focus.
func (e *Editor) FinishEntry() {
	et, ok := e.tool.(entryTool)
	if !ok || et.Entry() == nil {
		return
	}
	et.Finish()
	e.invalidate()
}

// Close abandons the active gesture. An open text entry is discarded
// without committing.
func (e *Editor) Close() {
	if e.tool == nil {
		return
	}
	if et, ok := e.tool.(entryTool); ok {
		et.Discard()
	}
	e.tool.Cancel()
}

func (e *Editor) changed() {
	e.invalidate()
	if e.onChange != nil {
		e.onChange()
	}
}

func (e *Editor) invalidate() {
	e.dirty = true
	if e.onInvalidate != nil {
		e.onInvalidate()
	}
}
