package editor

import (
	"testing"

	"github.com/example/drawg/internal/annotation"
	"github.com/example/drawg/internal/geom"
	"github.com/example/drawg/internal/tool"
)

func TestShortcuts(t *testing.T) {
	saves := 0
	e := newEditor(t, WithOnSave(func() { saves++ }))
	e.Commit(arrow(10))
	e.Commit(arrow(20))

	if !e.Key(KeyEvent{Rune: 'z', Command: true}) {
		t.Fatal("undo shortcut not consumed")
	}
	if len(e.Annotations()) != 1 {
		t.Fatalf("undo left %d annotations", len(e.Annotations()))
	}
	if !e.Key(KeyEvent{Rune: 'Z', Command: true, Shift: true}) {
		t.Fatal("redo shortcut not consumed")
	}
	if len(e.Annotations()) != 2 {
		t.Fatalf("redo left %d annotations", len(e.Annotations()))
	}
	if !e.Key(KeyEvent{Rune: 's', Command: true}) || saves != 1 {
		t.Fatalf("save shortcut: saves = %d", saves)
	}
	if e.Key(KeyEvent{Rune: 'z'}) {
		t.Fatal("plain z should not be consumed")
	}
	if e.Key(KeyEvent{Rune: 'q', Command: true}) {
		t.Fatal("unknown shortcut should not be consumed")
	}
}

func TestFocusedEntryTakesPrecedence(t *testing.T) {
	saves := 0
	e := newEditor(t, WithOnSave(func() { saves++ }))
	e.Commit(arrow(10))
	text := tool.NewText(nil, e.Commit)
	e.SetTool(text)
	e.PointerDown(geom.Pt(10, 30), tool.Modifiers{})

	e.Key(KeyEvent{Rune: 'z', Command: true})
	e.Key(KeyEvent{Rune: 's', Command: true})
	if len(e.Annotations()) != 1 || saves != 0 {
		t.Fatalf("shortcuts fired while typing: annotations=%d saves=%d", len(e.Annotations()), saves)
	}

	for _, r := range "Hix" {
		e.Key(KeyEvent{Rune: r})
	}
	e.Key(KeyEvent{Code: KeyBackspace})
	if got := text.Entry().Text(); got != "Hi" {
		t.Fatalf("entry text = %q", got)
	}
	e.Key(KeyEvent{Code: KeyEnter})
	anns := e.Annotations()
	if len(anns) != 2 {
		t.Fatalf("expected committed text, got %d annotations", len(anns))
	}
	if got := anns[1].(*annotation.Text).Text(); got != "Hi" {
		t.Fatalf("text = %q", got)
	}

	// With the entry gone shortcuts work again.
	e.Key(KeyEvent{Rune: 'z', Command: true})
	if len(e.Annotations()) != 1 {
		t.Fatal("undo should work after the entry closes")
	}
}

func TestEscapeDiscardsEntry(t *testing.T) {
	e := newEditor(t)
	text := tool.NewText(nil, e.Commit)
	e.SetTool(text)
	e.PointerDown(geom.Pt(10, 30), tool.Modifiers{})
	e.Key(KeyEvent{Rune: 'a'})
	if !e.Key(KeyEvent{Code: KeyEscape}) {
		t.Fatal("escape not consumed")
	}
	if len(e.Annotations()) != 0 || text.Entry() != nil {
		t.Fatal("escape should discard the entry")
	}
}
