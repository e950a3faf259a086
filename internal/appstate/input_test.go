package appstate

import (
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/example/drawg/internal/editor"
)

func TestEditorKey(t *testing.T) {
	tests := []struct {
		name string
		in   key.Event
		want editor.KeyEvent
		ok   bool
	}{
		{name: "rune", in: key.Event{Rune: 'a', Direction: key.DirPress}, want: editor.KeyEvent{Rune: 'a'}, ok: true},
		{name: "repeat", in: key.Event{Rune: 'a', Direction: key.DirNone}, want: editor.KeyEvent{Rune: 'a'}, ok: true},
		{name: "release", in: key.Event{Rune: 'a', Direction: key.DirRelease}},
		{name: "enter", in: key.Event{Rune: -1, Code: key.CodeReturnEnter, Direction: key.DirPress}, want: editor.KeyEvent{Code: editor.KeyEnter}, ok: true},
		{name: "keypad enter", in: key.Event{Rune: -1, Code: key.CodeKeypadEnter, Direction: key.DirPress}, want: editor.KeyEvent{Code: editor.KeyEnter}, ok: true},
		{name: "escape", in: key.Event{Rune: -1, Code: key.CodeEscape, Direction: key.DirPress}, want: editor.KeyEvent{Code: editor.KeyEscape}, ok: true},
		{name: "backspace", in: key.Event{Rune: -1, Code: key.CodeDeleteBackspace, Direction: key.DirPress}, want: editor.KeyEvent{Code: editor.KeyBackspace}, ok: true},
		{name: "ctrl", in: key.Event{Rune: 'z', Modifiers: key.ModControl, Direction: key.DirPress}, want: editor.KeyEvent{Rune: 'z', Command: true}, ok: true},
		{name: "cmd shift", in: key.Event{Rune: 'Z', Modifiers: key.ModMeta | key.ModShift, Direction: key.DirPress}, want: editor.KeyEvent{Rune: 'Z', Command: true, Shift: true}, ok: true},
		{name: "arrow", in: key.Event{Rune: -1, Code: key.CodeLeftArrow, Direction: key.DirPress}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := editorKey(tc.in)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("editorKey = %+v, %v; want %+v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestToolModifiers(t *testing.T) {
	if !toolModifiers(key.ModShift | key.ModControl).Shift {
		t.Fatal("shift should map through")
	}
	if toolModifiers(key.ModControl).Shift {
		t.Fatal("ctrl alone is not shift")
	}
}
