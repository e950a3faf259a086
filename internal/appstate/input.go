package appstate

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/drawg/internal/editor"
	"github.com/example/drawg/internal/tool"
)

// commandMods are treated as the shortcut modifier: Cmd on macOS, Ctrl elsewhere.
const commandMods = key.ModControl | key.ModMeta

// editorKey translates a shiny key event. Releases are dropped.
func editorKey(e key.Event) (editor.KeyEvent, bool) {
	if e.Direction == key.DirRelease {
		return editor.KeyEvent{}, false
	}
	ev := editor.KeyEvent{
		Command: e.Modifiers&commandMods != 0,
		Shift:   e.Modifiers&key.ModShift != 0,
	}
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		ev.Code = editor.KeyEnter
	case key.CodeEscape:
		ev.Code = editor.KeyEscape
	case key.CodeDeleteBackspace:
		ev.Code = editor.KeyBackspace
	default:
		if e.Rune > 0 {
			ev.Rune = e.Rune
		}
	}
	if ev.Code == editor.KeyNone && ev.Rune == 0 {
		return editor.KeyEvent{}, false
	}
	return ev, true
}

func toolModifiers(m key.Modifiers) tool.Modifiers {
	return tool.Modifiers{Shift: m&key.ModShift != 0}
}
