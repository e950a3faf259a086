package editor

import "unicode"

// KeyCode names the non-printing keys the editor reacts to.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
)

// KeyEvent is a key press translated from the host toolkit.
type KeyEvent struct {
	Code KeyCode
	Rune rune
	// Command is the platform shortcut modifier (Cmd on macOS, Ctrl
	// elsewhere).
	Command bool
	Shift   bool
}

// Key routes a key press and reports whether it was consumed. A focused
// text entry receives every key, so shortcuts cannot fire while typing.
func (e *Editor) Key(ev KeyEvent) bool {
	if et, ok := e.tool.(entryTool); ok {
		if entry := et.Entry(); entry != nil && entry.Focused() {
			switch {
			case ev.Code == KeyEnter:
				et.Finish()
			case ev.Code == KeyEscape:
				et.Discard()
			case ev.Code == KeyBackspace:
				entry.Backspace()
			case ev.Command:
			case ev.Rune > 0 && unicode.IsPrint(ev.Rune):
				entry.Insert(ev.Rune)
			}
			e.invalidate()
			return true
		}
	}
	if !ev.Command {
		return false
	}
	switch unicode.ToLower(ev.Rune) {
	case 'z':
		if ev.Shift {
			e.Redo()
		} else {
			e.Undo()
		}
		return true
	case 's':
		if e.onSave != nil {
			e.onSave()
		}
		return true
	}
	return false
}
