// ABOUTME: Defines the Key type for decoded terminal keyboard input
// ABOUTME: Covers named keys, function keys, control chords, and literal runes

package key

import "fmt"

// Type enumerates the kinds of key events the decoder can produce.
type Type int

const (
	Rune Type = iota // Printable character
	Enter
	Tab
	Backspace
	Delete
	Insert
	Up
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Esc
	Ctrl     // Ctrl+<letter>, letter in Key.Rune
	Function // F1-F12, number in Key.Num
)

// Key represents one decoded keyboard input event.
type Key struct {
	Type Type
	Rune rune // literal character for Rune, letter for Ctrl
	Num  int  // function key number for Function
}

var typeNames = map[Type]string{
	Enter:     "enter",
	Tab:       "tab",
	Backspace: "backspace",
	Delete:    "delete",
	Insert:    "insert",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	Home:      "home",
	End:       "end",
	PageUp:    "pageup",
	PageDown:  "pagedown",
	Esc:       "esc",
}

// Name returns the lowercase key name used by the interactive layer:
// "up", "enter", "ctrl+c", "f5", or "char" for literal runes.
func (k Key) Name() string {
	switch k.Type {
	case Rune:
		return "char"
	case Ctrl:
		return fmt.Sprintf("ctrl+%c", k.Rune)
	case Function:
		return fmt.Sprintf("f%d", k.Num)
	}
	if name, ok := typeNames[k.Type]; ok {
		return name
	}
	return "unknown"
}

// String returns a human-readable representation for debug display.
func (k Key) String() string {
	if k.Type == Rune {
		return string(k.Rune)
	}
	return k.Name()
}
