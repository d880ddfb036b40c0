package event

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// KeyCode names a non-character key. KeyRune means the key is a character.
type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyTab
	KeyBacktab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
}

func init() {
	for i := KeyF1; i <= KeyF12; i++ {
		keyNames[i] = "f" + strconv.Itoa(int(i-KeyF1)+1)
	}
}

// Key is a single key press without modifiers.
type Key struct {
	Code KeyCode
	Rune rune
}

// Char returns the key for a character.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Named returns the key for a non-character code.
func Named(code KeyCode) Key {
	return Key{Code: code}
}

func (k Key) String() string {
	if k.Code == KeyRune {
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	}
	if name, ok := keyNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("KeyCode(%d)", int(k.Code))
}

// Keybind is a key plus the exact modifiers that must be held.
type Keybind struct {
	Key       Key
	Modifiers Modifiers
}

// Matches reports whether a key press triggers the binding.
func (b Keybind) Matches(p KeyPress) bool {
	return b.Key == p.Key && b.Modifiers == p.Modifiers
}

func (b Keybind) String() string {
	return KeyPress(b).String()
}

// ParseKeybind parses bindings such as "ctrl+c", "shift+tab", "q" or "f5".
func ParseKeybind(s string) (Keybind, error) {
	var b Keybind
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return b, fmt.Errorf("event: empty keybind %q", s)
	}
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "control":
			b.Modifiers |= ModCtrl
		case "alt", "meta":
			b.Modifiers |= ModAlt
		case "shift":
			b.Modifiers |= ModShift
		default:
			return b, fmt.Errorf("event: unknown modifier %q in %q", mod, s)
		}
	}
	name := parts[len(parts)-1]
	if name == "space" {
		b.Key = Char(' ')
		return b, nil
	}
	for code, n := range keyNames {
		if n == name {
			b.Key = Named(code)
			return b, nil
		}
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		b.Key = Char(r)
		return b, nil
	}
	return b, fmt.Errorf("event: unknown key %q in %q", name, s)
}

// MustKeybind is ParseKeybind for literals; it panics on error.
func MustKeybind(s string) Keybind {
	b, err := ParseKeybind(s)
	if err != nil {
		panic(err)
	}
	return b
}
