package input

import "strings"

// Interest is the set of event kinds a widget wants delivered.
type Interest uint8

const (
	InterestMouseEnter Interest = 1 << iota
	InterestMouseLeave
	InterestMouseMove
	InterestKeyInput
	InterestFocusGained
	InterestFocusLost
)

const (
	// InterestNone registers nothing.
	InterestNone Interest = 0
	// InterestMouse covers hover and pointer events.
	InterestMouse = InterestMouseEnter | InterestMouseLeave | InterestMouseMove
	// InterestFocus covers window focus notifications.
	InterestFocus = InterestFocusGained | InterestFocusLost
)

// Has reports whether every flag in o is set.
func (i Interest) Has(o Interest) bool { return i&o == o }

// IsMouseAny reports whether any pointer flag is set. Only such widgets take
// part in hit-testing.
func (i Interest) IsMouseAny() bool { return i&InterestMouse != 0 }

// IsKeyInput reports whether the widget receives keyboard input.
func (i Interest) IsKeyInput() bool { return i&InterestKeyInput != 0 }

// IsFocus reports whether either focus flag is set.
func (i Interest) IsFocus() bool { return i&InterestFocus != 0 }

// IsNone reports whether no flag is set.
func (i Interest) IsNone() bool { return i == 0 }

var interestNames = [...]string{
	"mouse_enter",
	"mouse_leave",
	"mouse_move",
	"key_input",
	"focus_gained",
	"focus_lost",
}

func (i Interest) String() string {
	if i == 0 {
		return "none"
	}
	var parts []string
	for bit, name := range interestNames {
		if i&(1<<bit) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
