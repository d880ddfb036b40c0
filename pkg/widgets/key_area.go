package widgets

import (
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/input"
)

// KeyArea collects the key presses and pastes that reached it since the
// last frame. Key input goes to every keyboard registrant, newest layer
// first, until one sinks it.
type KeyArea struct {
	// Sink stops every key press here.
	Sink bool
}

// KeyResponse is a KeyArea's report for one frame.
type KeyResponse struct {
	Keys  []event.KeyPress
	Paste string
}

// Pressed reports whether any collected key press matches b.
func (r KeyResponse) Pressed(b event.Keybind) bool {
	for _, k := range r.Keys {
		if b.Matches(k) {
			return true
		}
	}
	return false
}

// Show calls the key area with children.
func (k KeyArea) Show(ui *core.UI, children func()) core.Response[KeyResponse] {
	return core.ShowChildren(ui, keyAreaType, k, children)
}

// HotKey reports whether b was pressed since the last frame.
func HotKey(ui *core.UI, b event.Keybind, children func()) bool {
	return KeyArea{}.Show(ui, children).Value.Pressed(b)
}

var keyAreaType = core.NewType("KeyArea", func() core.Updater[KeyArea, KeyResponse] { return &keyArea{} })

type keyArea struct {
	props   KeyArea
	pending KeyResponse
}

func (k *keyArea) Update(props KeyArea) KeyResponse {
	k.props = props
	resp := k.pending
	k.pending = KeyResponse{}
	return resp
}

func (k *keyArea) Interest() input.Interest { return input.InterestKeyInput }

func (k *keyArea) Event(ctx *core.EventContext, ev input.Event) input.Handled {
	switch ev := ev.(type) {
	case input.KeyInput:
		k.pending.Keys = append(k.pending.Keys, event.KeyPress{Key: ev.Key, Modifiers: ev.Modifiers})
	case input.PasteInput:
		k.pending.Paste += ev.Text
	default:
		return input.Bubble
	}
	ctx.RequestRepaint()
	if k.props.Sink {
		return input.Sink
	}
	return input.Bubble
}
