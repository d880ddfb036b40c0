// Package demo is the sample app behind the run and snapshot commands.
package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/cellui/pkg/animation"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/focus"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
	"github.com/go-drift/cellui/pkg/widgets"
)

var (
	keyHelp  = event.MustKeybind("?")
	keyQuit  = event.MustKeybind("q")
	keyUp    = event.MustKeybind("up")
	keyDown  = event.MustKeybind("down")
	keyTab   = event.MustKeybind("tab")
	keyBack  = event.MustKeybind("backtab")
	keyLeft  = event.MustKeybind("left")
	keyRight = event.MustKeybind("right")
	keyEnter = event.MustKeybind("enter")

	accent   = paint.Style{}.Foreground(paint.Indexed(6)).With(paint.AttrBold)
	muted    = paint.Style{}.With(paint.AttrDim)
	selected = paint.Style{}.With(paint.AttrReverse)
	focused  = paint.Style{}.With(paint.AttrUnderline)
	hoverBg  = paint.Indexed(8)
	buttonBg = paint.RGB(48, 48, 48)
	flashBg  = paint.RGB(95, 175, 95)
)

// Items listed in the demo's sidebar.
var Items = []string{"Overview", "Layout", "Input", "Layers", "Animation"}

// Focus keys.
type (
	itemKey   int
	buttonKey struct{}
)

// App is the demo's state. Build is its frame function.
type App struct {
	Title string

	clicks   int
	selected int
	typed    string
	help     bool
	hovered  bool
	titled   bool
	focus    focus.Scope
	flash    *animation.Controller
}

// New returns the demo app.
func New(title string) *App {
	flash := animation.NewController(300 * time.Millisecond)
	flash.Curve = animation.EaseOut
	return &App{Title: title, flash: flash}
}

// Clicks returns how often the button was clicked.
func (a *App) Clicks() int { return a.clicks }

// Selected returns the index of the selected sidebar item.
func (a *App) Selected() int { return a.selected }

// Focused returns the focused sidebar item, or -1 for the button or when
// nothing is focused.
func (a *App) Focused() int {
	if k, ok := a.focus.Focused(); ok {
		if i, ok := k.(itemKey); ok {
			return int(i)
		}
	}
	return -1
}

// Build draws one frame.
func (a *App) Build(ui *core.UI) {
	if !a.titled {
		ui.SetTitle(a.Title)
		a.titled = true
	}
	a.focus.Begin()

	keys := widgets.KeyArea{}.Show(ui, func() {
		widgets.Border{Title: a.Title, Runes: paint.BorderRounded, TitleStyle: &accent}.Show(ui, func() {
			widgets.List{Axis: geom.AxisVertical, CrossAxisAlignment: geom.CrossAxisAlignmentStretch}.Show(ui, func() {
				widgets.Expanded(ui, func() {
					widgets.List{Axis: geom.AxisHorizontal, Spacing: 1, CrossAxisAlignment: geom.CrossAxisAlignmentStretch}.Show(ui, func() {
						a.sidebar(ui)
						widgets.Expanded(ui, func() { a.content(ui) })
					})
				})
				widgets.Label{Text: "? help  q quit  ↑↓ select  tab focus  enter activate", Style: muted, Ellipsis: true}.Show(ui)
			})
		})
		a.helpPopup(ui)
	}).Value

	a.handleKeys(ui, keys)
}

func (a *App) handleKeys(ui *core.UI, keys widgets.KeyResponse) {
	switch {
	case keys.Pressed(keyQuit):
		ui.Quit()
	case keys.Pressed(keyHelp):
		a.help = !a.help
	case keys.Pressed(keyUp):
		a.selected = (a.selected + len(Items) - 1) % len(Items)
	case keys.Pressed(keyDown):
		a.selected = (a.selected + 1) % len(Items)
	case keys.Pressed(keyTab):
		a.focus.Next()
	case keys.Pressed(keyBack):
		a.focus.Previous()
	case keys.Pressed(keyLeft):
		a.focus.Move(focus.Left)
	case keys.Pressed(keyRight):
		a.focus.Move(focus.Right)
	case keys.Pressed(keyEnter):
		a.activate(ui)
	}
	for _, k := range keys.Keys {
		if k.Key.Code == event.KeyRune && k.Modifiers.IsNone() && !strings.ContainsRune("?q", k.Key.Rune) {
			a.typed += string(k.Key.Rune)
		}
		if k.Key == event.Named(event.KeyBackspace) && a.typed != "" {
			a.typed = a.typed[:len(a.typed)-1]
		}
	}
	a.typed += keys.Paste
	if len(keys.Keys) > 0 || keys.Paste != "" {
		ui.RequestRepaint()
	}
}

func (a *App) activate(ui *core.UI) {
	k, ok := a.focus.Focused()
	if !ok {
		return
	}
	switch k := k.(type) {
	case itemKey:
		a.selected = int(k)
	case buttonKey:
		a.press()
	}
}

func (a *App) press() {
	a.clicks++
	a.flash.Value = 1
	a.flash.Reverse()
}

// focusable registers id under key with the rect it was last drawn at.
func (a *App) focusable(ui *core.UI, key any, id core.ID) {
	rect, _ := ui.RectOf(id)
	a.focus.Add(key, rect)
}

func (a *App) sidebar(ui *core.UI) {
	widgets.Column(ui, func() {
		for i, item := range Items {
			style := paint.Style{}
			if i == a.selected {
				style = selected
			}
			if a.focus.IsFocused(itemKey(i)) {
				style = style.With(focused.Attrs)
			}
			resp := widgets.OnClick(ui, func() {
				widgets.Label{Text: fmt.Sprintf(" %-10s", item), Style: style}.Show(ui)
			})
			a.focusable(ui, itemKey(i), resp.ID)
			if resp.Value.Clicked {
				a.selected = i
				a.focus.Focus(itemKey(i))
				ui.RequestRepaint()
			}
		}
	})
}

func (a *App) content(ui *core.UI) {
	widgets.List{Axis: geom.AxisVertical}.Show(ui, func() {
		widgets.Label{Text: Items[a.selected], Style: accent}.Show(ui)
		widgets.Text(ui, fmt.Sprintf("clicks: %d", a.clicks))

		if a.flash.Step(ui.Now()) {
			ui.RequestRepaint()
		}
		bg := paint.Color{}
		if a.hovered {
			bg = hoverBg
		}
		if a.flash.IsAnimating() {
			bg = animation.TweenColor(buttonBg, flashBg).Transform(a.flash)
		}
		label := paint.Style{}
		if a.focus.IsFocused(buttonKey{}) {
			label = focused
		}
		resp := widgets.OnClick(ui, func() {
			widgets.Filled{Background: bg}.Show(ui, func() {
				widgets.Label{Text: "[ click me ]", Style: label}.Show(ui)
			})
		})
		a.focusable(ui, buttonKey{}, resp.ID)
		a.hovered = resp.Value.Hovered
		if resp.Value.Clicked {
			a.press()
			a.focus.Focus(buttonKey{})
			ui.RequestRepaint()
		}

		width := ui.AnimateValue(&a.clicks, float64(a.clicks%11), 250*time.Millisecond)
		widgets.Text(ui, "▕"+strings.Repeat("█", int(width+0.5))+strings.Repeat(" ", 10-int(width+0.5))+"▏")

		widgets.Text(ui, "typed: "+a.typed)
	})
}

// helpPopup slides the help box in from above while it opens and keeps it
// on screen until it has slid out again.
func (a *App) helpPopup(ui *core.UI) {
	t := ui.AnimateBool(&a.help, a.help, 150*time.Millisecond)
	if !a.help && t == 0 {
		return
	}
	lift := animation.TweenInt(4, 0).Evaluate(animation.EaseOut.Apply(t))
	widgets.Float{}.Show(ui, func() {
		widgets.Center(ui, func() {
			widgets.Margin{Margin: geom.Margin{Bottom: lift}}.Show(ui, func() {
				widgets.Border{Title: "help", Runes: paint.BorderDouble}.Show(ui, func() {
					widgets.Filled{Rune: ' '}.Show(ui, func() {
						widgets.Column(ui, func() {
							widgets.Text(ui, "click the button or a sidebar item")
							widgets.Text(ui, "tab and arrows move focus")
							widgets.Text(ui, "press ? to close")
						})
					})
				})
			})
		})
	})
}
