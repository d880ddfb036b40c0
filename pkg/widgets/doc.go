// Package widgets provides the stock widgets built on package core.
//
// Every widget is a props struct with a Show method. Containers take a
// children closure that makes further widget calls through the same UI:
//
//	widgets.Column(ui, func() {
//	    widgets.Label{Text: "name"}.Show(ui)
//	    widgets.Expanded(ui, func() {
//	        widgets.Border{Runes: paint.BorderRounded}.Show(ui, body)
//	    })
//	    if widgets.HotKey(ui, event.MustKeybind("q"), nil) {
//	        ui.Quit()
//	    }
//	})
//
// Layout widgets: [List] (with [Row] and [Column]), [Flex], [Expanded],
// [Spacer], [Align], [Center], [Margin], [Offset], [Sized], [Constrained],
// [Unconstrained], [Flow], [Float] and [Clip].
// Display widgets: [Label], [Filled] and [Border].
// Input widgets: [MouseArea], [OnClick], [KeyArea] and [HotKey].
package widgets
