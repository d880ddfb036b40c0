// Package core is the immediate-mode engine: the reconciler, the layout pass
// and the input router behind a single UI handle.
//
// An app is a build function that runs once per frame and calls widgets in
// order. The engine matches each call to the node created by the call at
// the same position last frame, so widget state survives without keys:
//
//	e := core.New(geom.RectFromLTWH(0, 0, 80, 24))
//	e.Frame(func(ui *core.UI) {
//	    widgets.Column(ui, func() {
//	        widgets.Text(ui, "hello")
//	    })
//	})
//	e.Paint(surface)
//
// # Widgets
//
// A widget kind is a [Type] created once with [NewType]. Its state
// implements [Updater], which takes the props of the current call and
// returns the widget's response. Optional interfaces add behavior:
// [Layouter], [Painter], [EventHandler], [Interested], [Flexible],
// [Flowing] and [Describer]. [Show] and [ShowChildren] open a widget, run
// its children and close it.
//
// # Frames
//
// [Engine.Frame] builds, removes nodes that were not called this frame,
// lays the tree out against the client rect and resolves absolute rects.
// [Engine.Handle] routes an input event against the last layout and may
// request another frame; [Engine.NeedsRepaint] and [Engine.Deadline] tell a
// host when to run one.
//
// # Snapshots
//
// [Engine.Snapshot] captures the tree, rects and router layers in a form
// the debug package serializes.
package core
