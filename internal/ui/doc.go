// Package ui renders pullview with Bubble Tea.
//
// The content sits in a bubbles viewport below a one-row header. Scrolling
// past the top turns into overscroll: the surface opens rows above the
// content, and every layout pass reports the frame top (fixed) and the
// content top (moving) to a position.Stream the refresh controller listens
// on. A terminal has no release event, so the pull counts as released after
// a short pause in input and a harmonica spring eases it back.
//
// Refresh completions arrive on the fetch goroutine; teaDispatcher turns them
// into messages so the controller only ever runs inside Update.
//
// Key files:
//
//   - app.go: Model, Update loop and Run
//   - surface.go: overscroll, spring and position reporting
//   - view.go: header, indicator rows, content and footer
//   - indicator.go: spinner, bar and arrow progress renderers
//   - theme.go, keys.go: palettes and key bindings
package ui
