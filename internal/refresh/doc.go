// Package refresh implements the pull-to-refresh lifecycle for a scroll
// surface.
//
// # States
//
//	waiting ──offset > threshold──▶ primed ──offset < threshold──▶ loading
//	   ▲                                                              │
//	   └────────────────────────── done() ────────────────────────────┘
//
// Priming happens while pulling past the threshold; the refresh fires on the
// release, when the offset drops back below it. There is no un-prime path.
// While loading every position update is ignored, so rapid repeated pulls
// cannot start a second refresh before the first one completes.
//
// # Effects
//
//   - waiting → primed: heavy haptic pulse, if enabled
//   - primed → loading: the configured Action or AsyncAction is invoked
//     synchronously from the update that crossed the threshold
//   - loading → waiting: medium haptic pulse, if enabled, and the Animator
//     is asked to return the surface to rest
//
// # Concurrency
//
// A Controller has one writer. OnPositionBatch and Trigger must be called
// from the update queue, and completion continuations are marshalled back onto
// it through the configured Dispatcher. Immediate suits callers that already
// run on that queue; Queue provides a dedicated goroutine; a UI runtime can
// supply its own (the terminal surface sends messages to its program).
// OnRefreshAsync completes on another goroutine, so New rejects it with
// Immediate or no Dispatcher.
//
// The done continuation handed to an Action is one-shot. Extra calls, and
// calls that arrive after a later cycle started, are ignored and counted in
// Snapshot.IgnoredCompletions. There is no timeout: an action that never
// completes leaves the controller loading.
//
// # Observing
//
// Snapshot returns the last published state, Render the renderer output for
// it, and Subscribe registers listeners for changes. Percent is an integer so
// that listeners and the renderer only run when the visible value moves.
package refresh
