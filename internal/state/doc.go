// Package state holds the feed content shared between refresh actions and
// the UI.
//
// Refresh actions run on their own goroutine and write with Update; the UI
// reads with Snapshot while rendering. A failed refresh keeps the previous
// lines and records the error, so the screen never blanks because of a
// transient fetch failure:
//
//	store.Update(lines, nil)  // replace lines, clear error
//	store.Update(nil, err)    // keep lines, record err, count failure
//
// Both Update and Snapshot copy the line slice, and Snapshot wraps the stored
// error, so neither side can mutate what the other sees. Version lets the UI
// skip rebuilding its viewport content when nothing changed.
//
// The zero Store is ready to use.
package state
