// Package position carries the raw vertical coordinates a scroll surface
// reports on each layout pass.
//
// Two points are tracked: a fixed reference anchored to the surface frame and
// a moving point at the top of the scrolled content. Several layers of a
// surface may report during one pass, sometimes with stale values first, so
// emissions are collected into a Batch by appending and only reduced once the
// pass is flushed:
//
//	stream.Emit(position.Sample{Kind: position.Fixed, Y: 2})
//	stream.Emit(position.Sample{Kind: position.Moving, Y: 9})
//	stream.Flush() // subscribers receive [fixed 2, moving 9]
//
// Reduction (last sample of each kind wins) lives in package offset.
package position
