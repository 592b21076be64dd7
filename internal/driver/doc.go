// Package driver runs the frame loop.
//
// Mount loads the game, loads persisted storage, pushes the initial state
// with a zero delta time and schedules the first frame. Every frame then
// resets the surface transform, measures the elapsed time, recomputes the
// rem ratio from host metrics, dispatches the state machine once and
// schedules the next frame. There is no stop: the loop ends with the host.
package driver
