// Package engine implements the control-flow state machine and the
// per-hook resource context.
//
// ARCHITECTURE:
//
// Stack of States:
// The game is a stack of State values. Only the top state receives events
// and updates. Every hook returns a Transition:
//   - None: nothing changes
//   - Set(s): replace the top in place (no OnPopped for the old one)
//   - Push(s): put s above the top
//   - Pop: remove the top and call its OnPopped
//
// Dispatch:
// Once per frame the machine pops events from the shared queue (most recent
// first) into the top state's OnEvent until one returns a non-None
// transition. If none does, OnUpdate runs instead. The resulting transition
// is resolved to quiescence before the dispatch returns.
//
// Resources:
// Each hook call gets a fresh Context lending the surface, the audio mixer,
// the persisted value and the game value. Surface and Audio are exclusive
// borrows; a nested borrow of the same resource panics.
//
// CRITICAL PATTERNS:
//
// Single goroutine:
// Mount and Dispatch are called from one goroutine only. Input listeners
// only append to the queue; they never call into the machine.
//
// Fatal invariants:
// Popping the last state without a Push replacement, nested borrows and use
// of an expired Context panic with *RuntimeError. They are not recovered.
//
// Logical clock:
// Dispatches are numbered by Clock. Mount is frame 0.
package engine
