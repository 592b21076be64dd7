// Package input normalizes raw host input into a closed set of typed events.
//
// The host delivers DOM-shaped raw events (pointer, wheel, touch, keyboard) to
// listeners installed once by Normalizer.Install. Each qualifying raw event
// becomes exactly one Event appended to the shared Queue. Listeners never call
// into the state machine; they only append.
//
// ORDERING:
//
// The Queue is drained from the tail. The most recently appended event is
// handed to the state machine first. This matches the behavior of the
// runtime this package was built for and is kept on purpose.
//
// COORDINATES:
//
// All positions are multiplied by the device pixel ratio so events share the
// coordinate space of the drawing surface.
package input
