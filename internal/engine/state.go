package engine

import (
	"fmt"

	"github.com/roach88/quanta/internal/input"
)

// State is one entry of the control-flow stack. G is the game-global value,
// D the persisted-storage value.
//
// Every hook returns the transition the machine should resolve next. Embed
// Base to get the default of returning None for hooks a state does not need.
//
// OnPopped is called after the state has been removed from the stack; the
// machine holds no reference to it afterwards, so the state may hand itself
// (or something wrapping it) to a Push transition.
type State[G, D any] interface {
	OnPushed(ctx *Context[G, D]) Transition[G, D]
	OnEvent(ev input.Event, ctx *Context[G, D]) Transition[G, D]
	OnUpdate(ctx *Context[G, D]) Transition[G, D]
	OnPopped(ctx *Context[G, D]) Transition[G, D]
}

// Base implements every State hook as a no-op returning None.
type Base[G, D any] struct{}

func (Base[G, D]) OnPushed(*Context[G, D]) Transition[G, D] { return Transition[G, D]{} }

func (Base[G, D]) OnEvent(input.Event, *Context[G, D]) Transition[G, D] {
	return Transition[G, D]{}
}

func (Base[G, D]) OnUpdate(*Context[G, D]) Transition[G, D] { return Transition[G, D]{} }

func (Base[G, D]) OnPopped(*Context[G, D]) Transition[G, D] { return Transition[G, D]{} }

// Namer lets a state choose the name used in logs and traces.
type Namer interface {
	Name() string
}

// StateName returns the state's Name if it implements Namer, otherwise its
// dynamic type.
func StateName(s any) string {
	if n, ok := s.(Namer); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// TransitionKind tags a Transition.
type TransitionKind int

const (
	KindNone TransitionKind = iota
	KindSet
	KindPush
	KindPop
)

func (k TransitionKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSet:
		return "set"
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	default:
		return fmt.Sprintf("TransitionKind(%d)", int(k))
	}
}

// Transition is the result of a hook. The zero value is None.
// Transitions are resolved immediately and never stored by the machine.
type Transition[G, D any] struct {
	kind  TransitionKind
	state State[G, D]
}

// None leaves the stack as it is and ends resolution.
func None[G, D any]() Transition[G, D] {
	return Transition[G, D]{}
}

// Set replaces the top state in place. The replaced state's OnPopped is not
// called.
func Set[G, D any](s State[G, D]) Transition[G, D] {
	if s == nil {
		panic("engine: Set with nil state")
	}
	return Transition[G, D]{kind: KindSet, state: s}
}

// Push places s above the current top.
func Push[G, D any](s State[G, D]) Transition[G, D] {
	if s == nil {
		panic("engine: Push with nil state")
	}
	return Transition[G, D]{kind: KindPush, state: s}
}

// Pop removes the top state and calls its OnPopped.
func Pop[G, D any]() Transition[G, D] {
	return Transition[G, D]{kind: KindPop}
}

// Kind returns the transition tag.
func (t Transition[G, D]) Kind() TransitionKind {
	return t.kind
}

// IsNone reports whether t is None.
func (t Transition[G, D]) IsNone() bool {
	return t.kind == KindNone
}

// State returns the state carried by Set or Push, nil otherwise.
func (t Transition[G, D]) State() State[G, D] {
	return t.state
}

func (t Transition[G, D]) String() string {
	if t.state == nil {
		return t.kind.String()
	}
	return t.kind.String() + ":" + StateName(t.state)
}
