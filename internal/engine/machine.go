package engine

import (
	"log/slog"

	"github.com/roach88/quanta/internal/input"
)

// Hook names as they appear in logs and Step records.
const (
	HookPushed = "on_pushed"
	HookEvent  = "on_event"
	HookUpdate = "on_update"
	HookPopped = "on_popped"
)

// Step describes one hook call, reported to an Observer.
type Step struct {
	Frame  int64
	Hook   string
	State  string
	Event  string // set for on_event only
	Result string
	Depth  int // stack depth after the transition was applied
}

// Observer receives every hook call in order.
type Observer func(Step)

// Machine is the control-flow state machine.
//
// The machine owns the state stack and drains the shared input queue. It is
// driven from a single goroutine: Mount once, then Dispatch once per frame.
//
// INVARIANTS:
//   - The stack is non-empty after Mount and after every Dispatch
//   - A resolution chain runs to None before draining resumes
//   - Events leave the queue most-recent first
type Machine[G, D any] struct {
	queue    *input.Queue
	stack    []State[G, D]
	clock    *Clock
	logger   *slog.Logger
	chain    *chainMonitor
	observer Observer
	mounted  bool
}

// Option configures a Machine.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	chainWarn int
	clock     *Clock
	observer  Observer
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithChainWarn sets the chain length that triggers a warning.
// Default: DefaultChainWarn. Zero disables the warning.
func WithChainWarn(n int) Option {
	return func(c *config) {
		c.chainWarn = n
	}
}

// WithClock sets the dispatch clock. Used by tests that resume numbering.
func WithClock(clock *Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithObserver registers fn to receive every hook call.
func WithObserver(fn Observer) Option {
	return func(c *config) {
		c.observer = fn
	}
}

// New creates a machine draining q.
func New[G, D any](q *input.Queue, opts ...Option) *Machine[G, D] {
	cfg := config{
		logger:    slog.Default(),
		chainWarn: DefaultChainWarn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = NewClock()
	}

	return &Machine[G, D]{
		queue:    q,
		clock:    cfg.clock,
		logger:   cfg.logger,
		chain:    newChainMonitor(cfg.chainWarn),
		observer: cfg.observer,
	}
}

// Mount pushes the initial state and resolves the chain its OnPushed starts.
// It returns the number of resolution steps, counting the initial Push.
//
// Mount runs as frame 0 with whatever DeltaTime the caller put in env (the
// driver uses 0). A second Mount panics with ALREADY_MOUNTED.
func (m *Machine[G, D]) Mount(env *Env[G, D], initial State[G, D]) int {
	if m.mounted {
		panic(&RuntimeError{
			Code:    ErrCodeAlreadyMounted,
			Message: "machine already mounted",
			Details: map[string]string{"top": StateName(m.Top())},
		})
	}
	m.mounted = true
	env.Frame = m.clock.Current()

	steps := m.resolve(env, Push(initial))
	m.logger.Info("machine mounted",
		"initial", StateName(initial),
		"steps", steps,
		"depth", len(m.stack))
	return steps
}

// Dispatch runs one frame: drain events into the top state until one yields
// a transition, otherwise update the top state, then resolve the result.
// It returns the number of resolution steps.
//
// Events left in the queue after an event produced a transition stay queued
// for the next dispatch.
func (m *Machine[G, D]) Dispatch(env *Env[G, D]) int {
	if !m.mounted {
		panic("engine: Dispatch before Mount")
	}
	env.Frame = m.clock.Next()

	top := m.stack[len(m.stack)-1]
	name := StateName(top)

	var next Transition[G, D]
	drained := 0
	for {
		ev, ok := m.queue.Pop()
		if !ok {
			next = invoke(env, HookUpdate, top.OnUpdate)
			m.observe(env, HookUpdate, name, "", next)
			break
		}
		drained++
		next = invoke(env, HookEvent, func(c *Context[G, D]) Transition[G, D] {
			return top.OnEvent(ev, c)
		})
		m.observe(env, HookEvent, name, input.Describe(ev), next)
		if !next.IsNone() {
			break
		}
	}

	steps := m.resolve(env, next)
	m.logger.Debug("dispatch",
		"frame", env.Frame,
		"dt", env.DeltaTime,
		"drained", drained,
		"pending", m.queue.Len(),
		"steps", steps,
		"depth", len(m.stack))
	return steps
}

// resolve applies t and every transition it chains into until None.
func (m *Machine[G, D]) resolve(env *Env[G, D], t Transition[G, D]) int {
	m.chain.reset()
	steps := 0
	for !t.IsNone() {
		steps++
		m.chain.step(m.logger, env.Frame, t.String())

		switch t.Kind() {
		case KindSet:
			s := t.State()
			m.stack[len(m.stack)-1] = s
			t = invoke(env, HookPushed, s.OnPushed)
			m.observe(env, HookPushed, StateName(s), "", t)

		case KindPush:
			s := t.State()
			m.stack = append(m.stack, s)
			t = invoke(env, HookPushed, s.OnPushed)
			m.observe(env, HookPushed, StateName(s), "", t)

		case KindPop:
			n := len(m.stack)
			popped := m.stack[n-1]
			m.stack[n-1] = nil
			m.stack = m.stack[:n-1]

			name := StateName(popped)
			t = invoke(env, HookPopped, popped.OnPopped)
			m.observe(env, HookPopped, name, "", t)

			if len(m.stack) == 0 && t.Kind() != KindPush {
				m.logger.Error("popped the last state",
					"frame", env.Frame,
					"state", name,
					"next", t.String())
				panic(NewPoppedLastStateError(name))
			}
		}
	}
	return steps
}

func (m *Machine[G, D]) observe(env *Env[G, D], hook, state, event string, t Transition[G, D]) {
	if m.observer == nil {
		return
	}
	m.observer(Step{
		Frame:  env.Frame,
		Hook:   hook,
		State:  state,
		Event:  event,
		Result: t.String(),
		Depth:  len(m.stack),
	})
}

// Mounted reports whether Mount has run.
func (m *Machine[G, D]) Mounted() bool {
	return m.mounted
}

// Depth returns the stack length.
func (m *Machine[G, D]) Depth() int {
	return len(m.stack)
}

// Top returns the active state, or nil before Mount.
func (m *Machine[G, D]) Top() State[G, D] {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Stack returns the state names from bottom to top.
func (m *Machine[G, D]) Stack() []string {
	names := make([]string, len(m.stack))
	for i, s := range m.stack {
		names[i] = StateName(s)
	}
	return names
}

// Frame returns the last dispatch number.
func (m *Machine[G, D]) Frame() int64 {
	return m.clock.Current()
}
