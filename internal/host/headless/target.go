package headless

import (
	"sync"

	"github.com/roach88/quanta/internal/input"
)

// Target is an input.Source that raw events can be injected into.
type Target struct {
	mu        sync.Mutex
	listeners map[string][]func(input.Raw)
}

// NewTarget creates a target with no listeners.
func NewTarget() *Target {
	return &Target{listeners: make(map[string][]func(input.Raw))}
}

// Listen implements input.Source.
func (t *Target) Listen(eventType string, fn func(input.Raw)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners[eventType] = append(t.listeners[eventType], fn)
}

// Listeners returns how many listeners are subscribed to eventType.
func (t *Target) Listeners(eventType string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners[eventType])
}

// Inject delivers r to every listener for r.Type. It reports whether a
// listener suppressed the default action.
func (t *Target) Inject(r input.Raw) (prevented bool) {
	t.mu.Lock()
	fns := make([]func(input.Raw), len(t.listeners[r.Type]))
	copy(fns, t.listeners[r.Type])
	t.mu.Unlock()

	r.Prevent = func() { prevented = true }
	for _, fn := range fns {
		fn(r)
	}
	return prevented
}
