package asset

import "sync"

// Pending is a settle-once result cell.
type Pending[T any] struct {
	mu      sync.Mutex
	settled bool
	value   T
	err     error
	done    chan struct{}
}

// NewPending creates an unsettled cell.
func NewPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// Resolved creates a cell already settled with v.
func Resolved[T any](v T) *Pending[T] {
	p := NewPending[T]()
	p.Settle(v, nil)
	return p
}

// Settle stores the result. Only the first call has an effect; it reports
// whether this call was the one that settled the cell.
func (p *Pending[T]) Settle(v T, err error) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.settled {
		return false
	}
	p.settled = true
	if err == nil {
		p.value = v
	}
	p.err = err
	close(p.done)
	return true
}

// Ready reports whether the cell settled successfully.
func (p *Pending[T]) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled && p.err == nil
}

// Failed reports whether the cell settled with an error.
func (p *Pending[T]) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settled && p.err != nil
}

// Value returns the value and whether it is available.
func (p *Pending[T]) Value() (T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value, p.settled && p.err == nil
}

// Err returns the load error, or nil while unsettled or on success.
func (p *Pending[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Done is closed once the cell settles. The frame loop must not wait on it;
// it exists for tools and tests.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}
