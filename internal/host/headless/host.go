package headless

import (
	"sync"

	"github.com/roach88/quanta/internal/driver"
)

// Host is a manually clocked driver.Host.
type Host struct {
	mu      sync.Mutex
	now     float64
	metrics driver.Metrics
	pending []func()
}

// NewHost creates a host at time start with the given metrics.
func NewHost(start float64, m driver.Metrics) *Host {
	return &Host{now: start, metrics: m}
}

// Now implements driver.Host.
func (h *Host) Now() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.now
}

// RequestFrame implements driver.Host.
func (h *Host) RequestFrame(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, fn)
}

// Metrics implements driver.Host.
func (h *Host) Metrics() driver.Metrics {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.metrics
}

// SetMetrics changes what Metrics reports from now on.
func (h *Host) SetMetrics(m driver.Metrics) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.metrics = m
}

// Advance moves the clock forward by seconds.
func (h *Host) Advance(seconds float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.now += seconds
}

// Pending returns the number of scheduled frame callbacks.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Step runs the callbacks scheduled before the call, like one display
// refresh. Callbacks scheduled while stepping wait for the next Step. It
// reports whether anything ran.
func (h *Host) Step() bool {
	h.mu.Lock()
	batch := h.pending
	h.pending = nil
	h.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch) > 0
}

// Run advances by dt and steps, n times. It returns the number of refreshes
// that ran a callback.
func (h *Host) Run(n int, dt float64) int {
	ran := 0
	for i := 0; i < n; i++ {
		h.Advance(dt)
		if h.Step() {
			ran++
		}
	}
	return ran
}
