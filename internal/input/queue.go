package input

import "sync"

// Queue is the shared event sequence between the normalizer and the state
// machine.
//
// The queue is unbounded: listeners never block and never drop an event once
// they decided to emit it. Pop removes from the same end Push appends to, so
// the most recent event comes out first.
//
// Thread-safety is provided for hosts that deliver input on another goroutine.
// In the browser host everything runs on one thread and the lock is uncontended.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 32),
	}
}

// Push appends an event.
func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

// Pop removes and returns the most recently pushed event.
// Returns (nil, false) if the queue is empty.
func (q *Queue) Pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.events)
	if n == 0 {
		return nil, false
	}

	ev := q.events[n-1]
	// Clear the slot so the backing array does not pin touch slices.
	q.events[n-1] = nil
	q.events = q.events[:n-1]

	return ev, true
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
