package asset

import "sync"

// ID is a stable index into an Arena.
type ID int

// Arena owns shared asset cells. Handles refer to a cell by ID, so many
// sprites can share one sheet without sharing ownership of it.
type Arena[T any] struct {
	mu    sync.Mutex
	cells []*Pending[T]
	urls  []string
}

// Add registers p under url and returns its ID. IDs are never reused.
func (a *Arena[T]) Add(url string, p *Pending[T]) ID {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cells = append(a.cells, p)
	a.urls = append(a.urls, url)
	return ID(len(a.cells) - 1)
}

// Get returns the cell for id. It panics on an ID the arena never issued.
func (a *Arena[T]) Get(id ID) *Pending[T] {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cells[id]
}

// URL returns the source the cell was loaded from.
func (a *Arena[T]) URL(id ID) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.urls[id]
}

// Len returns the number of registered cells.
func (a *Arena[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.cells)
}

// Progress counts settled cells (ready or failed) against the total.
func (a *Arena[T]) Progress() (settled, total int) {
	a.mu.Lock()
	cells := append([]*Pending[T](nil), a.cells...)
	a.mu.Unlock()

	for _, c := range cells {
		if c.Ready() || c.Failed() {
			settled++
		}
	}
	return settled, len(cells)
}
