package asset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Failure records one load that settled with an error.
type Failure struct {
	URL string
	Err error
}

// Loader starts asynchronous loads. Loads are never cancelled and have no
// timeout of their own; a Fetcher may impose one.
type Loader struct {
	ctx     context.Context
	fetcher Fetcher
	logger  *slog.Logger
	onError func(Failure)

	wg       sync.WaitGroup
	mu       sync.Mutex
	failures []Failure
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger for load results.
func WithLoaderLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// OnError registers a hook called (from the load goroutine) for every
// failed load.
func OnError(fn func(Failure)) LoaderOption {
	return func(ld *Loader) {
		ld.onError = fn
	}
}

// NewLoader creates a loader that fetches through f.
func NewLoader(ctx context.Context, f Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		ctx:     ctx,
		fetcher: f,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start fetches url and decodes it on a new goroutine. The returned cell is
// usable immediately and settles when the load finishes.
func Start[T any](l *Loader, url string, decode func([]byte) (T, error)) *Pending[T] {
	p := NewPending[T]()
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		v, err := loadRecovered(l, url, decode)
		p.Settle(v, err)
	}()
	return p
}

// loadRecovered turns a panicking fetcher or decoder into a failed load.
func loadRecovered[T any](l *Loader, url string, decode func([]byte) (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("load %q: panic: %v", url, r)
			l.fail(url, err)
		}
	}()
	return load(l, url, decode)
}

func load[T any](l *Loader, url string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	b, err := l.fetcher.Fetch(l.ctx, url)
	if err != nil {
		l.fail(url, err)
		return zero, err
	}
	v, err := decode(b)
	if err != nil {
		err = fmt.Errorf("decode %q: %w", url, err)
		l.fail(url, err)
		return zero, err
	}
	l.logger.Debug("asset loaded", "url", url, "bytes", len(b))
	return v, nil
}

func (l *Loader) fail(url string, err error) {
	f := Failure{URL: url, Err: err}

	l.mu.Lock()
	l.failures = append(l.failures, f)
	l.mu.Unlock()

	l.logger.Warn("asset failed to load", "url", url, "error", err)
	if l.onError != nil {
		l.onError(f)
	}
}

// Failures returns every failed load so far, in completion order.
func (l *Loader) Failures() []Failure {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Failure(nil), l.failures...)
}

// Wait blocks until every load started so far has settled. Never call it
// from the frame loop.
func (l *Loader) Wait() {
	l.wg.Wait()
}
