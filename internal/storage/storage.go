// Package storage keeps the single persisted application value.
//
// The value is serialized as one JSON blob under one fixed key. It is read
// once at start (absent or corrupt data yields the type's zero value) and
// replaced wholesale on every write. Writes go straight to the Backend before
// the in-memory value changes; there is no batching and no merge.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// DefaultKey is the key the runtime stores its blob under.
const DefaultKey = "data"

// Backend is durable key/value storage for serialized blobs.
type Backend interface {
	// Load returns the stored bytes and whether the key exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)

	// Save replaces the stored bytes synchronously.
	Save(ctx context.Context, key string, value []byte) error
}

// Cell holds the typed persisted value.
type Cell[D any] struct {
	backend Backend
	key     string
	value   D
	logger  *slog.Logger
}

// Option configures Load.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Load reads key from backend and decodes it into D.
//
// Load never fails: a missing key, a backend error or undecodable bytes all
// produce the zero value of D. The latter two are logged at Warn.
func Load[D any](ctx context.Context, backend Backend, key string, opts ...Option) *Cell[D] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Cell[D]{
		backend: backend,
		key:     key,
		logger:  o.logger,
	}

	raw, ok, err := backend.Load(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("storage unreadable, using default", "key", key, "error", err)
	case !ok:
		c.logger.Info("storage empty, using default", "key", key)
	default:
		var v D
		if err := json.Unmarshal(raw, &v); err != nil {
			c.logger.Warn("storage corrupt, using default", "key", key, "error", err)
		} else {
			c.value = v
			c.logger.Info("storage loaded", "key", key, "bytes", len(raw))
		}
	}

	return c
}

// Get returns the current value.
func (c *Cell[D]) Get() D {
	return c.value
}

// Set serializes v, writes it to the backend and, once the write succeeded,
// makes it the current value. On error the previous value is kept.
func (c *Cell[D]) Set(ctx context.Context, v D) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode storage %q: %w", c.key, err)
	}
	if err := c.backend.Save(ctx, c.key, raw); err != nil {
		return fmt.Errorf("save storage %q: %w", c.key, err)
	}
	c.value = v
	return nil
}

// Reset writes the zero value.
func (c *Cell[D]) Reset(ctx context.Context) error {
	var zero D
	return c.Set(ctx, zero)
}

// Key returns the storage key.
func (c *Cell[D]) Key() string {
	return c.key
}

// Memory is an in-process Backend. It is what tests and the headless host use.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

// NewMemory creates an empty memory backend.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load implements Backend.
func (m *Memory) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save implements Backend.
func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	m.writes++
	return nil
}

// Raw returns the stored bytes for key, or nil.
func (m *Memory) Raw(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data[key]...)
}

// Writes returns how many Save calls succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
