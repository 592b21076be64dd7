package engine

import (
	"context"

	"github.com/roach88/quanta/internal/audio"
	"github.com/roach88/quanta/internal/geom"
	"github.com/roach88/quanta/internal/storage"
	"github.com/roach88/quanta/internal/surface"
)

// Env owns the resources a dispatch lends to state hooks. The frame driver
// fills DeltaTime and RemRatio before every dispatch; the machine stamps
// Frame. One Env lives for the whole run.
type Env[G, D any] struct {
	Ctx       context.Context
	DeltaTime float64
	RemRatio  float64
	Frame     int64

	Surface surface.Surface
	Mixer   *audio.Mixer
	Storage *storage.Cell[D]
	Game    *G

	surfaceBorrowed bool
	audioBorrowed   bool
}

// Context is the view of Env handed to exactly one hook call. It expires when
// the hook returns; every method panics with CONTEXT_EXPIRED afterwards.
type Context[G, D any] struct {
	env     *Env[G, D]
	hook    string
	expired bool
}

// invoke runs one hook with a fresh Context and expires it on return, even
// when the hook panics.
func invoke[G, D any](env *Env[G, D], hook string, fn func(*Context[G, D]) Transition[G, D]) Transition[G, D] {
	c := &Context[G, D]{env: env, hook: hook}
	defer func() { c.expired = true }()
	return fn(c)
}

func (c *Context[G, D]) check(op string) {
	if c.expired {
		panic(NewContextExpiredError(op))
	}
}

// Hook returns the name of the hook this context was created for.
func (c *Context[G, D]) Hook() string {
	return c.hook
}

// Ctx returns the run's context.Context, for storage writes.
func (c *Context[G, D]) Ctx() context.Context {
	c.check("Ctx")
	if c.env.Ctx == nil {
		return context.Background()
	}
	return c.env.Ctx
}

// DeltaTime returns the seconds elapsed since the previous frame. It is 0
// during mount and is never clamped.
func (c *Context[G, D]) DeltaTime() float64 {
	c.check("DeltaTime")
	return c.env.DeltaTime
}

// Frame returns the dispatch sequence number; mount is frame 0.
func (c *Context[G, D]) Frame() int64 {
	c.check("Frame")
	return c.env.Frame
}

// RemToPx converts rem units to device pixels using this frame's ratio.
func (c *Context[G, D]) RemToPx(rem float64) float64 {
	c.check("RemToPx")
	return rem * c.env.RemRatio
}

// PxToRem converts device pixels to rem units.
func (c *Context[G, D]) PxToRem(px float64) float64 {
	c.check("PxToRem")
	return px / c.env.RemRatio
}

// Size returns the surface size in device pixels.
func (c *Context[G, D]) Size() geom.Vec2 {
	c.check("Size")
	return c.env.Surface.Size()
}

// Surface lends the drawing surface to fn. Calling Surface again before fn
// returns panics with BORROW_CONFLICT.
func (c *Context[G, D]) Surface(fn func(surface.Surface)) {
	c.check("Surface")
	if c.env.surfaceBorrowed {
		panic(NewBorrowConflictError("surface"))
	}
	c.env.surfaceBorrowed = true
	defer func() { c.env.surfaceBorrowed = false }()
	fn(c.env.Surface)
}

// Audio lends the mixer to fn. Calling Audio again before fn returns panics
// with BORROW_CONFLICT.
func (c *Context[G, D]) Audio(fn func(*audio.Mixer)) {
	c.check("Audio")
	if c.env.audioBorrowed {
		panic(NewBorrowConflictError("audio"))
	}
	c.env.audioBorrowed = true
	defer func() { c.env.audioBorrowed = false }()
	fn(c.env.Mixer)
}

// Storage returns the persisted value.
func (c *Context[G, D]) Storage() D {
	c.check("Storage")
	return c.env.Storage.Get()
}

// SetStorage replaces the persisted value and writes it through to durable
// storage before returning. On error the previous value stays current.
func (c *Context[G, D]) SetStorage(v D) error {
	c.check("SetStorage")
	return c.env.Storage.Set(c.Ctx(), v)
}

// Game returns the process-lifetime game value for mutation.
func (c *Context[G, D]) Game() *G {
	c.check("Game")
	return c.env.Game
}
