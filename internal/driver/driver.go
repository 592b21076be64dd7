package driver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/quanta/internal/asset"
	"github.com/roach88/quanta/internal/audio"
	"github.com/roach88/quanta/internal/diag"
	"github.com/roach88/quanta/internal/engine"
	"github.com/roach88/quanta/internal/input"
	"github.com/roach88/quanta/internal/storage"
	"github.com/roach88/quanta/internal/surface"
)

// LoadFunc is the game entry point. It runs once, before the first frame,
// and returns the game value and the initial state.
type LoadFunc[G, D any] func(res *Resources) (G, engine.State[G, D])

// Options wires a Driver to its collaborators.
type Options[G, D any] struct {
	// Load is the game entry point. Required.
	Load LoadFunc[G, D]

	// Surface and Mixer are the rendering and audio subsystems. Required.
	Surface surface.Surface
	Mixer   *audio.Mixer

	// Queue is the input queue the machine drains. Default: a new queue.
	Queue *input.Queue

	// Backend persists the storage value. Default: storage.NewMemory().
	Backend storage.Backend

	// StorageKey is the key the value is stored under. Default: storage.DefaultKey.
	StorageKey string

	// Loader runs asset loads. Default: a loader that fails every load.
	Loader *asset.Loader

	// Sink receives uncaught failures. Default: diag.SlogSink.
	Sink diag.Sink

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger

	// RunID identifies this run in logs and storage. Default: a new UUIDv7.
	RunID string

	// Machine holds extra state machine options.
	Machine []engine.Option
}

var errNoFetcher = errors.New("no asset fetcher configured")

// Driver owns the frame loop.
type Driver[G, D any] struct {
	host    Host
	opts    Options[G, D]
	logger  *slog.Logger
	runID   string
	machine *engine.Machine[G, D]
	env     *engine.Env[G, D]
	res     *Resources
	last    float64
	frames  int64
	mounted bool
}

// New validates opts and builds a driver. A missing surface or mixer is
// reported as a SUBSYSTEM_UNAVAILABLE RuntimeError; callers treat it as
// fatal.
func New[G, D any](host Host, opts Options[G, D]) (*Driver[G, D], error) {
	if host == nil {
		return nil, errors.New("driver: nil host")
	}
	if opts.Load == nil {
		return nil, errors.New("driver: nil load function")
	}
	if opts.Surface == nil {
		return nil, engine.NewSubsystemUnavailableError("surface")
	}
	if opts.Mixer == nil {
		return nil, engine.NewSubsystemUnavailableError("audio")
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RunID == "" {
		opts.RunID = engine.UUIDv7Generator{}.Generate()
	}
	logger := opts.Logger.With("run_id", opts.RunID)

	if opts.Queue == nil {
		opts.Queue = input.NewQueue()
	}
	if opts.Backend == nil {
		opts.Backend = storage.NewMemory()
	}
	if opts.StorageKey == "" {
		opts.StorageKey = storage.DefaultKey
	}
	if opts.Loader == nil {
		opts.Loader = asset.NewLoader(context.Background(),
			asset.FetcherFunc(func(context.Context, string) ([]byte, error) { return nil, errNoFetcher }),
			asset.WithLoaderLogger(logger))
	}
	if opts.Sink == nil {
		opts.Sink = diag.SlogSink{Logger: logger}
	}

	machineOpts := append([]engine.Option{engine.WithLogger(logger)}, opts.Machine...)

	return &Driver[G, D]{
		host:    host,
		opts:    opts,
		logger:  logger,
		runID:   opts.RunID,
		machine: engine.New[G, D](opts.Queue, machineOpts...),
	}, nil
}

// Mount performs the one-time start: load the game, load storage, push the
// initial state with DeltaTime 0 and schedule the first frame. Failures are
// reported to the sink and re-panicked.
func (d *Driver[G, D]) Mount(ctx context.Context) {
	diag.Guard(d.opts.Sink, func() { d.mount(ctx) })
}

func (d *Driver[G, D]) mount(ctx context.Context) {
	if d.mounted {
		panic(&engine.RuntimeError{
			Code:    engine.ErrCodeAlreadyMounted,
			Message: "driver already mounted",
			Details: map[string]string{"run_id": d.runID},
		})
	}
	d.mounted = true

	d.res = newResources(d.opts.Loader, d.opts.Mixer)
	game, initial := d.opts.Load(d.res)

	cell := storage.Load[D](ctx, d.opts.Backend, d.opts.StorageKey, storage.WithLogger(d.logger))

	d.env = &engine.Env[G, D]{
		Ctx:       ctx,
		DeltaTime: 0,
		RemRatio:  RemRatio(d.host.Metrics()),
		Surface:   d.opts.Surface,
		Mixer:     d.opts.Mixer,
		Storage:   cell,
		Game:      &game,
	}
	d.machine.Mount(d.env, initial)

	d.last = d.host.Now()
	d.logger.Info("driver mounted", "initial", engine.StateName(initial), "rem_ratio", d.env.RemRatio)
	d.host.RequestFrame(d.tick)
}

func (d *Driver[G, D]) tick() {
	diag.Guard(d.opts.Sink, d.frame)
}

func (d *Driver[G, D]) frame() {
	d.opts.Surface.ResetTransform()

	now := d.host.Now()
	d.env.DeltaTime = now - d.last
	d.env.RemRatio = RemRatio(d.host.Metrics())

	d.machine.Dispatch(d.env)
	d.frames++

	d.last = now
	d.host.RequestFrame(d.tick)
}

// RunID returns the run identifier.
func (d *Driver[G, D]) RunID() string {
	return d.runID
}

// Queue returns the input queue, for wiring a Normalizer.
func (d *Driver[G, D]) Queue() *input.Queue {
	return d.opts.Queue
}

// Frames returns the number of frames dispatched since Mount.
func (d *Driver[G, D]) Frames() int64 {
	return d.frames
}

// Stack returns the state names from bottom to top.
func (d *Driver[G, D]) Stack() []string {
	return d.machine.Stack()
}

// Game returns the game value, or nil before Mount.
func (d *Driver[G, D]) Game() *G {
	if d.env == nil {
		return nil
	}
	return d.env.Game
}

// Storage returns the persisted value. Before Mount it is the zero value.
func (d *Driver[G, D]) Storage() D {
	if d.env == nil {
		var zero D
		return zero
	}
	return d.env.Storage.Get()
}

// Resources returns the resources handed to the load function, or nil
// before Mount.
func (d *Driver[G, D]) Resources() *Resources {
	return d.res
}

// Frame returns the current dispatch number: 0 during and after mount, n
// during and after the nth frame.
func (d *Driver[G, D]) Frame() int64 {
	return d.machine.Frame()
}
