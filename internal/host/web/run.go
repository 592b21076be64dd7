//go:build js && wasm

package web

import (
	"context"
	"log/slog"

	"github.com/roach88/quanta/internal/asset"
	"github.com/roach88/quanta/internal/audio"
	"github.com/roach88/quanta/internal/diag"
	"github.com/roach88/quanta/internal/driver"
	"github.com/roach88/quanta/internal/engine"
	"github.com/roach88/quanta/internal/input"
)

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger  *slog.Logger
	machine []engine.Option
	key     string
}

// WithLogger sets the base logger.
func WithLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) { c.logger = l }
}

// WithMachineOptions passes extra options to the state machine.
func WithMachineOptions(opts ...engine.Option) RunOption {
	return func(c *runConfig) { c.machine = append(c.machine, opts...) }
}

// WithStorageKey overrides the localStorage key.
func WithStorageKey(key string) RunOption {
	return func(c *runConfig) { c.key = key }
}

// Run wires the browser subsystems to a driver, mounts it and blocks
// forever. Failures before the first frame are published like any other
// uncaught failure and then re-panicked.
func Run[G, D any](load driver.LoadFunc[G, D], opts ...RunOption) {
	cfg := runConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	sink := diag.Multi{ErrorSink{}, diag.SlogSink{Logger: cfg.logger}}

	var d *driver.Driver[G, D]
	diag.Guard(sink, func() {
		canvas, err := NewCanvas()
		if err != nil {
			panic(engine.NewSubsystemUnavailableError("surface"))
		}

		host := Host{}
		queue := input.NewQueue()
		n := input.NewNormalizer(queue, func() float64 {
			return host.Metrics().DevicePixelRatio
		}, input.WithLogger(cfg.logger))
		if err := n.Install(NewTarget(canvas.Element()), NewTarget(document())); err != nil {
			panic(err)
		}

		d, err = driver.New(host, driver.Options[G, D]{
			Load:       load,
			Surface:    canvas,
			Mixer:      audio.NewMixer(&Device{}, cfg.logger),
			Queue:      queue,
			Backend:    LocalStorage{},
			StorageKey: cfg.key,
			Loader:     asset.NewLoader(context.Background(), Fetcher{}, asset.WithLoaderLogger(cfg.logger)),
			Sink:       sink,
			Logger:     cfg.logger,
			Machine:    cfg.machine,
		})
		if err != nil {
			panic(err)
		}
	})

	d.Mount(context.Background())
	select {}
}
