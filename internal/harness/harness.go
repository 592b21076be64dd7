package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/roach88/quanta/internal/asset"
	"github.com/roach88/quanta/internal/diag"
	"github.com/roach88/quanta/internal/driver"
	"github.com/roach88/quanta/internal/engine"
	"github.com/roach88/quanta/internal/geom"
	"github.com/roach88/quanta/internal/host/headless"
	"github.com/roach88/quanta/internal/input"
	"github.com/roach88/quanta/internal/storage"
	"github.com/roach88/quanta/internal/trace"
)

// DefaultRunID is the run id used when a scenario sets none.
const DefaultRunID = "scenario-run"

// DefaultAdvance is the frame time used when a frame sets none.
const DefaultAdvance = 1.0 / 60

// Tally is the game value scenarios run with.
type Tally struct {
	Saves int
}

// Value is the persisted value scenarios run with.
type Value = map[string]any

type (
	state      = engine.State[Tally, Value]
	transition = engine.Transition[Tally, Value]
	hookCtx    = engine.Context[Tally, Value]
)

// scripted plays back a StateScript.
type scripted struct {
	name   string
	script StateScript
	run    *runner
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) OnPushed(c *hookCtx) transition {
	if s.script.Save != nil {
		if err := c.SetStorage(clone(s.script.Save)); err != nil {
			s.run.rec.Note(c.Frame(), "save %s failed: %v", s.name, err)
		} else {
			c.Game().Saves++
			s.run.rec.Note(c.Frame(), "save %s", s.name)
		}
	}
	return s.run.transition(s.script.OnPushed)
}

func (s *scripted) OnEvent(ev input.Event, _ *hookCtx) transition {
	switch e := ev.(type) {
	case input.KeyDown:
		return s.run.transition(s.script.OnKey[e.Code])
	case input.PointerDown:
		return s.run.transition(s.script.OnPointer[e.Button.String()])
	}
	return transition{}
}

func (s *scripted) OnUpdate(*hookCtx) transition {
	return s.run.transition(s.script.OnUpdate)
}

func (s *scripted) OnPopped(*hookCtx) transition {
	return s.run.transition(s.script.OnPopped)
}

// runner holds one scenario execution.
type runner struct {
	scenario *Scenario
	rec      *trace.Recorder
}

// transition builds the transition for a validated spec. Every push and set
// creates a fresh state instance.
func (r *runner) transition(spec string) transition {
	kind, target, err := parseTransition(spec, r.scenario.States)
	if err != nil {
		panic(fmt.Sprintf("harness: unvalidated transition %q: %v", spec, err))
	}
	switch kind {
	case "pop":
		return engine.Pop[Tally, Value]()
	case "push":
		return engine.Push[Tally, Value](r.state(target))
	case "set":
		return engine.Set[Tally, Value](r.state(target))
	default:
		return engine.None[Tally, Value]()
	}
}

func (r *runner) state(name string) state {
	return &scripted{name: name, script: r.scenario.States[name], run: r}
}

// Option configures Run.
type Option func(*options)

type options struct {
	backend   storage.Backend
	logger    *slog.Logger
	chainWarn int
	fetcher   asset.Fetcher
	advance   float64
	key       string
	display   Display
}

// WithBackend runs the scenario against backend instead of a fresh
// in-memory one. Stored is still written before mount.
func WithBackend(b storage.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithChainWarn sets the machine's long-chain warning threshold.
func WithChainWarn(n int) Option {
	return func(o *options) { o.chainWarn = n }
}

// WithFetcher sets where scenario assets are fetched from. Default: the
// working directory.
func WithFetcher(f asset.Fetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithStorageKey sets the key the persisted value lives under, for seeding
// and for the run. Default: storage.DefaultKey.
func WithStorageKey(key string) Option {
	return func(o *options) { o.key = key }
}

// WithDisplay sets the host display. Fields a scenario sets win; zero
// fields fall back to 16px, ratio 1 and 800x600.
func WithDisplay(d Display) Option {
	return func(o *options) { o.display = d }
}

// WithFrameInterval sets the advance used by frames that set none.
// Default: DefaultAdvance.
func WithFrameInterval(seconds float64) Option {
	return func(o *options) { o.advance = seconds }
}

// Run executes a scenario on a fresh headless rig and evaluates its
// expectations. A fatal RuntimeError ends the run early and is part of the
// result, not an error; the error return is for setup failures.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
		chainWarn: engine.DefaultChainWarn,
		advance:   DefaultAdvance,
		key:       storage.DefaultKey,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = storage.NewMemory()
	}
	if o.key == "" {
		o.key = storage.DefaultKey
	}
	if o.fetcher == nil {
		o.fetcher = asset.DirFetcher{FS: os.DirFS(".")}
	}

	ctx := context.Background()
	loader := asset.NewLoader(ctx, o.fetcher, asset.WithLoaderLogger(o.logger))
	if scenario.Stored != nil {
		b, err := json.Marshal(scenario.Stored)
		if err != nil {
			return nil, fmt.Errorf("failed to encode stored value: %w", err)
		}
		if err := o.backend.Save(ctx, o.key, b); err != nil {
			return nil, fmt.Errorf("failed to seed storage: %w", err)
		}
	}

	display := scenario.Display.over(o.display).over(Display{
		FontSizePx:       16,
		DevicePixelRatio: 1,
		Width:            800,
		Height:           600,
	})
	metrics := driver.Metrics{
		FontSizePx:       display.FontSizePx,
		DevicePixelRatio: display.DevicePixelRatio,
	}
	size := geom.V(display.Width, display.Height)

	rig, err := headless.NewRig(metrics, size, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create headless rig: %w", err)
	}

	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}

	r := &runner{scenario: scenario, rec: &trace.Recorder{}}
	sink := &diag.Recorder{}

	d, err := driver.New(rig.Host, driver.Options[Tally, Value]{
		Load: func(res *driver.Resources) (Tally, state) {
			for _, url := range scenario.Assets {
				res.LoadImage(url)
			}
			return Tally{}, r.state(scenario.Initial)
		},
		Surface:    rig.Surface,
		Mixer:      rig.Mixer,
		Queue:      rig.Queue,
		Backend:    o.backend,
		StorageKey: o.key,
		Loader:     loader,
		Sink:       sink,
		Logger:     o.logger,
		RunID:      runID,
		Machine: []engine.Option{
			engine.WithObserver(r.rec.Observe),
			engine.WithChainWarn(o.chainWarn),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	result := NewResult(scenario.Name, r.rec)
	result.Display = display

	fatal := func(fn func()) (ok bool) {
		defer func() {
			if rec := recover(); rec != nil {
				result.setFatal(rec)
				r.rec.Note(d.Frame(), "fatal %s", result.Fatal)
				ok = false
			}
		}()
		fn()
		return true
	}

	if fatal(func() { d.Mount(ctx) }) {
		for _, f := range scenario.Frames {
			for _, in := range f.Inputs {
				rig.Inject(toRaw(in))
			}
			advance := f.Advance
			if advance == 0 {
				advance = o.advance
			}
			rig.Host.Advance(advance)
			if !fatal(func() { rig.Host.Step() }) {
				break
			}
		}
	}

	result.Frames = d.Frames()
	result.Stack = d.Stack()
	result.Storage = d.Storage()
	if g := d.Game(); g != nil {
		result.Saves = g.Saves
	}
	result.Reports = sink.Reports()

	loader.Wait()
	result.Assets = len(scenario.Assets)
	for _, f := range loader.Failures() {
		result.AssetFailures = append(result.AssetFailures, f.URL)
	}
	sort.Strings(result.AssetFailures)

	for _, err := range evaluate(result, scenario.Expect) {
		result.AddError(err.Error())
	}
	return result, nil
}

func toRaw(in RawInput) input.Raw {
	r := input.Raw{
		Type:    in.Type,
		ClientX: in.X,
		ClientY: in.Y,
		Button:  in.Button,
		Buttons: in.Buttons,
		DeltaX:  in.DeltaX,
		DeltaY:  in.DeltaY,
		KeyCode: in.KeyCode,
		Key:     in.Key,
		Repeat:  in.Repeat,
		Shift:   in.Shift,
	}
	for _, t := range in.Touches {
		r.Touches = append(r.Touches, geom.V(t[0], t[1]))
	}
	return r
}

// over fills the zero fields of d from base.
func (d Display) over(base Display) Display {
	if d.FontSizePx == 0 {
		d.FontSizePx = base.FontSizePx
	}
	if d.DevicePixelRatio == 0 {
		d.DevicePixelRatio = base.DevicePixelRatio
	}
	if d.Width == 0 {
		d.Width = base.Width
	}
	if d.Height == 0 {
		d.Height = base.Height
	}
	return d
}

// clone copies a YAML map one level deep so a saved value is never shared
// with the script.
func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
