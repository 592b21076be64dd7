package headless

import (
	"log/slog"

	"github.com/roach88/quanta/internal/audio"
	"github.com/roach88/quanta/internal/driver"
	"github.com/roach88/quanta/internal/geom"
	"github.com/roach88/quanta/internal/input"
)

// Rig bundles a complete headless host: clock, surface, audio and the two
// input targets with a normalizer already installed.
type Rig struct {
	Host    *Host
	Surface *Surface
	Device  *Device
	Mixer   *audio.Mixer
	Pointer *Target
	Keys    *Target
	Queue   *input.Queue
}

// NewRig creates a rig. The normalizer reads the pixel ratio from the
// host's current metrics for every event.
func NewRig(m driver.Metrics, size geom.Vec2, logger *slog.Logger) (*Rig, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Rig{
		Host:    NewHost(0, m),
		Surface: NewSurface(size),
		Device:  &Device{},
		Pointer: NewTarget(),
		Keys:    NewTarget(),
		Queue:   input.NewQueue(),
	}
	r.Mixer = audio.NewMixer(r.Device, logger)

	n := input.NewNormalizer(r.Queue, func() float64 {
		dpr := r.Host.Metrics().DevicePixelRatio
		if !(dpr > 0) {
			return 1
		}
		return dpr
	}, input.WithLogger(logger))
	if err := n.Install(r.Pointer, r.Keys); err != nil {
		return nil, err
	}
	return r, nil
}

// Inject routes r to the keyboard target for key events and to the pointer
// target otherwise.
func (r *Rig) Inject(raw input.Raw) bool {
	switch raw.Type {
	case input.RawKeyDown, input.RawKeyUp:
		return r.Keys.Inject(raw)
	default:
		return r.Pointer.Inject(raw)
	}
}
