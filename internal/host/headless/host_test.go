package headless

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/quanta/internal/driver"
	"github.com/roach88/quanta/internal/geom"
	"github.com/roach88/quanta/internal/input"
)

func TestHost_StepRunsOnlyScheduledCallbacks(t *testing.T) {
	h := NewHost(10, driver.Metrics{FontSizePx: 16, DevicePixelRatio: 2})
	var ticks []float64

	var tick func()
	tick = func() {
		ticks = append(ticks, h.Now())
		h.RequestFrame(tick)
	}
	h.RequestFrame(tick)

	assert.False(t, NewHost(0, driver.Metrics{}).Step())
	assert.Equal(t, 1, h.Pending())

	assert.Equal(t, 3, h.Run(3, 0.5))
	assert.Equal(t, []float64{10.5, 11, 11.5}, ticks)
	assert.Equal(t, 1, h.Pending())
}

func TestHost_Metrics(t *testing.T) {
	h := NewHost(0, driver.Metrics{FontSizePx: 16, DevicePixelRatio: 1})
	h.SetMetrics(driver.Metrics{FontSizePx: 20, DevicePixelRatio: 3})
	assert.Equal(t, driver.Metrics{FontSizePx: 20, DevicePixelRatio: 3}, h.Metrics())
}

func TestRig_InjectNormalizesWithCurrentRatio(t *testing.T) {
	r, err := NewRig(driver.Metrics{FontSizePx: 16, DevicePixelRatio: 2}, geom.V(640, 480), nil)
	assert.NoError(t, err)

	r.Inject(input.Raw{Type: input.RawMouseDown, ClientX: 5, ClientY: 7, Button: 2})
	r.Host.SetMetrics(driver.Metrics{DevicePixelRatio: 3})
	r.Inject(input.Raw{Type: input.RawKeyDown, KeyCode: 27, Key: "Escape"})
	r.Inject(input.Raw{Type: input.RawMouseMove, ClientX: 1, ClientY: 1, Buttons: 0b101})

	assert.Equal(t, 3, r.Queue.Len())

	ev, _ := r.Queue.Pop()
	assert.Equal(t, input.PointerMove{Pos: geom.V(3, 3), Buttons: []input.Button{input.ButtonLeft, input.ButtonMiddle}}, ev)
	ev, _ = r.Queue.Pop()
	assert.Equal(t, input.KeyDown{Code: 27, Key: "Escape"}, ev)
	ev, _ = r.Queue.Pop()
	assert.Equal(t, input.PointerDown{Pos: geom.V(10, 14), Button: input.ButtonRight}, ev)
}

func TestRig_TouchAndContextMenuArePrevented(t *testing.T) {
	r, err := NewRig(driver.Metrics{DevicePixelRatio: 1}, geom.V(1, 1), nil)
	assert.NoError(t, err)

	assert.True(t, r.Inject(input.Raw{Type: input.RawContextMenu}))
	assert.True(t, r.Inject(input.Raw{Type: input.RawTouchStart, Touches: []geom.Vec2{{X: 1, Y: 2}}}))
	assert.False(t, r.Inject(input.Raw{Type: input.RawMouseDown, Button: 0}))
	assert.Equal(t, 2, r.Queue.Len())
	assert.Equal(t, 1, r.Pointer.Listeners(input.RawWheel))
}

func TestDevice(t *testing.T) {
	d := &Device{}

	_, err := d.Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyAudio)

	buf, err := d.Decode([]byte("pcm"))
	assert.NoError(t, err)

	v, err := d.Start(buf, 0.5, false)
	assert.NoError(t, err)
	assert.True(t, v.Playing())

	voice := d.Voices()[0]
	voice.Finish()
	assert.False(t, v.Playing())

	loop, _ := d.Start(buf, 1, true)
	d.Voices()[1].Finish()
	assert.True(t, loop.Playing())
}
