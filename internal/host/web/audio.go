//go:build js && wasm

package web

import (
	"errors"
	"sync"
	"syscall/js"

	"github.com/roach88/quanta/internal/audio"
)

// Device plays audio through a single shared AudioContext.
type Device struct {
	once sync.Once
	ctx  js.Value
}

func (d *Device) context() js.Value {
	d.once.Do(func() {
		d.ctx = window().Get("AudioContext").New()
	})
	return d.ctx
}

// Decode implements audio.Device. It blocks until decodeAudioData settles,
// so it must run on a load goroutine.
func (d *Device) Decode(data []byte) (audio.Buffer, error) {
	if len(data) == 0 {
		return nil, errors.New("empty audio data")
	}
	arr := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(arr, data)
	return await(d.context().Call("decodeAudioData", arr.Get("buffer")))
}

// Start implements audio.Device.
func (d *Device) Start(buf audio.Buffer, gain float64, loop bool) (audio.Voice, error) {
	b, ok := buf.(js.Value)
	if !ok {
		return nil, errors.New("not a WebAudio buffer")
	}
	ctx := d.context()

	g := ctx.Call("createGain")
	g.Get("gain").Set("value", gain)
	g.Call("connect", ctx.Get("destination"))

	src := ctx.Call("createBufferSource")
	src.Set("buffer", b)
	src.Set("loop", loop)
	src.Call("connect", g)

	v := &voice{src: src, gain: g, playing: true}
	v.onEnded = js.FuncOf(func(js.Value, []js.Value) any {
		v.playing = false
		v.onEnded.Release()
		return nil
	})
	src.Set("onended", v.onEnded)

	if err := catchJS(func() { src.Call("start") }); err != nil {
		v.onEnded.Release()
		return nil, err
	}
	return v, nil
}

type voice struct {
	src, gain js.Value
	onEnded   js.Func
	playing   bool
}

func (v *voice) Stop() {
	if v.playing {
		v.src.Call("stop")
	}
}

func (v *voice) Playing() bool {
	return v.playing
}

func (v *voice) SetGain(gain float64) {
	v.gain.Get("gain").Set("value", gain)
}
