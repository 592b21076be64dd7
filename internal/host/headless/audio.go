package headless

import (
	"errors"
	"sync"

	"github.com/roach88/quanta/internal/audio"
)

// ErrEmptyAudio is returned when decoding zero bytes.
var ErrEmptyAudio = errors.New("headless: empty audio data")

// Device is a silent audio.Device that records started voices.
type Device struct {
	mu     sync.Mutex
	voices []*Voice
}

// Buffer is the decoded form: the raw bytes.
type Buffer []byte

// Decode implements audio.Device.
func (d *Device) Decode(data []byte) (audio.Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAudio
	}
	return Buffer(append([]byte(nil), data...)), nil
}

// Start implements audio.Device.
func (d *Device) Start(buf audio.Buffer, gain float64, loop bool) (audio.Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	v := &Voice{Buffer: buf.(Buffer), Gain: gain, Loop: loop, playing: true}
	d.voices = append(d.voices, v)
	return v, nil
}

// Voices returns every voice started so far.
func (d *Device) Voices() []*Voice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Voice(nil), d.voices...)
}

// Voice is a silent voice.
type Voice struct {
	Buffer Buffer
	Gain   float64
	Loop   bool

	playing bool
}

// Stop implements audio.Voice.
func (v *Voice) Stop() { v.playing = false }

// Playing implements audio.Voice.
func (v *Voice) Playing() bool { return v.playing }

// SetGain implements audio.Voice.
func (v *Voice) SetGain(g float64) { v.Gain = g }

// Finish ends a non-looping voice as if its buffer ran out.
func (v *Voice) Finish() {
	if !v.Loop {
		v.playing = false
	}
}
