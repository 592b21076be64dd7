package audio

import (
	"github.com/roach88/quanta/internal/asset"
)

// Sound is a handle to an asynchronously loaded buffer.
type Sound struct {
	mixer   *Mixer
	url     string
	pending *asset.Pending[Buffer]
	channel Channel
	volume  float64
	looped  bool

	voice     Voice
	suspended bool
}

// Load starts loading url through l and returns a handle usable at once.
func Load(l *asset.Loader, m *Mixer, url string, ch Channel) *Sound {
	return &Sound{
		mixer:   m,
		url:     url,
		pending: asset.Start(l, url, m.device.Decode),
		channel: ch,
		volume:  1,
	}
}

// Looped makes every later Play loop until stopped.
func (s *Sound) Looped() *Sound {
	s.looped = true
	return s
}

// WithVolume sets the sound's own volume.
func (s *Sound) WithVolume(v float64) *Sound {
	s.volume = clamp01(v)
	return s
}

// SetVolume changes the volume, including of a live voice.
func (s *Sound) SetVolume(v float64) {
	s.volume = clamp01(v)
	if s.voice != nil {
		s.voice.SetGain(s.gain())
	}
}

// Channel returns the gate the sound plays through.
func (s *Sound) Channel() Channel {
	return s.channel
}

// Ready reports whether the buffer has loaded.
func (s *Sound) Ready() bool {
	return s.pending.Ready()
}

// Failed reports whether the buffer failed to load.
func (s *Sound) Failed() bool {
	return s.pending.Failed()
}

// Play starts a new voice, replacing any live one. It reports whether a voice
// was started: nothing plays while the buffer is loading or failed, or while
// the channel is gated.
func (s *Sound) Play() bool {
	buf, ok := s.pending.Value()
	if !ok {
		return false
	}
	if !s.mixer.Enabled(s.channel) {
		return false
	}
	s.stopVoice()
	s.mixer.start(s, buf)
	return s.voice != nil
}

// Playing reports whether the last started voice is still audible.
func (s *Sound) Playing() bool {
	return s.playing()
}

// Stop silences the sound. A stopped loop does not resume when its gate
// reopens.
func (s *Sound) Stop() {
	s.suspended = false
	s.stopVoice()
}

func (s *Sound) playing() bool {
	return s.voice != nil && s.voice.Playing()
}

func (s *Sound) stopVoice() {
	if s.voice == nil {
		return
	}
	s.voice.Stop()
	s.voice = nil
}

func (s *Sound) gain() float64 {
	return s.volume * s.mixer.master
}
