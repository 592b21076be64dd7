package audio

import (
	"fmt"
	"log/slog"
)

// Channel groups sounds for gating.
type Channel int

const (
	Effects Channel = iota
	Music
)

func (c Channel) String() string {
	switch c {
	case Effects:
		return "effects"
	case Music:
		return "music"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// ParseChannel maps "effects" and "music" to their Channel.
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "effects", "":
		return Effects, nil
	case "music":
		return Music, nil
	default:
		return 0, fmt.Errorf("unknown audio channel %q", s)
	}
}

// Buffer is decoded audio in whatever form the Device uses.
type Buffer any

// Device decodes and plays audio. Decode is called from load goroutines and
// must be safe for concurrent use; Start is only called from the game loop.
type Device interface {
	Decode(data []byte) (Buffer, error)
	Start(buf Buffer, gain float64, loop bool) (Voice, error)
}

// Voice is one playing instance of a buffer.
type Voice interface {
	Stop()
	Playing() bool
	SetGain(gain float64)
}

// Mixer owns the gates and the set of sounds with live voices.
type Mixer struct {
	device  Device
	logger  *slog.Logger
	gates   map[Channel]bool
	master  float64
	sounds  map[*Sound]struct{}
	started int
}

// NewMixer creates a mixer with every channel enabled at full volume.
func NewMixer(device Device, logger *slog.Logger) *Mixer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mixer{
		device: device,
		logger: logger,
		gates:  map[Channel]bool{Effects: true, Music: true},
		master: 1,
		sounds: make(map[*Sound]struct{}),
	}
}

// Device returns the playback device.
func (m *Mixer) Device() Device {
	return m.device
}

// Enabled reports whether ch may play.
func (m *Mixer) Enabled(ch Channel) bool {
	return m.gates[ch]
}

// SetEnabled opens or closes the gate for ch. Closing it stops every live
// voice on the channel; looped sounds stopped this way resume when the gate
// opens again.
func (m *Mixer) SetEnabled(ch Channel, on bool) {
	if m.gates[ch] == on {
		return
	}
	m.gates[ch] = on
	m.logger.Debug("audio channel gated", "channel", ch.String(), "enabled", on)

	for s := range m.sounds {
		if s.channel != ch {
			continue
		}
		if on {
			if s.suspended {
				s.suspended = false
				s.Play()
			}
			continue
		}
		if s.playing() && s.looped {
			s.suspended = true
		}
		s.stopVoice()
	}
}

// Master returns the master volume.
func (m *Mixer) Master() float64 {
	return m.master
}

// SetMaster sets the master volume, clamped to [0, 1], and applies it to
// live voices.
func (m *Mixer) SetMaster(v float64) {
	m.master = clamp01(v)
	for s := range m.sounds {
		if s.voice != nil {
			s.voice.SetGain(s.gain())
		}
	}
}

// Live returns the number of sounds whose voice is still playing.
func (m *Mixer) Live() int {
	n := 0
	for s := range m.sounds {
		if s.playing() {
			n++
		} else if !s.suspended {
			delete(m.sounds, s)
		}
	}
	return n
}

// Started returns how many voices the mixer has started.
func (m *Mixer) Started() int {
	return m.started
}

// StopAll stops every live voice and forgets suspended loops.
func (m *Mixer) StopAll() {
	for s := range m.sounds {
		s.suspended = false
		s.stopVoice()
	}
}

func (m *Mixer) start(s *Sound, buf Buffer) {
	v, err := m.device.Start(buf, s.gain(), s.looped)
	if err != nil {
		m.logger.Warn("audio start failed", "url", s.url, "error", err)
		return
	}
	m.started++
	s.voice = v
	m.sounds[s] = struct{}{}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
