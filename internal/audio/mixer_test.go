package audio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quanta/internal/asset"
)

type fakeVoice struct {
	gain    float64
	loop    bool
	stopped bool
}

func (v *fakeVoice) Stop()             { v.stopped = true }
func (v *fakeVoice) Playing() bool     { return !v.stopped }
func (v *fakeVoice) SetGain(g float64) { v.gain = g }

type fakeDevice struct {
	voices []*fakeVoice
	fail   error
}

func (d *fakeDevice) Decode(data []byte) (Buffer, error) {
	if string(data) == "garbage" {
		return nil, errors.New("unsupported format")
	}
	return string(data), nil
}

func (d *fakeDevice) Start(_ Buffer, gain float64, loop bool) (Voice, error) {
	if d.fail != nil {
		return nil, d.fail
	}
	v := &fakeVoice{gain: gain, loop: loop}
	d.voices = append(d.voices, v)
	return v, nil
}

func newLoader(files map[string]string) *asset.Loader {
	return asset.NewLoader(context.Background(), asset.FetcherFunc(func(_ context.Context, url string) ([]byte, error) {
		b, ok := files[url]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(b), nil
	}))
}

func TestSound_PlayIsNoopUntilReady(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	release := make(chan struct{})
	defer close(release)
	l := asset.NewLoader(context.Background(), asset.FetcherFunc(func(context.Context, string) ([]byte, error) {
		<-release
		return []byte("pcm"), nil
	}))

	s := Load(l, m, "click.ogg", Effects)

	assert.False(t, s.Play())
	assert.False(t, s.Playing())
	assert.Empty(t, dev.voices)
}

func TestSound_Play(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"click.ogg": "pcm"})

	s := Load(l, m, "click.ogg", Effects).WithVolume(0.5)
	l.Wait()

	require.True(t, s.Play())
	assert.True(t, s.Playing())
	require.Len(t, dev.voices, 1)
	assert.Equal(t, 0.5, dev.voices[0].gain)
	assert.False(t, dev.voices[0].loop)

	// Replaying replaces the live voice.
	require.True(t, s.Play())
	assert.True(t, dev.voices[0].stopped)
	assert.Equal(t, 1, m.Live())
	assert.Equal(t, 2, m.Started())
}

func TestSound_FailedLoadNeverPlays(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"bad.ogg": "garbage"})

	s := Load(l, m, "bad.ogg", Effects)
	l.Wait()

	assert.True(t, s.Failed())
	assert.False(t, s.Play())
	assert.Len(t, l.Failures(), 1)
}

func TestMixer_GateBlocksPlay(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"click.ogg": "pcm"})

	s := Load(l, m, "click.ogg", Effects)
	l.Wait()

	m.SetEnabled(Effects, false)
	assert.False(t, m.Enabled(Effects))
	assert.True(t, m.Enabled(Music))
	assert.False(t, s.Play())
	assert.Empty(t, dev.voices)
}

func TestMixer_ClosingGateStopsAndResumesLoops(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"theme.ogg": "pcm", "click.ogg": "pcm"})

	music := Load(l, m, "theme.ogg", Music).Looped()
	click := Load(l, m, "click.ogg", Effects)
	l.Wait()

	require.True(t, music.Play())
	require.True(t, click.Play())

	m.SetEnabled(Music, false)
	assert.False(t, music.Playing())
	assert.True(t, click.Playing(), "other channels are untouched")

	m.SetEnabled(Music, true)
	assert.True(t, music.Playing())
	require.Len(t, dev.voices, 3)
	assert.True(t, dev.voices[2].loop)
}

func TestMixer_StoppedLoopDoesNotResume(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"theme.ogg": "pcm"})

	music := Load(l, m, "theme.ogg", Music).Looped()
	l.Wait()
	require.True(t, music.Play())

	m.SetEnabled(Music, false)
	music.Stop()
	m.SetEnabled(Music, true)

	assert.False(t, music.Playing())
	assert.Len(t, dev.voices, 1)
}

func TestMixer_MasterVolume(t *testing.T) {
	dev := &fakeDevice{}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"click.ogg": "pcm"})

	s := Load(l, m, "click.ogg", Effects).WithVolume(0.8)
	l.Wait()
	require.True(t, s.Play())

	m.SetMaster(0.5)
	assert.InDelta(t, 0.4, dev.voices[0].gain, 1e-9)

	s.SetVolume(2)
	assert.InDelta(t, 0.5, dev.voices[0].gain, 1e-9)

	m.SetMaster(-1)
	assert.Zero(t, m.Master())
}

func TestMixer_StartFailureIsLogged(t *testing.T) {
	dev := &fakeDevice{fail: errors.New("device lost")}
	m := NewMixer(dev, nil)
	l := newLoader(map[string]string{"click.ogg": "pcm"})

	s := Load(l, m, "click.ogg", Effects)
	l.Wait()

	assert.False(t, s.Play())
	assert.Zero(t, m.Live())
}

func TestParseChannel(t *testing.T) {
	ch, err := ParseChannel("music")
	require.NoError(t, err)
	assert.Equal(t, Music, ch)

	ch, err = ParseChannel("")
	require.NoError(t, err)
	assert.Equal(t, Effects, ch)

	_, err = ParseChannel("voice")
	assert.Error(t, err)
	assert.Equal(t, "Channel(7)", Channel(7).String())
}
