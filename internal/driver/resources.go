package driver

import (
	"image"

	"github.com/roach88/quanta/internal/asset"
	"github.com/roach88/quanta/internal/audio"
	"github.com/roach88/quanta/internal/surface"
)

// Resources is handed to the game's load function. Every Load method
// returns at once; content arrives later.
type Resources struct {
	loader *asset.Loader
	mixer  *audio.Mixer
	images *asset.Arena[image.Image]
	sounds []*audio.Sound
}

func newResources(loader *asset.Loader, mixer *audio.Mixer) *Resources {
	return &Resources{
		loader: loader,
		mixer:  mixer,
		images: &asset.Arena[image.Image]{},
	}
}

// LoadImage starts loading an image.
func (r *Resources) LoadImage(url string) *asset.Pending[image.Image] {
	p := asset.LoadImage(r.loader, url)
	r.images.Add(url, p)
	return p
}

// LoadSpritesheet starts loading an image to cut sprites from.
func (r *Resources) LoadSpritesheet(url string) surface.Spritesheet {
	p := asset.LoadImage(r.loader, url)
	return surface.NewSpritesheet(r.images, r.images.Add(url, p))
}

// LoadSound starts loading a sound played through ch.
func (r *Resources) LoadSound(url string, ch audio.Channel) *audio.Sound {
	s := audio.Load(r.loader, r.mixer, url, ch)
	r.sounds = append(r.sounds, s)
	return s
}

// Progress counts settled loads (ready or failed) against all loads started
// through r.
func (r *Resources) Progress() (settled, total int) {
	settled, total = r.images.Progress()
	for _, s := range r.sounds {
		if s.Ready() || s.Failed() {
			settled++
		}
	}
	return settled, total + len(r.sounds)
}
