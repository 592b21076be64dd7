package surface

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/roach88/quanta/internal/asset"
	"github.com/roach88/quanta/internal/geom"
)

// Spritesheet is a shared image that sprites cut regions from. The image
// lives in an arena; the sheet holds only its ID.
type Spritesheet struct {
	arena *asset.Arena[image.Image]
	id    asset.ID
}

// NewSpritesheet wraps the arena cell id.
func NewSpritesheet(arena *asset.Arena[image.Image], id asset.ID) Spritesheet {
	return Spritesheet{arena: arena, id: id}
}

// Ready reports whether the image has loaded.
func (s Spritesheet) Ready() bool {
	return s.arena.Get(s.id).Ready()
}

// Failed reports whether the image failed to load.
func (s Spritesheet) Failed() bool {
	return s.arena.Get(s.id).Failed()
}

func (s Spritesheet) image() (image.Image, bool) {
	return s.arena.Get(s.id).Value()
}

// Sprite cuts the w×h region at (u, v) out of the sheet.
func (s Spritesheet) Sprite(u, v, w, h int) *Sprite {
	return &Sprite{
		sheet: s,
		rect:  image.Rect(u, v, u+w, v+h),
		scale: 1,
	}
}

// Sprite is a region of a Spritesheet.
type Sprite struct {
	sheet Spritesheet
	rect  image.Rectangle
	scale float64

	tint   *color.NRGBA
	tinted image.Image
}

// WithScale sets the draw scale.
func (s *Sprite) WithScale(scale float64) *Sprite {
	s.scale = scale
	return s
}

// Tinted multiplies the sprite's colours by c. The tinted copy is built on
// the first draw after the sheet is ready.
func (s *Sprite) Tinted(c color.NRGBA) *Sprite {
	s.tint = &c
	s.tinted = nil
	return s
}

// Size returns the drawn size.
func (s *Sprite) Size() geom.Vec2 {
	return geom.V(float64(s.rect.Dx()), float64(s.rect.Dy())).Scale(s.scale)
}

// Draw draws the sprite at pos. It does nothing and returns false while the
// sheet is not ready or when surf cannot draw images.
func (s *Sprite) Draw(surf Surface, pos geom.Vec2) bool {
	drawer, ok := surf.(ImageDrawer)
	if !ok {
		return false
	}
	img, ok := s.sheet.image()
	if !ok {
		return false
	}

	if s.tint == nil {
		drawer.DrawImage(img, s.rect, pos, s.Size())
		return true
	}

	if s.tinted == nil {
		s.tinted = tint(imaging.Crop(img, s.rect), *s.tint)
	}
	drawer.DrawImage(s.tinted, s.tinted.Bounds(), pos, s.Size())
	return true
}

func tint(img *image.NRGBA, c color.NRGBA) *image.NRGBA {
	return imaging.AdjustFunc(img, func(px color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: uint8(uint16(px.R) * uint16(c.R) / 255),
			G: uint8(uint16(px.G) * uint16(c.G) / 255),
			B: uint8(uint16(px.B) * uint16(c.B) / 255),
			A: px.A,
		}
	})
}
