package headless

import (
	"image"

	"github.com/roach88/quanta/internal/geom"
)

// Draw is one recorded DrawImage call.
type Draw struct {
	Image image.Image
	Src   image.Rectangle
	Dst   geom.Vec2
	Size  geom.Vec2
}

// Surface records what the game does to it.
type Surface struct {
	size   geom.Vec2
	resets int
	draws  []Draw
}

// NewSurface creates a surface of the given device-pixel size.
func NewSurface(size geom.Vec2) *Surface {
	return &Surface{size: size}
}

// ResetTransform implements surface.Surface.
func (s *Surface) ResetTransform() {
	s.resets++
}

// Size implements surface.Surface.
func (s *Surface) Size() geom.Vec2 {
	return s.size
}

// Resize changes the reported size.
func (s *Surface) Resize(size geom.Vec2) {
	s.size = size
}

// DrawImage implements surface.ImageDrawer.
func (s *Surface) DrawImage(img image.Image, src image.Rectangle, dst, size geom.Vec2) {
	s.draws = append(s.draws, Draw{Image: img, Src: src, Dst: dst, Size: size})
}

// Resets returns how often the transform was reset.
func (s *Surface) Resets() int {
	return s.resets
}

// Draws returns the recorded draw calls.
func (s *Surface) Draws() []Draw {
	return append([]Draw(nil), s.draws...)
}
