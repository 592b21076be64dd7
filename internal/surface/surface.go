// Package surface defines the rendering boundary.
//
// The runtime itself only resets a surface's transform and reads its size.
// Everything else a game draws goes through the host's concrete surface,
// reached by type assertion to the optional interfaces below.
package surface

import (
	"image"

	"github.com/roach88/quanta/internal/geom"
)

// Surface is a 2-D drawing target.
type Surface interface {
	// ResetTransform restores the identity transform.
	ResetTransform()

	// Size returns the drawable size in device pixels.
	Size() geom.Vec2
}

// ImageDrawer is implemented by surfaces that can blit images.
type ImageDrawer interface {
	// DrawImage draws the src region of img with its top-left corner at dst,
	// stretched to size.
	DrawImage(img image.Image, src image.Rectangle, dst, size geom.Vec2)
}
