package web

import (
	"image"

	"github.com/disintegration/imaging"
)

// imageDataPix returns img as packed non-premultiplied RGBA rows, the layout
// ImageData takes.
func imageDataPix(img image.Image) (pix []byte, w, h int) {
	n, ok := img.(*image.NRGBA)
	if !ok {
		n = imaging.Clone(img)
	}
	w, h = n.Rect.Dx(), n.Rect.Dy()
	if n.Stride == 4*w && len(n.Pix) == 4*w*h {
		return n.Pix, w, h
	}

	// Sub-images share the parent's rows.
	pix = make([]byte, 0, 4*w*h)
	for y := 0; y < h; y++ {
		row := y * n.Stride
		pix = append(pix, n.Pix[row:row+4*w]...)
	}
	return pix, w, h
}
