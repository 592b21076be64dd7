package asset

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// DecodeImage decodes PNG, JPEG, GIF, BMP or TIFF bytes, applying EXIF
// orientation.
func DecodeImage(b []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// LoadImage starts an image load.
func LoadImage(l *Loader, url string) *Pending[image.Image] {
	return Start(l, url, DecodeImage)
}
