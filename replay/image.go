package replay

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/swdee/go-depthfuse"
)

// LoadImage opens an image file rotating the pixels upright according to
// its EXIF orientation.  The returned orientation is the one to pass to an
// object detector, which is always up as the pixels have been rotated.
func LoadImage(path string) (image.Image, depthfuse.Orientation, error) {

	img, err := imaging.Open(path, imaging.AutoOrientation(true))

	if err != nil {
		return nil, 0, fmt.Errorf("error opening image %s: %w", path, err)
	}

	return img, depthfuse.OrientationUp, nil
}
