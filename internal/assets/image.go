package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad is returned when a texture cannot be opened or decoded.
var ErrImageLoad = errors.New("image load failed")

// Image is a decoded texture with its rows flipped so row 0 is the bottom of the
// picture, matching texture coordinate v = 0 at the south pole.
type Image struct {
	*image.RGBA
	Format string
}

// Width in pixels.
func (img *Image) Width() int { return img.Bounds().Dx() }

// Height in pixels.
func (img *Image) Height() int { return img.Bounds().Dy() }

// LoadImage reads and flips the image file at path.
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: %w: %w", ErrImageLoad, err)
	}
	defer f.Close()
	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes any registered format (png, jpeg, bmp, tiff, webp) and flips it vertically.
func DecodeImage(r io.Reader) (*Image, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageLoad, err)
	}
	if src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrImageLoad)
	}
	return &Image{RGBA: transform.FlipV(src), Format: format}, nil
}
