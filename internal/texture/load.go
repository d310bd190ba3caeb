// Package texture decodes image files into the bottom-up RGBA layout
// glTexImage2D expects.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("texture: not an image file")

// Load reads path and returns its pixels flipped vertically, so row 0 is
// the bottom of the picture as OpenGL samples it.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %q: %w", path, err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("texture: %q: %w", path, err)
	}
	return img, nil
}

func Decode(data []byte) (*image.RGBA, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		kind, _ := filetype.Match(data)
		return nil, fmt.Errorf("decode %s: %w", kind.Extension, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: empty image", format)
	}
	return transform.FlipV(img), nil
}

// Solid is the 1x1 stand-in used when a texture cannot be loaded.
func Solid(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	return img
}
