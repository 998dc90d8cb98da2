package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/material"
	"golang.org/x/image/bmp"
)

// LoadTexture loads a PNG, JPEG or BMP image as a texture. Texel (0,0) is
// the top-left pixel of the file.
func LoadTexture(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts any image to a texture with channels in [0,1]
func TextureFromImage(img image.Image) *material.ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns uint32 in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}
	return material.NewImageTexture(width, height, pixels)
}

// WriteImage encodes img to filename, choosing PNG or BMP from the
// extension. Missing parent directories are created.
func WriteImage(filename string, img image.Image) error {
	encode := png.Encode
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
	case ".bmp":
		encode = bmp.Encode
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if err := encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return file.Close()
}
