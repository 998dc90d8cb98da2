package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-photon-mapper/pkg/core"
)

// ImageSink receives final pixel colors. Row 0 is the bottom of the image.
type ImageSink interface {
	SetPixel(x, y int, c core.Vec3)
}

// Film is an in-memory ImageSink. Each pixel is written by exactly one
// worker so no locking is needed.
type Film struct {
	width, height int
	pixels        []core.Vec3
}

// NewFilm creates a black film
func NewFilm(width, height int) *Film {
	return &Film{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

func (f *Film) Width() int  { return f.width }
func (f *Film) Height() int { return f.height }

// SetPixel stores a linear color
func (f *Film) SetPixel(x, y int, c core.Vec3) {
	f.pixels[y*f.width+x] = c
}

// Pixel returns the linear color at (x, y)
func (f *Film) Pixel(x, y int) core.Vec3 {
	return f.pixels[y*f.width+x]
}

// Image converts the film to 8-bit RGBA with the given gamma. The image's
// first row is the film's top row.
func (f *Film) Image(gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		row := f.height - 1 - y
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, row, toRGBA(f.Pixel(x, y), gamma))
		}
	}
	return img
}

func toRGBA(c core.Vec3, gamma float64) color.RGBA {
	c = c.Clamp(0, 1).GammaCorrect(gamma)
	return color.RGBA{
		R: uint8(math.Round(c.X * 255)),
		G: uint8(math.Round(c.Y * 255)),
		B: uint8(math.Round(c.Z * 255)),
		A: 255,
	}
}

// AverageLuminance returns the mean Rec. 709 luminance of the film
func (f *Film) AverageLuminance() float64 {
	if len(f.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range f.pixels {
		total += 0.2126*p.X + 0.7152*p.Y + 0.0722*p.Z
	}
	return total / float64(len(f.pixels))
}
