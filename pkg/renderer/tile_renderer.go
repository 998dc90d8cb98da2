package renderer

import (
	"image"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, &Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}
	return tiles
}

// TileStats counts the work done for one tile
type TileStats struct {
	Pixels     int
	CameraRays int
}

// TileRenderer evaluates the camera rays of a tile and writes the results
// to a sink
type TileRenderer struct {
	camera     *geometry.Camera
	integrator *integrator.Integrator
	sink       ImageSink
}

// NewTileRenderer creates a tile renderer
func NewTileRenderer(camera *geometry.Camera, in *integrator.Integrator, sink ImageSink) *TileRenderer {
	return &TileRenderer{camera: camera, integrator: in, sink: sink}
}

// RenderTileBounds renders pixels within the bounds. Lens positions for
// depth of field are drawn from sampler.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, sampler core.Sampler) TileStats {
	stats := TileStats{Pixels: bounds.Dx() * bounds.Dy()}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, rays := tr.renderPixel(x, y, sampler)
			tr.sink.SetPixel(x, y, c)
			stats.CameraRays += rays
		}
	}
	return stats
}

// renderPixel returns the pixel color and the number of camera rays used.
// With depth of field the color is the mean over the lens samples.
func (tr *TileRenderer) renderPixel(x, y int, sampler core.Sampler) (core.Vec3, int) {
	fx, fy := float64(x), float64(y)
	if !tr.camera.DepthOfField() {
		return tr.integrator.RayColor(tr.camera.GenerateRay(fx, fy)), 1
	}

	n := tr.camera.Config().LensSamples
	var sum core.Vec3
	for i := 0; i < n; i++ {
		ray := tr.camera.GenerateLensRay(fx, fy, sampler.Get2D())
		sum = sum.Add(tr.integrator.RayColor(ray))
	}
	return sum.Multiply(1 / float64(n)), n
}
