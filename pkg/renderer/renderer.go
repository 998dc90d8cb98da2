package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/integrator"
	"github.com/df07/go-photon-mapper/pkg/log"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// Renderer drives a full frame: the forward pass fills a photon map, the
// map is built, then camera rays are evaluated tile by tile.
type Renderer struct {
	scene  *scene.Scene
	config Config
	logger log.Logger
}

// New creates a renderer for a scene
func New(s *scene.Scene, config Config, logger log.Logger) (*Renderer, error) {
	if s.Camera == nil {
		return nil, ErrNoCamera
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		scene:  s,
		config: config,
		logger: log.OrDefault(logger, "renderer"),
	}, nil
}

// Render produces the frame into a new film
func (r *Renderer) Render(ctx context.Context) (*Film, RenderStats, error) {
	film := NewFilm(r.scene.Camera.Width(), r.scene.Camera.Height())
	stats, err := r.RenderTo(ctx, film)
	if err != nil {
		return nil, stats, err
	}
	return film, stats, nil
}

// RenderTo produces the frame into sink
func (r *Renderer) RenderTo(ctx context.Context, sink ImageSink) (RenderStats, error) {
	cam := r.scene.Camera
	stats := RenderStats{
		Width:   cam.Width(),
		Height:  cam.Height(),
		Workers: r.config.NumWorkers(),
		Meshes:  MeshStats(r.scene),
	}
	if len(r.scene.Lights) == 0 {
		r.logger.Warningf("scene %q has no lights; only the background will be visible", r.scene.Name)
	}

	pm, err := r.photonPass(ctx, &stats)
	if err != nil {
		return stats, err
	}

	start := time.Now()
	in := integrator.NewIntegrator(r.scene, pm, r.config.Integrator())
	tiles := NewTileGrid(cam.Width(), cam.Height(), r.config.TileSize)
	stats.Tiles = len(tiles)

	pool := NewWorkerPool(NewTileRenderer(cam, in, sink), len(tiles), stats.Workers, r.config.Seed)
	pool.Start(ctx)
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile})
	}
	pool.Stop()

	var firstErr error
	done := 0
	for result, ok := pool.GetResult(); ok; result, ok = pool.GetResult() {
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.CameraRays += result.Stats.CameraRays
		done++
		if done%max(1, len(tiles)/10) == 0 {
			r.logger.Debugf("rendered %d/%d tiles", done, len(tiles))
		}
	}
	stats.RenderTime = time.Since(start)
	if firstErr != nil {
		return stats, fmt.Errorf("render: %w", firstErr)
	}

	r.logger.Noticef("rendered %dx%d in %s", stats.Width, stats.Height, stats.TotalTime())
	return stats, nil
}

// photonPass runs the forward pass and builds the photon map
func (r *Renderer) photonPass(ctx context.Context, stats *RenderStats) (*photonmap.PhotonMap, error) {
	pm := photonmap.New(r.config.Capacity, nil)

	start := time.Now()
	tracer := integrator.NewPhotonTracer(r.scene, pm, r.config.Integrator(), nil)
	trace, err := tracer.Trace(ctx)
	stats.Trace = trace
	stats.TraceTime = time.Since(start)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	if err := pm.Build(); err != nil {
		return nil, err
	}
	stats.BuildTime = time.Since(start)
	stats.Photon = pm.Stats()
	return pm, nil
}

// MeshStats returns tree statistics for every mesh in a scene
func MeshStats(s *scene.Scene) []geometry.TreeStats {
	var out []geometry.TreeStats
	for _, m := range s.Meshes() {
		out = append(out, m.Tree().Stats())
	}
	return out
}
