package integrator

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/log"
	"github.com/df07/go-photon-mapper/pkg/material"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/df07/go-photon-mapper/pkg/scene"
	"golang.org/x/sync/errgroup"
)

// walksPerChunk is the number of photon walks a worker runs per task
const walksPerChunk = 4096

// TraceStats summarizes a forward pass
type TraceStats struct {
	Emitted  int   // photon walks started
	Stored   int   // photons deposited in the map
	Dropped  int   // photons lost to the map's capacity
	PerLight []int // walks per light, in scene order
	Duration time.Duration
}

// PhotonTracer runs the forward pass: photons leave the lights, scatter
// through the scene by Russian roulette and are deposited on diffuse
// surfaces.
type PhotonTracer struct {
	scene  *scene.Scene
	photon *photonmap.PhotonMap
	config Config
	logger log.Logger
}

// NewPhotonTracer creates a tracer that fills pm
func NewPhotonTracer(s *scene.Scene, pm *photonmap.PhotonMap, config Config, logger log.Logger) *PhotonTracer {
	return &PhotonTracer{
		scene:  s,
		photon: pm,
		config: config,
		logger: log.OrDefault(logger, "tracer"),
	}
}

// chunk is a contiguous run of walks from one light
type chunk struct {
	light int
	first int
	count int
}

// Trace emits the configured number of photons, split across lights by
// power, and stores the results. Walks run in parallel; their photons are
// merged into the map in a fixed order so a given seed always produces the
// same map.
func (pt *PhotonTracer) Trace(ctx context.Context) (TraceStats, error) {
	start := time.Now()
	stats := TraceStats{PerLight: lights.PhotonBudget(pt.scene.Lights, pt.config.Photons)}
	totalPower := lights.TotalPower(pt.scene.Lights)

	var chunks []chunk
	for li, n := range stats.PerLight {
		for first := 0; first < n; first += walksPerChunk {
			chunks = append(chunks, chunk{light: li, first: first, count: min(walksPerChunk, n-first)})
		}
		stats.Emitted += n
	}
	pt.logger.Infof("tracing %d photons from %d lights (total power %.3f)", stats.Emitted, len(pt.scene.Lights), totalPower)

	buffers := make([][]photonmap.Photon, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, pt.config.Workers))
	for i, c := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			light := pt.scene.Lights[c.light]
			sampler := core.NewRandomSampler(pt.config.Seed, 0)
			var buf []photonmap.Photon
			for j := 0; j < c.count; j++ {
				sampler.Reseed(pt.config.Seed, walkStream(c.light, c.first+j))
				buf = pt.walk(light, sampler, totalPower, buf)
			}
			buffers[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("photon trace: %w", err)
	}

	for _, buf := range buffers {
		stored, err := pt.photon.InsertBatch(buf)
		if err != nil {
			return stats, fmt.Errorf("photon trace: %w", err)
		}
		stats.Stored += stored
		stats.Dropped += len(buf) - stored
	}
	pt.photon.AddEmitted(stats.Emitted)
	stats.Duration = time.Since(start)

	pt.logger.Infof("stored %d photons (%d dropped) in %s", stats.Stored, stats.Dropped, stats.Duration)
	return stats, nil
}

// walkStream identifies a walk for seeding its sampler
func walkStream(light, index int) uint64 {
	return uint64(light)<<40 | uint64(index)
}

// walk follows one photon from the light and appends every photon it
// deposits to out
func (pt *PhotonTracer) walk(light lights.Light, sampler core.Sampler, totalPower float64, out []photonmap.Photon) []photonmap.Photon {
	e := light.EmitPhoton(sampler)
	p := photonmap.NewPhoton(e.Position, e.Direction, e.Power.Multiply(totalPower))

	for depth := 1; depth <= pt.config.MaxDepth; depth++ {
		hit, ok := pt.scene.HitAny(core.NewRay(p.Position, p.Direction), hitEpsilon)
		if !ok {
			break
		}
		p.Position = hit.Point

		m := hit.Material
		if m.Diffuse > core.Epsilon {
			out = append(out, p)
		}

		if !pt.scatter(&p, hit, sampler) {
			break
		}
		p.Position = p.Position.Add(p.Direction.Multiply(pt.config.SurfaceOffset))
	}
	return out
}

// scatter picks the next event by Russian roulette and updates the photon's
// direction, power and medium. It returns false when the photon is absorbed.
func (pt *PhotonTracer) scatter(p *photonmap.Photon, hit *material.HitRecord, sampler core.Sampler) bool {
	m := hit.Material
	colorPower := m.ColorPower()
	pDiffuse := m.Diffuse * colorPower
	pReflect := m.Reflect * colorPower
	u := sampler.Get1D()

	switch {
	case u < pDiffuse:
		p.Direction = core.SampleDiffuseBounce(hit.Normal, sampler.Get2D())
		p.Power = p.Power.MultiplyVec(m.Color).Multiply(1 / colorPower)
		return true

	case u < pDiffuse+pReflect:
		p.Direction = material.Reflect(p.Direction, hit.Normal)
		p.Power = p.Power.MultiplyVec(m.Color).Multiply(1 / colorPower)
		return true
	}

	pRefract := m.Refract
	if material.InMedium(p.MediumIndex) {
		trans := material.Transmittance(p.Absorption, hit.T)
		avg := trans.Avg()
		if avg <= 0 {
			return false
		}
		pRefract *= avg
		p.Power = p.Power.MultiplyVec(trans).Multiply(1 / avg)
	}
	if u >= pDiffuse+pReflect+pRefract {
		return false
	}

	tr := material.Refract(p.Direction, hit.Normal, p.MediumIndex, p.Absorption, m)
	p.Direction = tr.Direction
	p.MediumIndex = tr.Index
	p.Absorption = tr.Absorption
	return true
}
