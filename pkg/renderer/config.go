package renderer

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/df07/go-photon-mapper/pkg/integrator"
	"github.com/pelletier/go-toml/v2"
)

// Config contains rendering configuration. It is read from TOML; fields
// missing from the file keep their defaults.
type Config struct {
	Photons       int     `toml:"photons"`        // photons emitted across all lights
	Capacity      int     `toml:"capacity"`       // maximum photons kept in the map
	GatherRadius  float64 `toml:"gather_radius"`  // irradiance search radius
	GatherCount   int     `toml:"gather_count"`   // maximum photons per estimate
	MaxDepth      int     `toml:"max_depth"`      // photon bounces and camera recursion depth
	SurfaceOffset float64 `toml:"surface_offset"` // push-off distance for continuing paths
	Seed          uint64  `toml:"seed"`
	Workers       int     `toml:"workers"`   // 0 means one per CPU
	TileSize      int     `toml:"tile_size"` // edge length of backward pass tiles
	Gamma         float64 `toml:"gamma"`     // output encoding gamma, 1 for linear
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	ic := integrator.DefaultConfig()
	return Config{
		Photons:       ic.Photons,
		Capacity:      10000000,
		GatherRadius:  ic.GatherRadius,
		GatherCount:   ic.GatherCount,
		MaxDepth:      ic.MaxDepth,
		SurfaceOffset: ic.SurfaceOffset,
		Seed:          ic.Seed,
		Workers:       0,
		TileSize:      32,
		Gamma:         1,
	}
}

// LoadConfig reads a TOML configuration file over the defaults
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ReadConfig decodes TOML from r over the defaults. Unknown keys are
// rejected.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable
func (c Config) Validate() error {
	switch {
	case c.Photons < 0:
		return fmt.Errorf("%w: photons must not be negative", ErrInvalidConfig)
	case c.Capacity < 0:
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidConfig)
	case c.GatherRadius <= 0:
		return fmt.Errorf("%w: gather_radius must be positive", ErrInvalidConfig)
	case c.GatherCount <= 0:
		return fmt.Errorf("%w: gather_count must be positive", ErrInvalidConfig)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max_depth must be positive", ErrInvalidConfig)
	case c.SurfaceOffset < 0:
		return fmt.Errorf("%w: surface_offset must not be negative", ErrInvalidConfig)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative", ErrInvalidConfig)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size must be positive", ErrInvalidConfig)
	case c.Gamma <= 0:
		return fmt.Errorf("%w: gamma must be positive", ErrInvalidConfig)
	}
	return nil
}

// NumWorkers resolves the worker count
func (c Config) NumWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// Integrator returns the transport parameters for both passes
func (c Config) Integrator() integrator.Config {
	return integrator.Config{
		Photons:       c.Photons,
		MaxDepth:      c.MaxDepth,
		SurfaceOffset: c.SurfaceOffset,
		GatherRadius:  c.GatherRadius,
		GatherCount:   c.GatherCount,
		Seed:          c.Seed,
		Workers:       c.NumWorkers(),
	}
}

// TOML renders the configuration as a TOML document
func (c Config) TOML() ([]byte, error) {
	return toml.Marshal(c)
}
