package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-photon-mapper/pkg/loaders"
	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/urfave/cli"
)

// Render a scene to an image file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("expected exactly one scene argument")
	}

	cfg, err := renderConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.Bool("dump-config") {
		data, err := cfg.TOML()
		if err != nil {
			return err
		}
		fmt.Fprint(ctx.App.Writer, string(data))
		return nil
	}

	sc, err := loadScene(ctx.Args().First(), ctx.GlobalString("scenes"))
	if err != nil {
		return err
	}
	if ctx.IsSet("width") || ctx.IsSet("height") {
		width, height := sc.Camera.Width(), sc.Camera.Height()
		if ctx.IsSet("width") {
			width = ctx.Int("width")
		}
		if ctx.IsSet("height") {
			height = ctx.Int("height")
		}
		if width <= 0 || height <= 0 {
			return fmt.Errorf("invalid frame size %dx%d", width, height)
		}
		sc.SetResolution(width, height)
	}

	r, err := renderer.New(sc, cfg, nil)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering %q at %dx%d with %d photons", sc.Name, sc.Camera.Width(), sc.Camera.Height(), cfg.Photons)
	film, stats, err := r.Render(runCtx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = outputPath(sc.Name, time.Now())
	}
	if err := loaders.WriteImage(out, film.Image(cfg.Gamma)); err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", stats.Table())
	logger.Noticef("wrote %s", out)
	return nil
}

// outputPath is the default image location, output/<scene>/render_<timestamp>.png
func outputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// renderConfig reads the optional config file and applies flag overrides
func renderConfig(ctx *cli.Context) (renderer.Config, error) {
	cfg := renderer.DefaultConfig()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = renderer.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet("photons") {
		cfg.Photons = ctx.Int("photons")
	}
	if ctx.IsSet("capacity") {
		cfg.Capacity = ctx.Int("capacity")
	}
	if ctx.IsSet("gather-radius") {
		cfg.GatherRadius = ctx.Float64("gather-radius")
	}
	if ctx.IsSet("gather-count") {
		cfg.GatherCount = ctx.Int("gather-count")
	}
	if ctx.IsSet("max-depth") {
		cfg.MaxDepth = ctx.Int("max-depth")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Uint64("seed")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("gamma") {
		cfg.Gamma = ctx.Float64("gamma")
	}
	return cfg, cfg.Validate()
}
