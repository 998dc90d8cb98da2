package main

import (
	"fmt"
	"os"

	"github.com/df07/go-photon-mapper/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "photon-mapper"
	app.Usage = "render scenes with stochastic photon mapping"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "scenes",
			Value: "scenes",
			Usage: "directory searched for YAML scene files",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image",
			Description: `
Trace photons from every light into a photon map, then evaluate one camera ray
per pixel (or per lens sample when depth of field is enabled) against it.

The scene argument is a built-in scene ID, the name of a file in the scenes
directory, or a path to a YAML scene description. The output format (PNG or
BMP) follows the file extension.`,
			ArgsUsage: "scene",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "TOML render configuration; flags override its values",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename (default output/<scene>/render_<timestamp>.png)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (default from the scene camera)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (default from the scene camera)",
				},
				cli.IntFlag{
					Name:  "photons, p",
					Usage: "photons emitted across all lights",
				},
				cli.IntFlag{
					Name:  "capacity",
					Usage: "maximum photons kept in the map",
				},
				cli.Float64Flag{
					Name:  "gather-radius",
					Usage: "irradiance search radius",
				},
				cli.IntFlag{
					Name:  "gather-count",
					Usage: "maximum photons per irradiance estimate",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "photon bounce and camera recursion limit",
				},
				cli.Uint64Flag{
					Name:  "seed",
					Usage: "random seed; the same seed renders the same image",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "worker goroutines (0 for one per CPU)",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Usage: "output encoding gamma",
				},
				cli.BoolFlag{
					Name:  "dump-config",
					Usage: "print the effective configuration as TOML and exit",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and scene files",
			Action: cmd.ListScenes,
		},
		{
			Name:      "inspect",
			Usage:     "print camera, light, material and mesh statistics for a scene",
			ArgsUsage: "scene",
			Action:    cmd.InspectScene,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
