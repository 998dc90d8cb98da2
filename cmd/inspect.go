package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/df07/go-photon-mapper/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Inspect a scene without rendering it.
func InspectScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("expected exactly one scene argument")
	}

	start := time.Now()
	sc, err := loadScene(ctx.Args().First(), ctx.GlobalString("scenes"))
	if err != nil {
		return err
	}
	logger.Infof("loaded %q in %s", sc.Name, time.Since(start))

	_, err = ctx.App.Writer.Write([]byte(sceneTable(sc)))
	return err
}

func sceneTable(sc *scene.Scene) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Element", "Property", "Value"})

	cam := sc.Camera.Config()
	table.Append([]string{"Camera", "Resolution", fmt.Sprintf("%dx%d", cam.Width, cam.Height)})
	table.Append([]string{"", "Field of view", fmt.Sprintf("%g°", cam.Angle)})
	if sc.Camera.DepthOfField() {
		table.Append([]string{"", "Lens", fmt.Sprintf("radius %g, %d samples, focus %g", cam.LensRadius, cam.LensSamples, cam.FocusDistance)})
	}
	table.Append([]string{"", "Background", fmt.Sprintf("%.3g %.3g %.3g", sc.Background.X, sc.Background.Y, sc.Background.Z)})

	for i, l := range sc.Lights {
		c := l.Color()
		table.Append([]string{fmt.Sprintf("Light %d", i), string(l.Type()), fmt.Sprintf("%.3g %.3g %.3g", c.X, c.Y, c.Z)})
	}
	for i, m := range sc.Materials {
		name := m.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		table.Append([]string{"Material " + name, "diffuse/reflect/refract", fmt.Sprintf("%.2f / %.2f / %.2f (ior %.2f)", m.Diffuse, m.Reflect, m.Refract, m.RefractiveIndex)})
	}

	for i, m := range renderer.MeshStats(sc) {
		table.Append([]string{fmt.Sprintf("Mesh %d", i), "Triangles", fmt.Sprintf("%d", m.Triangles)})
		table.Append([]string{"", "Nodes / leaves", fmt.Sprintf("%d / %d", m.Nodes, m.Leaves)})
		table.Append([]string{"", "Max depth", fmt.Sprintf("%d", m.MaxDepth)})
		table.Append([]string{"", "Duplication", fmt.Sprintf("%.2fx", m.Duplication())})
	}
	table.SetFooter([]string{"Primitives", " ", fmt.Sprintf("%d", sc.PrimitiveCount())})

	table.Render()
	return buf.String()
}
