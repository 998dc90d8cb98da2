package cmd

import (
	"bytes"

	"github.com/df07/go-photon-mapper/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List built-in scenes and scene files.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.GlobalString("scenes"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "Group", "Description"})
	for _, info := range scenes {
		id := info.ID
		if info.Type == scene.TypeFile {
			id = info.FilePath
		}
		table.Append([]string{id, info.Name, info.Group, info.Description})
	}
	table.Render()

	_, err = ctx.App.Writer.Write(buf.Bytes())
	return err
}
