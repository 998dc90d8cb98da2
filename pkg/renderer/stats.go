package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/integrator"
	"github.com/df07/go-photon-mapper/pkg/photonmap"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height int
	Tiles         int
	Workers       int
	CameraRays    int

	Trace  integrator.TraceStats
	Photon photonmap.Stats
	Meshes []geometry.TreeStats

	TraceTime  time.Duration // forward pass
	BuildTime  time.Duration // photon map construction
	RenderTime time.Duration // backward pass
}

// TotalTime is the wall time of all passes
func (s RenderStats) TotalTime() time.Duration {
	return s.TraceTime + s.BuildTime + s.RenderTime
}

// Table builds a tabular representation of the render statistics
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Metric", "Value"})

	table.Append([]string{"Forward pass", "---", s.TraceTime.String()})
	table.Append([]string{"", "Photons emitted", fmt.Sprintf("%d", s.Trace.Emitted)})
	for i, n := range s.Trace.PerLight {
		table.Append([]string{"", fmt.Sprintf("Light %d", i), fmt.Sprintf("%d", n)})
	}
	table.Append([]string{"", "Photons stored", fmt.Sprintf("%d", s.Trace.Stored)})
	table.Append([]string{"", "Photons dropped", fmt.Sprintf("%d", s.Trace.Dropped)})
	table.Append([]string{" ", " ", " "})

	table.Append([]string{"Photon map", "---", s.BuildTime.String()})
	table.Append([]string{"", "Capacity", fmt.Sprintf("%d", s.Photon.Capacity)})
	table.Append([]string{"", "Tree depth", fmt.Sprintf("%d", s.Photon.Depth)})
	table.Append([]string{" ", " ", " "})

	for i, m := range s.Meshes {
		table.Append([]string{fmt.Sprintf("Mesh %d", i), "Triangles", fmt.Sprintf("%d", m.Triangles)})
		table.Append([]string{"", "Nodes / leaves", fmt.Sprintf("%d / %d", m.Nodes, m.Leaves)})
		table.Append([]string{"", "Max depth", fmt.Sprintf("%d", m.MaxDepth)})
		table.Append([]string{"", "Duplication", fmt.Sprintf("%.2fx", m.Duplication())})
	}
	if len(s.Meshes) > 0 {
		table.Append([]string{" ", " ", " "})
	}

	table.Append([]string{"Backward pass", "---", s.RenderTime.String()})
	table.Append([]string{"", "Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"", "Tiles / workers", fmt.Sprintf("%d / %d", s.Tiles, s.Workers)})
	table.Append([]string{"", "Camera rays", fmt.Sprintf("%d", s.CameraRays)})
	table.SetFooter([]string{"Total", " ", s.TotalTime().String()})

	table.Render()
	return buf.String()
}
