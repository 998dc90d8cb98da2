package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/loaders"
	"github.com/df07/go-photon-mapper/pkg/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"photon-mapper", "--scenes", t.TempDir()}, args...))
	return out.String(), err
}

func TestCommands(t *testing.T) {
	app := newApp()
	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"render", "scenes", "inspect"}, names)
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames", "mirror.bmp")
	_, err := runApp(t, "render",
		"--photons", "2000", "--capacity", "5000", "--workers", "2",
		"--width", "16", "--height", "12", "-o", out, "mirror")
	require.NoError(t, err)

	tex, err := loaders.LoadTexture(out)
	require.NoError(t, err)
	assert.Equal(t, 16, tex.Width)
	assert.Equal(t, 12, tex.Height)
}

func TestRenderCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Missing scene", []string{"render"}},
		{"Unknown scene", []string{"render", "nonexistent"}},
		{"Invalid config", []string{"render", "--gather-count", "0", "default"}},
		{"Missing config file", []string{"render", "--config", "nowhere.toml", "default"}},
		{"Bad frame size", []string{"render", "--width", "-4", "default"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRenderCommand_DumpConfig(t *testing.T) {
	out, err := runApp(t, "render", "--photons", "1234", "--dump-config", "default")
	require.NoError(t, err)

	cfg, err := renderer.ReadConfig(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, 1234, cfg.Photons)
}

func TestScenesCommand(t *testing.T) {
	out, err := runApp(t, "scenes")
	require.NoError(t, err)
	for _, id := range []string{"default", "mirror", "cornell", "caustic-glass", "triangle-mesh"} {
		assert.Contains(t, out, id)
	}
}

func TestInspectCommand(t *testing.T) {
	out, err := runApp(t, "inspect", "triangle-mesh")
	require.NoError(t, err)
	assert.Contains(t, out, "Mesh 2")
	assert.Contains(t, out, "39")
}
