package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-photon-mapper/pkg/loaders"
	"github.com/df07/go-photon-mapper/pkg/scene"
)

// loadScene resolves a scene reference. A path to a YAML file is loaded
// directly; anything else is looked up among the built-in scenes and then
// as <scenesDir>/<ref>.yaml.
func loadScene(ref, scenesDir string) (*scene.Scene, error) {
	if ref == "" {
		return nil, errors.New("missing scene argument")
	}

	ext := strings.ToLower(filepath.Ext(ref))
	if ext == ".yaml" || ext == ".yml" {
		return loaders.LoadScene(ref, nil)
	}

	s, err := scene.NewBuiltin(ref)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, scene.ErrUnknownScene) {
		return nil, err
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(scenesDir, ref+ext)
		if _, statErr := os.Stat(path); statErr == nil {
			return loaders.LoadScene(path, nil)
		}
	}
	return nil, fmt.Errorf("%w: %q is neither a built-in scene nor a file in %s", scene.ErrUnknownScene, ref, scenesDir)
}
