package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scene types
const (
	TypeBuiltin = "builtin"
	TypeFile    = "file"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string
	Name        string
	Description string
	Group       string
	Type        string // TypeBuiltin or TypeFile
	FilePath    string // scene description (file type only)
}

type builtin struct {
	info SceneInfo
	new  func() *Scene
}

var builtins = []builtin{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Diffuse unit sphere under a point light"}, NewDefaultScene},
	{SceneInfo{ID: "mirror", Name: "Mirror Sphere", Description: "Unlit mirror sphere reflecting a uniform background"}, NewMirrorScene},
	{SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Closed box with mirror and glass spheres under an area light"}, NewCornellScene},
	{SceneInfo{ID: "caustic-glass", Name: "Caustic Glass", Description: "Glass spheres focusing a point light onto the floor"}, NewCausticGlassScene},
	{SceneInfo{ID: "triangle-mesh", Name: "Triangle Mesh", Description: "Box, pyramid and icosahedron meshes"}, NewTriangleMeshScene},
	{SceneInfo{ID: "textures", Name: "Textures", Description: "Procedural textures on a plane and spheres"}, NewTextureTestScene},
	{SceneInfo{ID: "sphere-grid", Name: "Sphere Grid", Description: "Grid of diffuse, mirror and glass spheres"}, NewSphereGridScene},
}

const builtinGroup = "Built-in Scenes"

// NewBuiltin creates the built-in scene with the given ID
func NewBuiltin(id string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.new(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		scenes[i] = b.info
		scenes[i].Group = builtinGroup
		scenes[i].Type = TypeBuiltin
	}
	return scenes
}

// ListFileScenes scans dir for YAML scene descriptions. A missing directory
// yields no scenes.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, nil
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan scenes directory: %w", err)
		}
		files = append(files, matches...)
	}

	var scenes []SceneInfo
	for _, path := range files {
		info, err := ParseMetadata(path)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseMetadata extracts metadata from the leading comment block of a scene
// file:
//
//	# Scene: Glass Bunny
//	# Description: Bunny mesh in a glass box
//	# Group: Meshes
func ParseMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := SceneInfo{
		ID:       "file:" + base,
		Name:     titleCase(base),
		Group:    "Scene Files",
		Type:     TypeFile,
		FilePath: path,
	}

	file, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("read scene metadata: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			break
		}

		key, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "#")), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Scene":
			info.Name = value
		case "Description":
			info.Description = value
		case "Group":
			info.Group = value
		}
	}
	return info, scanner.Err()
}

// ListAllScenes returns the built-in scenes followed by the scene files
// found in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	files, err := ListFileScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(ListBuiltinScenes(), files...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
