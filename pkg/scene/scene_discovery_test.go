package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-empty", "Cornell Empty"},
		{"dragon_gold", "Dragon Gold"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected SceneInfo
	}{
		{
			name: "complete_metadata.yaml",
			content: `# Scene: Glass Bunny
# Description: Bunny mesh in a glass box
# Group: Meshes

camera:
  width: 100`,
			expected: SceneInfo{
				ID:          "file:complete_metadata",
				Name:        "Glass Bunny",
				Description: "Bunny mesh in a glass box",
				Group:       "Meshes",
				Type:        TypeFile,
			},
		},
		{
			name: "partial_metadata.yaml",
			content: `
# Scene: Caustics

lights: []`,
			expected: SceneInfo{
				ID:    "file:partial_metadata",
				Name:  "Caustics",
				Group: "Scene Files",
				Type:  TypeFile,
			},
		},
		{
			name:    "no-metadata.yaml",
			content: "background: [0, 0, 0]\n# Scene: ignored after content",
			expected: SceneInfo{
				ID:    "file:no-metadata",
				Name:  "No Metadata",
				Group: "Scene Files",
				Type:  TypeFile,
			},
		},
	}

	dir := t.TempDir()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			result, err := ParseMetadata(path)
			require.NoError(t, err)

			tc.expected.FilePath = path
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestListAllScenes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("# Scene: Beta\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("# Scene: Alpha\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("# Scene: Nope\n"), 0o644))

	scenes, err := ListAllScenes(dir)
	require.NoError(t, err)
	require.Len(t, scenes, len(builtins)+2)

	for _, info := range scenes[:len(builtins)] {
		assert.Equal(t, TypeBuiltin, info.Type)
		assert.Equal(t, builtinGroup, info.Group)
	}
	assert.Equal(t, "Alpha", scenes[len(builtins)].Name)
	assert.Equal(t, "Beta", scenes[len(builtins)+1].Name)

	missing, err := ListAllScenes(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Len(t, missing, len(builtins))
}

func TestNewBuiltin(t *testing.T) {
	for _, info := range ListBuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltin(info.ID)
			require.NoError(t, err)
			require.NotNil(t, s.Camera)
			assert.Equal(t, info.ID, s.Name)
			assert.Positive(t, s.PrimitiveCount())
			assert.NotEmpty(t, s.Materials)
		})
	}

	_, err := NewBuiltin("nope")
	assert.ErrorIs(t, err, ErrUnknownScene)
}
