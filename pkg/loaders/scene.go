package loaders

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/lights"
	"github.com/df07/go-photon-mapper/pkg/log"
	"github.com/df07/go-photon-mapper/pkg/material"
	"github.com/df07/go-photon-mapper/pkg/scene"
	"gopkg.in/yaml.v3"
)

// vec3 decodes a YAML sequence of three numbers
type vec3 core.Vec3

func (v *vec3) UnmarshalYAML(node *yaml.Node) error {
	var xyz []float64
	if err := node.Decode(&xyz); err != nil {
		return err
	}
	if len(xyz) != 3 {
		return fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(xyz))
	}
	*v = vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
	return nil
}

func (v *vec3) vec() core.Vec3 {
	if v == nil {
		return core.Vec3{}
	}
	return core.Vec3(*v)
}

type sceneFile struct {
	Camera     cameraSpec     `yaml:"camera"`
	Background vec3           `yaml:"background"`
	Lights     []lightSpec    `yaml:"lights"`
	Materials  []materialSpec `yaml:"materials"`
	Objects    []objectSpec   `yaml:"objects"`
}

type cameraSpec struct {
	Center        vec3    `yaml:"center"`
	Direction     *vec3   `yaml:"direction"`
	LookAt        *vec3   `yaml:"look_at"`
	Up            *vec3   `yaml:"up"`
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Angle         float64 `yaml:"angle"` // vertical field of view, degrees
	LensRadius    float64 `yaml:"lens_radius"`
	LensSamples   int     `yaml:"lens_samples"`
	FocusDistance float64 `yaml:"focus_distance"`
}

type lightSpec struct {
	Type      string  `yaml:"type"`
	Color     vec3    `yaml:"color"`
	Position  vec3    `yaml:"position"`
	Direction *vec3   `yaml:"direction"`
	Up        *vec3   `yaml:"up"`
	DirX      *vec3   `yaml:"dir_x"`
	DirY      *vec3   `yaml:"dir_y"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
}

type materialSpec struct {
	Name             string  `yaml:"name"`
	Color            *vec3   `yaml:"color"`
	Diffuse          float64 `yaml:"diffuse"`
	Reflect          float64 `yaml:"reflect"`
	Refract          float64 `yaml:"refract"`
	IOR              float64 `yaml:"ior"`
	Absorption       vec3    `yaml:"absorption"`
	Texture          string  `yaml:"texture"`
	TextureScale     float64 `yaml:"texture_scale"`
	TextureDirection *vec3   `yaml:"texture_direction"`
}

type objectSpec struct {
	Type     string `yaml:"type"`
	Material string `yaml:"material"`

	// sphere
	Center *vec3   `yaml:"center"`
	Radius float64 `yaml:"radius"`

	// plane: normal with either offset or point
	Normal *vec3   `yaml:"normal"`
	Offset float64 `yaml:"offset"`
	Point  *vec3   `yaml:"point"`

	// triangle
	Vertices []vec3 `yaml:"vertices"`

	// mesh; vertices are divided by scale
	File  string  `yaml:"file"`
	Scale float64 `yaml:"scale"`

	// group and transform; rotation is in degrees about x, then y, then z
	Children  []objectSpec `yaml:"children"`
	Translate *vec3        `yaml:"translate"`
	Rotate    *vec3        `yaml:"rotate"`
	Scaling   *vec3        `yaml:"scaling"`
}

// sceneBuilder turns a decoded scene file into a scene
type sceneBuilder struct {
	baseDir   string
	logger    log.Logger
	materials map[string]*material.Material
	scene     *scene.Scene
}

// LoadScene reads a YAML scene description. Relative texture and mesh
// paths are resolved against the file's directory.
func LoadScene(filename string, logger log.Logger) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	s, err := ReadScene(file, name, filepath.Dir(filename), logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ReadScene decodes a YAML scene description from r. Unknown keys are
// rejected.
func ReadScene(r io.Reader, name, baseDir string, logger log.Logger) (*scene.Scene, error) {
	var spec sceneFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	b := &sceneBuilder{
		baseDir:   baseDir,
		logger:    log.OrDefault(logger, "loaders"),
		materials: make(map[string]*material.Material),
		scene:     scene.New(name),
	}
	return b.build(&spec)
}

func (b *sceneBuilder) build(spec *sceneFile) (*scene.Scene, error) {
	camera, err := buildCamera(spec.Camera)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	b.scene.Camera = camera
	b.scene.Background = spec.Background.vec()

	for i, ls := range spec.Lights {
		light, err := buildLight(ls)
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		b.scene.AddLight(light)
	}

	for i, ms := range spec.Materials {
		if err := b.addMaterial(ms); err != nil {
			return nil, fmt.Errorf("materials[%d]: %w", i, err)
		}
	}

	for i, obj := range spec.Objects {
		shape, err := b.buildObject(obj, nil)
		if err != nil {
			return nil, fmt.Errorf("objects[%d]: %w", i, err)
		}
		b.scene.Add(shape)
	}

	b.logger.Debugf("scene %q: %d lights, %d materials, %d primitives",
		b.scene.Name, len(b.scene.Lights), len(b.scene.Materials), b.scene.PrimitiveCount())
	return b.scene, nil
}

func buildCamera(cs cameraSpec) (*geometry.Camera, error) {
	if cs.Width <= 0 || cs.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", cs.Width, cs.Height)
	}
	if cs.Angle <= 0 || cs.Angle >= 180 {
		return nil, fmt.Errorf("angle must be in (0, 180) degrees, got %g", cs.Angle)
	}

	center := cs.Center.vec()
	var direction core.Vec3
	switch {
	case cs.Direction != nil && cs.LookAt != nil:
		return nil, fmt.Errorf("set either direction or look_at, not both")
	case cs.Direction != nil:
		direction = cs.Direction.vec()
	case cs.LookAt != nil:
		direction = cs.LookAt.vec().Subtract(center)
	default:
		return nil, fmt.Errorf("direction or look_at is required")
	}
	if direction.IsZero() {
		return nil, fmt.Errorf("view direction is zero")
	}

	up := core.NewVec3(0, 1, 0)
	if cs.Up != nil {
		up = cs.Up.vec()
	}
	if direction.Cross(up).LengthSquared() < 1e-12 {
		return nil, fmt.Errorf("up vector is parallel to the view direction")
	}

	return geometry.NewCamera(geometry.CameraConfig{
		Center:        center,
		Direction:     direction,
		Up:            up,
		Width:         cs.Width,
		Height:        cs.Height,
		Angle:         cs.Angle,
		LensRadius:    cs.LensRadius,
		LensSamples:   cs.LensSamples,
		FocusDistance: cs.FocusDistance,
	}), nil
}

func buildLight(ls lightSpec) (lights.Light, error) {
	color := ls.Color.vec()
	switch lights.LightType(ls.Type) {
	case lights.LightTypePoint:
		return lights.NewPointLight(ls.Position.vec(), color), nil
	case lights.LightTypeDirectional:
		if ls.Direction == nil {
			return nil, fmt.Errorf("directional light needs a direction")
		}
		return lights.NewDirectionalLight(ls.Position.vec(), ls.Direction.vec(), color), nil
	case lights.LightTypeArea:
		if ls.DirX == nil || ls.DirY == nil {
			return nil, fmt.Errorf("area light needs dir_x and dir_y")
		}
		return lights.NewAreaLight(ls.Position.vec(), ls.DirX.vec(), ls.DirY.vec(), color), nil
	case lights.LightTypeRect:
		if ls.Direction == nil || ls.Up == nil {
			return nil, fmt.Errorf("rect light needs direction and up")
		}
		if ls.Width <= 0 || ls.Height <= 0 {
			return nil, fmt.Errorf("rect light needs a positive width and height")
		}
		return lights.NewRectLight(ls.Position.vec(), ls.Direction.vec(), ls.Up.vec(), color, ls.Width, ls.Height), nil
	default:
		return nil, fmt.Errorf("unknown light type %q", ls.Type)
	}
}

func (b *sceneBuilder) addMaterial(ms materialSpec) error {
	if ms.Name == "" {
		return fmt.Errorf("name is required")
	}
	if _, exists := b.materials[ms.Name]; exists {
		return fmt.Errorf("duplicate material %q", ms.Name)
	}

	m := &material.Material{
		Name:            ms.Name,
		Color:           core.Splat(1),
		Diffuse:         ms.Diffuse,
		Reflect:         ms.Reflect,
		Refract:         ms.Refract,
		RefractiveIndex: ms.IOR,
		Absorption:      ms.Absorption.vec(),
		TextureScale:    ms.TextureScale,
	}
	if ms.Color != nil {
		m.Color = ms.Color.vec()
	}
	if m.RefractiveIndex == 0 {
		m.RefractiveIndex = 1
	}
	if ms.TextureDirection != nil {
		m.TextureDirection = ms.TextureDirection.vec()
	}
	if ms.Texture != "" {
		tex, err := LoadTexture(b.resolve(ms.Texture))
		if err != nil {
			return err
		}
		m.Texture = tex
	}

	b.materials[ms.Name] = m
	b.scene.AddMaterial(m)
	return nil
}

// material looks up a material by name; an empty name falls back to the
// enclosing group's material
func (b *sceneBuilder) material(name string, inherited *material.Material) (*material.Material, error) {
	if name == "" {
		if inherited == nil {
			return nil, fmt.Errorf("%w: no material given and none inherited", ErrUnknownMaterial)
		}
		return inherited, nil
	}
	m, ok := b.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMaterial, name)
	}
	return m, nil
}

func (b *sceneBuilder) buildObject(spec objectSpec, inherited *material.Material) (geometry.Shape, error) {
	switch spec.Type {
	case "group", "transform":
		return b.buildGroup(spec, inherited)
	case "mesh":
		return b.buildMesh(spec, inherited)
	}

	mat, err := b.material(spec.Material, inherited)
	if err != nil {
		return nil, err
	}

	switch spec.Type {
	case "sphere":
		if spec.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be positive")
		}
		return geometry.NewSphere(spec.Center.vec(), spec.Radius, mat), nil
	case "plane":
		if spec.Normal == nil || spec.Normal.vec().IsZero() {
			return nil, fmt.Errorf("plane needs a non-zero normal")
		}
		if spec.Point != nil {
			return geometry.NewPlaneThroughPoint(spec.Point.vec(), spec.Normal.vec(), mat), nil
		}
		return geometry.NewPlane(spec.Normal.vec(), spec.Offset, mat), nil
	case "triangle":
		if len(spec.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(spec.Vertices))
		}
		return geometry.NewTriangle(spec.Vertices[0].vec(), spec.Vertices[1].vec(), spec.Vertices[2].vec(), mat), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", spec.Type)
	}
}

// buildGroup builds the children of a group or transform. Children without
// a material use the group's.
func (b *sceneBuilder) buildGroup(spec objectSpec, inherited *material.Material) (geometry.Shape, error) {
	if spec.Material != "" {
		m, err := b.material(spec.Material, nil)
		if err != nil {
			return nil, err
		}
		inherited = m
	}

	group := geometry.NewGroup()
	for i, child := range spec.Children {
		shape, err := b.buildObject(child, inherited)
		if err != nil {
			return nil, fmt.Errorf("children[%d]: %w", i, err)
		}
		group.Add(shape)
	}
	if spec.Type == "group" {
		return group, nil
	}

	tf, err := geometry.NewTransform(group, transformMatrix(spec))
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	return tf, nil
}

// transformMatrix composes translate · rotZ · rotY · rotX · scaling
func transformMatrix(spec objectSpec) core.Mat4 {
	m := core.Identity()
	if spec.Translate != nil {
		m = m.Mul(core.Translate(spec.Translate.vec()))
	}
	if spec.Rotate != nil {
		r := spec.Rotate.vec().Multiply(math.Pi / 180)
		m = m.Mul(core.RotateAxis(2, r.Z)).
			Mul(core.RotateAxis(1, r.Y)).
			Mul(core.RotateAxis(0, r.X))
	}
	if spec.Scaling != nil {
		m = m.Mul(core.Scale(spec.Scaling.vec()))
	}
	return m
}

func (b *sceneBuilder) buildMesh(spec objectSpec, inherited *material.Material) (geometry.Shape, error) {
	if spec.File == "" {
		return nil, fmt.Errorf("mesh needs a file")
	}
	opts := OBJOptions{Material: inherited, Scale: spec.Scale, Logger: b.logger}
	if spec.Material != "" {
		m, err := b.material(spec.Material, nil)
		if err != nil {
			return nil, err
		}
		opts.Material = m
	}

	mesh, err := LoadOBJ(b.resolve(spec.File), opts)
	if err != nil {
		return nil, err
	}

	// Materials from the mesh's libraries become scene materials too
	seen := map[*material.Material]bool{opts.Material: true}
	for _, tri := range mesh.Triangles() {
		if !seen[tri.Material] {
			seen[tri.Material] = true
			b.scene.AddMaterial(tri.Material)
		}
	}
	return mesh, nil
}

func (b *sceneBuilder) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.baseDir, path)
}
