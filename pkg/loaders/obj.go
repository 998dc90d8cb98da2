package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/geometry"
	"github.com/df07/go-photon-mapper/pkg/log"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// transparencyEpsilon decides when a Tf filter is treated as transmissive
const transparencyEpsilon = 1e-7

// OBJOptions controls how a Wavefront OBJ file becomes a mesh
type OBJOptions struct {
	Material *material.Material // faces before any usemtl; white diffuse if nil
	Scale    float64            // vertex coordinates are divided by Scale; 0 means 1
	Logger   log.Logger
}

// OBJData contains the triangles and materials read from an OBJ file
type OBJData struct {
	Triangles []*geometry.Triangle
	Materials map[string]*material.Material
	Vertices  int
	TexCoords int
}

// LoadOBJ loads an OBJ file and its material libraries into a triangle mesh
func LoadOBJ(filename string, opts OBJOptions) (*geometry.TriangleMesh, error) {
	logger := log.OrDefault(opts.Logger, "loaders")
	startTime := time.Now()

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	data, err := ParseOBJ(file, filepath.Dir(filename), opts)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", filename, err)
	}
	logger.Infof("loaded %s: %d vertices, %d texture coordinates, %d triangles, %d materials in %s",
		filepath.Base(filename), data.Vertices, data.TexCoords, len(data.Triangles), len(data.Materials), time.Since(startTime))

	return geometry.NewTriangleMeshFromTriangles(data.Triangles, opts.Logger), nil
}

// ParseOBJ reads OBJ statements from r. Material libraries are resolved
// against baseDir. Polygons are split into triangle fans; vertex normals are
// ignored since triangles shade with their face normal.
func ParseOBJ(r io.Reader, baseDir string, opts OBJOptions) (*OBJData, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	current := opts.Material
	if current == nil {
		current = material.NewDiffuse(core.Splat(1))
	}

	var vertices []core.Vec3
	var texCoords []core.Vec2
	data := &OBJData{Materials: make(map[string]*material.Material)}

	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%d: vertex: %w", lineNum, err)
			}
			vertices = append(vertices, core.NewVec3(v[0], v[1], v[2]).Multiply(1/scale))
		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("%d: texture coordinate: %w", lineNum, err)
			}
			texCoords = append(texCoords, core.NewVec2(v[0], v[1]))
		case "mtllib":
			for _, name := range fields[1:] {
				if err := loadMTLFile(filepath.Join(baseDir, name), data.Materials); err != nil {
					return nil, fmt.Errorf("%d: %w", lineNum, err)
				}
			}
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%d: usemtl without a name", lineNum)
			}
			m, ok := data.Materials[fields[1]]
			if !ok {
				return nil, fmt.Errorf("%d: %w: %q", lineNum, ErrUnknownMaterial, fields[1])
			}
			current = m
		case "f":
			tris, err := parseFace(fields[1:], vertices, texCoords, current)
			if err != nil {
				return nil, fmt.Errorf("%d: face: %w", lineNum, err)
			}
			data.Triangles = append(data.Triangles, tris...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	data.Vertices = len(vertices)
	data.TexCoords = len(texCoords)
	return data, nil
}

// faceVertex is one corner of a face: a vertex and an optional texture
// coordinate
type faceVertex struct {
	v, vt int
}

// parseFace splits a polygon into the fan (0, i-1, i)
func parseFace(refs []string, vertices []core.Vec3, texCoords []core.Vec2, mat *material.Material) ([]*geometry.Triangle, error) {
	if len(refs) < 3 {
		return nil, fmt.Errorf("need at least 3 vertices, got %d", len(refs))
	}

	corners := make([]faceVertex, len(refs))
	for i, ref := range refs {
		parts := strings.Split(ref, "/")
		v, err := resolveIndex(parts[0], len(vertices))
		if err != nil {
			return nil, fmt.Errorf("vertex %q: %w", ref, err)
		}
		corners[i] = faceVertex{v: v, vt: -1}
		if len(parts) > 1 && parts[1] != "" {
			vt, err := resolveIndex(parts[1], len(texCoords))
			if err != nil {
				return nil, fmt.Errorf("texture coordinate %q: %w", ref, err)
			}
			corners[i].vt = vt
		}
	}

	tris := make([]*geometry.Triangle, 0, len(corners)-2)
	for i := 2; i < len(corners); i++ {
		a, b, c := corners[0], corners[i-1], corners[i]
		tri := geometry.NewTriangle(vertices[a.v], vertices[b.v], vertices[c.v], mat)
		if a.vt >= 0 && b.vt >= 0 && c.vt >= 0 {
			tri.WithUV(texCoords[a.vt], texCoords[b.vt], texCoords[c.vt])
		}
		tris = append(tris, tri)
	}
	return tris, nil
}

// resolveIndex converts a 1-based or negative (relative) OBJ index into a
// 0-based slice index
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = n + i + 1
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("index %s out of range [1, %d]", s, n)
	}
	return i - 1, nil
}

func loadMTLFile(filename string, into map[string]*material.Material) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open material library: %w", err)
	}
	defer file.Close()

	materials, err := ParseMTL(file)
	if err != nil {
		return fmt.Errorf("%s:%w", filename, err)
	}
	for name, m := range materials {
		into[name] = m
	}
	return nil
}

// ParseMTL reads a Wavefront material library. Supported statements:
//
//	Kd r g b   color; its largest channel becomes the diffuse weight and
//	           the color is normalized by it
//	Ks k       mirror weight
//	Tf r g b   absorption; a mean below 1 makes the material refractive
//	Ni n       refractive index
func ParseMTL(r io.Reader) (map[string]*material.Material, error) {
	materials := make(map[string]*material.Material)
	var current *material.Material

	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, fmt.Errorf("%d: newmtl without a name", lineNum)
			}
			current = &material.Material{Name: fields[1], RefractiveIndex: 1}
			materials[fields[1]] = current
			continue
		}
		if current == nil {
			continue
		}

		switch fields[0] {
		case "Kd":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%d: Kd: %w", lineNum, err)
			}
			color := core.NewVec3(v[0], v[1], v[2])
			current.Diffuse = color.MaxComponent()
			if current.Diffuse > 0 {
				current.Color = color.Multiply(1 / current.Diffuse)
			}
		case "Ks":
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("%d: Ks: %w", lineNum, err)
			}
			current.Reflect = v[0]
		case "Tf":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("%d: Tf: %w", lineNum, err)
			}
			current.Absorption = core.NewVec3(v[0], v[1], v[2])
			if current.Absorption.Avg() < 1-transparencyEpsilon {
				current.Refract = 1
			}
		case "Ni":
			v, err := parseFloats(fields[1:], 1)
			if err != nil {
				return nil, fmt.Errorf("%d: Ni: %w", lineNum, err)
			}
			current.RefractiveIndex = v[0]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return materials, nil
}

// parseFloats parses the first n fields. Extra fields are ignored.
func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
