package geometry

import (
	"fmt"

	"github.com/df07/go-photon-mapper/pkg/core"
	"github.com/df07/go-photon-mapper/pkg/log"
	"github.com/df07/go-photon-mapper/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray
// intersection through a TriangleTree
type TriangleMesh struct {
	triangles []*Triangle
	tree      *TriangleTree
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Materials []*material.Material // Optional per-triangle materials
	UVs       []core.Vec2          // Optional per-vertex texture coordinates
	Transform *core.Mat4           // Optional transform applied to vertices
	Logger    log.Logger
}

// NewTriangleMesh creates a mesh from vertices and face indices. Each group
// of three indices forms a triangle; mat is the default material.
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face index count %d is not a multiple of 3", len(faces))
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}

	numTriangles := len(faces) / 3
	if options.Materials != nil && len(options.Materials) != numTriangles {
		return nil, fmt.Errorf("got %d materials for %d triangles", len(options.Materials), numTriangles)
	}
	if options.UVs != nil && len(options.UVs) != len(vertices) {
		return nil, fmt.Errorf("got %d texture coordinates for %d vertices", len(options.UVs), len(vertices))
	}

	working := vertices
	if options.Transform != nil {
		working = make([]core.Vec3, len(vertices))
		for i, v := range vertices {
			working[i] = options.Transform.TransformPoint(v)
		}
	}

	triangles := make([]*Triangle, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(working) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i, idx)
			}
		}

		triMat := mat
		if options.Materials != nil && options.Materials[i] != nil {
			triMat = options.Materials[i]
		}
		tri := NewTriangle(working[i0], working[i1], working[i2], triMat)
		if options.UVs != nil {
			tri.WithUV(options.UVs[i0], options.UVs[i1], options.UVs[i2])
		}
		triangles[i] = tri
	}

	return NewTriangleMeshFromTriangles(triangles, options.Logger), nil
}

// NewTriangleMeshFromTriangles wraps prebuilt triangles
func NewTriangleMeshFromTriangles(triangles []*Triangle, logger log.Logger) *TriangleMesh {
	return &TriangleMesh{
		triangles: triangles,
		tree:      NewTriangleTree(triangles, logger),
	}
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	return tm.tree.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.tree.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}

// Tree exposes the spatial index
func (tm *TriangleMesh) Tree() *TriangleTree {
	return tm.tree
}

func (*TriangleMesh) shape() {}
