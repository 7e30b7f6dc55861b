// Package prism implements the kernel.Kernel interface with exact polygon
// prisms. Caps are ear-clipped and every side is a quad, so a board costs a
// dozen triangles however large the floor.
package prism

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*PrismKernel)(nil)

type vec3 [3]float64

// prismSolid is a triangle soup. Triangles are counter-clockwise seen from
// outside.
type prismSolid struct {
	tris [][3]vec3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *prismSolid) BoundingBox() (min, max [3]float64) {
	first := true
	for _, t := range s.tris {
		for _, v := range t {
			if first {
				min, max, first = v, v, false
				continue
			}
			for a := range 3 {
				min[a] = math.Min(min[a], v[a])
				max[a] = math.Max(max[a], v[a])
			}
		}
	}
	return min, max
}

func (s *prismSolid) mapped(f func(vec3) vec3) *prismSolid {
	out := &prismSolid{tris: make([][3]vec3, len(s.tris))}
	for i, t := range s.tris {
		out.tris[i] = [3]vec3{f(t[0]), f(t[1]), f(t[2])}
	}
	return out
}

// PrismKernel implements kernel.Kernel with exact prisms.
type PrismKernel struct{}

// New returns a new PrismKernel.
func New() *PrismKernel {
	return &PrismKernel{}
}

func unwrap(s kernel.Solid) *prismSolid {
	return s.(*prismSolid)
}

// ErrDegenerate is returned for outlines with no area or non-positive heights.
var ErrDegenerate = errors.New("prism: degenerate outline")

// Prism extrudes outline from z=0 to z=height.
func (k *PrismKernel) Prism(outline geom.Polygon, height float64) (kernel.Solid, error) {
	if !(height > 0) {
		return nil, fmt.Errorf("%w: height %g", ErrDegenerate, height)
	}
	p := outline.CCW()
	caps := geom.Triangulate(p)
	if len(caps) == 0 {
		return nil, fmt.Errorf("%w: %d vertices", ErrDegenerate, len(outline))
	}

	s := &prismSolid{tris: make([][3]vec3, 0, 2*len(caps)+2*len(p))}
	at := func(i int, z float64) vec3 { return vec3{p[i].X, p[i].Y, z} }
	for _, c := range caps {
		s.tris = append(s.tris,
			[3]vec3{at(c[0], 0), at(c[2], 0), at(c[1], 0)},
			[3]vec3{at(c[0], height), at(c[1], height), at(c[2], height)},
		)
	}
	for i := range p {
		j := (i + 1) % len(p)
		if p[i] == p[j] {
			continue
		}
		a0, b0 := at(i, 0), at(j, 0)
		a1, b1 := at(i, height), at(j, height)
		s.tris = append(s.tris, [3]vec3{a0, b0, b1}, [3]vec3{a0, b1, a1})
	}
	return s, nil
}

// Union concatenates two disjoint solids.
func (k *PrismKernel) Union(a, b kernel.Solid) kernel.Solid {
	sa, sb := unwrap(a), unwrap(b)
	out := &prismSolid{tris: make([][3]vec3, 0, len(sa.tris)+len(sb.tris))}
	out.tris = append(out.tris, sa.tris...)
	out.tris = append(out.tris, sb.tris...)
	return out
}

// Translate moves a solid by (x, y, z).
func (k *PrismKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return unwrap(s).mapped(func(v vec3) vec3 {
		return vec3{v[0] + x, v[1] + y, v[2] + z}
	})
}

// Rotate rotates a solid by Euler angles (degrees) around X, then Y, then Z.
func (k *PrismKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	sx, cx := math.Sincos(x * math.Pi / 180)
	sy, cy := math.Sincos(y * math.Pi / 180)
	sz, cz := math.Sincos(z * math.Pi / 180)
	return unwrap(s).mapped(func(v vec3) vec3 {
		// X
		v = vec3{v[0], v[1]*cx - v[2]*sx, v[1]*sx + v[2]*cx}
		// Y
		v = vec3{v[0]*cy + v[2]*sy, v[1], -v[0]*sy + v[2]*cy}
		// Z
		return vec3{v[0]*cz - v[1]*sz, v[0]*sz + v[1]*cz, v[2]}
	})
}

// ToMesh flattens the solid with one face normal per triangle.
func (k *PrismKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	tris := unwrap(s).tris

	numVerts := len(tris) * 3
	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range tris {
		n := normal(tri)
		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v[0]), float32(v[1]), float32(v[2]))
			normals = append(normals, float32(n[0]), float32(n[1]), float32(n[2]))
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}

func normal(t [3]vec3) vec3 {
	u := vec3{t[1][0] - t[0][0], t[1][1] - t[0][1], t[1][2] - t[0][2]}
	v := vec3{t[2][0] - t[0][0], t[2][1] - t[0][1], t[2][2] - t[0][2]}
	n := vec3{u[1]*v[2] - u[2]*v[1], u[2]*v[0] - u[0]*v[2], u[0]*v[1] - u[1]*v[0]}
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	if l == 0 {
		return vec3{}
	}
	return vec3{n[0] / l, n[1] / l, n[2] / l}
}
