// Package kernel defines the abstract geometry kernel interface.
// Implementations (prism, sdfx) turn placed 2D footprints into solids and
// solids into triangle meshes. The abstraction lets the mesh builder swap
// an exact backend for an SDF one without changing anything else.
package kernel

import "github.com/chazu/floorgen/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Prism extrudes a simple polygon in the XY plane from z=0 to z=height.
	Prism(outline geom.Polygon, height float64) (Solid, error)

	// Union combines two solids. Callers only union disjoint solids.
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
