// Package tessellate turns floor layouts into triangle meshes using a
// geometry kernel. One mesh is produced per placement, plus a grout slab
// under tiled floors.
package tessellate

import (
	"fmt"
	"iter"
	"slices"

	"github.com/chazu/floorgen/pkg/kernel"
	"github.com/chazu/floorgen/pkg/layout"
)

// GroutPartName names the grout slab mesh.
const GroutPartName = "grout"

// Build extrudes every placement to a slab of the given thickness, scaled by
// the placement's thickness factor. The builder is read-only and never
// mutates the placements.
func Build(placements []layout.Placement, thickness float64, k kernel.Kernel) ([]*kernel.Mesh, error) {
	return BuildSeq(slices.Values(placements), thickness, k)
}

// BuildSeq is Build over a lazy placement sequence, so a layout can be
// meshed without collecting it first.
func BuildSeq(placements iter.Seq[layout.Placement], thickness float64, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if !(thickness > 0) {
		return nil, fmt.Errorf("tessellate: thickness must be positive, got %g", thickness)
	}
	meshes := []*kernel.Mesh{}
	for p := range placements {
		mesh, err := buildPlacement(k, p, thickness)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// placedSolid extrudes one placement and moves it onto the floor.
func placedSolid(k kernel.Kernel, p layout.Placement, thickness float64) (kernel.Solid, error) {
	h := thickness
	if p.ThicknessFactor > 0 {
		h *= p.ThicknessFactor
	}
	solid, err := k.Prism(p.Footprint, h)
	if err != nil {
		return nil, fmt.Errorf("tessellate: placement %s: %w", p.Name(), err)
	}

	// Apply rotation first, then translation.
	if deg := p.Transform.RotationDegrees(); deg != 0 {
		solid = k.Rotate(solid, 0, 0, deg)
	}
	if t := p.Transform.Translation; t.X != 0 || t.Y != 0 {
		solid = k.Translate(solid, t.X, t.Y, 0)
	}
	return solid, nil
}

// buildPlacement creates the slab mesh for one placement.
func buildPlacement(k kernel.Kernel, p layout.Placement, thickness float64) (*kernel.Mesh, error) {
	solid, err := placedSolid(k, p, thickness)
	if err != nil {
		return nil, err
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for placement %s: %w", p.Name(), err)
	}
	mesh.PartName = p.Name()
	return mesh, nil
}

// Grout builds the mortar slab covering the whole boundary up to height.
func Grout(boundary layout.Boundary, height float64, k kernel.Kernel) (*kernel.Mesh, error) {
	outline, err := boundary.Normalize()
	if err != nil {
		return nil, fmt.Errorf("tessellate: grout: %w", err)
	}
	solid, err := k.Prism(outline, height)
	if err != nil {
		return nil, fmt.Errorf("tessellate: grout: %w", err)
	}
	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for grout: %w", err)
	}
	mesh.PartName = GroutPartName
	return mesh, nil
}

// BuildFloor generates the floor's layout and meshes it with BuildLayout.
func BuildFloor(f layout.Floor, k kernel.Kernel) ([]*kernel.Mesh, error) {
	placements, err := layout.GenerateAll(f.Boundary, f.Spec)
	if err != nil {
		return nil, err
	}
	return BuildLayout(f, placements, k)
}

// BuildLayout meshes placements already generated for f. Tiled floors with
// a gap get a grout slab of Thickness - MortarDepth as the last mesh.
func BuildLayout(f layout.Floor, placements []layout.Placement, k kernel.Kernel) ([]*kernel.Mesh, error) {
	meshes, err := Build(placements, f.Spec.Thickness, k)
	if err != nil {
		return nil, err
	}
	if needsGrout(f.Spec) {
		g, err := Grout(f.Boundary, f.Spec.Thickness-f.Spec.MortarDepth, k)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, g)
	}
	layout.Logger().Debug("tessellate: floor built", "name", f.Name, "meshes", len(meshes))
	return meshes, nil
}

func needsGrout(s layout.Spec) bool {
	return s.Kind.Material() == layout.Ceramic && s.Gap > 0 && s.Thickness-s.MortarDepth > 0
}

// BuildMerged unions every slab of the layout into one solid and meshes it
// once. With the sdfx kernel this yields a single watertight surface.
func BuildMerged(placements iter.Seq[layout.Placement], thickness float64, name string, k kernel.Kernel) (*kernel.Mesh, error) {
	if !(thickness > 0) {
		return nil, fmt.Errorf("tessellate: thickness must be positive, got %g", thickness)
	}
	var merged kernel.Solid
	for p := range placements {
		solid, err := placedSolid(k, p, thickness)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = solid
		} else {
			merged = k.Union(merged, solid)
		}
	}
	if merged == nil {
		return &kernel.Mesh{PartName: name}, nil
	}
	mesh, err := k.ToMesh(merged)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for %s: %w", name, err)
	}
	mesh.PartName = name
	return mesh, nil
}
