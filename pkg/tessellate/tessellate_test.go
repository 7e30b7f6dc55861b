package tessellate_test

import (
	"math"
	"slices"
	"testing"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/kernel"
	"github.com/chazu/floorgen/pkg/kernel/prism"
	"github.com/chazu/floorgen/pkg/kernel/sdfx"
	"github.com/chazu/floorgen/pkg/layout"
	"github.com/chazu/floorgen/pkg/tessellate"
)

// newKernel returns a fresh exact kernel for testing.
func newKernel() kernel.Kernel {
	return prism.New()
}

// makeBoard creates an unclipped w x l board placement.
func makeBoard(w, l float64, at geom.Vec2, rotation float64) layout.Placement {
	return layout.Placement{
		Role:            layout.RoleBoard,
		Footprint:       geom.RectPolygon(w, l),
		Transform:       geom.Transform{Translation: at, Rotation: rotation},
		ThicknessFactor: 1,
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestSingleBoard(t *testing.T) {
	k := newKernel()
	meshes, err := tessellate.Build([]layout.Placement{makeBoard(1, 4, geom.V(2, 3), 0)}, 0.02, k)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}
	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	min, max := m.Bounds()
	want := [2][3]float32{{2, 3, 0}, {3, 7, 0.02}}
	for a := range 3 {
		if !near(min[a], want[0][a]) || !near(max[a], want[1][a]) {
			t.Fatalf("mesh bounds = %v %v, want %v", min, max, want)
		}
	}
	if m.PartName == "" || m.PartName[:6] != "board-" {
		t.Errorf("PartName = %q, want board-<id>", m.PartName)
	}
}

func TestRotationBeforeTranslation(t *testing.T) {
	k := newKernel()
	p := makeBoard(1, 4, geom.V(10, 0), math.Pi/2)
	meshes, err := tessellate.Build([]layout.Placement{p}, 0.02, k)
	if err != nil {
		t.Fatal(err)
	}
	min, max := meshes[0].Bounds()
	// rotated a quarter turn the board spans x in [-4, 0], then moves by 10
	if !near(min[0], 6) || !near(max[0], 10) || !near(min[1], 0) || !near(max[1], 1) {
		t.Errorf("mesh bounds = %v %v, want x 6..10, y 0..1", min, max)
	}
}

func TestThicknessFactor(t *testing.T) {
	k := newKernel()
	p := makeBoard(1, 1, geom.V(0, 0), 0)
	p.ThicknessFactor = 1.5
	meshes, err := tessellate.Build([]layout.Placement{p}, 0.02, k)
	if err != nil {
		t.Fatal(err)
	}
	_, max := meshes[0].Bounds()
	if !near(max[2], 0.03) {
		t.Errorf("slab top = %v, want 0.03", max[2])
	}
}

func TestInvalidThickness(t *testing.T) {
	k := newKernel()
	if _, err := tessellate.Build([]layout.Placement{makeBoard(1, 1, geom.V(0, 0), 0)}, 0, k); err == nil {
		t.Fatal("expected error for zero thickness")
	}
}

func TestDegenerateFootprint(t *testing.T) {
	k := newKernel()
	p := makeBoard(1, 1, geom.V(0, 0), 0)
	p.Footprint = geom.Polygon{{0, 0}, {1, 0}}
	if _, err := tessellate.Build([]layout.Placement{p}, 0.02, k); err == nil {
		t.Fatal("expected error for a two-vertex footprint")
	}
}

func TestEmptyLayout(t *testing.T) {
	meshes, err := tessellate.Build(nil, 0.02, newKernel())
	if err != nil {
		t.Fatal(err)
	}
	if meshes == nil || len(meshes) != 0 {
		t.Errorf("Build(nil) = %v, want empty non-nil slice", meshes)
	}
}

func TestBuildFloorTileAddsGrout(t *testing.T) {
	spec := layout.DefaultSpec(layout.Tile)
	f := layout.Floor{Name: "bath", Boundary: layout.RectBoundary(1.2, 0.9), Spec: spec}
	meshes, err := tessellate.BuildFloor(f, newKernel())
	if err != nil {
		t.Fatalf("BuildFloor error: %v", err)
	}
	placements, _ := layout.GenerateAll(f.Boundary, f.Spec)
	if len(meshes) != len(placements)+1 {
		t.Fatalf("got %d meshes, want %d placements + grout", len(meshes), len(placements))
	}
	grout := meshes[len(meshes)-1]
	if grout.PartName != tessellate.GroutPartName {
		t.Fatalf("last mesh is %q, want grout", grout.PartName)
	}
	_, max := grout.Bounds()
	if !near(max[2], float32(spec.Thickness-spec.MortarDepth)) {
		t.Errorf("grout top = %v, want %v", max[2], spec.Thickness-spec.MortarDepth)
	}
}

func TestBuildFloorWoodHasNoGrout(t *testing.T) {
	f := layout.Floor{Boundary: layout.RectBoundary(1, 1), Spec: layout.DefaultSpec(layout.Herringbone)}
	meshes, err := tessellate.BuildFloor(f, newKernel())
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range meshes {
		if m.PartName == tessellate.GroutPartName {
			t.Fatal("wood floor got a grout slab")
		}
	}
}

func TestBuildFloorInvalid(t *testing.T) {
	f := layout.Floor{Boundary: layout.Boundary{{0, 0}, {1, 1}}, Spec: layout.DefaultSpec(layout.Tile)}
	if _, err := tessellate.BuildFloor(f, newKernel()); err == nil {
		t.Fatal("expected error for a degenerate boundary")
	}
}

func TestClippedPiecesMesh(t *testing.T) {
	// An L-shaped room clips tiles into concave pieces at the inner corner.
	room := layout.Boundary{{0, 0}, {1.05, 0}, {1.05, 0.45}, {0.45, 0.45}, {0.45, 1.05}, {0, 1.05}}
	spec := layout.Spec{Kind: layout.Tile, UnitWidth: 0.6, UnitLength: 0.6, Thickness: 0.01}
	placements, err := layout.GenerateAll(room, spec)
	if err != nil {
		t.Fatal(err)
	}
	meshes, err := tessellate.Build(placements, spec.Thickness, newKernel())
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(meshes) != len(placements) {
		t.Fatalf("got %d meshes for %d placements", len(meshes), len(placements))
	}
	names := make([]string, len(meshes))
	for i, m := range meshes {
		names[i] = m.PartName
	}
	slices.Sort(names)
	if len(slices.Compact(names)) != len(meshes) {
		t.Error("mesh part names are not unique")
	}
}

func TestSplitUnitMeshesStayInsideTheRoom(t *testing.T) {
	// The notch in the top middle cuts the upper tiles in two.
	room := layout.Boundary{{0, 0}, {3, 0}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3}}
	f := layout.Floor{
		Name:     "u",
		Boundary: room,
		Spec:     layout.Spec{Kind: layout.Tile, UnitWidth: 2.9, UnitLength: 0.9, Gap: 0.01, Thickness: 0.01},
	}
	meshes, err := tessellate.BuildFloor(f, newKernel())
	if err != nil {
		t.Fatalf("BuildFloor error: %v", err)
	}
	for _, m := range meshes {
		if m.PartName == tessellate.GroutPartName {
			continue
		}
		inNotch := 0
		for tri := 0; tri+2 < len(m.Indices); tri += 3 {
			var cx, cy float32
			for _, idx := range m.Indices[tri : tri+3] {
				cx += m.Vertices[idx*3] / 3
				cy += m.Vertices[idx*3+1] / 3
			}
			if cx > 1+1e-4 && cx < 2-1e-4 && cy > 1+1e-4 {
				inNotch++
			}
		}
		if inNotch > 0 {
			t.Errorf("mesh %s has %d triangles in the notch", m.PartName, inNotch)
		}
	}
}

func TestBuildMerged(t *testing.T) {
	spec := layout.Spec{Kind: layout.Tile, UnitWidth: 0.5, UnitLength: 0.5, Gap: 0.01, Thickness: 0.02}
	seq, err := layout.Generate(layout.RectBoundary(1, 1), spec)
	if err != nil {
		t.Fatal(err)
	}
	k := newKernel()
	merged, err := tessellate.BuildMerged(seq, spec.Thickness, "floor", k)
	if err != nil {
		t.Fatal(err)
	}
	if merged.PartName != "floor" {
		t.Errorf("PartName = %q, want floor", merged.PartName)
	}
	// four exact tile prisms of 12 triangles each
	if merged.TriangleCount() != 48 {
		t.Errorf("merged triangle count = %d, want 48", merged.TriangleCount())
	}
}

func TestBuildWithSdfx(t *testing.T) {
	k := sdfx.New()
	meshes, err := tessellate.Build([]layout.Placement{makeBoard(0.2, 0.6, geom.V(1, 1), math.Pi/4)}, 0.05, k)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if meshes[0].IsEmpty() {
		t.Fatal("sdfx mesh is empty")
	}
	min, max := meshes[0].Bounds()
	if min[0] < 0.4 || max[0] > 1.3 || min[2] < -0.01 || max[2] > 0.06 {
		t.Errorf("sdfx mesh bounds %v %v out of range", min, max)
	}
}
