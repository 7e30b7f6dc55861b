package sdfx

import (
	"math"
	"testing"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/kernel"
)

func mustPrism(t *testing.T, k *SdfxKernel, p geom.Polygon, h float64) kernel.Solid {
	t.Helper()
	s, err := k.Prism(p, h)
	if err != nil {
		t.Fatalf("Prism failed: %v", err)
	}
	return s
}

func TestPrism(t *testing.T) {
	k := New()
	board := mustPrism(t, k, geom.RectPolygon(100, 50), 25)
	mesh, err := k.ToMesh(board)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
	t.Logf("prism triangle count: %d", triCount)
}

func TestPrismBoundingBox(t *testing.T) {
	k := New()
	s := mustPrism(t, k, geom.RectPolygon(100, 50).Reversed(), 25)
	min, max := s.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{0, 0, 0}
	expectMax := [3]float64{100, 50, 25}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestPrismRejectsZeroHeight(t *testing.T) {
	if _, err := New().Prism(geom.RectPolygon(1, 1), 0); err == nil {
		t.Fatal("expected an error for a zero height prism")
	}
}

func TestHexagonMesh(t *testing.T) {
	k := New()
	hex := make(geom.Polygon, 6)
	for i := range hex {
		a := math.Pi/6 + float64(i)*math.Pi/3
		hex[i] = geom.V(10*math.Cos(a), 10*math.Sin(a))
	}
	mesh, err := k.ToMesh(mustPrism(t, k, hex, 2))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	min, max := mesh.Bounds()
	if max[2]-min[2] > 2.5 || max[2] < 1.5 {
		t.Errorf("mesh z range %v..%v, want about 0..2", min[2], max[2])
	}
}

func TestUnion(t *testing.T) {
	k := New()
	a := mustPrism(t, k, geom.RectPolygon(50, 50), 50)
	b := k.Translate(mustPrism(t, k, geom.RectPolygon(50, 50), 50), 30, 0, 0)
	u := k.Union(a, b)
	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
	t.Logf("union triangle count: %d", mesh.TriangleCount())
}

func TestTranslate(t *testing.T) {
	k := New()
	translated := k.Translate(mustPrism(t, k, geom.RectPolygon(10, 10), 10), 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	board := mustPrism(t, k, geom.RectPolygon(100, 10), 10)

	// A long board along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(board, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestMeshCells(t *testing.T) {
	k := New()
	tests := []struct {
		name string
		w, l float64
		h    float64
		want int
	}{
		{"cube", 1, 1, 1, minMeshCells},
		{"board", 0.15, 2.4, 0.02, maxMeshCells},
		{"tile", 0.5, 0.5, 0.03125, 64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustPrism(t, k, geom.RectPolygon(tt.w, tt.l), tt.h)
			if got := k.meshCells(unwrap(s)); got != tt.want {
				t.Errorf("meshCells() = %d, want %d", got, tt.want)
			}
		})
	}

	fixed := &SdfxKernel{MeshCells: 77}
	s := mustPrism(t, fixed, geom.RectPolygon(1, 1), 1)
	if got := fixed.meshCells(unwrap(s)); got != 77 {
		t.Errorf("fixed meshCells() = %d, want 77", got)
	}
}
