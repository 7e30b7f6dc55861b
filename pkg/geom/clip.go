package geom

import (
	"cmp"
	"slices"

	ctgeom "github.com/ctessum/geom"
)

// Intersect returns the region shared by a and b, one counter-clockwise ring
// per connected piece, ordered bottom to top and then left to right. The
// inputs are simple rings, so the pieces have no holes.
func Intersect(a, b Polygon) []Polygon {
	if len(a) < 3 || len(b) < 3 || !a.Bounds().Intersects(b.Bounds()) {
		return nil
	}
	shared := toPolygonal(a).Intersection(toPolygonal(b))
	pieces := make([]Polygon, 0, len(shared))
	for _, path := range shared {
		p := fromPath(path)
		if len(p) < 3 || p.Area() == 0 {
			continue
		}
		pieces = append(pieces, p.CCW())
	}
	slices.SortFunc(pieces, func(p, q Polygon) int {
		pc, qc := p.Centroid(), q.Centroid()
		return cmp.Or(cmp.Compare(pc.Y, qc.Y), cmp.Compare(pc.X, qc.X))
	})
	return pieces
}

// TotalArea sums the unsigned areas of pieces.
func TotalArea(pieces []Polygon) float64 {
	var sum float64
	for _, p := range pieces {
		sum += p.CCW().Area()
	}
	return sum
}

// OverlapArea returns the area shared by two rings of either winding.
func OverlapArea(a, b Polygon) float64 {
	return TotalArea(Intersect(a, b))
}

func toPolygonal(p Polygon) ctgeom.Polygon {
	path := make(ctgeom.Path, len(p))
	for i, v := range p {
		path[i] = ctgeom.Point{X: v.X, Y: v.Y}
	}
	return ctgeom.Polygon{path}
}

// fromPath converts a result ring, dropping the closing vertex when the
// library repeats the first one.
func fromPath(path ctgeom.Path) Polygon {
	n := len(path)
	if n > 1 && path[0] == path[n-1] {
		n--
	}
	p := make(Polygon, n)
	for i := range n {
		p[i] = Vec2{X: path[i].X, Y: path[i].Y}
	}
	return p
}
