package layout

import (
	"fmt"
	"math"

	"github.com/chazu/floorgen/pkg/geom"
)

// Boundary is the closed outline of the floor, in metres. Either winding is
// accepted.
type Boundary []geom.Vec2

// RectBoundary returns the w by l rectangle with its minimum corner at the
// origin.
func RectBoundary(w, l float64) Boundary {
	return Boundary(geom.RectPolygon(w, l))
}

// Polygon returns the boundary as a polygon sharing its storage.
func (b Boundary) Polygon() geom.Polygon {
	return geom.Polygon(b)
}

// Area returns the unsigned enclosed area.
func (b Boundary) Area() float64 {
	return math.Abs(geom.Polygon(b).Area())
}

// Scaled returns a copy with every vertex multiplied by k.
func (b Boundary) Scaled(k float64) Boundary {
	return Boundary(geom.Polygon(b).Scaled(k))
}

// Normalize validates b and returns a cleaned counter-clockwise copy.
// Errors wrap ErrInvalidBoundary.
func (b Boundary) Normalize() (geom.Polygon, error) {
	if len(b) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 vertices, got %d", ErrInvalidBoundary, len(b))
	}
	for i, v := range b {
		if !v.IsFinite() {
			return nil, fmt.Errorf("%w: vertex %d is not finite", ErrInvalidBoundary, i)
		}
	}
	p := geom.Polygon(b)
	scale := p.Bounds().Diagonal()
	if scale == 0 {
		return nil, fmt.Errorf("%w: all vertices coincide", ErrInvalidBoundary)
	}
	p = p.Clean(Epsilon * scale)
	if len(p) < 3 {
		return nil, fmt.Errorf("%w: collinear vertices", ErrInvalidBoundary)
	}
	if math.Abs(p.Area()) <= AreaTolerance*scale*scale {
		return nil, fmt.Errorf("%w: zero area", ErrInvalidBoundary)
	}
	if p.SelfIntersects() {
		return nil, fmt.Errorf("%w: edges intersect", ErrInvalidBoundary)
	}
	return p.CCW(), nil
}

// Validate reports whether b is usable as a boundary.
func (b Boundary) Validate() error {
	_, err := b.Normalize()
	return err
}
