// Package geom provides the planar geometry used by the layout generator:
// vectors, rectangles, polygons, rigid transforms, clipping and
// triangulation. All coordinates are in metres.
//
// Vec2 and Rect are the JSON wire types; their arithmetic is done by the sdfx
// vector, box and matrix types.
package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Vec2 is a 2D point or direction.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) vec() v2.Vec { return v2.Vec(v) }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(v.vec().Add(o.vec()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(v.vec().Sub(o.vec()))
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2(v.vec().MulScalar(s))
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 {
	return v.vec().Dot(o.vec())
}

// Cross returns the z component of the 3D cross product.
// It is positive when o lies counter-clockwise of v.
func (v Vec2) Cross(o Vec2) float64 {
	return v.vec().Cross(o.vec())
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return v.vec().Length()
}

// Rotate rotates v counter-clockwise about the origin by theta radians.
func (v Vec2) Rotate(theta float64) Vec2 {
	if theta == 0 {
		return v
	}
	return Vec2(sdf.Rotate2d(theta).MulPosition(v.vec()))
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Near reports whether v and o are within eps of each other on both axes.
func (v Vec2) Near(o Vec2, eps float64) bool {
	return v.vec().Equals(o.vec(), eps)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

func (r Rect) box() sdf.Box2 {
	return sdf.Box2{Min: r.Min.vec(), Max: r.Max.vec()}
}

func rectOf(b sdf.Box2) Rect {
	return Rect{Min: Vec2(b.Min), Max: Vec2(b.Max)}
}

// Width returns the extent along x.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the extent along y.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Diagonal returns the length of the rectangle's diagonal.
func (r Rect) Diagonal() float64 { return r.box().Size().Length() }

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return rectOf(r.box().Enlarge(v2.Vec{X: 2 * d, Y: 2 * d}))
}

// Include grows the rectangle to cover p.
func (r Rect) Include(p Vec2) Rect {
	return rectOf(r.box().Include(p.vec()))
}

// Intersects reports whether the two rectangles overlap with positive area.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Contains reports whether p lies inside r or on its border.
func (r Rect) Contains(p Vec2) bool {
	return r.box().Contains(p.vec())
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return rectOf(r.box().Extend(o.box()))
}

// Corners returns the four corners counter-clockwise from Min.
func (r Rect) Corners() [4]Vec2 {
	v := r.box().Vertices()
	return [4]Vec2{Vec2(v[0]), Vec2(v[1]), Vec2(v[3]), Vec2(v[2])}
}

// Transform is a rigid 2D transform: rotate about the origin, then translate.
type Transform struct {
	Translation Vec2    `json:"translation"`
	Rotation    float64 `json:"rotation"` // radians, counter-clockwise
}

// Matrix returns the homogeneous matrix of t.
func (t Transform) Matrix() sdf.M33 {
	return sdf.Translate2d(t.Translation.vec()).Mul(sdf.Rotate2d(t.Rotation))
}

// InverseMatrix returns the homogeneous matrix undoing t.
func (t Transform) InverseMatrix() sdf.M33 {
	return sdf.Rotate2d(-t.Rotation).Mul(sdf.Translate2d(t.Translation.vec().Neg()))
}

// Apply maps a local point into the parent frame.
func (t Transform) Apply(p Vec2) Vec2 {
	return Vec2(t.Matrix().MulPosition(p.vec()))
}

// Invert maps a parent-frame point back into the local frame.
func (t Transform) Invert(p Vec2) Vec2 {
	return Vec2(t.InverseMatrix().MulPosition(p.vec()))
}

// Then returns the transform equivalent to applying t and then o.
func (t Transform) Then(o Transform) Transform {
	return Transform{
		Translation: o.Apply(t.Translation),
		Rotation:    t.Rotation + o.Rotation,
	}
}

// RotationDegrees returns the rotation in degrees.
func (t Transform) RotationDegrees() float64 {
	return t.Rotation * 180 / math.Pi
}
