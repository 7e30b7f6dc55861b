package layout

import (
	"fmt"
	"iter"
	"math"

	"github.com/chazu/floorgen/pkg/geom"
)

const (
	// Epsilon is the length tolerance, relative to the size of the boundary
	// or unit it is applied to.
	Epsilon = 1e-9

	// AreaTolerance is the clipping tolerance relative to a unit's area. A
	// unit with less visible area is dropped; one missing less than this
	// fraction is kept whole.
	AreaTolerance = 1e-9

	// MaxPlacements bounds the units a single request may produce.
	MaxPlacements = 1_000_000
)

// frame holds a validated request mapped into the pattern frame, where the
// tiling is laid axis-aligned from the boundary's bounding box.
type frame struct {
	boundary geom.Polygon   // boundary in the pattern frame
	area     geom.Rect      // its bounding box
	toWorld  geom.Transform // pattern frame to floor
}

func newFrame(boundary geom.Polygon, rotation float64) frame {
	theta := rotation * math.Pi / 180
	if theta == 0 {
		return frame{boundary: boundary, area: boundary.Bounds()}
	}
	pivot := boundary.Bounds().Min
	// rotate by theta about pivot
	toWorld := geom.Transform{
		Translation: pivot.Sub(pivot.Rotate(theta)),
		Rotation:    theta,
	}
	local := boundary.Inverted(toWorld)
	return frame{boundary: local, area: local.Bounds(), toWorld: toWorld}
}

// prepare validates the request and maps it into the pattern frame.
func prepare(boundary Boundary, spec Spec) (frame, tiling, error) {
	poly, err := boundary.Normalize()
	if err != nil {
		return frame{}, nil, err
	}
	if err := spec.Validate(); err != nil {
		return frame{}, nil, err
	}
	t, err := tilingFor(spec)
	if err != nil {
		return frame{}, nil, err
	}
	f := newFrame(poly, spec.Rotation)
	if n := estimateUnits(f.area, spec); n > MaxPlacements {
		return frame{}, nil, fmt.Errorf("%w: about %.0f units exceed the limit of %d", ErrInvalidSpec, n, MaxPlacements)
	}
	return f, t, nil
}

func estimateUnits(area geom.Rect, spec Spec) float64 {
	return area.Width() * area.Height() / spec.minUnitArea()
}

// Generate lays spec's pattern over boundary and returns the placements as a
// lazy sequence. Units cut by the boundary are emitted already clipped; units
// with no visible area are skipped. All validation happens before Generate
// returns, so iterating the sequence cannot fail. Iterating it again yields
// the same placements.
func Generate(boundary Boundary, spec Spec) (iter.Seq[Placement], error) {
	f, t, err := prepare(boundary, spec)
	if err != nil {
		return nil, err
	}
	Logger().Debug("layout: generate",
		"kind", spec.Kind,
		"vertices", len(f.boundary),
		"area", f.area,
		"rotation", spec.Rotation,
	)

	return func(yield func(Placement) bool) {
		rng := newRand(spec.Seed, streamLayout)
		thick := newRand(spec.Seed, streamThickness)
		var emitted, clipped int
		t.layout(f.area, rng, func(u unit) bool {
			pieces := clipUnit(f.boundary, f.area, u)
			if len(pieces) == 0 {
				return true
			}
			tf := vary(thick, 1, spec.ThicknessVariance)
			toWorld := u.transform().Then(f.toWorld)
			for _, p := range pieces {
				p.ID = placementID(spec.Kind, u.cell, u.index, p.Piece)
				p.Transform = toWorld
				p.ThicknessFactor = tf
				emitted++
				if p.Clipped {
					clipped++
				}
				if !yield(p) {
					return false
				}
			}
			return true
		})
		Logger().Debug("layout: done", "kind", spec.Kind, "placements", emitted, "clipped", clipped)
	}, nil
}

// GenerateFloor is Generate for a loaded floor description.
func GenerateFloor(f Floor) (iter.Seq[Placement], error) {
	return Generate(f.Boundary, f.Spec)
}

// Collect drains seq into a slice. The result is never nil.
func Collect(seq iter.Seq[Placement]) []Placement {
	out := []Placement{}
	for p := range seq {
		out = append(out, p)
	}
	return out
}

// GenerateAll is Generate followed by Collect.
func GenerateAll(boundary Boundary, spec Spec) ([]Placement, error) {
	seq, err := Generate(boundary, spec)
	if err != nil {
		return nil, err
	}
	return Collect(seq), nil
}

// clipUnit intersects u with the boundary, both in the pattern frame, and
// returns one placement per visible piece with footprints in the unit's local
// frame. A concave boundary can cut a unit into several pieces.
func clipUnit(boundary geom.Polygon, bounds geom.Rect, u unit) []Placement {
	tr := u.transform()
	placed := u.shape.Transformed(tr)
	if !placed.Bounds().Intersects(bounds) {
		return nil
	}
	full := u.shape.Area()
	pieces := geom.Intersect(boundary, placed)
	visible := geom.TotalArea(pieces)
	base := Placement{Role: u.role, Cell: u.cell, Index: u.index, FullArea: full}
	switch {
	case visible <= AreaTolerance*full:
		return nil
	case visible >= (1-AreaTolerance)*full:
		base.Footprint = u.shape.Clone()
		return []Placement{base}
	}
	eps := Epsilon * placed.Bounds().Diagonal()
	out := make([]Placement, 0, len(pieces))
	for _, piece := range pieces {
		piece = piece.Clean(eps)
		if len(piece) < 3 || piece.Area() <= AreaTolerance*full {
			continue
		}
		p := base
		p.Footprint = piece.Inverted(tr)
		p.Clipped = true
		p.Piece = len(out)
		out = append(out, p)
	}
	return out
}
