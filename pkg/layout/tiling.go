package layout

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/chazu/floorgen/pkg/geom"
)

// unit is one footprint placed in the pattern frame, before clipping.
type unit struct {
	shape geom.Polygon // convex, counter-clockwise, local frame
	at    geom.Vec2
	angle float64 // radians
	role  Role
	cell  [2]int
	index int
}

func (u unit) transform() geom.Transform {
	return geom.Transform{Translation: u.at, Rotation: u.angle}
}

// tiling lays units over area, which is the boundary's bounding box in the
// pattern frame. Units must cover area and must not overlap. emit returns
// false when the consumer stops early.
type tiling interface {
	layout(area geom.Rect, rng *rand.Rand, emit func(unit) bool)
}

func tilingFor(s Spec) (tiling, error) {
	switch s.Kind {
	case Boards:
		return boardCourses{s}, nil
	case Tile:
		return tileCourses{s}, nil
	case Parquet:
		return parquetLattice(s), nil
	case Herringbone:
		return herringboneLattice(s), nil
	case HerringboneParquet:
		return chevronLattice(s), nil
	case Hopscotch:
		return hopscotchLattice(s), nil
	case SteppingStone:
		return steppingStoneLattice(s), nil
	case Hexagon:
		return hexagonLattice(s), nil
	case Windmill:
		return windmillLattice(s), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, s.Kind)
	}
}

// ----------------------------------------------------------------------------
// Random source
// ----------------------------------------------------------------------------

// Independent streams keep the thickness draw from shifting the layout when
// thickness variance is toggled.
const (
	streamLayout    = 0x6c61796f7574
	streamThickness = 0x746869636b
)

func newRand(seed, stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, stream))
}

// vary returns base perturbed uniformly by up to 99% of variance*base, the
// same bound the variance sliders have always used. No draw is taken when
// variance is zero.
func vary(rng *rand.Rand, base, variance float64) float64 {
	if variance <= 0 {
		return base
	}
	return base * (1 + 0.99*variance*(2*rng.Float64()-1))
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}

// ----------------------------------------------------------------------------
// Periodic lattice
// ----------------------------------------------------------------------------

// lattice repeats a motif over the cells origin + i*u + j*v. motif returns the
// units of cell (i, j) relative to the cell origin; it may vary with the cell
// parity but its extent must not. rotation turns basis and motif together.
type lattice struct {
	u, v     geom.Vec2
	rotation float64
	motif    func(i, j int) []unit
}

func (l lattice) cell(i, j int) []unit {
	units := l.motif(i, j)
	if l.rotation == 0 {
		return units
	}
	for k := range units {
		units[k].at = units[k].at.Rotate(l.rotation)
		units[k].angle += l.rotation
	}
	return units
}

// reach is the extent of one cell's units relative to its origin.
func (l lattice) reach() geom.Rect {
	var r geom.Rect
	first := true
	for i := range 2 {
		for j := range 2 {
			for _, u := range l.cell(i, j) {
				b := u.shape.Transformed(u.transform()).Bounds()
				if first {
					r, first = b, false
				} else {
					r = r.Union(b)
				}
			}
		}
	}
	return r
}

func (l lattice) layout(area geom.Rect, _ *rand.Rand, emit func(unit) bool) {
	u, v := l.u.Rotate(l.rotation), l.v.Rotate(l.rotation)
	det := u.Cross(v)
	reach := l.reach()
	origin := area.Min

	// Cell origins whose reach can touch area lie in this rectangle.
	span := geom.Rect{
		Min: area.Min.Sub(reach.Max).Sub(origin),
		Max: area.Max.Sub(reach.Min).Sub(origin),
	}
	iMin, iMax := math.Inf(1), math.Inf(-1)
	jMin, jMax := math.Inf(1), math.Inf(-1)
	for _, c := range span.Corners() {
		fi := c.Cross(v) / det
		fj := u.Cross(c) / det
		iMin, iMax = math.Min(iMin, fi), math.Max(iMax, fi)
		jMin, jMax = math.Min(jMin, fj), math.Max(jMax, fj)
	}

	for j := int(math.Floor(jMin)) - 1; j <= int(math.Ceil(jMax))+1; j++ {
		for i := int(math.Floor(iMin)) - 1; i <= int(math.Ceil(iMax))+1; i++ {
			o := origin.Add(u.Scale(float64(i))).Add(v.Scale(float64(j)))
			cellBounds := geom.Rect{Min: o.Add(reach.Min), Max: o.Add(reach.Max)}
			if !cellBounds.Intersects(area) {
				continue
			}
			for k, un := range l.cell(i, j) {
				un.at = un.at.Add(o)
				un.cell = [2]int{i, j}
				un.index = k
				if !emit(un) {
					return
				}
			}
		}
	}
}
