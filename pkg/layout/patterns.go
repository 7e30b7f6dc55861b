package layout

import (
	"math"

	"github.com/chazu/floorgen/pkg/geom"
)

// Small tiles in the composite tile patterns are half a large tile, less the
// gap between them.
func smallTile(s Spec) (sw, sl float64) {
	return (s.UnitWidth - s.Gap) / 2, (s.UnitLength - s.Gap) / 2
}

func rect(w, l, x, y float64, role Role) unit {
	return unit{shape: geom.RectPolygon(w, l), at: geom.V(x, y), role: role}
}

// parquetLattice alternates square blocks of N boards, vertical and
// horizontal like a checkerboard. The board length equals the block side.
func parquetLattice(s Spec) lattice {
	w, g := s.UnitWidth, s.Gap
	n := s.boardsInGroup()
	side := float64(n)*w + float64(n-1)*g
	step := side + g
	return lattice{
		u: geom.V(step, 0),
		v: geom.V(0, step),
		motif: func(i, j int) []unit {
			units := make([]unit, n)
			for k := range n {
				off := float64(k) * (w + g)
				if (i+j)&1 == 0 {
					units[k] = rect(w, side, off, 0, RoleBoard)
					continue
				}
				// rotated a quarter turn, [0,w]x[0,side] lands on [-side,0]x[0,w]
				u := rect(w, side, side, off, RoleBoard)
				u.angle = math.Pi / 2
				units[k] = u
			}
			return units
		},
	}
}

// herringboneLattice is the classic 90 degree herringbone: each cell holds a
// vertical board and a horizontal one butted against its top right, the
// cells step down a staircase, and the whole pattern sits at 45 degrees.
func herringboneLattice(s Spec) lattice {
	w, l, g := s.UnitWidth, s.UnitLength, s.Gap
	return lattice{
		u:        geom.V(w+g, -(w + g)),
		v:        geom.V(l+w+2*g, l-w),
		rotation: math.Pi / 4,
		motif: func(i, j int) []unit {
			vertical := rect(w, l, 0, 0, RoleBoard)
			horizontal := rect(w, l, w+g+l, l-w, RoleBoard)
			horizontal.angle = math.Pi / 2
			return []unit{vertical, horizontal}
		},
	}
}

// chevronLattice is herringbone parquet: boards with 45 degree mitred ends
// meeting on a vertical seam, stacked into chevron columns.
func chevronLattice(s Spec) lattice {
	w, l, g := s.UnitWidth, s.UnitLength, s.Gap
	c := l / math.Sqrt2
	h := w * math.Sqrt2
	left := geom.Polygon{{0, 0}, {c, c}, {c, c + h}, {0, h}}
	right := geom.Polygon{{c + g, c}, {2*c + g, 0}, {2*c + g, h}, {c + g, c + h}}
	return lattice{
		u: geom.V(2*c+2*g, 0),
		v: geom.V(0, h+g*math.Sqrt2),
		motif: func(i, j int) []unit {
			return []unit{
				{shape: left, role: RoleBoard},
				{shape: right, role: RoleBoard},
			}
		},
	}
}

// hopscotchLattice pairs a large tile with a small one at its top right; the
// next pair starts below the small tile so the pattern pinwheels.
func hopscotchLattice(s Spec) lattice {
	w, l, g := s.UnitWidth, s.UnitLength, s.Gap
	sw, sl := smallTile(s)
	return lattice{
		u: geom.V(w+g, sl+g),
		v: geom.V(-(sw + g), l+g),
		motif: func(i, j int) []unit {
			return []unit{
				rect(w, l, 0, 0, RoleTile),
				rect(sw, sl, w-sw, l+g, RoleSmallTile),
			}
		},
	}
}

// steppingStoneLattice sets a large tile with two small tiles stacked on its
// right and a row of three small tiles above.
func steppingStoneLattice(s Spec) lattice {
	w, l, g := s.UnitWidth, s.UnitLength, s.Gap
	sw, sl := smallTile(s)
	return lattice{
		u: geom.V(w+sw+2*g, 0),
		v: geom.V(0, l+sl+2*g),
		motif: func(i, j int) []unit {
			return []unit{
				rect(w, l, 0, 0, RoleTile),
				rect(sw, sl, w+g, 0, RoleSmallTile),
				rect(sw, sl, w+g, sl+g, RoleSmallTile),
				rect(sw, sl, 0, l+g, RoleSmallTile),
				rect(sw, sl, sw+g, l+g, RoleSmallTile),
				rect(sw, sl, 2*(sw+g), l+g, RoleSmallTile),
			}
		},
	}
}

// hexagonLattice packs pointy-top hexagons UnitWidth across the flats on a
// triangular lattice.
func hexagonLattice(s Spec) lattice {
	w, g := s.UnitWidth, s.Gap
	r := w / math.Sqrt(3)
	hex := make(geom.Polygon, 6)
	for k := range hex {
		a := math.Pi/6 + float64(k)*math.Pi/3
		hex[k] = geom.V(r*math.Cos(a), r*math.Sin(a))
	}
	step := w + g
	return lattice{
		u: geom.V(step, 0),
		v: geom.V(step/2, step*math.Sqrt(3)/2),
		motif: func(i, j int) []unit {
			return []unit{{shape: hex, role: RoleTile}}
		},
	}
}

// windmillLattice turns four long tiles around a small square centre.
func windmillLattice(s Spec) lattice {
	w, l, g := s.UnitWidth, s.UnitLength, s.Gap
	sw, sl := smallTile(s)
	return lattice{
		u: geom.V(w+sw+2*g, 0),
		v: geom.V(0, l+sl+2*g),
		motif: func(i, j int) []unit {
			return []unit{
				rect(w, sl, 0, 0, RoleTile),             // bottom
				rect(sw, l, w+g, 0, RoleTile),           // right
				rect(w, sl, sw+g, l+g, RoleTile),        // top
				rect(sw, l, 0, sl+g, RoleTile),          // left
				rect(sw, sl, sw+g, sl+g, RoleSmallTile), // centre
			}
		},
	}
}
