package layout

import (
	"math/rand/v2"

	"github.com/chazu/floorgen/pkg/geom"
)

// boardCourses lays columns of boards along y. Each column may vary in width
// and each board in length; column k starts frac(k*Offset) of a board length
// early to stagger the end joints.
type boardCourses struct{ s Spec }

func (b boardCourses) layout(area geom.Rect, rng *rand.Rand, emit func(unit) bool) {
	s := b.s
	eps := Epsilon * area.Diagonal()
	lg := s.lengthGap()
	stretch := s.LengthVariance > 0 && s.MaxBoards > 0

	x := area.Min.X
	for col := 0; x < area.Max.X-eps; col++ {
		w := vary(rng, s.UnitWidth, s.WidthVariance)
		y := area.Min.Y - frac(float64(col)*s.Offset)*(s.UnitLength+lg)
		for n := 0; y < area.Max.Y-eps; n++ {
			l := vary(rng, s.UnitLength, s.LengthVariance)
			if stretch && n+1 >= s.MaxBoards {
				// last board of a capped column runs to the far wall
				l = area.Max.Y - y
			}
			u := unit{
				shape: geom.RectPolygon(w, l),
				at:    geom.V(x, y),
				role:  RoleBoard,
				cell:  [2]int{col, n},
			}
			if !emit(u) {
				return
			}
			y += l + lg
		}
		x += w + s.Gap
	}
}

// tileCourses lays rows of tiles along x. Odd rows shift by Offset of a tile
// width, or every row shifts by a random amount around half a tile when
// RandomOffset is set.
type tileCourses struct{ s Spec }

func (t tileCourses) layout(area geom.Rect, rng *rand.Rand, emit func(unit) bool) {
	s := t.s
	eps := Epsilon * area.Diagonal()
	stepX := s.UnitWidth + s.Gap
	shape := geom.RectPolygon(s.UnitWidth, s.UnitLength)

	y := area.Min.Y
	for row := 0; y < area.Max.Y-eps; row++ {
		var shift float64
		switch {
		case s.RandomOffset:
			shift = (0.5 + 0.49*s.OffsetVariance*(2*rng.Float64()-1)) * stepX
		case row%2 == 1:
			shift = s.Offset * stepX
		}
		x := area.Min.X - shift
		for col := 0; x < area.Max.X-eps; col++ {
			u := unit{
				shape: shape,
				at:    geom.V(x, y),
				role:  RoleTile,
				cell:  [2]int{col, row},
			}
			if !emit(u) {
				return
			}
			x += stepX
		}
		y += s.UnitLength + s.Gap
	}
}
