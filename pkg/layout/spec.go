package layout

import (
	"errors"
	"fmt"
	"math"
)

// Imperial units in metres.
const (
	Inch = 0.0254
	Foot = 0.3048
)

// Spec is the full parameter set of one pattern. Lengths are in metres.
// The zero value of every optional field disables that feature.
type Spec struct {
	Kind Kind `json:"kind" toml:"kind"`

	// UnitWidth is the board or tile size along x before rotation. For
	// hexagons it is the distance across flats.
	UnitWidth float64 `json:"unit_width" toml:"unit_width"`
	// UnitLength is the board or tile size along y. Parquet derives its
	// board length from the group and hexagons ignore it.
	UnitLength float64 `json:"unit_length" toml:"unit_length"`

	// Gap separates neighbouring units. LengthGap overrides it between
	// boards laid end to end; zero means Gap.
	Gap       float64 `json:"gap" toml:"gap"`
	LengthGap float64 `json:"length_gap,omitempty" toml:"length_gap"`

	// Offset shifts successive courses by a fraction of the repeat, in [0, 1).
	Offset float64 `json:"offset" toml:"offset"`
	// Rotation turns the pattern counter-clockwise, in degrees, about the
	// minimum corner of the boundary's bounding box.
	Rotation float64 `json:"rotation" toml:"rotation"`

	BoardsInGroup int `json:"boards_in_group,omitempty" toml:"boards_in_group"`
	// MaxBoards caps the boards per column when length variance is on; the
	// last one runs to the far wall. Zero means no cap.
	MaxBoards int `json:"max_boards,omitempty" toml:"max_boards"`

	// Variances are fractions in [0, 1] of the nominal dimension.
	WidthVariance     float64 `json:"width_variance,omitempty" toml:"width_variance"`
	LengthVariance    float64 `json:"length_variance,omitempty" toml:"length_variance"`
	ThicknessVariance float64 `json:"thickness_variance,omitempty" toml:"thickness_variance"`
	OffsetVariance    float64 `json:"offset_variance,omitempty" toml:"offset_variance"`
	RandomOffset      bool    `json:"random_offset,omitempty" toml:"random_offset"`
	Seed              uint64  `json:"seed,omitempty" toml:"seed"`

	Thickness   float64 `json:"thickness" toml:"thickness"`
	MortarDepth float64 `json:"mortar_depth,omitempty" toml:"mortar_depth"`
}

// DefaultSpec returns the stock parameters for kind: six inch boards eight
// feet long, two feet in herringbone, one foot by eight inch tiles laid
// without offset, an eighth inch gap and a one inch slab.
func DefaultSpec(kind Kind) Spec {
	s := Spec{
		Kind:           kind,
		Gap:            Inch / 8,
		Offset:         0.5,
		BoardsInGroup:  4,
		MaxBoards:      2,
		OffsetVariance: 0.5,
		Seed:           1,
		Thickness:      Inch,
		MortarDepth:    Inch / 4,
	}
	switch kind.Material() {
	case Wood:
		s.UnitWidth = 6 * Inch
		s.UnitLength = 8 * Foot
		s.MortarDepth = 0
	default:
		s.UnitWidth = Foot
		s.UnitLength = 8 * Inch
	}
	switch kind {
	case Boards:
		s.Offset = 0
		s.LengthGap = Inch / 8
	case Herringbone, HerringboneParquet:
		s.UnitLength = 2 * Foot
	case Tile:
		s.Offset = 0
	case Parquet:
		s.UnitLength = 0
	case Hexagon:
		s.UnitLength = s.UnitWidth
	}
	return s
}

func (s Spec) lengthGap() float64 {
	if s.LengthGap > 0 {
		return s.LengthGap
	}
	return s.Gap
}

func (s Spec) boardsInGroup() int {
	if s.BoardsInGroup < 1 {
		return 1
	}
	return s.BoardsInGroup
}

// Scaled returns a copy with every length multiplied by k.
func (s Spec) Scaled(k float64) Spec {
	s.UnitWidth *= k
	s.UnitLength *= k
	s.Gap *= k
	s.LengthGap *= k
	s.Thickness *= k
	s.MortarDepth *= k
	return s
}

// Validate checks every parameter against its valid range. Errors wrap
// ErrUnsupportedKind or ErrInvalidSpec.
func (s Spec) Validate() error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: %s", ErrUnsupportedKind, s.Kind)
	}
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSpec}, args...)...))
	}
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			bad("%s must be a positive length, got %g", name, v)
		}
	}
	nonNegative := func(name string, v float64) {
		if !(v >= 0) || math.IsInf(v, 0) {
			bad("%s must be >= 0, got %g", name, v)
		}
	}
	fraction := func(name string, v float64) {
		if !(v >= 0 && v <= 1) {
			bad("%s must be in [0, 1], got %g", name, v)
		}
	}

	positive("unit width", s.UnitWidth)
	if s.Kind != Hexagon && s.Kind != Parquet {
		positive("unit length", s.UnitLength)
	}
	nonNegative("gap", s.Gap)
	nonNegative("length gap", s.LengthGap)
	if s.Gap >= s.UnitWidth {
		bad("gap %g must be smaller than unit width %g", s.Gap, s.UnitWidth)
	}
	if s.Kind != Hexagon && s.Kind != Parquet && s.Gap >= s.UnitLength {
		bad("gap %g must be smaller than unit length %g", s.Gap, s.UnitLength)
	}
	if s.Kind == Boards && s.lengthGap() >= s.UnitLength {
		bad("length gap %g must be smaller than unit length %g", s.lengthGap(), s.UnitLength)
	}
	if !(s.Offset >= 0 && s.Offset < 1) {
		bad("offset must be in [0, 1), got %g", s.Offset)
	}
	if math.IsNaN(s.Rotation) || math.IsInf(s.Rotation, 0) {
		bad("rotation must be finite")
	}
	if s.Kind == Parquet && s.BoardsInGroup < 1 {
		bad("boards in group must be >= 1, got %d", s.BoardsInGroup)
	}
	if s.MaxBoards < 0 {
		bad("max boards must be >= 0, got %d", s.MaxBoards)
	}
	fraction("width variance", s.WidthVariance)
	fraction("length variance", s.LengthVariance)
	fraction("thickness variance", s.ThicknessVariance)
	fraction("offset variance", s.OffsetVariance)
	nonNegative("thickness", s.Thickness)
	nonNegative("mortar depth", s.MortarDepth)
	if s.MortarDepth > 0 && s.MortarDepth >= s.Thickness {
		bad("mortar depth %g must be smaller than thickness %g", s.MortarDepth, s.Thickness)
	}
	return errors.Join(errs...)
}

// minUnitArea is the smallest footprint the kind emits, used to bound the
// number of placements a request can produce.
func (s Spec) minUnitArea() float64 {
	w, l, g := s.UnitWidth, s.UnitLength, s.Gap
	switch s.Kind {
	case Hexagon:
		return math.Sqrt(3) / 2 * w * w
	case Parquet:
		n := float64(s.boardsInGroup())
		return w * (n*w + (n-1)*g)
	case Hopscotch, SteppingStone, Windmill:
		return (w - g) / 2 * (l - g) / 2
	case Boards:
		return w * l * (1 - 0.99*s.WidthVariance) * (1 - 0.99*s.LengthVariance)
	default:
		return w * l
	}
}
