package layout

import (
	"fmt"
	"strings"
)

// Kind selects the tiling rule.
type Kind int

const (
	Boards Kind = iota
	Parquet
	HerringboneParquet
	Herringbone
	Tile
	Hopscotch
	SteppingStone
	Hexagon
	Windmill

	numKinds
)

var kindNames = [numKinds]string{
	Boards:             "boards",
	Parquet:            "parquet",
	HerringboneParquet: "herringbone_parquet",
	Herringbone:        "herringbone",
	Tile:               "tile",
	Hopscotch:          "hopscotch",
	SteppingStone:      "stepping_stone",
	Hexagon:            "hexagon",
	Windmill:           "windmill",
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the nine known kinds.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Material is the family a kind belongs to. Wood kinds are laid without grout.
type Material string

const (
	Wood    Material = "wood"
	Ceramic Material = "tile"
)

// Material returns the family of k.
func (k Kind) Material() Material {
	switch k {
	case Boards, Parquet, HerringboneParquet, Herringbone:
		return Wood
	default:
		return Ceramic
	}
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind accepts the snake_case name, with dashes or spaces allowed in
// place of underscores.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for k, name := range kindNames {
		if name == norm {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
