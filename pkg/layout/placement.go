package layout

import (
	"fmt"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/google/uuid"
)

// Role tells the builders what a placement is, for naming and colouring.
type Role string

const (
	RoleBoard     Role = "board"
	RoleTile      Role = "tile"
	RoleSmallTile Role = "small_tile"
)

// Placement is one unit of the pattern: a footprint in the unit's local
// frame plus the transform that puts it on the floor.
type Placement struct {
	ID        uuid.UUID      `json:"id"`
	Role      Role           `json:"role"`
	Cell      [2]int         `json:"cell"`
	Index     int            `json:"index"`
	Footprint geom.Polygon   `json:"footprint"`
	Transform geom.Transform `json:"transform"`
	// Clipped is set when the boundary cut the unit; Footprint is then the
	// visible part only.
	Clipped bool `json:"clipped,omitempty"`
	// Piece numbers the parts of a unit the boundary split apart, from 0.
	// Only the first piece of a unit carries its purchase.
	Piece int `json:"piece,omitempty"`
	// ThicknessFactor scales the slab thickness; 1 without variance.
	ThicknessFactor float64 `json:"thickness_factor"`
	// FullArea is the area of the unit before clipping.
	FullArea float64 `json:"full_area"`
}

// World returns the footprint in floor coordinates.
func (p Placement) World() geom.Polygon {
	return p.Footprint.Transformed(p.Transform)
}

// Area returns the visible footprint area.
func (p Placement) Area() float64 {
	return p.Footprint.Area()
}

// Name is a short human-readable label, e.g. "board-3f2a9c1b".
func (p Placement) Name() string {
	return fmt.Sprintf("%s-%s", p.Role, p.ID.String()[:8])
}

// placementNamespace seeds the deterministic placement IDs.
var placementNamespace = uuid.MustParse("6f1c0e52-4a43-4d8e-9a0b-6b1e58f7c3d1")

// placementID derives a stable ID from the kind, lattice position and piece
// so that regenerating an unchanged floor keeps the IDs.
func placementID(kind Kind, cell [2]int, index, piece int) uuid.UUID {
	key := fmt.Sprintf("%s/%d/%d/%d/%d", kind, cell[0], cell[1], index, piece)
	return uuid.NewSHA1(placementNamespace, []byte(key))
}

// Floor is one generation request: a named boundary and the pattern to lay
// inside it.
type Floor struct {
	Name     string   `json:"name" toml:"name"`
	Boundary Boundary `json:"boundary"`
	Spec     Spec     `json:"spec"`
}
