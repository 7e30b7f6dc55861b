// Package takeoff counts the material a layout needs and writes it out as
// an XLSX workbook.
package takeoff

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/xuri/excelize/v2"

	"github.com/chazu/floorgen/pkg/layout"
)

// RoleSummary counts the units of one role.
type RoleSummary struct {
	Role layout.Role `json:"role"`
	Full int         `json:"full"`
	Cut  int         `json:"cut"`
	// Area is the visible area the role covers.
	Area float64 `json:"area"`
	// Offcut is the area trimmed off cut units.
	Offcut float64 `json:"offcut"`
}

// Units is the number of pieces to buy.
func (r RoleSummary) Units() int { return r.Full + r.Cut }

// Summary is the bill of materials for one layout. Areas are in square
// metres, volume in cubic metres.
type Summary struct {
	Kind     layout.Kind     `json:"kind"`
	Material layout.Material `json:"material"`

	BoundaryArea float64 `json:"boundary_area"`
	CoveredArea  float64 `json:"covered_area"`
	// GapArea is the floor left between units: joints or grout lines.
	GapArea float64 `json:"gap_area"`
	// WasteArea is the total offcut from units cut at the boundary.
	WasteArea float64 `json:"waste_area"`
	// PurchaseArea is the area of every unit before cutting.
	PurchaseArea float64 `json:"purchase_area"`
	Volume       float64 `json:"volume"`

	Roles      []RoleSummary      `json:"roles"`
	Placements []layout.Placement `json:"-"`
}

// Units is the total number of pieces.
func (s Summary) Units() int {
	n := 0
	for _, r := range s.Roles {
		n += r.Units()
	}
	return n
}

// WastePercent is the offcut as a share of what is bought.
func (s Summary) WastePercent() float64 {
	if s.PurchaseArea == 0 {
		return 0
	}
	return 100 * s.WasteArea / s.PurchaseArea
}

var roleOrder = []layout.Role{layout.RoleBoard, layout.RoleTile, layout.RoleSmallTile}

// Summarize totals placements generated for boundary with spec.
func Summarize(boundary layout.Boundary, spec layout.Spec, placements []layout.Placement) Summary {
	s := Summary{
		Kind:         spec.Kind,
		Material:     spec.Kind.Material(),
		BoundaryArea: boundary.Area(),
		Roles:        []RoleSummary{},
		Placements:   placements,
	}

	byRole := map[layout.Role]*RoleSummary{}
	for _, p := range placements {
		r, ok := byRole[p.Role]
		if !ok {
			r = &RoleSummary{Role: p.Role}
			byRole[p.Role] = r
		}
		area := math.Abs(p.Area())
		r.Area += area
		// a unit split into pieces is bought and counted once
		first := p.Piece == 0
		switch {
		case !p.Clipped:
			r.Full++
		case first:
			r.Cut++
			r.Offcut += p.FullArea - area
		default:
			r.Offcut -= area
		}
		if first {
			s.PurchaseArea += p.FullArea
		}
		s.CoveredArea += area
		s.Volume += area * spec.Thickness * thicknessFactor(p)
	}

	for _, role := range roleOrder {
		if r, ok := byRole[role]; ok {
			s.Roles = append(s.Roles, *r)
			delete(byRole, role)
		}
	}
	rest := make([]RoleSummary, 0, len(byRole))
	for _, r := range byRole {
		rest = append(rest, *r)
	}
	slices.SortFunc(rest, func(a, b RoleSummary) int {
		switch {
		case a.Role < b.Role:
			return -1
		case a.Role > b.Role:
			return 1
		}
		return 0
	})
	s.Roles = append(s.Roles, rest...)

	for i := range s.Roles {
		s.Roles[i].Offcut = math.Max(0, s.Roles[i].Offcut)
		s.WasteArea += s.Roles[i].Offcut
	}
	s.GapArea = math.Max(0, s.BoundaryArea-s.CoveredArea)
	return s
}

func thicknessFactor(p layout.Placement) float64 {
	if p.ThicknessFactor > 0 {
		return p.ThicknessFactor
	}
	return 1
}

// Sheet names in the workbook.
const (
	SummarySheet    = "Takeoff"
	PlacementsSheet = "Placements"
)

var placementHeader = []any{
	"ID", "Name", "Role", "Cell I", "Cell J", "Index",
	"X (m)", "Y (m)", "Rotation (deg)", "Clipped", "Area (m²)", "Full area (m²)", "Thickness factor",
}

// WriteWorkbook writes the summary and one row per placement as XLSX.
func WriteWorkbook(w io.Writer, f layout.Floor, s Summary) error {
	x := excelize.NewFile()
	defer x.Close()

	if err := x.SetSheetName(x.GetSheetName(0), SummarySheet); err != nil {
		return fmt.Errorf("takeoff: %w", err)
	}
	if err := writeSummary(x, f, s); err != nil {
		return fmt.Errorf("takeoff: %s: %w", SummarySheet, err)
	}
	if _, err := x.NewSheet(PlacementsSheet); err != nil {
		return fmt.Errorf("takeoff: %w", err)
	}
	if err := writePlacements(x, s.Placements); err != nil {
		return fmt.Errorf("takeoff: %s: %w", PlacementsSheet, err)
	}

	if err := x.Write(w); err != nil {
		return fmt.Errorf("takeoff: write: %w", err)
	}
	layout.Logger().Debug("takeoff: workbook written", "floor", f.Name, "placements", len(s.Placements))
	return nil
}

func writeSummary(x *excelize.File, f layout.Floor, s Summary) error {
	rows := [][]any{
		{"Floor", f.Name},
		{"Pattern", s.Kind.String()},
		{"Material", string(s.Material)},
		{"Unit width (m)", f.Spec.UnitWidth},
		{"Unit length (m)", f.Spec.UnitLength},
		{"Gap (m)", f.Spec.Gap},
		{"Rotation (deg)", f.Spec.Rotation},
		{"Boundary area (m²)", s.BoundaryArea},
		{"Covered area (m²)", s.CoveredArea},
		{"Gap area (m²)", s.GapArea},
		{"Purchase area (m²)", s.PurchaseArea},
		{"Waste area (m²)", s.WasteArea},
		{"Waste (%)", s.WastePercent()},
		{"Volume (m³)", s.Volume},
		{},
		{"Role", "Full", "Cut", "Units", "Area (m²)", "Offcut (m²)"},
	}
	for _, r := range s.Roles {
		rows = append(rows, []any{string(r.Role), r.Full, r.Cut, r.Units(), r.Area, r.Offcut})
	}
	rows = append(rows, []any{"Total", "", "", s.Units(), s.CoveredArea, s.WasteArea})
	return setRows(x, SummarySheet, rows)
}

func writePlacements(x *excelize.File, placements []layout.Placement) error {
	rows := make([][]any, 0, len(placements)+1)
	rows = append(rows, placementHeader)
	for _, p := range placements {
		rows = append(rows, []any{
			p.ID.String(), p.Name(), string(p.Role),
			p.Cell[0], p.Cell[1], p.Index,
			p.Transform.Translation.X, p.Transform.Translation.Y, p.Transform.RotationDegrees(),
			p.Clipped, math.Abs(p.Area()), p.FullArea, thicknessFactor(p),
		})
	}
	return setRows(x, PlacementsSheet, rows)
}

func setRows(x *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := x.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
