// Package host is the parametric floor object an editor drives: it turns a
// floor description into coloured meshes and keeps the last good geometry
// when a new description fails.
package host

import (
	"strings"
	"sync"

	"github.com/chazu/floorgen/pkg/engine"
	"github.com/chazu/floorgen/pkg/kernel"
	"github.com/chazu/floorgen/pkg/kernel/prism"
	"github.com/chazu/floorgen/pkg/layout"
	"github.com/chazu/floorgen/pkg/preview"
	"github.com/chazu/floorgen/pkg/tessellate"
)

// rolePalette colours meshes by the kind of unit they came from, matching
// the PNG preview.
var rolePalette = map[string]string{
	string(layout.RoleBoard):     preview.BoardColor,
	string(layout.RoleTile):      preview.TileColor,
	string(layout.RoleSmallTile): preview.SmallTileColor,
	tessellate.GroutPartName:     preview.GroutColor,
}

// fallbackPalette is cycled for parts without a role colour.
var fallbackPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// ColorFor returns the display colour of the i-th mesh named partName.
func ColorFor(partName string, i int) string {
	role, _, _ := strings.Cut(partName, "-")
	if c, ok := rolePalette[role]; ok {
		return c
	}
	return fallbackPalette[i%len(fallbackPalette)]
}

// MeshData is the JSON form of one mesh handed to a viewer.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// Diagnostic is an error or warning attached to the description, by source
// position for Lisp input or by parameter name for validation findings.
type Diagnostic struct {
	Line    int    `json:"line,omitempty"`
	Col     int    `json:"col,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result is what a regeneration hands back. When Errors is non-empty,
// Meshes and Placements still hold the last successful geometry and Stale
// is set.
type Result struct {
	Meshes     []MeshData         `json:"meshes"`
	Placements []layout.Placement `json:"placements"`
	Errors     []Diagnostic       `json:"errors"`
	Warnings   []Diagnostic       `json:"warnings"`
	Stale      bool               `json:"stale"`
}

// Object owns the floor's current geometry behind a mutex.
type Object struct {
	engine *engine.Engine
	kernel kernel.Kernel

	mu         sync.Mutex
	floor      *layout.Floor
	meshes     []MeshData
	placements []layout.Placement
}

// New creates an Object meshing with k, or with the exact prism kernel
// when k is nil.
func New(k kernel.Kernel) *Object {
	if k == nil {
		k = prism.New()
	}
	return &Object{
		engine: engine.NewEngine(),
		kernel: k,
	}
}

// Floor returns the last floor that generated successfully.
func (o *Object) Floor() (layout.Floor, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.floor == nil {
		return layout.Floor{}, false
	}
	return *o.floor, true
}

// Evaluate runs a Lisp floor description and regenerates from it.
func (o *Object) Evaluate(source string) Result {
	f, evalErrs, err := o.engine.Evaluate(source)
	if err != nil {
		layout.Logger().Warn("host: evaluate failed", "err", err)
		return o.failed([]Diagnostic{{Message: err.Error()}}, nil)
	}
	if len(evalErrs) > 0 {
		diags := make([]Diagnostic, len(evalErrs))
		for i, e := range evalErrs {
			diags[i] = Diagnostic{Line: e.Line, Col: e.Col, Message: e.Message}
		}
		return o.failed(diags, nil)
	}
	return o.Regenerate(*f)
}

// Regenerate validates f, lays it out and meshes every placement. On any
// error the previous geometry is kept.
func (o *Object) Regenerate(f layout.Floor) Result {
	v := layout.Validate(f.Boundary, f.Spec)
	warnings := findings(v.Warnings)
	if !v.OK() {
		return o.failed(findings(v.Errors), warnings)
	}

	placements, err := layout.GenerateAll(f.Boundary, f.Spec)
	if err != nil {
		return o.failed([]Diagnostic{{Message: err.Error()}}, warnings)
	}
	meshes, err := tessellate.BuildLayout(f, placements, o.kernel)
	if err != nil {
		layout.Logger().Warn("host: tessellation failed", "floor", f.Name, "err", err)
		return o.failed([]Diagnostic{{Message: "tessellation failed: " + err.Error()}}, warnings)
	}

	data := make([]MeshData, len(meshes))
	for i, m := range meshes {
		data[i] = MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			PartName: m.PartName,
			Color:    ColorFor(m.PartName, i),
		}
	}

	o.mu.Lock()
	o.floor = &f
	o.meshes = data
	o.placements = placements
	o.mu.Unlock()

	return Result{
		Meshes:     data,
		Placements: placements,
		Errors:     []Diagnostic{},
		Warnings:   warnings,
	}
}

// failed reports errs alongside the last good geometry.
func (o *Object) failed(errs, warnings []Diagnostic) Result {
	if warnings == nil {
		warnings = []Diagnostic{}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	r := Result{
		Meshes:     o.meshes,
		Placements: o.placements,
		Errors:     errs,
		Warnings:   warnings,
		Stale:      true,
	}
	if r.Meshes == nil {
		r.Meshes = []MeshData{}
	}
	if r.Placements == nil {
		r.Placements = []layout.Placement{}
	}
	return r
}

func findings(fs []layout.Finding) []Diagnostic {
	out := make([]Diagnostic, len(fs))
	for i, f := range fs {
		out[i] = Diagnostic{Field: f.Field, Message: f.Message}
	}
	return out
}
