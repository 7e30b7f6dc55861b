package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/layout"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(floor :pattern :tile)`,
			expect: `(floor "__kw_pattern" "__kw_tile")`,
		},
		{
			name:   "kebab keyword kept intact",
			input:  `(floor :unit-width 4)`,
			expect: `(floor "__kw_unit-width" 4)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"room with :keyword inside"`,
			expect: `"room with :keyword inside"`,
		},
		{
			name:   "escaped quote inside string",
			input:  `"a \" :b" :c`,
			expect: `"a \" :b" "__kw_c"`,
		},
		{
			name:   "backtick string preserved",
			input:  "`raw :kw a-b`",
			expect: "`raw :kw a-b`",
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(def room-width 4)`,
			expect: `(def room_width 4)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(pt -1 -2)`,
			expect: `(pt -1 -2)`,
		},
		{
			name:   "double semicolon comment",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  "; simple\n(pt 1 2)",
			expect: "// simple\n(pt 1 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Floor evaluation
// ---------------------------------------------------------------------------

func mustFloor(t *testing.T, source string) *layout.Floor {
	t.Helper()
	f, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if f == nil {
		t.Fatal("expected non-nil floor")
	}
	return f
}

func mustFail(t *testing.T, source, want string) {
	t.Helper()
	f, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if f != nil {
		t.Fatalf("expected no floor, got %+v", f)
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, want) {
		t.Errorf("error = %q, want containing %q", evalErrs[0].Message, want)
	}
}

func TestSimpleFloorUsesDefaults(t *testing.T) {
	f := mustFloor(t, `(floor "bedroom" :boundary (rect 4 3))`)

	if f.Name != "bedroom" {
		t.Errorf("name = %q", f.Name)
	}
	if f.Spec != layout.DefaultSpec(layout.Boards) {
		t.Errorf("spec = %+v, want boards defaults", f.Spec)
	}
	want := layout.RectBoundary(4, 3)
	if len(f.Boundary) != len(want) {
		t.Fatalf("boundary = %v", f.Boundary)
	}
	for i := range want {
		if f.Boundary[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, f.Boundary[i], want[i])
		}
	}
}

func TestFloorAllParameters(t *testing.T) {
	source := `
; a fully specified tile floor
(def room (polygon (pt 0 0) (pt 5 0) (pt 5 2) (pt 2 2) (pt 2 4) (pt 0 4)))
(floor "utility"
  :boundary room
  :pattern :stepping-stone
  :unit-width (foot 1)
  :unit-length (inch 8)
  :gap 0.004
  :length-gap 0.005
  :offset 0.25
  :rotation 30
  :boards-in-group 3
  :max-boards 5
  :width-variance 0.1
  :length-variance 0.2
  :thickness-variance 0.3
  :offset-variance 0.4
  :random-offset true
  :seed 42
  :thickness (inch 1)
  :mortar-depth 0.01)
`
	f := mustFloor(t, source)

	s := f.Spec
	if s.Kind != layout.SteppingStone {
		t.Errorf("kind = %s", s.Kind)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"unit width", s.UnitWidth, layout.Foot},
		{"unit length", s.UnitLength, 8 * layout.Inch},
		{"gap", s.Gap, 0.004},
		{"length gap", s.LengthGap, 0.005},
		{"offset", s.Offset, 0.25},
		{"rotation", s.Rotation, 30},
		{"width variance", s.WidthVariance, 0.1},
		{"length variance", s.LengthVariance, 0.2},
		{"thickness variance", s.ThicknessVariance, 0.3},
		{"offset variance", s.OffsetVariance, 0.4},
		{"thickness", s.Thickness, layout.Inch},
		{"mortar depth", s.MortarDepth, 0.01},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s = %g, want %g", c.name, c.got, c.want)
		}
	}
	if s.BoardsInGroup != 3 || s.MaxBoards != 5 || s.Seed != 42 || !s.RandomOffset {
		t.Errorf("integer/bool params = %+v", s)
	}
	if len(f.Boundary) != 6 {
		t.Errorf("boundary vertices = %d, want 6", len(f.Boundary))
	}
}

func TestFloorPatternSpellings(t *testing.T) {
	tests := []struct {
		source string
		want   layout.Kind
	}{
		{`(floor :boundary (rect 4 4) :pattern :herringbone)`, layout.Herringbone},
		{`(floor :boundary (rect 4 4) :pattern :herringbone-parquet)`, layout.HerringboneParquet},
		{`(floor :boundary (rect 4 4) :pattern "hexagon")`, layout.Hexagon},
		{`(floor :boundary (rect 4 4) :pattern :windmill)`, layout.Windmill},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			f := mustFloor(t, tt.source)
			if f.Spec.Kind != tt.want {
				t.Errorf("kind = %s, want %s", f.Spec.Kind, tt.want)
			}
			if f.Spec.UnitWidth != layout.DefaultSpec(tt.want).UnitWidth {
				t.Errorf("defaults not taken from %s", tt.want)
			}
			if f.Name != "floor" {
				t.Errorf("default name = %q", f.Name)
			}
		})
	}
}

func TestFloorBoundaryForms(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"polygon of points", `(floor :boundary (polygon (pt 0 0) (pt 4 0) (pt 4 3) (pt 0 3)))`},
		{"polygon of list", `(floor :boundary (polygon (list (pt 0 0) (pt 4 0) (pt 4 3) (pt 0 3))))`},
		{"array of pairs", `(floor :boundary [[0 0] [4 0] [4 3] [0 3]])`},
		{"list of points", `(floor :boundary (list (pt 0 0) (pt 4 0) (pt 4 3) (pt 0 3)))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustFloor(t, tt.source)
			if len(f.Boundary) != 4 {
				t.Fatalf("vertices = %d, want 4", len(f.Boundary))
			}
			if f.Boundary[2] != (geom.Vec2{X: 4, Y: 3}) {
				t.Errorf("vertex 2 = %v", f.Boundary[2])
			}
		})
	}
}

func TestUnitBuiltins(t *testing.T) {
	f := mustFloor(t, `(floor :boundary (rect (foot 10) (* 2 (inch 6))))`)
	if got := f.Boundary[2]; math.Abs(got.X-10*layout.Foot) > 1e-12 || math.Abs(got.Y-12*layout.Inch) > 1e-12 {
		t.Errorf("corner = %v", got)
	}
}

func TestVariablesAndArithmetic(t *testing.T) {
	source := `
(def room-width 5)
(def gap-size (/ (inch 1) 8))
(floor "hall" :boundary (rect room-width (* room-width 2)) :gap gap-size)
`
	f := mustFloor(t, source)
	if f.Boundary[2] != (geom.Vec2{X: 5, Y: 10}) {
		t.Errorf("corner = %v", f.Boundary[2])
	}
	if math.Abs(f.Spec.Gap-layout.Inch/8) > 1e-12 {
		t.Errorf("gap = %g", f.Spec.Gap)
	}
}

func TestFloorErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"missing boundary", `(floor "x" :pattern :tile)`, ":boundary is required"},
		{"unknown pattern", `(floor :boundary (rect 4 4) :pattern :basketweave)`, "unsupported"},
		{"unknown keyword", `(floor :boundary (rect 4 4) :colour "red")`, "unknown keyword :colour"},
		{"keyword without value", `(floor :boundary (rect 4 4) :gap)`, "no value"},
		{"duplicate keyword", `(floor :boundary (rect 4 4) :gap 1 :gap 2)`, "given twice"},
		{"non-numeric gap", `(floor :boundary (rect 4 4) :gap "wide")`, "gap"},
		{"fractional group", `(floor :boundary (rect 4 4) :boards-in-group 2.5)`, "integer"},
		{"negative seed", `(floor :boundary (rect 4 4) :seed -1)`, "negative"},
		{"non-bool random offset", `(floor :boundary (rect 4 4) :random-offset 1)`, "true or false"},
		{"two names", `(floor "a" "b" :boundary (rect 4 4))`, "positional"},
		{"bad vertex", `(floor :boundary (polygon (pt 0 0) 7 (pt 1 1)))`, "vertex 1"},
		{"pt arity", `(pt 1)`, "expected 2 arguments"},
		{"rect arity", `(rect 1 2 3)`, "expected 2 arguments"},
		{"inch arity", `(inch)`, "expected 1 argument"},
		{"two floors", `(floor "a" :boundary (rect 4 4)) (floor "b" :boundary (rect 2 2))`, "already defines floor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFail(t, tt.source, tt.want)
		})
	}
}

func TestFloorIsNotValidatedByEngine(t *testing.T) {
	// A gap as wide as the board is a spec error, reported later by
	// layout.Validate so the host can attach it to the floor.
	f := mustFloor(t, `(floor :boundary (rect 4 4) :unit-width 1 :gap 1)`)
	if _, err := layout.GenerateAll(f.Boundary, f.Spec); !errors.Is(err, layout.ErrInvalidSpec) {
		t.Errorf("expected ErrInvalidSpec from generation, got %v", err)
	}
}
