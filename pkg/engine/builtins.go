package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/layout"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites floor source into something zygomys accepts:
//
//  1. :keyword becomes the string "__kw_keyword", so keywords never collide
//     with user variables.
//  2. ; comments become // comments.
//  3. kebab-case identifiers become snake_case; zygomys would read the
//     hyphen as subtraction.
//
// String literals, in double quotes or backticks, pass through untouched.
func preprocessSource(source string) string {
	b := []byte(source)
	out := make([]byte, 0, len(b)+len(b)/4)
	for i := 0; i < len(b); {
		switch c := b[i]; {
		case c == '"':
			j := skipQuoted(b, i)
			out = append(out, b[i:j]...)
			i = j
		case c == '`':
			j := i + 1
			for j < len(b) && b[j] != '`' {
				j++
			}
			j = min(j+1, len(b))
			out = append(out, b[i:j]...)
			i = j
		case c == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out = append(out, ':', '=')
			i += 2
		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out = append(out, '_')
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return string(out)
}

// skipQuoted returns the index just past the double-quoted literal that
// starts at b[i], honouring backslash escapes.
func skipQuoted(b []byte, i int) int {
	j := i + 1
	for j < len(b) && b[j] != '"' {
		if b[j] == '\\' {
			j++
		}
		j++
	}
	return min(j+1, len(b))
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Values passed between builtins
// ---------------------------------------------------------------------------

type sexpPoint struct {
	p geom.Vec2
}

func (s *sexpPoint) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pt %g %g)", s.p.X, s.p.Y)
}
func (s *sexpPoint) Type() *zygo.RegisteredType { return nil }

type sexpBoundary struct {
	b layout.Boundary
}

func (s *sexpBoundary) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polygon %d vertices)", len(s.b))
}
func (s *sexpBoundary) Type() *zygo.RegisteredType { return nil }

type sexpFloor struct {
	f *layout.Floor
}

func (s *sexpFloor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(floor %q :pattern :%s)", s.f.Name, s.f.Spec.Kind)
}
func (s *sexpFloor) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix marks keyword strings produced by preprocessSource.
const kwPrefix = "__kw_"

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds a mixed positional and keyword argument list. order keeps
// the keywords as written so errors report the first bad one.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) (kwArgs, error) {
	pa := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			pa.positional = append(pa.positional, args[i])
			continue
		}
		if i+1 >= len(args) {
			return pa, fmt.Errorf("keyword :%s has no value", name)
		}
		if _, dup := pa.kw[name]; dup {
			return pa, fmt.Errorf("keyword :%s given twice", name)
		}
		pa.kw[name] = args[i+1]
		pa.order = append(pa.order, name)
		i++
	}
	return pa, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

// toInt accepts integers and integral floats.
func toInt(s zygo.Sexp) (int64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) && math.Abs(v.Val) < 1<<53 {
			return int64(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %s", s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if v, ok := s.(*zygo.SexpBool); ok {
		return v.Val, nil
	}
	return false, fmt.Errorf("expected true or false, got %s", s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

// toKeywordString accepts a keyword (:herringbone) or a plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %s", s.SexpString(nil))
}

// toPoint accepts (pt x y) or a two-element [x y] array.
func toPoint(s zygo.Sexp) (geom.Vec2, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	if arr, ok := s.(*zygo.SexpArray); ok && len(arr.Val) == 2 {
		x, errX := toFloat64(arr.Val[0])
		y, errY := toFloat64(arr.Val[1])
		if errX == nil && errY == nil {
			return geom.Vec2{X: x, Y: y}, nil
		}
	}
	return geom.Vec2{}, fmt.Errorf("expected point, got %s", s.SexpString(nil))
}

func toPoints(args []zygo.Sexp) (layout.Boundary, error) {
	b := make(layout.Boundary, 0, len(args))
	for i, a := range args {
		p, err := toPoint(a)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		b = append(b, p)
	}
	return b, nil
}

// toBoundary accepts a (rect …) or (polygon …) value, or a list of points.
func toBoundary(s zygo.Sexp) (layout.Boundary, error) {
	if b, ok := s.(*sexpBoundary); ok {
		return b.b, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected polygon: %w", err)
	}
	return toPoints(items)
}

// ---------------------------------------------------------------------------
// Floor parameters
// ---------------------------------------------------------------------------

// setter applies one keyword to a Spec.
type setter func(s *layout.Spec, v zygo.Sexp) error

func floatParam(field func(*layout.Spec) *float64) setter {
	return func(s *layout.Spec, v zygo.Sexp) error {
		f, err := toFloat64(v)
		if err != nil {
			return err
		}
		*field(s) = f
		return nil
	}
}

func intParam(field func(*layout.Spec) *int) setter {
	return func(s *layout.Spec, v zygo.Sexp) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		*field(s) = int(n)
		return nil
	}
}

// specParams maps every floor keyword except :boundary and :pattern.
var specParams = map[string]setter{
	"unit-width":         floatParam(func(s *layout.Spec) *float64 { return &s.UnitWidth }),
	"unit-length":        floatParam(func(s *layout.Spec) *float64 { return &s.UnitLength }),
	"gap":                floatParam(func(s *layout.Spec) *float64 { return &s.Gap }),
	"length-gap":         floatParam(func(s *layout.Spec) *float64 { return &s.LengthGap }),
	"offset":             floatParam(func(s *layout.Spec) *float64 { return &s.Offset }),
	"rotation":           floatParam(func(s *layout.Spec) *float64 { return &s.Rotation }),
	"width-variance":     floatParam(func(s *layout.Spec) *float64 { return &s.WidthVariance }),
	"length-variance":    floatParam(func(s *layout.Spec) *float64 { return &s.LengthVariance }),
	"thickness-variance": floatParam(func(s *layout.Spec) *float64 { return &s.ThicknessVariance }),
	"offset-variance":    floatParam(func(s *layout.Spec) *float64 { return &s.OffsetVariance }),
	"thickness":          floatParam(func(s *layout.Spec) *float64 { return &s.Thickness }),
	"mortar-depth":       floatParam(func(s *layout.Spec) *float64 { return &s.MortarDepth }),
	"boards-in-group":    intParam(func(s *layout.Spec) *int { return &s.BoardsInGroup }),
	"max-boards":         intParam(func(s *layout.Spec) *int { return &s.MaxBoards }),
	"random-offset": func(s *layout.Spec, v zygo.Sexp) error {
		b, err := toBool(v)
		if err != nil {
			return err
		}
		s.RandomOffset = b
		return nil
	},
	"seed": func(s *layout.Spec, v zygo.Sexp) error {
		n, err := toInt(v)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("must not be negative, got %d", n)
		}
		s.Seed = uint64(n)
		return nil
	},
}

// collector receives the floor defined by a program.
type collector struct {
	floor *layout.Floor
}

func buildFloor(pa kwArgs) (*layout.Floor, error) {
	f := &layout.Floor{Name: "floor"}
	if len(pa.positional) > 1 {
		return nil, fmt.Errorf("expected at most one positional name, got %d", len(pa.positional))
	}
	if len(pa.positional) == 1 {
		name, err := toString(pa.positional[0])
		if err != nil {
			return nil, fmt.Errorf("name: %w", err)
		}
		f.Name = name
	}

	kind := layout.Boards
	if v, ok := pa.kw["pattern"]; ok {
		name, err := toKeywordString(v)
		if err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
		if kind, err = layout.ParseKind(name); err != nil {
			return nil, fmt.Errorf("pattern: %w", err)
		}
	}
	f.Spec = layout.DefaultSpec(kind)

	v, ok := pa.kw["boundary"]
	if !ok {
		return nil, fmt.Errorf(":boundary is required")
	}
	b, err := toBoundary(v)
	if err != nil {
		return nil, fmt.Errorf("boundary: %w", err)
	}
	f.Boundary = b

	for _, key := range pa.order {
		if key == "pattern" || key == "boundary" {
			continue
		}
		set, ok := specParams[key]
		if !ok {
			return nil, fmt.Errorf("unknown keyword :%s", key)
		}
		if err := set(&f.Spec, pa.kw[key]); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}
	return f, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the floor DSL into env. Source must go through
// preprocessSource first so keywords arrive as marker strings.
func registerBuiltins(env *zygo.Zlisp, c *collector) {

	// -----------------------------------------------------------------------
	// (pt 1.5 2)
	// -----------------------------------------------------------------------
	env.AddFunction("pt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("pt: expected 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pt: y: %w", err)
		}
		return &sexpPoint{p: geom.Vec2{X: x, Y: y}}, nil
	})

	// -----------------------------------------------------------------------
	// (rect 4 3) ; 4 wide along x, 3 long along y, corner at the origin
	// -----------------------------------------------------------------------
	env.AddFunction("rect", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rect: expected 2 arguments, got %d", len(args))
		}
		w, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rect: width: %w", err)
		}
		l, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rect: length: %w", err)
		}
		return &sexpBoundary{b: layout.RectBoundary(w, l)}, nil
	})

	// -----------------------------------------------------------------------
	// (polygon (pt 0 0) (pt 4 0) (pt 4 3)) or (polygon (list …))
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		items := args
		if len(args) == 1 {
			if _, isPoint := args[0].(*sexpPoint); !isPoint {
				var err error
				if items, err = sexpListToSlice(args[0]); err != nil {
					return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
				}
			}
		}
		b, err := toPoints(items)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("polygon: %w", err)
		}
		return &sexpBoundary{b: b}, nil
	})

	// -----------------------------------------------------------------------
	// (inch 6) (foot 8) ; imperial lengths in metres
	// -----------------------------------------------------------------------
	for unitName, size := range map[string]float64{"inch": layout.Inch, "foot": layout.Foot} {
		env.AddFunction(unitName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s: expected 1 argument, got %d", name, len(args))
			}
			n, err := toFloat64(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &zygo.SexpFloat{Val: n * size}, nil
		})
	}

	// -----------------------------------------------------------------------
	// (floor "kitchen" :boundary (rect 4 3) :pattern :herringbone
	//        :unit-width (inch 4) :unit-length (inch 24) :rotation 90)
	// -----------------------------------------------------------------------
	env.AddFunction("floor", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if c.floor != nil {
			return zygo.SexpNull, fmt.Errorf("floor: program already defines floor %q", c.floor.Name)
		}
		pa, err := parseArgs(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("floor: %w", err)
		}
		f, err := buildFloor(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("floor: %w", err)
		}
		c.floor = f
		return &sexpFloor{f: f}, nil
	})
}
