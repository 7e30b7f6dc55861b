package layout

import (
	"errors"
	"fmt"
	"math"
)

// Severity indicates whether a finding blocks generation.
type Severity int

const (
	SeverityError   Severity = iota // blocks generation
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding is a single validation result.
type Finding struct {
	Field    string   `json:"field,omitempty"` // "boundary", "gap", ... (empty if request-level)
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Err      error    `json:"-"` // the sentinel for errors, nil for warnings
}

func (f Finding) Error() string {
	if f.Field == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Field, f.Message)
}

func (f Finding) Unwrap() error { return f.Err }

// ValidationResult separates blocking errors from advisory warnings.
type ValidationResult struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
}

// OK reports whether generation would proceed.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Err joins the blocking findings, or returns nil.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, f := range r.Errors {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Validate runs every check Generate runs plus advisory ones, without
// generating anything. Tier 1 covers the boundary, tier 2 the parameters and
// tier 3 the combination of the two.
func Validate(boundary Boundary, spec Spec) ValidationResult {
	result := ValidationResult{Errors: []Finding{}, Warnings: []Finding{}}

	// Tier 1: boundary.
	poly, err := boundary.Normalize()
	if err != nil {
		result.Errors = append(result.Errors, asFindings("boundary", err)...)
	}

	// Tier 2: parameters.
	if err := spec.Validate(); err != nil {
		result.Errors = append(result.Errors, asFindings("", err)...)
	} else {
		result.Warnings = append(result.Warnings, specWarnings(spec)...)
	}

	// Tier 3: request size.
	if result.OK() {
		f := newFrame(poly, spec.Rotation)
		n := estimateUnits(f.area, spec)
		switch {
		case n > MaxPlacements:
			result.Errors = append(result.Errors, Finding{
				Message:  fmt.Sprintf("about %.0f units exceed the limit of %d", n, MaxPlacements),
				Severity: SeverityError,
				Err:      ErrInvalidSpec,
			})
		case math.Abs(poly.Area()) < spec.minUnitArea():
			result.Warnings = append(result.Warnings, warning("boundary", "floor is smaller than a single unit"))
		}
	}
	return result
}

func asFindings(field string, err error) []Finding {
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}
	out := make([]Finding, 0, len(errs))
	for _, e := range errs {
		sentinel := ErrInvalidSpec
		switch {
		case errors.Is(e, ErrInvalidBoundary):
			sentinel = ErrInvalidBoundary
		case errors.Is(e, ErrUnsupportedKind):
			sentinel = ErrUnsupportedKind
		}
		out = append(out, Finding{Field: field, Message: e.Error(), Severity: SeverityError, Err: sentinel})
	}
	return out
}

func warning(field, msg string) Finding {
	return Finding{Field: field, Message: msg, Severity: SeverityWarning}
}

func specWarnings(s Spec) []Finding {
	var out []Finding
	if s.Gap > s.UnitWidth/4 {
		out = append(out, warning("gap", "gap is more than a quarter of the unit width"))
	}
	switch s.Kind {
	case Hexagon:
		if s.UnitLength != 0 && s.UnitLength != s.UnitWidth {
			out = append(out, warning("unit_length", "hexagon tiles use unit width only"))
		}
	case Parquet:
		if s.UnitLength != 0 {
			out = append(out, warning("unit_length", "parquet board length follows from the group size"))
		}
	}
	if s.Kind != Boards {
		if s.WidthVariance > 0 || s.LengthVariance > 0 {
			out = append(out, warning("variance", fmt.Sprintf("%s ignores width and length variance", s.Kind)))
		}
		if s.LengthGap > 0 && s.LengthGap != s.Gap {
			out = append(out, warning("length_gap", fmt.Sprintf("%s uses gap only", s.Kind)))
		}
	}
	if s.Kind != Tile && s.RandomOffset {
		out = append(out, warning("random_offset", "random offset applies to tile rows only"))
	}
	if s.Kind.Material() == Wood && s.MortarDepth > 0 {
		out = append(out, warning("mortar_depth", "wood floors have no grout"))
	}
	return out
}
