package layout

import "errors"

var (
	// ErrInvalidBoundary reports a degenerate or self-intersecting boundary.
	ErrInvalidBoundary = errors.New("invalid boundary")

	// ErrInvalidSpec reports out-of-range pattern parameters.
	ErrInvalidSpec = errors.New("invalid pattern spec")

	// ErrUnsupportedKind reports a pattern kind outside the known set.
	ErrUnsupportedKind = errors.New("unsupported pattern kind")
)
