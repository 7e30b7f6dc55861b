// Package preview draws a top-down PNG of a floor layout.
package preview

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/chazu/floorgen/pkg/geom"
	"github.com/chazu/floorgen/pkg/layout"
)

// Colours shared with the mesh viewer.
const (
	BoardColor     = "#C49A6C"
	TileColor      = "#D9D4C7"
	SmallTileColor = "#8E8A84"
	GroutColor     = "#5F5B55"
	OutlineColor   = "#2B2926"
)

// RoleColor returns the fill colour for placements of role r.
func RoleColor(r layout.Role) (string, bool) {
	switch r {
	case layout.RoleBoard:
		return BoardColor, true
	case layout.RoleTile:
		return TileColor, true
	case layout.RoleSmallTile:
		return SmallTileColor, true
	}
	return "", false
}

// Options controls the rendered image.
type Options struct {
	// Size is the longer image side in pixels.
	Size int
	// Margin is the empty border around the boundary in pixels.
	Margin int
	// Background is a hex colour for everything outside the boundary.
	Background string
	// LineWidth of unit outlines in pixels; zero draws none.
	LineWidth float64
}

// DefaultOptions renders 1024 pixels wide with a 16 pixel border.
func DefaultOptions() Options {
	return Options{Size: 1024, Margin: 16, Background: "#FFFFFF", LineWidth: 1}
}

// ErrEmptyBoundary is returned when there is nothing to frame.
var ErrEmptyBoundary = errors.New("preview: boundary has no extent")

// view maps floor coordinates to pixels with y pointing up.
type view struct {
	bounds geom.Rect
	scale  float64
	margin float64
	height float64
}

func (v view) pixel(p geom.Vec2) (float64, float64) {
	x := v.margin + (p.X-v.bounds.Min.X)*v.scale
	y := v.height - v.margin - (p.Y-v.bounds.Min.Y)*v.scale
	return x, y
}

func newView(bounds geom.Rect, o Options) (view, int, int) {
	inner := float64(o.Size - 2*o.Margin)
	scale := inner / math.Max(bounds.Width(), bounds.Height())
	w := int(math.Ceil(bounds.Width()*scale)) + 2*o.Margin
	h := int(math.Ceil(bounds.Height()*scale)) + 2*o.Margin
	return view{bounds: bounds, scale: scale, margin: float64(o.Margin), height: float64(h)}, w, h
}

// Render draws boundary and placements as PNG to w. The area inside the
// boundary is painted grout colour first, so gaps between units show.
func Render(w io.Writer, boundary layout.Boundary, placements []layout.Placement, o Options) error {
	def := DefaultOptions()
	if o.Size <= 0 {
		o.Size = def.Size
	}
	if o.Margin < 0 || 2*o.Margin >= o.Size {
		o.Margin = def.Margin
	}
	if o.Background == "" {
		o.Background = def.Background
	}

	outline := boundary.Polygon()
	bounds := outline.Bounds()
	if len(outline) < 3 || !(bounds.Width() > 0) || !(bounds.Height() > 0) {
		return ErrEmptyBoundary
	}
	v, width, height := newView(bounds, o)

	dc := gg.NewContext(width, height)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(o.Background))

	tracePolygon(dc, v, outline)
	dc.SetHexColor(GroutColor)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("preview: boundary: %w", err)
	}

	for i, p := range placements {
		c, ok := RoleColor(p.Role)
		if !ok {
			c = TileColor
		}
		world := p.World()
		tracePolygon(dc, v, world)
		dc.SetHexColor(c)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("preview: placement %d: %w", i, err)
		}
		if o.LineWidth > 0 {
			tracePolygon(dc, v, world)
			dc.SetHexColor(OutlineColor)
			dc.SetLineWidth(o.LineWidth)
			if err := dc.Stroke(); err != nil {
				return fmt.Errorf("preview: placement %d: %w", i, err)
			}
		}
	}

	tracePolygon(dc, v, outline)
	dc.SetHexColor(OutlineColor)
	dc.SetLineWidth(math.Max(2, 2*o.LineWidth))
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("preview: boundary: %w", err)
	}

	layout.Logger().Debug("preview: rendered", "width", width, "height", height, "placements", len(placements))
	return dc.EncodePNG(w)
}

func tracePolygon(dc *gg.Context, v view, poly geom.Polygon) {
	for i, p := range poly {
		x, y := v.pixel(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}
