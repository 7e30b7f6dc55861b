package geom

import "math"

// Polygon is a closed ring of vertices. The closing edge from the last vertex
// back to the first is implicit.
type Polygon []Vec2

// RectPolygon returns the counter-clockwise rectangle [0,w]x[0,l].
func RectPolygon(w, l float64) Polygon {
	return Polygon{{0, 0}, {w, 0}, {w, l}, {0, l}}
}

// Area returns the signed area; positive for counter-clockwise rings.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := range n {
		a, b := p[i], p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Bounds returns the axis-aligned bounding box. An empty polygon yields the
// zero Rect.
func (p Polygon) Bounds() Rect {
	if len(p) == 0 {
		return Rect{}
	}
	r := Rect{Min: p[0], Max: p[0]}
	for _, v := range p[1:] {
		r = r.Include(v)
	}
	return r
}

// Centroid returns the area centroid. Degenerate rings fall back to the
// vertex average.
func (p Polygon) Centroid() Vec2 {
	a := p.Area()
	if math.Abs(a) < 1e-300 {
		var c Vec2
		for _, v := range p {
			c = c.Add(v)
		}
		if len(p) > 0 {
			c = c.Scale(1 / float64(len(p)))
		}
		return c
	}
	var cx, cy float64
	n := len(p)
	for i := range n {
		v0, v1 := p[i], p[(i+1)%n]
		f := v0.X*v1.Y - v1.X*v0.Y
		cx += (v0.X + v1.X) * f
		cy += (v0.Y + v1.Y) * f
	}
	return Vec2{cx / (6 * a), cy / (6 * a)}
}

// Clone returns a copy that shares no storage with p.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// Reversed returns the ring with opposite winding.
func (p Polygon) Reversed() Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// CCW returns a counter-clockwise copy of the ring.
func (p Polygon) CCW() Polygon {
	if p.Area() < 0 {
		return p.Reversed()
	}
	return p.Clone()
}

// Transformed returns the ring mapped through t.
func (p Polygon) Transformed(t Transform) Polygon {
	m := t.Matrix()
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Vec2(m.MulPosition(v.vec()))
	}
	return out
}

// Inverted returns the ring mapped through the inverse of t.
func (p Polygon) Inverted(t Transform) Polygon {
	m := t.InverseMatrix()
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Vec2(m.MulPosition(v.vec()))
	}
	return out
}

// Translated returns the ring shifted by d.
func (p Polygon) Translated(d Vec2) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Add(d)
	}
	return out
}

// Scaled returns the ring scaled about the origin.
func (p Polygon) Scaled(s float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Scale(s)
	}
	return out
}

// Contains reports whether pt lies strictly inside the ring (even-odd rule).
func (p Polygon) Contains(pt Vec2) bool {
	in := false
	n := len(p)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if pt.X < x {
				in = !in
			}
		}
	}
	return in
}

// IsConvex reports whether the ring turns the same way at every vertex.
// Collinear vertices are tolerated.
func (p Polygon) IsConvex() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	eps := 1e-12 * p.scale() * p.scale()
	sign := 0
	for i := range n {
		c := p[(i+1)%n].Sub(p[i]).Cross(p[(i+2)%n].Sub(p[(i+1)%n]))
		switch {
		case c > eps:
			if sign < 0 {
				return false
			}
			sign = 1
		case c < -eps:
			if sign > 0 {
				return false
			}
			sign = -1
		}
	}
	return sign != 0
}

// Clean drops repeated vertices and vertices lying on the segment between
// their neighbours, both within eps.
func (p Polygon) Clean(eps float64) Polygon {
	out := make(Polygon, 0, len(p))
	for _, v := range p {
		if len(out) > 0 && out[len(out)-1].Near(v, eps) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && out[0].Near(out[len(out)-1], eps) {
		out = out[:len(out)-1]
	}
	for changed := true; changed && len(out) >= 3; {
		changed = false
		for i := 0; i < len(out) && len(out) >= 3; i++ {
			prev := out[(i+len(out)-1)%len(out)]
			next := out[(i+1)%len(out)]
			e := next.Sub(prev)
			l := e.Len()
			if l == 0 {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
				continue
			}
			// distance of out[i] from the line prev-next
			if math.Abs(e.Cross(out[i].Sub(prev)))/l <= eps {
				out = append(out[:i], out[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return out
}

// SelfIntersects reports whether any two non-adjacent edges touch, or two
// adjacent edges fold back onto each other.
func (p Polygon) SelfIntersects() bool {
	n := len(p)
	if n < 3 {
		return false
	}
	eps := 1e-12 * p.scale()
	for i := range n {
		a1, a2 := p[i], p[(i+1)%n]
		for j := i + 1; j < n; j++ {
			b1, b2 := p[j], p[(j+1)%n]
			adjacent := j == i+1 || (i == 0 && j == n-1)
			if adjacent {
				if n == 3 {
					continue
				}
				// shared vertex; reject a fold back along the same line
				var d1, d2 Vec2
				if j == i+1 {
					d1, d2 = a1.Sub(a2), b2.Sub(b1)
				} else {
					d1, d2 = a2.Sub(a1), b1.Sub(b2)
				}
				if math.Abs(d1.Cross(d2)) <= eps*(d1.Len()+d2.Len()) && d1.Dot(d2) > 0 {
					return true
				}
				continue
			}
			if segmentsTouch(a1, a2, b1, b2, eps) {
				return true
			}
		}
	}
	return false
}

func (p Polygon) scale() float64 {
	d := p.Bounds().Diagonal()
	if d == 0 {
		return 1
	}
	return d
}

func orient(a, b, c Vec2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

func onSegment(a, b, p Vec2, eps float64) bool {
	return p.X >= math.Min(a.X, b.X)-eps && p.X <= math.Max(a.X, b.X)+eps &&
		p.Y >= math.Min(a.Y, b.Y)-eps && p.Y <= math.Max(a.Y, b.Y)+eps
}

// segmentsTouch reports whether the closed segments a1a2 and b1b2 share a point.
func segmentsTouch(a1, a2, b1, b2 Vec2, eps float64) bool {
	la := a2.Sub(a1).Len()
	lb := b2.Sub(b1).Len()
	d1 := orient(b1, b2, a1)
	d2 := orient(b1, b2, a2)
	d3 := orient(a1, a2, b1)
	d4 := orient(a1, a2, b2)
	tb := eps * lb
	ta := eps * la
	if ((d1 > tb && d2 < -tb) || (d1 < -tb && d2 > tb)) &&
		((d3 > ta && d4 < -ta) || (d3 < -ta && d4 > ta)) {
		return true
	}
	if math.Abs(d1) <= tb && onSegment(b1, b2, a1, eps) {
		return true
	}
	if math.Abs(d2) <= tb && onSegment(b1, b2, a2, eps) {
		return true
	}
	if math.Abs(d3) <= ta && onSegment(a1, a2, b1, eps) {
		return true
	}
	if math.Abs(d4) <= ta && onSegment(a1, a2, b2, eps) {
		return true
	}
	return false
}
