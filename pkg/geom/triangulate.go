package geom

import "math"

// Triangulate splits a simple polygon into triangles by ear clipping and
// returns index triples into p. The triangles are counter-clockwise whatever
// the winding of p.
func Triangulate(p Polygon) [][3]int {
	n := len(p)
	if n < 3 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if p.Area() < 0 {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}
	eps := 1e-12 * p.scale() * p.scale()

	tris := make([][3]int, 0, n-2)
	for len(idx) > 3 {
		m := len(idx)
		ear := -1
		for i := range m {
			a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
			if orient(p[a], p[b], p[c]) <= eps {
				continue
			}
			if !anyInside(p, idx, a, b, c) {
				ear = i
				break
			}
		}
		if ear < 0 {
			// Numerically degenerate ring: drop the flattest vertex.
			best := math.Inf(1)
			for i := range m {
				a, b, c := idx[(i+m-1)%m], idx[i], idx[(i+1)%m]
				if o := math.Abs(orient(p[a], p[b], p[c])); o < best {
					best, ear = o, i
				}
			}
		}
		a, b, c := idx[(ear+m-1)%m], idx[ear], idx[(ear+1)%m]
		if orient(p[a], p[b], p[c]) > eps {
			tris = append(tris, [3]int{a, b, c})
		}
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	if orient(p[idx[0]], p[idx[1]], p[idx[2]]) > eps {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func anyInside(p Polygon, idx []int, a, b, c int) bool {
	for _, k := range idx {
		if k == a || k == b || k == c {
			continue
		}
		v := p[k]
		if v == p[a] || v == p[b] || v == p[c] {
			continue
		}
		if orient(p[a], p[b], v) >= 0 && orient(p[b], p[c], v) >= 0 && orient(p[c], p[a], v) >= 0 {
			return true
		}
	}
	return false
}
