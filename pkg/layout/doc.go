// Package layout computes flooring layouts. Given a floor boundary and a
// pattern Spec it produces the placements of every board or tile, clipped to
// the boundary, as a lazy sequence.
//
// Nine kinds are supported. Boards and Tile are laid in courses; the other
// seven repeat a motif over a periodic lattice. All of them are variants of
// one tiling strategy, so adding a kind means adding a lattice and a motif.
//
// Generation is a pure function of its inputs: the same boundary and spec,
// including Seed, always yield the same placements with the same IDs.
package layout
