// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package quadtree

import (
	"iter"

	"github.com/conwaylife/hashlife/internal/arena"
)

// BoundingRect returns the minimal rectangle (inclusive, world
// coordinates) enclosing every live cell under h, and false if h has
// zero population. Dead subtrees are pruned via the population field
// without descending into them.
func BoundingRect(a *arena.Arena, h arena.Handle) (Rect, bool) {
	if a.Get(h).Population() == 0 {
		return Rect{}, false
	}
	return boundingRectRec(a, h, 0, 0), true
}

func boundingRectRec(a *arena.Arena, h arena.Handle, cx, cy int64) Rect {
	n := a.Get(h)
	half := Half(n.Level())

	if n.IsLeaf() {
		var r Rect
		first := true
		for y := 0; y < arena.LeafSize; y++ {
			for x := 0; x < arena.LeafSize; x++ {
				if n.Cell(x, y) == 0 {
					continue
				}
				wx, wy := cx-half+int64(x), cy-half+int64(y)
				if first {
					r = Rect{wx, wy, wx, wy}
					first = false
					continue
				}
				r.X1, r.Y1 = min64(r.X1, wx), min64(r.Y1, wy)
				r.X2, r.Y2 = max64(r.X2, wx), max64(r.Y2, wy)
			}
		}
		return r
	}

	level := n.Level()
	var r Rect
	first := true
	for idx := 0; idx < 4; idx++ {
		child := n.Child(idx)
		if a.Get(child).Population() == 0 {
			continue
		}
		dx, dy := arena.ChildOffset(idx, level-1)
		cr := boundingRectRec(a, child, cx-dx, cy-dy)
		if first {
			r = cr
			first = false
			continue
		}
		r.X1, r.Y1 = min64(r.X1, cr.X1), min64(r.Y1, cr.Y1)
		r.X2, r.Y2 = max64(r.X2, cr.X2), max64(r.Y2, cr.Y2)
	}
	return r
}

// IterAliveInRect returns a lazy iterator over every live cell under h
// that falls within rect (inclusive, world coordinates). Iteration stops
// early if the consumer's yield returns false, without visiting
// dead subtrees.
func IterAliveInRect(a *arena.Arena, h arena.Handle, rect Rect) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		iterAliveRec(a, h, rect, 0, 0, yield)
	}
}

func iterAliveRec(a *arena.Arena, h arena.Handle, clip Rect, cx, cy int64, yield func(Point) bool) bool {
	n := a.Get(h)
	if n.Population() == 0 {
		return true
	}
	half := Half(n.Level())
	square := Rect{cx - half, cy - half, cx + half - 1, cy + half - 1}
	r := intersect(clip, square)
	if r.Empty() {
		return true
	}

	if n.IsLeaf() {
		for y := 0; y < arena.LeafSize; y++ {
			for x := 0; x < arena.LeafSize; x++ {
				if n.Cell(x, y) == 0 {
					continue
				}
				wx, wy := cx-half+int64(x), cy-half+int64(y)
				if !within(r, wx, wy) {
					continue
				}
				if !yield(Point{X: wx, Y: wy}) {
					return false
				}
			}
		}
		return true
	}

	level := n.Level()
	for idx := 0; idx < 4; idx++ {
		dx, dy := arena.ChildOffset(idx, level-1)
		if !iterAliveRec(a, n.Child(idx), r, cx-dx, cy-dy, yield) {
			return false
		}
	}
	return true
}
