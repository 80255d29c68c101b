// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package quadtree

import "github.com/conwaylife/hashlife/internal/arena"

// InsertMode controls how SetPoints treats cells within its clip
// rectangle that are not named by the point list.
type InsertMode int

const (
	// Copy overwrites the entire clip rectangle: named points become
	// alive, every other cell in the rectangle becomes dead. This is
	// what loading an RLE pattern into a cleared region wants.
	Copy InsertMode = iota
	// Or leaves existing cells alone and only turns named points alive,
	// for overlaying a pattern onto whatever is already there.
	Or
)

func intersect(a, b Rect) Rect {
	r := Rect{max64(a.X1, b.X1), max64(a.Y1, b.Y1), min64(a.X2, b.X2), min64(a.Y2, b.Y2)}
	return r
}

func within(r Rect, x, y int64) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

func translateRect(r Rect, dx, dy int64) Rect {
	return Rect{r.X1 + dx, r.Y1 + dy, r.X2 + dx, r.Y2 + dy}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// SetPoints returns the handle of a new subtree built from h by placing
// every point of pts alive, within clip (world coordinates, inclusive).
// Points outside clip are ignored. In Copy mode, every cell of clip not
// named by pts becomes dead; in Or mode, cells outside pts are left as
// they were. pts is never modified, so callers may reuse the same
// slice across multiple calls (e.g. stamping one imported pattern at
// several clip rectangles): setPointsRec's recursive descent reorders
// and translates points in place as it partitions them per level, so
// SetPoints always hands it a private copy rather than pts itself or
// any slice built by sub-slicing pts.
func SetPoints(a *arena.Arena, h arena.Handle, pts []Point, clip Rect, mode InsertMode) arena.Handle {
	filtered := make([]Point, 0, len(pts))
	for _, p := range pts {
		if within(clip, p.X, p.Y) {
			filtered = append(filtered, p)
		}
	}
	return setPointsRec(a, h, filtered, clip, mode)
}

// ClearRect returns the handle of a new subtree identical to h except
// every cell within rect (inclusive, world coordinates) is dead.
func ClearRect(a *arena.Arena, h arena.Handle, rect Rect) arena.Handle {
	return SetPoints(a, h, nil, rect, Copy)
}

func setPointsRec(a *arena.Arena, h arena.Handle, pts []Point, clip Rect, mode InsertMode) arena.Handle {
	n := a.Get(h)
	half := Half(n.Level())
	square := Rect{-half, -half, half - 1, half - 1}
	clip = intersect(clip, square)
	if clip.Empty() {
		return h
	}

	if n.IsLeaf() {
		var cells [arena.LeafSize][arena.LeafSize]uint8
		for y := 0; y < arena.LeafSize; y++ {
			for x := 0; x < arena.LeafSize; x++ {
				wx, wy := int64(x)-half, int64(y)-half
				if mode == Copy && within(clip, wx, wy) {
					cells[y][x] = 0
				} else {
					cells[y][x] = n.Cell(x, y)
				}
			}
		}
		for _, p := range pts {
			i, j := p.Y+half, p.X+half
			cells[i][j] = 1
		}
		return a.InsertLeaf(cells)
	}

	nw, ne, sw, se := PartitionPoints(pts)
	groups := [4][]Point{nw, ne, sw, se}
	level := n.Level()
	children := [4]arena.Handle{n.Child(0), n.Child(1), n.Child(2), n.Child(3)}

	for idx, g := range groups {
		if len(g) == 0 && mode == Or {
			continue
		}
		dx, dy := arena.ChildOffset(idx, level-1)
		childClip := translateRect(clip, dx, dy)
		offsetPoints(g, dx, dy)
		children[idx] = setPointsRec(a, children[idx], g, childClip, mode)
	}
	return a.InsertBranch(level, children[0], children[1], children[2], children[3])
}
