// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package quadtree

import "github.com/conwaylife/hashlife/internal/arena"

// SetRect returns the handle of a new subtree identical to h except
// every cell within rect (inclusive, world coordinates) is alive. Unlike
// SetPoints it never enumerates individual cells outside leaf level:
// a rectangle fully covering a node is replaced wholesale by the
// canonical all-alive node of that node's level (see fullNode).
func SetRect(a *arena.Arena, h arena.Handle, rect Rect) arena.Handle {
	return setRectRec(a, h, rect, 0, 0)
}

func setRectRec(a *arena.Arena, h arena.Handle, rect Rect, cx, cy int64) arena.Handle {
	n := a.Get(h)
	half := Half(n.Level())
	square := Rect{cx - half, cy - half, cx + half - 1, cy + half - 1}
	r := intersect(rect, square)
	if r.Empty() {
		return h
	}
	if r == square {
		return fullNode(a, n.Level())
	}

	if n.IsLeaf() {
		var cells [arena.LeafSize][arena.LeafSize]uint8
		for y := 0; y < arena.LeafSize; y++ {
			for x := 0; x < arena.LeafSize; x++ {
				wx, wy := cx-half+int64(x), cy-half+int64(y)
				if within(r, wx, wy) {
					cells[y][x] = 1
				} else {
					cells[y][x] = n.Cell(x, y)
				}
			}
		}
		return a.InsertLeaf(cells)
	}

	level := n.Level()
	children := [4]arena.Handle{n.Child(0), n.Child(1), n.Child(2), n.Child(3)}
	for idx := 0; idx < 4; idx++ {
		dx, dy := arena.ChildOffset(idx, level-1)
		childCx, childCy := cx-dx, cy-dy
		children[idx] = setRectRec(a, children[idx], r, childCx, childCy)
	}
	return a.InsertBranch(level, children[0], children[1], children[2], children[3])
}

// fullNode returns the handle of the canonical all-alive node at level,
// the dual of Arena.EmptyTower. It is not precomputed at arena
// construction since most universes never need it; Arena.Insert's
// content dedup makes repeated calls for the same level cheap after the
// first.
func fullNode(a *arena.Arena, level uint8) arena.Handle {
	if level == arena.LeafLevel {
		var cells [arena.LeafSize][arena.LeafSize]uint8
		for y := range cells {
			for x := range cells[y] {
				cells[y][x] = 1
			}
		}
		return a.InsertLeaf(cells)
	}
	child := fullNode(a, level-1)
	return a.InsertBranch(level, child, child, child, child)
}

// GetRect materialises the cells within rect (inclusive, world
// coordinates) as a dense [height][width]uint8 grid, for callers such
// as a renderer that want a flat snapshot of a viewport.
// Cells are 0/1; dead subtrees are skipped via the population field
// without descending into them.
func GetRect(a *arena.Arena, h arena.Handle, rect Rect) [][]uint8 {
	if rect.Empty() {
		return nil
	}
	width := rect.X2 - rect.X1 + 1
	height := rect.Y2 - rect.Y1 + 1
	grid := make([][]uint8, height)
	for i := range grid {
		grid[i] = make([]uint8, width)
	}
	getRectRec(a, h, rect, rect.X1, rect.Y1, grid, 0, 0)
	return grid
}

func getRectRec(a *arena.Arena, h arena.Handle, clip Rect, ox, oy int64, grid [][]uint8, cx, cy int64) {
	n := a.Get(h)
	if n.Population() == 0 {
		return
	}
	half := Half(n.Level())
	square := Rect{cx - half, cy - half, cx + half - 1, cy + half - 1}
	r := intersect(clip, square)
	if r.Empty() {
		return
	}

	if n.IsLeaf() {
		for y := 0; y < arena.LeafSize; y++ {
			for x := 0; x < arena.LeafSize; x++ {
				wx, wy := cx-half+int64(x), cy-half+int64(y)
				if !within(r, wx, wy) {
					continue
				}
				if v := n.Cell(x, y); v != 0 {
					grid[wy-oy][wx-ox] = v
				}
			}
		}
		return
	}

	level := n.Level()
	for idx := 0; idx < 4; idx++ {
		dx, dy := arena.ChildOffset(idx, level-1)
		childCx, childCy := cx-dx, cy-dy
		getRectRec(a, n.Child(idx), r, ox, oy, grid, childCx, childCy)
	}
}
