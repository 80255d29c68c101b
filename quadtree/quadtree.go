// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package quadtree implements the coordinate arithmetic and structural
// operations (point access, rectangle fills, growth/shrink, bounding-box
// search, live-cell iteration) over the arena package's hash-consed
// Node/Handle model. Every function here is pure given an *arena.Arena:
// none of them hold state of their own, which is what lets package
// universe bind them to a mutable root handle and package hashlife
// memoise over them by content.
package quadtree

import "github.com/conwaylife/hashlife/internal/arena"

// Point is a single live-cell coordinate in world space.
type Point struct {
	X, Y int64
}

// Rect is an inclusive world-space rectangle [X1,X2] x [Y1,Y2].
type Rect struct {
	X1, Y1, X2, Y2 int64
}

// Empty reports whether r contains no cells (an inverted or degenerate rect).
func (r Rect) Empty() bool { return r.X1 > r.X2 || r.Y1 > r.Y2 }

// Half returns the half-extent of a node at the given level: such a node
// covers local coordinates x,y in [-half, half).
func Half(level uint8) int64 { return int64(1) << (level - 1) }

// Get returns the cell at world coordinates (x,y) within the subtree
// rooted at h, or 0 if (x,y) falls outside h's covered square.
func Get(a *arena.Arena, h arena.Handle, x, y int64) uint8 {
	n := a.Get(h)
	half := Half(n.Level())
	if x < -half || x >= half || y < -half || y >= half {
		return 0
	}
	if n.IsLeaf() {
		i, j := y+half, x+half
		return n.Cell(int(j), int(i))
	}

	idx := arena.ChildIndex(x, y)
	dx, dy := arena.ChildOffset(idx, n.Level()-1)
	return Get(a, n.Child(idx), x+dx, y+dy)
}

// Set returns the handle of a new subtree identical to h except that the
// cell at world coordinates (x,y) is v. (x,y) must already lie within
// h's covered square; Universe is responsible for growing the root
// until that holds (see universe.Universe.Set).
func Set(a *arena.Arena, h arena.Handle, x, y int64, v uint8) arena.Handle {
	n := a.Get(h)
	half := Half(n.Level())
	if x < -half || x >= half || y < -half || y >= half {
		return h
	}

	if n.IsLeaf() {
		i, j := y+half, x+half
		var cells [arena.LeafSize][arena.LeafSize]uint8
		for yy := range cells {
			for xx := range cells[yy] {
				cells[yy][xx] = n.Cell(xx, yy)
			}
		}
		cells[i][j] = v
		return a.InsertLeaf(cells)
	}

	idx := arena.ChildIndex(x, y)
	dx, dy := arena.ChildOffset(idx, n.Level()-1)
	newChild := Set(a, n.Child(idx), x+dx, y+dy, v)

	children := [4]arena.Handle{n.Child(0), n.Child(1), n.Child(2), n.Child(3)}
	children[idx] = newChild
	return a.InsertBranch(n.Level(), children[0], children[1], children[2], children[3])
}
