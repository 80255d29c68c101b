// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package quadtree

import (
	"github.com/conwaylife/hashlife/internal/arena"
	"github.com/conwaylife/hashlife/internal/lifeerr"
)

// Grown returns the handle of a new root one level higher than h, with
// h's content re-centred so the covered square doubles in extent without
// moving any existing live cell. It is the only way new levels enter a
// universe; universe.Universe's grow helper calls it in a loop until a
// point or rectangle fits inside the root's square.
func Grown(a *arena.Arena, h arena.Handle) (arena.Handle, error) {
	n := a.Get(h)
	if n.Level() >= arena.MaxLevel {
		return arena.NilHandle, lifeerr.New(lifeerr.LevelOverflow, "cannot grow past level %d", arena.MaxLevel)
	}

	if n.IsLeaf() {
		return growLeaf(a, n), nil
	}

	level := n.Level()
	empty := a.EmptyTower(level - 1)
	nw := a.InsertBranch(level, empty, empty, empty, n.Child(0))
	ne := a.InsertBranch(level, empty, empty, n.Child(1), empty)
	sw := a.InsertBranch(level, empty, n.Child(2), empty, empty)
	se := a.InsertBranch(level, n.Child(3), empty, empty, empty)
	return a.InsertBranch(level+1, nw, ne, sw, se), nil
}

// growLeaf doubles a LeafLevel node: the new root is a branch of four
// leaves, each holding one quadrant of the old leaf's cells moved into
// the corner diagonally opposite its quadrant, with the rest dead.
func growLeaf(a *arena.Arena, n arena.Node) arena.Handle {
	half := arena.LeafSize / 2 // 2

	var nw, ne, sw, se [arena.LeafSize][arena.LeafSize]uint8
	for y := 0; y < half; y++ {
		for x := 0; x < half; x++ {
			nw[y+half][x+half] = n.Cell(x, y)               // old NW quadrant -> new NW child's SE corner
			ne[y+half][x] = n.Cell(x+half, y)                // old NE quadrant -> new NE child's SW corner
			sw[y][x+half] = n.Cell(x, y+half)                // old SW quadrant -> new SW child's NE corner
			se[y][x] = n.Cell(x+half, y+half)                // old SE quadrant -> new SE child's NW corner
		}
	}

	return a.InsertBranch(arena.LeafLevel+1,
		a.InsertLeaf(nw), a.InsertLeaf(ne), a.InsertLeaf(sw), a.InsertLeaf(se))
}

// Shrunk attempts the inverse of Grown: if every live cell in h lies in
// the center half of its square (the outer ring is entirely dead), it
// returns the handle of that center content at level-1 and ok=true.
// Otherwise shrinking would lose cells and it returns h unchanged with
// ok=false.
func Shrunk(a *arena.Arena, h arena.Handle) (shrunk arena.Handle, ok bool) {
	n := a.Get(h)
	if n.Level() <= arena.LeafLevel+1 {
		if leaf, ok := shrinkToLeaf(a, n); ok {
			return leaf, true
		}
		return h, false
	}

	nwChild, neChild, swChild, seChild := a.Get(n.Child(0)), a.Get(n.Child(1)), a.Get(n.Child(2)), a.Get(n.Child(3))
	center := [4]arena.Handle{nwChild.Child(3), neChild.Child(2), swChild.Child(1), seChild.Child(0)}

	var centerPop uint64
	for _, c := range center {
		centerPop += a.Get(c).Population()
	}
	if centerPop != n.Population() {
		return h, false
	}

	return a.InsertBranch(n.Level()-1, center[0], center[1], center[2], center[3]), true
}

func shrinkToLeaf(a *arena.Arena, n arena.Node) (arena.Handle, bool) {
	if n.IsLeaf() {
		return arena.NilHandle, false
	}
	half := arena.LeafSize / 2

	nwLeaf, neLeaf, swLeaf, seLeaf := a.Get(n.Child(0)), a.Get(n.Child(1)), a.Get(n.Child(2)), a.Get(n.Child(3))

	var cells [arena.LeafSize][arena.LeafSize]uint8
	var centerPop uint64
	for y := 0; y < half; y++ {
		for x := 0; x < half; x++ {
			v := nwLeaf.Cell(x+half, y+half)
			cells[y][x] = v
			centerPop += uint64(v)

			v = neLeaf.Cell(x, y+half)
			cells[y][x+half] = v
			centerPop += uint64(v)

			v = swLeaf.Cell(x+half, y)
			cells[y+half][x] = v
			centerPop += uint64(v)

			v = seLeaf.Cell(x, y)
			cells[y+half][x+half] = v
			centerPop += uint64(v)
		}
	}

	if centerPop != n.Population() {
		return arena.NilHandle, false
	}
	return a.InsertLeaf(cells), true
}

// GetNode returns the handle of the subtree rooted at world coordinates
// (x,y) at the given level, descending from h. It is used to extract
// meta-cells (fixed-size chunks coarser than a single cell) for overlay
// composition. level must not exceed h's level; points outside h's
// square yield the canonical empty node at level.
func GetNode(a *arena.Arena, h arena.Handle, x, y int64, level uint8) arena.Handle {
	n := a.Get(h)
	if n.Level() <= level {
		return h
	}

	half := Half(n.Level())
	if x < -half || x >= half || y < -half || y >= half {
		return a.EmptyTower(level)
	}

	idx := arena.ChildIndex(x, y)
	dx, dy := arena.ChildOffset(idx, n.Level()-1)
	return GetNode(a, n.Child(idx), x+dx, y+dy, level)
}

// SetNode returns the handle of a new subtree identical to h except that
// the whole subtree at world coordinates (x,y) and the given level is
// replaced with sub, rather than a single cell as Set does. It backs
// universe.Universe.SetGridMeta's placement of the on/off tiles.
func SetNode(a *arena.Arena, h arena.Handle, x, y int64, level uint8, sub arena.Handle) arena.Handle {
	n := a.Get(h)
	if n.Level() == level {
		return sub
	}

	half := Half(n.Level())
	if x < -half || x >= half || y < -half || y >= half {
		return h
	}

	idx := arena.ChildIndex(x, y)
	dx, dy := arena.ChildOffset(idx, n.Level()-1)
	newChild := SetNode(a, n.Child(idx), x+dx, y+dy, level, sub)

	children := [4]arena.Handle{n.Child(0), n.Child(1), n.Child(2), n.Child(3)}
	children[idx] = newChild
	return a.InsertBranch(n.Level(), children[0], children[1], children[2], children[3])
}
