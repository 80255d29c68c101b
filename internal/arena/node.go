// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package arena

// LeafLevel is the level at which a node stores cells directly rather
// than delegating to four children. A leaf covers a LeafSize x LeafSize
// square.
const (
	LeafLevel = 2
	LeafSize  = 1 << LeafLevel // 4
)

// Handle is a stable, dense index into an Arena's node vector. Handles
// are never reused and remain valid for the lifetime of the Arena that
// produced them.
type Handle uint32

// NilHandle is never returned by Insert; it is reserved as the invalid
// Handle that quadtree.Grown returns alongside an error. The zero Handle
// is not invalid: it names the first node every Arena inserts, the
// empty leaf.
const NilHandle Handle = 1<<32 - 1

// Node is one immutable quadtree node: either a LeafLevel leaf holding a
// LeafSize x LeafSize array of cell bytes, or a branch holding four
// child handles at level-1. level and population are derived fields
// kept alongside the content so callers never need to walk the tree to
// answer "how big" or "how full" a subtree is.
//
// Children are ordered [NW, NE, SW, SE]. Leaf cells are stored row-major,
// cells[y][x], with y=0 at the top (smallest y) row of the leaf's square.
type Node struct {
	level      uint8
	population uint64
	children   [4]Handle
	cells      [LeafSize][LeafSize]uint8
}

// Level returns the node's level: it covers a 2^Level x 2^Level square.
func (n Node) Level() uint8 { return n.level }

// Population returns the total number of live cells covered by n.
func (n Node) Population() uint64 { return n.population }

// IsLeaf reports whether n stores cells directly.
func (n Node) IsLeaf() bool { return n.level == LeafLevel }

// IsBranch reports whether n delegates to four children.
func (n Node) IsBranch() bool { return n.level > LeafLevel }

// Cell returns the cell at local leaf coordinates (x,y), each in
// [0, LeafSize). Panics if n is not a leaf — this is an invariant
// violation, not a user-facing error.
func (n Node) Cell(x, y int) uint8 {
	if !n.IsLeaf() {
		panic("arena: Cell called on a branch node")
	}
	return n.cells[y][x]
}

// Child returns the i-th child handle (0=NW, 1=NE, 2=SW, 3=SE). Panics
// if n is a leaf.
func (n Node) Child(i int) Handle {
	if !n.IsBranch() {
		panic("arena: Child called on a leaf node")
	}
	return n.children[i]
}

// ChildIndex maps a coordinate, relative to a branch's own center, to
// the index of the child quadrant containing it: NW=0, NE=1, SW=2, SE=3.
func ChildIndex(x, y int64) int {
	idx := 0
	if x >= 0 {
		idx |= 1
	}
	if y >= 0 {
		idx |= 2
	}
	return idx
}

// ChildOffset returns the (dx, dy) added to a coordinate, local to a
// level-L branch, to re-express it local to the center of child i.
// childLevel is the level of the children (L-1).
func ChildOffset(i int, childLevel uint8) (dx, dy int64) {
	half := int64(1) << (childLevel - 1)
	switch i {
	case 0: // NW
		return half, half
	case 1: // NE
		return -half, half
	case 2: // SW
		return half, -half
	default: // SE
		return -half, -half
	}
}

func newLeaf(cells [LeafSize][LeafSize]uint8) Node {
	var pop uint64
	for _, row := range cells {
		for _, c := range row {
			pop += uint64(c)
		}
	}
	return Node{level: LeafLevel, population: pop, cells: cells}
}

func newBranch(level uint8, nw, ne, sw, se Handle, a *Arena) Node {
	pop := a.get(nw).population + a.get(ne).population + a.get(sw).population + a.get(se).population
	return Node{level: level, population: pop, children: [4]Handle{nw, ne, sw, se}}
}
