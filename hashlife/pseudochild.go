// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package hashlife

import (
	"github.com/conwaylife/hashlife/internal/arena"
	"github.com/conwaylife/hashlife/quadtree"
)

// pseudoChild returns the handle of the level subtree of root whose
// square is centred at world point (wx, wy). Unlike quadtree.GetNode,
// the requested square need not align with any real node boundary: the
// nine overlapping "sub_9" windows step_node builds at each level are
// centred half a child-width off from root's actual children, so they
// straddle the real tree structure rather than naming an existing
// child. pseudoChild handles that by decomposing down to individual
// cells (via quadtree.Get, which is correct for any coordinate) and
// reassembling through Arena.Insert, whose content dedup still collapses
// the result to an existing handle whenever the window happens to align
// with real structure after all.
//
// Grounded in Node::get_pseudo_child in the original source, generalised
// from its grandchild-splicing special case to a single recursion that
// needs no leaf-vs-branch distinction beyond the usual level == LeafLevel
// base case.
func pseudoChild(a *arena.Arena, root arena.Handle, wx, wy int64, level uint8) arena.Handle {
	if level == arena.LeafLevel {
		half := quadtree.Half(level)
		var cells [arena.LeafSize][arena.LeafSize]uint8
		for y := 0; y < arena.LeafSize; y++ {
			for x := 0; x < arena.LeafSize; x++ {
				cells[y][x] = quadtree.Get(a, root, wx-half+int64(x), wy-half+int64(y))
			}
		}
		return a.InsertLeaf(cells)
	}

	childLevel := level - 1
	var centers [4][2]int64
	for idx := 0; idx < 4; idx++ {
		dx, dy := arena.ChildOffset(idx, childLevel)
		centers[idx] = [2]int64{wx - dx, wy - dy}
	}

	var children [4]arena.Handle
	for idx, c := range centers {
		children[idx] = pseudoChild(a, root, c[0], c[1], childLevel)
	}
	return a.InsertBranch(level, children[0], children[1], children[2], children[3])
}
