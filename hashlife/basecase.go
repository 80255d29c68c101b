// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package hashlife

import (
	"github.com/conwaylife/hashlife/internal/arena"
	"github.com/conwaylife/hashlife/quadtree"
)

// baseGridSize is the padded working grid (8x8 core plus one dead ring
// on each side) the level-3 base case simulates directly.
const baseGridSize = 10

// neighborCount sums the eight Moore neighbours of (x,y) within grid,
// treating anything outside the grid's bounds as dead. Grounded in
// Universe::neighbor_count from the original source, generalised from
// point-wise quadtree lookups to a flat materialised grid so the base
// case can double-buffer without re-walking the tree every generation.
func neighborCount(grid [baseGridSize][baseGridSize]uint8, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || nx >= baseGridSize || ny < 0 || ny >= baseGridSize {
				continue
			}
			count += int(grid[ny][nx])
		}
	}
	return count
}

// stepBase advances a level-3 node (an 8x8 square, one level above a
// leaf) by min(2^k, 2) generations of B3/S23 and returns the resulting
// level-2 (leaf) node centred on the same point.
//
// The 8x8 core is embedded in a 10x10 grid with one dead ring on every
// side. The extracted 4x4 result sits 3 cells in from every edge of
// that 10x10 grid, and corruption from treating the ring as a hard
// boundary can only reach 1 cell deeper per generation simulated, so up
// to 2 generations leave the inner 4x4 exact regardless of what truly
// lies beyond this node's square.
func stepBase(a *arena.Arena, h arena.Handle, k uint8) arena.Handle {
	half := quadtree.Half(arena.LeafLevel + 1)

	var grid [baseGridSize][baseGridSize]uint8
	for y := 0; y < int(2*half); y++ {
		for x := 0; x < int(2*half); x++ {
			grid[y+1][x+1] = quadtree.Get(a, h, int64(x)-half, int64(y)-half)
		}
	}

	steps := 1
	if k > 0 {
		steps = 2
	}

	for s := 0; s < steps; s++ {
		var next [baseGridSize][baseGridSize]uint8
		for y := 0; y < baseGridSize; y++ {
			for x := 0; x < baseGridSize; x++ {
				n := neighborCount(grid, x, y)
				switch {
				case grid[y][x] == 1 && (n == 2 || n == 3):
					next[y][x] = 1
				case grid[y][x] == 0 && n == 3:
					next[y][x] = 1
				}
			}
		}
		grid = next
	}

	var cells [arena.LeafSize][arena.LeafSize]uint8
	for y := 0; y < arena.LeafSize; y++ {
		for x := 0; x < arena.LeafSize; x++ {
			cells[y][x] = grid[y+3][x+3]
		}
	}
	return a.InsertLeaf(cells)
}
