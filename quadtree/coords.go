// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package quadtree

// PartitionPoints reorders pts in place into four contiguous runs — NW,
// NE, SW, SE, in arena.ChildIndex order — according to which quadrant of
// a node centred at the local origin each point falls into, and returns
// the four sub-slices. It runs in O(len(pts)) time and uses no auxiliary
// storage beyond three fixed [4]int arrays (bucket counts, bucket starts
// and write positions), via the same in-place counting-sort
// permutation a fixed small alphabet admits (the multi-way generalisation
// of Dutch national flag partitioning).
func PartitionPoints(pts []Point) (nw, ne, sw, se []Point) {
	var counts [4]int
	for _, p := range pts {
		counts[quadrant(p)]++
	}

	var starts [4]int
	for i := 1; i < 4; i++ {
		starts[i] = starts[i-1] + counts[i-1]
	}
	pos := starts

	for b := 0; b < 4; b++ {
		end := starts[b] + counts[b]
		for pos[b] < end {
			pb := quadrant(pts[pos[b]])
			if int(pb) == b {
				pos[b]++
				continue
			}
			pts[pos[b]], pts[pos[pb]] = pts[pos[pb]], pts[pos[b]]
			pos[pb]++
		}
	}

	return pts[starts[0] : starts[0]+counts[0]],
		pts[starts[1] : starts[1]+counts[1]],
		pts[starts[2] : starts[2]+counts[2]],
		pts[starts[3] : starts[3]+counts[3]]
}

func quadrant(p Point) uint8 {
	var b uint8
	if p.X >= 0 {
		b |= 1
	}
	if p.Y >= 0 {
		b |= 2
	}
	return b
}

// offsetPoints adds (dx,dy) to every point in pts, translating a batch
// from a parent's local frame into one of its children's.
func offsetPoints(pts []Point, dx, dy int64) {
	for i := range pts {
		pts[i].X += dx
		pts[i].Y += dy
	}
}
