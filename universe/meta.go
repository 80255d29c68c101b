// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package universe

import (
	"math/bits"

	"github.com/conwaylife/hashlife/quadtree"
	"github.com/conwaylife/hashlife/rle"
)

// MetaCellLevel is the level at which SetGridMeta renders each logical
// cell of a meta-grid as a sub-universe, matching the reference
// implementation's Otca-metapixel convention.
const MetaCellLevel = 11

// MetaCellSize is the side length, in cells, of one meta-cell.
const MetaCellSize = int64(1) << MetaCellLevel

// cornersRLE stamps a small marker at the four corners of every
// meta-cell tile so tile seams stay visually distinguishable once
// composed; lifted verbatim from the reference implementation, which
// carries it as a literal data pattern rather than deriving it.
const cornersRLE = `
x = 2058, y = 2058, rule = B3/S23
bo2054bo$obo2052bobo$bo2054bo2$4b2o2046b2o$4bo2048bo2047$4bo2048bo$4b
2o2046b2o2$bo2054bo$obo2052bobo$bo2054bo!
`

// floorPow2 returns the largest power of two <= n, for n >= 1.
func floorPow2(n int64) int64 {
	return int64(1) << (bits.Len64(uint64(n)) - 1)
}

// SetGridMeta composes a macro-pattern by placing, at each cell of
// grid, either the onRLE or offRLE sub-universe rendered at
// MetaCellLevel, then overlays corner markers at every tile boundary.
// This realises Otca-metapixel-style universes within universes: grid
// is a coarse binary image, and each of its pixels becomes a full Life
// pattern in its own right.
func (u *Universe) SetGridMeta(grid [][]uint8, onRLE, offRLE string) error {
	height := int64(len(grid))
	if height == 0 || len(grid[0]) == 0 {
		return nil
	}
	width := int64(len(grid[0]))

	h := floorPow2(max(width+2, height+2))
	extraWidth := 2*h - width
	extraHeight := 2*h - height

	half := int64(1) << (u.Level() - 1)
	clip := quadtree.Rect{X1: -half, Y1: -half, X2: half - 1, Y2: half - 1}

	offPoints, err := collectAlive(offRLE, -5, -5)
	if err != nil {
		return err
	}
	if err := u.SetPoints(offPoints, clip, quadtree.Copy); err != nil {
		return err
	}
	offRef := u.GetNode(0, 0, MetaCellLevel)
	u.Clear()

	onPoints, err := collectAlive(onRLE, -5, -5)
	if err != nil {
		return err
	}
	if err := u.SetPoints(onPoints, clip, quadtree.Copy); err != nil {
		return err
	}
	onRef := u.GetNode(0, 0, MetaCellLevel)
	u.Clear()

	for y := -h; y < h; y++ {
		for x := -h; x < h; x++ {
			i := y + h - extraHeight/2
			j := x + h - extraWidth/2
			sub := offRef
			if i >= 0 && i < height && j >= 0 && j < width && grid[i][j] != 0 {
				sub = onRef
			}
			if err := u.SetNode(x*MetaCellSize, y*MetaCellSize, MetaCellLevel, sub); err != nil {
				return err
			}
		}
	}

	cornerPoints, err := collectAlive(cornersRLE, 0, 0)
	if err != nil {
		return err
	}
	for dy := -h; dy < h; dy++ {
		for dx := -h; dx < h; dx++ {
			ox, oy := dx*MetaCellSize-5, dy*MetaCellSize-5
			pts := make([]quadtree.Point, len(cornerPoints))
			for i, p := range cornerPoints {
				pts[i] = quadtree.Point{X: p.X + ox, Y: p.Y + oy}
			}
			tile := quadtree.Rect{X1: ox, Y1: oy, X2: ox + MetaCellSize + 10, Y2: oy + MetaCellSize + 10}
			if err := u.SetPoints(pts, tile, quadtree.Or); err != nil {
				return err
			}
		}
	}
	return nil
}

func collectAlive(source string, dx, dy int64) ([]quadtree.Point, error) {
	seq, err := rle.IterAlive(source)
	if err != nil {
		return nil, err
	}
	var pts []quadtree.Point
	for p := range seq {
		pts = append(pts, quadtree.Point{X: p.X + dx, Y: p.Y + dy})
	}
	return pts, nil
}
