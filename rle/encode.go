// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package rle

import (
	"fmt"
	"sort"

	"github.com/conwaylife/hashlife/internal/bufpool"
	"github.com/conwaylife/hashlife/quadtree"
)

// wrapWidth is where FromIter soft-wraps a body line, matching the
// conventional ~70-column RLE line length other tools in the ecosystem
// emit and expect.
const wrapWidth = 70

// FromIter encodes every point in pts that falls within the inclusive
// rectangle [x1,x2]x[y1,y2] as an RLE document, with (x1,y1) mapped to
// local (0,0). Trailing dead cells in a row, and trailing all-dead
// rows, are omitted per the RLE convention; the last included row
// ends with '!' rather than '$'.
func FromIter(pts []quadtree.Point, x1, y1, x2, y2 int64) string {
	width := x2 - x1 + 1
	height := y2 - y1 + 1
	if width <= 0 || height <= 0 {
		return "x = 0, y = 0, rule = B3/S23\n!\n"
	}

	sorted := make([]quadtree.Point, 0, len(pts))
	for _, p := range pts {
		if p.X >= x1 && p.X <= x2 && p.Y >= y1 && p.Y <= y2 {
			sorted = append(sorted, quadtree.Point{X: p.X - x1, Y: p.Y - y1})
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	b := bufpool.GetBuilder()
	defer bufpool.PutBuilder(b)

	fmt.Fprintf(b, "x = %d, y = %d, rule = B3/S23\n", width, height)

	lineLen := 0
	emit := func(tok string) {
		if lineLen+len(tok) > wrapWidth {
			b.WriteByte('\n')
			lineLen = 0
		}
		b.WriteString(tok)
		lineLen += len(tok)
	}

	row, col := int64(0), int64(0)
	i := 0
	pendingRows := 0 // blank rows buffered since the last content row (or start)
	seenContent := false

	flushPendingRows := func() {
		// A row transition is needed for every pending blank row, plus
		// one more to leave the previous content row — except before
		// the very first content row, where there is no previous row
		// to leave and pendingRows alone already counts the rows to skip.
		count := pendingRows
		if seenContent {
			count++
		}
		if count > 0 {
			emit(runToken(count, '$'))
		}
		pendingRows = 0
	}

	for row < height {
		// Find the run of points on this row, if any.
		rowStart := i
		for i < len(sorted) && sorted[i].Y == row {
			i++
		}
		rowPts := sorted[rowStart:i]

		if len(rowPts) == 0 {
			pendingRows++
			row++
			col = 0
			continue
		}
		flushPendingRows()
		seenContent = true

		col = 0
		idx := 0
		for idx < len(rowPts) {
			p := rowPts[idx]
			if p.X > col {
				emit(runToken(int(p.X-col), 'b'))
			}
			run := 1
			for idx+run < len(rowPts) && rowPts[idx+run].X == rowPts[idx+run-1].X+1 {
				run++
			}
			emit(runToken(run, 'o'))
			col = p.X + int64(run)
			idx += run
		}
		row++
	}

	b.WriteString("!")
	return b.String()
}

// runToken renders a single run-length token: the count (omitted when
// 1) followed by tag.
func runToken(count int, tag byte) string {
	if count == 1 {
		return string(tag)
	}
	return fmt.Sprintf("%d%c", count, tag)
}
