// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package universe

import (
	"fmt"

	"github.com/conwaylife/hashlife/quadtree"
	"github.com/conwaylife/hashlife/rle"
)

// Export renders the universe's live cells as an RLE document, with
// the session id stamped as an #O advisory comment so a pattern
// round-tripped through sharelink or a pattern-library file can still
// be traced back to the session that produced it.
func (u *Universe) Export() string {
	rect, ok := u.BoundingRect()
	if !ok {
		return fmt.Sprintf("#O %s\nx = 0, y = 0, rule = B3/S23\n!\n", u.id)
	}

	var pts []quadtree.Point
	for p := range u.IterAliveInRect(rect) {
		pts = append(pts, p)
	}
	return fmt.Sprintf("#O %s\n%s", u.id, rle.FromIter(pts, rect.X1, rect.Y1, rect.X2, rect.Y2))
}
