// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package universe

import "testing"

func TestSetGridMetaTilesOnAndOffPatterns(t *testing.T) {
	u, err := New(Options{InitialLevel: MetaCellLevel + 4})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	const on = "x = 1, y = 1\no!"
	const off = "x = 1, y = 1\nb!"
	grid := [][]uint8{
		{1, 0},
		{0, 1},
	}

	if err := u.SetGridMeta(grid, on, off); err != nil {
		t.Fatalf("SetGridMeta: %v", err)
	}

	// The composition always leaves a nonempty universe: at minimum the
	// corner-marker overlay is stamped at every tile boundary regardless
	// of which cells were "on".
	if u.Population() == 0 {
		t.Fatal("SetGridMeta produced an empty universe")
	}
}

func TestFloorPow2(t *testing.T) {
	cases := map[int64]int64{1: 1, 2: 2, 3: 2, 4: 4, 5: 4, 8: 8, 9: 8}
	for n, want := range cases {
		if got := floorPow2(n); got != want {
			t.Errorf("floorPow2(%d) = %d, want %d", n, got, want)
		}
	}
}
