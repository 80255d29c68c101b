// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package universe_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/conwaylife/hashlife/quadtree"
	"github.com/conwaylife/hashlife/universe"
)

func newUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	u, err := universe.New(universe.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return u
}

func TestSetGetRoundTrip(t *testing.T) {
	u := newUniverse(t)
	if err := u.Set(3, -2, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := u.Get(3, -2); got != 1 {
		t.Fatalf("Get after Set = %d, want 1", got)
	}
	if u.Population() != 1 {
		t.Fatalf("Population = %d, want 1", u.Population())
	}
}

func TestSetGrowsRootToFitFarCoordinate(t *testing.T) {
	u := newUniverse(t)
	far := int64(1) << 40
	if err := u.Set(far, far, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := u.Get(far, far); got != 1 {
		t.Fatalf("Get after growing Set = %d, want 1", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	u := newUniverse(t)
	u.PushSnapshot()
	if err := u.Set(0, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if u.Population() != 1 {
		t.Fatalf("Population before undo = %d, want 1", u.Population())
	}

	if !u.Undo() {
		t.Fatal("Undo reported no snapshot available")
	}
	if u.Population() != 0 {
		t.Fatalf("Population after undo = %d, want 0", u.Population())
	}

	if !u.Redo() {
		t.Fatal("Redo reported no snapshot available")
	}
	if u.Population() != 1 {
		t.Fatalf("Population after redo = %d, want 1", u.Population())
	}
}

func TestUndoAtEmptyStackIsNoOp(t *testing.T) {
	u := newUniverse(t)
	if u.Undo() {
		t.Fatal("Undo on an empty stack reported success")
	}
}

func TestRedoClearedByNewPushAfterUndo(t *testing.T) {
	u := newUniverse(t)
	u.PushSnapshot()
	if err := u.Set(0, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	u.Undo()

	u.PushSnapshot()
	if err := u.Set(1, 1, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if u.Redo() {
		t.Fatal("Redo succeeded after a fresh PushSnapshot should have cleared the redo stack")
	}
}

func TestStepAdvancesGenerationByTwoToTheStepExponent(t *testing.T) {
	u := newUniverse(t)
	u.SetStepExponent(2)
	// A glider, so the universe doesn't just die out.
	glider := []quadtree.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	for _, p := range glider {
		if err := u.Set(p.X, p.Y, 1); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	if err := u.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if u.Generation() != 4 {
		t.Fatalf("Generation after one Step at k=2 = %d, want 4", u.Generation())
	}
	if u.Population() != 5 {
		t.Fatalf("glider population after stepping = %d, want 5", u.Population())
	}
}

func TestStepAdvanceIsCappedByGrownLevelNotResultLevel(t *testing.T) {
	u := newUniverse(t)
	// Default InitialLevel is 8; Grown always adds exactly one level, so
	// StepNode's input is level 9 and its result is level 8. The k cap
	// must come from the level-9 input (2^(9-2) = 128), not the level-8
	// result (2^(8-2) = 64).
	u.SetStepExponent(7)
	glider := []quadtree.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	for _, p := range glider {
		if err := u.Set(p.X, p.Y, 1); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	if err := u.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if u.Generation() != 128 {
		t.Fatalf("Generation after one Step at k=7 on a level-8 root = %d, want 128", u.Generation())
	}
}

func TestStepContextHonorsCancellation(t *testing.T) {
	u := newUniverse(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := u.StepContext(ctx); err == nil {
		t.Fatal("StepContext with a cancelled context returned nil error")
	}
	if u.Generation() != 0 {
		t.Fatalf("Generation after a cancelled StepContext = %d, want 0", u.Generation())
	}
}

func TestBoundingRectOnEmptyUniverseReportsFalse(t *testing.T) {
	u := newUniverse(t)
	if _, ok := u.BoundingRect(); ok {
		t.Fatal("BoundingRect on an empty universe reported ok=true")
	}
}

func TestBoundingRectTracksLiveCells(t *testing.T) {
	u := newUniverse(t)
	for _, p := range []quadtree.Point{{X: -5, Y: -5}, {X: 5, Y: 5}} {
		if err := u.Set(p.X, p.Y, 1); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}
	r, ok := u.BoundingRect()
	if !ok {
		t.Fatal("BoundingRect reported ok=false for a non-empty universe")
	}
	want := quadtree.Rect{X1: -5, Y1: -5, X2: 5, Y2: 5}
	if r != want {
		t.Fatalf("BoundingRect = %+v, want %+v", r, want)
	}
}

func TestSetPointsContextAppliesCopyModeOnceAcrossChunks(t *testing.T) {
	u := newUniverse(t)
	clip := quadtree.Rect{X1: -8, Y1: -8, X2: 8, Y2: 8}
	// Pre-existing live cell inside clip that is not in the new point
	// list: Copy mode must clear it even though the import is chunked.
	if err := u.Set(0, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}

	pts := []quadtree.Point{{X: -3, Y: -3}, {X: 3, Y: 3}}
	if err := u.SetPointsContext(context.Background(), pts, clip, quadtree.Copy); err != nil {
		t.Fatalf("SetPointsContext: %v", err)
	}

	if got := u.Get(0, 0); got != 0 {
		t.Fatalf("Get(0,0) after Copy-mode import = %d, want 0 (cleared)", got)
	}
	for _, p := range pts {
		if got := u.Get(p.X, p.Y); got != 1 {
			t.Fatalf("Get%+v after Copy-mode import = %d, want 1", p, got)
		}
	}
}

func TestSetPointsContextHonorsCancellation(t *testing.T) {
	u := newUniverse(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pts := make([]quadtree.Point, 1<<17)
	for i := range pts {
		pts[i] = quadtree.Point{X: int64(i % 100), Y: int64(i / 100)}
	}
	clip := quadtree.Rect{X1: 0, Y1: 0, X2: 99, Y2: int64(len(pts)/100) + 1}

	err := u.SetPointsContext(ctx, pts, clip, quadtree.Copy)
	if err == nil {
		t.Fatal("SetPointsContext with an already-cancelled context returned nil error")
	}
}

func TestRandomizeRectIsReproducibleWithSameSeed(t *testing.T) {
	rect := quadtree.Rect{X1: -4, Y1: -4, X2: 4, Y2: 4}

	run := func(seed uint64) []quadtree.Point {
		u := newUniverse(t)
		rng := rand.New(rand.NewPCG(seed, seed))
		if err := u.RandomizeRect(rect, 0.5, rng); err != nil {
			t.Fatalf("RandomizeRect: %v", err)
		}
		var pts []quadtree.Point
		for p := range u.IterAliveInRect(rect) {
			pts = append(pts, p)
		}
		return pts
	}

	a := run(42)
	b := run(42)
	if len(a) != len(b) {
		t.Fatalf("same-seed RandomizeRect produced different population: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same-seed RandomizeRect diverged at index %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGetNodeSetNodeRoundTrip(t *testing.T) {
	// arena.Handle is only meaningful relative to the Arena that produced
	// it, so GetNode/SetNode must be exercised within a single Universe
	// (and its single underlying Arena) rather than carrying a Handle
	// across two independently constructed Universes.
	u := newUniverse(t)
	if err := u.Set(0, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sub := u.GetNode(0, 0, 3)
	if err := u.SetNode(16, 16, 3, sub); err != nil {
		t.Fatalf("SetNode: %v", err)
	}
	if got := u.Get(16, 16); got != 1 {
		t.Fatalf("Get after SetNode round trip = %d, want 1", got)
	}
	if got := u.Get(0, 0); got != 1 {
		t.Fatalf("Get(0,0) after pasting elsewhere = %d, want 1 (original left untouched)", got)
	}
}
