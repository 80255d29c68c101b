// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package hashlife_test

import (
	"testing"

	"github.com/conwaylife/hashlife/hashlife"
	"github.com/conwaylife/hashlife/internal/arena"
	"github.com/conwaylife/hashlife/quadtree"
)

func newEvaluator(t *testing.T, a *arena.Arena) *hashlife.Evaluator {
	t.Helper()
	ev, err := hashlife.NewEvaluator(a, 4096)
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}
	return ev
}

func TestStepNodeOnEmptyUniverseReturnsEmptyOneLevelDown(t *testing.T) {
	a := arena.New(64)
	ev := newEvaluator(t, a)

	h := a.EmptyTower(6)
	got := ev.StepNode(h, 3)
	want := a.EmptyTower(5)
	if got != want {
		t.Fatalf("StepNode on an empty universe = %v, want the empty tower at level 5 (%v)", got, want)
	}
}

func TestStepNodeOnSubThreePopulationDiesWithoutMemoising(t *testing.T) {
	a := arena.New(64)
	root := a.EmptyTower(6)
	// Two isolated live cells, far apart: population 2, well under the
	// 3-neighbour threshold B3/S23 needs for birth or survival anywhere
	// in this subtree.
	root = quadtree.Set(a, root, -3, -3, 1)
	root = quadtree.Set(a, root, 3, 3, 1)

	ev := newEvaluator(t, a)
	grown, err := quadtree.Grown(a, root)
	if err != nil {
		t.Fatalf("Grown: %v", err)
	}

	next := ev.StepNode(grown, 0)
	if pop := a.Get(next).Population(); pop != 0 {
		t.Fatalf("population after stepping a sub-3-population node = %d, want 0", pop)
	}
	if ev.CacheLen() != 0 {
		t.Fatalf("fast exit memoised a sub-3-population node, cache len = %d, want 0", ev.CacheLen())
	}
}

func TestBlockIsStillLife(t *testing.T) {
	a := arena.New(64)
	root := a.EmptyTower(6)
	pts := []quadtree.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	for _, p := range pts {
		root = quadtree.Set(a, root, p.X, p.Y, 1)
	}

	ev := newEvaluator(t, a)
	grown, err := quadtree.Grown(a, root)
	if err != nil {
		t.Fatalf("Grown: %v", err)
	}
	next := ev.StepNode(grown, 0)

	for _, p := range pts {
		if got := quadtree.Get(a, next, p.X, p.Y); got != 1 {
			t.Fatalf("block cell %+v died after one generation", p)
		}
	}
	if pop := a.Get(next).Population(); pop != 4 {
		t.Fatalf("population after stepping a block = %d, want 4", pop)
	}
}

func TestBlinkerOscillatesWithPeriodTwo(t *testing.T) {
	a := arena.New(64)
	root := a.EmptyTower(6)
	vertical := []quadtree.Point{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}}
	horizontal := []quadtree.Point{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	for _, p := range vertical {
		root = quadtree.Set(a, root, p.X, p.Y, 1)
	}

	ev := newEvaluator(t, a)

	step := func(h arena.Handle) arena.Handle {
		grown, err := quadtree.Grown(a, h)
		if err != nil {
			t.Fatalf("Grown: %v", err)
		}
		return ev.StepNode(grown, 0)
	}

	afterOne := step(root)
	for _, p := range horizontal {
		if got := quadtree.Get(a, afterOne, p.X, p.Y); got != 1 {
			t.Fatalf("blinker cell %+v not alive after one generation", p)
		}
	}
	if pop := a.Get(afterOne).Population(); pop != 3 {
		t.Fatalf("population after one blinker generation = %d, want 3", pop)
	}

	afterTwo := step(afterOne)
	for _, p := range vertical {
		if got := quadtree.Get(a, afterTwo, p.X, p.Y); got != 1 {
			t.Fatalf("blinker cell %+v not alive after two generations (should match start)", p)
		}
	}
}

func TestBaseCaseAdvancesTwoGenerationsForExponentOne(t *testing.T) {
	a := arena.New(64)
	h := a.EmptyTower(arena.LeafLevel + 1)
	for _, p := range []quadtree.Point{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}} {
		h = quadtree.Set(a, h, p.X, p.Y, 1)
	}

	ev := newEvaluator(t, a)
	next := ev.StepNode(h, 1) // k=1 -> up to 2 generations at the base case

	for _, p := range []quadtree.Point{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}} {
		if got := quadtree.Get(a, next, p.X, p.Y); got != 1 {
			t.Fatalf("blinker cell %+v not alive after two base-case generations", p)
		}
	}
}

func TestGliderTranslatesDiagonallyAfterFourGenerations(t *testing.T) {
	a := arena.New(64)
	root := a.EmptyTower(7)
	glider := []quadtree.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	for _, p := range glider {
		root = quadtree.Set(a, root, p.X, p.Y, 1)
	}

	ev := newEvaluator(t, a)
	for i := 0; i < 4; i++ {
		grown, err := quadtree.Grown(a, root)
		if err != nil {
			t.Fatalf("Grown: %v", err)
		}
		root = ev.StepNode(grown, 0)
	}

	for _, p := range glider {
		want := quadtree.Point{X: p.X + 1, Y: p.Y + 1}
		if got := quadtree.Get(a, root, want.X, want.Y); got != 1 {
			t.Fatalf("expected glider cell at %+v after four generations, got dead", want)
		}
	}
	if pop := a.Get(root).Population(); pop != 5 {
		t.Fatalf("glider population after translation = %d, want 5", pop)
	}
}

func TestMemoCacheReturnsIdenticalResultOnRepeatedCall(t *testing.T) {
	a := arena.New(64)
	root := a.EmptyTower(6)
	root = quadtree.Set(a, root, 0, 0, 1)
	root = quadtree.Set(a, root, 1, 0, 1)
	root = quadtree.Set(a, root, 0, 1, 1)

	ev := newEvaluator(t, a)
	grown, err := quadtree.Grown(a, root)
	if err != nil {
		t.Fatalf("Grown: %v", err)
	}

	first := ev.StepNode(grown, 0)
	lenAfterFirst := ev.CacheLen()
	second := ev.StepNode(grown, 0)

	if first != second {
		t.Fatalf("StepNode is not deterministic across calls: %v != %v", first, second)
	}
	if ev.CacheLen() != lenAfterFirst {
		t.Fatalf("repeated StepNode call grew the memo cache: %d -> %d", lenAfterFirst, ev.CacheLen())
	}
}
