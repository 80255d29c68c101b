// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package hashlife implements the memoised step_node recursion: given a
// quadtree node and an exponent k, it returns the node one level down
// representing that subtree advanced min(2^k, 2^(level-2)) generations
// of B3/S23 Conway's Life.
//
// Evaluation assumes B3/S23 throughout (see spec Non-goals); a rule
// string travels with a parsed pattern only as metadata, it never
// changes which transition table stepBase applies.
package hashlife

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/conwaylife/hashlife/internal/arena"
	"github.com/conwaylife/hashlife/quadtree"
)

// memoKey is the evaluator's cache key. Arena.Insert already guarantees
// that structurally identical content shares one Handle, so the Handle
// itself is as good a proxy for "content of n" as a freshly computed
// content hash would be — using it directly skips a redundant rehash on
// every memo lookup.
type memoKey struct {
	h arena.Handle
	k uint8
}

// Evaluator holds the memoisation cache backing StepNode. It is bound to
// a single Arena and is not safe for concurrent use, matching the
// single-threaded cooperative model the rest of this module assumes.
type Evaluator struct {
	a     *arena.Arena
	cache *lru.Cache[memoKey, arena.Handle]
	log   *logrus.Entry
}

// NewEvaluator creates an Evaluator over a whose memo cache holds at
// most cacheSize entries, evicting least-recently-used results once
// full. This answers the spec's open question about unbounded cache
// growth: a caller that wants an effectively unbounded cache can pass a
// very large cacheSize, but the default wiring (internal/config) picks a
// finite one.
func NewEvaluator(a *arena.Arena, cacheSize int) (*Evaluator, error) {
	c, err := lru.New[memoKey, arena.Handle](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		a:     a,
		cache: c,
		log:   logrus.WithField("component", "hashlife"),
	}, nil
}

// CacheLen returns the number of memoised results currently held, for
// metrics reporting.
func (e *Evaluator) CacheLen() int { return e.cache.Len() }

// StepNode returns the handle of the node one level below h representing
// h's content advanced min(2^k, 2^(h.Level()-2)) generations.
func (e *Evaluator) StepNode(h arena.Handle, k uint8) arena.Handle {
	n := e.a.Get(h)

	// Fast exit: under B3/S23, a region with fewer than 3 live cells
	// cannot survive or give birth next generation regardless of k, so
	// it is dead one level down. Checked before the cache lookup so
	// such nodes never occupy a memo slot.
	if n.Population() < 3 {
		return e.a.EmptyTower(n.Level() - 1)
	}

	key := memoKey{h: h, k: k}
	if v, ok := e.cache.Get(key); ok {
		return v
	}

	level := n.Level()
	var result arena.Handle
	if level == arena.LeafLevel+1 {
		result = stepBase(e.a, h, k)
	} else {
		result = e.stepBranch(h, level, k)
	}

	e.cache.Add(key, result)
	return result
}

// stepBranch implements the recursive case: nine overlapping level-
// (level-1) "sub_9" windows are evaluated, four overlapping level-
// (level-1) "sub_4" branches are built from them, and those are either
// stepped a second half-generation (when k leaves enough headroom) or
// reduced to their own centre (when k was already fully spent higher up
// the tree).
func (e *Evaluator) stepBranch(h arena.Handle, level uint8, k uint8) arena.Handle {
	quarter := quadtree.Half(level - 1)

	var quads [9]arena.Handle
	i := 0
	for _, dy := range [3]int64{-1, 0, 1} {
		for _, dx := range [3]int64{-1, 0, 1} {
			pc := pseudoChild(e.a, h, dx*quarter, dy*quarter, level-1)
			quads[i] = e.StepNode(pc, k)
			i++
		}
	}

	children := [4]arena.Handle{
		e.a.InsertBranch(level-1, quads[0], quads[1], quads[3], quads[4]),
		e.a.InsertBranch(level-1, quads[1], quads[2], quads[4], quads[5]),
		e.a.InsertBranch(level-1, quads[3], quads[4], quads[6], quads[7]),
		e.a.InsertBranch(level-1, quads[4], quads[5], quads[7], quads[8]),
	}

	if int(k)+2 >= int(level) {
		for idx, c := range children {
			children[idx] = e.StepNode(c, k)
		}
	} else {
		for idx, c := range children {
			children[idx] = pseudoChild(e.a, c, 0, 0, level-2)
		}
	}

	return e.a.InsertBranch(level-1, children[0], children[1], children[2], children[3])
}
