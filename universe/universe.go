// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package universe binds arena, quadtree and hashlife into the stateful
// session a caller actually drives: a mutable root handle, a generation
// counter, an undo/redo stack of past roots, and the policy decisions
// quadtree deliberately has no opinion on — when to grow the root, and
// how far to advance per Step.
package universe

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/conwaylife/hashlife/hashlife"
	"github.com/conwaylife/hashlife/internal/arena"
	"github.com/conwaylife/hashlife/internal/lifeerr"
	"github.com/conwaylife/hashlife/internal/metrics"
	"github.com/conwaylife/hashlife/internal/telemetry"
	"github.com/conwaylife/hashlife/quadtree"
)

// snapshot is one entry on the undo/redo stack: enough to restore a
// prior state without re-deriving it, since the arena never discards a
// node a live handle still references.
type snapshot struct {
	root       arena.Handle
	generation uint64
}

// Options configures a new Universe. The zero value is valid: it yields
// a level-8 empty root, step exponent 0, a 65536-entry evaluator
// cache, no metrics, and a fresh random session ID.
type Options struct {
	// InitialLevel sizes the starting root; 0 defaults to 8.
	InitialLevel uint8
	// ArenaCapacityHint sizes the arena's initial node-vector capacity.
	ArenaCapacityHint int
	// StepExponent is the k in Step's "advance 2^k generations" contract.
	StepExponent uint8
	// EvaluatorCacheCapacity bounds hashlife.Evaluator's memo table.
	EvaluatorCacheCapacity int
	// Metrics, if non-nil, receives gauge/counter updates. A nil value
	// (the default) makes every instrumentation call a no-op.
	Metrics *metrics.Registry
}

const defaultInitialLevel = 8
const defaultCacheCapacity = 1 << 16

// Universe is one editable, steppable Game of Life session: a root
// handle into a shared Arena, a step exponent, a generation counter,
// and undo/redo history with no size limit. Not safe for concurrent use — callers
// that need concurrency serialize their own access, matching the
// single-threaded cooperative core spec §5 describes.
type Universe struct {
	arena *arena.Arena
	eval  *hashlife.Evaluator

	root       arena.Handle
	generation uint64
	stepExp    uint8

	undo []snapshot
	redo []snapshot

	id      uuid.UUID
	log     *logrus.Entry
	metrics *metrics.Registry
}

// New creates a Universe from opts, defaulting InitialLevel to 8 and
// EvaluatorCacheCapacity to 65536 when zero.
func New(opts Options) (*Universe, error) {
	level := opts.InitialLevel
	if level == 0 {
		level = defaultInitialLevel
	}
	if level < arena.LeafLevel+1 {
		level = arena.LeafLevel + 1
	}

	cacheCap := opts.EvaluatorCacheCapacity
	if cacheCap == 0 {
		cacheCap = defaultCacheCapacity
	}

	a := arena.New(opts.ArenaCapacityHint)
	eval, err := hashlife.NewEvaluator(a, cacheCap)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	u := &Universe{
		arena:   a,
		eval:    eval,
		root:    a.EmptyTower(level),
		stepExp: opts.StepExponent,
		id:      id,
		log:     logrus.WithField("component", "universe").WithField("session", id.String()),
		metrics: opts.Metrics,
	}
	u.log.WithField("initial_level", level).Debug("universe created")
	return u, nil
}

// ID returns the session identifier assigned at construction, stable
// for the Universe's lifetime.
func (u *Universe) ID() uuid.UUID { return u.id }

// Generation returns the number of generations advanced so far.
func (u *Universe) Generation() uint64 { return u.generation }

// StepExponent returns the k Step advances by (2^k generations per call).
func (u *Universe) StepExponent() uint8 { return u.stepExp }

// SetStepExponent changes k for future Step calls.
func (u *Universe) SetStepExponent(k uint8) { u.stepExp = k }

// Population returns the number of live cells in the current universe.
func (u *Universe) Population() uint64 { return u.arena.Get(u.root).Population() }

// Root returns the current root handle, for callers that need to reach
// into the arena directly.
func (u *Universe) Root() arena.Handle { return u.root }

// Arena returns the underlying Arena.
func (u *Universe) Arena() *arena.Arena { return u.arena }

// Level returns the current root's level.
func (u *Universe) Level() uint8 { return u.arena.Get(u.root).Level() }

// Clear replaces the contents of the universe with an empty tower at
// the current level, without changing the level itself. Used by
// SetGridMeta between extracting its on/off sub-patterns, and
// available directly for callers that want to blank a universe without
// losing its size.
func (u *Universe) Clear() {
	u.root = u.arena.EmptyTower(u.Level())
	u.generation = 0
}

// grow grows the root in a loop until (x,y) lies strictly inside its
// covered square, the policy quadtree itself stays agnostic about. A
// coordinate outside [-2^62, 2^62), the square of a MaxLevel root, is
// refused with lifeerr.OutOfBounds.
func (u *Universe) grow(x, y int64) error {
	limit := quadtree.Half(arena.MaxLevel)
	if x < -limit || x >= limit || y < -limit || y >= limit {
		return lifeerr.New(lifeerr.OutOfBounds, "coordinate (%d,%d) outside [-2^62, 2^62)", x, y)
	}
	for {
		half := quadtree.Half(u.arena.Get(u.root).Level())
		if x >= -half && x < half && y >= -half && y < half {
			return nil
		}
		grown, err := quadtree.Grown(u.arena, u.root)
		if err != nil {
			return err
		}
		u.root = grown
	}
}

// growRect is grow's rectangle-aware twin: it grows until every corner
// of rect lies inside the root's square.
func (u *Universe) growRect(rect quadtree.Rect) error {
	if err := u.grow(rect.X1, rect.Y1); err != nil {
		return err
	}
	return u.grow(rect.X2, rect.Y2)
}

// Get returns the cell at world coordinates (x,y).
func (u *Universe) Get(x, y int64) uint8 {
	return quadtree.Get(u.arena, u.root, x, y)
}

// Set sets the cell at (x,y), growing the root first if needed. Set
// does not push an undo snapshot on its own — callers that want an
// edit to be undoable call PushSnapshot first — but it does reset the
// generation counter to 0, since an edited universe is not a stepped
// continuation of whatever came before.
func (u *Universe) Set(x, y int64, v uint8) error {
	if err := u.grow(x, y); err != nil {
		return err
	}
	u.root = quadtree.Set(u.arena, u.root, x, y, v)
	u.generation = 0
	return nil
}

// SetPoints sets every point in pts alive within clip, per mode (see
// quadtree.InsertMode), growing the root to fit clip first.
func (u *Universe) SetPoints(pts []quadtree.Point, clip quadtree.Rect, mode quadtree.InsertMode) error {
	if err := u.growRect(clip); err != nil {
		return err
	}
	u.root = quadtree.SetPoints(u.arena, u.root, pts, clip, mode)
	u.generation = 0
	return nil
}

// ClearRect sets every cell within rect dead.
func (u *Universe) ClearRect(rect quadtree.Rect) error {
	if err := u.growRect(rect); err != nil {
		return err
	}
	u.root = quadtree.ClearRect(u.arena, u.root, rect)
	u.generation = 0
	return nil
}

// SetRect sets every cell within rect alive.
func (u *Universe) SetRect(rect quadtree.Rect) error {
	if err := u.growRect(rect); err != nil {
		return err
	}
	u.root = quadtree.SetRect(u.arena, u.root, rect)
	u.generation = 0
	return nil
}

// GetRect materialises rect as a dense [height][width]uint8 grid.
func (u *Universe) GetRect(rect quadtree.Rect) [][]uint8 {
	return quadtree.GetRect(u.arena, u.root, rect)
}

// BoundingRect returns the minimal rectangle enclosing every live cell,
// and false if the universe is empty.
func (u *Universe) BoundingRect() (quadtree.Rect, bool) {
	return quadtree.BoundingRect(u.arena, u.root)
}

// IterAliveInRect lazily yields every live cell within rect.
func (u *Universe) IterAliveInRect(rect quadtree.Rect) func(func(quadtree.Point) bool) {
	return quadtree.IterAliveInRect(u.arena, u.root, rect)
}

// Grown replaces the root with one level up, doubling the covered
// extent without moving any live cell. Exposed directly for callers
// that want to pre-grow a universe to a fixed size before loading a
// pattern.
func (u *Universe) Grown() error {
	grown, err := quadtree.Grown(u.arena, u.root)
	if err != nil {
		return err
	}
	u.root = grown
	return nil
}

// Shrunk replaces the root with one level down, if every live cell
// lies in the center half of the current root's square. It reports
// whether the shrink happened.
func (u *Universe) Shrunk() bool {
	shrunk, ok := quadtree.Shrunk(u.arena, u.root)
	if !ok {
		return false
	}
	u.root = shrunk
	return true
}

// GetNode returns the handle of the subtree at world coordinates (x,y)
// and the given level, for meta-cell extraction.
func (u *Universe) GetNode(x, y int64, level uint8) arena.Handle {
	return quadtree.GetNode(u.arena, u.root, x, y, level)
}

// SetNode replaces the whole subtree at (x,y) and the given level with
// sub, for meta-cell composition.
func (u *Universe) SetNode(x, y int64, level uint8, sub arena.Handle) error {
	if err := u.grow(x, y); err != nil {
		return err
	}
	u.root = quadtree.SetNode(u.arena, u.root, x, y, level, sub)
	u.generation = 0
	return nil
}

// PushSnapshot records the current root and generation so a later Undo
// can restore them. Pushing clears the redo stack: once a caller edits
// from a pushed state, whatever was previously available to redo no
// longer describes a reachable future of the new history.
func (u *Universe) PushSnapshot() {
	u.undo = append(u.undo, snapshot{root: u.root, generation: u.generation})
	u.redo = u.redo[:0]
}

// Undo restores the most recently pushed snapshot and reports whether
// one was available. Calling Undo with no pushed snapshots is a no-op
// that returns false.
func (u *Universe) Undo() bool {
	if len(u.undo) == 0 {
		return false
	}
	last := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	u.redo = append(u.redo, snapshot{root: u.root, generation: u.generation})
	u.root, u.generation = last.root, last.generation
	return true
}

// Redo re-applies the most recently undone snapshot and reports
// whether one was available.
func (u *Universe) Redo() bool {
	if len(u.redo) == 0 {
		return false
	}
	last := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	u.undo = append(u.undo, snapshot{root: u.root, generation: u.generation})
	u.root, u.generation = last.root, last.generation
	return true
}

// Step advances the universe by 2^k generations, where k is the
// current StepExponent. It runs to completion uninterruptibly; callers
// that want to cooperatively cancel a long-running step (e.g. a host
// UI thread interleaving redraws) use StepContext instead.
func (u *Universe) Step() error {
	return u.StepContext(context.Background())
}

// StepContext is Step's cancellable twin, mirroring
// SetPoints/SetPointsContext: it checks ctx before doing any work and
// wraps the call in a span, growing the root first so the evaluator
// always has at least one full ring of margin around live content. It
// does not push an undo snapshot; callers that want a step to be
// undoable call PushSnapshot first.
func (u *Universe) StepContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, span := telemetry.Tracer().Start(ctx, "Universe.Step")
	defer span.End()

	grown, err := quadtree.Grown(u.arena, u.root)
	if err != nil {
		return err
	}
	u.root = grown

	level := u.arena.Get(u.root).Level()
	u.root = u.eval.StepNode(u.root, u.stepExp)

	advance := uint64(1) << min(uint64(u.stepExp), uint64(level-2))
	u.generation += advance

	u.metrics.IncStep()
	u.metrics.SetGeneration(u.generation)
	u.metrics.SetPopulation(u.Population())
	u.metrics.SetNodeCount(u.arena.Len())
	u.metrics.SetCacheSize(u.eval.CacheLen())

	return nil
}

// setPointsChunk is how many points SetPointsContext applies between
// context cancellation checks. Large imports (millions of cells from a
// batch RLE load) would otherwise only notice a cancelled context after
// the whole edit completes.
const setPointsChunk = 1 << 16

// SetPointsContext is SetPoints's cancellable twin, for importing large
// point batches (e.g. rle.ImportMany results) without blocking a
// caller's shutdown indefinitely. It applies pts in fixed-size chunks,
// checking ctx between each; a cancellation leaves the universe with
// whatever chunks already applied, since each chunk's edit is already
// committed to the root by the time ctx is checked.
//
// Copy mode's "clear everything in clip not named" semantics only make
// sense applied once across the whole point set — chunking a Copy
// naively would have each later chunk re-clear the cells the earlier
// chunks just set. So only the first chunk runs in the caller's
// requested mode; every chunk after it runs in Or mode, which is safe
// because the first chunk already cleared clip down to its own points.
func (u *Universe) SetPointsContext(ctx context.Context, pts []quadtree.Point, clip quadtree.Rect, mode quadtree.InsertMode) error {
	_, span := telemetry.Tracer().Start(ctx, "Universe.SetPoints")
	defer span.End()

	if err := u.growRect(clip); err != nil {
		return err
	}

	if len(pts) == 0 {
		u.root = quadtree.SetPoints(u.arena, u.root, nil, clip, mode)
		u.generation = 0
		return nil
	}

	chunkMode := mode
	for start := 0; start < len(pts); start += setPointsChunk {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + setPointsChunk
		if end > len(pts) {
			end = len(pts)
		}
		u.root = quadtree.SetPoints(u.arena, u.root, pts[start:end], clip, chunkMode)
		chunkMode = quadtree.Or
	}
	u.generation = 0
	return nil
}

// RandomizeRect fills rect with live cells chosen independently with
// probability density (0..1], using rng for reproducibility. Existing
// cells outside the named points are cleared first (Copy mode), so
// RandomizeRect always replaces rather than overlays.
func (u *Universe) RandomizeRect(rect quadtree.Rect, density float64, rng interface{ Float64() float64 }) error {
	if density <= 0 {
		return u.ClearRect(rect)
	}
	if density > 1 {
		return lifeerr.New(lifeerr.OutOfBounds, "randomize density %f out of range (0,1]", density)
	}

	var pts []quadtree.Point
	for y := rect.Y1; y <= rect.Y2; y++ {
		for x := rect.X1; x <= rect.X2; x++ {
			if rng.Float64() < density {
				pts = append(pts, quadtree.Point{X: x, Y: y})
			}
		}
	}
	return u.SetPoints(pts, rect, quadtree.Copy)
}
