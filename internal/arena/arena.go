// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package arena implements the content-addressed, hash-consed store of
// quadtree nodes that backs a HashLife universe.
//
// Every node is immutable once inserted: editing never mutates a node in
// place, it allocates replacement nodes along the spine from the root to
// the edit point and lets Insert deduplicate any subtree whose content
// already exists. Two structurally identical subtrees — at any scale —
// therefore always share one Handle, which is what makes HashLife's
// memoised evaluator (package hashlife) and cheap root-handle snapshots
// (package universe) possible.
//
// This is adapted from the arena-allocated, content-addressed node store
// the teacher's storage layer uses for JSON documents: same shape (a
// growable node vector plus a hash map from content to handle, dense
// Handle indices, never-freed nodes), generalised from mutable JSON
// object/array chains to an immutable hash-consed quadtree.
package arena

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/sirupsen/logrus"
)

// MaxLevel is the highest level a node may reach. grown refuses to
// produce a node above this level (lifeerr.LevelOverflow).
const MaxLevel = 63

// emptyTowerLevels is how far Arena pre-allocates canonical empty nodes
// at construction, per §3's "Empty tower" contract. No node can ever
// exceed MaxLevel, so the tower stops there rather than over-building
// levels EmptyTower can never be asked for.
const emptyTowerLevels = MaxLevel + 1

// Arena is a content-addressed, append-only store of Nodes. It is not
// safe for concurrent use: the core runs single-threaded cooperatively
// (see spec §5), so Arena takes no locks.
type Arena struct {
	nodes []Node
	index map[uint64][]int32 // content hash -> candidate node indices (collision chain)

	emptyTower [emptyTowerLevels]Handle

	log *logrus.Entry
}

// New creates an Arena with the given initial node-vector capacity hint
// and pre-allocates the canonical empty node for every level
// 2..emptyTowerLevels-1.
func New(capacityHint int) *Arena {
	if capacityHint < 64 {
		capacityHint = 64
	}
	a := &Arena{
		nodes: make([]Node, 0, capacityHint),
		index: make(map[uint64][]int32, capacityHint),
		log:   logrus.WithField("component", "arena"),
	}

	a.emptyTower[LeafLevel] = a.Insert(newLeaf([LeafSize][LeafSize]uint8{}))
	for level := LeafLevel + 1; level < emptyTowerLevels; level++ {
		child := a.emptyTower[level-1]
		a.emptyTower[level] = a.Insert(newBranch(uint8(level), child, child, child, child, a))
	}

	a.log.WithField("preallocated_levels", emptyTowerLevels-LeafLevel).Debug("arena initialised")
	return a
}

// Len returns the number of distinct nodes currently stored.
func (a *Arena) Len() int { return len(a.nodes) }

// EmptyTower returns the canonical all-dead node at the given level.
func (a *Arena) EmptyTower(level uint8) Handle {
	return a.emptyTower[level]
}

// Get returns a copy of the node at h. Nodes are small and immutable, so
// returning by value is both safe and cheap.
func (a *Arena) Get(h Handle) Node { return a.get(h) }

func (a *Arena) get(h Handle) Node { return a.nodes[h] }

// Insert deduplicates n by content and returns its canonical Handle,
// appending a new entry only if no equal node already exists.
func (a *Arena) Insert(n Node) Handle {
	h := contentHash(n)
	for _, idx := range a.index[h] {
		if nodesEqual(a.nodes[idx], n) {
			return Handle(idx)
		}
	}

	idx := int32(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.index[h] = append(a.index[h], idx)

	if len(a.nodes)%1_000_000 == 0 {
		a.log.WithField("node_count", len(a.nodes)).Debug("arena growth milestone")
	}

	return Handle(idx)
}

// InsertLeaf is a convenience wrapper around Insert for leaf content.
func (a *Arena) InsertLeaf(cells [LeafSize][LeafSize]uint8) Handle {
	return a.Insert(newLeaf(cells))
}

// InsertBranch is a convenience wrapper around Insert for branch
// content. level must be one greater than the level of each child.
func (a *Arena) InsertBranch(level uint8, nw, ne, sw, se Handle) Handle {
	return a.Insert(newBranch(level, nw, ne, sw, se, a))
}

func nodesEqual(a, b Node) bool {
	if a.level != b.level || a.population != b.population {
		return false
	}
	if a.level == LeafLevel {
		return a.cells == b.cells
	}
	return a.children == b.children
}

// contentHash computes the Arena's dedup key: level plus either the leaf
// bytes or the four child handles, hashed with xxhash rather than Go's
// reflection-based map hashing so the key is a small, fast, predictable
// encoding independent of struct layout.
func contentHash(n Node) uint64 {
	var buf [1 + 16]byte
	buf[0] = n.level

	if n.level == LeafLevel {
		i := 1
		for _, row := range n.cells {
			for _, c := range row {
				buf[i] = c
				i++
			}
		}
		return xxhash.Sum64(buf[:1+LeafSize*LeafSize])
	}

	for i, c := range n.children {
		binary.LittleEndian.PutUint32(buf[1+4*i:], uint32(c))
	}
	return xxhash.Sum64(buf[:1+16])
}
