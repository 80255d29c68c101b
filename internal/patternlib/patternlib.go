// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package patternlib is a name-keyed store of RLE pattern sources,
// backing cmd/hashlife's bench subcommand (which steps every named
// pattern a fixed number of generations).
package patternlib

import "github.com/conwaylife/hashlife/internal/lifeerr"

type entry struct {
	name    string
	rle     string
	next    int32
	removed bool
}

// Library is a node-chain store of named RLE pattern sources: inserting
// appends a node (reusing a tombstoned slot first), deleting tombstones
// rather than compacting, matching the teacher's policy-store shape for
// a concern that is, here, pattern sources rather than policy modules.
type Library struct {
	head    int32
	entries []entry
	count   int
}

// New creates an empty Library.
func New() *Library {
	return &Library{head: -1}
}

func (l *Library) alloc() int32 {
	if l.entries == nil {
		l.entries = make([]entry, 0, 8)
	}
	for i := range l.entries {
		if l.entries[i].removed {
			l.entries[i].removed = false
			l.entries[i].rle = ""
			return int32(i)
		}
	}
	idx := int32(len(l.entries))
	l.entries = append(l.entries, entry{next: -1})
	return idx
}

// Upsert inserts a new pattern or replaces an existing one with the
// same name.
func (l *Library) Upsert(name, rle string) {
	curr := l.head
	var prev int32 = -1
	for curr != -1 {
		e := &l.entries[curr]
		if !e.removed && e.name == name {
			e.rle = rle
			return
		}
		prev = curr
		curr = e.next
	}

	idx := l.alloc()
	e := &l.entries[idx]
	e.name = name
	e.rle = rle
	e.next = -1
	e.removed = false

	if l.head == -1 {
		l.head = idx
	} else {
		l.entries[prev].next = idx
	}
	l.count++
}

// Get returns the RLE source registered under name.
func (l *Library) Get(name string) (string, error) {
	curr := l.head
	for curr != -1 {
		e := &l.entries[curr]
		if !e.removed && e.name == name {
			return e.rle, nil
		}
		curr = e.next
	}
	return "", lifeerr.New(lifeerr.InvalidRle, "pattern %q not found in library", name)
}

// Delete tombstones the entry registered under name, unlinking it from
// the chain so a later alloc reusing its slot can't sever whatever
// followed it (the slot itself stays in entries for reuse; only the
// chain link moves — no compaction of the underlying slice).
func (l *Library) Delete(name string) error {
	curr := l.head
	var prev int32 = -1
	for curr != -1 {
		e := &l.entries[curr]
		if !e.removed && e.name == name {
			if prev == -1 {
				l.head = e.next
			} else {
				l.entries[prev].next = e.next
			}
			e.removed = true
			l.count--
			return nil
		}
		prev = curr
		curr = e.next
	}
	return lifeerr.New(lifeerr.InvalidRle, "pattern %q not found in library", name)
}

// Names returns every currently registered pattern name.
func (l *Library) Names() []string {
	if l.count == 0 {
		return nil
	}
	names := make([]string, 0, l.count)
	curr := l.head
	for curr != -1 {
		e := &l.entries[curr]
		if !e.removed {
			names = append(names, e.name)
		}
		curr = e.next
	}
	return names
}

// Len returns the number of currently registered patterns.
func (l *Library) Len() int { return l.count }
