// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package rle

import (
	"iter"
	"regexp"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/conwaylife/hashlife/internal/lifeerr"
	"github.com/conwaylife/hashlife/quadtree"
)

// tokenRe matches one run-length token: an optional run count followed
// by either '$' (end of row, count = rows to advance) or '!' (end of
// pattern), or a run count followed by a tag letter ('b'/'B' dead,
// anything else alive). The leading count on '$' is what lets
// FromIter's collapsed multi-row-gap tokens (e.g. "4$") parse back;
// without it a digit run ahead of '$' doesn't match at the run's start
// and IterAlive stops dead at the first multi-row gap.
var tokenRe = regexp.MustCompile(`\s*(?:(\d*)([$!])|(\d*)([a-zA-Z]))`)

// IterAlive parses an RLE document's header and cell body and returns a
// lazy iterator over every live cell, in scan order (y ascending, then
// x ascending within a row), with (0,0) at the pattern's top-left
// corner. Parsing the header happens eagerly so a malformed document
// fails before the iterator ever runs; walking the body happens lazily
// as the iterator is consumed.
func IterAlive(text string) (iter.Seq[quadtree.Point], error) {
	_, bodyOffset, err := ParseMetadata(text)
	if err != nil {
		return nil, err
	}
	return iterAliveBody(text[bodyOffset:]), nil
}

// iterAliveBody is IterAlive's body-walking half, split out so Parse can
// reuse it without asking ParseMetadata to parse the same header twice.
func iterAliveBody(body string) iter.Seq[quadtree.Point] {
	return func(yield func(quadtree.Point) bool) {
		x, y := 0, 0
		pos := 0
		for pos < len(body) {
			loc := tokenRe.FindStringSubmatchIndex(body[pos:])
			if loc == nil || loc[0] != 0 {
				return
			}
			if loc[4] >= 0 { // '$' or '!', with an optional leading row count
				switch body[pos+loc[4]] {
				case '!':
					return
				case '$':
					rows := 1
					if loc[2] >= 0 && loc[3] > loc[2] {
						n, convErr := strconv.Atoi(body[pos+loc[2] : pos+loc[3]])
						if convErr != nil {
							return
						}
						rows = n
					}
					y += rows
					x = 0
				}
				pos += loc[1]
				continue
			}

			count := 1
			if loc[6] >= 0 && loc[7] > loc[6] {
				n, convErr := strconv.Atoi(body[pos+loc[6] : pos+loc[7]])
				if convErr != nil {
					return
				}
				count = n
			}
			tag := body[pos+loc[8] : pos+loc[9]]
			if tag != "b" && tag != "B" {
				for i := 0; i < count; i++ {
					if !yield(quadtree.Point{X: int64(x + i), Y: int64(y)}) {
						return
					}
				}
			}
			x += count
			pos += loc[1]
		}
	}
}

// Parsed bundles a document's header metadata with its live-cell
// points, for callers (e.g. ImportMany) that want both without
// re-parsing.
type Parsed struct {
	Meta  Metadata
	Cells []quadtree.Point
}

// Parse reads text in full, collecting IterAlive's points into a slice
// alongside the parsed Metadata.
func Parse(text string) (Parsed, error) {
	meta, bodyOffset, err := ParseMetadata(text)
	if err != nil {
		return Parsed{}, err
	}

	var cells []quadtree.Point
	for p := range iterAliveBody(text[bodyOffset:]) {
		cells = append(cells, p)
	}
	return Parsed{Meta: meta, Cells: cells}, nil
}

// ImportMany parses every document in docs, collecting successfully
// parsed cell sets and aggregating every parse failure into a single
// error via go-multierror so a batch import reports every malformed
// document at once instead of stopping at the first.
func ImportMany(docs []string) ([]Parsed, error) {
	var results []Parsed
	var errs *multierror.Error
	for i, doc := range docs {
		p, err := Parse(doc)
		if err != nil {
			errs = multierror.Append(errs, lifeerr.New(lifeerr.InvalidRle, "document %d: %v", i, err))
			continue
		}
		results = append(results, p)
	}
	if errs != nil {
		return results, errs.ErrorOrNil()
	}
	return results, nil
}
