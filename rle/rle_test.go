// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package rle_test

import (
	"sort"
	"testing"

	"github.com/conwaylife/hashlife/quadtree"
	"github.com/conwaylife/hashlife/rle"
)

func collect(t *testing.T, text string) []quadtree.Point {
	t.Helper()
	seq, err := rle.IterAlive(text)
	if err != nil {
		t.Fatalf("IterAlive: %v", err)
	}
	var pts []quadtree.Point
	for p := range seq {
		pts = append(pts, p)
	}
	return pts
}

func TestParseMetadataReadsCommentsNameOriginatorAndRule(t *testing.T) {
	text := "#C a comment\n#N Glider\n#O Richard K. Guy\nx = 3, y = 3, rule = B3/S23\nbob$2bo$3o!\n"
	meta, bodyOffset, err := rle.ParseMetadata(text)
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if meta.Name != "Glider" || meta.Originator != "Richard K. Guy" || meta.Rule != "B3/S23" {
		t.Fatalf("ParseMetadata = %+v, missing expected fields", meta)
	}
	if len(meta.Comments) != 1 || meta.Comments[0] != "a comment" {
		t.Fatalf("ParseMetadata.Comments = %+v, want [\"a comment\"]", meta.Comments)
	}
	if meta.Width != 3 || meta.Height != 3 {
		t.Fatalf("ParseMetadata dimensions = %dx%d, want 3x3", meta.Width, meta.Height)
	}
	if text[bodyOffset:bodyOffset+3] != "bob" {
		t.Fatalf("bodyOffset points at %q, want the start of the cell body", text[bodyOffset:bodyOffset+3])
	}
}

func TestParseMetadataDefaultsRuleWhenAbsent(t *testing.T) {
	meta, _, err := rle.ParseMetadata("x = 1, y = 1\no!")
	if err != nil {
		t.Fatalf("ParseMetadata: %v", err)
	}
	if meta.Rule != "B3/S23" {
		t.Fatalf("default rule = %q, want B3/S23", meta.Rule)
	}
}

func TestParseMetadataRejectsMissingHeader(t *testing.T) {
	if _, _, err := rle.ParseMetadata("#C just a comment\nbo!"); err == nil {
		t.Fatal("ParseMetadata accepted a document with no header line")
	}
}

func TestParseMetadataRejectsGarbageLineBeforeHeader(t *testing.T) {
	// "x = 5, y = 3" is a well-formed header, but it isn't the first
	// non-comment line here, so it must not be found by scanning ahead.
	text := "garbage line\nx = 5, y = 3, rule = B3/S23\nbo$bo$bo!"
	if _, _, err := rle.ParseMetadata(text); err == nil {
		t.Fatal("ParseMetadata accepted a header that only matched further into the document")
	}
}

func TestIterAliveParsesGlider(t *testing.T) {
	text := "x = 3, y = 3, rule = B3/S23\nbob$2bo$3o!"
	got := collect(t, text)

	want := []quadtree.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	sortPts := func(pts []quadtree.Point) {
		sort.Slice(pts, func(i, j int) bool {
			if pts[i].Y != pts[j].Y {
				return pts[i].Y < pts[j].Y
			}
			return pts[i].X < pts[j].X
		})
	}
	sortPts(got)
	sortPts(want)
	if len(got) != len(want) {
		t.Fatalf("IterAlive returned %d points, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IterAlive point %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIterAliveStopsAtBang(t *testing.T) {
	text := "x = 5, y = 1, rule = B3/S23\n2o!2o$"
	got := collect(t, text)
	want := []quadtree.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	if len(got) != len(want) {
		t.Fatalf("IterAlive after '!' returned %+v, want only the cells before it: %+v", got, want)
	}
}

func TestIterAliveShortCircuitsOnFalseYield(t *testing.T) {
	text := "x = 3, y = 1, rule = B3/S23\n3o!"
	seq, err := rle.IterAlive(text)
	if err != nil {
		t.Fatalf("IterAlive: %v", err)
	}
	count := 0
	for range seq {
		count++
		break
	}
	if count != 1 {
		t.Fatalf("short-circuited iteration ran %d times, want 1", count)
	}
}

func TestFromIterRoundTripsThroughIterAlive(t *testing.T) {
	original := []quadtree.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	doc := rle.FromIter(original, 0, 0, 2, 2)

	got := collect(t, doc)
	sortPts := func(pts []quadtree.Point) {
		sort.Slice(pts, func(i, j int) bool {
			if pts[i].Y != pts[j].Y {
				return pts[i].Y < pts[j].Y
			}
			return pts[i].X < pts[j].X
		})
	}
	sortPts(got)
	want := append([]quadtree.Point(nil), original...)
	sortPts(want)

	if len(got) != len(want) {
		t.Fatalf("round trip returned %d points, want %d\ndoc:\n%s", len(got), len(want), doc)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("round trip point %d = %+v, want %+v\ndoc:\n%s", i, got[i], want[i], doc)
		}
	}
}

func TestFromIterOmitsTrailingDeadRows(t *testing.T) {
	pts := []quadtree.Point{{X: 0, Y: 0}}
	doc := rle.FromIter(pts, 0, 0, 4, 4)
	got := collect(t, doc)
	if len(got) != 1 || got[0] != (quadtree.Point{X: 0, Y: 0}) {
		t.Fatalf("FromIter with trailing dead rows round-trips to %+v, want [(0,0)]", got)
	}
}

func TestIterAliveHonorsMultiRowGapCount(t *testing.T) {
	// Two live points three rows apart: FromIter collapses the blank
	// rows between them into a single digit-prefixed "$" run.
	text := "x = 1, y = 4, rule = B3/S23\no3$o!"
	got := collect(t, text)
	want := []quadtree.Point{{X: 0, Y: 0}, {X: 0, Y: 3}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("IterAlive(%q) = %+v, want %+v", text, got, want)
	}
}

func TestFromIterRoundTripsThroughMultiRowGap(t *testing.T) {
	original := []quadtree.Point{{X: 0, Y: 0}, {X: 0, Y: 3}}
	doc := rle.FromIter(original, 0, 0, 0, 3)

	got := collect(t, doc)
	if len(got) != len(original) {
		t.Fatalf("round trip through a multi-row gap returned %+v, want %+v\ndoc:\n%s", got, original, doc)
	}
	for i := range original {
		if got[i] != original[i] {
			t.Fatalf("round trip point %d = %+v, want %+v\ndoc:\n%s", i, got[i], original[i], doc)
		}
	}
}

func TestImportManyAggregatesFailuresAndKeepsSuccesses(t *testing.T) {
	docs := []string{
		"x = 1, y = 1, rule = B3/S23\no!",
		"not an rle document at all",
		"x = 2, y = 1, rule = B3/S23\n2o!",
	}
	results, err := rle.ImportMany(docs)
	if err == nil {
		t.Fatal("ImportMany with one malformed document returned a nil error")
	}
	if len(results) != 2 {
		t.Fatalf("ImportMany returned %d successful results, want 2", len(results))
	}
}
