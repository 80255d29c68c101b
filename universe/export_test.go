// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package universe

import (
	"strings"
	"testing"
)

func TestExportStampsSessionIDAsOwnerComment(t *testing.T) {
	u, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := u.Set(0, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := u.Set(1, 0, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}

	doc := u.Export()
	if !strings.HasPrefix(doc, "#O "+u.ID().String()) {
		t.Fatalf("Export did not start with #O owner comment: %q", doc)
	}
	if !strings.Contains(doc, "x = ") {
		t.Fatalf("Export missing RLE header: %q", doc)
	}
}

func TestExportOnEmptyUniverseStillStampsOwner(t *testing.T) {
	u, err := New(Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	doc := u.Export()
	if !strings.HasPrefix(doc, "#O "+u.ID().String()) {
		t.Fatalf("Export did not start with #O owner comment: %q", doc)
	}
	if !strings.Contains(doc, "x = 0, y = 0") {
		t.Fatalf("Export of empty universe should report a 0x0 rect: %q", doc)
	}
}
