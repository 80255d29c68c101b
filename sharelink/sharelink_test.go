// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package sharelink_test

import (
	"testing"

	"github.com/conwaylife/hashlife/sharelink"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	doc := "x = 3, y = 3, rule = B3/S23\nbob$2bo$3o!"

	token, err := sharelink.Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if token == "" {
		t.Fatal("Encode returned an empty token")
	}

	got, err := sharelink.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != doc {
		t.Fatalf("Decode(Encode(doc)) = %q, want %q", got, doc)
	}
}

func TestDecodeRejectsInvalidToken(t *testing.T) {
	if _, err := sharelink.Decode("not valid base64!!"); err == nil {
		t.Fatal("Decode accepted an invalid token")
	}
}

func TestEncodeIsReusableAcrossCalls(t *testing.T) {
	for i := 0; i < 3; i++ {
		if _, err := sharelink.Encode("x = 1, y = 1\no!"); err != nil {
			t.Fatalf("Encode call %d: %v", i, err)
		}
	}
}
