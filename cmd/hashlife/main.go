// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Command hashlife drives the HashLife core from a terminal: loading
// and stepping patterns, converting between RLE documents, and
// benchmarking the evaluator against a pattern library.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/conwaylife/hashlife/internal/lifeerr"
)

// Exit codes distinguish the error kinds a caller might want to script
// against (e.g. retrying on a transient OutOfBounds versus failing a
// build on a malformed pattern file) from the catch-all failure code.
const (
	exitOK = iota
	exitFailure
	exitInvalidRle
	exitOutOfBounds
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps an error to a process exit code by checking its Code
// against errors.Is, so a *lifeerr.Error wrapped arbitrarily deep behind
// fmt.Errorf("%w", ...) or a multierror.Append still gets its own code.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, lifeerr.Sentinel(lifeerr.InvalidRle)):
		return exitInvalidRle
	case errors.Is(err, lifeerr.Sentinel(lifeerr.OutOfBounds)):
		return exitOutOfBounds
	default:
		return exitFailure
	}
}
