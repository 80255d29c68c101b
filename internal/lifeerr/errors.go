// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package lifeerr defines the sentinel error kinds raised across the
// arena, quadtree, universe and RLE packages, mirroring the typed-code
// error shape used by the storage layer this module is adapted from.
package lifeerr

import "fmt"

// Code identifies a class of error a caller may want to branch on with
// errors.Is, independent of the human-readable message wrapped around it.
type Code string

const (
	// InvalidRle is raised by the RLE parser on a malformed header or body.
	InvalidRle Code = "invalid_rle"
	// OutOfBounds is raised when a coordinate falls outside [-2^62, 2^62).
	OutOfBounds Code = "out_of_bounds"
	// LevelOverflow is raised when growing a node would exceed level 63.
	LevelOverflow Code = "level_overflow"
	// EmptyBoundingRect is not an error value itself but labels the sentinel
	// rectangle bounding_rect returns for a universe with zero population.
	EmptyBoundingRect Code = "empty_bounding_rect"
)

// Error is a tagged result carrying a Code plus a human-readable message.
// Internal invariant violations (e.g. a branch/leaf type mismatch) are
// programming errors and panic instead of returning an Error.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is supports errors.Is(err, lifeerr.Sentinel(lifeerr.InvalidRle)) style checks by comparing
// codes rather than pointer identity, so every wrapped *Error with the same
// Code compares equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New constructs an *Error for the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinel returns an *Error whose message is just the code, usable
// directly with errors.Is, e.g. lifeerr.Sentinel(lifeerr.OutOfBounds).
func Sentinel(code Code) *Error {
	return &Error{Code: code, Message: string(code)}
}
