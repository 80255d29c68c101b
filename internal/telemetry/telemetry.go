// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package telemetry hands Universe a tracer for the spans around
// StepContext and SetPointsContext. Tracer() returns a tracer sourced from whatever global
// TracerProvider the host process has configured; a process that never
// calls otel.SetTracerProvider gets otel's own no-op implementation, so
// this package adds no overhead by default and no otel-specific
// plumbing leaks into package universe beyond the one Tracer() call.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/conwaylife/hashlife/universe"

// Tracer returns the tracer Universe uses to wrap StepContext (and so
// Step) and SetPointsContext in spans named "Universe.Step" and
// "Universe.SetPoints". The spans carry no attributes.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
