// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conwaylife/hashlife/internal/metrics"
	"github.com/conwaylife/hashlife/quadtree"
	"github.com/conwaylife/hashlife/rle"
	"github.com/conwaylife/hashlife/sharelink"
	"github.com/conwaylife/hashlife/universe"
)

func newRunCmd() *cobra.Command {
	var (
		patternPath string
		generations uint64
		share       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a pattern and advance it a number of generations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			data, err := os.ReadFile(patternPath)
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}
			parsed, err := rle.Parse(string(data))
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			u, err := universe.New(universe.Options{
				InitialLevel:           cfg.InitialLevel,
				ArenaCapacityHint:      cfg.ArenaCapacityHint,
				StepExponent:           cfg.StepExponent,
				EvaluatorCacheCapacity: cfg.EvaluatorCacheCapacity,
				Metrics:                metrics.New(nil),
			})
			if err != nil {
				return fmt.Errorf("run: %w", err)
			}

			rect := boundingRectOf(parsed.Cells)
			if err := u.SetPointsContext(cmd.Context(), parsed.Cells, rect, quadtree.Or); err != nil {
				return fmt.Errorf("run: loading pattern: %w", err)
			}

			for u.Generation() < generations {
				if err := u.StepContext(cmd.Context()); err != nil {
					return fmt.Errorf("run: step at generation %d: %w", u.Generation(), err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "generation: %d\n", u.Generation())
			fmt.Fprintf(out, "population: %d\n", u.Population())
			if br, ok := u.BoundingRect(); ok {
				fmt.Fprintf(out, "bounding rect: (%d,%d)-(%d,%d)\n", br.X1, br.Y1, br.X2, br.Y2)
			} else {
				fmt.Fprintln(out, "bounding rect: empty")
			}

			if share {
				token, err := sharelink.Encode(u.Export())
				if err != nil {
					return fmt.Errorf("run: encoding share link: %w", err)
				}
				fmt.Fprintf(out, "share link: %s\n", token)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&patternPath, "pattern", "p", "", "path to an RLE pattern file")
	cmd.Flags().Uint64VarP(&generations, "generations", "g", 1, "number of generations to advance")
	cmd.Flags().BoolVarP(&share, "share", "s", false, "print a gzip+base64url share link for the final state")
	cmd.MarkFlagRequired("pattern")

	return cmd
}

// boundingRectOf returns the smallest rect enclosing every point in
// pts, or the origin cell if pts is empty.
func boundingRectOf(pts []quadtree.Point) quadtree.Rect {
	if len(pts) == 0 {
		return quadtree.Rect{}
	}
	rect := quadtree.Rect{X1: pts[0].X, Y1: pts[0].Y, X2: pts[0].X, Y2: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < rect.X1 {
			rect.X1 = p.X
		}
		if p.X > rect.X2 {
			rect.X2 = p.X
		}
		if p.Y < rect.Y1 {
			rect.Y1 = p.Y
		}
		if p.Y > rect.Y2 {
			rect.Y2 = p.Y
		}
	}
	return rect
}
