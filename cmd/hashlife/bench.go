// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/conwaylife/hashlife/internal/config"
	"github.com/conwaylife/hashlife/internal/metrics"
	"github.com/conwaylife/hashlife/internal/patternlib"
	"github.com/conwaylife/hashlife/quadtree"
	"github.com/conwaylife/hashlife/rle"
	"github.com/conwaylife/hashlife/universe"
)

func newBenchCmd() *cobra.Command {
	var (
		libraryDir  string
		generations uint64
		watch       bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Step every pattern in a library directory and report timings",
		Long: "Step every pattern in a library directory and report timings.\n" +
			"With --watch, keeps the library directory open for changes (via\n" +
			"fsnotify) and re-benchmarks whenever an .rle file is added, edited,\n" +
			"or removed, until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			if !watch {
				lib, err := patternlib.LoadDir(libraryDir)
				if err != nil {
					return fmt.Errorf("bench: %w", err)
				}
				return runBench(cmd.Context(), cmd.OutOrStdout(), cfg, lib, generations)
			}

			w, err := patternlib.NewWatcher(libraryDir)
			if err != nil {
				return fmt.Errorf("bench: %w", err)
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var last *patternlib.Library
			for {
				select {
				case <-ctx.Done():
					return nil
				default:
				}
				lib := w.Library()
				if lib != last {
					last = lib
					if err := runBench(ctx, cmd.OutOrStdout(), cfg, lib, generations); err != nil {
						return err
					}
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(cfg.ScavengeInterval):
				}
			}
		},
	}

	cmd.Flags().StringVarP(&libraryDir, "library", "l", "", "directory of .rle pattern files to benchmark")
	cmd.Flags().Uint64VarP(&generations, "generations", "g", 1024, "generations to advance each pattern")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-benchmark whenever the library directory changes")
	cmd.MarkFlagRequired("library")

	return cmd
}

// runBench steps every pattern currently in lib by generations and
// prints a tab-aligned timing table to out.
func runBench(ctx context.Context, out io.Writer, cfg *config.Config, lib *patternlib.Library, generations uint64) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tGENERATIONS\tPOPULATION\tNODES\tELAPSED")

	for _, name := range lib.Names() {
		source, err := lib.Get(name)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}
		parsed, err := rle.Parse(source)
		if err != nil {
			fmt.Fprintf(tw, "%s\tparse error: %v\t\t\t\n", name, err)
			continue
		}

		u, err := universe.New(universe.Options{
			InitialLevel:           cfg.InitialLevel,
			ArenaCapacityHint:      cfg.ArenaCapacityHint,
			StepExponent:           cfg.StepExponent,
			EvaluatorCacheCapacity: cfg.EvaluatorCacheCapacity,
			Metrics:                metrics.New(nil),
		})
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}

		rect := boundingRectOf(parsed.Cells)
		if err := u.SetPointsContext(ctx, parsed.Cells, rect, quadtree.Or); err != nil {
			fmt.Fprintf(tw, "%s\tload error: %v\t\t\t\n", name, err)
			continue
		}

		start := time.Now()
		for u.Generation() < generations {
			if err := u.StepContext(ctx); err != nil {
				fmt.Fprintf(tw, "%s\tstep error: %v\t\t\t\n", name, err)
				break
			}
		}
		elapsed := time.Since(start)

		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", name, u.Generation(), u.Population(), u.Arena().Len(), elapsed)
	}

	return tw.Flush()
}
