// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conwaylife/hashlife/rle"
)

func newConvertCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Round-trip an RLE document through the parser and encoder",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if inputPath == "" || inputPath == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(inputPath)
			}
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			parsed, err := rle.Parse(string(data))
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			rect := boundingRectOf(parsed.Cells)
			encoded := rle.FromIter(parsed.Cells, rect.X1, rect.Y1, rect.X2, rect.Y2)

			if outputPath == "" || outputPath == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)
				return err
			}
			return os.WriteFile(outputPath, []byte(encoded+"\n"), 0o644)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "in", "i", "", "input RLE path, or - for stdin (default stdin)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "output RLE path, or - for stdout (default stdout)")

	return cmd
}
