// Copyright 2026 The Hashlife Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package rle parses and encodes Life patterns in the run-length
// encoded (RLE) format: the #C/#N/#O/#r comment and metadata lines, the
// "x = W, y = H[, rule = R]" header, and the run-length cell body
// itself.
package rle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/conwaylife/hashlife/internal/lifeerr"
)

// Metadata holds everything an RLE document's header section carries
// besides the cell body: free-text comments, the named pattern and its
// originator, the declared rule string, and the declared bounding box.
type Metadata struct {
	Comments    []string
	Name        string
	Originator  string
	Rule        string
	Width       int
	Height      int
}

var (
	sectionLineRe = regexp.MustCompile(`^#([a-zA-Z])(.*)$`)
	headerRe      = regexp.MustCompile(`(?m)^\s*x\s*=\s*(\d+)\s*,\s*y\s*=\s*(\d+)\s*(?:,\s*rule\s*=\s*(\S+)\s*)?$`)
)

// ParseMetadata reads every #-prefixed line and the header line at the
// start of text, and returns the byte offset into text at which the
// cell body begins (the first byte after the header line's trailing
// newline, or len(text) if there is none).
func ParseMetadata(text string) (Metadata, int, error) {
	var meta Metadata

	offset := 0
	for offset < len(text) && text[offset] == '#' {
		end := strings.IndexByte(text[offset:], '\n')
		var line string
		if end < 0 {
			line = text[offset:]
			offset = len(text)
		} else {
			line = text[offset : offset+end]
			offset += end + 1
		}

		m := sectionLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		body := strings.TrimSpace(m[2])
		switch m[1] {
		case "C", "c":
			meta.Comments = append(meta.Comments, body)
		case "N":
			meta.Name = body
		case "O":
			meta.Originator = body
		case "r", "R":
			meta.Rule = body
		}
	}

	loc := headerRe.FindStringSubmatchIndex(text[offset:])
	if loc == nil || loc[0] != 0 {
		return Metadata{}, 0, lifeerr.New(lifeerr.InvalidRle, "missing 'x = W, y = H' header")
	}

	w, err := strconv.Atoi(text[offset+loc[2] : offset+loc[3]])
	if err != nil {
		return Metadata{}, 0, lifeerr.New(lifeerr.InvalidRle, "invalid width in header: %v", err)
	}
	h, err := strconv.Atoi(text[offset+loc[4] : offset+loc[5]])
	if err != nil {
		return Metadata{}, 0, lifeerr.New(lifeerr.InvalidRle, "invalid height in header: %v", err)
	}
	meta.Width, meta.Height = w, h
	if loc[6] >= 0 {
		meta.Rule = text[offset+loc[6] : offset+loc[7]]
	} else if meta.Rule == "" {
		meta.Rule = "B3/S23"
	}

	bodyOffset := offset + loc[1]
	if bodyOffset < len(text) && text[bodyOffset] == '\n' {
		bodyOffset++
	}
	return meta, bodyOffset, nil
}
